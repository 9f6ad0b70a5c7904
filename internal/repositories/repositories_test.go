package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, websearchTable)
		if err != nil {
			t.Fatalf("failed to get sequence: %v", err)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for missing sequence table")
	}
}

func TestWebsearchRepository(t *testing.T) {
	t.Run("Append and Get", func(t *testing.T) {
		repo := NewWebsearchRepository(setupTestDB(t))

		s, err := repo.Append("Search", "https://search.example.com/?q=%s")
		if err != nil {
			t.Fatalf("failed to append: %v", err)
		}
		if s.Order() != 1 || s.Key() != "websearch_1" {
			t.Errorf("expected first order 1, got %d (%s)", s.Order(), s.Key())
		}

		got, err := repo.Get(s.Key())
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got != s {
			t.Errorf("expected %+v, got %+v", s, got)
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := NewWebsearchRepository(setupTestDB(t))
		if _, err := repo.Get("websearch_9"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Rename keeps key", func(t *testing.T) {
		repo := NewWebsearchRepository(setupTestDB(t))
		s, _ := repo.Append("", "https://example.org/x")
		if s.Name() != "example.org" {
			t.Errorf("expected host as name, got %s", s.Name())
		}

		renamed, err := repo.Rename(s.Key(), "Example")
		if err != nil {
			t.Fatalf("failed to rename: %v", err)
		}
		if renamed.Key() != s.Key() {
			t.Errorf("key changed from %s to %s", s.Key(), renamed.Key())
		}

		got, _ := repo.Get(s.Key())
		if got.Name() != "Example" || got.BaseURL() != "https://example.org/x" {
			t.Errorf("unexpected stored setting %+v", got)
		}

		list, _ := repo.List()
		if len(list) != 1 {
			t.Errorf("rename must not add rows, got %d", len(list))
		}
	})

	t.Run("Save upserts and reserves order", func(t *testing.T) {
		repo := NewWebsearchRepository(setupTestDB(t))

		if err := repo.Save(models.NewWebsearchSetting(5, "Five", "https://five.example")); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if err := repo.Save(models.NewWebsearchSetting(5, "Still five", "https://five.example/v2")); err != nil {
			t.Fatalf("failed to save again: %v", err)
		}

		next, err := repo.Append("Six", "https://six.example")
		if err != nil {
			t.Fatalf("failed to append: %v", err)
		}
		if next.Order() != 6 {
			t.Errorf("expected append after saved order, got %d", next.Order())
		}

		list, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(list) != 2 || list[0].Name() != "Still five" || list[1].Name() != "Six" {
			t.Errorf("unexpected list %+v", list)
		}
	})

	t.Run("Save rejects negative order", func(t *testing.T) {
		repo := NewWebsearchRepository(setupTestDB(t))
		if err := repo.Save(models.NewWebsearchSetting(-1, "", "")); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewWebsearchRepository(setupTestDB(t))
		s, _ := repo.Append("Gone", "https://gone.example")

		if err := repo.Delete(s.Key()); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if err := repo.Delete(s.Key()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}

		next, _ := repo.Append("New", "https://new.example")
		if next.Key() == s.Key() {
			t.Error("deleted keys must not be reused")
		}
	})

	t.Run("Seed only fills an empty table", func(t *testing.T) {
		repo := NewWebsearchRepository(setupTestDB(t))
		defaults := []shared.WebsearchConfig{
			{Name: "A", URL: "https://a.example/%s"},
			{Name: "B", URL: "https://b.example/%s"},
		}

		n, err := repo.Seed(defaults)
		if err != nil || n != 2 {
			t.Fatalf("expected 2 seeded, got %d (%v)", n, err)
		}
		n, err = repo.Seed(defaults)
		if err != nil || n != 0 {
			t.Errorf("expected no reseed, got %d (%v)", n, err)
		}
	})
}

func TestTaskLogRepository(t *testing.T) {
	started := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

	record := func(id, daemonName, target string, success bool, at time.Time) models.TaskRecord {
		rec := models.TaskRecord{
			ID:         id,
			DaemonName: daemonName,
			Daemon:     models.DaemonDummy,
			Method:     "Pause",
			Target:     target,
			Success:    success,
			StartedAt:  at,
			Duration:   1500 * time.Millisecond,
		}
		if !success {
			rec.ErrorType = "UnexpectedResponse"
			rec.ErrorMessage = "torrent " + target + " not found"
		}
		return rec
	}

	t.Run("Record and Get", func(t *testing.T) {
		repo := NewTaskLogRepository(setupTestDB(t))
		if err := repo.Record(record("task-1", "Home", "torrent_1", false, started)); err != nil {
			t.Fatalf("failed to record: %v", err)
		}

		got, err := repo.Get("task-1")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Sequence != 1 || got.Success || got.ErrorType != "UnexpectedResponse" {
			t.Errorf("unexpected record %+v", got)
		}
		if got.Duration != 1500*time.Millisecond || !got.StartedAt.Equal(started) {
			t.Errorf("unexpected timing %v at %v", got.Duration, got.StartedAt)
		}
		if got.Outcome() != "failure" {
			t.Errorf("expected failure outcome, got %s", got.Outcome())
		}
	})

	t.Run("Record validates", func(t *testing.T) {
		repo := NewTaskLogRepository(setupTestDB(t))
		if err := repo.Record(models.TaskRecord{}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := NewTaskLogRepository(setupTestDB(t))
		if _, err := repo.Get("nope"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Recent filters newest first", func(t *testing.T) {
		repo := NewTaskLogRepository(setupTestDB(t))
		recs := []models.TaskRecord{
			record("a", "Home", "torrent_1", true, started),
			record("b", "Home", "torrent_2", true, started.Add(time.Minute)),
			record("c", "Work", "torrent_1", true, started.Add(2*time.Minute)),
			record("d", "Home", "", true, started.Add(3*time.Minute)),
		}
		for _, r := range recs {
			if err := repo.Record(r); err != nil {
				t.Fatalf("failed to record: %v", err)
			}
		}

		tests := []struct {
			name   string
			filter TaskLogFilter
			want   []string
		}{
			{name: "all", filter: TaskLogFilter{}, want: []string{"d", "c", "b", "a"}},
			{name: "daemon", filter: TaskLogFilter{DaemonName: "Home"}, want: []string{"d", "b", "a"}},
			{name: "target", filter: TaskLogFilter{Target: "torrent_1"}, want: []string{"c", "a"}},
			{name: "limit", filter: TaskLogFilter{Limit: 2}, want: []string{"d", "c"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.Recent(tt.filter)
				if err != nil {
					t.Fatalf("failed to list: %v", err)
				}
				if len(got) != len(tt.want) {
					t.Fatalf("expected %d records, got %d", len(tt.want), len(got))
				}
				for i, id := range tt.want {
					if got[i].ID != id {
						t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
					}
				}
			})
		}
	})

	t.Run("Prune", func(t *testing.T) {
		repo := NewTaskLogRepository(setupTestDB(t))
		repo.Record(record("old", "Home", "", true, started.Add(-48*time.Hour)))
		repo.Record(record("new", "Home", "", true, started))

		n, err := repo.Prune(started.Add(-24 * time.Hour))
		if err != nil {
			t.Fatalf("failed to prune: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 pruned, got %d", n)
		}
		if _, err := repo.Get("new"); err != nil {
			t.Errorf("recent record should remain: %v", err)
		}
	})
}
