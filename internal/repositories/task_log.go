package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// TaskLogRepository journals executed daemon tasks.
//
// It satisfies daemon.Recorder so it can be plugged into daemon.Journal.
type TaskLogRepository struct {
	db *sql.DB
}

// NewTaskLogRepository creates a new TaskLogRepository with the given database connection
func NewTaskLogRepository(db *sql.DB) *TaskLogRepository {
	return &TaskLogRepository{db: db}
}

// Record inserts rec with the next journal sequence number.
func (r *TaskLogRepository) Record(rec models.TaskRecord) error {
	if rec.ID == "" {
		rec.ID = shared.GenerateID()
	}
	if rec.Method == "" || rec.Daemon == "" {
		return fmt.Errorf("%w: task record needs a method and daemon", shared.ErrInvalidInput)
	}

	sequence, err := NextSequence(r.db, "task_log")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `
		INSERT INTO task_log (
			id, sequence, daemon_name, daemon, method, target, success,
			error_type, error_message, started_at, duration_ms
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		rec.ID,
		sequence,
		rec.DaemonName,
		string(rec.Daemon),
		rec.Method,
		nullable(rec.Target),
		rec.Success,
		nullable(rec.ErrorType),
		nullable(rec.ErrorMessage),
		rec.StartedAt.UTC(),
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task record: %w", err)
	}
	return nil
}

// Get retrieves a task record by task ID.
func (r *TaskLogRepository) Get(id string) (models.TaskRecord, error) {
	query := `
		SELECT id, sequence, daemon_name, daemon, method, target, success,
			error_type, error_message, started_at, duration_ms
		FROM task_log
		WHERE id = ?
	`
	rec, err := scanRecord(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return models.TaskRecord{}, fmt.Errorf("%w: task %s", shared.ErrNotFound, id)
	}
	return rec, err
}

// TaskLogFilter narrows [TaskLogRepository.Recent]. Empty fields match everything.
type TaskLogFilter struct {
	DaemonName string
	Target     string
	Limit      int
}

// Recent returns the newest records first.
func (r *TaskLogRepository) Recent(f TaskLogFilter) ([]models.TaskRecord, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	query := `
		SELECT id, sequence, daemon_name, daemon, method, target, success,
			error_type, error_message, started_at, duration_ms
		FROM task_log
		WHERE (? = '' OR daemon_name = ?) AND (? = '' OR target = ?)
		ORDER BY sequence DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, f.DaemonName, f.DaemonName, f.Target, f.Target, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query task log: %w", err)
	}
	defer rows.Close()

	var records []models.TaskRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes records started before cutoff and returns how many were removed.
func (r *TaskLogRepository) Prune(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM task_log WHERE started_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune task log: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (models.TaskRecord, error) {
	var rec models.TaskRecord
	var daemon string
	var target, errorType, errorMessage sql.NullString
	var durationMS int64

	err := s.Scan(
		&rec.ID,
		&rec.Sequence,
		&rec.DaemonName,
		&daemon,
		&rec.Method,
		&target,
		&rec.Success,
		&errorType,
		&errorMessage,
		&rec.StartedAt,
		&durationMS,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.TaskRecord{}, err
		}
		return models.TaskRecord{}, fmt.Errorf("failed to scan task record: %w", err)
	}

	rec.Daemon = models.Daemon(daemon)
	rec.Target = target.String
	rec.ErrorType = errorType.String
	rec.ErrorMessage = errorMessage.String
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	return rec, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
