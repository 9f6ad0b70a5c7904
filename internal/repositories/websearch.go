package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

const websearchTable = "websearch_settings"

// WebsearchRepository stores [models.WebsearchSetting] rows keyed by [models.WebsearchSetting.Key].
type WebsearchRepository struct {
	db *sql.DB
}

// NewWebsearchRepository creates a new WebsearchRepository with the given database connection
func NewWebsearchRepository(db *sql.DB) *WebsearchRepository {
	return &WebsearchRepository{db: db}
}

// Save inserts the setting or replaces the row with the same key.
func (r *WebsearchRepository) Save(s models.WebsearchSetting) error {
	if s.Order() < 0 {
		return fmt.Errorf("%w: negative order %d", shared.ErrInvalidInput, s.Order())
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO websearch_settings (key, position, name, base_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			name = excluded.name,
			base_url = excluded.base_url,
			updated_at = excluded.updated_at
	`
	now := time.Now()
	if _, err := tx.Exec(query, s.Key(), s.Order(), s.RawName(), s.BaseURL(), now, now); err != nil {
		return fmt.Errorf("failed to save websearch setting: %w", err)
	}

	if err := raiseSequence(tx, websearchTable, s.Order()); err != nil {
		return err
	}

	return tx.Commit()
}

// Append stores a new setting at the next free order index.
func (r *WebsearchRepository) Append(name, baseURL string) (models.WebsearchSetting, error) {
	order, err := NextSequence(r.db, websearchTable)
	if err != nil {
		return models.WebsearchSetting{}, fmt.Errorf("failed to generate sequence: %w", err)
	}

	s := models.NewWebsearchSetting(order, name, baseURL)
	if err := r.Save(s); err != nil {
		return models.WebsearchSetting{}, err
	}
	return s, nil
}

// Get retrieves a setting by key.
func (r *WebsearchRepository) Get(key string) (models.WebsearchSetting, error) {
	query := `SELECT position, name, base_url FROM websearch_settings WHERE key = ?`

	var order int
	var name, baseURL string
	err := r.db.QueryRow(query, key).Scan(&order, &name, &baseURL)
	if err == sql.ErrNoRows {
		return models.WebsearchSetting{}, fmt.Errorf("%w: websearch setting %s", shared.ErrNotFound, key)
	}
	if err != nil {
		return models.WebsearchSetting{}, fmt.Errorf("failed to get websearch setting: %w", err)
	}
	return models.NewWebsearchSetting(order, name, baseURL), nil
}

// List returns all settings ordered by their order index.
func (r *WebsearchRepository) List() ([]models.WebsearchSetting, error) {
	rows, err := r.db.Query(`SELECT position, name, base_url FROM websearch_settings ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list websearch settings: %w", err)
	}
	defer rows.Close()

	var settings []models.WebsearchSetting
	for rows.Next() {
		var order int
		var name, baseURL string
		if err := rows.Scan(&order, &name, &baseURL); err != nil {
			return nil, fmt.Errorf("failed to scan websearch setting: %w", err)
		}
		settings = append(settings, models.NewWebsearchSetting(order, name, baseURL))
	}
	return settings, rows.Err()
}

// Rename changes the name of the setting stored under key. The key itself does not change.
func (r *WebsearchRepository) Rename(key, name string) (models.WebsearchSetting, error) {
	existing, err := r.Get(key)
	if err != nil {
		return models.WebsearchSetting{}, err
	}

	renamed := models.NewWebsearchSetting(existing.Order(), name, existing.BaseURL())
	if err := r.Save(renamed); err != nil {
		return models.WebsearchSetting{}, err
	}
	return renamed, nil
}

// Delete removes the setting stored under key.
func (r *WebsearchRepository) Delete(key string) error {
	res, err := r.db.Exec(`DELETE FROM websearch_settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete websearch setting: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: websearch setting %s", shared.ErrNotFound, key)
	}
	return nil
}

// Seed appends the configured settings when the table is empty and returns how many were added.
func (r *WebsearchRepository) Seed(defaults []shared.WebsearchConfig) (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM websearch_settings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count websearch settings: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for i, d := range defaults {
		if _, err := r.Append(d.Name, d.URL); err != nil {
			return i, err
		}
	}
	return len(defaults), nil
}
