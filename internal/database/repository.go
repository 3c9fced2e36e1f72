package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jobscout/pkg/models"
)

// Retention defaults for search history.
const (
	DefaultHistoryCap         = 100
	DefaultHistoryDedupWindow = 24 * time.Hour
)

// Store is the SQLite-backed persistence gateway for saved searches and
// search history. It implements engine.Gateway.
type Store struct {
	db          *sql.DB
	historyCap  int
	dedupWindow time.Duration
}

// NewStore wraps an open database. Non-positive retention settings fall
// back to the defaults.
func NewStore(db *sql.DB, historyCap int, dedupWindow time.Duration) *Store {
	if historyCap < 1 {
		historyCap = DefaultHistoryCap
	}
	if dedupWindow <= 0 {
		dedupWindow = DefaultHistoryDedupWindow
	}
	return &Store{db: db, historyCap: historyCap, dedupWindow: dedupWindow}
}

// SaveSearch persists a labeled query snapshot. Saving under an existing
// label replaces the previous snapshot.
func (s *Store) SaveSearch(ctx context.Context, q models.SearchQuery, label string) (models.SavedSearch, error) {
	filters, err := json.Marshal(q.Filters)
	if err != nil {
		return models.SavedSearch{}, fmt.Errorf("failed to encode filters: %w", err)
	}

	query := `INSERT OR REPLACE INTO saved_searches (label, query, location, filters, created_at)
			  VALUES (?, ?, ?, ?, ?)`
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	result, err := s.db.ExecContext(ctx, query, label, q.Text, q.Location, string(filters), createdAt)
	if err != nil {
		return models.SavedSearch{}, err
	}
	id, _ := result.LastInsertId()

	saved := models.SavedSearch{ID: int(id), Label: label, SearchQuery: q}
	saved.CreatedAt = createdAt
	return saved, nil
}

// LoadSavedSearches returns all saved searches, newest first.
func (s *Store) LoadSavedSearches(ctx context.Context) ([]models.SavedSearch, error) {
	query := `SELECT id, label, query, location, filters, created_at
			  FROM saved_searches ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	saved := []models.SavedSearch{}
	for rows.Next() {
		var entry models.SavedSearch
		var filters string
		if err := rows.Scan(&entry.ID, &entry.Label, &entry.Text, &entry.Location,
			&filters, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(filters), &entry.Filters); err != nil {
			// A corrupt row degrades to defaults instead of failing the load.
			entry.Filters = models.DefaultFilters()
			entry.Filters.Text = entry.Text
			entry.Filters.Location = entry.Location
		}
		saved = append(saved, entry)
	}
	return saved, rows.Err()
}

// DeleteSaved removes a saved search by id.
func (s *Store) DeleteSaved(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id=?`, id)
	return err
}

// AppendHistory logs an executed search. An identical query already logged
// within the dedup window is skipped; after an insert the history is capped
// to the retention limit, oldest entries first.
func (s *Store) AppendHistory(ctx context.Context, q models.SearchQuery) error {
	filters, err := json.Marshal(q.Filters)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}

	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	cutoff := createdAt.Add(-s.dedupWindow)

	var dup int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM search_history
		 WHERE query=? AND location=? AND filters=? AND created_at > ?`,
		q.Text, q.Location, string(filters), cutoff).Scan(&dup)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if dup > 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO search_history (query, location, filters, created_at) VALUES (?, ?, ?, ?)`,
		q.Text, q.Location, string(filters), createdAt)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM search_history WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY created_at DESC, id DESC LIMIT ?
		)`, s.historyCap)
	return err
}

// LoadHistory returns logged searches, newest first.
func (s *Store) LoadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	query := `SELECT id, query, location, filters, created_at
			  FROM search_history ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []models.HistoryEntry{}
	for rows.Next() {
		var entry models.HistoryEntry
		var filters string
		if err := rows.Scan(&entry.ID, &entry.Text, &entry.Location, &filters, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(filters), &entry.Filters); err != nil {
			entry.Filters = models.DefaultFilters()
			entry.Filters.Text = entry.Text
			entry.Filters.Location = entry.Location
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}
