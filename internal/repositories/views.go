package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tunebox/internal/shared"
)

// ViewRecord is one entry of the navigation history: a playlist view the
// controller pushed when a playlist was loaded by navigation.
type ViewRecord struct {
	ID         string
	Path       string
	Title      string
	PlaylistID string
	CreatedAt  time.Time
}

// ViewRepository persists the view history consumed from the controller's
// view-pushed events.
type ViewRepository struct {
	db *sql.DB
}

// NewViewRepository creates a new ViewRepository with the given database connection
func NewViewRepository(db *sql.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// Record appends a view to the history and returns its id.
func (r *ViewRepository) Record(path, title, playlistID string) (string, error) {
	id := shared.GenerateID()
	_, err := r.db.Exec(`
		INSERT INTO views (id, path, title, playlist_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, path, title, nullable(playlistID), now())
	if err != nil {
		return "", fmt.Errorf("failed to record view: %w", err)
	}
	return id, nil
}

// Recent returns up to limit views, newest first.
func (r *ViewRepository) Recent(limit int) ([]ViewRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`
		SELECT id, path, title, playlist_id, created_at
		FROM views
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query views: %w", err)
	}
	defer rows.Close()

	var out []ViewRecord
	for rows.Next() {
		var (
			v          ViewRecord
			playlistID sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Path, &v.Title, &playlistID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan view: %w", err)
		}
		v.PlaylistID = fromNullable(playlistID)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read views: %w", err)
	}

	return out, nil
}
