package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

// PlaylistRepository persists playlists and their song orderings.
//
// Save is an upsert keyed by the playlist URL: saving a URL that already
// exists replaces its metadata and entire song list, mirroring the
// controller's wholesale playlist replacement. Deletes are soft.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Save inserts or replaces the playlist stored under its URL and returns
// the playlist's id.
func (r *PlaylistRepository) Save(pl *models.Playlist) (string, error) {
	if pl.URL == "" {
		return "", fmt.Errorf("playlist has no URL: %w", shared.ErrInvalidInput)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow(`SELECT id FROM playlists WHERE url = ? AND deleted_at IS NULL`, pl.URL).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = shared.GenerateID()
		ts := now()
		_, err = tx.Exec(`
			INSERT INTO playlists (id, url, title, artist, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, pl.URL, pl.Title, nullable(pl.Artist), nullable(pl.Description), ts, ts)
		if err != nil {
			return "", fmt.Errorf("failed to insert playlist: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("failed to look up playlist: %w", err)
	default:
		_, err = tx.Exec(`
			UPDATE playlists SET title = ?, artist = ?, description = ?, updated_at = ?
			WHERE id = ?
		`, pl.Title, nullable(pl.Artist), nullable(pl.Description), now(), id)
		if err != nil {
			return "", fmt.Errorf("failed to update playlist: %w", err)
		}
		if _, err = tx.Exec(`DELETE FROM songs WHERE playlist_id = ?`, id); err != nil {
			return "", fmt.Errorf("failed to clear songs: %w", err)
		}
	}

	for i, song := range pl.Songs {
		_, err = tx.Exec(`
			INSERT INTO songs (id, playlist_id, position, title, artist, image_url)
			VALUES (?, ?, ?, ?, ?, ?)
		`, shared.GenerateID(), id, i, song.Title, nullable(song.Artist), nullable(song.ImageURL))
		if err != nil {
			return "", fmt.Errorf("failed to insert song %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	pl.ID = id
	return id, nil
}

// GetByURL retrieves a playlist and its songs by URL path, excluding
// soft-deleted playlists.
func (r *PlaylistRepository) GetByURL(url string) (*models.Playlist, error) {
	var (
		pl          models.Playlist
		artist      sql.NullString
		description sql.NullString
	)

	err := r.db.QueryRow(`
		SELECT id, url, title, artist, description
		FROM playlists
		WHERE url = ? AND deleted_at IS NULL
	`, url).Scan(&pl.ID, &pl.URL, &pl.Title, &artist, &description)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", url, shared.ErrPlaylistNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist: %w", err)
	}
	pl.Artist = fromNullable(artist)
	pl.Description = fromNullable(description)

	rows, err := r.db.Query(`
		SELECT title, artist, image_url
		FROM songs
		WHERE playlist_id = ?
		ORDER BY position
	`, pl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			song     models.Song
			artist   sql.NullString
			imageURL sql.NullString
		)
		if err := rows.Scan(&song.Title, &artist, &imageURL); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		song.Artist = fromNullable(artist)
		song.ImageURL = fromNullable(imageURL)
		pl.Songs = append(pl.Songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read songs: %w", err)
	}

	return &pl, nil
}

// List returns metadata for all saved playlists, newest first, without
// loading their songs.
func (r *PlaylistRepository) List() ([]models.Playlist, error) {
	rows, err := r.db.Query(`
		SELECT id, url, title, artist, description
		FROM playlists
		WHERE deleted_at IS NULL
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var out []models.Playlist
	for rows.Next() {
		var (
			pl          models.Playlist
			artist      sql.NullString
			description sql.NullString
		)
		if err := rows.Scan(&pl.ID, &pl.URL, &pl.Title, &artist, &description); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		pl.Artist = fromNullable(artist)
		pl.Description = fromNullable(description)
		out = append(out, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlists: %w", err)
	}

	return out, nil
}

// Delete soft-deletes the playlist stored under the given URL.
func (r *PlaylistRepository) Delete(url string) error {
	res, err := r.db.Exec(`
		UPDATE playlists SET deleted_at = ? WHERE url = ? AND deleted_at IS NULL
	`, now(), url)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", url, shared.ErrPlaylistNotFound)
	}

	return nil
}
