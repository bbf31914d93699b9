package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testPlaylist() *models.Playlist {
	return &models.Playlist{
		Title:       "Burial's Top Songs",
		URL:         "/burial",
		Artist:      "Burial",
		Description: "Top tracks",
		Songs: []models.Song{
			{Title: "Archangel", Artist: "Burial", ImageURL: "http://img/1.jpg"},
			{Title: "Ghost Hardware", Artist: "Burial"},
			{Title: "Near Dark", Artist: "Burial"},
		},
	}
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("Save and GetByURL round-trip preserves order", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)

		pl := testPlaylist()
		id, err := repo.Save(pl)
		if err != nil {
			t.Fatalf("expected save to succeed, got %v", err)
		}
		if id == "" || pl.ID != id {
			t.Errorf("expected the id stamped back onto the playlist, got %q / %q", id, pl.ID)
		}

		got, err := repo.GetByURL("/burial")
		if err != nil {
			t.Fatalf("expected fetch to succeed, got %v", err)
		}
		if got.Title != pl.Title || got.Artist != pl.Artist || got.Description != pl.Description {
			t.Errorf("metadata mismatch: %+v", got)
		}
		if len(got.Songs) != 3 {
			t.Fatalf("expected 3 songs, got %d", len(got.Songs))
		}
		for i, want := range []string{"Archangel", "Ghost Hardware", "Near Dark"} {
			if got.Songs[i].Title != want {
				t.Errorf("song %d: expected %q, got %q", i, want, got.Songs[i].Title)
			}
		}
		if got.Songs[0].ImageURL != "http://img/1.jpg" {
			t.Errorf("unexpected image url %q", got.Songs[0].ImageURL)
		}
		if got.Songs[1].ImageURL != "" {
			t.Errorf("expected empty image url, got %q", got.Songs[1].ImageURL)
		}
	})

	t.Run("Save with the same URL replaces the song list", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)

		pl := testPlaylist()
		first, err := repo.Save(pl)
		if err != nil {
			t.Fatal(err)
		}

		pl.Title = "Burial, revisited"
		pl.Songs = []models.Song{{Title: "Untrue", Artist: "Burial"}}
		second, err := repo.Save(pl)
		if err != nil {
			t.Fatal(err)
		}
		if first != second {
			t.Errorf("expected the same playlist id, got %q then %q", first, second)
		}

		got, err := repo.GetByURL("/burial")
		if err != nil {
			t.Fatal(err)
		}
		if got.Title != "Burial, revisited" {
			t.Errorf("expected updated title, got %q", got.Title)
		}
		if len(got.Songs) != 1 || got.Songs[0].Title != "Untrue" {
			t.Errorf("expected the replaced song list, got %+v", got.Songs)
		}
	})

	t.Run("Save rejects a playlist without a URL", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)

		_, err := repo.Save(&models.Playlist{Title: "No URL"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("GetByURL reports missing playlists", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)

		_, err := repo.GetByURL("/nobody")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("List returns saved playlists without songs", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)

		if _, err := repo.Save(testPlaylist()); err != nil {
			t.Fatal(err)
		}
		other := &models.Playlist{Title: "Other", URL: "/other"}
		if _, err := repo.Save(other); err != nil {
			t.Fatal(err)
		}

		playlists, err := repo.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		for _, pl := range playlists {
			if len(pl.Songs) != 0 {
				t.Errorf("expected no songs loaded for %q", pl.URL)
			}
		}
	})

	t.Run("Delete hides the playlist from reads", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)

		if _, err := repo.Save(testPlaylist()); err != nil {
			t.Fatal(err)
		}
		if err := repo.Delete("/burial"); err != nil {
			t.Fatalf("expected delete to succeed, got %v", err)
		}

		if _, err := repo.GetByURL("/burial"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound after delete, got %v", err)
		}

		playlists, err := repo.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(playlists) != 0 {
			t.Errorf("expected no playlists listed, got %d", len(playlists))
		}

		// the row survives the soft delete
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM playlists WHERE url = '/burial'`).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("expected the soft-deleted row retained, got %d rows", count)
		}
	})

	t.Run("Delete on a missing URL reports not found", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)

		if err := repo.Delete("/nothing"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("saving a deleted URL creates a fresh playlist", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)

		pl := testPlaylist()
		first, err := repo.Save(pl)
		if err != nil {
			t.Fatal(err)
		}
		if err := repo.Delete("/burial"); err != nil {
			t.Fatal(err)
		}

		second, err := repo.Save(testPlaylist())
		if err != nil {
			t.Fatal(err)
		}
		if first == second {
			t.Errorf("expected a new id after delete, got %q twice", first)
		}
	})
}

func TestViewRepository(t *testing.T) {
	t.Run("Record and Recent round-trip", func(t *testing.T) {
		db := newTestDB(t)
		playlists := NewPlaylistRepository(db)
		views := NewViewRepository(db)

		plID, err := playlists.Save(testPlaylist())
		if err != nil {
			t.Fatal(err)
		}

		if _, err := views.Record("/burial", "Burial's Top Songs", plID); err != nil {
			t.Fatalf("expected record to succeed, got %v", err)
		}
		if _, err := views.Record("/elsewhere", "Elsewhere", ""); err != nil {
			t.Fatal(err)
		}

		recent, err := views.Recent(10)
		if err != nil {
			t.Fatal(err)
		}
		if len(recent) != 2 {
			t.Fatalf("expected 2 views, got %d", len(recent))
		}
		for _, v := range recent {
			switch v.Path {
			case "/burial":
				if v.PlaylistID != plID {
					t.Errorf("expected playlist id %q, got %q", plID, v.PlaylistID)
				}
			case "/elsewhere":
				if v.PlaylistID != "" {
					t.Errorf("expected empty playlist id, got %q", v.PlaylistID)
				}
			default:
				t.Errorf("unexpected view %+v", v)
			}
		}
	})

	t.Run("Recent applies a default limit", func(t *testing.T) {
		db := newTestDB(t)
		views := NewViewRepository(db)

		if _, err := views.Record("/a", "A", ""); err != nil {
			t.Fatal(err)
		}

		recent, err := views.Recent(0)
		if err != nil {
			t.Fatal(err)
		}
		if len(recent) != 1 {
			t.Errorf("expected 1 view, got %d", len(recent))
		}
	})
}
