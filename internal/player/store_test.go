package player

import (
	"errors"
	"testing"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

func songList(titles ...string) []models.Song {
	songs := make([]models.Song, len(titles))
	for i, t := range titles {
		songs[i] = models.Song{Title: t, Artist: "Artist"}
	}
	return songs
}

func storeTitles(s *Store) []string {
	songs := s.Songs()
	titles := make([]string, len(songs))
	for i, song := range songs {
		titles[i] = song.Title
	}
	return titles
}

func assertOrder(t *testing.T, s *Store, want ...string) {
	t.Helper()
	got := storeTitles(s)
	if len(got) != len(want) {
		t.Fatalf("expected %d songs, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestStore(t *testing.T) {
	t.Run("Insert", func(t *testing.T) {
		s := NewStore()
		if n := s.Insert(models.Song{Title: "a"}); n != 1 {
			t.Errorf("expected length 1, got %d", n)
		}
		if n := s.Insert(models.Song{Title: "b"}); n != 2 {
			t.Errorf("expected length 2, got %d", n)
		}
		assertOrder(t, s, "a", "b")
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("shifts later entries down", func(t *testing.T) {
			s := NewStore()
			s.Replace(songList("a", "b", "c", "d"))
			if err := s.Remove(1); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			assertOrder(t, s, "a", "c", "d")
		})

		t.Run("rejects out-of-range index", func(t *testing.T) {
			s := NewStore()
			s.Replace(songList("a"))
			if err := s.Remove(1); !errors.Is(err, shared.ErrIndexOutOfRange) {
				t.Errorf("expected ErrIndexOutOfRange, got %v", err)
			}
			if err := s.Remove(-1); !errors.Is(err, shared.ErrIndexOutOfRange) {
				t.Errorf("expected ErrIndexOutOfRange, got %v", err)
			}
		})

		t.Run("remove then insert keeps contiguous indexing", func(t *testing.T) {
			s := NewStore()
			s.Replace(songList("a", "b", "c"))
			if err := s.Remove(0); err != nil {
				t.Fatal(err)
			}
			s.Insert(models.Song{Title: "d"})
			assertOrder(t, s, "b", "c", "d")
			for i := 0; i < s.Len(); i++ {
				if _, ok := s.At(i); !ok {
					t.Errorf("expected index %d to be occupied", i)
				}
			}
			if _, ok := s.At(s.Len()); ok {
				t.Error("expected index past the end to be vacant")
			}
		})
	})

	t.Run("Move", func(t *testing.T) {
		t.Run("moves forward", func(t *testing.T) {
			s := NewStore()
			s.Replace(songList("a", "b", "c", "d"))
			if err := s.Move(0, 2); err != nil {
				t.Fatal(err)
			}
			assertOrder(t, s, "b", "c", "a", "d")
		})

		t.Run("moves backward", func(t *testing.T) {
			s := NewStore()
			s.Replace(songList("a", "b", "c", "d"))
			if err := s.Move(3, 1); err != nil {
				t.Fatal(err)
			}
			assertOrder(t, s, "a", "d", "b", "c")
		})

		t.Run("round-trip restores original order", func(t *testing.T) {
			for oldIdx := 0; oldIdx < 4; oldIdx++ {
				for newIdx := 0; newIdx < 4; newIdx++ {
					if oldIdx == newIdx {
						continue
					}
					s := NewStore()
					s.Replace(songList("a", "b", "c", "d"))
					if err := s.Move(oldIdx, newIdx); err != nil {
						t.Fatal(err)
					}
					if err := s.Move(newIdx, oldIdx); err != nil {
						t.Fatal(err)
					}
					assertOrder(t, s, "a", "b", "c", "d")
				}
			}
		})

		t.Run("same index is a no-op", func(t *testing.T) {
			s := NewStore()
			s.Replace(songList("a", "b"))
			if err := s.Move(1, 1); err != nil {
				t.Fatal(err)
			}
			assertOrder(t, s, "a", "b")
		})

		t.Run("rejects out-of-range indices", func(t *testing.T) {
			s := NewStore()
			s.Replace(songList("a", "b"))
			if err := s.Move(2, 0); !errors.Is(err, shared.ErrIndexOutOfRange) {
				t.Errorf("expected ErrIndexOutOfRange, got %v", err)
			}
			if err := s.Move(0, 5); !errors.Is(err, shared.ErrIndexOutOfRange) {
				t.Errorf("expected ErrIndexOutOfRange, got %v", err)
			}
		})
	})

	t.Run("MarkMissing travels with the song", func(t *testing.T) {
		s := NewStore()
		s.Replace(songList("a", "b", "c"))
		s.MarkMissing(2)
		if err := s.Move(2, 0); err != nil {
			t.Fatal(err)
		}
		if song, _ := s.At(0); !song.Missing {
			t.Error("expected moved song to stay flagged as missing")
		}
	})

	t.Run("Replace discards previous contents", func(t *testing.T) {
		s := NewStore()
		s.Replace(songList("a", "b"))
		s.Replace(songList("x"))
		assertOrder(t, s, "x")
	})
}
