package player

import (
	"fmt"
	"sync"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

// Store is the ordered, mutable song sequence for the active playlist.
//
// Song identity is positional: every operation keeps indices contiguous in
// [0, Len()) with no gaps. The controller translates moves and removals into
// position-tracking updates; the store is pure data.
type Store struct {
	mu    sync.RWMutex
	songs []models.Song
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new song sequence wholesale, discarding the old one.
func (s *Store) Replace(songs []models.Song) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.songs = make([]models.Song, len(songs))
	copy(s.songs, songs)
}

// Insert appends a song and returns the new length.
func (s *Store) Insert(song models.Song) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.songs = append(s.songs, song)
	return len(s.songs)
}

// Remove deletes the entry at index; subsequent entries shift down by one.
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.songs) {
		return fmt.Errorf("remove %d of %d: %w", index, len(s.songs), shared.ErrIndexOutOfRange)
	}

	s.songs = append(s.songs[:index], s.songs[index+1:]...)
	return nil
}

// Move relocates the entry at oldIndex to newIndex; entries between the two
// positions shift by one toward the vacated slot. No-op when the indices
// are equal.
func (s *Store) Move(oldIndex, newIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.songs)
	if oldIndex < 0 || oldIndex >= n {
		return fmt.Errorf("move from %d of %d: %w", oldIndex, n, shared.ErrIndexOutOfRange)
	}
	if newIndex < 0 || newIndex >= n {
		return fmt.Errorf("move to %d of %d: %w", newIndex, n, shared.ErrIndexOutOfRange)
	}
	if oldIndex == newIndex {
		return nil
	}

	song := s.songs[oldIndex]
	s.songs = append(s.songs[:oldIndex], s.songs[oldIndex+1:]...)
	s.songs = append(s.songs[:newIndex], append([]models.Song{song}, s.songs[newIndex:]...)...)
	return nil
}

// Len returns the number of songs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.songs)
}

// At returns the song at index and whether the index was in range.
func (s *Store) At(index int) (models.Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.songs) {
		return models.Song{}, false
	}
	return s.songs[index], true
}

// Songs returns a copy of the current sequence.
func (s *Store) Songs() []models.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Song, len(s.songs))
	copy(out, s.songs)
	return out
}

// MarkMissing flags the song at index as unresolvable. The flag travels
// with the song across later moves.
func (s *Store) MarkMissing(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.songs) {
		s.songs[index].Missing = true
	}
}
