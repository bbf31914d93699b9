// package services defines clients for the external providers the player consumes
//
// video search (song resolution), track metadata (derived playlists)
package services

import (
	"context"

	"github.com/desertthunder/tunebox/internal/models"
)

// Resolver maps a song descriptor to a playable video id via search.
type Resolver interface {
	// Resolve returns the top-ranked video id for the given title and
	// artist. The artist may be empty. Errors wrap shared.ErrTrackNotFound
	// when no playable result exists after the fallback retry, or
	// shared.ErrAPIRequest on transport failure.
	Resolve(ctx context.Context, title, artist string) (string, error)
}

// MetadataProvider supplies track listings used to build derived playlists.
type MetadataProvider interface {
	// TopTracks returns an artist's most popular tracks.
	TopTracks(ctx context.Context, artist string) (*TrackList, error)

	// AlbumInfo returns an album's track listing and description.
	AlbumInfo(ctx context.Context, artist, album string) (*Album, error)

	// SimilarTracks returns up to limit tracks similar to the given one.
	SimilarTracks(ctx context.Context, artist, track string, limit int) (*TrackList, error)
}

// TrackList is a normalized provider track listing.
type TrackList struct {
	Artist string // corrected artist name reported by the provider
	Songs  []models.Song
}

// Album is a normalized provider album listing.
type Album struct {
	Name     string
	Artist   string
	Summary  string
	ImageURL string
	Songs    []models.Song
}
