package services

import (
	"fmt"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

// PlaylistFromArtistTracks builds a playlist from an artist's top tracks.
func PlaylistFromArtistTracks(tl *TrackList) models.Playlist {
	return models.Playlist{
		Artist: tl.Artist,
		Title:  fmt.Sprintf("%s's Top Songs", tl.Artist),
		URL:    "/" + shared.Slugify(tl.Artist),
		Songs:  tl.Songs,
	}
}

// PlaylistFromAlbum builds a playlist from an album listing. The album cover
// is stamped onto every song so the whole list shares its artwork.
func PlaylistFromAlbum(a *Album) models.Playlist {
	pl := models.Playlist{
		Artist:      a.Artist,
		Title:       fmt.Sprintf("%q by %s", a.Name, a.Artist),
		URL:         "/" + shared.Slugify(a.Artist) + "/album/" + shared.Slugify(a.Name),
		Description: a.Summary,
		Songs:       a.Songs,
	}

	if a.ImageURL != "" {
		for i := range pl.Songs {
			pl.Songs[i].ImageURL = a.ImageURL
		}
	}

	return pl
}

// PlaylistFromSimilarTracks builds a playlist seeded by the original track,
// followed by the provider's similar tracks. A nil track list produces the
// degraded one-song playlist used when the provider does not know the artist.
func PlaylistFromSimilarTracks(title, artist string, tl *TrackList) models.Playlist {
	original := models.Song{Title: title, Artist: artist}

	pl := models.Playlist{
		Title:       title,
		URL:         "/" + shared.Slugify(artist) + "/" + shared.Slugify(title),
		Description: fmt.Sprintf("Listen to %q by %s and more songs that go great with it.", title, artist),
	}

	if tl != nil {
		pl.Songs = append([]models.Song{original}, tl.Songs...)
	} else {
		pl.Songs = []models.Song{original}
	}

	return pl
}
