// Track-metadata provider implementation of [MetadataProvider]
//
// Response shapes follow the audioscrobbler-style JSON API: track lists may
// arrive as a bare object instead of an array, artists may be nested objects
// or plain strings, and images come as an array of size variants.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

// artistNotFoundCode is the provider's error code for an unknown artist.
// The similar-tracks path degrades to a single-song playlist on this code.
const artistNotFoundCode = 6

// ProviderError is a structured error payload returned by the metadata API.
type ProviderError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// Is reports shared.ErrArtistNotFound for code 6 payloads so callers can
// branch with errors.Is without inspecting codes.
func (e *ProviderError) Is(target error) bool {
	return target == shared.ErrArtistNotFound && e.Code == artistNotFoundCode
}

// MetadataClient implements [MetadataProvider] over HTTP.
type MetadataClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *log.Logger
}

// NewMetadataClient creates a metadata client from provider configuration.
//
// When a client id/secret pair is configured, requests go through an OAuth2
// client-credentials transport that fetches and refreshes bearer tokens.
// Otherwise the api key is sent as a query parameter on each request.
func NewMetadataClient(ctx context.Context, cfg shared.ProviderConfig, client *http.Client, logger *log.Logger) *MetadataClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://ws.audioscrobbler.com"
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.BaseURL + "/oauth/access_token",
		}
		client = cc.Client(ctx)
	}

	return &MetadataClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: client,
		logger:     logger,
	}
}

// providerImage is one entry of a track's image size-variant array.
type providerImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// providerArtist accepts both `"artist": "Name"` and `"artist": {"name": "Name"}`.
type providerArtist struct {
	Name string
}

func (a *providerArtist) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Name = s
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unexpected artist payload: %w", err)
	}
	a.Name = obj.Name
	return nil
}

// providerTrack is a single track in a provider track list.
type providerTrack struct {
	Name   string          `json:"name"`
	Artist providerArtist  `json:"artist"`
	Images []providerImage `json:"image"`
}

// trackItems accepts both an array of tracks and a single bare track object,
// normalizing the latter into a one-element list.
type trackItems []providerTrack

func (t *trackItems) UnmarshalJSON(data []byte) error {
	var many []providerTrack
	if err := json.Unmarshal(data, &many); err == nil {
		*t = many
		return nil
	}

	var one providerTrack
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("unexpected track list payload: %w", err)
	}
	*t = trackItems{one}
	return nil
}

// imageVariantIndex selects the size variant used for song artwork.
const imageVariantIndex = 2

// songsFromTracks maps provider tracks to song descriptors.
func songsFromTracks(tracks trackItems) []models.Song {
	songs := make([]models.Song, 0, len(tracks))
	for _, t := range tracks {
		song := models.Song{
			Title:  t.Name,
			Artist: t.Artist.Name,
		}
		if len(t.Images) > imageVariantIndex {
			song.ImageURL = t.Images[imageVariantIndex].URL
		}
		songs = append(songs, song)
	}
	return songs
}

func (m *MetadataClient) doRequest(ctx context.Context, method string, params url.Values, result any) error {
	params.Set("method", method)
	params.Set("format", "json")
	params.Set("autocorrect", "1")
	if m.apiKey != "" {
		params.Set("api_key", m.apiKey)
	}

	endpoint := fmt.Sprintf("%s/2.0/?%s", m.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Error payloads come back with a 200 as often as not, so sniff the
	// body before the status code.
	var perr ProviderError
	if err := json.Unmarshal(body, &perr); err == nil && perr.Code != 0 {
		return &perr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: metadata API returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// TopTracks retrieves an artist's most popular tracks.
func (m *MetadataClient) TopTracks(ctx context.Context, artist string) (*TrackList, error) {
	var payload struct {
		TopTracks struct {
			Track trackItems `json:"track"`
			Attr  struct {
				Artist string `json:"artist"`
			} `json:"@attr"`
		} `json:"toptracks"`
	}

	params := url.Values{"artist": {artist}}
	if err := m.doRequest(ctx, "artist.gettoptracks", params, &payload); err != nil {
		return nil, err
	}

	name := payload.TopTracks.Attr.Artist
	if name == "" {
		name = artist
	}

	return &TrackList{
		Artist: name,
		Songs:  songsFromTracks(payload.TopTracks.Track),
	}, nil
}

// AlbumInfo retrieves an album's track listing, summary, and cover image.
func (m *MetadataClient) AlbumInfo(ctx context.Context, artist, album string) (*Album, error) {
	var payload struct {
		Album struct {
			Name   string          `json:"name"`
			Artist providerArtist  `json:"artist"`
			Images []providerImage `json:"image"`
			Wiki   struct {
				Summary string `json:"summary"`
			} `json:"wiki"`
			Tracks struct {
				Track trackItems `json:"track"`
			} `json:"tracks"`
		} `json:"album"`
	}

	params := url.Values{"artist": {artist}, "album": {album}}
	if err := m.doRequest(ctx, "album.getinfo", params, &payload); err != nil {
		return nil, err
	}

	out := &Album{
		Name:    payload.Album.Name,
		Artist:  payload.Album.Artist.Name,
		Summary: payload.Album.Wiki.Summary,
		Songs:   songsFromTracks(payload.Album.Tracks.Track),
	}
	if len(payload.Album.Images) > 0 {
		out.ImageURL = payload.Album.Images[0].URL
	}

	return out, nil
}

// SimilarTracks retrieves up to limit tracks similar to the given one.
func (m *MetadataClient) SimilarTracks(ctx context.Context, artist, track string, limit int) (*TrackList, error) {
	var payload struct {
		SimilarTracks struct {
			Track trackItems `json:"track"`
		} `json:"similartracks"`
	}

	params := url.Values{"artist": {artist}, "track": {track}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if err := m.doRequest(ctx, "track.getsimilar", params, &payload); err != nil {
		return nil, err
	}

	return &TrackList{
		Artist: artist,
		Songs:  songsFromTracks(payload.SimilarTracks.Track),
	}, nil
}
