package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/tunebox/internal/shared"
)

func newMetadataClient(t *testing.T, handler http.HandlerFunc) *MetadataClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg := shared.ProviderConfig{BaseURL: ts.URL, APIKey: "test-key"}
	return NewMetadataClient(context.Background(), cfg, ts.Client(), shared.NewLogger(nil))
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func TestMetadataClient(t *testing.T) {
	ctx := context.Background()

	t.Run("TopTracks", func(t *testing.T) {
		t.Run("parses tracks with object artists and size variants", func(t *testing.T) {
			client := newMetadataClient(t, jsonHandler(`{
				"toptracks": {
					"track": [
						{"name": "Song A", "artist": {"name": "Radiohead"},
						 "image": [{"#text": "s"}, {"#text": "m"}, {"#text": "l"}, {"#text": "xl"}]},
						{"name": "Song B", "artist": {"name": "Radiohead"}, "image": [{"#text": "s"}]}
					],
					"@attr": {"artist": "Radiohead"}
				}
			}`))

			tl, err := client.TopTracks(ctx, "radiohed")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tl.Artist != "Radiohead" {
				t.Errorf("expected corrected artist name, got %q", tl.Artist)
			}
			if len(tl.Songs) != 2 {
				t.Fatalf("expected 2 songs, got %d", len(tl.Songs))
			}
			if tl.Songs[0].ImageURL != "l" {
				t.Errorf("expected the large size variant, got %q", tl.Songs[0].ImageURL)
			}
			if tl.Songs[1].ImageURL != "" {
				t.Errorf("expected no image when the variant is absent, got %q", tl.Songs[1].ImageURL)
			}
		})

		t.Run("accepts a single bare track object", func(t *testing.T) {
			client := newMetadataClient(t, jsonHandler(`{
				"toptracks": {"track": {"name": "Only One", "artist": "Solo"}}
			}`))

			tl, err := client.TopTracks(ctx, "Solo")
			if err != nil {
				t.Fatal(err)
			}
			if len(tl.Songs) != 1 || tl.Songs[0].Title != "Only One" {
				t.Errorf("expected the bare track wrapped in a list, got %v", tl.Songs)
			}
			if tl.Songs[0].Artist != "Solo" {
				t.Errorf("expected string artist accepted, got %q", tl.Songs[0].Artist)
			}
		})

		t.Run("falls back to the requested artist without @attr", func(t *testing.T) {
			client := newMetadataClient(t, jsonHandler(`{"toptracks": {"track": []}}`))

			tl, err := client.TopTracks(ctx, "Requested")
			if err != nil {
				t.Fatal(err)
			}
			if tl.Artist != "Requested" {
				t.Errorf("expected Requested, got %q", tl.Artist)
			}
		})

		t.Run("sends the api key and method", func(t *testing.T) {
			var query map[string][]string
			client := newMetadataClient(t, func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.Query()
				fmt.Fprint(w, `{"toptracks": {"track": []}}`)
			})

			if _, err := client.TopTracks(ctx, "X"); err != nil {
				t.Fatal(err)
			}
			for key, want := range map[string]string{
				"method":      "artist.gettoptracks",
				"api_key":     "test-key",
				"format":      "json",
				"autocorrect": "1",
				"artist":      "X",
			} {
				if got := query[key]; len(got) != 1 || got[0] != want {
					t.Errorf("expected %s=%s, got %v", key, want, got)
				}
			}
		})
	})

	t.Run("AlbumInfo", func(t *testing.T) {
		client := newMetadataClient(t, jsonHandler(`{
			"album": {
				"name": "OK Computer",
				"artist": "Radiohead",
				"image": [{"#text": "cover-small"}, {"#text": "cover-large"}],
				"wiki": {"summary": "A 1997 album."},
				"tracks": {"track": [
					{"name": "Airbag", "artist": {"name": "Radiohead"}},
					{"name": "Paranoid Android", "artist": {"name": "Radiohead"}}
				]}
			}
		}`))

		album, err := client.AlbumInfo(ctx, "Radiohead", "OK Computer")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if album.Name != "OK Computer" || album.Artist != "Radiohead" {
			t.Errorf("unexpected album identity %q / %q", album.Name, album.Artist)
		}
		if album.Summary != "A 1997 album." {
			t.Errorf("unexpected summary %q", album.Summary)
		}
		if album.ImageURL != "cover-small" {
			t.Errorf("expected the first cover variant, got %q", album.ImageURL)
		}
		if len(album.Songs) != 2 {
			t.Errorf("expected 2 songs, got %d", len(album.Songs))
		}
	})

	t.Run("SimilarTracks", func(t *testing.T) {
		t.Run("passes the limit through", func(t *testing.T) {
			var query map[string][]string
			client := newMetadataClient(t, func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.Query()
				fmt.Fprint(w, `{"similartracks": {"track": [{"name": "Close"}]}}`)
			})

			tl, err := client.SimilarTracks(ctx, "A", "T", 10)
			if err != nil {
				t.Fatal(err)
			}
			if got := query["limit"]; len(got) != 1 || got[0] != "10" {
				t.Errorf("expected limit=10, got %v", got)
			}
			if tl.Artist != "A" || len(tl.Songs) != 1 {
				t.Errorf("unexpected track list %+v", tl)
			}
		})
	})

	t.Run("error payloads", func(t *testing.T) {
		t.Run("unknown artist code maps to ErrArtistNotFound", func(t *testing.T) {
			client := newMetadataClient(t, jsonHandler(`{"error": 6, "message": "The artist you supplied could not be found"}`))

			_, err := client.SimilarTracks(ctx, "Nobody", "Nothing", 10)
			if !errors.Is(err, shared.ErrArtistNotFound) {
				t.Fatalf("expected ErrArtistNotFound, got %v", err)
			}

			var perr *ProviderError
			if !errors.As(err, &perr) || perr.Code != 6 {
				t.Errorf("expected a code 6 provider error, got %v", err)
			}
		})

		t.Run("other codes stay plain provider errors", func(t *testing.T) {
			client := newMetadataClient(t, jsonHandler(`{"error": 10, "message": "Invalid API key"}`))

			_, err := client.TopTracks(ctx, "X")
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, shared.ErrArtistNotFound) {
				t.Error("expected no artist-not-found mapping for code 10")
			}
		})

		t.Run("error body is sniffed before the status code", func(t *testing.T) {
			client := newMetadataClient(t, func(w http.ResponseWriter, r *http.Request) {
				// providers return error payloads with a 200 as often as not
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"error": 6, "message": "not found"}`)
			})

			_, err := client.TopTracks(ctx, "X")
			if !errors.Is(err, shared.ErrArtistNotFound) {
				t.Fatalf("expected ErrArtistNotFound, got %v", err)
			}
		})

		t.Run("non-2xx without an error payload is an API error", func(t *testing.T) {
			client := newMetadataClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				fmt.Fprint(w, `{}`)
			})

			_, err := client.TopTracks(ctx, "X")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
		})
	})
}
