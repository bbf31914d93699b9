// Video search [Resolver] implementation
//
// Queries the search provider's video feed and returns the top-ranked
// embeddable result for a free-text query.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/shared"
	"golang.org/x/time/rate"
)

const defaultSearchBaseURL string = "https://gdata.youtube.com"

// searchVideo represents a single entry in a search feed response.
type searchVideo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type searchResponse struct {
	Data struct {
		Items []searchVideo `json:"items"`
	} `json:"data"`
}

// SearchClient implements [Resolver] against the video search provider.
//
// Stateless across calls; a rate limiter paces outgoing queries so retry
// fallbacks cannot hammer the provider.
type SearchClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSearchClient creates a new search client. A zero or negative
// queriesPerSec disables rate limiting.
func NewSearchClient(baseURL string, client *http.Client, queriesPerSec float64, logger *log.Logger) *SearchClient {
	if baseURL == "" {
		baseURL = defaultSearchBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	var limiter *rate.Limiter
	if queriesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(queriesPerSec), 1)
	}

	return &SearchClient{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    limiter,
		logger:     logger,
	}
}

// Resolve returns the top result's video id for "title artist".
//
// When the full query yields nothing and the artist was non-empty, one
// broader title-only retry is issued. A second empty result set is reported
// as shared.ErrTrackNotFound carrying the original query; the caller decides
// what to do with the gap.
func (s *SearchClient) Resolve(ctx context.Context, title, artist string) (string, error) {
	query := strings.TrimSpace(title + " " + artist)

	id, err := s.search(ctx, query)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	if artist != "" {
		id, err = s.search(ctx, title)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}

	s.logger.Info("no songs found", "query", query)
	return "", fmt.Errorf("no playable result for %q: %w", query, shared.ErrTrackNotFound)
}

// search issues a single query and returns the top result's id, or "" when
// the result set is empty.
func (s *SearchClient) search(ctx context.Context, query string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	// format=5 restricts results to embeddable videos.
	endpoint := fmt.Sprintf("%s/feeds/api/videos?q=%s&format=5&max-results=1&alt=json", s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: search returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var feed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(feed.Data.Items) == 0 {
		return "", nil
	}

	return feed.Data.Items[0].ID, nil
}
