// TMDb implementation of [PosterFinder]
//
// Response shapes follow https://developer.themoviedb.org/reference/search-movie
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/whataflick/flick/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultSearchURL = "https://api.themoviedb.org/3/search/movie"
	defaultImageHost = "https://image.tmdb.org/t/p/w500"
)

// TMDbService resolves movie titles to poster image URLs using the TMDb
// search API. Lookups are rate limited so catalog fan-outs stay polite.
type TMDbService struct {
	apiKey     string
	searchURL  string
	imageHost  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ PosterFinder = (*TMDbService)(nil)

// NewTMDbService creates a poster lookup client from the TMDb config.
func NewTMDbService(cfg shared.TMDbConfig, client *http.Client) *TMDbService {
	if cfg.SearchURL == "" {
		cfg.SearchURL = defaultSearchURL
	}
	if cfg.ImageHost == "" {
		cfg.ImageHost = defaultImageHost
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TMDbService{
		apiKey:     cfg.APIKey,
		searchURL:  cfg.SearchURL,
		imageHost:  cfg.ImageHost,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
	}
}

// Search queries TMDb by title and returns the first result's poster URL.
// Returns [shared.ErrNotFound] when the search yields no usable result.
func (t *TMDbService) Search(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("%w: empty title", shared.ErrInvalidInput)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}

	query := url.Values{}
	query.Set("query", title)
	query.Set("api_key", t.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.searchURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: tmdb status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var result struct {
		Results []struct {
			PosterPath string `json:"poster_path"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", shared.ErrTransport, err)
	}

	if len(result.Results) == 0 || result.Results[0].PosterPath == "" {
		return "", fmt.Errorf("%w: no poster for %q", shared.ErrNotFound, title)
	}

	return t.imageHost + result.Results[0].PosterPath, nil
}

// PosterURL implements [PosterFinder]: any failure degrades to absence so a
// missing poster never blocks rendering.
func (t *TMDbService) PosterURL(ctx context.Context, title string) (string, bool) {
	posterURL, err := t.Search(ctx, title)
	if err != nil {
		return "", false
	}
	return posterURL, true
}
