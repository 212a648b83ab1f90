// Package tmdb adapts the external movie-metadata HTTP API into method calls.
// Every outgoing request carries the configured bearer token. No retries,
// no caching, no rate-limit handling.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPage     = 1
	DefaultLanguage = "en-US"
	DefaultRegion   = "US"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL, token string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With(zap.String("client", "tmdb")),
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client,
// intended for tests injecting an httptest server.
func NewClientWithHTTPClient(baseURL, token string, httpClient *http.Client, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		log:        log.With(zap.String("client", "tmdb")),
	}
}

// FetchPersonDetails fetches person details by id
func (c *Client) FetchPersonDetails(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, "person/"+url.PathEscape(id), nil)
}

// FetchMovieDetails fetches movie details by id, credits included
func (c *Client) FetchMovieDetails(ctx context.Context, id string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")
	return c.get(ctx, "movie/"+url.PathEscape(id), params)
}

// FetchPopularMovies lists popular movies
func (c *Client) FetchPopularMovies(ctx context.Context, page int, language, region string) (json.RawMessage, error) {
	return c.get(ctx, "movie/popular", listParams(page, language, region))
}

// FetchNowPlayingMovies lists movies currently in theaters
func (c *Client) FetchNowPlayingMovies(ctx context.Context, page int, language, region string) (json.RawMessage, error) {
	return c.get(ctx, "movie/now_playing", listParams(page, language, region))
}

// FetchTopRatedMovies lists top rated movies
func (c *Client) FetchTopRatedMovies(ctx context.Context, page int, language, region string) (json.RawMessage, error) {
	return c.get(ctx, "movie/top_rated", listParams(page, language, region))
}

// FetchUpcomingMovies lists upcoming movies
func (c *Client) FetchUpcomingMovies(ctx context.Context, page int, language, region string) (json.RawMessage, error) {
	return c.get(ctx, "movie/upcoming", listParams(page, language, region))
}

// SearchMovies searches movies by title. Cancellation is driven by ctx.
func (c *Client) SearchMovies(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.get(ctx, "search/movie", params)
}

// SearchPeople searches people by name
func (c *Client) SearchPeople(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.get(ctx, "search/person", params)
}

func listParams(page int, language, region string) url.Values {
	if page < 1 {
		page = DefaultPage
	}
	if language == "" {
		language = DefaultLanguage
	}
	if region == "" {
		region = DefaultRegion
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("language", language)
	params.Set("region", region)
	return params
}

// get performs a GET request against the API and returns the raw JSON body
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	endpoint := c.baseURL + "/" + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tmdb request %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tmdb response %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("TMDB request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("tmdb request %s: unexpected status %d", path, resp.StatusCode)
	}

	return json.RawMessage(body), nil
}
