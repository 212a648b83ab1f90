// Package usersapi calls the peer Users service that owns user accounts.
package usersapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With(zap.String("client", "usersapi")),
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client,
// intended for tests injecting an httptest server.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log.With(zap.String("client", "usersapi")),
	}
}

// FetchUserDetails fetches a user's public profile by id
func (c *Client) FetchUserDetails(ctx context.Context, id string) (json.RawMessage, error) {
	endpoint := c.baseURL + "/users/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build users request for %s: %w", id, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("users request for %s: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read users response for %s: %w", id, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Users request failed",
			zap.String("user_id", id),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("users request for %s: unexpected status %d", id, resp.StatusCode)
	}

	return json.RawMessage(body), nil
}
