// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package talent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultQueryTimeout bounds a single provider round-trip
const DefaultQueryTimeout = 10 * time.Second

// Client fetches builder scores and token holdings from the external
// reputation provider. Pure reads; the provider holds no state of ours.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	queryTimeout time.Duration
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: DefaultQueryTimeout},
		queryTimeout: DefaultQueryTimeout,
	}
}

// SetQueryTimeout overrides the per-request timeout. Primarily for tests.
func (c *Client) SetQueryTimeout(d time.Duration) {
	if d > 0 {
		c.queryTimeout = d
	}
}

type scoreResponse struct {
	Score struct {
		Points           float64 `json:"points"`
		LastCalculatedAt string  `json:"last_calculated_at"`
	} `json:"score"`
}

type holdingsResponse struct {
	Holdings struct {
		Amount float64 `json:"amount"`
	} `json:"holdings"`
}

// BuilderScore returns the reputation score for a fid. Callers on the read
// path are expected to substitute 0 on error rather than fail.
func (c *Client) BuilderScore(ctx context.Context, fid int64) (float64, error) {
	var resp scoreResponse
	url := fmt.Sprintf("%s/score?id=%d&account_source=farcaster", c.baseURL, fid)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return 0, err
	}
	if resp.Score.Points < 0 {
		return 0, fmt.Errorf("provider returned negative score %f", resp.Score.Points)
	}
	return resp.Score.Points, nil
}

// Holdings returns the token balance backing a fid's voting power. Same
// degrade-to-zero contract as BuilderScore.
func (c *Client) Holdings(ctx context.Context, fid int64) (float64, error) {
	var resp holdingsResponse
	url := fmt.Sprintf("%s/holdings?id=%d&account_source=farcaster", c.baseURL, fid)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return 0, err
	}
	if resp.Holdings.Amount < 0 {
		return 0, fmt.Errorf("provider returned negative holdings %f", resp.Holdings.Amount)
	}
	return resp.Holdings.Amount, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}
