// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package farcaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultQueryTimeout bounds a single identity lookup round-trip
const DefaultQueryTimeout = 10 * time.Second

// ErrNoUser means the address has no verified identity
var ErrNoUser = errors.New("no user for address")

// User is the identity the provider resolves for a verified address.
// Only FID is load-bearing; the rest is display data.
type User struct {
	FID         int64  `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// Client resolves wallet addresses to social-graph identities
type Client struct {
	baseURL      string
	httpClient   *http.Client
	queryTimeout time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: DefaultQueryTimeout},
		queryTimeout: DefaultQueryTimeout,
	}
}

type verificationResponse struct {
	Result struct {
		User *struct {
			FID int64 `json:"fid"`
		} `json:"user"`
	} `json:"result"`
}

type userResponse struct {
	Result struct {
		User *struct {
			FID         int64  `json:"fid"`
			Username    string `json:"username"`
			DisplayName string `json:"displayName"`
			Pfp         struct {
				URL string `json:"url"`
			} `json:"pfp"`
		} `json:"user"`
	} `json:"result"`
}

// UserByVerification resolves a wallet address to its fid, then fetches the
// full profile. Returns ErrNoUser when the address has no verification.
func (c *Client) UserByVerification(ctx context.Context, address string) (*User, error) {
	var verification verificationResponse
	err := c.getJSON(ctx, c.baseURL+"/v2/user-by-verification?address="+url.QueryEscape(address), &verification)
	if err != nil {
		return nil, err
	}
	if verification.Result.User == nil {
		return nil, ErrNoUser
	}

	return c.UserByFID(ctx, verification.Result.User.FID)
}

// UserByFID fetches the full profile for a fid
func (c *Client) UserByFID(ctx context.Context, fid int64) (*User, error) {
	var resp userResponse
	err := c.getJSON(ctx, fmt.Sprintf("%s/v2/user?fid=%d", c.baseURL, fid), &resp)
	if err != nil {
		return nil, err
	}
	if resp.Result.User == nil {
		return nil, ErrNoUser
	}

	return &User{
		FID:         resp.Result.User.FID,
		Username:    resp.Result.User.Username,
		DisplayName: resp.Result.User.DisplayName,
		AvatarURL:   resp.Result.User.Pfp.URL,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode identity response: %w", err)
	}
	return nil
}
