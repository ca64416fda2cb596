// Package api implements the Claude Code sessions API client: session
// directory operations, the paginated event fetch loop, and the session
// ingress logline endpoint. The API offers no server-side filtering, so this
// package only retrieves; narrowing happens in the query package.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"remotelog/internal/auth"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.anthropic.com"
	// DefaultTimeout bounds each individual page request.
	DefaultTimeout = 30 * time.Second

	anthropicVersion = "2023-06-01"
	anthropicBeta    = "ccr-byoc-2025-07-29"

	maxErrorBody = 4096
)

// Config controls client construction. Token and OrgUUID must both be
// present before any request is issued; Connect resolves them from the
// credential sources when left empty.
type Config struct {
	BaseURL string
	Token   string
	OrgUUID string
	Timeout time.Duration
	// Logger receives per-request debug traces. The zero value is silent.
	Logger zerolog.Logger
}

// Client talks to the sessions API. It performs no retries: a transient
// failure surfaces to the caller rather than being masked.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	orgUUID string
	log     zerolog.Logger
}

// NewClient builds a client from fully resolved configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: access token is required", auth.ErrNoCredentials)
	}
	if cfg.OrgUUID == "" {
		return nil, fmt.Errorf("%w: organization uuid is required", auth.ErrNoCredentials)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		orgUUID: cfg.OrgUUID,
		log:     cfg.Logger,
	}, nil
}

// Connect loads credentials (when cfg.Token is empty), resolves the
// organization uuid from the OAuth profile (when cfg.OrgUUID is empty), and
// returns a ready client.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Token == "" {
		creds, err := auth.Load()
		if err != nil {
			return nil, err
		}
		cfg.Token = creds.ClaudeAIOAuth.AccessToken
	}
	if cfg.OrgUUID == "" {
		org, err := fetchOrgUUID(ctx, cfg)
		if err != nil {
			return nil, err
		}
		cfg.OrgUUID = org
	}
	return NewClient(cfg)
}

// fetchOrgUUID resolves the organization the token belongs to.
func fetchOrgUUID(ctx context.Context, cfg Config) (string, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	const endpoint = "/api/oauth/profile"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(base, "/")+endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", &RequestError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)) + " (token may be expired)",
		}
	}

	var profile struct {
		Organization struct {
			UUID string `json:"uuid"`
		} `json:"organization"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	if profile.Organization.UUID == "" {
		return "", fmt.Errorf("%s response has no organization uuid", endpoint)
	}
	return profile.Organization.UUID, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("x-organization-uuid", c.orgUUID)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("anthropic-beta", anthropicBeta)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("endpoint", endpoint).Msg("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &NotFoundError{Endpoint: endpoint}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
