package api

import (
	"context"
	"fmt"
	"strings"
)

// ValidateSessionID checks the session_<alphanumeric> id format before any
// request goes out.
func ValidateSessionID(id string) error {
	if !strings.HasPrefix(id, "session_") || len(id) < 16 {
		return fmt.Errorf("invalid session id %q: expected session_01... (e.g. session_01QJaJSUgfY6khmFTzJaMqph)", id)
	}
	return nil
}

// ListSessions fetches the full unfiltered session list.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var resp SessionsListResponse
	if err := c.get(ctx, "/v1/sessions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetSession fetches metadata for one session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (Session, error) {
	var session Session
	if err := c.get(ctx, "/v1/sessions/"+sessionID, nil, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Loglines fetches the compact logline records from the session ingress
// endpoint. Unlike events, this response is not paginated.
func (c *Client) Loglines(ctx context.Context, sessionID string) ([]Logline, error) {
	var resp IngressResponse
	if err := c.get(ctx, "/v1/session_ingress/session/"+sessionID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Loglines, nil
}
