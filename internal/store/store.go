// Package store provides session directory operations: listing with
// client-side filters and single-session lookup. The API returns the full
// unfiltered list, so status and date narrowing happen locally, and the
// limit bounds the filtered result rather than the raw list.
package store

import (
	"context"
	"time"

	"remotelog/internal/api"
)

// ListOptions controls session list filtering.
type ListOptions struct {
	// Status retains sessions whose session_status equals this value.
	Status string
	// After retains sessions created at or after this instant (inclusive).
	After *time.Time
	// Before retains sessions created strictly before this instant
	// (exclusive upper bound).
	Before *time.Time
	// Limit caps the filtered result. Zero or negative means no limit.
	Limit int
}

// Directory exposes the session directory over an API client.
type Directory struct {
	client *api.Client
}

// NewDirectory wraps an API client.
func NewDirectory(client *api.Client) *Directory {
	return &Directory{client: client}
}

// List fetches all sessions and applies filters then the limit.
func (d *Directory) List(ctx context.Context, opts ListOptions) ([]api.Session, error) {
	sessions, err := d.client.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(sessions, opts), nil
}

// Get fetches a single session's metadata.
func (d *Directory) Get(ctx context.Context, sessionID string) (api.Session, error) {
	return d.client.GetSession(ctx, sessionID)
}

// Filter applies status and date-range filters, then truncates to the limit.
// Sessions without a parseable creation timestamp pass the date filters.
func Filter(sessions []api.Session, opts ListOptions) []api.Session {
	out := make([]api.Session, 0, len(sessions))
	for _, s := range sessions {
		if opts.Status != "" && s.SessionStatus != opts.Status {
			continue
		}
		created := s.CreatedTime()
		if !created.IsZero() {
			if opts.After != nil && created.Before(*opts.After) {
				continue
			}
			if opts.Before != nil && !created.Before(*opts.Before) {
				continue
			}
		}
		out = append(out, s)
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}
