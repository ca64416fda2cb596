package api

import (
	"context"
	"net/url"

	"remotelog/internal/event"
)

// EventsPage is one response from the paginated events endpoint. The page
// size is fixed by the server; the loop below handles any size.
type EventsPage struct {
	Data    []event.SessionEvent `json:"data"`
	FirstID string               `json:"first_id,omitempty"`
	LastID  string               `json:"last_id,omitempty"`
	HasMore bool                 `json:"has_more,omitempty"`
}

// FetchOptions controls the event fetch loop.
type FetchOptions struct {
	// MaxEvents caps the assembled sequence. Zero fetches nothing and issues
	// no request; negative fetches the whole transcript.
	MaxEvents int
	// Progress, when set, receives the running event count after each page.
	// It must not block; it is invoked synchronously between page requests.
	Progress func(fetched int)
}

// FetchEvents assembles the session transcript by walking the after_id
// cursor until the server reports no more pages or MaxEvents is reached.
// Events are appended in server order; nothing is reordered or dropped
// except by the MaxEvents truncation. A malformed known-kind event aborts
// the whole call, since it indicates page-level corruption.
func (c *Client) FetchEvents(ctx context.Context, sessionID string, opts FetchOptions) ([]event.SessionEvent, error) {
	if opts.MaxEvents == 0 {
		return nil, nil
	}

	endpoint := "/v1/sessions/" + sessionID + "/events"

	var all []event.SessionEvent
	var afterID string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		query := url.Values{}
		if afterID != "" {
			query.Set("after_id", afterID)
		}

		var page EventsPage
		if err := c.get(ctx, endpoint, query, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)

		if opts.Progress != nil {
			opts.Progress(len(all))
		}

		if opts.MaxEvents > 0 && len(all) >= opts.MaxEvents {
			return all[:opts.MaxEvents], nil
		}
		if !page.HasMore || page.LastID == "" {
			return all, nil
		}
		afterID = page.LastID
	}
}
