package integration

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarClient talks to Google Calendar with a user's OAuth tokens.
// Token refresh is delegated to the oauth2 TokenSource; a failed refresh is
// reported as ErrNeedsReconnect so the integration row can be flagged.
type CalendarClient struct {
	cfg *oauth2.Config
}

func NewCalendarClient(clientID, clientSecret string) *CalendarClient {
	return &CalendarClient{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{calendar.CalendarEventsScope},
		},
	}
}

// service builds a Calendar API client, refreshing the token when expired.
// The returned token reflects any refresh and should be persisted.
func (c *CalendarClient) service(ctx context.Context, tok *oauth2.Token) (*calendar.Service, *oauth2.Token, error) {
	ts := c.cfg.TokenSource(ctx, tok)
	fresh, err := ts.Token()
	if err != nil {
		return nil, nil, ErrNeedsReconnect
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(fresh)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build calendar client: %w", err)
	}
	return svc, fresh, nil
}

// ListEvents returns events on the primary calendar inside [start, end).
func (c *CalendarClient) ListEvents(ctx context.Context, tok *oauth2.Token, start, end time.Time) ([]*calendar.Event, *oauth2.Token, error) {
	svc, fresh, err := c.service(ctx, tok)
	if err != nil {
		return nil, nil, err
	}

	result, err := svc.Events.List("primary").
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fresh, fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	return result.Items, fresh, nil
}

// InsertEvent creates an event on the primary calendar.
func (c *CalendarClient) InsertEvent(ctx context.Context, tok *oauth2.Token, event *calendar.Event) (*calendar.Event, *oauth2.Token, error) {
	svc, fresh, err := c.service(ctx, tok)
	if err != nil {
		return nil, nil, err
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return nil, fresh, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created, fresh, nil
}

// PatchEvent applies a partial update to an event.
func (c *CalendarClient) PatchEvent(ctx context.Context, tok *oauth2.Token, eventID string, event *calendar.Event) (*calendar.Event, *oauth2.Token, error) {
	svc, fresh, err := c.service(ctx, tok)
	if err != nil {
		return nil, nil, err
	}

	updated, err := svc.Events.Patch("primary", eventID, event).Context(ctx).Do()
	if err != nil {
		return nil, fresh, fmt.Errorf("failed to update calendar event: %w", err)
	}
	return updated, fresh, nil
}

// DeleteEvent removes an event from the primary calendar.
func (c *CalendarClient) DeleteEvent(ctx context.Context, tok *oauth2.Token, eventID string) (*oauth2.Token, error) {
	svc, fresh, err := c.service(ctx, tok)
	if err != nil {
		return nil, err
	}

	if err := svc.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		return fresh, fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return fresh, nil
}
