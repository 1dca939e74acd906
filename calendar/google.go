package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"taskpilot/backend/types"
)

// GoogleInserter writes events straight into the user's primary
// Google calendar. Handlers never touch the Google SDK directly;
// they see only the Inserter interface.
type GoogleInserter struct {
	svc *gcal.Service
}

// NewGoogleInserter builds an inserter from a user OAuth access
// token, as supplied by the front end after consent.
func NewGoogleInserter(ctx context.Context, accessToken string) (*GoogleInserter, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("missing Google access token")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleInserter{svc: svc}, nil
}

func (g *GoogleInserter) Insert(ctx context.Context, task types.Task, start, end time.Time) error {
	event := &gcal.Event{
		Summary:     task.Title,
		Description: BuildEventDescription(task),
		Start:       &gcal.EventDateTime{DateTime: start.UTC().Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: end.UTC().Format(time.RFC3339)},
	}
	_, err := g.svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("event insert failed: %w", err)
	}
	return nil
}
