// ABOUTME: Google Calendar implementation of EventSource
// ABOUTME: Fetches the primary calendar with pagination and normalizes events
package calsync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const maxResults = 250 // Google Calendar API max per page

// GoogleSource lists events from the user's primary Google calendar.
type GoogleSource struct {
	service *calendar.Service
}

// NewGoogleSource builds an authenticated calendar client from a guarded
// credential.
func NewGoogleSource(ctx context.Context, config *oauth2.Config, cred *Credential) (*GoogleSource, error) {
	if cred == nil {
		return nil, fmt.Errorf("credential cannot be nil")
	}

	client := config.Client(ctx, cred.Token())

	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleSource{service: service}, nil
}

// GoogleSourceFactory returns a SourceFactory for production wiring.
func GoogleSourceFactory(config *oauth2.Config) SourceFactory {
	return func(ctx context.Context, cred *Credential) (EventSource, error) {
		return NewGoogleSource(ctx, config, cred)
	}
}

func (s *GoogleSource) ListEvents(ctx context.Context, window TimeWindow) ([]RemoteEvent, error) {
	var events []RemoteEvent
	pageToken := ""

	for {
		call := s.service.Events.List("primary").
			MaxResults(maxResults).
			SingleEvents(true).
			OrderBy("startTime").
			TimeMin(window.Min.Format(time.RFC3339)).
			TimeMax(window.Max.Format(time.RFC3339)).
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
		}

		for _, item := range page.Items {
			events = append(events, FromGoogleEvent(item))
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}
