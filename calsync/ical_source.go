// ABOUTME: iCalendar feed implementation of EventSource
// ABOUTME: Fetches and parses a subscribed ICS URL into remote events
package calsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// ICalSource lists events from a read-only ICS feed (e.g. a published course
// calendar). Feeds have no bearer credential; the token guard is bypassed by
// callers that use this source directly.
type ICalSource struct {
	URL    string
	Client *http.Client
}

func NewICalSource(url string) *ICalSource {
	return &ICalSource{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *ICalSource) ListEvents(ctx context.Context, window TimeWindow) ([]RemoteEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	bodyStr := string(body)
	if !strings.HasPrefix(strings.TrimSpace(bodyStr), "BEGIN:VCALENDAR") {
		return nil, fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR")
	}

	decoder := ical.NewDecoder(strings.NewReader(bodyStr))

	var events []RemoteEvent
	seen := make(map[string]bool)

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}

			event := eventFromComponent(comp)
			if event.ID == "" {
				// Feeds without UIDs still need stable ids for reconciliation.
				event.ID = event.Title + "|" + event.Start.Instant().Format(time.RFC3339)
			}
			if seen[event.ID] {
				continue
			}
			if !inWindow(event, window) {
				continue
			}

			seen[event.ID] = true
			events = append(events, event)
		}
	}

	return events, nil
}

func eventFromComponent(comp *ical.Component) RemoteEvent {
	event := RemoteEvent{
		ID:          propValue(comp, ical.PropUID),
		Title:       propValue(comp, ical.PropSummary),
		Description: propValue(comp, ical.PropDescription),
		Status:      StatusConfirmed,
	}

	switch propValue(comp, ical.PropStatus) {
	case "CANCELLED":
		event.Status = StatusCancelled
	case "TENTATIVE":
		event.Status = StatusTentative
	}

	event.Start = fromICalProp(comp.Props.Get(ical.PropDateTimeStart))
	event.End = fromICalProp(comp.Props.Get(ical.PropDateTimeEnd))
	return event
}

func propValue(comp *ical.Component, name string) string {
	prop := comp.Props.Get(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}

func fromICalProp(prop *ical.Prop) EventTime {
	if prop == nil {
		return EventTime{}
	}

	// VALUE=DATE or a bare YYYYMMDD value marks an all-day boundary.
	if prop.Params.Get(ical.ParamValue) == "DATE" || len(prop.Value) == 8 {
		if d, err := time.Parse("20060102", prop.Value); err == nil {
			return NewDateOnly(d.Format("2006-01-02"))
		}
		return EventTime{}
	}

	if t, err := prop.DateTime(time.UTC); err == nil {
		return NewInstant(t)
	}

	// Some feeds emit non-standard datetime formats.
	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, prop.Value); err == nil {
			return NewInstant(t)
		}
	}

	return EventTime{}
}

func inWindow(event RemoteEvent, window TimeWindow) bool {
	// Date-only events pass through; the reconciler excludes them anyway.
	if event.IsAllDay() || event.Start.IsZero() || event.End.IsZero() {
		return true
	}
	return event.End.Instant().After(window.Min) && event.Start.Instant().Before(window.Max)
}
