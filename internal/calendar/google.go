package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"atelier/internal/schedule"
)

// GoogleProvider reads busy time through the Calendar API freebusy query
// and mirrors appointments as ordinary events.
type GoogleProvider struct {
	svc *gcal.Service
}

func NewGoogleProvider(ctx context.Context, credentialsFile string) (*GoogleProvider, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating google calendar client: %w", err)
	}

	return &GoogleProvider{svc: svc}, nil
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) ListBusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]schedule.Interval, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: calendarID}},
	}

	res, err := p.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("querying google freebusy: %w", err)
	}

	cal, ok := res.Calendars[calendarID]
	if !ok {
		return nil, nil
	}

	var busy []schedule.Interval
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("parsing busy period start %q: %w", period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("parsing busy period end %q: %w", period.End, err)
		}
		busy = append(busy, schedule.Interval{Start: start, End: end})
	}

	return busy, nil
}

func (p *GoogleProvider) CreateEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	created, err := p.svc.Events.Insert(calendarID, &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &gcal.EventDateTime{DateTime: event.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: event.End.Format(time.RFC3339)},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating google calendar event: %w", err)
	}

	return created.Id, nil
}

func (p *GoogleProvider) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := p.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting google calendar event: %w", err)
	}
	return nil
}
