package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"atelier/internal/schedule"

	"github.com/google/uuid"
)

// StaticProvider serves a fixed set of busy intervals and records created
// events in memory. It stands in for a real provider in development and
// tests.
type StaticProvider struct {
	name string

	mu     sync.RWMutex
	busy   map[string][]schedule.Interval
	events map[string]Event
}

func NewStaticProvider(name string) *StaticProvider {
	return &StaticProvider{
		name:   name,
		busy:   make(map[string][]schedule.Interval),
		events: make(map[string]Event),
	}
}

func (p *StaticProvider) Name() string {
	return p.name
}

// SetBusy replaces the busy intervals served for a calendar.
func (p *StaticProvider) SetBusy(calendarID string, busy []schedule.Interval) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy[calendarID] = busy
}

func (p *StaticProvider) ListBusyIntervals(_ context.Context, calendarID string, from, to time.Time) ([]schedule.Interval, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	window := schedule.Interval{Start: from, End: to}
	var result []schedule.Interval
	for _, iv := range p.busy[calendarID] {
		if iv.Overlaps(window) {
			result = append(result, iv)
		}
	}
	return result, nil
}

func (p *StaticProvider) CreateEvent(_ context.Context, calendarID string, event Event) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	event.ID = uuid.New().String()
	p.events[event.ID] = event
	p.busy[calendarID] = append(p.busy[calendarID], schedule.Interval{Start: event.Start, End: event.End})
	return event.ID, nil
}

func (p *StaticProvider) DeleteEvent(_ context.Context, _ string, eventID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.events[eventID]; !ok {
		return fmt.Errorf("event %s not found", eventID)
	}
	delete(p.events, eventID)
	return nil
}

// Events returns the recorded events, for assertions in tests.
func (p *StaticProvider) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()

	events := make([]Event, 0, len(p.events))
	for _, ev := range p.events {
		events = append(events, ev)
	}
	return events
}
