package calendar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"atelier/internal/domain"
	"atelier/internal/schedule"
)

// Event is the provider-neutral shape of a calendar entry pushed during
// sync.
type Event struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// Provider is an external calendar backend. Implementations must treat the
// busy range as half-open intervals and never invent availability of their
// own: the availability resolver merges provider busy time into the
// appointment conflict set.
type Provider interface {
	Name() string
	ListBusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]schedule.Interval, error)
	CreateEvent(ctx context.Context, calendarID string, event Event) (string, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// Registry holds the configured providers. Provider names are stable
// identifiers ("google", "microsoft", "apple", "static"); an unregistered
// name is a not-found error, not a silent no-op.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("calendar provider %q: %w", name, domain.ErrNotFound)
	}
	return p, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered providers in name order.
func (r *Registry) All() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		providers = append(providers, r.providers[name])
	}
	return providers
}

// MergeBusy normalizes a set of busy intervals: sorted by start, with
// overlapping or touching intervals coalesced.
func MergeBusy(intervals []schedule.Interval) []schedule.Interval {
	if len(intervals) < 2 {
		return intervals
	}

	sorted := make([]schedule.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}
