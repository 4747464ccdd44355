package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/schedule"
)

func interval(startHour, endHour int) schedule.Interval {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return schedule.Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestMergeBusy(t *testing.T) {
	tests := []struct {
		name string
		in   []schedule.Interval
		want []schedule.Interval
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "disjoint stay separate",
			in:   []schedule.Interval{interval(13, 14), interval(9, 10)},
			want: []schedule.Interval{interval(9, 10), interval(13, 14)},
		},
		{
			name: "overlapping coalesce",
			in:   []schedule.Interval{interval(9, 11), interval(10, 12)},
			want: []schedule.Interval{interval(9, 12)},
		},
		{
			name: "touching coalesce",
			in:   []schedule.Interval{interval(9, 10), interval(10, 11)},
			want: []schedule.Interval{interval(9, 11)},
		},
		{
			name: "contained interval absorbed",
			in:   []schedule.Interval{interval(9, 15), interval(10, 11)},
			want: []schedule.Interval{interval(9, 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeBusy(tt.in))
		})
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewStaticProvider("static"))
	registry.Register(NewStaticProvider("google"))

	assert.Equal(t, []string{"google", "static"}, registry.Names())

	p, err := registry.Get("static")
	require.NoError(t, err)
	assert.Equal(t, "static", p.Name())

	_, err = registry.Get("microsoft")
	assert.Error(t, err)
}

func TestStaticProviderBusyWindow(t *testing.T) {
	ctx := context.Background()
	provider := NewStaticProvider("static")
	provider.SetBusy("main", []schedule.Interval{interval(9, 10), interval(18, 19)})

	busy, err := provider.ListBusyIntervals(ctx, "main", interval(8, 12).Start, interval(8, 12).End)
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, interval(9, 10), busy[0])
}

func TestStaticProviderEvents(t *testing.T) {
	ctx := context.Background()
	provider := NewStaticProvider("static")

	id, err := provider.CreateEvent(ctx, "main", Event{
		Summary: "Color: Jane Doe",
		Start:   interval(9, 10).Start,
		End:     interval(9, 10).End,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// Created events become busy time.
	busy, err := provider.ListBusyIntervals(ctx, "main", interval(8, 12).Start, interval(8, 12).End)
	require.NoError(t, err)
	assert.Len(t, busy, 1)

	require.NoError(t, provider.DeleteEvent(ctx, "main", id))
	assert.Error(t, provider.DeleteEvent(ctx, "main", id))
}
