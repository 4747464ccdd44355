package domain

import (
	"strconv"
	"strings"
	"time"
)

// DefaultWorkdayStart and DefaultWorkdayEnd seed the schedule of a newly
// created artist; they are never substituted for missing times in a stored
// schedule (a day without valid times simply offers no slots).
const (
	DefaultWorkdayStart = "09:00"
	DefaultWorkdayEnd   = "18:00"
)

type BreakWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DaySchedule struct {
	IsWorking bool          `json:"is_working"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Breaks    []BreakWindow `json:"breaks,omitempty"`
}

// WeekSchedule maps lowercase weekday names ("monday".."sunday") to the
// artist's working window for that day.
type WeekSchedule map[string]DaySchedule

func (w WeekSchedule) Day(t time.Time) DaySchedule {
	if w == nil {
		return DaySchedule{}
	}
	return w[strings.ToLower(t.Weekday().String())]
}

// Validate rejects schedules whose working days carry unparseable or
// inverted time windows. Non-working days are not inspected.
func (w WeekSchedule) Validate() error {
	for _, day := range w {
		if !day.IsWorking {
			continue
		}
		start, okStart := ParseClock(day.StartTime)
		end, okEnd := ParseClock(day.EndTime)
		if !okStart || !okEnd || start >= end {
			return ErrMalformedSchedule
		}
		for _, br := range day.Breaks {
			bStart, okS := ParseClock(br.StartTime)
			bEnd, okE := ParseClock(br.EndTime)
			if !okS || !okE || bStart >= bEnd {
				return ErrMalformedSchedule
			}
		}
	}
	return nil
}

// DefaultWeekSchedule returns a Monday-to-Saturday week with the default
// working window and no breaks.
func DefaultWeekSchedule() WeekSchedule {
	week := make(WeekSchedule, 7)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		week[day] = DaySchedule{IsWorking: true, StartTime: DefaultWorkdayStart, EndTime: DefaultWorkdayEnd}
	}
	week["sunday"] = DaySchedule{IsWorking: false}
	return week
}

// ParseClock parses a strict 24-hour "HH:MM" value into minutes from
// midnight. Anything else, including missing components, reports !ok.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

type Artist struct {
	ID       int64        `json:"id"`
	StoreID  int64        `json:"store_id"`
	Name     string       `json:"name"`
	Phone    string       `json:"phone,omitempty"`
	Email    string       `json:"email,omitempty"`
	Bio      string       `json:"bio,omitempty"`
	PhotoURL string       `json:"photo_url,omitempty"`
	Schedule WeekSchedule `json:"schedule,omitempty"`
	// CalendarProvider and CalendarID link the artist to an external
	// calendar; busy windows from it block slots alongside appointments.
	CalendarProvider string    `json:"calendar_provider,omitempty"`
	CalendarID       string    `json:"calendar_id,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateArtistDTO struct {
	Name     string       `json:"name" binding:"required"`
	Phone    string       `json:"phone"`
	Email    string       `json:"email" binding:"omitempty,email"`
	Bio      string       `json:"bio"`
	Schedule WeekSchedule `json:"schedule"`
}

type UpdateArtistDTO struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Bio              *string `json:"bio"`
	CalendarProvider *string `json:"calendar_provider"`
	CalendarID       *string `json:"calendar_id"`
	IsActive         *bool   `json:"is_active"`
}

type ArtistFilter struct {
	StoreID   *int64 `json:"store_id"`
	ServiceID *int64 `json:"service_id"`
	Active    *bool  `json:"active"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}
