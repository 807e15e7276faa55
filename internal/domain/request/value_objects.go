package request

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeOfDay  = errors.New("invalid time of day")
	ErrInvalidTimeWindow = errors.New("start time must be before end time")
)

// TimeOfDay is minutes since midnight. Requests are booked on whole
// minutes, so this is exact and trivially comparable.
type TimeOfDay int

const minutesPerDay = 24 * 60

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Hour() int    { return int(t) / 60 }
func (t TimeOfDay) Minute() int  { return int(t) % 60 }
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// TimeWindow is a half-open [start, end) slot on a single calendar day.
type TimeWindow struct {
	date  time.Time
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeWindow(date time.Time, start, end TimeOfDay) (TimeWindow, error) {
	if start < 0 || int(start) >= minutesPerDay || end < 0 || int(end) > minutesPerDay {
		return TimeWindow{}, ErrInvalidTimeOfDay
	}
	if !start.Before(end) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{date: normalizeDate(date), start: start, end: end}, nil
}

func (w TimeWindow) Date() time.Time  { return w.date }
func (w TimeWindow) Start() TimeOfDay { return w.start }
func (w TimeWindow) End() TimeOfDay   { return w.end }

func (w TimeWindow) Duration() time.Duration {
	return time.Duration(w.end-w.start) * time.Minute
}

// EndAt is the absolute instant the window closes.
func (w TimeWindow) EndAt() time.Time {
	return w.date.Add(time.Duration(w.end) * time.Minute)
}

// Overlaps applies the half-open interval test: windows that merely touch
// at a boundary do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if !w.date.Equal(other.date) {
		return false
	}
	return w.start < other.end && w.end > other.start
}

func normalizeDate(d time.Time) time.Time {
	year, month, day := d.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, d.Location())
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
