package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var ErrNegativeDuration = errors.New("end time is before start time")

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// ParseClock parses an HH:MM time of day into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CanonicalClock rewrites a time of day into zero-padded HH:MM, so "9:00"
// becomes "09:00". Stored clocks compare as strings.
func CanonicalClock(s string) (string, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Format(ClockLayout), nil
}

// DurationMinutes derives the length between two HH:MM times.
func DurationMinutes(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e < s {
		return 0, fmt.Errorf("%s-%s: %w", start, end, ErrNegativeDuration)
	}
	return e - s, nil
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay compares calendar days, ignoring the time of day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// ScheduleFromSlot builds the schedule a booking gets when it takes slot.
func ScheduleFromSlot(slot TimeSlot) (Schedule, error) {
	d, err := DurationMinutes(slot.StartTime, slot.EndTime)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{
		Date:            Day(slot.Date),
		SlotID:          slot.ID,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		DurationMinutes: d,
	}, nil
}

// Bookable reports whether the slot can take one more booking.
func (s TimeSlot) Bookable() bool {
	return s.IsAvailable && s.BookedCount < s.Capacity
}
