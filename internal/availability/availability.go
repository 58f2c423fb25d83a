// Package availability resolves bookable time slots for a calendar day.
package availability

import (
	"cmp"
	"slices"
	"time"

	"github.com/kirinyoku/wedgo/internal/domain"
)

// Resolve returns the available slots of the record matching date's calendar day.
// A day without a record yields an empty, non-nil list.
func Resolve(records []domain.Availability, date time.Time) []domain.TimeSlot {
	out := []domain.TimeSlot{}
	for _, rec := range records {
		if !domain.SameDay(rec.Date, date) {
			continue
		}
		for _, s := range rec.Slots {
			if s.IsAvailable {
				out = append(out, s)
			}
		}
		break
	}
	sortSlots(out)
	return out
}

// Group buckets flat slots into one Availability record per day, ordered by date.
func Group(slots []domain.TimeSlot) []domain.Availability {
	byDay := make(map[time.Time][]domain.TimeSlot)
	for _, s := range slots {
		d := domain.Day(s.Date)
		byDay[d] = append(byDay[d], s)
	}

	out := make([]domain.Availability, 0, len(byDay))
	for d, ss := range byDay {
		sortSlots(ss)
		out = append(out, domain.Availability{Date: d, Slots: ss})
	}
	slices.SortFunc(out, func(a, b domain.Availability) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// Find looks up a slot by ID across all records.
func Find(records []domain.Availability, slotID int64) (domain.TimeSlot, bool) {
	for _, rec := range records {
		for _, s := range rec.Slots {
			if s.ID == slotID {
				return s, true
			}
		}
	}
	return domain.TimeSlot{}, false
}

// Dates lists the days that have at least one available slot.
func Dates(records []domain.Availability) []time.Time {
	var out []time.Time
	for _, rec := range records {
		if slices.ContainsFunc(rec.Slots, func(s domain.TimeSlot) bool { return s.IsAvailable }) {
			out = append(out, domain.Day(rec.Date))
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

func sortSlots(ss []domain.TimeSlot) {
	slices.SortStableFunc(ss, func(a, b domain.TimeSlot) int {
		return cmp.Or(cmp.Compare(a.StartTime, b.StartTime), cmp.Compare(a.ID, b.ID))
	})
}
