package availability

import (
	"fmt"
	"time"
)

// DayStatus classifies a calendar day for a space
type DayStatus string

const (
	// DayUnavailable means the space declares no window for the date
	DayUnavailable DayStatus = "unavailable"
	// DayAvailable means at least one slot remains bookable
	DayAvailable DayStatus = "available"
	// DayFullyBooked means every derivable slot is already taken
	DayFullyBooked DayStatus = "fully-booked"
)

// Window is a declared open range for a single date.
// Date is a YYYY-MM-DD key; hours are whole and end-exclusive.
type Window struct {
	Date      string
	StartHour int
	EndHour   int
}

// Booked carries the taken slot labels of one booking
type Booked struct {
	Date  string
	Slots []string
}

// DateKey truncates a timestamp to its local calendar date.
// Windows stored near midnight may land on a neighboring day depending
// on the caller's timezone; we keep plain local truncation.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SlotLabel renders the one-hour slot starting at h
func SlotLabel(h int) string {
	return fmt.Sprintf("%d:00 - %d:00", h, h+1)
}

// Slots expands a start/end hour pair into one-hour slot labels,
// end-exclusive. Invalid ranges produce an empty list.
func Slots(startHour, endHour int) []string {
	if endHour <= startHour {
		return []string{}
	}
	out := make([]string, 0, endHour-startHour)
	for h := startHour; h < endHour; h++ {
		out = append(out, SlotLabel(h))
	}
	return out
}

// Normalize maps raw timestamped windows onto date-keyed windows
func Normalize(windows []RawWindow) []Window {
	out := make([]Window, 0, len(windows))
	for _, w := range windows {
		out = append(out, Window{
			Date:      DateKey(w.Date),
			StartHour: w.StartHour,
			EndHour:   w.EndHour,
		})
	}
	return out
}

// RawWindow is a window as stored, before date truncation
type RawWindow struct {
	Date      time.Time
	StartHour int
	EndHour   int
}

// windowForDate returns the first window matching the date, or nil.
// Multiple windows per day are not supported; the first one wins.
func windowForDate(windows []Window, date string) *Window {
	for i := range windows {
		if windows[i].Date == date {
			return &windows[i]
		}
	}
	return nil
}

// SlotsForDate derives the bookable slot labels for a date.
// Returns an empty list when the space declares no window for it.
func SlotsForDate(windows []Window, date string) []string {
	w := windowForDate(windows, date)
	if w == nil {
		return []string{}
	}
	return Slots(w.StartHour, w.EndHour)
}

// TakenSlots unions the slot sets of all bookings on the date
func TakenSlots(bookings []Booked, date string) map[string]bool {
	taken := make(map[string]bool)
	for _, b := range bookings {
		if b.Date != date {
			continue
		}
		for _, slot := range b.Slots {
			taken[slot] = true
		}
	}
	return taken
}

// StatusForDate classifies a single date
func StatusForDate(windows []Window, bookings []Booked, date string) DayStatus {
	slots := SlotsForDate(windows, date)
	if len(slots) == 0 {
		return DayUnavailable
	}

	taken := TakenSlots(bookings, date)
	for _, slot := range slots {
		if !taken[slot] {
			return DayAvailable
		}
	}
	return DayFullyBooked
}

// MonthStatuses classifies every day of the displayed month.
// Keys are day numbers 1..daysInMonth.
func MonthStatuses(windows []Window, bookings []Booked, year int, month time.Month) map[int]DayStatus {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	statuses := make(map[int]DayStatus, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
		statuses[day] = StatusForDate(windows, bookings, date)
	}
	return statuses
}

// FreeSlotsForDate derives the slots still bookable on a date
func FreeSlotsForDate(windows []Window, bookings []Booked, date string) []string {
	slots := SlotsForDate(windows, date)
	if len(slots) == 0 {
		return slots
	}

	taken := TakenSlots(bookings, date)
	free := make([]string, 0, len(slots))
	for _, slot := range slots {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free
}
