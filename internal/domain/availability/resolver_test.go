package availability

import (
	"reflect"
	"testing"
	"time"
)

func TestSlots(t *testing.T) {
	tests := []struct {
		name  string
		start int
		end   int
		want  []string
	}{
		{
			name:  "three hour window",
			start: 9,
			end:   12,
			want:  []string{"9:00 - 10:00", "10:00 - 11:00", "11:00 - 12:00"},
		},
		{
			name:  "single hour",
			start: 14,
			end:   15,
			want:  []string{"14:00 - 15:00"},
		},
		{
			name:  "empty range",
			start: 10,
			end:   10,
			want:  []string{},
		},
		{
			name:  "inverted range",
			start: 12,
			end:   9,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slots(tt.start, tt.end)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Slots(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	d := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.Local)
	if got := DateKey(d); got != "2025-03-10" {
		t.Errorf("DateKey = %q, want 2025-03-10", got)
	}
}

func TestNormalize(t *testing.T) {
	raw := []RawWindow{
		{Date: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local), StartHour: 9, EndHour: 11},
	}
	got := Normalize(raw)
	want := []Window{{Date: "2025-03-10", StartHour: 9, EndHour: 11}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
}

func TestSlotsForDate(t *testing.T) {
	windows := []Window{
		{Date: "2025-03-10", StartHour: 9, EndHour: 11},
		{Date: "2025-03-10", StartHour: 14, EndHour: 18}, // ignored: first window wins
		{Date: "2025-03-12", StartHour: 10, EndHour: 12},
	}

	got := SlotsForDate(windows, "2025-03-10")
	want := []string{"9:00 - 10:00", "10:00 - 11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SlotsForDate = %v, want %v", got, want)
	}

	if got := SlotsForDate(windows, "2025-03-11"); len(got) != 0 {
		t.Errorf("expected no slots for date without window, got %v", got)
	}
}

func TestTakenSlots(t *testing.T) {
	bookings := []Booked{
		{Date: "2025-03-10", Slots: []string{"9:00 - 10:00"}},
		{Date: "2025-03-10", Slots: []string{"10:00 - 11:00"}},
		{Date: "2025-03-11", Slots: []string{"9:00 - 10:00"}},
	}

	taken := TakenSlots(bookings, "2025-03-10")
	if len(taken) != 2 || !taken["9:00 - 10:00"] || !taken["10:00 - 11:00"] {
		t.Errorf("unexpected taken set: %v", taken)
	}
}

func TestStatusForDate(t *testing.T) {
	windows := []Window{{Date: "2025-03-10", StartHour: 9, EndHour: 11}}

	t.Run("no window", func(t *testing.T) {
		if got := StatusForDate(windows, nil, "2025-03-11"); got != DayUnavailable {
			t.Errorf("status = %v, want unavailable", got)
		}
	})

	t.Run("no bookings", func(t *testing.T) {
		if got := StatusForDate(windows, nil, "2025-03-10"); got != DayAvailable {
			t.Errorf("status = %v, want available", got)
		}
	})

	t.Run("partially booked", func(t *testing.T) {
		bookings := []Booked{{Date: "2025-03-10", Slots: []string{"9:00 - 10:00"}}}
		if got := StatusForDate(windows, bookings, "2025-03-10"); got != DayAvailable {
			t.Errorf("status = %v, want available", got)
		}
	})

	t.Run("fully booked", func(t *testing.T) {
		bookings := []Booked{{Date: "2025-03-10", Slots: []string{"9:00 - 10:00", "10:00 - 11:00"}}}
		if got := StatusForDate(windows, bookings, "2025-03-10"); got != DayFullyBooked {
			t.Errorf("status = %v, want fully-booked", got)
		}
	})

	t.Run("fully booked across bookings", func(t *testing.T) {
		bookings := []Booked{
			{Date: "2025-03-10", Slots: []string{"9:00 - 10:00"}},
			{Date: "2025-03-10", Slots: []string{"10:00 - 11:00"}},
		}
		if got := StatusForDate(windows, bookings, "2025-03-10"); got != DayFullyBooked {
			t.Errorf("status = %v, want fully-booked", got)
		}
	})
}

func TestMonthStatuses(t *testing.T) {
	windows := []Window{
		{Date: "2025-03-10", StartHour: 9, EndHour: 11},
		{Date: "2025-03-15", StartHour: 10, EndHour: 12},
	}
	bookings := []Booked{
		{Date: "2025-03-15", Slots: []string{"10:00 - 11:00", "11:00 - 12:00"}},
	}

	statuses := MonthStatuses(windows, bookings, 2025, time.March)

	if len(statuses) != 31 {
		t.Fatalf("expected 31 days, got %d", len(statuses))
	}
	if statuses[10] != DayAvailable {
		t.Errorf("day 10 = %v, want available", statuses[10])
	}
	if statuses[15] != DayFullyBooked {
		t.Errorf("day 15 = %v, want fully-booked", statuses[15])
	}
	for _, day := range []int{1, 2, 20, 31} {
		if statuses[day] != DayUnavailable {
			t.Errorf("day %d = %v, want unavailable", day, statuses[day])
		}
	}
}

func TestFreeSlotsForDate(t *testing.T) {
	windows := []Window{{Date: "2025-03-10", StartHour: 9, EndHour: 12}}
	bookings := []Booked{{Date: "2025-03-10", Slots: []string{"10:00 - 11:00"}}}

	got := FreeSlotsForDate(windows, bookings, "2025-03-10")
	want := []string{"9:00 - 10:00", "11:00 - 12:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FreeSlotsForDate = %v, want %v", got, want)
	}
}
