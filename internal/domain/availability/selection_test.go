package availability

import (
	"reflect"
	"testing"
)

func newTestSelection() *Selection {
	windows := []Window{{Date: "2025-03-10", StartHour: 9, EndHour: 11}}
	bookings := []Booked{{Date: "2025-03-10", Slots: []string{"9:00 - 10:00"}}}
	return NewSelection(windows, bookings)
}

func TestSelectionStates(t *testing.T) {
	s := newTestSelection()

	if s.State() != NoDateSelected {
		t.Fatalf("initial state = %v, want NoDateSelected", s.State())
	}

	s.SelectDate("2025-03-10")
	if s.State() != DateSelected {
		t.Fatalf("state after date = %v, want DateSelected", s.State())
	}

	if !s.Toggle("10:00 - 11:00") {
		t.Fatal("expected free slot to be selectable")
	}
	if s.State() != SlotsChosen {
		t.Fatalf("state after toggle = %v, want SlotsChosen", s.State())
	}

	s.Reset()
	if s.State() != NoDateSelected {
		t.Fatalf("state after reset = %v, want NoDateSelected", s.State())
	}
	if len(s.Selected()) != 0 {
		t.Error("reset should clear selection")
	}
}

func TestToggleTakenSlot(t *testing.T) {
	s := newTestSelection()
	s.SelectDate("2025-03-10")

	if s.Toggle("9:00 - 10:00") {
		t.Error("taken slot must not be selectable")
	}
	if len(s.Selected()) != 0 {
		t.Errorf("selection should stay empty, got %v", s.Selected())
	}
	if !s.IsTaken("9:00 - 10:00") {
		t.Error("slot should report taken")
	}
}

func TestToggleIdempotence(t *testing.T) {
	s := newTestSelection()
	s.SelectDate("2025-03-10")

	before := s.Selected()
	s.Toggle("10:00 - 11:00")
	s.Toggle("10:00 - 11:00")
	after := s.Selected()

	if !reflect.DeepEqual(before, after) {
		t.Errorf("double toggle changed selection: before %v, after %v", before, after)
	}
}

func TestToggleUnknownSlot(t *testing.T) {
	s := newTestSelection()
	s.SelectDate("2025-03-10")

	if s.Toggle("22:00 - 23:00") {
		t.Error("slot outside window must not be selectable")
	}

	s2 := newTestSelection()
	if s2.Toggle("10:00 - 11:00") {
		t.Error("toggle before selecting a date must be a no-op")
	}
}

func TestSelectDateClearsSelection(t *testing.T) {
	windows := []Window{
		{Date: "2025-03-10", StartHour: 9, EndHour: 11},
		{Date: "2025-03-12", StartHour: 10, EndHour: 12},
	}
	s := NewSelection(windows, nil)

	s.SelectDate("2025-03-10")
	s.Toggle("9:00 - 10:00")
	s.SelectDate("2025-03-12")

	if s.State() != DateSelected {
		t.Errorf("state = %v, want DateSelected after date change", s.State())
	}
	if len(s.Selected()) != 0 {
		t.Errorf("date change should drop chosen slots, got %v", s.Selected())
	}
}

func TestTotal(t *testing.T) {
	windows := []Window{{Date: "2025-03-10", StartHour: 9, EndHour: 13}}
	s := NewSelection(windows, nil)
	s.SelectDate("2025-03-10")

	if got := s.Total(5000); got != 0 {
		t.Errorf("empty selection total = %v, want 0", got)
	}

	s.Toggle("9:00 - 10:00")
	s.Toggle("11:00 - 12:00")

	if got := s.Total(5000); got != 10000 {
		t.Errorf("total = %v, want 10000", got)
	}
	if got := s.Total(0); got != 0 {
		t.Errorf("zero price total = %v, want 0", got)
	}
}

func TestSelectedOrder(t *testing.T) {
	windows := []Window{{Date: "2025-03-10", StartHour: 9, EndHour: 13}}
	s := NewSelection(windows, nil)
	s.SelectDate("2025-03-10")

	s.Toggle("11:00 - 12:00")
	s.Toggle("9:00 - 10:00")

	want := []string{"9:00 - 10:00", "11:00 - 12:00"}
	if got := s.Selected(); !reflect.DeepEqual(got, want) {
		t.Errorf("Selected = %v, want window order %v", got, want)
	}
}

func TestScenarioNoBookings(t *testing.T) {
	windows := []Window{{Date: "2025-03-10", StartHour: 9, EndHour: 11}}
	s := NewSelection(windows, nil)
	s.SelectDate("2025-03-10")

	want := []string{"9:00 - 10:00", "10:00 - 11:00"}
	if got := s.Slots(); !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
	for _, slot := range want {
		if !s.Toggle(slot) {
			t.Errorf("slot %q should be selectable", slot)
		}
	}
}
