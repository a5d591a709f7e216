package availability

// SelectionState tracks where a booking session stands
type SelectionState string

const (
	NoDateSelected SelectionState = "no_date_selected"
	DateSelected   SelectionState = "date_selected"
	SlotsChosen    SelectionState = "slots_chosen"
)

// Selection is an in-progress slot pick for one space.
// Changing the date or month discards any chosen slots.
type Selection struct {
	windows  []Window
	bookings []Booked

	date     string
	slots    []string
	taken    map[string]bool
	selected map[string]bool
}

// NewSelection starts a session over a space's windows and bookings
func NewSelection(windows []Window, bookings []Booked) *Selection {
	return &Selection{
		windows:  windows,
		bookings: bookings,
		selected: make(map[string]bool),
	}
}

// State reports the current session state
func (s *Selection) State() SelectionState {
	if s.date == "" {
		return NoDateSelected
	}
	if len(s.selected) == 0 {
		return DateSelected
	}
	return SlotsChosen
}

// SelectDate picks a date, computing its slots and clearing any
// previous selection
func (s *Selection) SelectDate(date string) {
	s.date = date
	s.slots = SlotsForDate(s.windows, date)
	s.taken = TakenSlots(s.bookings, date)
	s.selected = make(map[string]bool)
}

// Reset returns to NoDateSelected, as when the displayed month moves
func (s *Selection) Reset() {
	s.date = ""
	s.slots = nil
	s.taken = nil
	s.selected = make(map[string]bool)
}

// Date returns the selected date key, empty when none
func (s *Selection) Date() string {
	return s.date
}

// Slots returns the derivable slots for the selected date
func (s *Selection) Slots() []string {
	return s.slots
}

// IsTaken reports whether a slot is already booked
func (s *Selection) IsTaken(slot string) bool {
	return s.taken[slot]
}

// Toggle adds or removes a slot from the selection. Taken slots and
// slots outside the date's window cannot be added; toggling an
// unknown slot is a no-op and returns false.
func (s *Selection) Toggle(slot string) bool {
	if s.date == "" {
		return false
	}

	if s.selected[slot] {
		delete(s.selected, slot)
		return true
	}

	if s.taken[slot] {
		return false
	}
	if !s.slotExists(slot) {
		return false
	}

	s.selected[slot] = true
	return true
}

func (s *Selection) slotExists(slot string) bool {
	for _, label := range s.slots {
		if label == slot {
			return true
		}
	}
	return false
}

// Selected returns the chosen slots in window order
func (s *Selection) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for _, slot := range s.slots {
		if s.selected[slot] {
			out = append(out, slot)
		}
	}
	return out
}

// Total computes the price of the current selection
func (s *Selection) Total(pricePerHour float64) float64 {
	return float64(len(s.selected)) * pricePerHour
}
