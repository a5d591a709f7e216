package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/roomly/roomly-api/internal/domain/availability"
	"github.com/roomly/roomly-api/internal/domain/space"
)

// ThreadCreator opens a user/company conversation after a booking
type ThreadCreator interface {
	EnsureThread(ctx context.Context, userID, companyID, bookingID uuid.UUID, intro string) error
}

// SpaceReader is the slice of the space repository bookings need
type SpaceReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*space.Space, error)
	GetWindows(ctx context.Context, spaceID uuid.UUID) ([]space.AvailabilityWindow, error)
}

// Service handles booking business logic
type Service struct {
	repo    Repository
	spaces  SpaceReader
	threads ThreadCreator
}

// NewService creates booking service
func NewService(repo Repository, spaces SpaceReader, threads ThreadCreator) *Service {
	return &Service{repo: repo, spaces: spaces, threads: threads}
}

// Create reserves slots on a date. The free-slot verification and the
// insert are separate steps with no transaction between them, so two
// concurrent requests for the same slots can both succeed.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Response, error) {
	sp, err := s.spaces.GetByID(ctx, req.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("get space: %w", err)
	}
	if sp == nil {
		return nil, ErrSpaceNotFound
	}
	if !sp.IsApproved() {
		return nil, ErrNotApproved
	}

	if len(req.Slots) == 0 {
		return nil, ErrNoSlots
	}

	stored, err := s.spaces.GetWindows(ctx, req.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("get windows: %w", err)
	}
	raw := make([]availability.RawWindow, 0, len(stored))
	for _, w := range stored {
		raw = append(raw, availability.RawWindow{
			Date:      w.Date,
			StartHour: w.StartHour,
			EndHour:   w.EndHour,
		})
	}
	windows := availability.Normalize(raw)

	derivable := availability.SlotsForDate(windows, req.Date)
	allowed := make(map[string]bool, len(derivable))
	for _, slot := range derivable {
		allowed[slot] = true
	}
	for _, slot := range req.Slots {
		if !allowed[slot] {
			return nil, ErrSlotUnknown
		}
	}

	existing, err := s.repo.ListBySpaceDate(ctx, req.SpaceID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	booked := make([]availability.Booked, 0, len(existing))
	for _, b := range existing {
		booked = append(booked, availability.Booked{Date: b.Date, Slots: b.Slots})
	}
	taken := availability.TakenSlots(booked, req.Date)
	for _, slot := range req.Slots {
		if taken[slot] {
			return nil, ErrSlotTaken
		}
	}

	b := &Booking{
		ID:            uuid.New(),
		SpaceID:       req.SpaceID,
		UserID:        userID,
		CompanyID:     sp.CompanyID,
		Date:          req.Date,
		Slots:         req.Slots,
		TotalPrice:    float64(len(req.Slots)) * sp.PricePerHour,
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("space_id", b.SpaceID.String()).
		Str("date", b.Date).
		Int("slots", len(b.Slots)).
		Msg("Booking created")

	if s.threads != nil {
		intro := fmt.Sprintf("New booking for %s on %s", sp.Name, b.Date)
		if err := s.threads.EnsureThread(ctx, userID, sp.CompanyID, b.ID, intro); err != nil {
			log.Warn().Err(err).Str("booking_id", b.ID.String()).Msg("Failed to open booking thread")
		}
	}

	resp := ToResponse(b)
	return &resp, nil
}

// Get returns a booking for its user or the space's company
func (s *Service) Get(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*Response, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if b == nil {
		return nil, ErrNotFound
	}

	if b.UserID != actorID && b.CompanyID != actorID && actorRole != "admin" {
		return nil, ErrAccessDenied
	}

	resp := ToResponse(b)
	return &resp, nil
}

// ListMine returns the authenticated user's bookings
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Response, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	bookings, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}

	return toResponses(bookings), total, nil
}

// ListForCompany returns bookings across the company's spaces
func (s *Service) ListForCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Response, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	bookings, total, err := s.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}

	return toResponses(bookings), total, nil
}

// Cancel releases a booking's slots
func (s *Service) Cancel(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	if b == nil {
		return ErrNotFound
	}

	if b.UserID != actorID && b.CompanyID != actorID && actorRole != "admin" {
		return ErrAccessDenied
	}
	if b.Status == StatusCancelled {
		return ErrAlreadyDone
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	log.Info().Str("booking_id", id.String()).Msg("Booking cancelled")
	return nil
}

func toResponses(bookings []Booking) []Response {
	out := make([]Response, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToResponse(&bookings[i]))
	}
	return out
}
