package space

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/roomly/roomly-api/internal/domain/availability"
)

// BookingReader exposes taken slots without importing the booking domain
type BookingReader interface {
	SlotsBySpace(ctx context.Context, spaceID uuid.UUID) ([]availability.Booked, error)
}

// Service handles space business logic
type Service struct {
	repo     Repository
	bookings BookingReader
}

// NewService creates space service
func NewService(repo Repository, bookings BookingReader) *Service {
	return &Service{repo: repo, bookings: bookings}
}

// Create publishes a new listing; it enters moderation as pending
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req CreateRequest) (*Response, error) {
	windows, err := windowsFromInput(req.Windows)
	if err != nil {
		return nil, err
	}

	sp := &Space{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Name:         req.Name,
		Description:  req.Description,
		City:         req.City,
		Address:      req.Address,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		Equipment:    req.Equipment,
		Status:       StatusPending,
	}
	if sp.Equipment == nil {
		sp.Equipment = []string{}
	}

	if err := s.repo.Create(ctx, sp, windows); err != nil {
		return nil, fmt.Errorf("create space: %w", err)
	}

	log.Info().
		Str("space_id", sp.ID.String()).
		Str("company_id", companyID.String()).
		Msg("Space created, pending moderation")

	resp := ToResponse(sp, windows)
	return &resp, nil
}

// Get returns a listing. Unapproved listings are visible only to their
// owner and admins; public views bump the view counter.
func (s *Service) Get(ctx context.Context, id, viewerID uuid.UUID, viewerRole string) (*Response, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get space: %w", err)
	}
	if sp == nil {
		return nil, ErrNotFound
	}

	isOwner := sp.IsOwnedBy(viewerID)
	isAdmin := viewerRole == "admin"
	if !sp.IsApproved() && !isOwner && !isAdmin {
		return nil, ErrNotFound
	}

	if !isOwner && !isAdmin {
		if err := s.repo.IncrementViews(ctx, id); err != nil {
			log.Warn().Err(err).Str("space_id", id.String()).Msg("Failed to increment view count")
		} else {
			sp.ViewCount++
		}
	}

	windows, err := s.repo.GetWindows(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get windows: %w", err)
	}

	resp := ToResponse(sp, windows)
	return &resp, nil
}

// List returns approved listings matching the filter
func (s *Service) List(ctx context.Context, filter Filter, sort SortBy, page Pagination) ([]Response, int, error) {
	approved := StatusApproved
	filter.Status = &approved
	return s.list(ctx, filter, sort, page)
}

// ListMine returns the company's own listings in any status
func (s *Service) ListMine(ctx context.Context, companyID uuid.UUID, page Pagination) ([]Response, int, error) {
	filter := Filter{CompanyID: &companyID}
	return s.list(ctx, filter, SortNewest, page)
}

func (s *Service) list(ctx context.Context, filter Filter, sort SortBy, page Pagination) ([]Response, int, error) {
	if page.Limit <= 0 || page.Limit > 100 {
		page.Limit = 20
	}

	spaces, total, err := s.repo.List(ctx, filter, sort, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list spaces: %w", err)
	}

	out := make([]Response, 0, len(spaces))
	for i := range spaces {
		out = append(out, ToResponse(&spaces[i], nil))
	}
	return out, total, nil
}

// Update edits a listing. Any owner edit sends it back to moderation.
func (s *Service) Update(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req UpdateRequest) (*Response, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get space: %w", err)
	}
	if sp == nil {
		return nil, ErrNotFound
	}
	if !sp.IsOwnedBy(actorID) && actorRole != "admin" {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		sp.Name = *req.Name
	}
	if req.Description != nil {
		sp.Description = *req.Description
	}
	if req.City != nil {
		sp.City = *req.City
	}
	if req.Address != nil {
		sp.Address = *req.Address
	}
	if req.Capacity != nil {
		sp.Capacity = *req.Capacity
	}
	if req.PricePerHour != nil {
		sp.PricePerHour = *req.PricePerHour
	}
	if req.Equipment != nil {
		sp.Equipment = *req.Equipment
	}

	// edits re-enter moderation
	sp.Status = StatusPending
	sp.RejectReason = nil

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, fmt.Errorf("update space: %w", err)
	}

	if req.Windows != nil {
		windows, err := windowsFromInput(*req.Windows)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceWindows(ctx, id, windows); err != nil {
			return nil, fmt.Errorf("replace windows: %w", err)
		}
	}

	windows, err := s.repo.GetWindows(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get windows: %w", err)
	}

	resp := ToResponse(sp, windows)
	return &resp, nil
}

// Delete removes a listing
func (s *Service) Delete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get space: %w", err)
	}
	if sp == nil {
		return ErrNotFound
	}
	if !sp.IsOwnedBy(actorID) && actorRole != "admin" {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete space: %w", err)
	}

	log.Info().Str("space_id", id.String()).Msg("Space deleted")
	return nil
}

// MonthAvailability classifies each day of a month for a space
func (s *Service) MonthAvailability(ctx context.Context, spaceID uuid.UUID, year int, month time.Month) (map[int]availability.DayStatus, error) {
	windows, booked, err := s.loadAvailability(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	return availability.MonthStatuses(windows, booked, year, month), nil
}

// DateSlots describes per-slot state for one date
type DateSlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
	Taken []string `json:"taken"`
	Free  []string `json:"free"`
}

// SlotsForDate derives slot state for a date
func (s *Service) SlotsForDate(ctx context.Context, spaceID uuid.UUID, date string) (*DateSlots, error) {
	windows, booked, err := s.loadAvailability(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	slots := availability.SlotsForDate(windows, date)
	takenSet := availability.TakenSlots(booked, date)

	taken := []string{}
	free := []string{}
	for _, slot := range slots {
		if takenSet[slot] {
			taken = append(taken, slot)
		} else {
			free = append(free, slot)
		}
	}

	return &DateSlots{Date: date, Slots: slots, Taken: taken, Free: free}, nil
}

func (s *Service) loadAvailability(ctx context.Context, spaceID uuid.UUID) ([]availability.Window, []availability.Booked, error) {
	sp, err := s.repo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("get space: %w", err)
	}
	if sp == nil {
		return nil, nil, ErrNotFound
	}

	stored, err := s.repo.GetWindows(ctx, spaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("get windows: %w", err)
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

	booked, err := s.bookings.SlotsBySpace(ctx, spaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("load bookings: %w", err)
	}

	return windows, booked, nil
}

func windowsFromInput(inputs []WindowInput) ([]AvailabilityWindow, error) {
	windows := make([]AvailabilityWindow, 0, len(inputs))
	for _, in := range inputs {
		date, err := time.ParseInLocation("2006-01-02", in.Date, time.Local)
		if err != nil {
			return nil, ErrInvalidInput
		}
		if in.EndHour <= in.StartHour {
			return nil, ErrInvalidInput
		}
		windows = append(windows, AvailabilityWindow{
			ID:        uuid.New(),
			Date:      date,
			StartHour: in.StartHour,
			EndHour:   in.EndHour,
		})
	}
	return windows, nil
}
