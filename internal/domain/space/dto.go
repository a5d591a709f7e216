package space

import (
	"time"

	"github.com/google/uuid"
)

// WindowInput is a declared open range supplied on create/update
type WindowInput struct {
	Date      string `json:"date" validate:"required,datekey"`
	StartHour int    `json:"start_hour" validate:"hour"`
	EndHour   int    `json:"end_hour" validate:"hour,gtfield=StartHour"`
}

// CreateRequest represents listing creation payload
type CreateRequest struct {
	Name         string        `json:"name" validate:"required,min=2,max=200"`
	Description  string        `json:"description" validate:"max=5000"`
	City         string        `json:"city" validate:"required,max=100"`
	Address      string        `json:"address" validate:"required,max=300"`
	Capacity     int           `json:"capacity" validate:"required,min=1,max=10000"`
	PricePerHour float64       `json:"price_per_hour" validate:"required,min=0"`
	Equipment    []string      `json:"equipment" validate:"max=50,dive,max=100"`
	Windows      []WindowInput `json:"windows" validate:"max=366,dive"`
}

// UpdateRequest represents listing update payload.
// Windows, when present, replace the stored set wholesale.
type UpdateRequest struct {
	Name         *string        `json:"name" validate:"omitempty,min=2,max=200"`
	Description  *string        `json:"description" validate:"omitempty,max=5000"`
	City         *string        `json:"city" validate:"omitempty,max=100"`
	Address      *string        `json:"address" validate:"omitempty,max=300"`
	Capacity     *int           `json:"capacity" validate:"omitempty,min=1,max=10000"`
	PricePerHour *float64       `json:"price_per_hour" validate:"omitempty,min=0"`
	Equipment    *[]string      `json:"equipment" validate:"omitempty,max=50,dive,max=100"`
	Windows      *[]WindowInput `json:"windows" validate:"omitempty,max=366,dive"`
}

// Filter narrows listing queries
type Filter struct {
	City        string
	MinCapacity int
	MaxPrice    float64
	CompanyID   *uuid.UUID
	Status      *Status
	Search      string
}

// Pagination bounds result pages
type Pagination struct {
	Page  int
	Limit int
}

// Offset computes the row offset
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// SortBy names an allowed listing sort order
type SortBy string

const (
	SortNewest     SortBy = "newest"
	SortPriceAsc   SortBy = "price_asc"
	SortPriceDesc  SortBy = "price_desc"
	SortMostViewed SortBy = "most_viewed"
)

// Response is the listing shape returned to clients
type Response struct {
	ID           uuid.UUID       `json:"id"`
	CompanyID    uuid.UUID       `json:"company_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	City         string          `json:"city"`
	Address      string          `json:"address"`
	Capacity     int             `json:"capacity"`
	PricePerHour float64         `json:"price_per_hour"`
	Equipment    []string        `json:"equipment"`
	Status       Status          `json:"status"`
	RejectReason *string         `json:"reject_reason,omitempty"`
	ViewCount    int             `json:"view_count"`
	Windows      []WindowPayload `json:"windows,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// WindowPayload is a date-keyed window in responses
type WindowPayload struct {
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

// ToResponse converts entity plus windows to a response
func ToResponse(s *Space, windows []AvailabilityWindow) Response {
	resp := Response{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		Name:         s.Name,
		Description:  s.Description,
		City:         s.City,
		Address:      s.Address,
		Capacity:     s.Capacity,
		PricePerHour: s.PricePerHour,
		Equipment:    s.Equipment,
		Status:       s.Status,
		RejectReason: s.RejectReason,
		ViewCount:    s.ViewCount,
		CreatedAt:    s.CreatedAt,
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowPayload{
			Date:      w.Date.Format("2006-01-02"),
			StartHour: w.StartHour,
			EndHour:   w.EndHour,
		})
	}
	return resp
}
