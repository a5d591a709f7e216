package space

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status represents moderation status of a listing
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Space represents a bookable workspace listing
type Space struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	CompanyID    uuid.UUID      `db:"company_id" json:"company_id"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description"`
	City         string         `db:"city" json:"city"`
	Address      string         `db:"address" json:"address"`
	Capacity     int            `db:"capacity" json:"capacity"`
	PricePerHour float64        `db:"price_per_hour" json:"price_per_hour"`
	Equipment    pq.StringArray `db:"equipment" json:"equipment"`
	Status       Status         `db:"status" json:"status"`
	RejectReason *string        `db:"reject_reason" json:"reject_reason,omitempty"`
	ViewCount    int            `db:"view_count" json:"view_count"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// AvailabilityWindow is a declared open range on one date.
// Windows live and die with their space edit, they have no
// independent lifecycle.
type AvailabilityWindow struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SpaceID   uuid.UUID `db:"space_id" json:"space_id"`
	Date      time.Time `db:"date" json:"date"`
	StartHour int       `db:"start_hour" json:"start_hour"`
	EndHour   int       `db:"end_hour" json:"end_hour"`
}

// IsApproved reports whether the listing is publicly bookable
func (s *Space) IsApproved() bool {
	return s.Status == StatusApproved
}

// IsOwnedBy reports listing ownership
func (s *Space) IsOwnedBy(companyID uuid.UUID) bool {
	return s.CompanyID == companyID
}
