package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status represents booking lifecycle status
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus represents payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a reservation of slots on one date.
// CompanyID is denormalized from the space at creation time.
// Slots are write-once: only status and payment fields change later.
type Booking struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	SpaceID       uuid.UUID      `db:"space_id" json:"space_id"`
	UserID        uuid.UUID      `db:"user_id" json:"user_id"`
	CompanyID     uuid.UUID      `db:"company_id" json:"company_id"`
	Date          string         `db:"date" json:"date"`
	Slots         pq.StringArray `db:"slots" json:"slots"`
	TotalPrice    float64        `db:"total_price" json:"total_price"`
	Status        Status         `db:"status" json:"status"`
	PaymentStatus PaymentStatus  `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the booking still holds its slots
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}
