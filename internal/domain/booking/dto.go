package booking

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest represents booking creation payload
type CreateRequest struct {
	SpaceID uuid.UUID `json:"space_id" validate:"required"`
	Date    string    `json:"date" validate:"required,datekey"`
	Slots   []string  `json:"slots" validate:"required,min=1,max=24,dive,max=20"`
}

// Response is the booking shape returned to clients
type Response struct {
	ID            uuid.UUID     `json:"id"`
	SpaceID       uuid.UUID     `json:"space_id"`
	UserID        uuid.UUID     `json:"user_id"`
	CompanyID     uuid.UUID     `json:"company_id"`
	Date          string        `json:"date"`
	Slots         []string      `json:"slots"`
	TotalPrice    float64       `json:"total_price"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ToResponse converts entity to response
func ToResponse(b *Booking) Response {
	return Response{
		ID:            b.ID,
		SpaceID:       b.SpaceID,
		UserID:        b.UserID,
		CompanyID:     b.CompanyID,
		Date:          b.Date,
		Slots:         b.Slots,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
	}
}
