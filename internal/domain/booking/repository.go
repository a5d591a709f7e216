package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roomly/roomly-api/internal/domain/availability"
)

// Repository defines booking data access
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Booking, int, error)
	ListBySpaceDate(ctx context.Context, spaceID uuid.UUID, date string) ([]Booking, error)
	SlotsBySpace(ctx context.Context, spaceID uuid.UUID) ([]availability.Booked, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, payment PaymentStatus, status Status) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingSelectColumns = `
	id, space_id, user_id, company_id, date, slots, total_price,
	status, payment_status, created_at, updated_at
`

// Create inserts the booking as-is. There is deliberately no
// conditional guard here: the free-slot check happens in the service
// before this call, and two concurrent creates can both succeed.
func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, space_id, user_id, company_id, date, slots, total_price,
			status, payment_status
		) VALUES (
			:id, :space_id, :user_id, :company_id, :date, :slots, :total_price,
			:status, :payment_status
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, b)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	query := `SELECT ` + bookingSelectColumns + ` FROM bookings WHERE id = $1`

	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	bookings := []Booking{}
	query := `SELECT ` + bookingSelectColumns + `
		FROM bookings WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &bookings, query, userID, limit, offset); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *repository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Booking, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE company_id = $1`, companyID); err != nil {
		return nil, 0, err
	}

	bookings := []Booking{}
	query := `SELECT ` + bookingSelectColumns + `
		FROM bookings WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &bookings, query, companyID, limit, offset); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *repository) ListBySpaceDate(ctx context.Context, spaceID uuid.UUID, date string) ([]Booking, error) {
	bookings := []Booking{}
	query := `SELECT ` + bookingSelectColumns + `
		FROM bookings
		WHERE space_id = $1 AND date = $2 AND status != 'cancelled'
		ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &bookings, query, spaceID, date); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) SlotsBySpace(ctx context.Context, spaceID uuid.UUID) ([]availability.Booked, error) {
	bookings := []Booking{}
	query := `SELECT ` + bookingSelectColumns + `
		FROM bookings
		WHERE space_id = $1 AND status != 'cancelled'`
	if err := r.db.SelectContext(ctx, &bookings, query, spaceID); err != nil {
		return nil, err
	}

	out := make([]availability.Booked, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, availability.Booked{Date: b.Date, Slots: b.Slots})
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, payment PaymentStatus, status Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		payment, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
