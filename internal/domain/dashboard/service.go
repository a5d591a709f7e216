package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CompanyStats aggregates a company's listings and bookings
type CompanyStats struct {
	TotalSpaces     int          `json:"total_spaces"`
	ApprovedSpaces  int          `json:"approved_spaces"`
	PendingSpaces   int          `json:"pending_spaces"`
	TotalViews      int          `json:"total_views"`
	TotalBookings   int          `json:"total_bookings"`
	ActiveBookings  int          `json:"active_bookings"`
	PaidBookings    int          `json:"paid_bookings"`
	Revenue         float64      `json:"revenue"`
	AvgBookingValue float64      `json:"avg_booking_value"`
	Spaces          []SpaceStats `json:"spaces"`
}

// SpaceStats breaks bookings down per listing
type SpaceStats struct {
	SpaceID     uuid.UUID `json:"space_id" db:"space_id"`
	Name        string    `json:"name" db:"name"`
	ViewCount   int       `json:"view_count" db:"view_count"`
	Bookings    int       `json:"bookings" db:"bookings"`
	BookedHours int       `json:"booked_hours" db:"booked_hours"`
	Revenue     float64   `json:"revenue" db:"revenue"`
}

// Service computes company dashboard figures straight from the
// database. Individual scan failures leave the field at zero rather
// than failing the whole dashboard.
type Service struct {
	db *sqlx.DB
}

// NewService creates dashboard service
func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// CompanyStats returns a company's dashboard
func (s *Service) CompanyStats(ctx context.Context, companyID uuid.UUID) (*CompanyStats, error) {
	stats := &CompanyStats{}

	_ = s.db.GetContext(ctx, &stats.TotalSpaces,
		`SELECT COUNT(*) FROM spaces WHERE company_id = $1`, companyID)
	_ = s.db.GetContext(ctx, &stats.ApprovedSpaces,
		`SELECT COUNT(*) FROM spaces WHERE company_id = $1 AND status = 'approved'`, companyID)
	_ = s.db.GetContext(ctx, &stats.PendingSpaces,
		`SELECT COUNT(*) FROM spaces WHERE company_id = $1 AND status = 'pending'`, companyID)
	_ = s.db.GetContext(ctx, &stats.TotalViews,
		`SELECT COALESCE(SUM(view_count), 0) FROM spaces WHERE company_id = $1`, companyID)

	_ = s.db.GetContext(ctx, &stats.TotalBookings,
		`SELECT COUNT(*) FROM bookings WHERE company_id = $1`, companyID)
	_ = s.db.GetContext(ctx, &stats.ActiveBookings,
		`SELECT COUNT(*) FROM bookings WHERE company_id = $1 AND status != 'cancelled'`, companyID)
	_ = s.db.GetContext(ctx, &stats.PaidBookings,
		`SELECT COUNT(*) FROM bookings WHERE company_id = $1 AND payment_status = 'paid'`, companyID)
	_ = s.db.GetContext(ctx, &stats.Revenue,
		`SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE company_id = $1 AND payment_status = 'paid'`, companyID)

	if stats.PaidBookings > 0 {
		stats.AvgBookingValue = stats.Revenue / float64(stats.PaidBookings)
	}

	stats.Spaces = []SpaceStats{}
	_ = s.db.SelectContext(ctx, &stats.Spaces, `
		SELECT
			s.id AS space_id,
			s.name,
			s.view_count,
			COUNT(b.id) FILTER (WHERE b.status != 'cancelled') AS bookings,
			COALESCE(SUM(array_length(b.slots, 1)) FILTER (WHERE b.status != 'cancelled'), 0) AS booked_hours,
			COALESCE(SUM(b.total_price) FILTER (WHERE b.payment_status = 'paid'), 0) AS revenue
		FROM spaces s
		LEFT JOIN bookings b ON b.space_id = s.id
		WHERE s.company_id = $1
		GROUP BY s.id, s.name, s.view_count
		ORDER BY bookings DESC, s.created_at DESC
	`, companyID)

	return stats, nil
}
