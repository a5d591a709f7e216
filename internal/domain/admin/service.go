package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/roomly/roomly-api/internal/domain/space"
	"github.com/roomly/roomly-api/internal/domain/user"
	"github.com/roomly/roomly-api/internal/pkg/password"
)

// Service handles admin panel business logic
type Service struct {
	repo   Repository
	jwt    *JWTService
	users  user.Repository
	spaces space.Repository
	db     *sqlx.DB
}

// NewService creates admin service
func NewService(repo Repository, jwtSvc *JWTService, users user.Repository, spaces space.Repository, db *sqlx.DB) *Service {
	return &Service{repo: repo, jwt: jwtSvc, users: users, spaces: spaces, db: db}
}

// LoginResult carries an issued admin session
type LoginResult struct {
	Token string     `json:"token"`
	Admin *AdminUser `json:"admin"`
}

// Login verifies admin credentials and issues a token
func (s *Service) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	a, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if a == nil {
		return nil, ErrInvalidCredentials
	}
	if !password.Verify(pass, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !a.IsActive {
		return nil, ErrInactive
	}

	token, err := s.jwt.GenerateToken(a)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.repo.TouchLogin(ctx, a.ID); err != nil {
		log.Warn().Err(err).Str("admin_id", a.ID.String()).Msg("Failed to record admin login")
	}

	log.Info().Str("admin_id", a.ID.String()).Str("role", string(a.Role)).Msg("Admin logged in")
	return &LoginResult{Token: token, Admin: a}, nil
}

// GetAdminByID returns an admin account
func (s *Service) GetAdminByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPendingSpaces returns the moderation queue
func (s *Service) ListPendingSpaces(ctx context.Context, page, limit int) ([]space.Space, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	pending := space.StatusPending
	return s.spaces.List(ctx,
		space.Filter{Status: &pending},
		space.SortNewest,
		space.Pagination{Page: page, Limit: limit},
	)
}

// ApproveSpace makes a listing publicly bookable
func (s *Service) ApproveSpace(ctx context.Context, adminID, spaceID uuid.UUID) error {
	if err := s.spaces.UpdateStatus(ctx, spaceID, space.StatusApproved, nil); err != nil {
		if err == space.ErrNotFound {
			return ErrSpaceNotFound
		}
		return fmt.Errorf("approve space: %w", err)
	}

	log.Info().
		Str("admin_id", adminID.String()).
		Str("space_id", spaceID.String()).
		Msg("Space approved")
	return nil
}

// RejectSpace declines a listing with a reason
func (s *Service) RejectSpace(ctx context.Context, adminID, spaceID uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}

	if err := s.spaces.UpdateStatus(ctx, spaceID, space.StatusRejected, &reason); err != nil {
		if err == space.ErrNotFound {
			return ErrSpaceNotFound
		}
		return fmt.Errorf("reject space: %w", err)
	}

	log.Info().
		Str("admin_id", adminID.String()).
		Str("space_id", spaceID.String()).
		Str("reason", reason).
		Msg("Space rejected")
	return nil
}

// ListUsers returns registered accounts
func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]user.User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}
	return s.users.List(ctx, limit, offset)
}

// SetUserStatus blocks or unblocks an account
func (s *Service) SetUserStatus(ctx context.Context, adminID, userID uuid.UUID, status user.Status) error {
	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		if err == user.ErrNotFound {
			return ErrUserNotFound
		}
		return fmt.Errorf("set user status: %w", err)
	}

	log.Info().
		Str("admin_id", adminID.String()).
		Str("user_id", userID.String()).
		Str("status", string(status)).
		Msg("User status changed")
	return nil
}

// PlatformStats aggregates platform-wide figures
type PlatformStats struct {
	TotalUsers     int            `json:"total_users"`
	TotalCompanies int            `json:"total_companies"`
	TotalSpaces    int            `json:"total_spaces"`
	PendingSpaces  int            `json:"pending_spaces"`
	ApprovedSpaces int            `json:"approved_spaces"`
	RejectedSpaces int            `json:"rejected_spaces"`
	TotalBookings  int            `json:"total_bookings"`
	PaidBookings   int            `json:"paid_bookings"`
	TotalRevenue   float64        `json:"total_revenue"`
	PopularSpaces  []PopularSpace `json:"popular_spaces"`
}

// PopularSpace ranks a listing by booking count
type PopularSpace struct {
	SpaceID  uuid.UUID `json:"space_id"`
	Name     string    `json:"name"`
	Bookings int       `json:"bookings"`
	Revenue  float64   `json:"revenue"`
}

type statRow struct {
	SpaceID       uuid.UUID `db:"space_id"`
	TotalPrice    float64   `db:"total_price"`
	Status        string    `db:"status"`
	PaymentStatus string    `db:"payment_status"`
}

// Stats computes the platform dashboard. Bookings are fetched in full
// and reduced in memory; counts come from plain scans.
func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}

	_ = s.db.GetContext(ctx, &stats.TotalUsers, `SELECT COUNT(*) FROM users WHERE role = 'user'`)
	_ = s.db.GetContext(ctx, &stats.TotalCompanies, `SELECT COUNT(*) FROM users WHERE role = 'company'`)
	_ = s.db.GetContext(ctx, &stats.TotalSpaces, `SELECT COUNT(*) FROM spaces`)
	_ = s.db.GetContext(ctx, &stats.PendingSpaces, `SELECT COUNT(*) FROM spaces WHERE status = 'pending'`)
	_ = s.db.GetContext(ctx, &stats.ApprovedSpaces, `SELECT COUNT(*) FROM spaces WHERE status = 'approved'`)
	_ = s.db.GetContext(ctx, &stats.RejectedSpaces, `SELECT COUNT(*) FROM spaces WHERE status = 'rejected'`)

	rows := []statRow{}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT space_id, total_price, status, payment_status FROM bookings`); err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	type acc struct {
		bookings int
		revenue  float64
	}
	perSpace := make(map[uuid.UUID]*acc)

	for _, row := range rows {
		if row.Status == "cancelled" {
			continue
		}
		stats.TotalBookings++

		a := perSpace[row.SpaceID]
		if a == nil {
			a = &acc{}
			perSpace[row.SpaceID] = a
		}
		a.bookings++

		if row.PaymentStatus == "paid" {
			stats.PaidBookings++
			stats.TotalRevenue += row.TotalPrice
			a.revenue += row.TotalPrice
		}
	}

	popular := make([]PopularSpace, 0, len(perSpace))
	for id, a := range perSpace {
		popular = append(popular, PopularSpace{SpaceID: id, Bookings: a.bookings, Revenue: a.revenue})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Bookings != popular[j].Bookings {
			return popular[i].Bookings > popular[j].Bookings
		}
		return popular[i].Revenue > popular[j].Revenue
	})
	if len(popular) > 10 {
		popular = popular[:10]
	}

	for i := range popular {
		sp, err := s.spaces.GetByID(ctx, popular[i].SpaceID)
		if err == nil && sp != nil {
			popular[i].Name = sp.Name
		}
	}
	stats.PopularSpaces = popular

	return stats, nil
}
