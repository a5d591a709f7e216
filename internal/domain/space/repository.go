package space

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines space data access
type Repository interface {
	Create(ctx context.Context, s *Space, windows []AvailabilityWindow) error
	GetByID(ctx context.Context, id uuid.UUID) (*Space, error)
	List(ctx context.Context, filter Filter, sort SortBy, page Pagination) ([]Space, int, error)
	Update(ctx context.Context, s *Space) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error

	GetWindows(ctx context.Context, spaceID uuid.UUID) ([]AvailabilityWindow, error)
	ReplaceWindows(ctx context.Context, spaceID uuid.UUID, windows []AvailabilityWindow) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new space repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const spaceSelectColumns = `
	id, company_id, name, description, city, address, capacity,
	price_per_hour, equipment, status, reject_reason, view_count,
	created_at, updated_at
`

func (r *repository) Create(ctx context.Context, s *Space, windows []AvailabilityWindow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO spaces (
			id, company_id, name, description, city, address, capacity,
			price_per_hour, equipment, status
		) VALUES (
			:id, :company_id, :name, :description, :city, :address, :capacity,
			:price_per_hour, :equipment, :status
		)
	`
	if _, err := tx.NamedExecContext(ctx, query, s); err != nil {
		return mapCreateDBError(err)
	}

	if err := insertWindows(ctx, tx, s.ID, windows); err != nil {
		return err
	}

	return tx.Commit()
}

func mapCreateDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrInvalidInput
		case "23503":
			return ErrInvalidInput
		case "23514":
			return ErrInvalidInput
		}
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Space, error) {
	var s Space
	query := `SELECT ` + spaceSelectColumns + ` FROM spaces WHERE id = $1`

	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &s, nil
}

func (r *repository) List(ctx context.Context, filter Filter, sort SortBy, page Pagination) ([]Space, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", argIdx))
		args = append(args, filter.City)
		argIdx++
	}
	if filter.MinCapacity > 0 {
		conditions = append(conditions, fmt.Sprintf("capacity >= $%d", argIdx))
		args = append(args, filter.MinCapacity)
		argIdx++
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("price_per_hour <= $%d", argIdx))
		args = append(args, filter.MaxPrice)
		argIdx++
	}
	if filter.CompanyID != nil {
		conditions = append(conditions, fmt.Sprintf("company_id = $%d", argIdx))
		args = append(args, *filter.CompanyID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM spaces WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	switch sort {
	case SortPriceAsc:
		orderBy = "price_per_hour ASC"
	case SortPriceDesc:
		orderBy = "price_per_hour DESC"
	case SortMostViewed:
		orderBy = "view_count DESC"
	}

	query := fmt.Sprintf(
		`SELECT %s FROM spaces WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		spaceSelectColumns, where, orderBy, argIdx, argIdx+1,
	)
	args = append(args, page.Limit, page.Offset())

	spaces := []Space{}
	if err := r.db.SelectContext(ctx, &spaces, query, args...); err != nil {
		return nil, 0, err
	}

	return spaces, total, nil
}

func (r *repository) Update(ctx context.Context, s *Space) error {
	query := `
		UPDATE spaces
		SET name = :name,
		    description = :description,
		    city = :city,
		    address = :address,
		    capacity = :capacity,
		    price_per_hour = :price_per_hour,
		    equipment = :equipment,
		    status = :status,
		    reject_reason = :reject_reason,
		    updated_at = NOW()
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, s)
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

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason *string) error {
	query := `UPDATE spaces SET status = $1, reject_reason = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, reason, id)
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

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = $1`, id)
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

func (r *repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE spaces SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func (r *repository) GetWindows(ctx context.Context, spaceID uuid.UUID) ([]AvailabilityWindow, error) {
	windows := []AvailabilityWindow{}
	query := `
		SELECT id, space_id, date, start_hour, end_hour
		FROM space_windows
		WHERE space_id = $1
		ORDER BY date, start_hour
	`
	if err := r.db.SelectContext(ctx, &windows, query, spaceID); err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *repository) ReplaceWindows(ctx context.Context, spaceID uuid.UUID, windows []AvailabilityWindow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM space_windows WHERE space_id = $1`, spaceID); err != nil {
		return err
	}

	if err := insertWindows(ctx, tx, spaceID, windows); err != nil {
		return err
	}

	return tx.Commit()
}

func insertWindows(ctx context.Context, tx *sqlx.Tx, spaceID uuid.UUID, windows []AvailabilityWindow) error {
	if len(windows) == 0 {
		return nil
	}

	query := `
		INSERT INTO space_windows (id, space_id, date, start_hour, end_hour)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, w := range windows {
		id := w.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		date := time.Date(w.Date.Year(), w.Date.Month(), w.Date.Day(), 0, 0, 0, 0, time.UTC)
		if _, err := tx.ExecContext(ctx, query, id, spaceID, date, w.StartHour, w.EndHour); err != nil {
			return mapCreateDBError(err)
		}
	}
	return nil
}
