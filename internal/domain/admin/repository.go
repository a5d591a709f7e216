package admin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines admin data access
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)
	TouchLogin(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new admin repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const adminSelectColumns = `
	id, email, password_hash, name, role, is_active, last_login_at,
	created_at, updated_at
`

func (r *repository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	var a AdminUser
	query := `SELECT ` + adminSelectColumns + ` FROM admin_users WHERE email = $1`

	err := r.db.GetContext(ctx, &a, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	var a AdminUser
	query := `SELECT ` + adminSelectColumns + ` FROM admin_users WHERE id = $1`

	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) TouchLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}
