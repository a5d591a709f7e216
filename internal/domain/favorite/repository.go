package favorite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Favorite represents a bookmarked space
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	SpaceID   uuid.UUID `json:"space_id" db:"space_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Repository defines favorite data access
type Repository interface {
	Add(ctx context.Context, userID, spaceID uuid.UUID) (*Favorite, error)
	Remove(ctx context.Context, userID, spaceID uuid.UUID) error
	IsFavorited(ctx context.Context, userID, spaceID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Favorite, int, error)
	CountBySpace(ctx context.Context, spaceID uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new favorite repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Add is idempotent: bookmarking an already bookmarked space
// returns the existing row.
func (r *repository) Add(ctx context.Context, userID, spaceID uuid.UUID) (*Favorite, error) {
	fav := &Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		SpaceID:   spaceID,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO favorites (id, user_id, space_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, space_id) DO NOTHING
		RETURNING id
	`

	var insertedID uuid.UUID
	err := r.db.GetContext(ctx, &insertedID, query, fav.ID, fav.UserID, fav.SpaceID, fav.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.get(ctx, userID, spaceID)
		}
		return nil, err
	}

	return fav, nil
}

func (r *repository) get(ctx context.Context, userID, spaceID uuid.UUID) (*Favorite, error) {
	var fav Favorite
	query := `SELECT id, user_id, space_id, created_at FROM favorites WHERE user_id = $1 AND space_id = $2`

	err := r.db.GetContext(ctx, &fav, query, userID, spaceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &fav, nil
}

func (r *repository) Remove(ctx context.Context, userID, spaceID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND space_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, spaceID)
	return err
}

func (r *repository) IsFavorited(ctx context.Context, userID, spaceID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM favorites WHERE user_id = $1 AND space_id = $2`
	err := r.db.GetContext(ctx, &count, query, userID, spaceID)
	return count > 0, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Favorite, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM favorites WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	favs := []Favorite{}
	err := r.db.SelectContext(ctx, &favs,
		`SELECT id, user_id, space_id, created_at FROM favorites
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	return favs, total, err
}

func (r *repository) CountBySpace(ctx context.Context, spaceID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM favorites WHERE space_id = $1`
	err := r.db.GetContext(ctx, &count, query, spaceID)
	return count, err
}
