package photo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines photo data access
type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	ListBySpace(ctx context.Context, spaceID uuid.UUID) ([]Photo, error)
	CountBySpace(ctx context.Context, spaceID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetCover(ctx context.Context, spaceID, photoID uuid.UUID) error
	Reorder(ctx context.Context, spaceID uuid.UUID, orderedIDs []uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Photo) error {
	query := `
		INSERT INTO space_photos (id, space_id, key, thumb_key, url, thumb_url, is_cover, position)
		VALUES (:id, :space_id, :key, :thumb_key, :url, :thumb_url, :is_cover, :position)
	`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	var p Photo
	query := `
		SELECT id, space_id, key, thumb_key, url, thumb_url, is_cover, position, created_at
		FROM space_photos WHERE id = $1
	`
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListBySpace(ctx context.Context, spaceID uuid.UUID) ([]Photo, error) {
	photos := []Photo{}
	query := `
		SELECT id, space_id, key, thumb_key, url, thumb_url, is_cover, position, created_at
		FROM space_photos
		WHERE space_id = $1
		ORDER BY is_cover DESC, position, created_at
	`
	if err := r.db.SelectContext(ctx, &photos, query, spaceID); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *repository) CountBySpace(ctx context.Context, spaceID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM space_photos WHERE space_id = $1`, spaceID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM space_photos WHERE id = $1`, id)
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

func (r *repository) SetCover(ctx context.Context, spaceID, photoID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE space_photos SET is_cover = FALSE WHERE space_id = $1`, spaceID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE space_photos SET is_cover = TRUE WHERE id = $1 AND space_id = $2`, photoID, spaceID)
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

	return tx.Commit()
}

func (r *repository) Reorder(ctx context.Context, spaceID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE space_photos SET position = $1 WHERE id = $2 AND space_id = $3`,
			i, id, spaceID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
