package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/domain/space"
)

// ErrSpaceNotFound is returned when bookmarking a non-existent listing
var ErrSpaceNotFound = errors.New("space not found")

// SpaceReader provides listing lookups for favorites
type SpaceReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*space.Space, error)
}

// Entry is a bookmark together with its listing
type Entry struct {
	Favorite Favorite     `json:"favorite"`
	Space    *space.Space `json:"space,omitempty"`
}

// Service handles favorite business logic
type Service struct {
	repo   Repository
	spaces SpaceReader
}

// NewService creates favorite service
func NewService(repo Repository, spaces SpaceReader) *Service {
	return &Service{repo: repo, spaces: spaces}
}

// Add bookmarks a space for a user
func (s *Service) Add(ctx context.Context, userID, spaceID uuid.UUID) (*Favorite, error) {
	sp, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("get space: %w", err)
	}
	if sp == nil {
		return nil, ErrSpaceNotFound
	}

	return s.repo.Add(ctx, userID, spaceID)
}

// Remove drops a bookmark. Removing an absent bookmark is a no-op.
func (s *Service) Remove(ctx context.Context, userID, spaceID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, spaceID)
}

// IsFavorited reports whether the user bookmarked the space
func (s *Service) IsFavorited(ctx context.Context, userID, spaceID uuid.UUID) (bool, error) {
	return s.repo.IsFavorited(ctx, userID, spaceID)
}

// List returns the user's bookmarks with listing details. Bookmarks
// whose listing has since been deleted are returned without one.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]Entry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	favs, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}

	entries := make([]Entry, 0, len(favs))
	for _, f := range favs {
		entry := Entry{Favorite: f}
		if sp, err := s.spaces.GetByID(ctx, f.SpaceID); err == nil {
			entry.Space = sp
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}
