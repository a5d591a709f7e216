package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/roomly/roomly-api/internal/domain/space"
	"github.com/roomly/roomly-api/internal/pkg/imaging"
	"github.com/roomly/roomly-api/internal/pkg/storage"
)

const maxPhotosPerSpace = 20

// SpaceReader is the slice of the space repository photos need
type SpaceReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*space.Space, error)
}

// Service handles photo uploads and management
type Service struct {
	repo      Repository
	spaces    SpaceReader
	storage   storage.Storage
	processor *imaging.Processor
}

// NewService creates photo service
func NewService(repo Repository, spaces SpaceReader, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{repo: repo, spaces: spaces, storage: store, processor: processor}
}

// Upload processes and stores an image for a space
func (s *Service) Upload(ctx context.Context, actorID uuid.UUID, actorRole string, spaceID uuid.UUID, filename string, file io.Reader, size int64) (*Photo, error) {
	sp, err := s.ownedSpace(ctx, actorID, actorRole, spaceID)
	if err != nil {
		return nil, err
	}

	if !imaging.ValidateType(filename) {
		return nil, ErrInvalidFile
	}
	if size > imaging.MaxFileSize {
		return nil, ErrTooLarge
	}

	count, err := s.repo.CountBySpace(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("count photos: %w", err)
	}
	if count >= maxPhotosPerSpace {
		return nil, ErrTooMany
	}

	processed, err := s.processor.Process(io.LimitReader(file, imaging.MaxFileSize+1))
	if err != nil {
		return nil, ErrInvalidFile
	}

	key, thumbKey := imaging.GeneratePaths(spaceID.String(), filename)

	if err := s.storage.Put(ctx, key, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, fmt.Errorf("store original: %w", err)
	}
	if err := s.storage.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Failed to clean up original after thumb failure")
		}
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	p := &Photo{
		ID:       uuid.New(),
		SpaceID:  spaceID,
		Key:      key,
		ThumbKey: thumbKey,
		URL:      s.storage.GetURL(key),
		ThumbURL: s.storage.GetURL(thumbKey),
		IsCover:  count == 0,
		Position: count,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}

	log.Info().
		Str("photo_id", p.ID.String()).
		Str("space_id", sp.ID.String()).
		Int("bytes", len(processed.Original)).
		Msg("Photo uploaded")

	return p, nil
}

// List returns a space's photos
func (s *Service) List(ctx context.Context, spaceID uuid.UUID) ([]Photo, error) {
	return s.repo.ListBySpace(ctx, spaceID)
}

// Delete removes a photo and its stored objects
func (s *Service) Delete(ctx context.Context, actorID uuid.UUID, actorRole string, photoID uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, photoID)
	if err != nil {
		return fmt.Errorf("get photo: %w", err)
	}
	if p == nil {
		return ErrNotFound
	}

	if _, err := s.ownedSpace(ctx, actorID, actorRole, p.SpaceID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, photoID); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	// storage cleanup failures are logged, the row is already gone
	if err := s.storage.Delete(ctx, p.Key); err != nil {
		log.Warn().Err(err).Str("key", p.Key).Msg("Failed to delete stored photo")
	}
	if err := s.storage.Delete(ctx, p.ThumbKey); err != nil {
		log.Warn().Err(err).Str("key", p.ThumbKey).Msg("Failed to delete stored thumbnail")
	}

	return nil
}

// SetCover marks one photo as its space's cover image
func (s *Service) SetCover(ctx context.Context, actorID uuid.UUID, actorRole string, photoID uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, photoID)
	if err != nil {
		return fmt.Errorf("get photo: %w", err)
	}
	if p == nil {
		return ErrNotFound
	}
	if _, err := s.ownedSpace(ctx, actorID, actorRole, p.SpaceID); err != nil {
		return err
	}
	return s.repo.SetCover(ctx, p.SpaceID, photoID)
}

// Reorder updates photo positions for a space
func (s *Service) Reorder(ctx context.Context, actorID uuid.UUID, actorRole string, spaceID uuid.UUID, orderedIDs []uuid.UUID) error {
	if _, err := s.ownedSpace(ctx, actorID, actorRole, spaceID); err != nil {
		return err
	}
	return s.repo.Reorder(ctx, spaceID, orderedIDs)
}

func (s *Service) ownedSpace(ctx context.Context, actorID uuid.UUID, actorRole string, spaceID uuid.UUID) (*space.Space, error) {
	sp, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("get space: %w", err)
	}
	if sp == nil {
		return nil, ErrSpaceNotFound
	}
	if !sp.IsOwnedBy(actorID) && actorRole != "admin" {
		return nil, ErrNotOwner
	}
	return sp, nil
}
