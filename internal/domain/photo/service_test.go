package photo

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/domain/space"
	"github.com/roomly/roomly-api/internal/pkg/imaging"
)

type stubRepo struct {
	photos map[uuid.UUID]*Photo
}

func newStubRepo() *stubRepo {
	return &stubRepo{photos: make(map[uuid.UUID]*Photo)}
}

func (r *stubRepo) Create(_ context.Context, p *Photo) error {
	cp := *p
	r.photos[p.ID] = &cp
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (*Photo, error) {
	return r.photos[id], nil
}

func (r *stubRepo) ListBySpace(_ context.Context, spaceID uuid.UUID) ([]Photo, error) {
	out := []Photo{}
	for _, p := range r.photos {
		if p.SpaceID == spaceID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubRepo) CountBySpace(_ context.Context, spaceID uuid.UUID) (int, error) {
	count := 0
	for _, p := range r.photos {
		if p.SpaceID == spaceID {
			count++
		}
	}
	return count, nil
}

func (r *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.photos[id]; !ok {
		return ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

func (r *stubRepo) SetCover(_ context.Context, spaceID, photoID uuid.UUID) error {
	found := false
	for _, p := range r.photos {
		if p.SpaceID == spaceID {
			p.IsCover = p.ID == photoID
			if p.ID == photoID {
				found = true
			}
		}
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (r *stubRepo) Reorder(_ context.Context, spaceID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if p, ok := r.photos[id]; ok && p.SpaceID == spaceID {
			p.Position = i
		}
	}
	return nil
}

type stubSpaces struct {
	spaces map[uuid.UUID]*space.Space
}

func (s *stubSpaces) GetByID(_ context.Context, id uuid.UUID) (*space.Space, error) {
	return s.spaces[id], nil
}

type memStorage struct {
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (s *memStorage) Put(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *memStorage) GetURL(key string) string {
	return "https://cdn.test/" + key
}

func testPNG(t *testing.T) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return &buf
}

func newTestService() (*Service, *stubRepo, *memStorage, uuid.UUID, uuid.UUID) {
	repo := newStubRepo()
	ownerID := uuid.New()
	spaceID := uuid.New()
	spaces := &stubSpaces{spaces: map[uuid.UUID]*space.Space{
		spaceID: {ID: spaceID, CompanyID: ownerID, Status: space.StatusApproved},
	}}
	store := newMemStorage()
	svc := NewService(repo, spaces, store, imaging.NewProcessor(imaging.DefaultConfig()))
	return svc, repo, store, ownerID, spaceID
}

func TestUpload(t *testing.T) {
	svc, _, store, ownerID, spaceID := newTestService()
	ctx := context.Background()

	buf := testPNG(t)
	p, err := svc.Upload(ctx, ownerID, "company", spaceID, "room.png", buf, int64(buf.Len()))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !p.IsCover {
		t.Error("first photo should become the cover")
	}
	if len(store.objects) != 2 {
		t.Errorf("expected original and thumbnail stored, got %d objects", len(store.objects))
	}
	if p.URL == "" || p.ThumbURL == "" {
		t.Error("expected resolved URLs")
	}
}

func TestUploadRejectsNonOwner(t *testing.T) {
	svc, _, _, _, spaceID := newTestService()
	ctx := context.Background()

	buf := testPNG(t)
	if _, err := svc.Upload(ctx, uuid.New(), "company", spaceID, "room.png", buf, int64(buf.Len())); err != ErrNotOwner {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Upload(ctx, uuid.New(), "company", uuid.New(), "room.png", buf, 100); err != ErrSpaceNotFound {
		t.Errorf("expected ErrSpaceNotFound, got %v", err)
	}
}

func TestUploadRejectsBadFiles(t *testing.T) {
	svc, _, _, ownerID, spaceID := newTestService()
	ctx := context.Background()

	if _, err := svc.Upload(ctx, ownerID, "company", spaceID, "notes.txt", bytes.NewReader([]byte("hi")), 2); err != ErrInvalidFile {
		t.Errorf("bad extension: expected ErrInvalidFile, got %v", err)
	}
	if _, err := svc.Upload(ctx, ownerID, "company", spaceID, "big.png", bytes.NewReader(nil), imaging.MaxFileSize+1); err != ErrTooLarge {
		t.Errorf("oversize: expected ErrTooLarge, got %v", err)
	}
	if _, err := svc.Upload(ctx, ownerID, "company", spaceID, "fake.png", bytes.NewReader([]byte("not an image")), 12); err != ErrInvalidFile {
		t.Errorf("corrupt data: expected ErrInvalidFile, got %v", err)
	}
}

func TestDeleteCleansStorage(t *testing.T) {
	svc, _, store, ownerID, spaceID := newTestService()
	ctx := context.Background()

	buf := testPNG(t)
	p, err := svc.Upload(ctx, ownerID, "company", spaceID, "room.png", buf, int64(buf.Len()))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(ctx, uuid.New(), "company", p.ID); err != ErrNotOwner {
		t.Errorf("stranger delete: expected ErrNotOwner, got %v", err)
	}

	if err := svc.Delete(ctx, ownerID, "company", p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.objects) != 0 {
		t.Errorf("expected stored objects removed, %d left", len(store.objects))
	}
}

func TestSetCover(t *testing.T) {
	svc, repo, _, ownerID, spaceID := newTestService()
	ctx := context.Background()

	first := testPNG(t)
	p1, err := svc.Upload(ctx, ownerID, "company", spaceID, "a.png", first, int64(first.Len()))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	second := testPNG(t)
	p2, err := svc.Upload(ctx, ownerID, "company", spaceID, "b.png", second, int64(second.Len()))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.SetCover(ctx, ownerID, "company", p2.ID); err != nil {
		t.Fatalf("set cover: %v", err)
	}
	if repo.photos[p1.ID].IsCover || !repo.photos[p2.ID].IsCover {
		t.Error("cover flag should move to the chosen photo")
	}
}
