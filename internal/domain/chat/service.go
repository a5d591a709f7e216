package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles chat business logic
type Service struct {
	repo Repository
	hub  *Hub
}

// NewService creates chat service
func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// EnsureThread returns the user/company thread, creating it with a
// system message if absent. Called as a side effect of booking.
func (s *Service) EnsureThread(ctx context.Context, userID, companyID, bookingID uuid.UUID, intro string) error {
	t, err := s.repo.GetThreadByParticipants(ctx, userID, companyID)
	if err != nil {
		return fmt.Errorf("get thread: %w", err)
	}

	if t == nil {
		t = &Thread{
			ID:        uuid.New(),
			UserID:    userID,
			CompanyID: companyID,
			BookingID: &bookingID,
		}
		if err := s.repo.CreateThread(ctx, t); err != nil {
			return fmt.Errorf("create thread: %w", err)
		}
	}

	msg := &Message{
		ID:       uuid.New(),
		ThreadID: t.ID,
		Body:     intro,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return fmt.Errorf("create system message: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToThread(t.ID, &WSEvent{
			Type:     EventNewMessage,
			ThreadID: t.ID,
			Message:  msg,
		})
	}

	return nil
}

// OpenThread creates or returns a conversation started by a user
func (s *Service) OpenThread(ctx context.Context, userID, companyID uuid.UUID) (*Thread, error) {
	if userID == companyID {
		return nil, ErrSelfThread
	}

	t, err := s.repo.GetThreadByParticipants(ctx, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}
	if t != nil {
		return t, nil
	}

	t = &Thread{
		ID:        uuid.New(),
		UserID:    userID,
		CompanyID: companyID,
	}
	if err := s.repo.CreateThread(ctx, t); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}

	log.Info().Str("thread_id", t.ID.String()).Msg("Chat thread opened")
	return t, nil
}

// ListThreads returns the actor's conversations with unread counters
func (s *Service) ListThreads(ctx context.Context, actorID uuid.UUID) ([]ThreadResponse, error) {
	threads, err := s.repo.ListThreads(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	out := make([]ThreadResponse, 0, len(threads))
	for _, t := range threads {
		unread, err := s.repo.CountUnread(ctx, t.ID, actorID)
		if err != nil {
			unread = 0
		}
		out = append(out, ThreadResponse{Thread: t, UnreadCount: unread})
	}
	return out, nil
}

// GetMessages returns a page of thread messages for a member
func (s *Service) GetMessages(ctx context.Context, actorID, threadID uuid.UUID, limit, offset int) ([]Message, error) {
	t, err := s.memberThread(ctx, actorID, threadID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	return s.repo.ListMessages(ctx, t.ID, limit, offset)
}

// SendMessage posts a message and broadcasts it
func (s *Service) SendMessage(ctx context.Context, actorID, threadID uuid.UUID, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	t, err := s.memberThread(ctx, actorID, threadID)
	if err != nil {
		return nil, err
	}

	sender := actorID
	msg := &Message{
		ID:       uuid.New(),
		ThreadID: t.ID,
		SenderID: &sender,
		Body:     body,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToThread(t.ID, &WSEvent{
			Type:     EventNewMessage,
			ThreadID: t.ID,
			SenderID: actorID,
			Message:  msg,
		})
	}

	return msg, nil
}

// MarkRead marks the other side's messages as read
func (s *Service) MarkRead(ctx context.Context, actorID, threadID uuid.UUID) error {
	t, err := s.memberThread(ctx, actorID, threadID)
	if err != nil {
		return err
	}

	if err := s.repo.MarkRead(ctx, t.ID, actorID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToThread(t.ID, &WSEvent{
			Type:     EventRead,
			ThreadID: t.ID,
			SenderID: actorID,
		})
	}

	return nil
}

// UnreadCount returns the actor's total unread messages
func (s *Service) UnreadCount(ctx context.Context, actorID uuid.UUID) (int, error) {
	return s.repo.CountUnreadTotal(ctx, actorID)
}

func (s *Service) memberThread(ctx context.Context, actorID, threadID uuid.UUID) (*Thread, error) {
	t, err := s.repo.GetThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}
	if t == nil {
		return nil, ErrThreadNotFound
	}
	if !t.IsMember(actorID) {
		return nil, ErrNotMember
	}
	return t, nil
}
