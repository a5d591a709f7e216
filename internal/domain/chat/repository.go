package chat

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines chat data access
type Repository interface {
	CreateThread(ctx context.Context, t *Thread) error
	GetThread(ctx context.Context, id uuid.UUID) (*Thread, error)
	GetThreadByParticipants(ctx context.Context, userID, companyID uuid.UUID) (*Thread, error)
	ListThreads(ctx context.Context, actorID uuid.UUID) ([]Thread, error)

	CreateMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]Message, error)
	MarkRead(ctx context.Context, threadID, readerID uuid.UUID) error
	CountUnread(ctx context.Context, threadID, readerID uuid.UUID) (int, error)
	CountUnreadTotal(ctx context.Context, actorID uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new chat repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateThread(ctx context.Context, t *Thread) error {
	query := `
		INSERT INTO chat_threads (id, user_id, company_id, booking_id)
		VALUES (:id, :user_id, :company_id, :booking_id)
	`
	_, err := r.db.NamedExecContext(ctx, query, t)
	return err
}

func (r *repository) GetThread(ctx context.Context, id uuid.UUID) (*Thread, error) {
	var t Thread
	query := `
		SELECT id, user_id, company_id, booking_id, last_message_at, created_at
		FROM chat_threads WHERE id = $1
	`
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetThreadByParticipants(ctx context.Context, userID, companyID uuid.UUID) (*Thread, error) {
	var t Thread
	query := `
		SELECT id, user_id, company_id, booking_id, last_message_at, created_at
		FROM chat_threads WHERE user_id = $1 AND company_id = $2
	`
	err := r.db.GetContext(ctx, &t, query, userID, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListThreads(ctx context.Context, actorID uuid.UUID) ([]Thread, error) {
	threads := []Thread{}
	query := `
		SELECT id, user_id, company_id, booking_id, last_message_at, created_at
		FROM chat_threads
		WHERE user_id = $1 OR company_id = $1
		ORDER BY COALESCE(last_message_at, created_at) DESC
	`
	if err := r.db.SelectContext(ctx, &threads, query, actorID); err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *repository) CreateMessage(ctx context.Context, m *Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO chat_messages (id, thread_id, sender_id, body)
		VALUES (:id, :thread_id, :sender_id, :body)
	`
	if _, err := tx.NamedExecContext(ctx, query, m); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE chat_threads SET last_message_at = NOW() WHERE id = $1`, m.ThreadID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) ListMessages(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]Message, error) {
	messages := []Message{}
	query := `
		SELECT id, thread_id, sender_id, body, is_read, created_at
		FROM chat_messages
		WHERE thread_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &messages, query, threadID, limit, offset); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repository) MarkRead(ctx context.Context, threadID, readerID uuid.UUID) error {
	query := `
		UPDATE chat_messages
		SET is_read = TRUE
		WHERE thread_id = $1 AND is_read = FALSE
		  AND (sender_id IS NULL OR sender_id != $2)
	`
	_, err := r.db.ExecContext(ctx, query, threadID, readerID)
	return err
}

func (r *repository) CountUnread(ctx context.Context, threadID, readerID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM chat_messages
		WHERE thread_id = $1 AND is_read = FALSE
		  AND (sender_id IS NULL OR sender_id != $2)
	`
	if err := r.db.GetContext(ctx, &count, query, threadID, readerID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountUnreadTotal(ctx context.Context, actorID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM chat_messages m
		JOIN chat_threads t ON t.id = m.thread_id
		WHERE (t.user_id = $1 OR t.company_id = $1)
		  AND m.is_read = FALSE
		  AND (m.sender_id IS NULL OR m.sender_id != $1)
	`
	if err := r.db.GetContext(ctx, &count, query, actorID); err != nil {
		return 0, err
	}
	return count, nil
}
