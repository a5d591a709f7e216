package chat

import (
	"time"

	"github.com/google/uuid"
)

// Thread is a conversation between a user and a company,
// optionally opened by a booking.
type Thread struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	CompanyID     uuid.UUID  `db:"company_id" json:"company_id"`
	BookingID     *uuid.UUID `db:"booking_id" json:"booking_id,omitempty"`
	LastMessageAt *time.Time `db:"last_message_at" json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// IsMember reports whether the actor participates in the thread
func (t *Thread) IsMember(actorID uuid.UUID) bool {
	return t.UserID == actorID || t.CompanyID == actorID
}

// Message is one entry in a thread. System messages carry a nil sender.
type Message struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	ThreadID  uuid.UUID  `db:"thread_id" json:"thread_id"`
	SenderID  *uuid.UUID `db:"sender_id" json:"sender_id,omitempty"`
	Body      string     `db:"body" json:"body"`
	IsRead    bool       `db:"is_read" json:"is_read"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// IsSystem reports whether the message was generated by the platform
func (m *Message) IsSystem() bool {
	return m.SenderID == nil
}
