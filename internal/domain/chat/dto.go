package chat

import "github.com/google/uuid"

// CreateThreadRequest opens (or returns) a conversation with a company
type CreateThreadRequest struct {
	CompanyID uuid.UUID `json:"company_id" validate:"required"`
}

// SendMessageRequest represents message payload
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}

// ThreadResponse is a thread with its unread counter for the viewer
type ThreadResponse struct {
	Thread
	UnreadCount int `json:"unread_count"`
}
