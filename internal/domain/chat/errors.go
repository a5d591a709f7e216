package chat

import "errors"

var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrNotMember      = errors.New("not a member of this thread")
	ErrSelfThread     = errors.New("cannot open a thread with yourself")
	ErrEmptyMessage   = errors.New("message body is empty")
)
