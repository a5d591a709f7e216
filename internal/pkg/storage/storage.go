package storage

import (
	"context"
	"io"
)

// Storage is the minimal interface photo uploads need from a backend:
// put an object, delete it, resolve its public URL.
type Storage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	GetURL(key string) string
}
