package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Object describes a stored body.
type Object struct {
	Key  string
	Size int64
}

// ObjectStore saves and retrieves export bodies.
type ObjectStore interface {
	Put(ctx context.Context, userID, fileName, contentType string, body io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
