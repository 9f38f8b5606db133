package workspace

import "context"

// Repo persists workspace entries.
type Repo interface {
	Put(ctx context.Context, entry Entry) error
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}
