package reviews

import "context"

// Repo persists review history.
type Repo interface {
	Create(ctx context.Context, entry Entry) error
	GetByID(ctx context.Context, userID, id string) (Entry, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error)
}
