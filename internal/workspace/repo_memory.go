package workspace

import (
	"context"
	"sync"
)

// MemoryRepo keeps entries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]map[string]Entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]map[string]Entry)}
}

// Put stores entry, replacing any previous value for the same key.
func (r *MemoryRepo) Put(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := r.byUser[entry.UserID]
	if !ok {
		entries = make(map[string]Entry)
		r.byUser[entry.UserID] = entries
	}
	entries[entry.Key] = entry
	return nil
}

// ListByUser returns the user's entries in no particular order.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.byUser[userID]))
	for _, e := range r.byUser[userID] {
		out = append(out, e)
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
