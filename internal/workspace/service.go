package workspace

import (
	"context"
	"errors"
	"time"
)

// Service reads and writes the per-user workspace.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Get returns every workspace key for userID. Keys never written map to "".
func (s *Service) Get(ctx context.Context, userID string) (map[string]string, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	entries, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(Keys()))
	for _, k := range Keys() {
		out[k] = ""
	}
	for _, e := range entries {
		if IsKey(e.Key) {
			out[e.Key] = e.Value
		}
	}
	return out, nil
}

// Put stores value under key for userID. The latest write wins.
func (s *Service) Put(ctx context.Context, userID, key, value string) error {
	if userID == "" {
		return errors.New("user id is required")
	}
	if !IsKey(key) {
		return ErrUnknownKey
	}
	if len(value) > MaxValueBytes {
		return ErrValueTooLarge
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return s.Repo.Put(ctx, Entry{
		UserID:    userID,
		Key:       key,
		Value:     value,
		UpdatedAt: now().UTC(),
	})
}
