package reviews

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/telemetry"
)

// Service records and lists tailor and review results.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Record stores one result. It satisfies builder.ReviewRecorder.
func (s *Service) Record(ctx context.Context, userID, kind, jobTitle string, review json.RawMessage) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(kind) == "" {
		return ErrInvalidInput
	}
	if !json.Valid(review) {
		return ErrInvalidInput
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	entry := Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		JobTitle:  strings.TrimSpace(jobTitle),
		Review:    review,
		CreatedAt: now().UTC(),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return err
	}
	telemetry.Info("review.recorded", map[string]any{
		"review_id": entry.ID,
		"user_id":   userID,
		"kind":      kind,
	})
	return nil
}

// Get returns one of the user's entries.
func (s *Service) Get(ctx context.Context, userID, id string) (Entry, error) {
	if userID == "" || id == "" {
		return Entry{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's entries newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
