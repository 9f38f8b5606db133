package exports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

// Service stores resume text for download.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Create stores text as a new export. Blank text is rejected with ErrEmptyText.
func (s *Service) Create(ctx context.Context, userID, source, text string) (Export, error) {
	if userID == "" {
		return Export{}, ErrInvalidInput
	}
	if strings.TrimSpace(text) == "" {
		return Export{}, ErrEmptyText
	}
	if len(text) > MaxTextBytes {
		return Export{}, ErrInvalidInput
	}
	if source == "" {
		source = SourceManual
	}
	if !validSource(source) {
		return Export{}, ErrInvalidInput
	}
	if s.Repo == nil || s.Store == nil {
		return Export{}, errors.New("missing dependencies")
	}

	obj, err := s.Store.Put(ctx, userID, FileName, MimeType, strings.NewReader(text))
	if err != nil {
		return Export{}, fmt.Errorf("save export: %w", err)
	}

	export := Export{
		ID:         uuid.NewString(),
		UserID:     userID,
		Source:     source,
		StorageKey: obj.Key,
		FileName:   FileName,
		MimeType:   MimeType,
		SizeBytes:  obj.Size,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, export); err != nil {
		if delErr := s.Store.Delete(ctx, obj.Key); delErr != nil {
			telemetry.Warn("export.orphaned_object", map[string]any{
				"storage_key": obj.Key,
				"error":       delErr.Error(),
			})
		}
		return Export{}, err
	}
	metrics.IncExportCreated(source)
	telemetry.Info("export.created", map[string]any{
		"export_id":  export.ID,
		"user_id":    userID,
		"source":     source,
		"size_bytes": export.SizeBytes,
	})
	return export, nil
}

// Get returns an export by ID for a user.
func (s *Service) Get(ctx context.Context, userID, exportID string) (Export, error) {
	if userID == "" || exportID == "" {
		return Export{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, exportID)
}

// List returns exports for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Content loads the export and its full text. The body is read completely so
// storage failures surface before any bytes are written to the client.
func (s *Service) Content(ctx context.Context, userID, exportID string) (Export, []byte, error) {
	export, err := s.Get(ctx, userID, exportID)
	if err != nil {
		return Export{}, nil, err
	}
	reader, err := s.Store.Open(ctx, export.StorageKey)
	if errors.Is(err, object.ErrNotFound) {
		return Export{}, nil, ErrNotFound
	}
	if err != nil {
		return Export{}, nil, fmt.Errorf("open export: %w", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(io.LimitReader(reader, MaxTextBytes+1))
	if err != nil {
		return Export{}, nil, fmt.Errorf("read export: %w", err)
	}
	return export, data, nil
}
