package exports

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/storage/object/local"
)

type failingRepo struct {
	*MemoryRepo
}

func (failingRepo) Create(ctx context.Context, export Export) error {
	return errors.New("db down")
}

type recordingStore struct {
	object.ObjectStore
	deleted []string
}

func (s *recordingStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.ObjectStore.Delete(ctx, key)
}

func TestCreateStoresTextAndContentReadsIt(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Store: local.New(t.TempDir())}
	ctx := context.Background()

	export, err := svc.Create(ctx, "user-1", "", "JANE DOE\nEngineer")
	require.NoError(t, err)
	assert.Equal(t, SourceManual, export.Source)
	assert.Equal(t, FileName, export.FileName)
	assert.Equal(t, int64(len("JANE DOE\nEngineer")), export.SizeBytes)

	got, data, err := svc.Content(ctx, "user-1", export.ID)
	require.NoError(t, err)
	assert.Equal(t, export.ID, got.ID)
	assert.Equal(t, "JANE DOE\nEngineer", string(data))

	_, _, err = svc.Content(ctx, "user-2", export.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Store: local.New(t.TempDir())}
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", SourcePreview, " \n\t")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = svc.Create(ctx, "", SourcePreview, "text")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "user-1", "fax", "text")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "user-1", SourcePreview, strings.Repeat("a", MaxTextBytes+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRemovesObjectWhenRepoFails(t *testing.T) {
	store := &recordingStore{ObjectStore: local.New(t.TempDir())}
	svc := &Service{Repo: failingRepo{NewMemoryRepo()}, Store: store}

	_, err := svc.Create(context.Background(), "user-1", SourceTailor, "resume")
	require.Error(t, err)
	require.Len(t, store.deleted, 1)

	_, err = store.Open(context.Background(), store.deleted[0])
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestContentMissingObjectIsNotFound(t *testing.T) {
	repo := NewMemoryRepo()
	store := local.New(t.TempDir())
	svc := &Service{Repo: repo, Store: store}
	ctx := context.Background()

	export, err := svc.Create(ctx, "user-1", SourcePreview, "resume")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, export.StorageKey))

	_, _, err = svc.Content(ctx, "user-1", export.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

