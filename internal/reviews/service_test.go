package reviews

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndListNewestFirst(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	clock := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "user-1", "tailor", " Backend Engineer ", json.RawMessage(`{"atsScore":80}`)))
	require.NoError(t, svc.Record(ctx, "user-1", "review", "SRE", json.RawMessage(`{"atsScore":65}`)))
	require.NoError(t, svc.Record(ctx, "user-2", "review", "Other", json.RawMessage(`{}`)))

	entries, err := svc.List(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "review", entries[0].Kind)
	assert.Equal(t, "Backend Engineer", entries[1].JobTitle)
	assert.JSONEq(t, `{"atsScore":80}`, string(entries[1].Review))

	got, err := svc.Get(ctx, "user-1", entries[1].ID)
	require.NoError(t, err)
	assert.Equal(t, entries[1].ID, got.ID)

	_, err = svc.Get(ctx, "user-2", entries[1].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Record(ctx, "", "tailor", "x", json.RawMessage(`{}`)), ErrInvalidInput)
	assert.ErrorIs(t, svc.Record(ctx, "user-1", "", "x", json.RawMessage(`{}`)), ErrInvalidInput)
	assert.ErrorIs(t, svc.Record(ctx, "user-1", "tailor", "x", json.RawMessage(`{broken`)), ErrInvalidInput)
}

func TestListPaginates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Record(ctx, "user-1", "review", "", json.RawMessage(`{}`)))
	}

	page, err := svc.List(ctx, "user-1", 2, 4)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	empty, err := svc.List(ctx, "user-1", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
