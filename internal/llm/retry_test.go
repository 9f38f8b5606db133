package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) Complete(ctx context.Context, req Request) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "ok", nil
}

func TestWithRetryRetriesTransientOnce(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("openai: 503 Service Unavailable")}}
	client := retryingClient{base: base, delay: time.Millisecond}

	out, err := client.Complete(context.Background(), Request{Name: "tailor_resume"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 2, base.calls)
}

func TestWithRetryGivesUpAfterSecondFailure(t *testing.T) {
	transient := errors.New("connection reset by peer")
	base := &scriptedClient{errs: []error{transient, transient}}
	client := retryingClient{base: base, delay: time.Millisecond}

	_, err := client.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 2, base.calls)
}

func TestWithRetrySkipsPermanentErrors(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("400 invalid_request_error: bad model")}}
	client := retryingClient{base: base, delay: time.Millisecond}

	_, err := client.Complete(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 1, base.calls)
}

func TestWithRetryStopsOnCancelledContext(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("502 Bad Gateway")}}
	client := retryingClient{base: base, delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, base.calls)
}

func TestShouldRetry(t *testing.T) {
	assert.False(t, ShouldRetry(nil))
	assert.False(t, ShouldRetry(ErrNotConfigured))
	assert.False(t, ShouldRetry(context.Canceled))
	assert.True(t, ShouldRetry(context.DeadlineExceeded))
	assert.True(t, ShouldRetry(errors.New("anthropic: 529 overloaded_error")))
	assert.True(t, ShouldRetry(errors.New("unexpected EOF")))
	assert.False(t, ShouldRetry(errors.New("401 unauthorized")))
	assert.Nil(t, WithRetry(nil))
}

func TestRetryBudgetCoversBothAttempts(t *testing.T) {
	assert.Equal(t, time.Duration(0), RetryBudget(0))
	assert.Equal(t, 2*time.Second+retryBaseDelay, RetryBudget(time.Second))
}

func TestWithRetryAfterAttemptTimeout(t *testing.T) {
	attemptTimeout := errors.New(`Post "https://api.openai.com/v1/chat/completions": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`)
	base := &scriptedClient{errs: []error{attemptTimeout}}
	client := retryingClient{base: base, delay: time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), RetryBudget(50*time.Millisecond))
	defer cancel()
	out, err := client.Complete(ctx, Request{Name: "review_resume"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 2, base.calls)
}
