package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shayo/shipeval/types"
)

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 3, p.MaxRetries)
	assert.Equal(t, 1*time.Second, p.InitialDelay)
	assert.Equal(t, 4*time.Second, p.MaxDelay)
	assert.Equal(t, 2.0, p.Multiplier)
	assert.False(t, p.Jitter)
}

func TestBackoffRetryer_SucceedsFirstTry(t *testing.T) {
	r := NewBackoffRetryer(DefaultRetryPolicy(), zap.NewNop())
	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestBackoffRetryer_RetriesRetryableError(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond, Multiplier: 2.0}
	r := NewBackoffRetryer(policy, zap.NewNop())

	calls := 0
	retryable := types.NewError(types.ErrUpstreamError, "boom").WithHTTPStatus(http.StatusBadGateway).WithRetryable(true)
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return retryable
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestBackoffRetryer_StopsOnNonRetryableError(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond, Multiplier: 2.0}
	r := NewBackoffRetryer(policy, zap.NewNop())

	calls := 0
	fatal := types.NewError(types.ErrAuthentication, "bad key").WithHTTPStatus(http.StatusUnauthorized)
	err := r.Do(context.Background(), func() error {
		calls++
		return fatal
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, fatal)
}

func TestBackoffRetryer_ExhaustsRetries(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond, Multiplier: 2.0}
	r := NewBackoffRetryer(policy, zap.NewNop())

	calls := 0
	retryable := types.NewError(types.ErrRateLimited, "slow down").WithHTTPStatus(http.StatusTooManyRequests).WithRetryable(true)
	err := r.Do(context.Background(), func() error {
		calls++
		return retryable
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls) // initial attempt + 2 retries
}

func TestBackoffRetryer_ContextCancelled(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 3, InitialDelay: 50 * time.Millisecond, MaxDelay: 200 * time.Millisecond, Multiplier: 2.0}
	r := NewBackoffRetryer(policy, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	retryable := types.NewError(types.ErrUpstreamError, "boom").WithRetryable(true)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := r.Do(ctx, func() error {
		return retryable
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBackoffRetryer_OnRetryCallback(t *testing.T) {
	var attempts []int
	policy := &RetryPolicy{
		MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond, Multiplier: 2.0,
		OnRetry: func(attempt int, err error, delay time.Duration) { attempts = append(attempts, attempt) },
	}
	r := NewBackoffRetryer(policy, zap.NewNop())

	calls := 0
	retryable := types.NewError(types.ErrUpstreamError, "boom").WithRetryable(true)
	_ = r.Do(context.Background(), func() error {
		calls++
		if calls < 2 {
			return retryable
		}
		return nil
	})
	assert.Equal(t, []int{1}, attempts)
}

func TestDoWithResultTyped(t *testing.T) {
	r := NewBackoffRetryer(DefaultRetryPolicy(), zap.NewNop())
	val, err := DoWithResultTyped[int](r, context.Background(), func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}
