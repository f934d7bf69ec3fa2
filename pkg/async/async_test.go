package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("resolves with the function result", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 21, func(ctx context.Context, n int) (int, error) {
			return n * 2, nil
		})

		result, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("propagates the function error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("exploded")
		future := async.Async(context.Background(), "x", func(ctx context.Context, s string) (string, error) {
			return "", wantErr
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("cancelled context short-circuits", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		invoked := false
		future := async.Async(ctx, 0, func(ctx context.Context, n int) (int, error) {
			invoked = true
			return n, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, invoked)
	})
}

func TestFuture_AwaitWithTimeout(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	future := async.Async(context.Background(), 0, func(ctx context.Context, n int) (int, error) {
		<-blocked
		return n, nil
	})

	_, err := future.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
	assert.False(t, future.IsComplete())

	close(blocked)
	_, err = future.AwaitWithTimeout(time.Second)
	assert.NoError(t, err)
	assert.True(t, future.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("second failed")
	f1 := async.Async(context.Background(), 1, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	f2 := async.Async(context.Background(), 2, func(ctx context.Context, n int) (int, error) {
		return 0, wantErr
	})
	f3 := async.Async(context.Background(), 3, func(ctx context.Context, n int) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return n, nil
	})

	results, err := async.WaitAll(f1, f2, f3)
	assert.ErrorIs(t, err, wantErr)
	require.Len(t, results, 3)
	assert.Equal(t, 1, results[0])
	assert.Equal(t, 3, results[2], "later futures are still awaited after a failure")
}
