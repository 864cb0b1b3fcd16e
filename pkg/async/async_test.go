package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanmarcjones/bookshelf/pkg/async"
)

func TestAsyncFunctionality(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	futureString := async.Async(ctx, 42, func(ctx context.Context, num int) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return fmt.Sprintf("Number: %d", num), nil
	})

	type pair struct {
		A int
		B int
	}
	futureInt := async.Async(ctx, pair{A: 10, B: 32}, func(ctx context.Context, p pair) (int, error) {
		return p.A + p.B, nil
	})

	s, err := futureString.Await()
	require.NoError(t, err)
	assert.Equal(t, "Number: 42", s)

	n, err := futureInt.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestAsyncContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	future := async.Async(ctx, 42, func(ctx context.Context, num int) (string, error) {
		select {
		case <-time.After(time.Second):
			return fmt.Sprintf("Number: %d", num), nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	result, err := future.Await()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, result)
}

func TestAsyncPreCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	future := async.Async(ctx, 1, func(ctx context.Context, n int) (int, error) {
		called = true
		return n, nil
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAsyncErrorPropagation(t *testing.T) {
	t.Parallel()
	expectedErr := errors.New("an error occurred in the async function")

	future := async.Async(context.Background(), 42, func(ctx context.Context, num int) (int, error) {
		return 0, expectedErr
	})

	result, err := future.Await()
	assert.Same(t, expectedErr, err)
	assert.Zero(t, result)
}

func TestPromise(t *testing.T) {
	t.Parallel()

	t.Run("resolve settles the future", func(t *testing.T) {
		t.Parallel()
		p := async.NewPromise[string]()
		f := p.Future()
		assert.False(t, f.IsComplete())

		assert.True(t, p.Resolve("data"))
		assert.True(t, f.IsComplete())

		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "data", v)
	})

	t.Run("reject settles the future", func(t *testing.T) {
		t.Parallel()
		p := async.NewPromise[int]()
		boom := errors.New("boom")
		assert.True(t, p.Reject(boom))

		v, err := p.Future().Await()
		assert.Same(t, boom, err)
		assert.Zero(t, v)
	})

	t.Run("first settlement wins", func(t *testing.T) {
		t.Parallel()
		p := async.NewPromise[int]()
		assert.True(t, p.Resolve(1))
		assert.False(t, p.Resolve(2))
		assert.False(t, p.Reject(errors.New("late")))

		v, err := p.Future().Await()
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("concurrent settlement settles once", func(t *testing.T) {
		t.Parallel()
		p := async.NewPromise[int]()

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := range 100 {
			wg.Add(1)
			go func(v int) {
				defer wg.Done()
				if p.Resolve(v) {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
		assert.True(t, p.Future().IsComplete())
	})
}

func TestResolvedAndRejected(t *testing.T) {
	t.Parallel()

	v, err := async.Resolved("x").Await()
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	boom := errors.New("boom")
	_, err = async.Rejected[string](boom).Await()
	assert.Same(t, boom, err)
}

func TestThen(t *testing.T) {
	t.Parallel()

	p := async.NewPromise[int]()
	doubled := async.Then(p.Future(), func(v int, err error) (string, error) {
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v * 2), nil
	})

	assert.False(t, doubled.IsComplete())
	p.Resolve(21)

	v, err := doubled.Await()
	require.NoError(t, err)
	assert.Equal(t, "42", v)
}

func TestDone(t *testing.T) {
	t.Parallel()

	p := async.NewPromise[int]()
	go p.Resolve(7)

	select {
	case <-p.Future().Done():
	case <-time.After(time.Second):
		t.Fatal("future did not settle")
	}
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	p := async.NewPromise[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Future().AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, p.Future().IsComplete())

	p.Resolve(1)
	v, err := p.Future().AwaitContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	fast := async.Resolved("success")
	result, err := fast.AwaitWithTimeout(100 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "success", result)

	slow := async.NewPromise[string]()
	result, err = slow.Future().AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
	assert.Empty(t, result)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	results, err := async.WaitAll(async.Resolved(1), async.Resolved(2), async.Resolved(3))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, results)

	boom := errors.New("boom")
	results, err = async.WaitAll(async.Resolved(1), async.Rejected[int](boom), async.Resolved(3))
	assert.Same(t, boom, err)
	assert.Equal(t, 1, results[0])
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	never := async.NewPromise[string]()
	index, result, err := async.WaitAny(never.Future(), async.Resolved("fast"))
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, "fast", result)

	_, _, err = async.WaitAny[string]()
	assert.ErrorIs(t, err, async.ErrNoFutures)
}
