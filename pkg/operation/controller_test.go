package operation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanmarcjones/bookshelf/pkg/async"
	"github.com/jeanmarcjones/bookshelf/pkg/operation"
)

type book struct {
	ID    string
	Title string
}

func idleState[T any]() operation.State[T] {
	return operation.State[T]{Status: operation.StatusIdle}
}

func TestController_InitialState(t *testing.T) {
	t.Parallel()

	c := operation.New[string]()
	st := c.State()

	assert.Equal(t, idleState[string](), st)
	assert.True(t, st.IsIdle())
	assert.False(t, st.IsLoading())
	assert.False(t, st.IsSuccess())
	assert.False(t, st.IsError())
}

func TestController_RunResolves(t *testing.T) {
	t.Parallel()

	c := operation.New[*book]()
	p := async.NewPromise[*book]()

	done, err := c.Run(p.Future())
	require.NoError(t, err)

	st := c.State()
	assert.Equal(t, operation.StatusPending, st.Status)
	assert.True(t, st.IsLoading())
	assert.Nil(t, st.Data)
	assert.NoError(t, st.Err)

	data := &book{ID: "1", Title: "Dune"}
	p.Resolve(data)
	got, err := done.Await()
	require.NoError(t, err)
	assert.Same(t, data, got)

	st = c.State()
	assert.Equal(t, operation.StatusResolved, st.Status)
	assert.True(t, st.IsSuccess())
	assert.Same(t, data, st.Data)
	assert.NoError(t, st.Err)

	c.Reset()
	assert.Equal(t, idleState[*book](), c.State())
}

func TestController_RunRejects(t *testing.T) {
	t.Parallel()

	c := operation.New[*book]()
	p := async.NewPromise[*book]()

	done, err := c.Run(p.Future())
	require.NoError(t, err)
	assert.True(t, c.State().IsLoading())

	boom := errors.New("some error")
	p.Reject(boom)
	_, err = done.Await()
	assert.Same(t, boom, err)

	st := c.State()
	assert.Equal(t, operation.StatusRejected, st.Status)
	assert.True(t, st.IsError())
	assert.Same(t, boom, st.Err)
	assert.Nil(t, st.Data)

	c.Reset()
	assert.Equal(t, idleState[*book](), c.State())
}

func TestController_RunClearsPreviousPayload(t *testing.T) {
	t.Parallel()

	c := operation.New(operation.WithInitialData("cached"))
	p := async.NewPromise[string]()

	_, err := c.Run(p.Future())
	require.NoError(t, err)

	st := c.State()
	assert.Equal(t, operation.StatusPending, st.Status)
	assert.Empty(t, st.Data)
	assert.NoError(t, st.Err)
}

func TestController_RunWithoutFuture(t *testing.T) {
	t.Parallel()

	c := operation.New[string]()

	done, err := c.Run(nil)
	assert.ErrorIs(t, err, operation.ErrInvalidArgument)
	assert.Nil(t, done)
	assert.EqualError(t, err, "the argument passed to run must be a promise; maybe a function that's passed isn't returning anything")
	assert.Equal(t, idleState[string](), c.State())
}

func TestController_InitialStateOptions(t *testing.T) {
	t.Parallel()

	t.Run("initial data", func(t *testing.T) {
		t.Parallel()
		c := operation.New(operation.WithInitialData("some data"))
		st := c.State()
		assert.Equal(t, operation.StatusResolved, st.Status)
		assert.Equal(t, "some data", st.Data)
		assert.NoError(t, st.Err)
	})

	t.Run("initial error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("some error")
		c := operation.New(operation.WithInitialError[string](boom))
		st := c.State()
		assert.Equal(t, operation.StatusRejected, st.Status)
		assert.Same(t, boom, st.Err)
		assert.Empty(t, st.Data)
	})

	t.Run("last option wins", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("some error")
		c := operation.New(
			operation.WithInitialData("some data"),
			operation.WithInitialError[string](boom),
		)
		st := c.State()
		assert.Equal(t, operation.StatusRejected, st.Status)
		assert.Same(t, boom, st.Err)
		assert.Empty(t, st.Data)
	})

	t.Run("explicit status keeps matching payload", func(t *testing.T) {
		t.Parallel()
		c := operation.New(
			operation.WithInitialData("some data"),
			operation.WithInitialStatus[string](operation.StatusResolved),
		)
		assert.Equal(t, "some data", c.State().Data)

		c = operation.New(
			operation.WithInitialData("some data"),
			operation.WithInitialStatus[string](operation.StatusPending),
		)
		st := c.State()
		assert.Equal(t, operation.StatusPending, st.Status)
		assert.Empty(t, st.Data)
	})

	t.Run("reset restores seeded state", func(t *testing.T) {
		t.Parallel()
		c := operation.New(operation.WithInitialData("seed"))
		c.SetError(errors.New("x"))
		c.Reset()
		assert.Equal(t, operation.State[string]{Status: operation.StatusResolved, Data: "seed"}, c.State())
	})
}

func TestController_SetDataAndSetError(t *testing.T) {
	t.Parallel()

	c := operation.New[string]()

	c.SetData("some data")
	assert.Equal(t, operation.State[string]{Status: operation.StatusResolved, Data: "some data"}, c.State())

	boom := errors.New("some error")
	c.SetError(boom)
	st := c.State()
	assert.Equal(t, operation.StatusRejected, st.Status)
	assert.Same(t, boom, st.Err)
	assert.Empty(t, st.Data)

	c.SetData("again")
	st = c.State()
	assert.Equal(t, operation.StatusResolved, st.Status)
	assert.NoError(t, st.Err)
}

func TestController_NoUpdatesAfterClose(t *testing.T) {
	t.Parallel()

	c := operation.New[string]()
	var calls []operation.State[string]
	c.Subscribe(func(s operation.State[string]) { calls = append(calls, s) })

	p := async.NewPromise[string]()
	done, err := c.Run(p.Future())
	require.NoError(t, err)
	require.Len(t, calls, 1)

	c.Close()
	assert.False(t, c.Active())

	p.Resolve("late")
	v, err := done.Await()
	require.NoError(t, err)
	assert.Equal(t, "late", v)

	assert.Equal(t, operation.StatusPending, c.State().Status)
	assert.Len(t, calls, 1)

	c.SetData("ignored")
	c.Reset()
	assert.Equal(t, operation.StatusPending, c.State().Status)
	assert.Len(t, calls, 1)

	c.Close()
}

func TestController_SharedActiveToken(t *testing.T) {
	t.Parallel()

	owner := operation.NewActiveToken()
	a := operation.New(operation.WithActiveToken[int](owner))
	b := operation.New(operation.WithActiveToken[int](owner))

	pa := async.NewPromise[int]()
	pb := async.NewPromise[int]()
	doneA, _ := a.Run(pa.Future())
	doneB, _ := b.Run(pb.Future())

	owner.End()
	pa.Resolve(1)
	pb.Reject(errors.New("x"))
	_, _ = doneA.Await()
	_, _ = doneB.Await()

	assert.True(t, a.State().IsLoading())
	assert.True(t, b.State().IsLoading())
}

func TestController_ActiveTokenFromContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	c := operation.New(operation.WithActiveToken[int](operation.ActiveTokenFromContext(ctx)))

	p := async.NewPromise[int]()
	done, _ := c.Run(p.Future())

	cancel()
	require.Eventually(t, func() bool { return !c.Active() }, time.Second, time.Millisecond)

	p.Resolve(1)
	_, _ = done.Await()
	assert.True(t, c.State().IsLoading())
}

func TestController_LatestRunWins(t *testing.T) {
	t.Parallel()

	c := operation.New[string]()
	first := async.NewPromise[string]()
	second := async.NewPromise[string]()

	doneFirst, _ := c.Run(first.Future())
	doneSecond, _ := c.Run(second.Future())

	second.Resolve("second")
	_, _ = doneSecond.Await()
	assert.Equal(t, "second", c.State().Data)

	first.Resolve("first")
	v, err := doneFirst.Await()
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	assert.Equal(t, "second", c.State().Data)
}

func TestController_StaleRunAfterNewerRunIsPending(t *testing.T) {
	t.Parallel()

	c := operation.New[string]()
	first := async.NewPromise[string]()
	second := async.NewPromise[string]()

	doneFirst, _ := c.Run(first.Future())
	_, _ = c.Run(second.Future())

	first.Reject(errors.New("stale"))
	_, _ = doneFirst.Await()
	assert.True(t, c.State().IsLoading())
}

func TestController_MutatorsSupersedePendingRun(t *testing.T) {
	t.Parallel()

	t.Run("reset", func(t *testing.T) {
		t.Parallel()
		c := operation.New[string]()
		p := async.NewPromise[string]()
		done, _ := c.Run(p.Future())

		c.Reset()
		p.Resolve("late")
		_, _ = done.Await()
		assert.True(t, c.State().IsIdle())
	})

	t.Run("set data", func(t *testing.T) {
		t.Parallel()
		c := operation.New[string]()
		p := async.NewPromise[string]()
		done, _ := c.Run(p.Future())

		c.SetData("manual")
		p.Reject(errors.New("late"))
		_, _ = done.Await()
		assert.Equal(t, operation.State[string]{Status: operation.StatusResolved, Data: "manual"}, c.State())
	})
}

func TestController_Subscribe(t *testing.T) {
	t.Parallel()

	c := operation.New[int]()
	var statuses []operation.Status
	unsubscribe := c.Subscribe(func(s operation.State[int]) {
		statuses = append(statuses, s.Status)
	})

	p := async.NewPromise[int]()
	done, _ := c.Run(p.Future())
	p.Resolve(1)
	_, _ = done.Await()

	c.SetError(errors.New("x"))
	unsubscribe()
	c.Reset()

	assert.Equal(t, []operation.Status{
		operation.StatusPending,
		operation.StatusResolved,
		operation.StatusRejected,
	}, statuses)

	assert.NotPanics(t, func() { c.Subscribe(nil)() })
}

func TestController_ConcurrentUse(t *testing.T) {
	t.Parallel()

	c := operation.New[int]()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			done, err := c.Run(async.Resolved(v))
			if assert.NoError(t, err) {
				_, _ = done.Await()
			}
			_ = c.State()
		}(i)
	}
	wg.Wait()

	st := c.State()
	assert.Contains(t, []operation.Status{operation.StatusPending, operation.StatusResolved}, st.Status)
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", operation.StatusIdle.String())
	assert.Equal(t, "pending", operation.StatusPending.String())
	assert.Equal(t, "resolved", operation.StatusResolved.String())
	assert.Equal(t, "rejected", operation.StatusRejected.String())
	assert.Equal(t, "unknown", operation.Status(42).String())
}
