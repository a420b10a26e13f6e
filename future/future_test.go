package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_ResolvesOnce(t *testing.T) {
	f := New()
	assert.False(t, f.IsResolved())
	assert.NoError(t, f.Err())

	first := errors.New("first")
	assert.True(t, f.Resolve(first))
	assert.False(t, f.Resolve(errors.New("second")))

	assert.True(t, f.IsResolved())
	assert.Same(t, first, f.Err())
	assert.ErrorIs(t, f.Wait(context.Background()), first)
}

func TestFuture_WaitHonoursContext(t *testing.T) {
	f := New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := f.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.IsResolved(), "timing out a wait must not resolve the future")
}

func TestAll_WaitsForEvery(t *testing.T) {
	a, b, c := New(), New(), Resolved(nil)
	done := make(chan error, 1)
	go func() { done <- All(context.Background(), a, b, c, nil) }()

	a.Resolve(nil)
	select {
	case <-done:
		t.Fatal("All returned before every future resolved")
	case <-time.After(10 * time.Millisecond):
	}

	b.Resolve(nil)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("All did not return")
	}
}

func TestAll_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := All(context.Background(), Resolved(nil), Resolved(boom))
	assert.ErrorIs(t, err, boom)
}

func TestGo_ResolvesWithResult(t *testing.T) {
	boom := errors.New("boom")
	f := Go(func() error { return boom })
	assert.ErrorIs(t, f.Wait(context.Background()), boom)
}

func TestAll_ErrorDoesNotCutWaitShort(t *testing.T) {
	boom := errors.New("boom")
	slow := New()
	done := make(chan error, 1)
	go func() { done <- All(context.Background(), Resolved(boom), slow) }()

	select {
	case <-done:
		t.Fatal("All returned while a future was pending")
	case <-time.After(10 * time.Millisecond):
	}

	slow.Resolve(nil)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("All did not return")
	}
}
