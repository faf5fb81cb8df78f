package editor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/scheduler"
	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/types"
)

func TestLoop_DoRunsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := NewLoop(0)
	go func() { _ = loop.Run(ctx) }()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, loop.Do(ctx, func() { order = append(order, i) }))
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestLoop_StoppedLoopRejectsWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop(1)
	exited := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
		close(exited)
	}()
	cancel()
	<-exited

	assert.ErrorIs(t, loop.Do(context.Background(), func() {}), ErrLoopStopped)
	assert.False(t, loop.Post(func() {}))
}

func TestLoop_DebouncedEditsOnRealTimers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := NewLoop(0)
	go func() { _ = loop.Run(ctx) }()

	store := newOpLog()
	gw := storage.NewGateway(store, "")
	sched := scheduler.New(loop.Executor())
	defer sched.Stop()
	surface := &Recorder{}

	var session *Session
	require.NoError(t, loop.Do(ctx, func() {
		session = NewSession(ctx, gw, sched, rendering.MustNewRenderer(), surface, Options{
			InputDelay:   5 * time.Millisecond,
			SyncDelay:    10 * time.Millisecond,
			PersistDelay: 20 * time.Millisecond,
		})
	}))

	for i := 1; i <= 10; i++ {
		value := fmt.Sprintf("Ann %d", i)
		require.NoError(t, loop.Do(ctx, func() {
			_, err := session.Dispatch(ctx, Event{Type: EventInput, Field: types.FieldName, Value: value})
			assert.NoError(t, err)
		}))
	}

	assert.Eventually(t, func() bool { return store.writeCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, store.writeCount())
	assert.Equal(t, "Ann 10", store.lastWrite(t).Name)

	var progress int
	require.NoError(t, loop.Do(ctx, func() { progress = session.Progress() }))
	assert.Equal(t, 14, progress)
	_, ok := findPatch(surface.Patches(), OpProgress, ProgressTarget)
	assert.True(t, ok)
}
