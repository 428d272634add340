package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	bgTasks := New(slog.Default(), 3, 10)
	bgTasks.Run()
	var ran atomic.Bool
	bgTasks.Add(func() { ran.Store(true) })
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.True(t, ran.Load())
}

func TestShutdownWaitsForQueuedTasks(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 10)
	bgTasks.Run()
	var count atomic.Int32
	for i := 0; i < 5; i++ {
		bgTasks.Add(func() { count.Add(1) })
	}
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.Equal(t, int32(5), count.Load())
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 10)
	bgTasks.Run()
	var ran atomic.Bool
	bgTasks.Add(func() { panic("boom") })
	bgTasks.Add(func() { ran.Store(true) })
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.True(t, ran.Load())
}
