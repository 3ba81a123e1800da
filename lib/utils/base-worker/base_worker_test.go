package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("job runs periodically until context is done", func(t *testing.T) {
		var counter atomic.Int32
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		worker := NewInstance("TestWorker", time.Millisecond, time.Millisecond)
		go func() {
			worker.Run(ctx, func(ctx context.Context) {
				counter.Add(1)
			})
			close(done)
		}()
		require.Eventually(t, func() bool { return counter.Load() >= 3 }, time.Second, time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("воркер не остановился")
		}
	})
	t.Run("panic does not stop worker", func(t *testing.T) {
		var counter atomic.Int32
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		worker := NewInstance("PanicWorker", time.Millisecond, time.Millisecond)
		go worker.Run(ctx, func(ctx context.Context) {
			if counter.Add(1) == 1 {
				panic("ошибка")
			}
		})
		require.Eventually(t, func() bool { return counter.Load() >= 2 }, time.Second, time.Millisecond)
	})
}
