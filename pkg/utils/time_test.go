package utils

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type testCollector struct {
	executions int64
}

func (t *testCollector) Execute() {
	atomic.AddInt64(&t.executions, 1)
}

func (t *testCollector) Count() int64 {
	return atomic.LoadInt64(&t.executions)
}

func TestRunOnInterval(t *testing.T) {
	t.Run("runs immediately", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		c := &testCollector{}
		RunOnInterval(ctx, c.Execute, time.Hour)

		if got := c.Count(); got != 1 {
			t.Fatalf("expected one synchronous execution, got %d", got)
		}
	})

	t.Run("repeats until cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		c := &testCollector{}
		RunOnInterval(ctx, c.Execute, 5*time.Millisecond)

		deadline := time.After(2 * time.Second)
		for c.Count() < 3 {
			select {
			case <-deadline:
				t.Fatalf("only got %d executions", c.Count())
			case <-time.After(time.Millisecond):
			}
		}
		cancel()

		// Give the ticker goroutine a moment to observe the cancellation.
		time.Sleep(20 * time.Millisecond)
		stopped := c.Count()
		time.Sleep(30 * time.Millisecond)
		if c.Count() != stopped {
			t.Fatalf("function kept running after cancel: %d -> %d", stopped, c.Count())
		}
	})
}
