package tasks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := NewPool(2)
	defer p.Shutdown()

	var count int32
	done := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		p.Submit(func(ctx context.Context) {
			atomic.AddInt32(&count, 1)
			done <- struct{}{}
		})
	}

	for i := 0; i < 10; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for task completion")
		}
	}
	require.EqualValues(t, 10, atomic.LoadInt32(&count))
}

func TestPool_ShutdownWaitsForRunningTasks(t *testing.T) {
	p := NewPool(1)

	started := make(chan struct{})
	finished := make(chan struct{})
	p.Submit(func(ctx context.Context) {
		close(started)
		time.Sleep(20 * time.Millisecond)
		close(finished)
	})

	<-started
	p.Shutdown()

	select {
	case <-finished:
	default:
		t.Fatal("Shutdown returned before in-flight task finished")
	}
}
