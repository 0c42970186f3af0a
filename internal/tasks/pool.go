// Package tasks is the async task executor: a fixed-size worker pool that
// runs short-lived units of work (feed fetch, HTTP download, Storage
// access) off the UI render loop. Grounded on the teacher's worker-pool
// shape (internal/services/workers/worker.go's ticker+stopChan+WaitGroup
// pattern), adapted from "one ticker-driven polling worker" into "N
// goroutines pulling from a shared submit channel" - Go's own scheduler
// already does the work-stealing the spec's executor describes, so the
// pool only needs to bound how many tasks run concurrently.
package tasks

import (
	"context"
	"sync"
)

// Task is a unit of work submitted to the pool. It receives the pool's
// shutdown context and is expected to terminate by sending exactly one
// AppEvent onto whatever Router handle it closed over - the pool itself
// knows nothing about AppEvent, keeping it reusable across subsystems.
type Task func(ctx context.Context)

// Pool is a bounded worker pool. Submitted tasks that can't be handed to
// an idle worker immediately queue on the internal channel; the queue has
// no fixed cap, matching the "tasks are short-lived, never rejected"
// contract, so Submit never blocks the caller for long.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc

	queue chan Task
	wg    sync.WaitGroup
}

// NewPool starts workers goroutines draining the submit queue. workers
// should scale with expected concurrent I/O (feed refreshes, downloads),
// not CPU count, since tasks are I/O-bound.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 8
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan Task, 256),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case t := <-p.queue:
			t(p.ctx)
		}
	}
}

// Submit enqueues t for execution by the next idle worker. Never blocks
// the caller past a full queue buffer: past that it spills the enqueue
// into its own goroutine, matching Send's shape on the command/event
// channels elsewhere in the core.
func (p *Pool) Submit(t Task) {
	select {
	case p.queue <- t:
	default:
		go func() { p.queue <- t }()
	}
}

// Shutdown cancels the pool's context (in-flight tasks observe ctx.Done
// but are not forcibly interrupted - they are expected to run to
// completion per the no-cancellation contract) and waits for all workers
// to drain their current task and exit.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
