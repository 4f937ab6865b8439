package daemon

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by Post when the dispatcher cannot accept more work.
var ErrQueueFull = errors.New("dispatcher queue full")

// Dispatcher queues functions to run on the render thread.
// Post and Do may be called from any goroutine; Drain must only be called
// from the render thread.
type Dispatcher struct {
	queue chan func()
}

// NewDispatcher creates a dispatcher buffering up to size pending calls.
func NewDispatcher(size int) *Dispatcher {
	if size <= 0 {
		size = 64
	}
	return &Dispatcher{queue: make(chan func(), size)}
}

// Post queues fn without waiting for it to run.
func (d *Dispatcher) Post(fn func()) error {
	select {
	case d.queue <- fn:
		return nil
	default:
		return ErrQueueFull
	}
}

// Do queues fn and waits until the render thread has run it.
func (d *Dispatcher) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case d.queue <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs every queued function and returns how many ran.
// Functions queued while draining run on the next call.
func (d *Dispatcher) Drain() int {
	n := len(d.queue)
	for i := 0; i < n; i++ {
		fn := <-d.queue
		fn()
	}
	return n
}
