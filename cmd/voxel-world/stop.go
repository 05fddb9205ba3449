package main

import (
	"sync"
	"time"
)

// stopGate hands a shutdown request from a signal goroutine to the main
// thread and blocks the requester until the main thread's teardown is over.
type stopGate struct {
	done    chan struct{}
	once    sync.Once
	timeout time.Duration
}

func newStopGate(timeout time.Duration) *stopGate {
	return &stopGate{done: make(chan struct{}), timeout: timeout}
}

func (g *stopGate) finished() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// request calls ask unless teardown already ran, then waits for release or
// the timeout.
func (g *stopGate) request(ask func()) {
	if g.finished() {
		return
	}
	ask()
	select {
	case <-g.done:
	case <-time.After(g.timeout):
	}
}

// release runs teardown once and only then unblocks request.
func (g *stopGate) release(teardown func()) {
	g.once.Do(func() {
		defer close(g.done)
		teardown()
	})
}
