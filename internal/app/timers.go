package app

import (
	"context"
	"sync"
	"time"

	"github.com/example/ninegrid/internal/ports/secondary"
)

// timerSet tracks the timed callbacks owned by a service so they can be
// cancelled together and waited on.
type timerSet struct {
	scheduler secondary.Scheduler

	mu         sync.Mutex
	next       int
	pending    map[int]secondary.Timer
	generation uint64
	idle       []chan struct{}
}

func newTimerSet(scheduler secondary.Scheduler) *timerSet {
	return &timerSet{
		scheduler: scheduler,
		pending:   make(map[int]secondary.Timer),
	}
}

// schedule runs f after d unless cancelAll is called first.
// f receives the generation it was scheduled under.
func (ts *timerSet) schedule(d time.Duration, f func(gen uint64)) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	id := ts.next
	ts.next++
	gen := ts.generation
	ts.pending[id] = ts.scheduler.AfterFunc(d, func() {
		f(gen)
		ts.done(id)
	})
}

// current reports whether gen is still live. Callers check it under the
// same lock they hold while calling cancelAll.
func (ts *timerSet) current(gen uint64) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return gen == ts.generation
}

// cancelAll stops every pending timer and invalidates callbacks that are
// already running.
func (ts *timerSet) cancelAll() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stopped := 0
	for id, t := range ts.pending {
		if t.Stop() {
			stopped++
		}
		delete(ts.pending, id)
	}
	ts.generation++
	ts.notifyIdle()
	return stopped
}

func (ts *timerSet) done(id int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	delete(ts.pending, id)
	if len(ts.pending) == 0 {
		ts.notifyIdle()
	}
}

// notifyIdle must be called with mu held.
func (ts *timerSet) notifyIdle() {
	for _, ch := range ts.idle {
		close(ch)
	}
	ts.idle = nil
}

func (ts *timerSet) count() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.pending)
}

// wait blocks until no timer is pending or ctx is done.
func (ts *timerSet) wait(ctx context.Context) error {
	for {
		ts.mu.Lock()
		if len(ts.pending) == 0 {
			ts.mu.Unlock()
			return nil
		}
		ch := make(chan struct{})
		ts.idle = append(ts.idle, ch)
		ts.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
