// Package clock provides the wall-clock Scheduler.
package clock

import (
	"time"

	"github.com/example/ninegrid/internal/ports/secondary"
)

// Scheduler implements secondary.Scheduler with time.AfterFunc.
type Scheduler struct{}

// NewScheduler returns a wall-clock scheduler.
func NewScheduler() Scheduler {
	return Scheduler{}
}

// AfterFunc runs f in its own goroutine after d.
func (Scheduler) AfterFunc(d time.Duration, f func()) secondary.Timer {
	return time.AfterFunc(d, f)
}

// Ensure Scheduler implements the interface.
var _ secondary.Scheduler = Scheduler{}
