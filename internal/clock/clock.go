// Package clock abstracts the two timing primitives the game engine needs:
// a repeating tick and a one-shot deferred callback. The engine never talks
// to the runtime timer APIs directly, so tests can drive time by hand.
package clock

import (
	"sync"
	"time"
)

// Handle cancels a scheduled tick or deferred callback.
// Stop is safe to call more than once.
type Handle interface {
	Stop()
}

// Clock schedules callbacks. Callbacks may fire on arbitrary goroutines;
// callers serialize their own state.
type Clock interface {
	// After runs f once after d has elapsed.
	After(d time.Duration, f func()) Handle

	// Every runs f repeatedly with period d until the handle is stopped.
	Every(d time.Duration, f func()) Handle
}

// System is a Clock backed by the runtime timers.
type System struct{}

// NewSystem returns the real clock.
func NewSystem() *System {
	return &System{}
}

func (*System) After(d time.Duration, f func()) Handle {
	t := time.AfterFunc(d, f)
	return afterHandle{t}
}

func (*System) Every(d time.Duration, f func()) Handle {
	h := &everyHandle{done: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f()
			case <-h.done:
				return
			}
		}
	}()
	return h
}

type afterHandle struct {
	t *time.Timer
}

func (h afterHandle) Stop() { h.t.Stop() }

type everyHandle struct {
	once sync.Once
	done chan struct{}
}

func (h *everyHandle) Stop() {
	h.once.Do(func() { close(h.done) })
}
