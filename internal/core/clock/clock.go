// Package clock abstracts time reading and timer scheduling so that every
// window, cooldown and periodic check in the core can run against simulated
// time in tests.
package clock

import (
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing again. It reports whether the
	// timer was still active.
	Stop() bool
}

// Clock provides monotonic time readings and schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(delay time.Duration, fn func()) Timer
	Every(interval time.Duration, fn func()) Timer
}

// Real is the wall clock. Callbacks run on their own goroutines.
type Real struct{}

// NewReal creates a wall clock.
func NewReal() Real {
	return Real{}
}

// Now returns the current time with its monotonic reading.
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn once after delay.
func (Real) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

// Every runs fn on each tick of interval until stopped.
func (Real) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := &realTicker{
		ticker: time.NewTicker(interval),
		stopCh: make(chan struct{}),
	}
	go ticker.run(fn)
	return ticker
}

type realTicker struct {
	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
}

func (ticker *realTicker) run(fn func()) {
	for {
		select {
		case <-ticker.stopCh:
			return
		case <-ticker.ticker.C:
			fn()
		}
	}
}

func (ticker *realTicker) Stop() bool {
	stopped := false
	ticker.stopOnce.Do(func() {
		ticker.ticker.Stop()
		close(ticker.stopCh)
		stopped = true
	})
	return stopped
}
