package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a controllable clock for tests. Time only moves through Advance
// and Set; due callbacks run synchronously on the caller's goroutine, in due
// order, with the clock reading their due time.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	nextSeq uint64
	timers  []*manualTimer
}

type manualTimer struct {
	clock  *Manual
	due    time.Time
	period time.Duration
	seq    uint64
	fn     func()
	active bool
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current simulated time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn once, delay after the current simulated time.
func (m *Manual) AfterFunc(delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}
	return m.schedule(delay, 0, fn)
}

// Every schedules fn repeatedly with the given interval.
func (m *Manual) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return m.schedule(interval, interval, fn)
}

// Advance moves time forward by delta, firing every callback that becomes
// due along the way.
func (m *Manual) Advance(delta time.Duration) {
	m.mu.Lock()
	target := m.now.Add(delta)
	m.mu.Unlock()
	m.runUntil(target)
}

// Set moves time to t. Moving backwards does not fire anything.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	if !t.After(m.now) {
		m.now = t
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.runUntil(t)
}

// Pending returns the number of active timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) schedule(delay, period time.Duration, fn func()) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSeq++
	timer := &manualTimer{
		clock:  m,
		due:    m.now.Add(delay),
		period: period,
		seq:    m.nextSeq,
		fn:     fn,
		active: true,
	}
	m.timers = append(m.timers, timer)
	return timer
}

func (m *Manual) runUntil(target time.Time) {
	for {
		m.mu.Lock()
		timer := m.nextDueLocked(target)
		if timer == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = timer.due
		if timer.period > 0 {
			timer.due = timer.due.Add(timer.period)
		} else {
			timer.active = false
			m.removeLocked(timer)
		}
		fn := timer.fn
		m.mu.Unlock()

		if fn != nil {
			fn()
		}
	}
}

func (m *Manual) nextDueLocked(target time.Time) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due.Equal(m.timers[j].due) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due.Before(m.timers[j].due)
	})
	first := m.timers[0]
	if first.due.After(target) {
		return nil
	}
	return first
}

func (m *Manual) removeLocked(timer *manualTimer) {
	for i, candidate := range m.timers {
		if candidate == timer {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

func (timer *manualTimer) Stop() bool {
	m := timer.clock
	m.mu.Lock()
	defer m.mu.Unlock()
	if !timer.active {
		return false
	}
	timer.active = false
	m.removeLocked(timer)
	return true
}
