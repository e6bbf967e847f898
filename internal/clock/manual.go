package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
// Intended for tests.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  int
	pending []*manualEntry
}

type manualEntry struct {
	id     int
	at     time.Duration
	period time.Duration // 0 for one-shots
	f      func()
	owner  *Manual
	dead   bool
}

// NewManual returns a manual clock starting at zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, f func()) Handle {
	return m.schedule(d, 0, f)
}

func (m *Manual) Every(d time.Duration, f func()) Handle {
	return m.schedule(d, d, f)
}

func (m *Manual) schedule(d, period time.Duration, f func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e := &manualEntry{id: m.nextID, at: m.now + d, period: period, f: f, owner: m}
	m.pending = append(m.pending, e)
	return e
}

// Advance moves time forward by d, firing due callbacks in order.
// Callbacks run synchronously on the calling goroutine, outside the
// clock's lock, so they may schedule or stop timers themselves.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		e := m.nextDue(target)
		if e == nil {
			break
		}
		m.now = e.at
		if e.period > 0 {
			e.at += e.period
		} else {
			e.dead = true
		}
		f := e.f
		m.mu.Unlock()
		f()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// nextDue returns the earliest live entry with at <= target, or nil.
// Caller holds the lock.
func (m *Manual) nextDue(target time.Duration) *manualEntry {
	live := m.pending[:0]
	for _, e := range m.pending {
		if !e.dead {
			live = append(live, e)
		}
	}
	m.pending = live
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at != m.pending[j].at {
			return m.pending[i].at < m.pending[j].at
		}
		return m.pending[i].id < m.pending[j].id
	})
	for _, e := range m.pending {
		if e.at <= target {
			return e
		}
	}
	return nil
}

func (e *manualEntry) Stop() {
	e.owner.mu.Lock()
	e.dead = true
	e.owner.mu.Unlock()
}
