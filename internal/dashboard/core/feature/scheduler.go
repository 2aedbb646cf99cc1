package feature

import (
	"sync"
	"time"
)

type Timer interface {
	Stop() bool
}

// Scheduler runs delayed UI actions (close after success, clear messages).
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func RealScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler fires timers only when told to.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{d: d, f: f}
	m.mu.Lock()
	m.pending = append(m.pending, t)
	m.mu.Unlock()
	return t
}

// Pending counts timers that are neither stopped nor fired.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

// Delays lists the durations of pending timers in scheduling order.
func (m *ManualScheduler) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []time.Duration
	for _, t := range m.pending {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			out = append(out, t.d)
		}
		t.mu.Unlock()
	}
	return out
}

// RunAll fires every pending timer, including ones scheduled while running,
// and returns how many fired.
func (m *ManualScheduler) RunAll() int {
	fired := 0
	for {
		m.mu.Lock()
		batch := m.pending
		m.pending = nil
		m.mu.Unlock()
		if len(batch) == 0 {
			return fired
		}
		for _, t := range batch {
			t.mu.Lock()
			run := !t.stopped && !t.fired
			t.fired = true
			t.mu.Unlock()
			if run {
				t.f()
				fired++
			}
		}
	}
}
