package scheduler

import (
	"sync"
	"time"

	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// Manual is a deterministic Scheduler driven by Advance.
// Callbacks run on the goroutine calling Advance, in due order; ties run in
// scheduling order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
	seq   uint64
}

type manualTask struct {
	id     uint64
	due    time.Duration
	period time.Duration // zero for one-shot tasks
	fn     func()
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every schedules fn every d. A non-positive d is treated as one nanosecond.
func (m *Manual) Every(d time.Duration, fn func()) ports.Cancel {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, fn)
}

// After schedules fn once after d.
func (m *Manual) After(d time.Duration, fn func()) ports.Cancel {
	if d < 0 {
		d = 0
	}
	return m.add(d, 0, fn)
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Pending returns the number of live scheduled callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.tasks)
}

// Advance moves time forward by d, running every callback that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d

	for {
		task := m.nextDueLocked(target)
		if task == nil {
			break
		}

		m.now = task.due
		if task.period > 0 {
			task.due += task.period
		} else {
			m.removeLocked(task.id)
		}

		m.mu.Unlock()
		task.fn()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

func (m *Manual) add(delay, period time.Duration, fn func()) ports.Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	id := m.seq
	m.tasks = append(m.tasks, &manualTask{
		id:     id,
		due:    m.now + delay,
		period: period,
		fn:     fn,
	})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.removeLocked(id)
	}
}

// nextDueLocked returns the earliest task due at or before target.
func (m *Manual) nextDueLocked(target time.Duration) *manualTask {
	var next *manualTask
	for _, t := range m.tasks {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.id < next.id) {
			next = t
		}
	}
	return next
}

func (m *Manual) removeLocked(id uint64) {
	for i, t := range m.tasks {
		if t.id == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

// Verify that Manual implements the Scheduler interface
var _ ports.Scheduler = (*Manual)(nil)
