package scheduler

import (
	"sync"
	"time"

	"beacon-chat/pkg/logger"
)

// Timer is the cancellation handle for one armed task.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a one-shot timer. Production uses time.AfterFunc; tests
// inject a manual trigger.
type AfterFunc func(d time.Duration, fn func()) Timer

// Scheduler owns every pending one-shot task, keyed by caller-chosen id.
// CancelAll serves the system reset path; Cancel(id) is available for
// per-task cancellation.
type Scheduler struct {
	mu    sync.Mutex
	clock func() time.Time
	after AfterFunc
	tasks map[string]Timer
	log   *logger.Logger
}

func New(log *logger.Logger) *Scheduler {
	return NewWithClock(log, time.Now, func(d time.Duration, fn func()) Timer {
		return time.AfterFunc(d, fn)
	})
}

func NewWithClock(log *logger.Logger, clock func() time.Time, after AfterFunc) *Scheduler {
	return &Scheduler{
		clock: clock,
		after: after,
		tasks: map[string]Timer{},
		log:   log,
	}
}

// Now exposes the scheduler's clock so callers validate "future" against the
// same time source the timers use.
func (s *Scheduler) Now() time.Time {
	return s.clock()
}

// Schedule arms fn to run once at no earlier than at. A task scheduled for
// the past fires immediately. Re-scheduling an id replaces the pending task.
func (s *Scheduler) Schedule(id string, at time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok {
		t.Stop()
	}
	delay := at.Sub(s.clock())
	if delay < 0 {
		delay = 0
	}
	s.tasks[id] = s.after(delay, func() {
		s.mu.Lock()
		delete(s.tasks, id)
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops a pending task. It reports whether a task was pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	t.Stop()
	return true
}

// CancelAll stops every pending task without running it. Reserved records
// left behind never commit; callers are expected to wipe state afterwards.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		t.Stop()
		delete(s.tasks, id)
	}
	if s.log != nil {
		s.log.Infof("scheduler: cancelled all pending tasks")
	}
}

// Pending reports the number of armed tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
