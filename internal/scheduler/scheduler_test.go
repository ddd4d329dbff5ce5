package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon-chat/pkg/logger"
)

type stubTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *stubTimer) Stop() bool {
	was := t.stopped
	t.stopped = true
	return !was
}

type stubTimers struct {
	armed []*stubTimer
}

func (s *stubTimers) after(d time.Duration, fn func()) Timer {
	t := &stubTimer{delay: d, fn: fn}
	s.armed = append(s.armed, t)
	return t
}

func (s *stubTimers) fire() {
	armed := s.armed
	s.armed = nil
	for _, t := range armed {
		if !t.stopped {
			t.fn()
		}
	}
}

func newTestScheduler() (*Scheduler, *stubTimers, *time.Time) {
	now := time.Unix(1_700_000_000, 0)
	timers := &stubTimers{}
	sched := NewWithClock(logger.NewNop(), func() time.Time { return now }, timers.after)
	return sched, timers, &now
}

func TestScheduleFiresAndForgets(t *testing.T) {
	sched, timers, now := newTestScheduler()

	fired := 0
	sched.Schedule("a", now.Add(3*time.Second), func() { fired++ })
	require.Equal(t, 1, sched.Pending())
	require.Len(t, timers.armed, 1)
	assert.Equal(t, 3*time.Second, timers.armed[0].delay)

	timers.fire()
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, sched.Pending())
}

func TestSchedulePastClampedToZeroDelay(t *testing.T) {
	sched, timers, now := newTestScheduler()

	sched.Schedule("a", now.Add(-time.Minute), func() {})
	require.Len(t, timers.armed, 1)
	assert.Equal(t, time.Duration(0), timers.armed[0].delay)
}

func TestScheduleReplacesPendingTask(t *testing.T) {
	sched, timers, now := newTestScheduler()

	var got string
	sched.Schedule("a", now.Add(time.Second), func() { got = "first" })
	sched.Schedule("a", now.Add(2*time.Second), func() { got = "second" })
	require.Equal(t, 1, sched.Pending())

	timers.fire()
	assert.Equal(t, "second", got)
}

func TestCancel(t *testing.T) {
	sched, timers, now := newTestScheduler()

	fired := false
	sched.Schedule("a", now.Add(time.Second), func() { fired = true })
	assert.True(t, sched.Cancel("a"))
	assert.False(t, sched.Cancel("a"))
	assert.Equal(t, 0, sched.Pending())

	timers.fire()
	assert.False(t, fired)
}

func TestCancelAll(t *testing.T) {
	sched, timers, now := newTestScheduler()

	fired := 0
	sched.Schedule("a", now.Add(time.Second), func() { fired++ })
	sched.Schedule("b", now.Add(2*time.Second), func() { fired++ })
	require.Equal(t, 2, sched.Pending())

	sched.CancelAll()
	assert.Equal(t, 0, sched.Pending())

	timers.fire()
	assert.Equal(t, 0, fired)
}
