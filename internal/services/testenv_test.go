package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"beacon-chat/internal/domain/user"
	"beacon-chat/internal/proxy"
	"beacon-chat/internal/repository"
	"beacon-chat/internal/scheduler"
	"beacon-chat/internal/store"
	"beacon-chat/pkg/logger"
)

// fakeClock is a manually advanced time source shared by the scheduler and
// the services under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// manualTimers records armed tasks instead of running real timers. Tests
// fire them explicitly.
type manualTimers struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() bool {
	was := t.stopped
	t.stopped = true
	return !was
}

func (m *manualTimers) after(d time.Duration, fn func()) scheduler.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	task := &manualTask{delay: d, fn: fn}
	m.tasks = append(m.tasks, task)
	return task
}

// FireAll runs every armed task in arming order. Tests advance the clock
// themselves before firing.
func (m *manualTimers) FireAll() {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()
	for _, task := range tasks {
		if !task.stopped {
			task.fn()
		}
	}
}

func (m *manualTimers) Armed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, task := range m.tasks {
		if !task.stopped {
			n++
		}
	}
	return n
}

type testEnv struct {
	ctx           context.Context
	clock         *fakeClock
	timers        *manualTimers
	store         *store.Store
	userRepo      repository.UserRepository
	messageRepo   repository.MessageRepository
	containerRepo repository.ContainerRepository
	notifRepo     repository.NotificationRepository
	sched         *scheduler.Scheduler
	notifier      *NotificationService
	messages      *MessageService
	feed          *FeedService
	channels      *ChannelService
	dms           *DMService
	standups      *StandupService
	system        *SystemService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.Open("")
	require.NoError(t, err)

	clock := newFakeClock()
	timers := &manualTimers{}
	log := logger.NewNop()

	userRepo := repository.NewUserRepository(st)
	messageRepo := repository.NewMessageRepository(st)
	containerRepo := repository.NewContainerRepository(st)
	notifRepo := repository.NewNotificationRepository(st)
	access := proxy.NewAccessControl(userRepo, containerRepo)
	sched := scheduler.NewWithClock(log, clock.Now, timers.after)

	notifier := NewNotificationService(notifRepo, userRepo, containerRepo, nil, log)
	messages := NewMessageService(messageRepo, containerRepo, access, notifier, sched, log)
	messages.clock = clock.Now
	feed := NewFeedService(messageRepo, containerRepo, access)
	feed.clock = clock.Now
	channels := NewChannelService(containerRepo, userRepo, notifier)
	dms := NewDMService(containerRepo, userRepo, notifier)
	standups := NewStandupService(containerRepo, userRepo, messages, sched, log)
	standups.clock = clock.Now

	return &testEnv{
		ctx:           context.Background(),
		clock:         clock,
		timers:        timers,
		store:         st,
		userRepo:      userRepo,
		messageRepo:   messageRepo,
		containerRepo: containerRepo,
		notifRepo:     notifRepo,
		sched:         sched,
		notifier:      notifier,
		messages:      messages,
		feed:          feed,
		channels:      channels,
		dms:           dms,
		standups:      standups,
		system:        NewSystemService(st, sched, log),
	}
}

func (e *testEnv) addUser(t *testing.T, handle string, perm int) int64 {
	t.Helper()
	u := &user.User{Handle: handle, NameFirst: handle, Email: handle + "@example.com", Perm: perm}
	require.NoError(t, e.userRepo.Create(context.Background(), u))
	return u.ID
}

func (e *testEnv) addChannel(t *testing.T, creatorID int64, name string) int64 {
	t.Helper()
	id, err := e.channels.Create(context.Background(), creatorID, name, true)
	require.NoError(t, err)
	return id
}

func (e *testEnv) addDM(t *testing.T, creatorID int64, memberIDs ...int64) int64 {
	t.Helper()
	id, err := e.dms.Create(context.Background(), creatorID, memberIDs)
	require.NoError(t, err)
	return id
}
