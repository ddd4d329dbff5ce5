package services

import (
	"context"

	"beacon-chat/internal/scheduler"
	"beacon-chat/internal/store"
	"beacon-chat/pkg/logger"
)

// SystemService owns the reset path: cancel every pending deferred task,
// then wipe the whole snapshot. Orphaned placeholder records disappear with
// the rest of the state.
type SystemService struct {
	store *store.Store
	sched *scheduler.Scheduler
	log   *logger.Logger
}

func NewSystemService(s *store.Store, sched *scheduler.Scheduler, log *logger.Logger) *SystemService {
	return &SystemService{store: s, sched: sched, log: log}
}

func (s *SystemService) Reset(ctx context.Context) error {
	s.sched.CancelAll()
	if err := s.store.Reset(); err != nil {
		return err
	}
	if s.log != nil {
		s.log.Infof("system reset: state wiped")
	}
	return nil
}
