package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"beacon-chat/internal/domain/channel"
	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/message"
	"beacon-chat/internal/repository"
	"beacon-chat/internal/scheduler"
	beacon_errors "beacon-chat/pkg/errors"
	"beacon-chat/pkg/logger"
)

// StandupService runs timed per-channel standup sessions. Lines sent during
// a session are buffered; when the session finishes the buffer is posted as
// one packaged message authored by the starter. The package is
// machine-assembled text, so mentions inside it do not notify.
type StandupService struct {
	containerRepo repository.ContainerRepository
	userRepo      repository.UserRepository
	messages      *MessageService
	sched         *scheduler.Scheduler
	log           *logger.Logger
	clock         func() time.Time
}

func NewStandupService(
	containerRepo repository.ContainerRepository,
	userRepo repository.UserRepository,
	messages *MessageService,
	sched *scheduler.Scheduler,
	log *logger.Logger,
) *StandupService {
	return &StandupService{
		containerRepo: containerRepo,
		userRepo:      userRepo,
		messages:      messages,
		sched:         sched,
		log:           log,
		clock:         time.Now,
	}
}

// Start begins a standup lasting lengthSeconds and returns the finish time.
func (s *StandupService) Start(ctx context.Context, userID, channelID, lengthSeconds int64) (int64, error) {
	ch, err := s.containerRepo.GetChannel(ctx, channelID)
	if err != nil {
		return 0, err
	}
	if !ch.IsMember(userID) {
		return 0, beacon_errors.ErrForbidden
	}
	if lengthSeconds <= 0 {
		return 0, beacon_errors.ErrInvalidInput
	}
	if ch.Standup.Active {
		return 0, beacon_errors.ErrConflict
	}
	finishAt := s.clock().Unix() + lengthSeconds
	ch.Standup = channel.Standup{
		Active:    true,
		FinishAt:  finishAt,
		StarterID: userID,
		Buffer:    []string{},
	}
	if err := s.containerRepo.UpdateChannel(ctx, ch); err != nil {
		return 0, err
	}
	s.sched.Schedule(standupTaskID(channelID), time.Unix(finishAt, 0), func() {
		s.finish(channelID)
	})
	return finishAt, nil
}

// Active reports whether a standup is running and when it finishes.
func (s *StandupService) Active(ctx context.Context, userID, channelID int64) (bool, int64, error) {
	ch, err := s.containerRepo.GetChannel(ctx, channelID)
	if err != nil {
		return false, 0, err
	}
	if !ch.IsMember(userID) {
		return false, 0, beacon_errors.ErrForbidden
	}
	if !ch.Standup.Active {
		return false, 0, nil
	}
	return true, ch.Standup.FinishAt, nil
}

// Send buffers one "handle: line" entry into the running standup.
func (s *StandupService) Send(ctx context.Context, userID, channelID int64, body string) error {
	ch, err := s.containerRepo.GetChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if !ch.IsMember(userID) {
		return beacon_errors.ErrForbidden
	}
	if len(body) < 1 || len(body) > message.MaxBodyLen {
		return beacon_errors.ErrInvalidInput
	}
	if !ch.Standup.Active {
		return beacon_errors.ErrInvalidInput
	}
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	ch.Standup.Buffer = append(ch.Standup.Buffer, fmt.Sprintf("%s: %s", u.Handle, body))
	return s.containerRepo.UpdateChannel(ctx, ch)
}

// finish runs inside the timer callback; failures are logged only.
func (s *StandupService) finish(channelID int64) {
	ctx := context.Background()
	ch, err := s.containerRepo.GetChannel(ctx, channelID)
	if err != nil {
		s.logFinishFailure(channelID, err)
		return
	}
	buffer := ch.Standup.Buffer
	starterID := ch.Standup.StarterID
	ch.Standup = channel.Standup{}
	if err := s.containerRepo.UpdateChannel(ctx, ch); err != nil {
		s.logFinishFailure(channelID, err)
		return
	}
	if len(buffer) == 0 {
		return
	}
	packaged := strings.Join(buffer, "\n")
	ref := container.ChannelRef(channelID)
	if _, err := s.messages.postPackaged(ctx, starterID, ref, packaged); err != nil {
		s.logFinishFailure(channelID, err)
	}
}

func (s *StandupService) logFinishFailure(channelID int64, err error) {
	if s.log != nil {
		s.log.Errorf("standup in channel %d failed to finish: %v", channelID, err)
	}
}

func standupTaskID(channelID int64) string {
	return fmt.Sprintf("standup:%d", channelID)
}
