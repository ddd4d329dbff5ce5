package services

import (
	"context"

	"beacon-chat/internal/domain/channel"
	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/repository"
	beacon_errors "beacon-chat/pkg/errors"
)

const maxChannelNameLen = 20

// ChannelService covers the thin slice of channel management the messaging
// core needs: creation and invites (invites feed the notification engine).
type ChannelService struct {
	containerRepo repository.ContainerRepository
	userRepo      repository.UserRepository
	notifier      *NotificationService
}

func NewChannelService(
	containerRepo repository.ContainerRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *ChannelService {
	return &ChannelService{
		containerRepo: containerRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

func (s *ChannelService) Create(ctx context.Context, creatorID int64, name string, public bool) (int64, error) {
	if len(name) < 1 || len(name) > maxChannelNameLen {
		return 0, beacon_errors.ErrInvalidInput
	}
	if _, err := s.userRepo.GetByID(ctx, creatorID); err != nil {
		return 0, err
	}
	ch := channel.Channel{
		Name:      name,
		Public:    public,
		OwnerIDs:  []int64{creatorID},
		MemberIDs: []int64{creatorID},
	}
	if err := s.containerRepo.CreateChannel(ctx, &ch); err != nil {
		return 0, err
	}
	return ch.ID, nil
}

// Invite adds target to the channel and notifies them.
func (s *ChannelService) Invite(ctx context.Context, inviterID, channelID, targetID int64) error {
	ch, err := s.containerRepo.GetChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if !ch.IsMember(inviterID) {
		return beacon_errors.ErrForbidden
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if ch.IsMember(targetID) {
		return beacon_errors.ErrConflict
	}
	ch.MemberIDs = append(ch.MemberIDs, targetID)
	if err := s.containerRepo.UpdateChannel(ctx, ch); err != nil {
		return err
	}
	return s.notifier.NotifyAdded(ctx, inviterID, container.ChannelRef(channelID), []int64{targetID})
}

// ListJoined returns the channels the user belongs to.
func (s *ChannelService) ListJoined(ctx context.Context, userID int64) ([]channel.Channel, error) {
	channels, err := s.containerRepo.GetAllChannels(ctx)
	if err != nil {
		return nil, err
	}
	joined := []channel.Channel{}
	for _, ch := range channels {
		if ch.IsMember(userID) {
			joined = append(joined, ch)
		}
	}
	return joined, nil
}
