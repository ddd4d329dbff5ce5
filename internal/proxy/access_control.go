package proxy

import (
	"context"

	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/repository"
	beacon_errors "beacon-chat/pkg/errors"
)

// AccessControl enforces container membership for viewing/reacting and the
// owner-or-author rule for edit/remove/pin.
type AccessControl struct {
	userRepo      repository.UserRepository
	containerRepo repository.ContainerRepository
}

func NewAccessControl(userRepo repository.UserRepository, containerRepo repository.ContainerRepository) *AccessControl {
	return &AccessControl{userRepo: userRepo, containerRepo: containerRepo}
}

// CanView requires membership of the container.
func (a *AccessControl) CanView(ctx context.Context, userID int64, ref container.Ref) error {
	member, err := a.isMember(ctx, userID, ref)
	if err != nil {
		return err
	}
	if !member {
		return beacon_errors.ErrForbidden
	}
	return nil
}

// CanModifyMessage allows the author, a channel owner, a workspace owner
// (channel messages), or the DM creator (DM messages). The requester must be
// a member of the container in every case.
func (a *AccessControl) CanModifyMessage(ctx context.Context, userID, authorID int64, ref container.Ref) error {
	if err := a.CanView(ctx, userID, ref); err != nil {
		return err
	}
	if userID == authorID {
		return nil
	}
	switch ref.Kind {
	case container.KindChannel:
		ch, err := a.containerRepo.GetChannel(ctx, ref.ID)
		if err != nil {
			return err
		}
		if ch.IsOwner(userID) {
			return nil
		}
		u, err := a.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u.IsWorkspaceOwner() {
			return nil
		}
	case container.KindDM:
		d, err := a.containerRepo.GetDM(ctx, ref.ID)
		if err != nil {
			return err
		}
		if d.CreatorID == userID {
			return nil
		}
	}
	return beacon_errors.ErrForbidden
}

func (a *AccessControl) isMember(ctx context.Context, userID int64, ref container.Ref) (bool, error) {
	switch ref.Kind {
	case container.KindChannel:
		ch, err := a.containerRepo.GetChannel(ctx, ref.ID)
		if err != nil {
			return false, err
		}
		return ch.IsMember(userID), nil
	case container.KindDM:
		d, err := a.containerRepo.GetDM(ctx, ref.ID)
		if err != nil {
			return false, err
		}
		return d.IsMember(userID), nil
	}
	return false, beacon_errors.ErrInvalidInput
}
