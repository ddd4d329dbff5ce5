package services

import (
	"context"
	"sort"
	"strings"

	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/dm"
	"beacon-chat/internal/repository"
)

// DMService creates direct-message containers. Every invited member is
// notified at creation time.
type DMService struct {
	containerRepo repository.ContainerRepository
	userRepo      repository.UserRepository
	notifier      *NotificationService
}

func NewDMService(
	containerRepo repository.ContainerRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *DMService {
	return &DMService{
		containerRepo: containerRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

// Create makes a DM holding the creator plus memberIDs. The name is the
// alphabetically sorted, comma-joined member handles.
func (s *DMService) Create(ctx context.Context, creatorID int64, memberIDs []int64) (int64, error) {
	all := append([]int64{creatorID}, memberIDs...)
	handles := make([]string, 0, len(all))
	seen := map[int64]bool{}
	members := make([]int64, 0, len(all))
	for _, id := range all {
		if seen[id] {
			continue
		}
		seen[id] = true
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		handles = append(handles, u.Handle)
		members = append(members, id)
	}
	sort.Strings(handles)

	d := dm.DM{
		Name:      strings.Join(handles, ", "),
		CreatorID: creatorID,
		MemberIDs: members,
	}
	if err := s.containerRepo.CreateDM(ctx, &d); err != nil {
		return 0, err
	}
	if err := s.notifier.NotifyAdded(ctx, creatorID, container.DMRef(d.ID), memberIDs); err != nil {
		return 0, err
	}
	return d.ID, nil
}

// ListJoined returns the DMs the user belongs to.
func (s *DMService) ListJoined(ctx context.Context, userID int64) ([]dm.DM, error) {
	dms, err := s.containerRepo.GetAllDMs(ctx)
	if err != nil {
		return nil, err
	}
	joined := []dm.DM{}
	for _, d := range dms {
		if d.IsMember(userID) {
			joined = append(joined, d)
		}
	}
	return joined, nil
}
