package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/message"
	"beacon-chat/internal/proxy"
	"beacon-chat/internal/repository"
	beacon_errors "beacon-chat/pkg/errors"
)

const (
	// PageSize and EndSentinel are a preserved wire contract: pages hold
	// at most 50 messages and end is -1 once the final page is reached.
	PageSize    = 50
	EndSentinel = -1
)

// Page is the pagination response shape external callers depend on.
type Page struct {
	Messages []message.Message `json:"messages"`
	Start    int               `json:"start"`
	End      int               `json:"end"`
}

// FeedService is the read side: access-filtered, time-ordered message
// windows and substring search.
type FeedService struct {
	messageRepo   repository.MessageRepository
	containerRepo repository.ContainerRepository
	access        *proxy.AccessControl
	clock         func() time.Time
}

func NewFeedService(
	messageRepo repository.MessageRepository,
	containerRepo repository.ContainerRepository,
	access *proxy.AccessControl,
) *FeedService {
	return &FeedService{
		messageRepo:   messageRepo,
		containerRepo: containerRepo,
		access:        access,
		clock:         time.Now,
	}
}

// ListPage returns the window [start, start+50) of the container's
// messages, newest first. Messages timestamped in the future are excluded
// as a second line of defense; deferred sends are primarily hidden by not
// being attached until commit.
func (s *FeedService) ListPage(ctx context.Context, requesterID int64, ref container.Ref, start int) (Page, error) {
	ids, err := s.containerRepo.MessageIDs(ctx, ref)
	if err != nil {
		return Page{}, err
	}
	if err := s.access.CanView(ctx, requesterID, ref); err != nil {
		return Page{}, err
	}
	msgs, err := s.messageRepo.GetByIDs(ctx, ids)
	if err != nil {
		return Page{}, err
	}
	now := s.clock().Unix()
	visible := make([]message.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.SentAt > now {
			continue
		}
		visible = append(visible, m)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].SentAt > visible[j].SentAt
	})
	if start < 0 || start > len(visible) {
		return Page{}, beacon_errors.ErrInvalidInput
	}
	end := start + PageSize
	if end >= len(visible) {
		return Page{Messages: visible[start:], Start: start, End: EndSentinel}, nil
	}
	return Page{Messages: visible[start:end], Start: start, End: end}, nil
}

// Search matches query as a case-insensitive literal substring across every
// message in containers the requester belongs to.
func (s *FeedService) Search(ctx context.Context, requesterID int64, query string) ([]message.Message, error) {
	if len(query) < 1 || len(query) > message.MaxBodyLen {
		return nil, beacon_errors.ErrInvalidInput
	}
	needle := strings.ToLower(query)

	var ids []int64
	channels, err := s.containerRepo.GetAllChannels(ctx)
	if err != nil {
		return nil, err
	}
	for _, ch := range channels {
		if ch.IsMember(requesterID) {
			ids = append(ids, ch.MessageIDs...)
		}
	}
	dms, err := s.containerRepo.GetAllDMs(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range dms {
		if d.IsMember(requesterID) {
			ids = append(ids, d.MessageIDs...)
		}
	}

	msgs, err := s.messageRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	matches := []message.Message{}
	for _, m := range msgs {
		if strings.Contains(strings.ToLower(m.Body), needle) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}
