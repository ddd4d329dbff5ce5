package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/notification"
	"beacon-chat/internal/repository"
	"beacon-chat/pkg/events"
	"beacon-chat/pkg/logger"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

const taggedPreviewLen = 20

// NotificationService scans message bodies for @handle mentions and
// maintains the per-user notification queues. Delivery is fire-and-forget:
// no dedup, no acknowledgment, no retry.
type NotificationService struct {
	notifRepo     repository.NotificationRepository
	userRepo      repository.UserRepository
	containerRepo repository.ContainerRepository
	publisher     events.Publisher
	log           *logger.Logger
}

func NewNotificationService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	containerRepo repository.ContainerRepository,
	publisher events.Publisher,
	log *logger.Logger,
) *NotificationService {
	return &NotificationService{
		notifRepo:     notifRepo,
		userRepo:      userRepo,
		containerRepo: containerRepo,
		publisher:     publisher,
		log:           log,
	}
}

// ExtractMentions returns the distinct @handle tokens in text, in order of
// first appearance. Handles are not resolved here.
func ExtractMentions(text string) []string {
	seen := map[string]bool{}
	var handles []string
	for _, match := range mentionPattern.FindAllStringSubmatch(text, -1) {
		handle := match[1]
		if !seen[handle] {
			seen[handle] = true
			handles = append(handles, handle)
		}
	}
	return handles
}

// Get returns the newest notifications for a user, capped at the display
// limit. Older entries stay in storage.
func (s *NotificationService) Get(ctx context.Context, userID int64) ([]notification.Notification, error) {
	return s.notifRepo.Latest(ctx, userID, notification.FetchLimit)
}

// NotifyTagged notifies every user mentioned in body. Unresolvable handles
// are silently ignored.
func (s *NotificationService) NotifyTagged(ctx context.Context, senderID int64, ref container.Ref, body string) error {
	return s.notifyTagged(ctx, senderID, ref, body, nil)
}

// NotifyTaggedDiff notifies only users mentioned in newBody who were not
// mentioned in oldBody, so repeated edits do not re-notify.
func (s *NotificationService) NotifyTaggedDiff(ctx context.Context, senderID int64, ref container.Ref, oldBody, newBody string) error {
	old := map[string]bool{}
	for _, handle := range ExtractMentions(oldBody) {
		old[handle] = true
	}
	return s.notifyTagged(ctx, senderID, ref, newBody, old)
}

func (s *NotificationService) notifyTagged(ctx context.Context, senderID int64, ref container.Ref, body string, skip map[string]bool) error {
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return err
	}
	name, err := s.containerName(ctx, ref)
	if err != nil {
		return err
	}
	preview := body
	if runes := []rune(preview); len(runes) > taggedPreviewLen {
		preview = string(runes[:taggedPreviewLen])
	}
	for _, handle := range ExtractMentions(body) {
		if skip[handle] {
			continue
		}
		target, err := s.userRepo.GetByHandle(ctx, handle)
		if err != nil {
			continue
		}
		text := fmt.Sprintf("@%s tagged you in %s: %s", sender.Handle, name, preview)
		if err := s.push(ctx, target.ID, ref, text); err != nil {
			return err
		}
	}
	return nil
}

// NotifyAdded tells each target (excluding the actor) that the actor added
// them to the container.
func (s *NotificationService) NotifyAdded(ctx context.Context, actorID int64, ref container.Ref, targetIDs []int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	name, err := s.containerName(ctx, ref)
	if err != nil {
		return err
	}
	for _, targetID := range targetIDs {
		if targetID == actorID {
			continue
		}
		text := fmt.Sprintf("@%s added you to %s", actor.Handle, name)
		if err := s.push(ctx, targetID, ref, text); err != nil {
			return err
		}
	}
	return nil
}

// NotifyReacted tells the message author someone reacted. The author is
// notified even when reacting to their own message.
func (s *NotificationService) NotifyReacted(ctx context.Context, reactorID, authorID int64, ref container.Ref) error {
	reactor, err := s.userRepo.GetByID(ctx, reactorID)
	if err != nil {
		return err
	}
	name, err := s.containerName(ctx, ref)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("@%s reacted to your message in %s", reactor.Handle, name)
	return s.push(ctx, authorID, ref, text)
}

func (s *NotificationService) push(ctx context.Context, targetID int64, ref container.Ref, text string) error {
	n := notification.Notification{
		ChannelID: notification.None,
		DMID:      notification.None,
		Message:   text,
	}
	if ref.IsChannel() {
		n.ChannelID = ref.ID
	} else {
		n.DMID = ref.ID
	}
	if err := s.notifRepo.Push(ctx, targetID, n); err != nil {
		return err
	}
	if s.publisher != nil {
		event := events.Event{
			ID:        uuid.New().String(),
			Type:      "notification.created",
			Payload:   map[string]interface{}{"userId": targetID, "notification": n},
			Timestamp: time.Now().Unix(),
		}
		if err := s.publisher.Publish(ctx, "notifications", event); err != nil && s.log != nil {
			s.log.Errorf("failed to publish notification event: %v", err)
		}
	}
	return nil
}

func (s *NotificationService) containerName(ctx context.Context, ref container.Ref) (string, error) {
	if ref.IsChannel() {
		ch, err := s.containerRepo.GetChannel(ctx, ref.ID)
		if err != nil {
			return "", err
		}
		return ch.Name, nil
	}
	d, err := s.containerRepo.GetDM(ctx, ref.ID)
	if err != nil {
		return "", err
	}
	return d.Name, nil
}
