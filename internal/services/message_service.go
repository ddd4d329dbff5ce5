package services

import (
	"context"
	"fmt"
	"time"

	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/message"
	"beacon-chat/internal/proxy"
	"beacon-chat/internal/repository"
	"beacon-chat/internal/scheduler"
	beacon_errors "beacon-chat/pkg/errors"
	"beacon-chat/pkg/logger"
)

// MessageService implements the message store operations: immediate and
// deferred sends, edit, remove, pin, reactions and sharing. It owns the
// attach/detach side of container bookkeeping; read paths live in
// FeedService.
type MessageService struct {
	messageRepo   repository.MessageRepository
	containerRepo repository.ContainerRepository
	access        *proxy.AccessControl
	notifier      *NotificationService
	sched         *scheduler.Scheduler
	log           *logger.Logger
	clock         func() time.Time
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	containerRepo repository.ContainerRepository,
	access *proxy.AccessControl,
	notifier *NotificationService,
	sched *scheduler.Scheduler,
	log *logger.Logger,
) *MessageService {
	return &MessageService{
		messageRepo:   messageRepo,
		containerRepo: containerRepo,
		access:        access,
		notifier:      notifier,
		sched:         sched,
		log:           log,
		clock:         time.Now,
	}
}

// Send appends a message to a channel and runs mention notifications.
func (s *MessageService) Send(ctx context.Context, senderID, channelID int64, body string) (int64, error) {
	return s.send(ctx, senderID, container.ChannelRef(channelID), body)
}

// SendDM appends a message to a DM and runs mention notifications.
func (s *MessageService) SendDM(ctx context.Context, senderID, dmID int64, body string) (int64, error) {
	return s.send(ctx, senderID, container.DMRef(dmID), body)
}

func (s *MessageService) send(ctx context.Context, senderID int64, ref container.Ref, body string) (int64, error) {
	if err := validateBody(body); err != nil {
		return 0, err
	}
	if err := s.access.CanView(ctx, senderID, ref); err != nil {
		return 0, err
	}
	msg := message.Message{
		AuthorID: senderID,
		Body:     body,
		SentAt:   s.clock().Unix(),
		Status:   message.StatusCommitted,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return 0, err
	}
	if err := s.containerRepo.Attach(ctx, ref, msg.ID); err != nil {
		return 0, err
	}
	if err := s.notifier.NotifyTagged(ctx, senderID, ref, body); err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// SendLater reserves a message id now and commits the message into the
// channel when sentAt arrives. The caller gets the id immediately.
func (s *MessageService) SendLater(ctx context.Context, senderID, channelID int64, body string, sentAt int64) (int64, error) {
	return s.sendLater(ctx, senderID, container.ChannelRef(channelID), body, sentAt)
}

// SendLaterDM is SendLater for DMs.
func (s *MessageService) SendLaterDM(ctx context.Context, senderID, dmID int64, body string, sentAt int64) (int64, error) {
	return s.sendLater(ctx, senderID, container.DMRef(dmID), body, sentAt)
}

func (s *MessageService) sendLater(ctx context.Context, senderID int64, ref container.Ref, body string, sentAt int64) (int64, error) {
	if err := validateBody(body); err != nil {
		return 0, err
	}
	if err := s.access.CanView(ctx, senderID, ref); err != nil {
		return 0, err
	}
	if sentAt < s.clock().Unix() {
		return 0, beacon_errors.ErrInvalidInput
	}
	// The placeholder reserves the id but stays unattached, so it cannot
	// surface through pagination before commit.
	msg := message.Message{
		AuthorID: senderID,
		Body:     body,
		SentAt:   sentAt,
		Status:   message.StatusPending,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return 0, err
	}
	s.sched.Schedule(deferredTaskID(msg.ID), time.Unix(sentAt, 0), func() {
		s.commitDeferred(msg.ID, ref)
	})
	return msg.ID, nil
}

// commitDeferred runs inside the timer callback. The original caller has
// long since returned, so failures are logged rather than propagated.
func (s *MessageService) commitDeferred(messageID int64, ref container.Ref) {
	ctx := context.Background()
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		s.logCommitFailure(messageID, err)
		return
	}
	msg.Status = message.StatusCommitted
	if err := s.messageRepo.Update(ctx, msg); err != nil {
		s.logCommitFailure(messageID, err)
		return
	}
	if err := s.containerRepo.Attach(ctx, ref, messageID); err != nil {
		s.logCommitFailure(messageID, err)
		return
	}
	if err := s.notifier.NotifyTagged(ctx, msg.AuthorID, ref, msg.Body); err != nil {
		s.logCommitFailure(messageID, err)
	}
}

func (s *MessageService) logCommitFailure(messageID int64, err error) {
	if s.log != nil {
		s.log.Errorf("deferred send %d failed to commit: %v", messageID, err)
	}
}

// Edit replaces a message body. An empty newBody removes the message
// instead. Users newly mentioned by the edit are notified; users already
// mentioned in the old body are not re-notified.
func (s *MessageService) Edit(ctx context.Context, requesterID, messageID int64, newBody string) error {
	msg, ref, err := s.resolveAttached(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.access.CanModifyMessage(ctx, requesterID, msg.AuthorID, ref); err != nil {
		return err
	}
	if newBody == "" {
		return s.removeResolved(ctx, msg)
	}
	if len(newBody) > message.MaxBodyLen {
		return beacon_errors.ErrInvalidInput
	}
	if err := s.notifier.NotifyTaggedDiff(ctx, requesterID, ref, msg.Body, newBody); err != nil {
		return err
	}
	msg.Body = newBody
	return s.messageRepo.Update(ctx, msg)
}

// Remove detaches a message from its container and deletes the record.
func (s *MessageService) Remove(ctx context.Context, requesterID, messageID int64) error {
	msg, ref, err := s.resolveAttached(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.access.CanModifyMessage(ctx, requesterID, msg.AuthorID, ref); err != nil {
		return err
	}
	return s.removeResolved(ctx, msg)
}

func (s *MessageService) removeResolved(ctx context.Context, msg message.Message) error {
	if _, _, err := s.containerRepo.Detach(ctx, msg.ID); err != nil {
		return err
	}
	return s.messageRepo.Delete(ctx, msg.ID)
}

// SetPinned flips pin state. Asking for the current state is a conflict:
// pin fails if already pinned, unpin fails if not pinned.
func (s *MessageService) SetPinned(ctx context.Context, requesterID, messageID int64, pinned bool) error {
	msg, ref, err := s.resolveAttached(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.access.CanModifyMessage(ctx, requesterID, msg.AuthorID, ref); err != nil {
		return err
	}
	if msg.Pinned == pinned {
		return beacon_errors.ErrConflict
	}
	msg.Pinned = pinned
	return s.messageRepo.Update(ctx, msg)
}

// React records a reaction and notifies the author. Reacting twice with the
// same kind is a conflict.
func (s *MessageService) React(ctx context.Context, requesterID, messageID int64, kind int) error {
	if !message.ValidReactionKind(kind) {
		return beacon_errors.ErrInvalidInput
	}
	msg, ref, err := s.resolveAttached(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.access.CanView(ctx, requesterID, ref); err != nil {
		return err
	}
	for i := range msg.Reactions {
		if msg.Reactions[i].Kind == kind {
			if msg.Reactions[i].HasReactor(requesterID) {
				return beacon_errors.ErrConflict
			}
			msg.Reactions[i].ReactorIDs = append(msg.Reactions[i].ReactorIDs, requesterID)
			if err := s.messageRepo.Update(ctx, msg); err != nil {
				return err
			}
			return s.notifier.NotifyReacted(ctx, requesterID, msg.AuthorID, ref)
		}
	}
	msg.Reactions = append(msg.Reactions, message.Reaction{Kind: kind, ReactorIDs: []int64{requesterID}})
	if err := s.messageRepo.Update(ctx, msg); err != nil {
		return err
	}
	return s.notifier.NotifyReacted(ctx, requesterID, msg.AuthorID, ref)
}

// Unreact withdraws a reaction. Withdrawing one that was never made is bad
// input, not a conflict. The last reactor leaving deletes the entry.
func (s *MessageService) Unreact(ctx context.Context, requesterID, messageID int64, kind int) error {
	if !message.ValidReactionKind(kind) {
		return beacon_errors.ErrInvalidInput
	}
	msg, ref, err := s.resolveAttached(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.access.CanView(ctx, requesterID, ref); err != nil {
		return err
	}
	for i := range msg.Reactions {
		if msg.Reactions[i].Kind != kind {
			continue
		}
		for j, reactor := range msg.Reactions[i].ReactorIDs {
			if reactor != requesterID {
				continue
			}
			msg.Reactions[i].ReactorIDs = append(msg.Reactions[i].ReactorIDs[:j], msg.Reactions[i].ReactorIDs[j+1:]...)
			if len(msg.Reactions[i].ReactorIDs) == 0 {
				msg.Reactions = append(msg.Reactions[:i], msg.Reactions[i+1:]...)
			}
			return s.messageRepo.Update(ctx, msg)
		}
	}
	return beacon_errors.ErrInvalidInput
}

// Share copies an existing message into another container the requester
// belongs to, with optional appended text, and runs mention notifications
// over the combined body.
func (s *MessageService) Share(ctx context.Context, requesterID, ogMessageID int64, extra string, dest container.Ref) (int64, error) {
	if len(extra) > message.MaxBodyLen {
		return 0, beacon_errors.ErrInvalidInput
	}
	og, srcRef, err := s.resolveAttached(ctx, ogMessageID)
	if err != nil {
		return 0, err
	}
	if err := s.access.CanView(ctx, requesterID, srcRef); err != nil {
		return 0, err
	}
	if err := s.access.CanView(ctx, requesterID, dest); err != nil {
		return 0, err
	}
	body := og.Body
	if extra != "" {
		body = fmt.Sprintf("%s\n%s", og.Body, extra)
	}
	msg := message.Message{
		AuthorID: requesterID,
		Body:     body,
		SentAt:   s.clock().Unix(),
		Status:   message.StatusCommitted,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return 0, err
	}
	if err := s.containerRepo.Attach(ctx, dest, msg.ID); err != nil {
		return 0, err
	}
	if err := s.notifier.NotifyTagged(ctx, requesterID, dest, body); err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// postPackaged posts machine-assembled text (standup summaries) directly:
// no length cap, no mention notifications.
func (s *MessageService) postPackaged(ctx context.Context, authorID int64, ref container.Ref, body string) (int64, error) {
	msg := message.Message{
		AuthorID: authorID,
		Body:     body,
		SentAt:   s.clock().Unix(),
		Status:   message.StatusCommitted,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return 0, err
	}
	if err := s.containerRepo.Attach(ctx, ref, msg.ID); err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// resolveAttached loads a message and the container holding it. Pending
// placeholders have no holder and stay invisible to every mutation path.
func (s *MessageService) resolveAttached(ctx context.Context, messageID int64) (message.Message, container.Ref, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return message.Message{}, container.Ref{}, err
	}
	ref, ok, err := s.containerRepo.HolderOf(ctx, messageID)
	if err != nil {
		return message.Message{}, container.Ref{}, err
	}
	if !ok {
		return message.Message{}, container.Ref{}, beacon_errors.ErrNotFound
	}
	return msg, ref, nil
}

func validateBody(body string) error {
	if len(body) < 1 || len(body) > message.MaxBodyLen {
		return beacon_errors.ErrInvalidInput
	}
	return nil
}

func deferredTaskID(messageID int64) string {
	return fmt.Sprintf("message:%d", messageID)
}
