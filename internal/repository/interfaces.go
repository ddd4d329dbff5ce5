package repository

import (
	"context"

	"beacon-chat/internal/domain/channel"
	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/dm"
	"beacon-chat/internal/domain/message"
	"beacon-chat/internal/domain/notification"
	"beacon-chat/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetByHandle(ctx context.Context, handle string) (user.User, error)
	GetAll(ctx context.Context) ([]user.User, error)
}

type MessageRepository interface {
	// Create assigns the next message id and appends the record.
	// It never attaches the message to a container.
	Create(ctx context.Context, m *message.Message) error
	GetByID(ctx context.Context, id int64) (message.Message, error)
	Update(ctx context.Context, m message.Message) error
	Delete(ctx context.Context, id int64) error
	GetByIDs(ctx context.Context, ids []int64) ([]message.Message, error)
	GetAll(ctx context.Context) ([]message.Message, error)
}

type ContainerRepository interface {
	CreateChannel(ctx context.Context, c *channel.Channel) error
	GetChannel(ctx context.Context, id int64) (channel.Channel, error)
	UpdateChannel(ctx context.Context, c channel.Channel) error
	GetAllChannels(ctx context.Context) ([]channel.Channel, error)

	CreateDM(ctx context.Context, d *dm.DM) error
	GetDM(ctx context.Context, id int64) (dm.DM, error)
	UpdateDM(ctx context.Context, d dm.DM) error
	GetAllDMs(ctx context.Context) ([]dm.DM, error)

	// Attach appends messageID to the container's ordered id list.
	Attach(ctx context.Context, ref container.Ref, messageID int64) error
	// Detach removes messageID from whichever container holds it and
	// reports the holder. Detaching an unattached message is a no-op.
	Detach(ctx context.Context, messageID int64) (container.Ref, bool, error)
	// HolderOf reports the container currently holding messageID, if any.
	HolderOf(ctx context.Context, messageID int64) (container.Ref, bool, error)
	MessageIDs(ctx context.Context, ref container.Ref) ([]int64, error)
}

type NotificationRepository interface {
	// Push prepends n to the target's queue (newest first).
	Push(ctx context.Context, userID int64, n notification.Notification) error
	// Latest returns up to limit newest notifications; history is kept.
	Latest(ctx context.Context, userID int64, limit int) ([]notification.Notification, error)
}
