package notification

// None marks the unused side of the channel/DM pair. Exactly one of
// ChannelID and DMID is set on every notification.
const None int64 = -1

// Notification is produced, never mutated. Queues are per-user,
// newest-first; a fetch returns at most the latest FetchLimit entries while
// the full history stays in storage.
type Notification struct {
	ChannelID int64  `json:"channelId"`
	DMID      int64  `json:"dmId"`
	Message   string `json:"message"`
}

// FetchLimit caps the view returned to a user, not the stored history.
const FetchLimit = 20
