package store

import (
	"beacon-chat/internal/domain/channel"
	"beacon-chat/internal/domain/dm"
	"beacon-chat/internal/domain/message"
	"beacon-chat/internal/domain/notification"
	"beacon-chat/internal/domain/user"
)

// State is the whole application snapshot. Every mutation runs as
// read-whole, mutate, write-whole under the store's single writer lock.
type State struct {
	Users         []user.User                           `json:"users"`
	Channels      []channel.Channel                     `json:"channels"`
	DMs           []dm.DM                               `json:"dms"`
	Messages      []message.Message                     `json:"messages"`
	NextMessageID int64                                 `json:"nextMessageId"`
	NextChannelID int64                                 `json:"nextChannelId"`
	NextDMID      int64                                 `json:"nextDmId"`
	Notifications map[int64][]notification.Notification `json:"notifications"`
}

// NewState returns an empty snapshot with counters primed. Counters are
// persisted rather than derived from max(id) so ids are never reused after
// removals.
func NewState() State {
	return State{
		Users:         []user.User{},
		Channels:      []channel.Channel{},
		DMs:           []dm.DM{},
		Messages:      []message.Message{},
		NextMessageID: 1,
		NextChannelID: 1,
		NextDMID:      1,
		Notifications: map[int64][]notification.Notification{},
	}
}

func (s *State) normalize() {
	if s.NextMessageID < 1 {
		s.NextMessageID = 1
		for _, m := range s.Messages {
			if m.ID >= s.NextMessageID {
				s.NextMessageID = m.ID + 1
			}
		}
	}
	if s.NextChannelID < 1 {
		s.NextChannelID = 1
		for _, c := range s.Channels {
			if c.ID >= s.NextChannelID {
				s.NextChannelID = c.ID + 1
			}
		}
	}
	if s.NextDMID < 1 {
		s.NextDMID = 1
		for _, d := range s.DMs {
			if d.ID >= s.NextDMID {
				s.NextDMID = d.ID + 1
			}
		}
	}
	if s.Notifications == nil {
		s.Notifications = map[int64][]notification.Notification{}
	}
}
