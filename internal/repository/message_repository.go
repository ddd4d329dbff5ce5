package repository

import (
	"context"

	"beacon-chat/internal/domain/message"
	"beacon-chat/internal/store"
	beacon_errors "beacon-chat/pkg/errors"
)

type SnapshotMessageRepository struct {
	store *store.Store
}

func NewMessageRepository(s *store.Store) MessageRepository {
	return &SnapshotMessageRepository{store: s}
}

func (r *SnapshotMessageRepository) Create(ctx context.Context, m *message.Message) error {
	return r.store.Update(func(state *store.State) error {
		m.ID = state.NextMessageID
		state.NextMessageID++
		if m.Reactions == nil {
			m.Reactions = []message.Reaction{}
		}
		state.Messages = append(state.Messages, *m)
		return nil
	})
}

func (r *SnapshotMessageRepository) GetByID(ctx context.Context, id int64) (message.Message, error) {
	var found message.Message
	err := r.store.View(func(state *store.State) error {
		for _, m := range state.Messages {
			if m.ID == id {
				found = m
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
	return found, err
}

func (r *SnapshotMessageRepository) Update(ctx context.Context, m message.Message) error {
	return r.store.Update(func(state *store.State) error {
		for i := range state.Messages {
			if state.Messages[i].ID == m.ID {
				state.Messages[i] = m
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
}

func (r *SnapshotMessageRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Update(func(state *store.State) error {
		for i := range state.Messages {
			if state.Messages[i].ID == id {
				state.Messages = append(state.Messages[:i], state.Messages[i+1:]...)
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
}

func (r *SnapshotMessageRepository) GetByIDs(ctx context.Context, ids []int64) ([]message.Message, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]message.Message, 0, len(ids))
	err := r.store.View(func(state *store.State) error {
		for _, m := range state.Messages {
			if want[m.ID] {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}

func (r *SnapshotMessageRepository) GetAll(ctx context.Context) ([]message.Message, error) {
	var out []message.Message
	err := r.store.View(func(state *store.State) error {
		out = append(out, state.Messages...)
		return nil
	})
	return out, err
}
