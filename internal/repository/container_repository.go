package repository

import (
	"context"

	"beacon-chat/internal/domain/channel"
	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/dm"
	"beacon-chat/internal/store"
	beacon_errors "beacon-chat/pkg/errors"
)

type SnapshotContainerRepository struct {
	store *store.Store
}

func NewContainerRepository(s *store.Store) ContainerRepository {
	return &SnapshotContainerRepository{store: s}
}

func (r *SnapshotContainerRepository) CreateChannel(ctx context.Context, c *channel.Channel) error {
	return r.store.Update(func(state *store.State) error {
		c.ID = state.NextChannelID
		state.NextChannelID++
		if c.MessageIDs == nil {
			c.MessageIDs = []int64{}
		}
		state.Channels = append(state.Channels, *c)
		return nil
	})
}

func (r *SnapshotContainerRepository) GetChannel(ctx context.Context, id int64) (channel.Channel, error) {
	var found channel.Channel
	err := r.store.View(func(state *store.State) error {
		for _, c := range state.Channels {
			if c.ID == id {
				found = c
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
	return found, err
}

func (r *SnapshotContainerRepository) UpdateChannel(ctx context.Context, c channel.Channel) error {
	return r.store.Update(func(state *store.State) error {
		for i := range state.Channels {
			if state.Channels[i].ID == c.ID {
				state.Channels[i] = c
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
}

func (r *SnapshotContainerRepository) GetAllChannels(ctx context.Context) ([]channel.Channel, error) {
	var out []channel.Channel
	err := r.store.View(func(state *store.State) error {
		out = append(out, state.Channels...)
		return nil
	})
	return out, err
}

func (r *SnapshotContainerRepository) CreateDM(ctx context.Context, d *dm.DM) error {
	return r.store.Update(func(state *store.State) error {
		d.ID = state.NextDMID
		state.NextDMID++
		if d.MessageIDs == nil {
			d.MessageIDs = []int64{}
		}
		state.DMs = append(state.DMs, *d)
		return nil
	})
}

func (r *SnapshotContainerRepository) GetDM(ctx context.Context, id int64) (dm.DM, error) {
	var found dm.DM
	err := r.store.View(func(state *store.State) error {
		for _, d := range state.DMs {
			if d.ID == id {
				found = d
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
	return found, err
}

func (r *SnapshotContainerRepository) UpdateDM(ctx context.Context, d dm.DM) error {
	return r.store.Update(func(state *store.State) error {
		for i := range state.DMs {
			if state.DMs[i].ID == d.ID {
				state.DMs[i] = d
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
}

func (r *SnapshotContainerRepository) GetAllDMs(ctx context.Context) ([]dm.DM, error) {
	var out []dm.DM
	err := r.store.View(func(state *store.State) error {
		out = append(out, state.DMs...)
		return nil
	})
	return out, err
}

func (r *SnapshotContainerRepository) Attach(ctx context.Context, ref container.Ref, messageID int64) error {
	return r.store.Update(func(state *store.State) error {
		switch ref.Kind {
		case container.KindChannel:
			for i := range state.Channels {
				if state.Channels[i].ID == ref.ID {
					state.Channels[i].MessageIDs = append(state.Channels[i].MessageIDs, messageID)
					return nil
				}
			}
		case container.KindDM:
			for i := range state.DMs {
				if state.DMs[i].ID == ref.ID {
					state.DMs[i].MessageIDs = append(state.DMs[i].MessageIDs, messageID)
					return nil
				}
			}
		}
		return beacon_errors.ErrNotFound
	})
}

func (r *SnapshotContainerRepository) Detach(ctx context.Context, messageID int64) (container.Ref, bool, error) {
	var ref container.Ref
	var found bool
	err := r.store.Update(func(state *store.State) error {
		for i := range state.Channels {
			if ids, ok := remove(state.Channels[i].MessageIDs, messageID); ok {
				state.Channels[i].MessageIDs = ids
				ref = container.ChannelRef(state.Channels[i].ID)
				found = true
				return nil
			}
		}
		for i := range state.DMs {
			if ids, ok := remove(state.DMs[i].MessageIDs, messageID); ok {
				state.DMs[i].MessageIDs = ids
				ref = container.DMRef(state.DMs[i].ID)
				found = true
				return nil
			}
		}
		return nil
	})
	return ref, found, err
}

func (r *SnapshotContainerRepository) HolderOf(ctx context.Context, messageID int64) (container.Ref, bool, error) {
	var ref container.Ref
	var found bool
	err := r.store.View(func(state *store.State) error {
		for _, c := range state.Channels {
			if containsID(c.MessageIDs, messageID) {
				ref = container.ChannelRef(c.ID)
				found = true
				return nil
			}
		}
		for _, d := range state.DMs {
			if containsID(d.MessageIDs, messageID) {
				ref = container.DMRef(d.ID)
				found = true
				return nil
			}
		}
		return nil
	})
	return ref, found, err
}

func (r *SnapshotContainerRepository) MessageIDs(ctx context.Context, ref container.Ref) ([]int64, error) {
	var out []int64
	err := r.store.View(func(state *store.State) error {
		switch ref.Kind {
		case container.KindChannel:
			for _, c := range state.Channels {
				if c.ID == ref.ID {
					out = append(out, c.MessageIDs...)
					return nil
				}
			}
		case container.KindDM:
			for _, d := range state.DMs {
				if d.ID == ref.ID {
					out = append(out, d.MessageIDs...)
					return nil
				}
			}
		}
		return beacon_errors.ErrNotFound
	})
	return out, err
}

func remove(ids []int64, id int64) ([]int64, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
