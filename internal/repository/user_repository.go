package repository

import (
	"context"

	"beacon-chat/internal/domain/user"
	"beacon-chat/internal/store"
	beacon_errors "beacon-chat/pkg/errors"
)

type SnapshotUserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) UserRepository {
	return &SnapshotUserRepository{store: s}
}

func (r *SnapshotUserRepository) Create(ctx context.Context, u *user.User) error {
	return r.store.Update(func(state *store.State) error {
		for _, existing := range state.Users {
			if existing.ID == u.ID || existing.Handle == u.Handle {
				return beacon_errors.ErrAlreadyExists
			}
		}
		if u.ID == 0 {
			u.ID = int64(len(state.Users)) + 1
			for _, existing := range state.Users {
				if existing.ID >= u.ID {
					u.ID = existing.ID + 1
				}
			}
		}
		state.Users = append(state.Users, *u)
		return nil
	})
}

func (r *SnapshotUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	var found user.User
	err := r.store.View(func(state *store.State) error {
		for _, u := range state.Users {
			if u.ID == id {
				found = u
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
	return found, err
}

func (r *SnapshotUserRepository) GetByHandle(ctx context.Context, handle string) (user.User, error) {
	var found user.User
	err := r.store.View(func(state *store.State) error {
		for _, u := range state.Users {
			if u.Handle == handle {
				found = u
				return nil
			}
		}
		return beacon_errors.ErrNotFound
	})
	return found, err
}

func (r *SnapshotUserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	var out []user.User
	err := r.store.View(func(state *store.State) error {
		out = append(out, state.Users...)
		return nil
	})
	return out, err
}
