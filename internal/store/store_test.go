package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon-chat/internal/domain/message"
	"beacon-chat/internal/domain/user"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	err = s.View(func(state *State) error {
		assert.Empty(t, state.Users)
		assert.Equal(t, int64(1), state.NextMessageID)
		return nil
	})
	require.NoError(t, err)
	// nothing written until the first Update
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	err = s.Update(func(state *State) error {
		state.Users = append(state.Users, user.User{ID: 1, Handle: "alice"})
		state.Messages = append(state.Messages, message.Message{ID: 7, AuthorID: 1, Body: "hi", Status: message.StatusCommitted})
		state.NextMessageID = 8
		return nil
	})
	require.NoError(t, err)

	reloaded, err := Open(path)
	require.NoError(t, err)
	err = reloaded.View(func(state *State) error {
		require.Len(t, state.Users, 1)
		assert.Equal(t, "alice", state.Users[0].Handle)
		require.Len(t, state.Messages, 1)
		assert.Equal(t, int64(7), state.Messages[0].ID)
		assert.Equal(t, int64(8), state.NextMessageID)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateErrorDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	err = s.Update(func(state *State) error {
		state.Users = append(state.Users, user.User{ID: 1, Handle: "alice"})
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNormalizeDerivesCountersFromLegacyBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	legacy := map[string]any{
		"users":    []map[string]any{{"id": 3, "handle": "alice"}},
		"channels": []map[string]any{{"id": 2, "name": "general"}},
		"messages": []map[string]any{{"id": 41, "authorId": 3, "body": "hi"}},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	err = s.View(func(state *State) error {
		assert.Equal(t, int64(42), state.NextMessageID)
		assert.Equal(t, int64(3), state.NextChannelID)
		assert.NotNil(t, state.Notifications)
		return nil
	})
	require.NoError(t, err)
}

func TestResetWipesEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	err = s.Update(func(state *State) error {
		state.Users = append(state.Users, user.User{ID: 1, Handle: "alice"})
		state.NextMessageID = 50
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, s.Reset())

	err = s.View(func(state *State) error {
		assert.Empty(t, state.Users)
		assert.Equal(t, int64(1), state.NextMessageID)
		return nil
	})
	require.NoError(t, err)

	reloaded, err := Open(path)
	require.NoError(t, err)
	err = reloaded.View(func(state *State) error {
		assert.Empty(t, state.Users)
		return nil
	})
	require.NoError(t, err)
}
