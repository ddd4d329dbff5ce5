package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/user"
	beacon_errors "beacon-chat/pkg/errors"
)

func TestListPageNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	ch := env.addChannel(t, alice, "general")

	m1, err := env.messages.Send(env.ctx, alice, ch, "hi")
	require.NoError(t, err)
	env.clock.Advance(time.Second)
	m2, err := env.messages.Send(env.ctx, alice, ch, "yo")
	require.NoError(t, err)

	page, err := env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 0)
	require.NoError(t, err)
	require.Len(t, page.Messages, 2)
	assert.Equal(t, m2, page.Messages[0].ID)
	assert.Equal(t, m1, page.Messages[1].ID)
	assert.Equal(t, 0, page.Start)
	assert.Equal(t, EndSentinel, page.End)
}

func TestListPagePaginationWindow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	ch := env.addChannel(t, alice, "general")

	var ids []int64
	for i := 0; i < 51; i++ {
		id, err := env.messages.Send(env.ctx, alice, ch, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
		ids = append(ids, id)
		env.clock.Advance(time.Second)
	}

	first, err := env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 0)
	require.NoError(t, err)
	assert.Len(t, first.Messages, 50)
	assert.Equal(t, 50, first.End)

	second, err := env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 50)
	require.NoError(t, err)
	assert.Len(t, second.Messages, 1)
	assert.Equal(t, EndSentinel, second.End)

	// iterating pages yields every message exactly once
	seen := map[int64]bool{}
	for _, m := range append(first.Messages, second.Messages...) {
		assert.False(t, seen[m.ID], "duplicate message %d", m.ID)
		seen[m.ID] = true
	}
	assert.Len(t, seen, len(ids))

	// strictly descending timestamps across the full iteration
	all := append(first.Messages, second.Messages...)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].SentAt, all[i].SentAt)
	}
}

func TestListPageStartBounds(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	ch := env.addChannel(t, alice, "general")
	_, err := env.messages.Send(env.ctx, alice, ch, "only one")
	require.NoError(t, err)

	// start == count is the last valid value and yields an empty page
	page, err := env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
	assert.Equal(t, EndSentinel, page.End)

	_, err = env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 2)
	assert.ErrorIs(t, err, beacon_errors.ErrInvalidInput)
	_, err = env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), -1)
	assert.ErrorIs(t, err, beacon_errors.ErrInvalidInput)
}

func TestListPageAccess(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	mallory := env.addUser(t, "mallory", user.PermMember)
	ch := env.addChannel(t, alice, "general")

	_, err := env.feed.ListPage(env.ctx, mallory, container.ChannelRef(ch), 0)
	assert.ErrorIs(t, err, beacon_errors.ErrForbidden)

	_, err = env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch+7), 0)
	assert.ErrorIs(t, err, beacon_errors.ErrNotFound)
}

func TestListPageExcludesFutureTimestamps(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	ch := env.addChannel(t, alice, "general")

	id, err := env.messages.Send(env.ctx, alice, ch, "from the future")
	require.NoError(t, err)

	// force a future timestamp through an edge path: the record stays
	// attached but must not surface until the clock catches up
	msg, err := env.messageRepo.GetByID(env.ctx, id)
	require.NoError(t, err)
	msg.SentAt = env.clock.Now().Unix() + 100
	require.NoError(t, env.messageRepo.Update(env.ctx, msg))

	page, err := env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 0)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)

	env.clock.Advance(101 * time.Second)
	page, err = env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 0)
	require.NoError(t, err)
	assert.Len(t, page.Messages, 1)
}

func TestSearchLiteralSubstring(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	bob := env.addUser(t, "bob", user.PermMember)
	ch := env.addChannel(t, alice, "general")
	secret := env.addChannel(t, bob, "secret")

	_, err := env.messages.Send(env.ctx, alice, ch, "Deploy finished OK")
	require.NoError(t, err)
	_, err = env.messages.Send(env.ctx, alice, ch, "lunch plans?")
	require.NoError(t, err)
	_, err = env.messages.Send(env.ctx, bob, secret, "deploy the secret thing")
	require.NoError(t, err)

	// case-insensitive, scoped to joined containers
	matches, err := env.feed.Search(env.ctx, alice, "deploy")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Deploy finished OK", matches[0].Body)

	// regex metacharacters are matched literally
	_, err = env.messages.Send(env.ctx, alice, ch, "version (2.0) released")
	require.NoError(t, err)
	matches, err = env.feed.Search(env.ctx, alice, "(2.0)")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	_, err = env.feed.Search(env.ctx, alice, "")
	assert.ErrorIs(t, err, beacon_errors.ErrInvalidInput)
}

func TestSearchCoversDMs(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	bob := env.addUser(t, "bob", user.PermMember)
	dmID := env.addDM(t, alice, bob)

	_, err := env.messages.SendDM(env.ctx, bob, dmID, "dm needle here")
	require.NoError(t, err)

	matches, err := env.feed.Search(env.ctx, alice, "needle")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
