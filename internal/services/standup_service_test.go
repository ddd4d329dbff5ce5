package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/domain/user"
	beacon_errors "beacon-chat/pkg/errors"
)

func TestStandupLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	bob := env.addUser(t, "bob", user.PermMember)
	ch := env.addChannel(t, alice, "general")
	require.NoError(t, env.channels.Invite(env.ctx, alice, ch, bob))

	active, _, err := env.standups.Active(env.ctx, alice, ch)
	require.NoError(t, err)
	assert.False(t, active)

	finishAt, err := env.standups.Start(env.ctx, alice, ch, 60)
	require.NoError(t, err)
	assert.Equal(t, env.clock.Now().Unix()+60, finishAt)

	active, got, err := env.standups.Active(env.ctx, bob, ch)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, finishAt, got)

	_, err = env.standups.Start(env.ctx, bob, ch, 30)
	assert.ErrorIs(t, err, beacon_errors.ErrConflict)

	require.NoError(t, env.standups.Send(env.ctx, alice, ch, "shipped the thing"))
	require.NoError(t, env.standups.Send(env.ctx, bob, ch, "reviewing PRs"))

	env.clock.Advance(60 * time.Second)
	env.timers.FireAll()

	active, _, err = env.standups.Active(env.ctx, alice, ch)
	require.NoError(t, err)
	assert.False(t, active)

	page, err := env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 0)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, alice, page.Messages[0].AuthorID)
	assert.Equal(t, "alice: shipped the thing\nbob: reviewing PRs", page.Messages[0].Body)
}

func TestStandupStartValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	bob := env.addUser(t, "bob", user.PermMember)
	ch := env.addChannel(t, alice, "general")

	_, err := env.standups.Start(env.ctx, bob, ch, 60)
	assert.ErrorIs(t, err, beacon_errors.ErrForbidden)

	_, err = env.standups.Start(env.ctx, alice, ch, 0)
	assert.ErrorIs(t, err, beacon_errors.ErrInvalidInput)

	_, err = env.standups.Start(env.ctx, alice, 999, 60)
	assert.ErrorIs(t, err, beacon_errors.ErrNotFound)
}

func TestStandupSendValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	bob := env.addUser(t, "bob", user.PermMember)
	ch := env.addChannel(t, alice, "general")

	// no standup running
	err := env.standups.Send(env.ctx, alice, ch, "too early")
	assert.ErrorIs(t, err, beacon_errors.ErrInvalidInput)

	_, err = env.standups.Start(env.ctx, alice, ch, 60)
	require.NoError(t, err)

	assert.ErrorIs(t, env.standups.Send(env.ctx, bob, ch, "outsider"), beacon_errors.ErrForbidden)
	assert.ErrorIs(t, env.standups.Send(env.ctx, alice, ch, ""), beacon_errors.ErrInvalidInput)
	assert.ErrorIs(t, env.standups.Send(env.ctx, alice, ch, strings.Repeat("x", 1001)), beacon_errors.ErrInvalidInput)
}

func TestStandupEmptyBufferPostsNothing(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	ch := env.addChannel(t, alice, "general")

	_, err := env.standups.Start(env.ctx, alice, ch, 30)
	require.NoError(t, err)

	env.clock.Advance(30 * time.Second)
	env.timers.FireAll()

	page, err := env.feed.ListPage(env.ctx, alice, container.ChannelRef(ch), 0)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)

	// the channel is free for a new standup
	_, err = env.standups.Start(env.ctx, alice, ch, 30)
	assert.NoError(t, err)
}

func TestStandupPackageSkipsMentionNotifications(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	bob := env.addUser(t, "bob", user.PermMember)
	ch := env.addChannel(t, alice, "general")
	require.NoError(t, env.channels.Invite(env.ctx, alice, ch, bob))

	_, err := env.standups.Start(env.ctx, alice, ch, 60)
	require.NoError(t, err)
	require.NoError(t, env.standups.Send(env.ctx, alice, ch, "@bob will pick this up"))

	before, err := env.notifier.Get(env.ctx, bob)
	require.NoError(t, err)

	env.clock.Advance(60 * time.Second)
	env.timers.FireAll()

	after, err := env.notifier.Get(env.ctx, bob)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}
