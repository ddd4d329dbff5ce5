package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon-chat/internal/domain/user"
	beacon_errors "beacon-chat/pkg/errors"
)

func TestIssueAndResolveToken(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	auth := NewAuthService("test-secret", 60, env.userRepo)

	token, err := auth.IssueToken(env.ctx, alice)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := auth.ResolveToken(env.ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService("test-secret", 60, env.userRepo)

	_, err := auth.IssueToken(env.ctx, 999)
	assert.ErrorIs(t, err, beacon_errors.ErrNotFound)
}

func TestResolveTokenFailures(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", user.PermMember)
	auth := NewAuthService("test-secret", 60, env.userRepo)

	_, err := auth.ResolveToken(env.ctx, "not-a-token")
	assert.ErrorIs(t, err, beacon_errors.ErrUnauthorized)

	// signed with a different secret
	other := NewAuthService("other-secret", 60, env.userRepo)
	token, err := other.IssueToken(env.ctx, alice)
	require.NoError(t, err)
	_, err = auth.ResolveToken(env.ctx, token)
	assert.ErrorIs(t, err, beacon_errors.ErrUnauthorized)

	// expired token
	stale := NewAuthService("test-secret", -1, env.userRepo)
	token, err = stale.IssueToken(env.ctx, alice)
	require.NoError(t, err)
	_, err = auth.ResolveToken(env.ctx, token)
	assert.ErrorIs(t, err, beacon_errors.ErrUnauthorized)
}
