package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthtrack-server/utils/errors"
)

func TestSendRequestGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ali", "ali@example.com")
	b := env.register(t, "Banu", "banu@example.com")

	assert.ErrorIs(t, env.svc.Friends.SendRequest(ctx, a.ID, ""), errors.ErrInvalidInput)
	assert.Equal(t, ErrReceiverNotFound, env.svc.Friends.SendRequest(ctx, a.ID, "nobody@example.com"))
	assert.Equal(t, ErrSelfRequest, env.svc.Friends.SendRequest(ctx, a.ID, a.Email))

	require.NoError(t, env.svc.Friends.SendRequest(ctx, a.ID, b.Email))
	err := env.svc.Friends.SendRequest(ctx, a.ID, b.Email)
	assert.Equal(t, ErrRequestPending, err)
	assert.ErrorIs(t, err, errors.ErrConflict)

	reqs, err := env.svc.Friends.ListRequests(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, a.ID, reqs[0].From)
	assert.Equal(t, "Ali", reqs[0].FromName)
	assert.Equal(t, a.Email, reqs[0].FromEmail)
	assert.Equal(t, env.clock.Now(), reqs[0].Date)
}

func TestAcceptRequestIsSymmetric(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ali", "ali@example.com")
	b := env.register(t, "Banu", "banu@example.com")

	require.NoError(t, env.svc.Friends.SendRequest(ctx, a.ID, b.Email))
	require.NoError(t, env.svc.Friends.AcceptRequest(ctx, b.ID, a.ID))

	gotA, gotB := env.user(t, a.ID), env.user(t, b.ID)
	assert.Contains(t, gotA.Friends, b.ID)
	assert.Contains(t, gotB.Friends, a.ID)
	assert.Empty(t, gotB.FriendRequests)

	assert.Equal(t, ErrAlreadyFriends, env.svc.Friends.SendRequest(ctx, a.ID, b.Email))
	assert.Equal(t, ErrRequestNotFound, env.svc.Friends.AcceptRequest(ctx, b.ID, a.ID))

	friends, err := env.svc.Friends.ListFriends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, b.ID, friends[0].ID)
}

func TestAcceptRequestErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.register(t, "Banu", "banu@example.com")

	assert.Equal(t, ErrRequestIDRequired, env.svc.Friends.AcceptRequest(ctx, b.ID, ""))
	assert.Equal(t, ErrRequestNotFound, env.svc.Friends.AcceptRequest(ctx, b.ID, "5f0000000000000000000000"))
}

func TestRejectRequestLeavesNoEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ali", "ali@example.com")
	b := env.register(t, "Banu", "banu@example.com")

	require.NoError(t, env.svc.Friends.SendRequest(ctx, a.ID, b.Email))
	require.NoError(t, env.svc.Friends.RejectRequest(ctx, b.ID, a.ID))

	gotA, gotB := env.user(t, a.ID), env.user(t, b.ID)
	assert.Empty(t, gotA.Friends)
	assert.Empty(t, gotB.Friends)
	assert.Empty(t, gotB.FriendRequests)

	// Rejecting again is harmless, and a fresh request is allowed.
	require.NoError(t, env.svc.Friends.RejectRequest(ctx, b.ID, a.ID))
	require.NoError(t, env.svc.Friends.SendRequest(ctx, a.ID, b.Email))
	assert.Equal(t, ErrRequestIDRequired, env.svc.Friends.RejectRequest(ctx, b.ID, ""))
}

func TestRemoveFriend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ali", "ali@example.com")
	b := env.register(t, "Banu", "banu@example.com")

	assert.Equal(t, ErrNotFriends, env.svc.Friends.RemoveFriend(ctx, a.ID, b.ID))

	require.NoError(t, env.svc.Friends.SendRequest(ctx, a.ID, b.Email))
	require.NoError(t, env.svc.Friends.AcceptRequest(ctx, b.ID, a.ID))
	require.NoError(t, env.svc.Friends.RemoveFriend(ctx, b.ID, a.ID))

	assert.Empty(t, env.user(t, a.ID).Friends)
	assert.Empty(t, env.user(t, b.ID).Friends)
}

func TestLeaderboardFromFriends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ali", "ali@example.com")
	b := env.register(t, "Banu", "banu@example.com")
	c := env.register(t, "Cem", "cem@example.com")

	for _, f := range []string{b.Email, c.Email} {
		require.NoError(t, env.svc.Friends.SendRequest(ctx, a.ID, f))
	}
	require.NoError(t, env.svc.Friends.AcceptRequest(ctx, b.ID, a.ID))
	require.NoError(t, env.svc.Friends.AcceptRequest(ctx, c.ID, a.ID))

	_, err := env.svc.Points.Adjust(ctx, c.ID, ActionManual, 40)
	require.NoError(t, err)
	_, err = env.svc.Points.Adjust(ctx, a.ID, ActionManual, 10)
	require.NoError(t, err)

	board, err := env.svc.Friends.Leaderboard(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, board.Entries, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{board.Entries[0].ID, board.Entries[1].ID, board.Entries[2].ID})
	assert.True(t, board.Entries[1].IsCurrentUser)
	assert.Nil(t, board.Champion)
}
