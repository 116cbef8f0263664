package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingListAndPosition(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	a := e.createUser(t, "a", 0)
	b := e.createUser(t, "b", 0)
	c := e.createUser(t, "c", 0)
	require.NoError(t, e.rewards.AddPoints(ctx, a.ID, 300, ""))
	require.NoError(t, e.rewards.AddPoints(ctx, b.ID, 500, ""))
	require.NoError(t, e.rewards.AddPoints(ctx, c.ID, 300, ""))

	list, err := e.ranking.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, b.ID, list[0].UserID)
	assert.Equal(t, 1, list[0].Position)
	assert.Equal(t, int64(500), list[0].DailyPoints)

	list, err = e.ranking.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	pos, err := e.ranking.Position(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pos.Position)

	// Ties share a position.
	posA, err := e.ranking.Position(ctx, a.ID)
	require.NoError(t, err)
	posC, err := e.ranking.Position(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, posA.Position)
	assert.Equal(t, 2, posC.Position)

	_, err = e.ranking.Position(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetDailyKeepsBalance(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.createUser(t, "a", 0)
	_, err := e.rewards.Checkin(ctx, u.ID)
	require.NoError(t, err)

	n, err := e.ranking.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got := e.reload(t, u.ID)
	assert.Equal(t, int64(0), got.DailyPoints)
	assert.Equal(t, int64(100), got.Points)
}
