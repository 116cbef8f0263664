package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationListAndMarkRead(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.createUser(t, "a", 0)
	other := e.createUser(t, "b", 0)

	require.NoError(t, e.notifications.Notify(ctx, u.ID, "INFO", "first", "m1"))
	e.clock.Advance(time.Second)
	require.NoError(t, e.notifications.Notify(ctx, u.ID, "INFO", "second", "m2"))

	list, err := e.notifications.List(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)

	unread, err := e.notifications.UnreadCount(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	// Another user's id cannot mark it.
	require.NoError(t, e.notifications.MarkRead(ctx, other.ID, list[0].ID))
	unread, err = e.notifications.UnreadCount(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	require.NoError(t, e.notifications.MarkRead(ctx, u.ID, list[0].ID))
	unread, err = e.notifications.UnreadCount(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	assert.ErrorIs(t, e.notifications.MarkRead(ctx, u.ID, 0), ErrMissingField)
}
