package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
)

func TestNotificationService_ListAndMarkRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")
	acme := f.company(t, "acme", "Acme")

	require.NoError(t, f.notifications.Notify(ctx, "ana", "first"))
	require.NoError(t, f.notifications.Notify(ctx, "marko", "not yours"))
	require.NoError(t, f.notifications.Notify(ctx, "ana", "second"))

	list, unread, err := f.notifications.List(ctx, ana)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, 2, unread)
	assert.Equal(t, 3, f.publisher.count())

	require.NoError(t, f.notifications.MarkAllRead(ctx, ana))
	list, unread, err = f.notifications.List(ctx, ana)
	require.NoError(t, err)
	assert.Zero(t, unread)
	for _, n := range list {
		assert.True(t, n.Read)
	}

	_, _, err = f.notifications.List(ctx, acme)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
