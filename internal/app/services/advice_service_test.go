package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
)

func TestAdviceService_CreateAndReply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.advice.Create(ctx, "How do I write a cover letter?", []string{"cv, Letters", "letters", " "})
	require.NoError(t, err)
	assert.Equal(t, 1, post.ID)
	assert.Equal(t, []string{"cv", "Letters"}, post.Tags)

	second, err := f.advice.Create(ctx, "Internships in Split?", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Empty(t, second.Tags)

	replied, err := f.advice.Reply(ctx, 1, "marko", "Keep it to one page.")
	require.NoError(t, err)
	require.Len(t, replied.Replies, 1)
	assert.Equal(t, "marko", replied.Replies[0].Username)

	posts, err := f.advice.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Len(t, posts[0].Replies, 1)
}

func TestAdviceService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.advice.Create(ctx, "   ", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.advice.Reply(ctx, 99, "marko", "hello")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.advice.Reply(ctx, 1, "marko", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
