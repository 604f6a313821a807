package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/pkg/llm"
)

type fakeCompleter struct {
	reply    string
	err      error
	messages []llm.Message
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func TestChatService_Chat(t *testing.T) {
	completer := &fakeCompleter{reply: "Visit the career fair on Friday."}
	svc := NewChatService(completer, zerolog.Nop())

	reply := svc.Chat(context.Background(), "Any events this week?")
	assert.Equal(t, "Visit the career fair on Friday.", reply)
	require.Len(t, completer.messages, 2)
	assert.Equal(t, "system", completer.messages[0].Role)
	assert.Contains(t, completer.messages[0].Content, "University of Zagreb Career Development Office")
	assert.Equal(t, "Any events this week?", completer.messages[1].Content)
}

func TestChatService_FailuresBecomeReplies(t *testing.T) {
	svc := NewChatService(&fakeCompleter{err: errors.New("context deadline exceeded")}, zerolog.Nop())

	assert.Equal(t, "Error: context deadline exceeded", svc.Chat(context.Background(), "hi"))
	assert.Equal(t, "Error: message must not be empty", svc.Chat(context.Background(), "  "))

	resp := svc.CareerSuggestion(context.Background(), &dto.CareerSuggestionRequest{Faculty: "FER"})
	assert.Empty(t, resp.Suggestion)
	assert.Equal(t, "Error: context deadline exceeded", resp.Error)
}

func TestChatService_CareerSuggestion(t *testing.T) {
	completer := &fakeCompleter{reply: "1. Data engineer"}
	svc := NewChatService(completer, zerolog.Nop())

	resp := svc.CareerSuggestion(context.Background(), &dto.CareerSuggestionRequest{
		Faculty:   "FER",
		Interests: []string{"data", "music"},
	})
	assert.Equal(t, "1. Data engineer", resp.Suggestion)
	assert.Empty(t, resp.Error)
	require.Len(t, completer.messages, 2)
	assert.Contains(t, completer.messages[1].Content, "Faculty: FER")
	assert.Contains(t, completer.messages[1].Content, "Interests: data, music")
	assert.Contains(t, completer.messages[1].Content, "Skills: not specified")
}
