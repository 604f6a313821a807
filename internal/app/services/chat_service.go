package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/pkg/llm"
)

const careerOfficePrompt = "You are an assistant from the University of Zagreb Career Development Office. " +
	"You ONLY answer questions related to: career guidance, events, mentorships, student organizations, " +
	"and professional development at the University of Zagreb. If a user asks something outside that scope, " +
	"politely redirect them to the university website unizg.hr or to career@unizg.hr."

const careerAdvisorPrompt = "You are a career advisor at the University of Zagreb. " +
	"Suggest three concrete career paths for the student, each with a short explanation and first steps."

// ChatService forwards questions to the language model. Failures never
// surface as errors; they come back as "Error: ..." text.
type ChatService struct {
	completer llm.Completer
	logger    zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(completer llm.Completer, logger zerolog.Logger) *ChatService {
	return &ChatService{completer: completer, logger: logger}
}

// Chat answers a single message in the career office persona
func (s *ChatService) Chat(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "Error: message must not be empty"
	}
	reply, err := s.completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: careerOfficePrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Chat completion failed")
		return "Error: " + err.Error()
	}
	return reply
}

// CareerSuggestion proposes career paths for the described student
func (s *ChatService) CareerSuggestion(ctx context.Context, req *dto.CareerSuggestionRequest) *dto.CareerSuggestionResponse {
	reply, err := s.completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: careerAdvisorPrompt},
		{Role: "user", Content: describeStudent(req)},
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Career suggestion failed")
		return &dto.CareerSuggestionResponse{Error: "Error: " + err.Error()}
	}
	return &dto.CareerSuggestionResponse{Suggestion: reply}
}

func describeStudent(req *dto.CareerSuggestionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Faculty: %s\n", orUnknown(req.Faculty))
	fmt.Fprintf(&b, "Interests: %s\n", orUnknown(strings.Join(req.Interests, ", ")))
	fmt.Fprintf(&b, "Skills: %s\n", orUnknown(strings.Join(req.Skills, ", ")))
	fmt.Fprintf(&b, "Goals: %s", orUnknown(req.Goals))
	return b.String()
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "not specified"
	}
	return s
}
