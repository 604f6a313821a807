package dto

// ChatRequest is a single user message
type ChatRequest struct {
	Message string `form:"message" json:"message" binding:"required"`
}

// ChatResponse carries the model reply, or "Error: ..." on failure
type ChatResponse struct {
	Reply string `json:"reply"`
}

// CareerSuggestionRequest describes a student asking for career directions
type CareerSuggestionRequest struct {
	Faculty   string   `form:"faculty" json:"faculty"`
	Interests []string `form:"interests" json:"interests"`
	Skills    []string `form:"skills" json:"skills"`
	Goals     string   `form:"goals" json:"goals"`
}

// CareerSuggestionResponse carries either a suggestion or an error string
type CareerSuggestionResponse struct {
	Suggestion string `json:"suggestion,omitempty"`
	Error      string `json:"error,omitempty"`
}
