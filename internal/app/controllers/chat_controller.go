package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/services"
)

// ChatController forwards questions to the career assistant.
// It always answers 200; failures are reported inside the body.
type ChatController struct {
	chatService *services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// Chat answers one message
// @Summary Ask the career assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Message"
// @Success 200 {object} dto.ChatResponse
// @Failure 429 {object} dto.ErrorResponse "Rate limited"
// @Router /chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, dto.ChatResponse{Reply: "Error: message is required"})
		return
	}
	ctx.JSON(http.StatusOK, dto.ChatResponse{Reply: c.chatService.Chat(ctx.Request.Context(), req.Message)})
}

// CareerSuggestion proposes career paths
// @Summary Career suggestions
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.CareerSuggestionRequest true "Student background"
// @Success 200 {object} dto.CareerSuggestionResponse
// @Router /career_suggestion [post]
func (c *ChatController) CareerSuggestion(ctx *gin.Context) {
	var req dto.CareerSuggestionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, dto.CareerSuggestionResponse{Error: "Error: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, c.chatService.CareerSuggestion(ctx.Request.Context(), &req))
}
