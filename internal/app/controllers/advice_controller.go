package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/services"
	"github.com/unizg/careerhub/internal/middleware"
)

// AdviceController serves the advice forum ("savjeti")
type AdviceController struct {
	adviceService *services.AdviceService
}

// NewAdviceController creates a new AdviceController
func NewAdviceController(adviceService *services.AdviceService) *AdviceController {
	return &AdviceController{adviceService: adviceService}
}

// List returns every post
// @Summary List advice posts
// @Tags advice
// @Produce json
// @Success 200 {object} dto.AdviceListResponse
// @Router /savjeti [get]
func (c *AdviceController) List(ctx *gin.Context) {
	posts, err := c.adviceService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AdviceListResponse{Success: true, Posts: posts})
}

// Create posts a new question
// @Summary Ask a question
// @Tags advice
// @Param request body dto.CreateAdviceRequest true "Question"
// @Success 200 {object} dto.AdviceResponse
// @Router /savjeti [post]
func (c *AdviceController) Create(ctx *gin.Context) {
	var req dto.CreateAdviceRequest
	if !bind(ctx, &req) {
		return
	}
	post, err := c.adviceService.Create(ctx.Request.Context(), req.Question, req.Tags)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AdviceResponse{Success: true, Post: post})
}

// Reply answers a question
// @Summary Reply to a post
// @Tags advice
// @Param request body dto.ReplyAdviceRequest true "Reply"
// @Success 200 {object} dto.AdviceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /savjeti/reply [post]
func (c *AdviceController) Reply(ctx *gin.Context) {
	var req dto.ReplyAdviceRequest
	if !bind(ctx, &req) {
		return
	}
	post, err := c.adviceService.Reply(ctx.Request.Context(), req.PostID, req.Username, req.Reply)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AdviceResponse{Success: true, Post: post})
}
