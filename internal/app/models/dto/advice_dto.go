package dto

import "github.com/unizg/careerhub/internal/app/models"

// CreateAdviceRequest posts a new question. Tags may be a list or a comma separated string.
type CreateAdviceRequest struct {
	Question string   `form:"question" json:"question" binding:"required"`
	Tags     []string `form:"tags" json:"tags"`
}

// ReplyAdviceRequest answers a post
type ReplyAdviceRequest struct {
	PostID   int    `form:"post_id" json:"post_id" binding:"required"`
	Username string `form:"username" json:"username" binding:"required"`
	Reply    string `form:"reply" json:"reply" binding:"required"`
}

// AdviceListResponse lists all posts
type AdviceListResponse struct {
	Success bool                `json:"success" example:"true"`
	Posts   []models.AdvicePost `json:"posts"`
}

// AdviceResponse wraps one post
type AdviceResponse struct {
	Success bool               `json:"success" example:"true"`
	Post    *models.AdvicePost `json:"post"`
}
