package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/services"
	"github.com/unizg/careerhub/internal/middleware"
)

// NotificationController exposes a student's notifications
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List returns the caller's notifications, newest first
// @Summary Get notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationsResponse
// @Router /get_notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	list, unread, err := c.notificationService.List(ctx.Request.Context(), p)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NotificationsResponse{Success: true, Notifications: list, Unread: unread})
}

// MarkAllRead flags all of the caller's notifications as read
// @Summary Mark notifications as read
// @Tags notifications
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /mark_notifications_read [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	if err := c.notificationService.MarkAllRead(ctx.Request.Context(), p); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Notifications marked as read"))
}
