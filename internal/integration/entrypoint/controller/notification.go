package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance/backend/internal/application/usecase/notification"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
)

// NotificationController handles the notification inbox endpoints.
type NotificationController struct {
	listUseCase        *notification.ListNotificationsUseCase
	markReadUseCase    *notification.MarkNotificationReadUseCase
	markAllReadUseCase *notification.MarkAllNotificationsReadUseCase
}

// NewNotificationController creates a new notification controller instance.
func NewNotificationController(
	listUseCase *notification.ListNotificationsUseCase,
	markReadUseCase *notification.MarkNotificationReadUseCase,
	markAllReadUseCase *notification.MarkAllNotificationsReadUseCase,
) *NotificationController {
	return &NotificationController{
		listUseCase:        listUseCase,
		markReadUseCase:    markReadUseCase,
		markAllReadUseCase: markAllReadUseCase,
	}
}

// List handles GET /notifications requests.
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), notification.ListNotificationsInput{
		UserID: userID,
		Limit:  queryInt(ctx, "limit"),
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve notifications")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationListResponse(output.Notifications, output.UnreadCount))
}

// MarkRead handles PATCH /notifications/:id/read requests.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(ctx, "notification")
	if !ok {
		return
	}

	output, err := c.markReadUseCase.Execute(ctx.Request.Context(), notification.MarkNotificationReadInput{
		UserID:         userID,
		NotificationID: notificationID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to mark notification as read")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationResponse(output.Notification))
}

// MarkAllRead handles PATCH /notifications/read-all requests.
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.markAllReadUseCase.Execute(ctx.Request.Context(), notification.MarkAllNotificationsReadInput{
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to mark notifications as read")
		return
	}

	ctx.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: output.Updated})
}
