package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusforge/campusforge-backend/internal/requestdata"
	"github.com/campusforge/campusforge-backend/internal/services"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (nh *NotificationHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		RecipientType string `json:"recipient_type"`
		RecipientID   string `json:"recipient_id"`
		EntityType    string `json:"entity_type"`
		EntityID      string `json:"entity_id"`
		Message       string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	notification := types.Notification{
		RecipientType: req.RecipientType,
		RecipientID:   req.RecipientID,
		SenderType:    rd.Role,
		SenderID:      rd.SubjectID,
		EntityType:    req.EntityType,
		EntityID:      req.EntityID,
		Message:       req.Message,
	}
	saved, err := nh.notificationService.Notify(c.Request.Context(), &notification)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, saved)
}

func (nh *NotificationHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if c.Query("unread") == "true" {
		notifications, err := nh.notificationService.ListUnread(c.Request.Context(), rd.Role, rd.SubjectID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, notifications)
		return
	}
	notifications, err := nh.notificationService.ListForRecipient(c.Request.Context(), rd.Role, rd.SubjectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notifications)
}

func (nh *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	if err := nh.notificationService.MarkRead(c.Request.Context(), notificationID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
