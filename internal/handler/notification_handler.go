package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beacon-chat/internal/services"
	"beacon-chat/internal/transport/httpdto"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) Get(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	items, err := h.notifications.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"notifications": items}))
}
