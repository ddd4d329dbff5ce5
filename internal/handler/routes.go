package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beacon-chat/internal/middleware"
	"beacon-chat/internal/services"
	"beacon-chat/pkg/logger"
)

type Handlers struct {
	Messages      *MessageHandler
	Notifications *NotificationHandler
	Search        *SearchHandler
	Containers    *ContainerHandler
	Standups      *StandupHandler
	System        *SystemHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, auth *services.AuthService, log *logger.Logger) {
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.ErrorHandler(log))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(auth))
	{
		v1.POST("/channels", h.Containers.CreateChannel)
		v1.GET("/channels", h.Containers.ListJoinedChannels)
		v1.POST("/channels/:id/invite", h.Containers.InviteToChannel)
		v1.GET("/channels/:id/messages", h.Messages.ListChannelPage)
		v1.POST("/channels/:id/messages", h.Messages.SendToChannel)
		v1.POST("/channels/:id/messages/later", h.Messages.SendLaterToChannel)
		v1.POST("/channels/:id/standup/start", h.Standups.Start)
		v1.GET("/channels/:id/standup", h.Standups.Active)
		v1.POST("/channels/:id/standup/send", h.Standups.Send)

		v1.POST("/dms", h.Containers.CreateDM)
		v1.GET("/dms", h.Containers.ListJoinedDMs)
		v1.GET("/dms/:id/messages", h.Messages.ListDMPage)
		v1.POST("/dms/:id/messages", h.Messages.SendToDM)
		v1.POST("/dms/:id/messages/later", h.Messages.SendLaterToDM)

		v1.PUT("/messages/:id", h.Messages.Edit)
		v1.DELETE("/messages/:id", h.Messages.Remove)
		v1.POST("/messages/:id/pin", h.Messages.Pin)
		v1.POST("/messages/:id/unpin", h.Messages.Unpin)
		v1.POST("/messages/:id/react", h.Messages.React)
		v1.POST("/messages/:id/unreact", h.Messages.Unreact)
		v1.POST("/messages/share", h.Messages.Share)

		v1.GET("/notifications", h.Notifications.Get)
		v1.GET("/search", h.Search.Search)
	}

	r.DELETE("/v1/system/reset", h.System.Reset)
}
