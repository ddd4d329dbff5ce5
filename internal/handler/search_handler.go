package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beacon-chat/internal/services"
	"beacon-chat/internal/transport/httpdto"
)

type SearchHandler struct {
	feed *services.FeedService
}

func NewSearchHandler(feed *services.FeedService) *SearchHandler {
	return &SearchHandler{feed: feed}
}

func (h *SearchHandler) Search(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	matches, err := h.feed.Search(c.Request.Context(), userID, c.Query("query"))
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"messages": matches}))
}
