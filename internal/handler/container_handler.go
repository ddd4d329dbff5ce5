package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beacon-chat/internal/services"
	"beacon-chat/internal/transport/httpdto"
)

type ContainerHandler struct {
	channels *services.ChannelService
	dms      *services.DMService
}

func NewContainerHandler(channels *services.ChannelService, dms *services.DMService) *ContainerHandler {
	return &ContainerHandler{channels: channels, dms: dms}
}

func (h *ContainerHandler) CreateChannel(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	var req httpdto.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	id, err := h.channels.Create(c.Request.Context(), userID, req.Name, req.Public)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ContainerIDResponse{ID: id}))
}

func (h *ContainerHandler) InviteToChannel(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	channelID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid channel id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	if err := h.channels.Invite(c.Request.Context(), userID, channelID, req.UserID); err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *ContainerHandler) ListJoinedChannels(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	channels, err := h.channels.ListJoined(c.Request.Context(), userID)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"channels": channels}))
}

func (h *ContainerHandler) CreateDM(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	var req httpdto.CreateDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	id, err := h.dms.Create(c.Request.Context(), userID, req.MemberIDs)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ContainerIDResponse{ID: id}))
}

func (h *ContainerHandler) ListJoinedDMs(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	dms, err := h.dms.ListJoined(c.Request.Context(), userID)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"dms": dms}))
}
