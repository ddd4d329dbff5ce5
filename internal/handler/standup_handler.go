package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beacon-chat/internal/services"
	"beacon-chat/internal/transport/httpdto"
)

type StandupHandler struct {
	standups *services.StandupService
}

func NewStandupHandler(standups *services.StandupService) *StandupHandler {
	return &StandupHandler{standups: standups}
}

func (h *StandupHandler) Start(c *gin.Context) {
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
	var req httpdto.StandupStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	finishAt, err := h.standups.Start(c.Request.Context(), userID, channelID, req.LengthSeconds)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"finishAt": finishAt}))
}

func (h *StandupHandler) Active(c *gin.Context) {
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
	active, finishAt, err := h.standups.Active(c.Request.Context(), userID, channelID)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.StandupStatusResponse{Active: active, FinishAt: finishAt}))
}

func (h *StandupHandler) Send(c *gin.Context) {
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
	var req httpdto.StandupSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	if err := h.standups.Send(c.Request.Context(), userID, channelID, req.Body); err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}
