package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"beacon-chat/internal/domain/container"
	"beacon-chat/internal/services"
	"beacon-chat/internal/transport/httpdto"
)

type MessageHandler struct {
	messages *services.MessageService
	feed     *services.FeedService
}

func NewMessageHandler(messages *services.MessageService, feed *services.FeedService) *MessageHandler {
	return &MessageHandler{messages: messages, feed: feed}
}

func (h *MessageHandler) SendToChannel(c *gin.Context) {
	h.sendNow(c, container.KindChannel)
}

func (h *MessageHandler) SendToDM(c *gin.Context) {
	h.sendNow(c, container.KindDM)
}

func (h *MessageHandler) sendNow(c *gin.Context, kind container.Kind) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	containerID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid container id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	var messageID int64
	if kind == container.KindChannel {
		messageID, err = h.messages.Send(c.Request.Context(), userID, containerID, req.Body)
	} else {
		messageID, err = h.messages.SendDM(c.Request.Context(), userID, containerID, req.Body)
	}
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.MessageIDResponse{MessageID: messageID}))
}

func (h *MessageHandler) SendLaterToChannel(c *gin.Context) {
	h.sendLater(c, container.KindChannel)
}

func (h *MessageHandler) SendLaterToDM(c *gin.Context) {
	h.sendLater(c, container.KindDM)
}

func (h *MessageHandler) sendLater(c *gin.Context, kind container.Kind) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	containerID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid container id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.SendLaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	var messageID int64
	if kind == container.KindChannel {
		messageID, err = h.messages.SendLater(c.Request.Context(), userID, containerID, req.Body, req.SentAt)
	} else {
		messageID, err = h.messages.SendLaterDM(c.Request.Context(), userID, containerID, req.Body, req.SentAt)
	}
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.MessageIDResponse{MessageID: messageID}))
}

func (h *MessageHandler) ListChannelPage(c *gin.Context) {
	h.listPage(c, container.KindChannel)
}

func (h *MessageHandler) ListDMPage(c *gin.Context) {
	h.listPage(c, container.KindDM)
}

func (h *MessageHandler) listPage(c *gin.Context, kind container.Kind) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	containerID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid container id", "INVALID_REQUEST"))
		return
	}
	start, err := strconv.Atoi(c.DefaultQuery("start", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid start", "INVALID_REQUEST"))
		return
	}

	ref := container.ChannelRef(containerID)
	if kind == container.KindDM {
		ref = container.DMRef(containerID)
	}
	page, err := h.feed.ListPage(c.Request.Context(), userID, ref, start)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(page))
}

func (h *MessageHandler) Edit(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	messageID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	if err := h.messages.Edit(c.Request.Context(), userID, messageID, req.Body); err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) Remove(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	messageID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	if err := h.messages.Remove(c.Request.Context(), userID, messageID); err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) Pin(c *gin.Context) {
	h.setPinned(c, true)
}

func (h *MessageHandler) Unpin(c *gin.Context) {
	h.setPinned(c, false)
}

func (h *MessageHandler) setPinned(c *gin.Context, pinned bool) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	messageID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	if err := h.messages.SetPinned(c.Request.Context(), userID, messageID, pinned); err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) React(c *gin.Context) {
	h.setReaction(c, true)
}

func (h *MessageHandler) Unreact(c *gin.Context) {
	h.setReaction(c, false)
}

func (h *MessageHandler) setReaction(c *gin.Context, add bool) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	messageID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	if add {
		err = h.messages.React(c.Request.Context(), userID, messageID, req.Kind)
	} else {
		err = h.messages.Unreact(c.Request.Context(), userID, messageID, req.Kind)
	}
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *MessageHandler) Share(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	var req httpdto.ShareMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	// exactly one destination
	if (req.ChannelID == 0) == (req.DMID == 0) {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("exactly one destination required", "INVALID_REQUEST"))
		return
	}
	dest := container.ChannelRef(req.ChannelID)
	if req.DMID != 0 {
		dest = container.DMRef(req.DMID)
	}
	messageID, err := h.messages.Share(c.Request.Context(), userID, req.OgMessageID, req.Extra, dest)
	if err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.MessageIDResponse{MessageID: messageID}))
}

func parseID(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}
