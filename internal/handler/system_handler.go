package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beacon-chat/internal/services"
	"beacon-chat/internal/transport/httpdto"
)

type SystemHandler struct {
	system *services.SystemService
}

func NewSystemHandler(system *services.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

// Reset wipes the whole state and cancels pending deferred sends. Exposed
// for environment resets and test harnesses; not an end-user operation.
func (h *SystemHandler) Reset(c *gin.Context) {
	if err := h.system.Reset(c.Request.Context()); err != nil {
		c.JSON(httpdto.StatusFromError(err))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}
