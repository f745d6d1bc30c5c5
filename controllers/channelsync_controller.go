package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"totalhub-web/middleware"
	"totalhub-web/services"
)

// ChannelSyncController browses the backend's channel synchronization logs.
// The sync integrations themselves live upstream; this is read + confirm
// only.
type ChannelSyncController struct {
	Backend *services.BackendClient
}

func NewChannelSyncController(backend *services.BackendClient) *ChannelSyncController {
	return &ChannelSyncController{Backend: backend}
}

func (cc *ChannelSyncController) Logs(c *gin.Context) {
	filters := passthroughFilters(c, "hostelId", "status", "externalResId", "page", "limit")
	page, err := cc.Backend.ChannelSyncLogs(c.Request.Context(), middleware.TokenFromContext(c), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (cc *ChannelSyncController) Confirm(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := cc.Backend.ConfirmChannelSync(c.Request.Context(), middleware.TokenFromContext(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}
