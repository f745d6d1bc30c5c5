package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"totalhub-web/middleware"
	"totalhub-web/services"
	"totalhub-web/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation failures never reached the backend; MissingRate and
// ConflictDetected are 409 branch points; BackendUnavailable is a gateway
// failure and is not retried here.
func respondServiceError(c *gin.Context, err error) {
	var missing *services.MissingRateError
	var backendErr *services.BackendError

	switch {
	case errors.Is(err, services.ErrInvalidStay),
		errors.Is(err, services.ErrIncompleteSelection),
		errors.Is(err, services.ErrInvalidRange),
		errors.Is(err, services.ErrEmptyUpdate):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &missing):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": missing.Error(),
			"date":    missing.Date,
		})
	case errors.Is(err, services.ErrConflictDetected):
		c.JSON(http.StatusConflict, gin.H{
			"success":      false,
			"message":      err.Error(),
			"hasConflicts": true,
		})
	case errors.Is(err, services.ErrUnauthorized):
		utils.JSONRedirect(c, http.StatusUnauthorized, "session expired", middleware.LoginPath)
	case errors.Is(err, services.ErrBackendUnavailable):
		utils.JSONError(c, http.StatusBadGateway, "backend unavailable")
	case errors.As(err, &backendErr):
		utils.JSONError(c, backendErr.Status, backendErr.Message)
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}

func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		utils.JSONError(c, http.StatusBadRequest, name+" is required")
		return time.Time{}, false
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name+" date")
		return time.Time{}, false
	}
	return t, true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// parseRoomIDs accepts either roomId=N or roomIds[]=N&roomIds[]=M.
func parseRoomIDs(c *gin.Context) ([]uint, bool) {
	raw := c.QueryArray("roomIds[]")
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query("roomId")); single != "" {
			raw = []string{single}
		}
	}
	if len(raw) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "roomId is required")
		return nil, false
	}
	ids := make([]uint, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseUint(strings.TrimSpace(r), 10, 64)
		if err != nil || id == 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid room id")
			return nil, false
		}
		ids = append(ids, uint(id))
	}
	return ids, true
}
