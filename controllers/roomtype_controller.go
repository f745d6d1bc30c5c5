package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"totalhub-web/middleware"
	"totalhub-web/models"
	"totalhub-web/services"
	"totalhub-web/utils"
)

type RoomTypeController struct {
	Backend *services.BackendClient
}

func NewRoomTypeController(backend *services.BackendClient) *RoomTypeController {
	return &RoomTypeController{Backend: backend}
}

func (rc *RoomTypeController) List(c *gin.Context) {
	roomTypes, err := rc.Backend.ListRoomTypes(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roomTypes)
}

func (rc *RoomTypeController) Create(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	rt.TypeName = strings.TrimSpace(rt.TypeName)
	if rt.TypeName == "" {
		utils.JSONError(c, http.StatusBadRequest, "typeName is required")
		return
	}

	created, err := rc.Backend.CreateRoomType(c.Request.Context(), middleware.TokenFromContext(c), rt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (rc *RoomTypeController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Backend.DeleteRoomType(c.Request.Context(), middleware.TokenFromContext(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
