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

// RoomController is the admin room management surface. Rooms are immutable
// from the booking flow's perspective; only these endpoints mutate them.
type RoomController struct {
	Backend *services.BackendClient
}

func NewRoomController(backend *services.BackendClient) *RoomController {
	return &RoomController{Backend: backend}
}

func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Backend.ListRooms(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (rc *RoomController) Create(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	room.Name = strings.TrimSpace(room.Name)
	if room.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "room name is required")
		return
	}
	if room.Capacity < 1 {
		utils.JSONError(c, http.StatusBadRequest, "capacity must be at least 1")
		return
	}

	created, err := rc.Backend.CreateRoom(c.Request.Context(), middleware.TokenFromContext(c), room)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (rc *RoomController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	delete(patch, "id")
	delete(patch, "createdAt")

	room, err := rc.Backend.UpdateRoom(c.Request.Context(), middleware.TokenFromContext(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (rc *RoomController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Backend.DeleteRoom(c.Request.Context(), middleware.TokenFromContext(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
