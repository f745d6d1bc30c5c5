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

// HostelController is the superadmin hostel management surface.
type HostelController struct {
	Backend *services.BackendClient
}

func NewHostelController(backend *services.BackendClient) *HostelController {
	return &HostelController{Backend: backend}
}

func (hc *HostelController) List(c *gin.Context) {
	hostels, err := hc.Backend.ListHostels(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hostels)
}

func (hc *HostelController) Create(c *gin.Context) {
	var hostel models.Hostel
	if err := c.ShouldBindJSON(&hostel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	hostel.Name = strings.TrimSpace(hostel.Name)
	if hostel.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "hostel name is required")
		return
	}

	created, err := hc.Backend.CreateHostel(c.Request.Context(), middleware.TokenFromContext(c), hostel)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (hc *HostelController) Update(c *gin.Context) {
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

	hostel, err := hc.Backend.UpdateHostel(c.Request.Context(), middleware.TokenFromContext(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hostel)
}
