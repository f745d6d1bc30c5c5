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

// AdminUserController is the superadmin surface for hostel administrator
// accounts. Credential storage and role policy stay upstream; the password
// only passes through on creation.
type AdminUserController struct {
	Backend *services.BackendClient
}

func NewAdminUserController(backend *services.BackendClient) *AdminUserController {
	return &AdminUserController{Backend: backend}
}

func (ac *AdminUserController) List(c *gin.Context) {
	admins, err := ac.Backend.ListAdminUsers(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

func (ac *AdminUserController) Create(c *gin.Context) {
	var req models.CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if req.HostelID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "hostelId is required")
		return
	}

	created, err := ac.Backend.CreateAdminUser(c.Request.Context(), middleware.TokenFromContext(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ac *AdminUserController) Update(c *gin.Context) {
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

	admin, err := ac.Backend.UpdateAdminUser(c.Request.Context(), middleware.TokenFromContext(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}
