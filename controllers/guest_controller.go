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

// GuestController is the admin guest-profile surface. Profiles are kept
// upstream independently of reservations so repeat guests share a record.
type GuestController struct {
	Backend *services.BackendClient
}

func NewGuestController(backend *services.BackendClient) *GuestController {
	return &GuestController{Backend: backend}
}

// List handles GET /api/dashboard/guests: paginated, with a free-text
// name/email search via q.
func (gc *GuestController) List(c *gin.Context) {
	filters := passthroughFilters(c, "q", "page", "limit")
	page, err := gc.Backend.ListGuests(c.Request.Context(), middleware.TokenFromContext(c), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (gc *GuestController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	guest, err := gc.Backend.GetGuest(c.Request.Context(), middleware.TokenFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (gc *GuestController) Create(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	guest.Name = strings.TrimSpace(guest.Name)
	guest.Email = strings.TrimSpace(guest.Email)
	if guest.Name == "" || guest.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "name and email are required")
		return
	}

	created, err := gc.Backend.CreateGuest(c.Request.Context(), middleware.TokenFromContext(c), guest)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (gc *GuestController) Update(c *gin.Context) {
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

	guest, err := gc.Backend.UpdateGuest(c.Request.Context(), middleware.TokenFromContext(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// Payments handles GET /api/dashboard/guests/:id/payments, the payment
// history panel of the guest detail view.
func (gc *GuestController) Payments(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	payments, err := gc.Backend.GuestPayments(c.Request.Context(), middleware.TokenFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
