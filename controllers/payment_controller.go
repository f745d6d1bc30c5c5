package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"totalhub-web/middleware"
	"totalhub-web/models"
	"totalhub-web/services"
	"totalhub-web/utils"
)

type PaymentController struct {
	Backend *services.BackendClient
}

func NewPaymentController(backend *services.BackendClient) *PaymentController {
	return &PaymentController{Backend: backend}
}

func (pc *PaymentController) List(c *gin.Context) {
	filters := passthroughFilters(c, "from", "to", "reservationId", "method", "page", "limit")
	payments, err := pc.Backend.ListPayments(c.Request.Context(), middleware.TokenFromContext(c), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Add handles POST /api/dashboard/reservations/:id/payments.
func (pc *PaymentController) Add(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payment.Amount <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "amount must be positive")
		return
	}

	created, err := pc.Backend.AddPayment(c.Request.Context(), middleware.TokenFromContext(c), id, payment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
