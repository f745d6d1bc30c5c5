package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"totalhub-web/middleware"
	"totalhub-web/services"
	"totalhub-web/utils"
)

// ReservationController serves the dashboard reservation screens: listing,
// editing, history, the availability calendar and the two reports.
type ReservationController struct {
	Backend *services.BackendClient
}

func NewReservationController(backend *services.BackendClient) *ReservationController {
	return &ReservationController{Backend: backend}
}

func passthroughFilters(c *gin.Context, keys ...string) url.Values {
	q := url.Values{}
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			q.Set(key, v)
		}
	}
	return q
}

func (rc *ReservationController) List(c *gin.Context) {
	filters := passthroughFilters(c, "from", "to", "status", "roomId", "page", "limit")
	reservations, err := rc.Backend.ListReservations(c.Request.Context(), middleware.TokenFromContext(c), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (rc *ReservationController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.Backend.GetReservation(c.Request.Context(), middleware.TokenFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (rc *ReservationController) Update(c *gin.Context) {
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

	reservation, err := rc.Backend.UpdateReservation(c.Request.Context(), middleware.TokenFromContext(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (rc *ReservationController) History(c *gin.Context) {
	filters := passthroughFilters(c, "from", "to", "email", "page", "limit")
	reservations, err := rc.Backend.ReservationHistory(c.Request.Context(), middleware.TokenFromContext(c), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// Calendar handles GET /api/dashboard/reservations/calendar/hostel: per
// room, per day booked-guest counts for the availability grid.
func (rc *ReservationController) Calendar(c *gin.Context) {
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	calendar, err := rc.Backend.HostelCalendar(c.Request.Context(), middleware.TokenFromContext(c), utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, calendar)
}

func (rc *ReservationController) Occupancy(c *gin.Context) {
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	report, err := rc.Backend.OccupancyReport(c.Request.Context(), middleware.TokenFromContext(c), utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (rc *ReservationController) Income(c *gin.Context) {
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	report, err := rc.Backend.IncomeReport(c.Request.Context(), middleware.TokenFromContext(c), utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
