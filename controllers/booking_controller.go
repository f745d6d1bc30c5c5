package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"totalhub-web/models"
	"totalhub-web/services"
	"totalhub-web/utils"
)

// BookingController serves the public booking flow: availability search,
// hostel/room detail, price preview (synchronous and debounced), reservation
// creation and lookup.
type BookingController struct {
	Backend *services.BackendClient
	Pricing *services.PricingService

	quoteDebounce time.Duration

	mu       sync.Mutex
	sessions map[string]*quoteSession
}

// quoteSession is one booking form's debounced quote stream. Each session
// has its own recomputer so concurrent visitors never invalidate each other.
type quoteSession struct {
	recomputer *services.QuoteRecomputer

	mu     sync.Mutex
	latest *services.QuoteResult
}

func NewBookingController(backend *services.BackendClient, pricing *services.PricingService, quoteDebounce time.Duration) *BookingController {
	return &BookingController{
		Backend:       backend,
		Pricing:       pricing,
		quoteDebounce: quoteDebounce,
		sessions:      make(map[string]*quoteSession),
	}
}

func (bc *BookingController) session(id string) *quoteSession {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	s, ok := bc.sessions[id]
	if !ok {
		s = &quoteSession{}
		s.recomputer = services.NewQuoteRecomputer(bc.Pricing, bc.quoteDebounce, func(r services.QuoteResult) {
			s.mu.Lock()
			s.latest = &r
			s.mu.Unlock()
		})
		bc.sessions[id] = s
	}
	return s
}

// SearchAvailability handles GET /api/availability.
func (bc *BookingController) SearchAvailability(c *gin.Context) {
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}
	if !to.After(from) {
		utils.JSONError(c, http.StatusBadRequest, "to must be after from")
		return
	}
	guests, err := strconv.Atoi(c.DefaultQuery("guests", "1"))
	if err != nil || guests < 1 {
		utils.JSONError(c, http.StatusBadRequest, "invalid guests")
		return
	}

	results, err := bc.Backend.SearchAvailability(c.Request.Context(), utils.FormatDate(from), utils.FormatDate(to), guests)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetHostel handles GET /api/hostels/:slug.
func (bc *BookingController) GetHostel(c *gin.Context) {
	hostel, err := bc.Backend.GetHostel(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hostel)
}

// GetRoom handles GET /api/hostels/:slug/rooms/:roomSlug.
func (bc *BookingController) GetRoom(c *gin.Context) {
	room, err := bc.Backend.GetRoom(c.Request.Context(), c.Param("slug"), c.Param("roomSlug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func selectionFromQuery(c *gin.Context) models.PricingSelection {
	sel := models.PricingSelection{}

	switch strings.TrimSpace(c.Query("residencyStatus")) {
	case models.ResidencyResident:
		sel.Residency = models.ResidencyResident
		sel.ResidentCard = c.Query("paymentMethod") == models.PaymentCard
	case models.ResidencyNonResident:
		sel.Residency = models.ResidencyNonResident
		sel.UseLoyaltyCard = c.Query("hasLoyaltyCard") == "true"
		sel.LoyaltyTier = strings.TrimSpace(c.Query("loyaltyTier"))
	}
	// Rebuild through the reducer so the mutual-exclusion invariant holds
	// no matter what combination the query carried.
	return services.ApplySelection(models.PricingSelection{}, services.SelectionChange{
		Residency:    &sel.Residency,
		ResidentCard: &sel.ResidentCard,
		UseLoyalty:   &sel.UseLoyaltyCard,
		LoyaltyTier:  &sel.LoyaltyTier,
	})
}

func stayFromRequest(c *gin.Context) (models.Stay, bool) {
	roomID, ok := parseUintParam(c, "roomId")
	if !ok {
		return models.Stay{}, false
	}
	from, ok := parseDateParam(c, "from")
	if !ok {
		return models.Stay{}, false
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return models.Stay{}, false
	}
	guests, err := strconv.Atoi(c.DefaultQuery("guests", "0"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guests")
		return models.Stay{}, false
	}
	return models.Stay{RoomID: roomID, From: from, To: to, Guests: guests}, true
}

// PricePreview handles GET /api/hostels/:slug/preview/:roomId: a single
// synchronous quote. It never returns a partial breakdown.
func (bc *BookingController) PricePreview(c *gin.Context) {
	stay, ok := stayFromRequest(c)
	if !ok {
		return
	}
	quote, err := bc.Pricing.Preview(c.Request.Context(), c.Param("slug"), stay, selectionFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// QueuePreview handles POST /api/hostels/:slug/preview/:roomId/queue.
// Each call invalidates the session's quote and schedules a debounced
// recomputation; a burst of calls collapses to one upstream request carrying
// the last inputs, and a stale result never overtakes a newer one. The
// recomputation deliberately outlives this request.
func (bc *BookingController) QueuePreview(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session"))
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "session is required")
		return
	}
	stay, ok := stayFromRequest(c)
	if !ok {
		return
	}

	s := bc.session(sessionID)
	s.recomputer.Invalidate(context.Background(), c.Param("slug"), stay, selectionFromQuery(c))
	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled"})
}

// PreviewResult handles GET /api/preview-sessions/:session: the latest
// outcome of the session's debounced recomputation. A failed recomputation
// cleared the quote, so the caller sees the mapped error with no total
// beside it.
func (bc *BookingController) PreviewResult(c *gin.Context) {
	sessionID := c.Param("session")

	bc.mu.Lock()
	s, ok := bc.sessions[sessionID]
	bc.mu.Unlock()
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "unknown session")
		return
	}

	s.mu.Lock()
	latest := s.latest
	s.mu.Unlock()
	if latest == nil {
		c.JSON(http.StatusAccepted, gin.H{"status": "pending"})
		return
	}
	if latest.Err != nil {
		respondServiceError(c, latest.Err)
		return
	}
	c.JSON(http.StatusOK, latest.Quote)
}

type createReservationPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	RoomID          uint   `json:"roomId"`
	From            string `json:"from"`
	To              string `json:"to"`
	Guests          int    `json:"guests"`
	ResidencyStatus string `json:"residencyStatus"`
	PaymentMethod   string `json:"paymentMethod"`
	HasLoyaltyCard  bool   `json:"hasLoyaltyCard"`
	LoyaltyTier     string `json:"loyaltyTier"`
	Lang            string `json:"lang"`
}

// CreateReservation handles POST /api/hostels/:slug/reservations. The
// payment method forwarded upstream is always derived from the selection,
// never taken raw from the payload.
func (bc *BookingController) CreateReservation(c *gin.Context) {
	var payload createReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Name == "" || payload.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "name and email are required")
		return
	}

	from, err := utils.ParseDate(payload.From)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := utils.ParseDate(payload.To)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid to date")
		return
	}

	sel := services.ApplySelection(models.PricingSelection{}, services.SelectionChange{
		Residency:    &payload.ResidencyStatus,
		ResidentCard: boolPtr(payload.PaymentMethod == models.PaymentCard),
		UseLoyalty:   &payload.HasLoyaltyCard,
		LoyaltyTier:  &payload.LoyaltyTier,
	})
	stay := models.Stay{RoomID: payload.RoomID, From: from, To: to, Guests: payload.Guests}

	// Same preconditions as the preview: an invalid stay or incomplete
	// selection never reaches the backend.
	if _, err := bc.Pricing.Preview(c.Request.Context(), c.Param("slug"), stay, sel); err != nil {
		respondServiceError(c, err)
		return
	}

	req := models.CreateReservationRequest{
		Name:           payload.Name,
		Email:          payload.Email,
		RoomID:         payload.RoomID,
		From:           utils.FormatDate(from),
		To:             utils.FormatDate(to),
		Guests:         payload.Guests,
		PaymentMethod:  sel.PaymentMethod(),
		IsResident:     sel.IsResident(),
		HasLoyaltyCard: sel.UseLoyaltyCard,
		LoyaltyTier:    sel.LoyaltyTier,
		Lang:           payload.Lang,
	}

	result, err := bc.Backend.CreateReservation(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// LookupReservation handles GET /api/hostels/:slug/reservations/lookup.
func (bc *BookingController) LookupReservation(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	reference := strings.TrimSpace(c.Query("reference"))
	if email == "" || reference == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and reference are required")
		return
	}

	reservation, err := bc.Backend.LookupReservation(c.Request.Context(), c.Param("slug"), email, reference)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func boolPtr(b bool) *bool { return &b }
