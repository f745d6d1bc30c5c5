package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"totalhub-web/controllers"
	"totalhub-web/models"
	"totalhub-web/services"
)

// previewRouter wires a real PricingService over a stub upstream so the
// handler's taxonomy-to-status mapping is exercised end to end.
func previewRouter(upstream http.HandlerFunc) (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(upstream)
	backend := services.NewBackendClient(server.URL)
	bc := controllers.NewBookingController(backend, services.NewPricingService(backend), 20*time.Millisecond)

	r := gin.New()
	r.GET("/api/hostels/:slug/preview/:roomId", bc.PricePreview)
	r.POST("/api/hostels/:slug/preview/:roomId/queue", bc.QueuePreview)
	r.GET("/api/preview-sessions/:session", bc.PreviewResult)
	return r, server
}

func TestPricePreview_OK(t *testing.T) {
	r, server := previewRouter(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(models.ReservationQuote{
			Total: 110,
			Breakdown: []models.PriceBreakdownLine{
				{Date: "2025-06-01", FinalPrice: 50},
				{Date: "2025-06-02", FinalPrice: 60},
			},
		})
	})
	defer server.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/hostels/totalhub/preview/1?from=2025-06-01&to=2025-06-03&guests=2&residencyStatus=non-resident", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var quote models.ReservationQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 110.0, quote.Total)
	assert.Len(t, quote.Breakdown, 2)
}

func TestPricePreview_MissingRateIs409WithDate(t *testing.T) {
	r, server := previewRouter(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(models.ReservationQuote{
			Total:     50,
			Breakdown: []models.PriceBreakdownLine{{Date: "2025-06-01", FinalPrice: 50}},
		})
	})
	defer server.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/hostels/totalhub/preview/1?from=2025-06-01&to=2025-06-03&guests=2&residencyStatus=non-resident", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	var body struct {
		Date  string  `json:"date"`
		Total *string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-02", body.Date)
	// Never a total next to an error.
	assert.Nil(t, body.Total)
}

func TestPricePreview_IncompleteSelectionIs400(t *testing.T) {
	upstreamCalled := false
	r, server := previewRouter(func(w http.ResponseWriter, req *http.Request) {
		upstreamCalled = true
	})
	defer server.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/hostels/totalhub/preview/1?from=2025-06-01&to=2025-06-03&guests=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, upstreamCalled)
}

func TestPricePreview_InvalidStayIs400(t *testing.T) {
	r, server := previewRouter(func(w http.ResponseWriter, req *http.Request) {})
	defer server.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/hostels/totalhub/preview/1?from=2025-06-03&to=2025-06-01&guests=2&residencyStatus=resident", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPricePreview_BackendDownIs502(t *testing.T) {
	r, server := previewRouter(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/hostels/totalhub/preview/1?from=2025-06-01&to=2025-06-03&guests=2&residencyStatus=resident", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestQueuePreview_SessionDebouncesToOneUpstreamCall(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	r, server := previewRouter(func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		json.NewEncoder(w).Encode(models.ReservationQuote{
			Total: 110,
			Breakdown: []models.PriceBreakdownLine{
				{Date: "2025-06-01", FinalPrice: 50},
				{Date: "2025-06-02", FinalPrice: 60},
			},
		})
	})
	defer server.Close()

	target := "/api/hostels/totalhub/preview/1/queue?session=s1&from=2025-06-01&to=2025-06-03&guests=2&residencyStatus=non-resident"
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
		require.Equal(t, http.StatusAccepted, w.Code)
	}

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 1, calls, "a burst of invalidations collapses to one recomputation")
	mu.Unlock()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/preview-sessions/s1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var quote models.ReservationQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 110.0, quote.Total)
}

func TestQueuePreview_RequiresSession(t *testing.T) {
	r, server := previewRouter(func(w http.ResponseWriter, req *http.Request) {})
	defer server.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
		"/api/hostels/totalhub/preview/1/queue?from=2025-06-01&to=2025-06-03&guests=2&residencyStatus=resident", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewResult_UnknownSessionIs404(t *testing.T) {
	r, server := previewRouter(func(w http.ResponseWriter, req *http.Request) {})
	defer server.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/preview-sessions/nobody", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReservation_DerivesPaymentMethod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var reservationBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPost {
			json.NewDecoder(req.Body).Decode(&reservationBody)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.CreateReservationResult{Total: 110})
			return
		}
		json.NewEncoder(w).Encode(models.ReservationQuote{
			Total: 110,
			Breakdown: []models.PriceBreakdownLine{
				{Date: "2025-06-01", FinalPrice: 50},
				{Date: "2025-06-02", FinalPrice: 60},
			},
		})
	}))
	defer server.Close()

	backend := services.NewBackendClient(server.URL)
	bc := controllers.NewBookingController(backend, services.NewPricingService(backend), 20*time.Millisecond)
	r := gin.New()
	r.POST("/api/hostels/:slug/reservations", bc.CreateReservation)

	// A resident payload smuggling a loyalty tier: the derived request must
	// have the tier cleared and pay cash.
	payload := `{"name":"Ana","email":"ana@example.com","roomId":1,"from":"2025-06-01","to":"2025-06-03",
		"guests":2,"residencyStatus":"resident","paymentMethod":"cash","hasLoyaltyCard":true,"loyaltyTier":"cash"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/hostels/totalhub/reservations", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cash", reservationBody["paymentMethod"])
	assert.Equal(t, true, reservationBody["isResident"])
	assert.Equal(t, false, reservationBody["hasLoyaltyCard"])
	_, hasTier := reservationBody["loyaltyTier"]
	assert.False(t, hasTier)
}
