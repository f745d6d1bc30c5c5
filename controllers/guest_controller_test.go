package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"totalhub-web/controllers"
	"totalhub-web/models"
	"totalhub-web/services"
)

func guestRouter(upstream http.HandlerFunc) (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(upstream)
	gc := controllers.NewGuestController(services.NewBackendClient(server.URL))

	r := gin.New()
	r.GET("/api/dashboard/guests", gc.List)
	r.GET("/api/dashboard/guests/:id", gc.Get)
	r.GET("/api/dashboard/guests/:id/payments", gc.Payments)
	r.POST("/api/dashboard/guests", gc.Create)
	r.PUT("/api/dashboard/guests/:id", gc.Update)
	return r, server
}

func TestGuestList_PassesThroughSearch(t *testing.T) {
	var gotPath, gotQ, gotPage string
	r, server := guestRouter(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotQ = req.URL.Query().Get("q")
		gotPage = req.URL.Query().Get("page")
		json.NewEncoder(w).Encode(models.GuestPage{
			Data:       []models.Guest{{ID: 1, Name: "Ana", Email: "ana@example.com"}},
			Pagination: models.Pagination{Page: 2, TotalPages: 3, Total: 41},
		})
	})
	defer server.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/guests?q=ana&page=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/guests/all", gotPath)
	assert.Equal(t, "ana", gotQ)
	assert.Equal(t, "2", gotPage)

	var page models.GuestPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "ana@example.com", page.Data[0].Email)
	assert.Equal(t, 3, page.Pagination.TotalPages)
}

func TestGuestUpdate_UsesPutAndStripsID(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	r, server := guestRouter(func(w http.ResponseWriter, req *http.Request) {
		gotMethod = req.Method
		gotPath = req.URL.Path
		json.NewDecoder(req.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(models.Guest{ID: 7, Name: "Ana", Email: "ana@example.com"})
	})
	defer server.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/dashboard/guests/7",
		strings.NewReader(`{"id":99,"name":"Ana","email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/guests/7", gotPath)
	_, hasID := gotBody["id"]
	assert.False(t, hasID, "the path id wins; the body id is dropped")
}

func TestGuestCreate_RequiresNameAndEmail(t *testing.T) {
	r, server := guestRouter(func(w http.ResponseWriter, req *http.Request) {
		t.Error("invalid guest must not reach the backend")
	})
	defer server.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/guests",
		strings.NewReader(`{"name":"  ","email":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuestPayments_Passthrough(t *testing.T) {
	var gotPath string
	r, server := guestRouter(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		json.NewEncoder(w).Encode([]models.Payment{{ID: 1, ReservationID: 3, Amount: 40}})
	})
	defer server.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/guests/7/payments", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/payments/by-guest/7", gotPath)
}
