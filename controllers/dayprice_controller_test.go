package controllers_test

import (
	"encoding/json"
	"fmt"
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

func floatPtr(v float64) *float64 { return &v }

func gridRouter(upstream http.HandlerFunc, debounce time.Duration) (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(upstream)
	backend := services.NewBackendClient(server.URL)
	dc := controllers.NewDayPriceController(services.NewDayPriceService(backend), debounce)

	r := gin.New()
	r.GET("/api/dashboard/day-prices", dc.GetRange)
	r.POST("/api/dashboard/day-prices/edits", dc.StageEdit)
	r.GET("/api/dashboard/day-prices/edits", dc.Edits)
	return r, server
}

func stageEdit(t *testing.T, r *gin.Engine, body string) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/day-prices/edits", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)
}

func drainEdits(t *testing.T, r *gin.Engine) []map[string]interface{} {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/day-prices/edits", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestStageEdit_BurstCoalescesToOneUpstreamWrite(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]interface{}
	r, server := gridRouter(func(w http.ResponseWriter, req *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(req.Body).Decode(&body)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		json.NewEncoder(w).Encode(models.DayPrice{ID: 1, RoomID: 2, Date: "2025-07-01", Price: floatPtr(90)})
	}, 30*time.Millisecond)
	defer server.Close()

	for _, price := range []float64{80, 85, 90} {
		stageEdit(t, r, fmt.Sprintf(`{"roomId":2,"date":"2025-07-01","price":%g}`, price))
	}

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	require.Len(t, bodies, 1, "exactly one upstream write for the burst")
	assert.Equal(t, 90.0, bodies[0]["price"])
	mu.Unlock()

	results := drainEdits(t, r)
	require.Len(t, results, 1)
	assert.NotNil(t, results[0]["applied"])
	assert.Nil(t, results[0]["error"])

	// Drained once, gone.
	assert.Empty(t, drainEdits(t, r))
}

func TestStageEdit_FailureReportsRollbackToLoadedValue(t *testing.T) {
	r, server := gridRouter(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			json.NewEncoder(w).Encode([]models.DayPrice{
				{ID: 1, RoomID: 2, Date: "2025-07-01", Price: floatPtr(80)},
			})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}, 10*time.Millisecond)
	defer server.Close()

	// Loading the grid seeds the rollback baseline.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/dashboard/day-prices?roomId=2&from=2025-07-01&to=2025-07-05", nil))
	require.Equal(t, http.StatusOK, w.Code)

	stageEdit(t, r, `{"roomId":2,"date":"2025-07-01","price":85}`)
	time.Sleep(100 * time.Millisecond)

	results := drainEdits(t, r)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0]["error"])
	rollback, ok := results[0]["rollback"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 80.0, rollback["price"])
}

func TestStageEdit_EmptyUpdateRejected(t *testing.T) {
	r, server := gridRouter(func(w http.ResponseWriter, req *http.Request) {
		t.Error("empty edits must not reach the backend")
	}, 10*time.Millisecond)
	defer server.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/day-prices/edits",
		strings.NewReader(`{"roomId":2,"date":"2025-07-01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStageEdit_DifferentCellsBothWritten(t *testing.T) {
	var mu sync.Mutex
	writes := 0
	r, server := gridRouter(func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		writes++
		mu.Unlock()
		json.NewEncoder(w).Encode(models.DayPrice{ID: 1})
	}, 10*time.Millisecond)
	defer server.Close()

	stageEdit(t, r, `{"roomId":1,"date":"2025-07-01","price":50}`)
	stageEdit(t, r, `{"roomId":1,"date":"2025-07-02","price":55}`)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 2, writes, "edits to different cells do not coalesce")
	mu.Unlock()
	assert.Len(t, drainEdits(t, r), 2)
}
