package controllers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"totalhub-web/middleware"
	"totalhub-web/models"
	"totalhub-web/services"
	"totalhub-web/utils"
)

// DayPriceController exposes the admin day-price grid: range reads, single
// cell upserts, conflict checks, the bulk flow, and the debounced live-edit
// channel used by the grid's inline cell editors.
type DayPriceController struct {
	DayPrices *services.DayPriceService

	editor *services.GridEditor

	mu      sync.Mutex
	results []services.CellResult
}

func NewDayPriceController(svc *services.DayPriceService, gridDebounce time.Duration) *DayPriceController {
	dc := &DayPriceController{DayPrices: svc}
	dc.editor = services.NewGridEditor(svc.Store, gridDebounce, dc.record)
	return dc
}

func (dc *DayPriceController) record(r services.CellResult) {
	dc.mu.Lock()
	dc.results = append(dc.results, r)
	dc.mu.Unlock()
}

// GetRange handles GET /api/dashboard/day-prices. The range is
// end-exclusive; gaps in the result are expected and meaningful.
func (dc *DayPriceController) GetRange(c *gin.Context) {
	roomIDs, ok := parseRoomIDs(c)
	if !ok {
		return
	}
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	grid, err := dc.DayPrices.GetRange(c.Request.Context(), middleware.TokenFromContext(c), roomIDs, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// The loaded cells become the rollback baseline for subsequent live
	// edits.
	for _, rows := range grid {
		for _, rec := range rows {
			dc.editor.Seed(services.CellKey{RoomID: rec.RoomID, Date: rec.Date}, models.DayPriceFields{
				Price:             rec.Price,
				AvailableCapacity: rec.AvailableCapacity,
			})
		}
	}
	c.JSON(http.StatusOK, grid)
}

type upsertDayPricePayload struct {
	RoomID            uint     `json:"roomId"`
	Date              string   `json:"date"`
	Price             *float64 `json:"price"`
	AvailableCapacity *int     `json:"availableCapacity"`
}

// UpsertSingle handles POST /api/dashboard/day-prices: create-or-update of
// one cell, partial — omitted fields keep their current value.
func (dc *DayPriceController) UpsertSingle(c *gin.Context) {
	var payload upsertDayPricePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	date, err := utils.ParseDate(payload.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date")
		return
	}

	fields := models.DayPriceFields{Price: payload.Price, AvailableCapacity: payload.AvailableCapacity}
	record, err := dc.DayPrices.UpsertSingle(c.Request.Context(), middleware.TokenFromContext(c), payload.RoomID, date, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type bulkPayload struct {
	RoomIDs           []uint   `json:"roomIds"`
	From              string   `json:"from"`
	To                string   `json:"to"`
	Price             *float64 `json:"price"`
	AvailableCapacity *int     `json:"availableCapacity"`
	Decision          string   `json:"decision"`
}

// CheckConflicts handles POST /api/dashboard/day-prices/conflicts, used to
// decide whether the bulk flow needs the overwrite prompt.
func (dc *DayPriceController) CheckConflicts(c *gin.Context) {
	var payload bulkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
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

	hasConflicts, err := dc.DayPrices.CheckConflicts(c.Request.Context(), middleware.TokenFromContext(c), payload.RoomIDs, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasConflicts": hasConflicts})
}

// BulkUpsert handles POST /api/dashboard/day-prices/bulk. Without a
// decision, a conflicting range answers 409 so the dashboard can prompt
// overwrite / fill-gaps / cancel; the whole batch is applied in one
// upstream call either way.
func (dc *DayPriceController) BulkUpsert(c *gin.Context) {
	var payload bulkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
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

	decision := services.BulkDecision(strings.TrimSpace(payload.Decision))
	switch decision {
	case services.DecisionNone, services.DecisionOverwrite, services.DecisionFillGaps, services.DecisionCancel:
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid decision")
		return
	}

	fields := models.DayPriceFields{Price: payload.Price, AvailableCapacity: payload.AvailableCapacity}
	written, err := dc.DayPrices.ApplyBulk(c.Request.Context(), middleware.TokenFromContext(c), payload.RoomIDs, from, to, fields, decision)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"written": written})
}

// StageEdit handles POST /api/dashboard/day-prices/edits. The edit is
// debounced per cell: rapid re-edits of the same cell coalesce into one
// upstream write carrying the last value. The write outlives this request;
// its outcome is collected through Edits.
func (dc *DayPriceController) StageEdit(c *gin.Context) {
	var payload upsertDayPricePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.RoomID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "roomId is required")
		return
	}
	date, err := utils.ParseDate(payload.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date")
		return
	}
	fields := models.DayPriceFields{Price: payload.Price, AvailableCapacity: payload.AvailableCapacity}
	if fields.Empty() {
		respondServiceError(c, services.ErrEmptyUpdate)
		return
	}

	key := services.CellKey{RoomID: payload.RoomID, Date: utils.FormatDate(date)}
	dc.editor.Edit(context.Background(), middleware.TokenFromContext(c), key, fields)
	c.JSON(http.StatusAccepted, gin.H{"status": "staged"})
}

type cellEditResult struct {
	RoomID   uint                   `json:"roomId"`
	Date     string                 `json:"date"`
	Applied  *models.DayPrice       `json:"applied,omitempty"`
	Rollback *models.DayPriceFields `json:"rollback,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// Edits handles GET /api/dashboard/day-prices/edits: drains the outcomes of
// flushed cell writes. A failed write carries the fields the grid must
// restore in that cell.
func (dc *DayPriceController) Edits(c *gin.Context) {
	dc.mu.Lock()
	drained := dc.results
	dc.results = nil
	dc.mu.Unlock()

	out := make([]cellEditResult, 0, len(drained))
	for _, r := range drained {
		item := cellEditResult{RoomID: r.Key.RoomID, Date: r.Key.Date}
		if r.Err != nil {
			item.Error = r.Err.Error()
			rollback := r.Rollback
			item.Rollback = &rollback
		} else {
			item.Applied = r.Applied
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}
