package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"totalhub-web/models"
	"totalhub-web/utils"
)

// CellKey identifies one grid cell.
type CellKey struct {
	RoomID uint
	Date   string
}

func (k CellKey) String() string {
	return fmt.Sprintf("cell:%d:%s", k.RoomID, k.Date)
}

// CellResult reports the outcome of one flushed cell write. On failure,
// Rollback holds the fields that were committed immediately before the
// failed edit began — the value the editor must restore, not an arbitrarily
// older one.
type CellResult struct {
	Key      CellKey
	Applied  *models.DayPrice
	Rollback models.DayPriceFields
	Err      error
}

// GridEditor drives the per-cell live editors of the day-price grid. Edits
// to the same cell within the debounce window coalesce into a single
// upstream write carrying the last value; edits to different cells are
// independently in-flight with no ordering between them.
type GridEditor struct {
	store  GridStore
	sched  *utils.Scheduler
	delay  time.Duration
	report func(CellResult)

	mu        sync.Mutex
	committed map[CellKey]models.DayPriceFields
	pending   map[CellKey]pendingEdit
	inflight  map[CellKey]models.DayPriceFields
}

type pendingEdit struct {
	token  string
	fields models.DayPriceFields
	// prior is the committed value when the first edit of the burst
	// arrived; replacements within the window keep it.
	prior models.DayPriceFields
}

func NewGridEditor(store GridStore, delay time.Duration, report func(CellResult)) *GridEditor {
	return &GridEditor{
		store:     store,
		sched:     utils.NewScheduler(),
		delay:     delay,
		report:    report,
		committed: make(map[CellKey]models.DayPriceFields),
		pending:   make(map[CellKey]pendingEdit),
		inflight:  make(map[CellKey]models.DayPriceFields),
	}
}

// Seed records the last-known-good value of a cell, typically from the
// getRange load that rendered the grid.
func (e *GridEditor) Seed(key CellKey, fields models.DayPriceFields) {
	e.mu.Lock()
	e.committed[key] = fields
	e.mu.Unlock()
}

// Edit stages new fields for a cell and (re)arms its debounce timer. The
// optimistic UI keeps showing the staged value; if the eventual write
// fails, the reported rollback restores the pre-edit value.
func (e *GridEditor) Edit(ctx context.Context, token string, key CellKey, fields models.DayPriceFields) {
	e.mu.Lock()
	edit, staged := e.pending[key]
	if !staged {
		// The value on screen when this burst began: a write still in
		// flight for the cell, else the last committed one.
		if fields, ok := e.inflight[key]; ok {
			edit = pendingEdit{prior: fields}
		} else {
			edit = pendingEdit{prior: e.committed[key]}
		}
	}
	edit.token = token
	edit.fields = fields
	e.pending[key] = edit
	e.mu.Unlock()

	e.sched.Schedule(key.String(), e.delay, func() {
		e.flush(ctx, key)
	})
}

func (e *GridEditor) flush(ctx context.Context, key CellKey) {
	e.mu.Lock()
	edit, ok := e.pending[key]
	if !ok {
		e.mu.Unlock()
		return
	}
	delete(e.pending, key)
	e.inflight[key] = edit.fields
	e.mu.Unlock()

	applied, err := e.store.UpsertDayPrice(ctx, edit.token, key.RoomID, key.Date, edit.fields)

	e.mu.Lock()
	// A newer flush may have raced past this one; only it may clear the
	// in-flight marker.
	if cur, ok := e.inflight[key]; ok && cur == edit.fields {
		delete(e.inflight, key)
	}
	if err == nil {
		e.committed[key] = edit.fields
	}
	e.mu.Unlock()

	if err != nil {
		e.report(CellResult{Key: key, Rollback: edit.prior, Err: err})
		return
	}
	e.report(CellResult{Key: key, Applied: applied})
}

// Stop drops all pending edits without sending them.
func (e *GridEditor) Stop() {
	e.sched.Stop()
	e.mu.Lock()
	e.pending = make(map[CellKey]pendingEdit)
	e.mu.Unlock()
}
