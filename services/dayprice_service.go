package services

import (
	"context"
	"sort"
	"time"

	"totalhub-web/models"
	"totalhub-web/utils"
)

// GridStore is the backend-owned day-price table, reachable only through
// these four operations. No local copy is authoritative; every read
// reflects backend state at request time.
type GridStore interface {
	GetDayPrices(ctx context.Context, token string, roomIDs []uint, from, to string) ([]models.DayPrice, error)
	UpsertDayPrice(ctx context.Context, token string, roomID uint, date string, fields models.DayPriceFields) (*models.DayPrice, error)
	CheckBulkConflicts(ctx context.Context, token string, roomIDs []uint, from, to string) (bool, error)
	BulkUpsertDayPrices(ctx context.Context, token string, roomIDs []uint, from, to string, fields models.DayPriceFields, overwrite bool) (int, error)
}

// BulkDecision is the administrator's answer to the conflict prompt.
type BulkDecision string

const (
	// DecisionNone means the prompt has not been answered yet; conflicts
	// abort the submit and surface the prompt.
	DecisionNone      BulkDecision = ""
	DecisionOverwrite BulkDecision = "overwrite"
	DecisionFillGaps  BulkDecision = "fill-gaps"
	DecisionCancel    BulkDecision = "cancel"
)

type DayPriceService struct {
	Store GridStore
}

func NewDayPriceService(store GridStore) *DayPriceService {
	return &DayPriceService{Store: store}
}

// GetRange returns each requested room's day-prices ordered by date, gaps
// allowed. A room with no priced days maps to an empty slice. The range is
// end-exclusive like a Stay.
func (s *DayPriceService) GetRange(ctx context.Context, token string, roomIDs []uint, from, to time.Time) (map[uint][]models.DayPrice, error) {
	if !to.After(from) {
		return nil, ErrInvalidRange
	}

	records, err := s.Store.GetDayPrices(ctx, token, roomIDs, utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		return nil, err
	}

	grouped := make(map[uint][]models.DayPrice, len(roomIDs))
	for _, id := range roomIDs {
		grouped[id] = []models.DayPrice{}
	}
	for _, rec := range records {
		grouped[rec.RoomID] = append(grouped[rec.RoomID], rec)
	}
	for id := range grouped {
		rows := grouped[id]
		// ISO dates sort lexicographically.
		sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
		grouped[id] = rows
	}
	return grouped, nil
}

// UpsertSingle creates or partially updates one cell: omitted fields keep
// their current value upstream.
func (s *DayPriceService) UpsertSingle(ctx context.Context, token string, roomID uint, date time.Time, fields models.DayPriceFields) (*models.DayPrice, error) {
	if roomID == 0 {
		return nil, ErrInvalidRange
	}
	if fields.Empty() {
		return nil, ErrEmptyUpdate
	}
	return s.Store.UpsertDayPrice(ctx, token, roomID, utils.FormatDate(date), fields)
}

// CheckConflicts reports whether any cell in roomIDs x [from, to] already
// holds a price or capacity. Bulk ranges are end-inclusive.
func (s *DayPriceService) CheckConflicts(ctx context.Context, token string, roomIDs []uint, from, to time.Time) (bool, error) {
	if to.Before(from) {
		return false, ErrInvalidRange
	}
	return s.Store.CheckBulkConflicts(ctx, token, roomIDs, utils.FormatDate(from), utils.FormatDate(to))
}

// ApplyBulk runs the bulk-edit flow: validate, check conflicts, and submit
// one batch write.
//
// With DecisionNone, a conflicting range returns ErrConflictDetected so the
// caller can prompt; a clean range is submitted straight away (fill-only,
// nothing to overwrite). DecisionOverwrite replaces every cell in range,
// DecisionFillGaps only populates empty cells, DecisionCancel does nothing.
// The write is one batch call: the backend reports an aggregated count or
// a single error, never a silent partial failure.
func (s *DayPriceService) ApplyBulk(ctx context.Context, token string, roomIDs []uint, from, to time.Time, fields models.DayPriceFields, decision BulkDecision) (int, error) {
	if len(roomIDs) == 0 || to.Before(from) {
		return 0, ErrInvalidRange
	}
	if fields.Empty() {
		return 0, ErrEmptyUpdate
	}

	switch decision {
	case DecisionCancel:
		return 0, nil
	case DecisionNone:
		hasConflicts, err := s.Store.CheckBulkConflicts(ctx, token, roomIDs, utils.FormatDate(from), utils.FormatDate(to))
		if err != nil {
			return 0, err
		}
		if hasConflicts {
			return 0, ErrConflictDetected
		}
		return s.Store.BulkUpsertDayPrices(ctx, token, roomIDs, utils.FormatDate(from), utils.FormatDate(to), fields, false)
	case DecisionOverwrite:
		return s.Store.BulkUpsertDayPrices(ctx, token, roomIDs, utils.FormatDate(from), utils.FormatDate(to), fields, true)
	case DecisionFillGaps:
		return s.Store.BulkUpsertDayPrices(ctx, token, roomIDs, utils.FormatDate(from), utils.FormatDate(to), fields, false)
	default:
		return 0, ErrInvalidRange
	}
}
