package services

import (
	"context"
	"sync"
	"time"

	"totalhub-web/models"
	"totalhub-web/utils"
)

// QuoteSource is the upstream preview operation; BackendClient implements
// it. Rates returned already reflect residency/payment-method pricing and
// guest count.
type QuoteSource interface {
	PricePreview(ctx context.Context, slug string, stay models.Stay, isResident bool, paymentMethod string, hasLoyaltyCard bool, loyaltyTier string) (*models.ReservationQuote, error)
}

// PricingService resolves a Stay plus PricingSelection into a quote. It is
// a pure function of its inputs and the upstream rate source: no local
// percentage math, no caching.
type PricingService struct {
	Quotes QuoteSource
}

func NewPricingService(quotes QuoteSource) *PricingService {
	return &PricingService{Quotes: quotes}
}

func validateStay(stay models.Stay) error {
	if stay.RoomID == 0 || stay.From.IsZero() || stay.To.IsZero() {
		return ErrInvalidStay
	}
	if !stay.To.After(stay.From) {
		return ErrInvalidStay
	}
	if stay.Guests < 1 {
		return ErrInvalidStay
	}
	return nil
}

// Preview validates locally, derives the upstream flags from the selection
// and returns the upstream quote. Every night in [From, To) must be priced:
// the first gap in the returned breakdown fails the whole resolution with
// MissingRateError — a partial breakdown is never returned.
func (s *PricingService) Preview(ctx context.Context, slug string, stay models.Stay, sel models.PricingSelection) (*models.ReservationQuote, error) {
	if err := validateStay(stay); err != nil {
		return nil, err
	}
	if err := ValidateSelection(sel); err != nil {
		return nil, err
	}

	isResident := sel.IsResident()
	hasLoyalty := !isResident && sel.UseLoyaltyCard
	tier := models.LoyaltyNone
	if hasLoyalty {
		tier = sel.LoyaltyTier
	}

	quote, err := s.Quotes.PricePreview(ctx, slug, stay, isResident, sel.PaymentMethod(), hasLoyalty, tier)
	if err != nil {
		return nil, err
	}

	priced := make(map[string]bool, len(quote.Breakdown))
	for _, line := range quote.Breakdown {
		priced[line.Date] = true
	}
	for _, night := range utils.NightsBetween(stay.From, stay.To) {
		if !priced[night] {
			return nil, &MissingRateError{Date: night}
		}
	}
	return quote, nil
}

// QuoteResult is what a recomputation delivers: a quote or the failure that
// cleared it. Never both.
type QuoteResult struct {
	Quote *models.ReservationQuote
	Err   error
}

// QuoteRecomputer debounces quote recomputation and applies results
// last-write-wins. Each Invalidate supersedes any pending or in-flight
// computation: a stale response arriving after a newer issue is discarded,
// so the displayed quote can never belong to an older selection. In-flight
// requests are not aborted, only their results dropped.
type QuoteRecomputer struct {
	svc   *PricingService
	sched *utils.Scheduler
	delay time.Duration
	apply func(QuoteResult)

	mu  sync.Mutex
	seq uint64
}

func NewQuoteRecomputer(svc *PricingService, delay time.Duration, apply func(QuoteResult)) *QuoteRecomputer {
	return &QuoteRecomputer{
		svc:   svc,
		sched: utils.NewScheduler(),
		delay: delay,
		apply: apply,
	}
}

// Invalidate notes that an input changed and schedules a recomputation.
// Bursts within the debounce window collapse to one computation carrying
// the last inputs.
func (r *QuoteRecomputer) Invalidate(ctx context.Context, slug string, stay models.Stay, sel models.PricingSelection) {
	r.mu.Lock()
	r.seq++
	issue := r.seq
	r.mu.Unlock()

	r.sched.Schedule("quote", r.delay, func() {
		quote, err := r.svc.Preview(ctx, slug, stay, sel)

		r.mu.Lock()
		stale := issue != r.seq
		r.mu.Unlock()
		if stale {
			return
		}
		if err != nil {
			// A failure clears the quote; total and error are never
			// shown side by side.
			r.apply(QuoteResult{Err: err})
			return
		}
		r.apply(QuoteResult{Quote: quote})
	})
}

// Stop cancels any pending recomputation.
func (r *QuoteRecomputer) Stop() {
	r.sched.Stop()
}
