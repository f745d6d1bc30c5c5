package models

import "time"

const (
	ResidencyResident    = "resident"
	ResidencyNonResident = "non-resident"
)

const (
	PaymentCash   = "cash"
	PaymentDebit  = "debit"
	PaymentCredit = "credit"
	// PaymentCard is the generic non-discounted electronic method.
	PaymentCard = "card"
)

// Loyalty tiers reuse the payment method names: a tier is only valid when
// paid with its matching method.
const (
	LoyaltyNone   = ""
	LoyaltyCash   = "cash"
	LoyaltyDebit  = "debit"
	LoyaltyCredit = "credit"
)

// Stay is the request-scoped date range and guest count. To is exclusive:
// nights = To - From in days.
type Stay struct {
	RoomID uint
	From   time.Time
	To     time.Time
	Guests int
}

func (s Stay) Nights() int {
	if s.To.Before(s.From) {
		return 0
	}
	return int(s.To.Sub(s.From).Hours() / 24)
}

// PricingSelection is the guest's residency/payment choice. Residents have
// no loyalty path; selecting resident must clear any loyalty state (the
// reducer in services enforces this).
type PricingSelection struct {
	Residency      string `json:"residency"`
	ResidentCard   bool   `json:"residentCard"`
	UseLoyaltyCard bool   `json:"useLoyaltyCard"`
	LoyaltyTier    string `json:"loyaltyTier"`
}

func (s PricingSelection) IsResident() bool {
	return s.Residency == ResidencyResident
}

// PaymentMethod derives the method sent upstream. Residents pay card or
// cash depending on the chosen resident option; non-residents pay the
// loyalty tier's method when one is active, else card.
func (s PricingSelection) PaymentMethod() string {
	if s.IsResident() {
		if s.ResidentCard {
			return PaymentCard
		}
		return PaymentCash
	}
	if s.UseLoyaltyCard && s.LoyaltyTier != LoyaltyNone {
		return s.LoyaltyTier
	}
	return PaymentCard
}

// DiscountLabel returns the on-screen percentage for a loyalty tier. These
// are static display copy; the authoritative total always comes from the
// upstream quote and is never recomputed from these values.
func DiscountLabel(tier string) string {
	switch tier {
	case LoyaltyCash:
		return "15%"
	case LoyaltyDebit:
		return "10%"
	case LoyaltyCredit:
		return "5%"
	}
	return ""
}

// PriceBreakdownLine is one night of a quote. FinalPrice arrives from
// upstream already multiplied by guest count.
type PriceBreakdownLine struct {
	Date       string  `json:"date"`
	FinalPrice float64 `json:"finalPrice"`
}

// UnitPrice is the per-guest display price. ok is false when guests is
// zero (shown as "n/a", never divided).
func (l PriceBreakdownLine) UnitPrice(guests int) (float64, bool) {
	if guests <= 0 {
		return 0, false
	}
	return l.FinalPrice / float64(guests), true
}

// ReservationQuote is never persisted; it is recomputed on every input
// change.
type ReservationQuote struct {
	Total     float64              `json:"total"`
	Breakdown []PriceBreakdownLine `json:"breakdown"`
}
