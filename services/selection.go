package services

import "totalhub-web/models"

// SelectionChange is one UI-level edit to the pricing selection. Nil fields
// are untouched; the reducer enforces the invariants so handlers and tests
// never juggle interdependent flags directly.
type SelectionChange struct {
	Residency    *string
	ResidentCard *bool
	UseLoyalty   *bool
	LoyaltyTier  *string
}

// ApplySelection is a pure reducer over PricingSelection.
//
// Invariants enforced:
//   - resident and loyalty are mutually exclusive: choosing resident clears
//     any loyalty state (idempotent);
//   - a loyalty tier implies the card is in use and the residency is
//     non-resident;
//   - clearing the card clears the tier with it.
func ApplySelection(current models.PricingSelection, change SelectionChange) models.PricingSelection {
	next := current

	if change.Residency != nil {
		next.Residency = *change.Residency
		if next.Residency != models.ResidencyNonResident {
			next.UseLoyaltyCard = false
			next.LoyaltyTier = models.LoyaltyNone
		}
	}

	if change.ResidentCard != nil {
		next.ResidentCard = *change.ResidentCard
	}

	if change.UseLoyalty != nil {
		if *change.UseLoyalty && next.Residency == models.ResidencyNonResident {
			next.UseLoyaltyCard = true
		} else {
			next.UseLoyaltyCard = false
			next.LoyaltyTier = models.LoyaltyNone
		}
	}

	if change.LoyaltyTier != nil {
		tier := *change.LoyaltyTier
		switch {
		case tier == models.LoyaltyNone:
			next.UseLoyaltyCard = false
			next.LoyaltyTier = models.LoyaltyNone
		case next.Residency == models.ResidencyNonResident:
			// Picking a tier from the discount modal turns the card on.
			next.UseLoyaltyCard = true
			next.LoyaltyTier = tier
		}
	}

	return next
}

// ValidateSelection reports whether the selection is complete enough to
// quote: a residency must be chosen, and a toggled-on loyalty card must
// have a tier.
func ValidateSelection(sel models.PricingSelection) error {
	if sel.Residency != models.ResidencyResident && sel.Residency != models.ResidencyNonResident {
		return ErrIncompleteSelection
	}
	if sel.Residency == models.ResidencyNonResident && sel.UseLoyaltyCard && sel.LoyaltyTier == models.LoyaltyNone {
		return ErrIncompleteSelection
	}
	return nil
}
