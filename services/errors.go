package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStay         = errors.New("invalid_stay")
	ErrIncompleteSelection = errors.New("incomplete_selection")
	ErrInvalidRange        = errors.New("invalid_range")
	// ErrConflictDetected is a branch point, not a failure: the caller must
	// come back with an explicit overwrite / fill-gaps / cancel decision.
	ErrConflictDetected   = errors.New("conflict_detected")
	ErrMissingRate        = errors.New("missing_rate")
	ErrEmptyUpdate        = errors.New("empty_update")
	ErrBackendUnavailable = errors.New("backend_unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
)

// MissingRateError names the first unpriced night found in a stay range.
// An administrator must populate every night before the room can be quoted.
type MissingRateError struct {
	Date string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("missing_rate: no price for %s", e.Date)
}

func (e *MissingRateError) Unwrap() error { return ErrMissingRate }

// BackendError carries a 4xx message from the upstream backend verbatim.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}
