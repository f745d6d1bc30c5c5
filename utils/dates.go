package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a calendar day with no time component. The time portion
// of incoming ISO timestamps is ignored.
func ParseDate(s string) (time.Time, error) {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NightsBetween expands [from, to) to one entry per night. Stay ranges are
// end-exclusive: the checkout day is not a night.
func NightsBetween(from, to time.Time) []string {
	if !to.After(from) {
		return nil
	}
	out := make([]string, 0, int(to.Sub(from).Hours()/24))
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out
}

// DaysInclusive expands [from, to] to one entry per day. Bulk day-price
// ranges include the end date, unlike Stay ranges.
func DaysInclusive(from, to time.Time) []string {
	if to.Before(from) {
		return nil
	}
	out := make([]string, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out
}
