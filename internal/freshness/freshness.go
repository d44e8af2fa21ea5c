// Package freshness classifies pantry items by how many calendar days remain
// until their expiry date.
package freshness

import (
	"math"
	"strings"
	"time"
)

// Status is the derived freshness classification of an item.
type Status string

const (
	StatusFine         Status = "fine"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// SoonThresholdDays is the last day offset (inclusive) still classified as expiring soon.
const SoonThresholdDays = 7

// DateLayout is the canonical storage and wire format of expiry dates.
const DateLayout = "2006-01-02"

var acceptedLayouts = []string{
	DateLayout,
	time.RFC3339,
	"02/01/2006",
}

// Valid reports whether s names a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusFine, StatusExpiringSoon, StatusExpired:
		return true
	}
	return false
}

// ParseDate parses an expiry date string into midnight of that date in loc.
// The second result is false for empty or unparsable input.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range acceptedLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

// Normalize returns the canonical form of an expiry date, or "" when the
// value cannot be parsed. Unparsable dates are treated as no expiry.
func Normalize(value string) string {
	t, ok := ParseDate(value, time.UTC)
	if !ok {
		return ""
	}
	return t.Format(DateLayout)
}

// DaysUntil returns the number of calendar days from now to expiry, negative
// once the date has passed. Both values are compared as dates in now's location.
func DaysUntil(expiry, now time.Time) int {
	loc := now.Location()
	ey, em, ed := expiry.Date()
	ny, nm, nd := now.Date()
	e := time.Date(ey, em, ed, 0, 0, 0, 0, loc)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)
	// Rounding absorbs the 23h/25h days around DST changes.
	return int(math.Round(e.Sub(n).Hours() / 24))
}

// ClassifyDays maps a day difference onto a status.
func ClassifyDays(days int) Status {
	switch {
	case days < 0:
		return StatusExpired
	case days <= SoonThresholdDays:
		return StatusExpiringSoon
	default:
		return StatusFine
	}
}

// Classify returns the status of an item with the given expiry date string
// as of now. Items without a parsable expiry date are fine.
func Classify(expiry string, now time.Time) Status {
	t, ok := ParseDate(expiry, now.Location())
	if !ok {
		return StatusFine
	}
	return ClassifyDays(DaysUntil(t, now))
}

// Days returns the day difference for a parsable expiry date.
func Days(expiry string, now time.Time) (int, bool) {
	t, ok := ParseDate(expiry, now.Location())
	if !ok {
		return 0, false
	}
	return DaysUntil(t, now), true
}

// Transition describes a status change between two consecutive days.
type Transition struct {
	From Status
	To   Status
}

// Changed reports whether the status differs between the two days.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Notifiable reports whether the change is one users are told about:
// entering the expiring-soon window or becoming expired.
func (t Transition) Notifiable() bool {
	return t.Changed() && t.To != StatusFine
}

// DailyTransition compares yesterday's status with today's for one expiry date.
func DailyTransition(expiry string, now time.Time) Transition {
	return Transition{
		From: Classify(expiry, now.AddDate(0, 0, -1)),
		To:   Classify(expiry, now),
	}
}
