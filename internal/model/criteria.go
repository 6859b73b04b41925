package model

import (
	"fmt"
	"strings"
)

// StatusFilter selects rows by loan outcome.
type StatusFilter string

const (
	StatusAll         StatusFilter = "all"
	StatusDefaults    StatusFilter = "defaults"
	StatusNonDefaults StatusFilter = "non_defaults"
)

// ParseStatusFilter maps user input to a StatusFilter.
// Accepts the canonical values plus the dashboard's display labels.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "defaults", "defaults_only", "defaults only":
		return StatusDefaults, nil
	case "non_defaults", "non-defaults", "non_defaults_only", "non-defaults only":
		return StatusNonDefaults, nil
	}
	return "", fmt.Errorf("unknown loan status filter: %q (expected all, defaults, non_defaults)", s)
}

// Matches reports whether a loan_status value passes the filter.
func (s StatusFilter) Matches(defaulted int) bool {
	switch s {
	case StatusDefaults:
		return defaulted == 1
	case StatusNonDefaults:
		return defaulted == 0
	default:
		return true
	}
}

// Range is an inclusive numeric interval [Min, Max].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, inclusive.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Inverted reports whether Min exceeds Max. An inverted range matches
// nothing; the filter engine treats it as an empty result, not an error.
func (r Range) Inverted() bool { return r.Min > r.Max }

// Clamp narrows the range to the given bounds.
func (r Range) Clamp(bounds Range) Range {
	if r.Min < bounds.Min {
		r.Min = bounds.Min
	}
	if r.Max > bounds.Max {
		r.Max = bounds.Max
	}
	return r
}

// Criteria is the value object describing one filter evaluation: outcome
// status, inclusive amount and credit ranges, and the selected purpose set.
// An empty Purposes slice means "match nothing", not "match all". Callers
// that want everything pass every known purpose.
type Criteria struct {
	Status   StatusFilter `json:"status"`
	Amount   Range        `json:"amount"`
	Credit   Range        `json:"credit"`
	Purposes []string     `json:"purposes"`
}

// OpenCriteria builds criteria that match every record of the dataset:
// status all, ranges at the observed data bounds, every known purpose.
func OpenCriteria(d *Dataset) Criteria {
	return Criteria{
		Status:   StatusAll,
		Amount:   d.AmountBounds(),
		Credit:   d.CreditBounds(),
		Purposes: d.Purposes(),
	}
}
