// Package aggregate computes the dashboard's metrics over a filtered view:
// scalar KPIs and the per-purpose grouped default rate. Everything is a
// single-pass scan with sum-and-count accumulation.
package aggregate

import (
	"math"

	"github.com/mam276/loan-default-dashboard/internal/filter"
	"github.com/mam276/loan-default-dashboard/internal/model"
)

// Count returns the number of records in the view; 0 for an empty view.
func Count(v filter.View) int { return v.Len() }

// DefaultRate returns the mean of loan_status over the view, a fraction in
// [0, 1]. An empty view yields NaN; callers render that as "no data" and
// never coerce it to zero.
func DefaultRate(v filter.View) float64 {
	n := v.Len()
	if n == 0 {
		return math.NaN()
	}
	sum := 0
	for i := 0; i < n; i++ {
		sum += v.At(i).Defaulted
	}
	return float64(sum) / float64(n)
}

// Mean returns the arithmetic mean of a numeric column over the view.
// Empty views and unknown columns yield NaN.
func Mean(v filter.View, col string) float64 {
	n := v.Len()
	if n == 0 {
		return math.NaN()
	}
	var sum float64
	for i := 0; i < n; i++ {
		val, ok := v.At(i).NumericField(col)
		if !ok {
			return math.NaN()
		}
		sum += val
	}
	return sum / float64(n)
}

// GroupRate is the mean outcome for one value of a categorical column.
type GroupRate struct {
	Key   string  `json:"key"`
	Rate  float64 `json:"rate"`  // fraction in [0, 1]
	Count int     `json:"count"` // rows contributing to the rate
}

// PurposeRate is the mean outcome for one loan purpose present in a view.
type PurposeRate struct {
	Purpose string  `json:"purpose"`
	Rate    float64 `json:"rate"`  // fraction in [0, 1]
	Count   int     `json:"count"` // rows contributing to the rate
}

// GroupedDefaultRate groups the view by a categorical column and returns
// the mean outcome per value, in first-seen order for stable chart
// ordering. Values with zero rows in the view are simply absent, never
// reported as 0 or NaN. Returns nil for a non-categorical column.
func GroupedDefaultRate(v filter.View, col string) []GroupRate {
	type acc struct {
		sum   int
		count int
	}
	groups := make(map[string]*acc)
	var order []string

	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		key, ok := categorical(r, col)
		if !ok {
			return nil
		}
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
			order = append(order, key)
		}
		a.sum += r.Defaulted
		a.count++
	}

	out := make([]GroupRate, 0, len(order))
	for _, key := range order {
		a := groups[key]
		out = append(out, GroupRate{
			Key:   key,
			Rate:  float64(a.sum) / float64(a.count),
			Count: a.count,
		})
	}
	return out
}

// RateByPurpose is GroupedDefaultRate over loan_intent, the grouping the
// dashboard's bar chart uses.
func RateByPurpose(v filter.View) []PurposeRate {
	groups := GroupedDefaultRate(v, model.ColPurpose)
	out := make([]PurposeRate, len(groups))
	for i, g := range groups {
		out[i] = PurposeRate{Purpose: g.Key, Rate: g.Rate, Count: g.Count}
	}
	return out
}

func categorical(r model.Record, col string) (string, bool) {
	switch col {
	case model.ColPurpose:
		return r.Purpose, true
	case model.ColEducation:
		return r.Education, true
	}
	return "", false
}
