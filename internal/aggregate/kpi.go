package aggregate

import (
	"math"
	"sort"

	"github.com/mam276/loan-default-dashboard/internal/filter"
	"github.com/mam276/loan-default-dashboard/internal/model"
)

// KPIs are the four metric cards at the top of the dashboard. Rates and
// means are NaN when the view is empty.
type KPIs struct {
	TotalLoans      int     `json:"total_loans"`
	DefaultRate     float64 `json:"default_rate"`      // fraction in [0, 1]
	AvgInterestRate float64 `json:"avg_interest_rate"` // percent
	AvgIncome       float64 `json:"avg_income"`
}

// ComputeKPIs evaluates the metric cards over a view.
func ComputeKPIs(v filter.View) KPIs {
	return KPIs{
		TotalLoans:      Count(v),
		DefaultRate:     DefaultRate(v),
		AvgInterestRate: Mean(v, model.ColInterestRate),
		AvgIncome:       Mean(v, model.ColIncome),
	}
}

// Stats is a descriptive-statistics summary of one numeric column,
// equivalent to what the data explorer's column statistics panel shows.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics for a numeric column over a
// view. ok is false for unknown or non-numeric columns. All fields except
// Count are NaN on an empty view.
func Describe(v filter.View, col string) (Stats, bool) {
	n := v.Len()
	if n == 0 {
		if _, known := (model.Record{}).NumericField(col); !known {
			return Stats{}, false
		}
		nan := math.NaN()
		return Stats{Mean: nan, Std: nan, Min: nan, Q25: nan, Median: nan, Q75: nan, Max: nan}, true
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		val, ok := v.At(i).NumericField(col)
		if !ok {
			return Stats{}, false
		}
		values[i] = val
	}
	sort.Float64s(values)

	var sum float64
	for _, val := range values {
		sum += val
	}
	mean := sum / float64(n)

	std := math.NaN()
	if n > 1 {
		var sq float64
		for _, val := range values {
			d := val - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1)) // sample standard deviation
	}

	return Stats{
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    values[0],
		Q25:    quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q75:    quantile(values, 0.75),
		Max:    values[n-1],
	}, true
}

// quantile interpolates linearly between order statistics of sorted values.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
