// Package chart builds render-ready chart payloads for the dashboard
// frontend: the per-purpose default-rate bar chart, the credit-score
// histogram split by outcome, and the income-vs-amount scatter.
package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mam276/loan-default-dashboard/internal/aggregate"
	"github.com/mam276/loan-default-dashboard/internal/filter"
	"github.com/mam276/loan-default-dashboard/internal/model"
)

// Config describes one chart for the frontend to render.
type Config struct {
	ChartType  string   `json:"chart_type"` // "bar", "histogram", "scatter"
	Title      string   `json:"title"`
	XAxis      string   `json:"x_axis,omitempty"`
	YAxis      string   `json:"y_axis,omitempty"`
	Series     []Series `json:"series"`
	ShowLegend bool     `json:"show_legend"`
}

// Series is a named data series within a chart.
type Series struct {
	Name  string  `json:"name"`
	Color string  `json:"color,omitempty"`
	Data  []Point `json:"data"`
}

// Point is one data point. Bar and histogram points use Label/Value;
// scatter points use X/Y (plus Size and Meta for hover detail).
// Value, X and Y are never omitted: a 0% rate or an empty bin is a
// meaningful zero the frontend must receive.
type Point struct {
	Label string            `json:"label,omitempty"`
	Value float64           `json:"value"`
	X     float64           `json:"x"`
	Y     float64           `json:"y"`
	Size  float64           `json:"size,omitempty"`
	Meta  map[string]string `json:"meta,omitempty"`
}

const (
	colorRepaid    = "#10B981"
	colorDefaulted = "#EF4444"
)

// DefaultRateByPurpose builds the bar chart of default rate (%) per loan
// purpose, in the view's first-seen purpose order. Returns nil for an empty
// view; the frontend renders "no data for these filters" instead.
func DefaultRateByPurpose(v filter.View) *Config {
	rates := aggregate.RateByPurpose(v)
	if len(rates) == 0 {
		return nil
	}

	points := make([]Point, 0, len(rates))
	for _, r := range rates {
		points = append(points, Point{Label: r.Purpose, Value: round2(r.Rate * 100)})
	}

	return &Config{
		ChartType: "bar",
		Title:     "Default Rate by Loan Purpose",
		XAxis:     "Loan Purpose",
		YAxis:     "Default Rate (%)",
		Series:    []Series{{Name: "Default Rate (%)", Data: points}},
	}
}

// CreditScoreDistribution builds the credit-score histogram split by loan
// status: one series of bin counts for repaid loans, one for defaults.
// Bins are equal-width over the observed score range.
func CreditScoreDistribution(v filter.View, bins int) *Config {
	if v.Len() == 0 {
		return nil
	}
	if bins <= 0 {
		bins = 30
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < v.Len(); i++ {
		s := float64(v.At(i).CreditScore)
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	width := (hi - lo) / float64(bins)
	if width == 0 {
		// All scores identical: a single bin holds everything.
		bins, width = 1, 1
	}

	repaid := make([]int, bins)
	defaulted := make([]int, bins)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		b := int((float64(r.CreditScore) - lo) / width)
		if b >= bins {
			b = bins - 1 // the max value lands in the last bin
		}
		if r.Defaulted == 1 {
			defaulted[b]++
		} else {
			repaid[b]++
		}
	}

	labels := make([]string, bins)
	for b := 0; b < bins; b++ {
		labels[b] = fmt.Sprintf("%d-%d", int(lo+float64(b)*width), int(lo+float64(b+1)*width))
	}

	toPoints := func(counts []int) []Point {
		points := make([]Point, bins)
		for b, c := range counts {
			points[b] = Point{Label: labels[b], Value: float64(c)}
		}
		return points
	}

	return &Config{
		ChartType: "histogram",
		Title:     "Credit Score by Loan Status",
		XAxis:     "Credit Score",
		YAxis:     "Count",
		Series: []Series{
			{Name: "Repaid", Color: colorRepaid, Data: toPoints(repaid)},
			{Name: "Defaulted", Color: colorDefaulted, Data: toPoints(defaulted)},
		},
		ShowLegend: true,
	}
}

// IncomeVsLoanAmount builds the scatter of applicant income against loan
// amount, one series per outcome, sized by interest rate and carrying the
// hover fields the dashboard shows (age, education, credit score).
func IncomeVsLoanAmount(v filter.View) *Config {
	if v.Len() == 0 {
		return nil
	}

	var repaid, defaulted []Point
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		p := Point{
			X:    r.Income,
			Y:    r.LoanAmount,
			Size: r.InterestRate,
			Meta: map[string]string{
				model.ColAge:         strconv.FormatFloat(r.Age, 'f', -1, 64),
				model.ColEducation:   r.Education,
				model.ColCreditScore: strconv.Itoa(r.CreditScore),
			},
		}
		if r.Defaulted == 1 {
			defaulted = append(defaulted, p)
		} else {
			repaid = append(repaid, p)
		}
	}

	var series []Series
	if len(repaid) > 0 {
		series = append(series, Series{Name: "Repaid", Color: colorRepaid, Data: repaid})
	}
	if len(defaulted) > 0 {
		series = append(series, Series{Name: "Defaulted", Color: colorDefaulted, Data: defaulted})
	}

	return &Config{
		ChartType:  "scatter",
		Title:      "Income vs Loan Amount",
		XAxis:      "Applicant Income",
		YAxis:      "Loan Amount",
		Series:     series,
		ShowLegend: true,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
