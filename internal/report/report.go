// Package report assembles the analysis report: KPIs over the filtered
// view, per-purpose rates, the key-insight lines computed over the full
// dataset, and whatever precomputed artifacts are available.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/mam276/loan-default-dashboard/internal/aggregate"
	"github.com/mam276/loan-default-dashboard/internal/dataset"
	"github.com/mam276/loan-default-dashboard/internal/filter"
	"github.com/mam276/loan-default-dashboard/internal/model"
)

// AnalysisReport is the complete report payload.
type AnalysisReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`

	Criteria  model.Criteria          `json:"criteria"`
	KPIs      aggregate.KPIs          `json:"kpis"`
	ByPurpose []aggregate.PurposeRate `json:"by_purpose"`

	Insights  []string        `json:"insights"` // computed over the full dataset
	Artifacts model.Artifacts `json:"artifacts"`

	ReportText string `json:"report_text,omitempty"` // precomputed upstream report
	Narrative  string `json:"narrative,omitempty"`   // optional LLM narration
}

// Build assembles the report for a session and a filtered view.
func Build(sess *dataset.Session, v filter.View, criteria model.Criteria) *AnalysisReport {
	return &AnalysisReport{
		GeneratedAt: time.Now().UTC(),
		Source:      sess.Dataset.Source,
		Criteria:    criteria,
		KPIs:        aggregate.ComputeKPIs(v),
		ByPurpose:   aggregate.RateByPurpose(v),
		Insights:    Insights(sess.Dataset),
		Artifacts:   sess.Artifacts(),
		ReportText:  sess.Report,
	}
}

// Insights produces the key-insight lines shown on the report tab. They
// always describe the full dataset, not the filtered view.
func Insights(ds *model.Dataset) []string {
	all := filter.All(ds)
	if all.Len() == 0 {
		return []string{"No records loaded."}
	}
	return []string{
		fmt.Sprintf("Overall default rate: %.1f%%", aggregate.DefaultRate(all)*100),
		fmt.Sprintf("Total loans analyzed: %d", all.Len()),
		fmt.Sprintf("Average interest rate: %.1f%%", aggregate.Mean(all, model.ColInterestRate)),
		fmt.Sprintf("Average credit score: %.0f", aggregate.Mean(all, model.ColCreditScore)),
		fmt.Sprintf("Average loan amount: $%.0f", aggregate.Mean(all, model.ColLoanAmount)),
	}
}

// FormatRate formats a fractional rate as a percentage, rendering the
// empty-view NaN case distinctly instead of pretending it is zero.
func FormatRate(rate float64) string {
	if math.IsNaN(rate) {
		return "n/a (no matching records)"
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}

// FormatMean formats a mean with the given prefix/suffix, handling NaN the
// same way as FormatRate.
func FormatMean(v float64, prefix, suffix string) string {
	if math.IsNaN(v) {
		return "n/a (no matching records)"
	}
	return fmt.Sprintf("%s%.1f%s", prefix, v, suffix)
}
