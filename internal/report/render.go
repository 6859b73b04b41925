package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Renderer writes an AnalysisReport to JSON and Markdown files.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a Renderer. The footer can be disabled for embedding
// the Markdown output elsewhere.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(rep *AnalysisReport, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a human-readable Markdown document.
func (r *Renderer) RenderMarkdown(rep *AnalysisReport, path string) error {
	var b strings.Builder

	b.WriteString("# Loan Default Analysis Report\n\n")
	fmt.Fprintf(&b, "- Source: `%s`\n", rep.Source)
	fmt.Fprintf(&b, "- Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Filtered Metrics\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total Loans | %d |\n", rep.KPIs.TotalLoans)
	fmt.Fprintf(&b, "| Default Rate | %s |\n", FormatRate(rep.KPIs.DefaultRate))
	fmt.Fprintf(&b, "| Avg Interest Rate | %s |\n", FormatMean(rep.KPIs.AvgInterestRate, "", "%"))
	fmt.Fprintf(&b, "| Avg Income | %s |\n\n", FormatMean(rep.KPIs.AvgIncome, "$", ""))

	if len(rep.ByPurpose) > 0 {
		b.WriteString("## Default Rate by Loan Purpose\n\n")
		b.WriteString("| Loan Purpose | Default Rate (%) | Loans |\n|---|---|---|\n")
		for _, p := range rep.ByPurpose {
			fmt.Fprintf(&b, "| %s | %.2f | %d |\n", p.Purpose, p.Rate*100, p.Count)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("## Default Rate by Loan Purpose\n\nNo data for these filters.\n\n")
	}

	b.WriteString("## Key Insights\n\n")
	for _, line := range rep.Insights {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n")

	if rep.Narrative != "" {
		b.WriteString("## Narrative Summary\n\n")
		b.WriteString(strings.TrimSpace(rep.Narrative))
		b.WriteString("\n\n")
	}

	if rep.ReportText != "" {
		b.WriteString("## Upstream Analysis Report\n\n```\n")
		b.WriteString(strings.TrimSpace(rep.ReportText))
		b.WriteString("\n```\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by loandash.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// PrintSummary writes the KPI summary to stdout for the summary command.
func PrintSummary(rep *AnalysisReport) {
	fmt.Printf("Total loans:        %d\n", rep.KPIs.TotalLoans)
	fmt.Printf("Default rate:       %s\n", FormatRate(rep.KPIs.DefaultRate))
	fmt.Printf("Avg interest rate:  %s\n", FormatMean(rep.KPIs.AvgInterestRate, "", "%"))
	fmt.Printf("Avg income:         %s\n", FormatMean(rep.KPIs.AvgIncome, "$", ""))

	if len(rep.ByPurpose) > 0 {
		fmt.Println("\nDefault rate by purpose:")
		for _, p := range rep.ByPurpose {
			fmt.Printf("  %-20s %6.2f%%  (%d loans)\n", p.Purpose, p.Rate*100, p.Count)
		}
	}
}
