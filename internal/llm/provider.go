package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mam276/loan-default-dashboard/internal/model"
	"github.com/mam276/loan-default-dashboard/internal/report"
)

// Provider is an LLM backend capable of narrating an analysis report.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Narrate generates a short narrative for the report.
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)

	// IsAvailable checks the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// NarrateRequest is the input for narration.
type NarrateRequest struct {
	// Report holds the computed metrics to narrate.
	Report report.AnalysisReport

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model overrides the configured model when non-empty.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// NarrateResponse is the narration output.
type NarrateResponse struct {
	Narrative  string
	Model      string
	TokensUsed int
}

// Config holds narrator configuration.
type Config struct {
	Provider  string // "openai", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string // custom endpoint, required for ollama
	Timeout   int    // seconds
	MaxTokens int
}

// DefaultConfig returns narrator defaults: disabled.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 600,
	}
}

// ConfigFromModel converts the application LLM config.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// BuildPrompt constructs the default narration prompt. The model is given
// only the computed numbers and instructed not to invent any others; the
// narrative describes the metrics, it never replaces them.
func BuildPrompt(rep report.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(`You are writing a short narrative for a loan-default analytics report.

RULES:
1. Use ONLY the numbers provided below. Do not invent, extrapolate, or estimate any figure.
2. Describe what the metrics show; do not give lending advice.
3. If a metric reads "n/a", say the filtered selection matched no records.

Metrics for the current filter selection:
`)
	fmt.Fprintf(&b, "- Total loans: %d\n", rep.KPIs.TotalLoans)
	fmt.Fprintf(&b, "- Default rate: %s\n", report.FormatRate(rep.KPIs.DefaultRate))
	fmt.Fprintf(&b, "- Average interest rate: %s\n", report.FormatMean(rep.KPIs.AvgInterestRate, "", "%"))
	fmt.Fprintf(&b, "- Average income: %s\n", report.FormatMean(rep.KPIs.AvgIncome, "$", ""))

	if len(rep.ByPurpose) > 0 {
		b.WriteString("\nDefault rate by loan purpose:\n")
		for _, p := range rep.ByPurpose {
			fmt.Fprintf(&b, "- %s: %.2f%% over %d loans\n", p.Purpose, p.Rate*100, p.Count)
		}
	}

	if len(rep.Insights) > 0 {
		b.WriteString("\nFull-dataset context:\n")
		for _, line := range rep.Insights {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	b.WriteString("\nWrite a 3-4 sentence narrative summary of these metrics.")
	return b.String()
}
