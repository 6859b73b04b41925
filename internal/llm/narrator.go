package llm

import (
	"context"
	"fmt"

	"github.com/mam276/loan-default-dashboard/internal/report"
)

// Narrator wraps a provider and attaches a narrative to analysis reports.
// Narration is strictly additive: it runs after the metrics are computed
// and a failure never affects them.
type Narrator struct {
	provider Provider
	config   Config
}

// NewNarrator creates a Narrator from configuration. Returns an error for a
// misconfigured provider; a disabled configuration yields a Narrator whose
// IsEnabled is false.
func NewNarrator(config Config) (*Narrator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Narrator{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (n *Narrator) IsEnabled() bool {
	return n != nil && n.provider != nil
}

// Narrate fills rep.Narrative in place. No-op when disabled.
func (n *Narrator) Narrate(ctx context.Context, rep *report.AnalysisReport) error {
	if !n.IsEnabled() {
		return nil
	}

	resp, err := n.provider.Narrate(ctx, NarrateRequest{Report: *rep})
	if err != nil {
		return fmt.Errorf("narrate report: %w", err)
	}

	rep.Narrative = resp.Narrative
	return nil
}
