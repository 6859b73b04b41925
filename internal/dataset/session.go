package dataset

import (
	"fmt"
	"log/slog"

	"github.com/mam276/loan-default-dashboard/internal/model"
)

// Session holds everything a dashboard session works with: the primary
// Dataset plus whichever auxiliary artifacts loaded. It is constructed once,
// read-only afterwards, and safe to share across concurrent filter and
// aggregate calls.
type Session struct {
	Dataset *model.Dataset

	Summary      *model.SummaryTable    // nil when unavailable
	DefaultRates []model.PurposeRateRow // nil when unavailable
	Report       string                 // "" when unavailable
}

// NewSession loads the primary dataset and the auxiliary artifacts.
// A primary load failure is fatal: there is no meaningful view without the
// dataset. Auxiliary failures are logged and the feature disabled.
func NewSession(loader *Loader, cfg model.DataConfig, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ds, err := loader.LoadDataset(cfg.DatasetPath())
	if err != nil {
		return nil, fmt.Errorf("load primary dataset: %w", err)
	}

	sess := &Session{Dataset: ds}

	if path := cfg.SummaryPath(); path != "" {
		summary, err := loader.LoadSummary(path)
		if err != nil {
			logger.Warn("summary statistics unavailable", "path", path, "error", err)
		} else {
			sess.Summary = summary
		}
	}

	if path := cfg.RatesPath(); path != "" {
		rates, err := loader.LoadDefaultRates(path)
		if err != nil {
			logger.Warn("default-rates table unavailable", "path", path, "error", err)
		} else {
			sess.DefaultRates = rates
		}
	}

	if path := cfg.ReportPath(); path != "" {
		report, err := loader.LoadReport(path)
		if err != nil {
			logger.Warn("analysis report unavailable", "path", path, "error", err)
		} else {
			sess.Report = report
		}
	}

	return sess, nil
}

// Artifacts reports which auxiliary artifacts are available.
func (s *Session) Artifacts() model.Artifacts {
	return model.Artifacts{
		Summary:      s.Summary != nil,
		DefaultRates: s.DefaultRates != nil,
		Report:       s.Report != "",
	}
}

// OpenCriteria returns criteria matching the whole dataset, the state the
// dashboard starts in before the user narrows anything.
func (s *Session) OpenCriteria() model.Criteria {
	return model.OpenCriteria(s.Dataset)
}
