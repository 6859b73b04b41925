package server

import (
	"net/http"
	"strconv"

	"github.com/mam276/loan-default-dashboard/internal/aggregate"
	"github.com/mam276/loan-default-dashboard/internal/chart"
	"github.com/mam276/loan-default-dashboard/internal/dataset"
	"github.com/mam276/loan-default-dashboard/internal/filter"
	"github.com/mam276/loan-default-dashboard/internal/model"
	"github.com/mam276/loan-default-dashboard/internal/report"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, r, map[string]string{"status": "ok"})
}

// handleInfo serves the sidebar info box: record count, column count,
// overall default rate, load timestamp, plus the filter bounds the frontend
// needs to build its controls.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	ds := s.sess.Dataset
	all := filter.All(ds)

	respond(w, r, map[string]any{
		"total_records": ds.Len(),
		"columns":       len(model.Columns),
		"default_rate":  jsonFloat(aggregate.DefaultRate(all)),
		"loaded_at":     ds.LoadedAt,
		"amount_bounds": ds.AmountBounds(),
		"credit_bounds": ds.CreditBounds(),
		"purposes":      ds.Purposes(),
		"artifacts":     s.sess.Artifacts(),
	})
}

// filteredView resolves the request's filter criteria and applies them.
// Reports false after writing an error response when the query is bad.
func (s *Server) filteredView(w http.ResponseWriter, r *http.Request) (filter.View, model.Criteria, bool) {
	criteria, err := s.criteriaFromQuery(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return filter.View{}, model.Criteria{}, false
	}
	return filter.Apply(s.sess.Dataset, criteria), criteria, true
}

type kpiPayload struct {
	TotalLoans      int       `json:"total_loans"`
	DefaultRate     jsonFloat `json:"default_rate"`
	AvgInterestRate jsonFloat `json:"avg_interest_rate"`
	AvgIncome       jsonFloat `json:"avg_income"`
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	v, _, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	kpis := aggregate.ComputeKPIs(v)
	respond(w, r, kpiPayload{
		TotalLoans:      kpis.TotalLoans,
		DefaultRate:     jsonFloat(kpis.DefaultRate),
		AvgInterestRate: jsonFloat(kpis.AvgInterestRate),
		AvgIncome:       jsonFloat(kpis.AvgIncome),
	})
}

func (s *Server) handleRatesByPurpose(w http.ResponseWriter, r *http.Request) {
	v, _, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	respond(w, r, aggregate.RateByPurpose(v))
}

// handleReport serves the assembled analysis report, with optional LLM
// narration when ?narrate=1 and a narrator is configured.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	v, criteria, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	rep := report.Build(s.sess, v, criteria)

	if r.URL.Query().Get("narrate") == "1" && s.narrator.IsEnabled() {
		if err := s.narrator.Narrate(r.Context(), rep); err != nil {
			// Narration is additive; serve the report without it.
			s.logger.Warn("report narration failed", "error", err)
		}
	}

	respond(w, r, rep)
}

func (s *Server) handleChartDefaultRate(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, func(v filter.View) *chart.Config {
		return chart.DefaultRateByPurpose(v)
	})
}

func (s *Server) handleChartCreditDistribution(w http.ResponseWriter, r *http.Request) {
	bins := 30
	if raw := r.URL.Query().Get("bins"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			bins = n
		}
	}
	s.serveChart(w, r, func(v filter.View) *chart.Config {
		return chart.CreditScoreDistribution(v, bins)
	})
}

func (s *Server) handleChartIncomeVsAmount(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, func(v filter.View) *chart.Config {
		return chart.IncomeVsLoanAmount(v)
	})
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, build func(filter.View) *chart.Config) {
	v, _, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	cfg := build(v)
	if cfg == nil {
		// A valid zero-row outcome, not an error: the frontend shows its
		// "no data for these filters" state.
		respond(w, r, map[string]any{"empty": true})
		return
	}
	respond(w, r, cfg)
}

// handleRecords is the data explorer: filtered rows with optional column
// selection and offset/limit paging.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	v, _, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	columns := q["column"]
	if len(columns) == 0 {
		columns = model.Columns
	}
	for _, col := range columns {
		if _, _, known := (model.Record{}).Field(col); !known {
			respondError(w, r, http.StatusBadRequest, "bad_request", "unknown column: "+col)
			return
		}
	}

	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > s.cfg.MaxExplorerRows {
		limit = s.cfg.MaxExplorerRows
	}

	total := v.Len()
	rows := make([][]any, 0, limit)
	for i := offset; i < total && len(rows) < limit; i++ {
		rec := v.At(i)
		row := make([]any, len(columns))
		for j, col := range columns {
			switch col {
			case model.ColEducation:
				row[j] = rec.Education
			case model.ColPurpose:
				row[j] = rec.Purpose
			default:
				num, _ := rec.NumericField(col)
				row[j] = num
			}
		}
		rows = append(rows, row)
	}

	respond(w, r, map[string]any{
		"total":   total,
		"offset":  offset,
		"columns": columns,
		"rows":    rows,
	})
}

// handleRecordStats serves descriptive statistics for one numeric column
// over the filtered view.
func (s *Server) handleRecordStats(w http.ResponseWriter, r *http.Request) {
	col := r.URL.Query().Get("field")
	if col == "" {
		respondError(w, r, http.StatusBadRequest, "bad_request", "field parameter is required")
		return
	}

	v, _, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	stats, known := aggregate.Describe(v, col)
	if !known {
		respondError(w, r, http.StatusBadRequest, "bad_request", "not a numeric column: "+col)
		return
	}

	respond(w, r, map[string]any{
		"field":  col,
		"count":  stats.Count,
		"mean":   jsonFloat(stats.Mean),
		"std":    jsonFloat(stats.Std),
		"min":    jsonFloat(stats.Min),
		"q25":    jsonFloat(stats.Q25),
		"median": jsonFloat(stats.Median),
		"q75":    jsonFloat(stats.Q75),
		"max":    jsonFloat(stats.Max),
	})
}

func (s *Server) handleArtifactSummary(w http.ResponseWriter, r *http.Request) {
	if s.sess.Summary == nil {
		notAvailable(w, r, "summary statistics table")
		return
	}
	respond(w, r, s.sess.Summary)
}

func (s *Server) handleArtifactDefaultRates(w http.ResponseWriter, r *http.Request) {
	if s.sess.DefaultRates == nil {
		notAvailable(w, r, "default-rates table")
		return
	}
	respond(w, r, s.sess.DefaultRates)
}

func (s *Server) handleArtifactReport(w http.ResponseWriter, r *http.Request) {
	if s.sess.Report == "" {
		notAvailable(w, r, "analysis report")
		return
	}
	respond(w, r, map[string]string{"report": s.sess.Report})
}

// handleDownloadDataset streams the filtered dataset as CSV. With no filter
// parameters the criteria default to fully open, so this doubles as the
// full-dataset download.
func (s *Server) handleDownloadDataset(w http.ResponseWriter, r *http.Request) {
	v, _, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="loan_data_cleaned.csv"`)
	if err := dataset.WriteCSV(w, v); err != nil {
		s.logger.Error("dataset download failed", "error", err)
	}
}

func (s *Server) handleDownloadRates(w http.ResponseWriter, r *http.Request) {
	if s.sess.DefaultRates == nil {
		notAvailable(w, r, "default-rates table")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="default_rates_by_purpose.csv"`)
	if err := dataset.WriteRatesCSV(w, s.sess.DefaultRates); err != nil {
		s.logger.Error("rates download failed", "error", err)
	}
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	if s.sess.Report == "" {
		notAvailable(w, r, "analysis report")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="loan_analysis_report.txt"`)
	_, _ = w.Write([]byte(s.sess.Report))
}
