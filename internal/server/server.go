// Package server exposes the dashboard over HTTP: KPI and chart endpoints
// recomputed per request from query-string filters, the data explorer, the
// auxiliary artifacts, and CSV/text downloads. The browser frontend is the
// presentation layer; this API is the boundary the core exposes to it.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/mam276/loan-default-dashboard/internal/dataset"
	"github.com/mam276/loan-default-dashboard/internal/llm"
	"github.com/mam276/loan-default-dashboard/internal/model"
)

// Server serves the dashboard API over a loaded session. The session is
// read-only, so concurrent requests share it without locking.
type Server struct {
	sess     *dataset.Session
	cfg      model.ServerConfig
	narrator *llm.Narrator
	logger   *slog.Logger
	router   chi.Router
}

// New creates a Server for the given session. narrator may be nil.
func New(sess *dataset.Session, cfg model.ServerConfig, narrator *llm.Narrator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		sess:     sess,
		cfg:      cfg,
		narrator: narrator,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	s.logger.Info("dashboard server listening", "addr", s.cfg.Addr, "records", s.sess.Dataset.Len())
	return srv.ListenAndServe()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if s.cfg.RatePerSecond > 0 {
		r.Use(RateLimit(s.cfg.RatePerSecond, s.cfg.RateBurst))
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/info", s.handleInfo)
		r.Get("/kpis", s.handleKPIs)
		r.Get("/rates-by-purpose", s.handleRatesByPurpose)
		r.Get("/report", s.handleReport)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/default-rate", s.handleChartDefaultRate)
			r.Get("/credit-distribution", s.handleChartCreditDistribution)
			r.Get("/income-vs-amount", s.handleChartIncomeVsAmount)
		})

		r.Route("/records", func(r chi.Router) {
			r.Get("/", s.handleRecords)
			r.Get("/stats", s.handleRecordStats)
		})

		r.Route("/artifacts", func(r chi.Router) {
			r.Get("/summary", s.handleArtifactSummary)
			r.Get("/default-rates", s.handleArtifactDefaultRates)
			r.Get("/report", s.handleArtifactReport)
		})
	})

	r.Route("/download", func(r chi.Router) {
		r.Get("/dataset.csv", s.handleDownloadDataset)
		r.Get("/default-rates.csv", s.handleDownloadRates)
		r.Get("/report.txt", s.handleDownloadReport)
	})

	return r
}
