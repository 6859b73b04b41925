package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mam276/loan-default-dashboard/internal/model"
)

// criteriaFromQuery assembles well-formed FilterCriteria from the request
// query string. This is the presentation-layer duty the core delegates
// outward: absent parameters default to the full data bounds and all known
// purposes, and requested ranges are clamped to the observed bounds. An
// unparsable value is a bad request; unknown purposes are passed through
// and simply match nothing.
//
// Recognized parameters: status, amount_min, amount_max, credit_min,
// credit_max, purpose (repeatable), purposes=none (explicit empty set).
func (s *Server) criteriaFromQuery(r *http.Request) (model.Criteria, error) {
	q := r.URL.Query()
	ds := s.sess.Dataset

	status, err := model.ParseStatusFilter(q.Get("status"))
	if err != nil {
		return model.Criteria{}, err
	}

	amount, err := rangeFromQuery(q.Get("amount_min"), q.Get("amount_max"), ds.AmountBounds())
	if err != nil {
		return model.Criteria{}, fmt.Errorf("amount range: %w", err)
	}

	credit, err := rangeFromQuery(q.Get("credit_min"), q.Get("credit_max"), ds.CreditBounds())
	if err != nil {
		return model.Criteria{}, fmt.Errorf("credit range: %w", err)
	}

	purposes := q["purpose"]
	if len(purposes) == 0 {
		if q.Get("purposes") == "none" {
			purposes = []string{}
		} else {
			purposes = ds.Purposes()
		}
	}

	return model.Criteria{
		Status:   status,
		Amount:   amount,
		Credit:   credit,
		Purposes: purposes,
	}, nil
}

func rangeFromQuery(minRaw, maxRaw string, bounds model.Range) (model.Range, error) {
	out := bounds

	if minRaw != "" {
		v, err := strconv.ParseFloat(minRaw, 64)
		if err != nil {
			return model.Range{}, fmt.Errorf("invalid min %q", minRaw)
		}
		out.Min = v
	}
	if maxRaw != "" {
		v, err := strconv.ParseFloat(maxRaw, 64)
		if err != nil {
			return model.Range{}, fmt.Errorf("invalid max %q", maxRaw)
		}
		out.Max = v
	}

	// Clamp to the data bounds; an inverted request survives clamping and
	// yields an empty view downstream.
	return out.Clamp(bounds), nil
}
