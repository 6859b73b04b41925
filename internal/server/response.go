package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/render"
)

// apiError is the JSON error payload. Code distinguishes the cases the
// frontend renders differently: a missing artifact versus a malformed
// request versus a server fault.
type apiError struct {
	Code    string `json:"code"` // "not_available", "bad_request", "internal"
	Message string `json:"message"`
}

func respond(w http.ResponseWriter, r *http.Request, v any) {
	render.JSON(w, r, v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, apiError{Code: code, Message: message})
}

func notAvailable(w http.ResponseWriter, r *http.Request, what string) {
	respondError(w, r, http.StatusNotFound, "not_available", what+" is not available for this session")
}

// jsonFloat marshals NaN as null so empty-view aggregates reach the client
// as an explicit "no value" rather than an encoding error or a fake zero.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}
