// Package handlers provides HTTP handlers for the Risk Engine.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fincore/engines/internal/domain"
	"github.com/fincore/engines/internal/risk"
)

// Handler handles credit-risk HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log.With().Str("handler", "risk").Logger()}
}

// Routes registers the risk endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/analyze", h.HandleAnalyze)
}

// HandleAnalyze handles POST /api/v1/risk/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var input risk.AnalysisInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if input.CollateralType == "" {
		input.CollateralType = risk.CollateralNone
	}

	assessment, err := risk.AnalyzeFull(input)
	if err != nil {
		var invalid *domain.ValidationError
		if errors.As(err, &invalid) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": invalid.Reason,
				"field": invalid.Field,
			})
			return
		}
		h.log.Error().Err(err).Msg("Risk analysis failed")
		h.writeError(w, http.StatusInternalServerError, "Risk analysis failed")
		return
	}
	h.writeJSON(w, http.StatusOK, assessment)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
