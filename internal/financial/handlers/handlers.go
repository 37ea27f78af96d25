// Package handlers provides HTTP handlers for the Financial Engine.
package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincore/engines/internal/cache"
	"github.com/fincore/engines/internal/domain"
	"github.com/fincore/engines/internal/financial"
)

// maxBodyBytes caps request bodies; projection series are small.
const maxBodyBytes = 1 << 20

// Handler handles financial evaluation HTTP requests
type Handler struct {
	cache    cache.Cache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewHandler creates a new financial handler
func NewHandler(c cache.Cache, ttl time.Duration, log zerolog.Logger) *Handler {
	return &Handler{
		cache:    c,
		cacheTTL: ttl,
		log:      log.With().Str("handler", "financial").Logger(),
	}
}

// Routes registers the financial endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/evaluate", h.HandleEvaluate)
	r.Post("/full", h.HandleFullEvaluation)
	r.Post("/sensitivity", h.HandleSensitivity)
	r.Post("/tornado", h.HandleTornado)
	r.Post("/matrix", h.HandleMatrix)
	r.Post("/montecarlo", h.HandleMonteCarlo)
	r.Post("/breakeven", h.HandleBreakeven)
}

type evaluateRequest struct {
	InitialInvestment decimal.Decimal            `json:"inversion_inicial"`
	DiscountRate      decimal.Decimal            `json:"tasa_descuento"`
	CashFlows         []decimal.Decimal          `json:"flujos_caja"`
	Periods           []financial.CashFlowPeriod `json:"periodos"`
	MinAcceptableRate decimal.Decimal            `json:"tasa_minima_aceptable"`
}

// netFlows resolves the request's cash-flow series: explicit net flows, or
// nets derived from inflow/outflow periods.
func (req *evaluateRequest) netFlows() []decimal.Decimal {
	if len(req.CashFlows) > 0 {
		return req.CashFlows
	}
	flows := make([]decimal.Decimal, len(req.Periods))
	for i, p := range req.Periods {
		flows[i] = p.Net()
	}
	return flows
}

// HandleEvaluate handles POST /api/v1/financial/evaluate
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	buf, err := readBody(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req evaluateRequest
	if err := json.Unmarshal(buf, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	minRate := req.MinAcceptableRate
	if minRate.IsZero() {
		minRate = decimal.NewFromFloat(financial.DefaultMinAcceptableRate)
	}

	result, err := financial.EvaluateProject(req.InitialInvestment, req.netFlows(), req.DiscountRate, minRate)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type seriesRequest struct {
	InitialInvestment decimal.Decimal   `json:"inversion_inicial"`
	DiscountRate      decimal.Decimal   `json:"tasa_descuento"`
	IncomeFlows       []decimal.Decimal `json:"flujos_ingresos"`
	CostFlows         []decimal.Decimal `json:"flujos_costos"`
	Variable          string            `json:"variable"`
	Variations        []float64         `json:"variaciones"`
	Variation         float64           `json:"variacion"`

	Simulations      int     `json:"n_simulaciones"`
	IncomeVolatility float64 `json:"volatilidad_ingresos"`
	CostVolatility   float64 `json:"volatilidad_costos"`
	Seed             uint64  `json:"seed"`
}

type fullEvaluationResponse struct {
	ReportID string `json:"report_id"`
	*financial.FullEvaluationReport
}

// HandleFullEvaluation handles POST /api/v1/financial/full. Reports are
// cached keyed on the request body hash; `?montecarlo=false` skips the
// simulation.
func (h *Handler) HandleFullEvaluation(w http.ResponseWriter, r *http.Request) {
	body, req, ok := h.decodeSeries(w, r)
	if !ok {
		return
	}

	includeMonteCarlo := r.URL.Query().Get("montecarlo") != "false"

	sum := sha256.Sum256(append(body, byte(boolToInt(includeMonteCarlo))))
	key := "fincore:full:" + hex.EncodeToString(sum[:])
	if cached, found := h.cache.Get(r.Context(), key); found {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	started := time.Now()
	report, err := financial.FullEvaluation(req.InitialInvestment, req.IncomeFlows, req.CostFlows, req.DiscountRate, includeMonteCarlo)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.log.Debug().
		Dur("elapsed", time.Since(started)).
		Bool("montecarlo", includeMonteCarlo).
		Msg("Full evaluation computed")

	response := fullEvaluationResponse{
		ReportID:             uuid.New().String(),
		FullEvaluationReport: report,
	}
	encoded, err := json.Marshal(response)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to encode report")
		return
	}
	h.cache.Set(r.Context(), key, encoded, h.cacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(encoded)
}

// HandleSensitivity handles POST /api/v1/financial/sensitivity
func (h *Handler) HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	_, req, ok := h.decodeSeries(w, r)
	if !ok {
		return
	}

	results, err := financial.SensitivityByVariable(
		req.InitialInvestment, req.IncomeFlows, req.CostFlows,
		req.DiscountRate, financial.Variable(req.Variable), req.Variations,
	)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"sensibilidad": results})
}

// HandleTornado handles POST /api/v1/financial/tornado
func (h *Handler) HandleTornado(w http.ResponseWriter, r *http.Request) {
	_, req, ok := h.decodeSeries(w, r)
	if !ok {
		return
	}

	entries, err := financial.TornadoData(
		req.InitialInvestment, req.IncomeFlows, req.CostFlows,
		req.DiscountRate, req.Variation,
	)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"tornado": entries})
}

// HandleMatrix handles POST /api/v1/financial/matrix
func (h *Handler) HandleMatrix(w http.ResponseWriter, r *http.Request) {
	_, req, ok := h.decodeSeries(w, r)
	if !ok {
		return
	}

	matrix, err := financial.CrossSensitivityMatrix(
		req.InitialInvestment, req.IncomeFlows, req.CostFlows,
		req.DiscountRate, req.Variations,
	)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, matrix)
}

// HandleMonteCarlo handles POST /api/v1/financial/montecarlo
func (h *Handler) HandleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	_, req, ok := h.decodeSeries(w, r)
	if !ok {
		return
	}

	result, err := financial.MonteCarloSimulation(
		req.InitialInvestment, req.IncomeFlows, req.CostFlows, req.DiscountRate,
		financial.MonteCarloParams{
			Simulations:      req.Simulations,
			IncomeVolatility: req.IncomeVolatility,
			CostVolatility:   req.CostVolatility,
			Seed:             req.Seed,
		},
	)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleBreakeven handles POST /api/v1/financial/breakeven
func (h *Handler) HandleBreakeven(w http.ResponseWriter, r *http.Request) {
	_, req, ok := h.decodeSeries(w, r)
	if !ok {
		return
	}

	result, err := financial.BreakevenVariable(
		req.InitialInvestment, req.IncomeFlows, req.CostFlows,
		req.DiscountRate, financial.Variable(req.Variable),
	)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) decodeSeries(w http.ResponseWriter, r *http.Request) ([]byte, *seriesRequest, bool) {
	buf, err := readBody(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Failed to read request body")
		return nil, nil, false
	}

	var req seriesRequest
	if err := json.Unmarshal(buf, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, nil, false
	}
	return buf, &req, true
}

func readBody(r *http.Request) ([]byte, error) {
	defer func() { _ = r.Body.Close() }()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": invalid.Reason,
			"field": invalid.Field,
		})
		return
	}
	h.log.Error().Err(err).Msg("Evaluation failed")
	h.writeError(w, http.StatusInternalServerError, "Evaluation failed")
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
