package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincore/engines/internal/cache"
)

func newTestHandler() *Handler {
	return NewHandler(cache.NewMemory(), time.Minute, zerolog.Nop())
}

func TestHandleEvaluate_OK(t *testing.T) {
	handler := newTestHandler()

	body := `{"inversion_inicial": "1000", "tasa_descuento": "0.10", "flujos_caja": ["500", "500", "500"]}`
	req := httptest.NewRequest("POST", "/evaluate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleEvaluate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "243.43", response["van"])
	assert.Equal(t, true, response["es_viable"])
	assert.NotEmpty(t, response["mensaje"])
}

func TestHandleEvaluate_PeriodsFallback(t *testing.T) {
	handler := newTestHandler()

	body := `{"inversion_inicial": "1000", "tasa_descuento": "0.10",
		"periodos": [{"ingresos": "600", "egresos": "100"}, {"ingresos": "600", "egresos": "100"}, {"ingresos": "600", "egresos": "100"}]}`
	req := httptest.NewRequest("POST", "/evaluate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleEvaluate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "243.43", response["van"])
}

func TestHandleEvaluate_ValidationError(t *testing.T) {
	handler := newTestHandler()

	body := `{"inversion_inicial": "0", "tasa_descuento": "0.10", "flujos_caja": ["500"]}`
	req := httptest.NewRequest("POST", "/evaluate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleEvaluate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "inversion_inicial", response["field"])
	assert.NotEmpty(t, response["error"])
}

func TestHandleEvaluate_OversizedBody(t *testing.T) {
	handler := newTestHandler()

	// Padding pushes the document past the body cap; the truncated read is
	// no longer valid JSON.
	body := `{"inversion_inicial": "1000", "padding": "` + strings.Repeat("x", maxBodyBytes) +
		`", "tasa_descuento": "0.10", "flujos_caja": ["500"]}`
	req := httptest.NewRequest("POST", "/evaluate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleEvaluate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleEvaluate_MalformedJSON(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("POST", "/evaluate", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.HandleEvaluate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleFullEvaluation_CachesByBody(t *testing.T) {
	handler := newTestHandler()
	body := `{"inversion_inicial": "1000", "tasa_descuento": "0.10",
		"flujos_ingresos": ["600", "600", "600"], "flujos_costos": ["100", "100", "100"]}`

	first := httptest.NewRecorder()
	handler.HandleFullEvaluation(first, httptest.NewRequest("POST", "/full?montecarlo=false", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.HandleFullEvaluation(second, httptest.NewRequest("POST", "/full?montecarlo=false", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, second.Code)

	var a, b map[string]any
	require.NoError(t, json.NewDecoder(first.Body).Decode(&a))
	require.NoError(t, json.NewDecoder(second.Body).Decode(&b))

	// A cache hit replays the stored report, report ID included.
	assert.Equal(t, a["report_id"], b["report_id"])
	assert.NotEmpty(t, a["report_id"])
	assert.Nil(t, a["montecarlo"])
	assert.NotNil(t, a["evaluacion"])
}

func TestHandleFullEvaluation_MonteCarloByDefault(t *testing.T) {
	handler := newTestHandler()
	body := `{"inversion_inicial": "1000", "tasa_descuento": "0.10",
		"flujos_ingresos": ["600", "600"], "flujos_costos": ["100", "100"]}`

	w := httptest.NewRecorder()
	handler.HandleFullEvaluation(w, httptest.NewRequest("POST", "/full", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotNil(t, response["montecarlo"])
}

func TestHandleSensitivity_UnknownVariable(t *testing.T) {
	handler := newTestHandler()
	body := `{"inversion_inicial": "1000", "tasa_descuento": "0.10",
		"flujos_ingresos": ["600"], "flujos_costos": ["100"], "variable": "inflation"}`

	w := httptest.NewRecorder()
	handler.HandleSensitivity(w, httptest.NewRequest("POST", "/sensitivity", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "variable", response["field"])
}

func TestHandleMonteCarlo_BoundsError(t *testing.T) {
	handler := newTestHandler()
	body := `{"inversion_inicial": "1000", "tasa_descuento": "0.10",
		"flujos_ingresos": ["600"], "flujos_costos": ["100"], "n_simulaciones": 7}`

	w := httptest.NewRecorder()
	handler.HandleMonteCarlo(w, httptest.NewRequest("POST", "/montecarlo", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleBreakeven_OK(t *testing.T) {
	handler := newTestHandler()
	body := `{"inversion_inicial": "1000", "tasa_descuento": "0.10",
		"flujos_ingresos": ["600", "600", "600"], "flujos_costos": ["100", "100", "100"], "variable": "income"}`

	w := httptest.NewRecorder()
	handler.HandleBreakeven(w, httptest.NewRequest("POST", "/breakeven", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "income", response["variable"])
	assert.NotNil(t, response["variacion_equilibrio"])
}
