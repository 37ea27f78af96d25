package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAnalyze_OK(t *testing.T) {
	handler := NewHandler(zerolog.Nop())

	body := `{
		"ingresos_mensuales": "100000",
		"monto_solicitado": "200000",
		"plazo_meses": 24,
		"tasa_interes_propuesta": "0.12",
		"meses_actividad": 60,
		"pagos_puntuales": 20,
		"tipo_garantia": "real_estate",
		"valor_garantias": "1000000"
	}`
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleAnalyze(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "AAA", response["nivel_riesgo"])
	assert.Equal(t, "0.08", response["tasa_interes_sugerida"])
	assert.NotNil(t, response["score_total"])
	assert.NotNil(t, response["probabilidad_default"])
	assert.Equal(t, []any{}, response["observaciones"])
}

func TestHandleAnalyze_DefaultsCollateralType(t *testing.T) {
	handler := NewHandler(zerolog.Nop())

	// No collateral fields at all: the sentinel LTV marks "no collateral".
	body := `{"ingresos_mensuales": "10000", "monto_solicitado": "50000", "plazo_meses": 12}`
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleAnalyze(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "999.99", response["loan_to_value"])
	assert.Equal(t, true, response["requiere_garantias_adicionales"])
}

func TestHandleAnalyze_ValidationError(t *testing.T) {
	handler := NewHandler(zerolog.Nop())

	body := `{"monto_solicitado": "-5"}`
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleAnalyze(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "monto_solicitado", response["field"])
}

func TestHandleAnalyze_MalformedJSON(t *testing.T) {
	handler := NewHandler(zerolog.Nop())

	req := httptest.NewRequest("POST", "/analyze", strings.NewReader("{oops"))
	w := httptest.NewRecorder()
	handler.HandleAnalyze(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
