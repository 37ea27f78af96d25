package financial

import (
	"github.com/shopspring/decimal"
)

// Variable identifies which input of a projection is being perturbed in a
// sensitivity or breakeven analysis.
type Variable string

const (
	VariableIncome       Variable = "income"
	VariableCost         Variable = "cost"
	VariableDiscountRate Variable = "discount_rate"
)

// CashFlowPeriod is one projected period of a cash-flow series. Periods are
// ordered by index (starting at 1); ordering is the caller's responsibility.
type CashFlowPeriod struct {
	Period  int             `json:"periodo"`
	Inflow  decimal.Decimal `json:"ingresos"`
	Outflow decimal.Decimal `json:"egresos"`
}

// Net returns inflow minus outflow for the period.
func (p CashFlowPeriod) Net() decimal.Decimal {
	return p.Inflow.Sub(p.Outflow)
}

// EvaluationResult is the deterministic valuation of a single project.
// IRR and PaybackPeriod are nil when the underlying search has no answer:
// a non-convergent IRR or an investment never recovered within the horizon.
type EvaluationResult struct {
	InitialInvestment  decimal.Decimal   `json:"inversion_inicial"`
	DiscountRate       decimal.Decimal   `json:"tasa_descuento"`
	NPV                decimal.Decimal   `json:"van"`
	IRR                *decimal.Decimal  `json:"tir"`
	ROI                decimal.Decimal   `json:"roi"`
	PaybackPeriod      *decimal.Decimal  `json:"payback_period"`
	ProfitabilityIndex decimal.Decimal   `json:"indice_rentabilidad"`
	DiscountedFlows    []decimal.Decimal `json:"flujos_descontados"`
	Viable             bool              `json:"es_viable"`
	Message            string            `json:"mensaje"`
}

// SensitivityScenario is one whole-series scenario: every flow scaled by
// (1 + Variation).
type SensitivityScenario struct {
	Scenario  string           `json:"escenario"`
	Variation float64          `json:"variacion_flujos"`
	NPV       decimal.Decimal  `json:"van"`
	IRR       *decimal.Decimal `json:"tir"`
	Viable    bool             `json:"es_viable"`
}

// VariableScenario is one per-variable scenario from SensitivityByVariable.
type VariableScenario struct {
	Scenario  string           `json:"escenario"`
	Variation float64          `json:"variacion"`
	NPV       decimal.Decimal  `json:"van"`
	IRR       *decimal.Decimal `json:"tir"`
	Status    string           `json:"estado_viabilidad"`
}

// Viability statuses assigned to per-variable scenarios.
const (
	StatusViable       = "Viable"
	StatusModerateRisk = "Moderate Risk"
	StatusHighRisk     = "High Risk"
	StatusNotViable    = "Not Viable"
)

// BreakevenResult reports the variation fraction that zeroes NPV for one
// variable. Variation and MarginOfSafety are nil when no root exists inside
// the tested bracket; Interpretation explains the outcome either way.
type BreakevenResult struct {
	Variable       Variable         `json:"variable"`
	Variation      *decimal.Decimal `json:"variacion_equilibrio"`
	MarginOfSafety *decimal.Decimal `json:"margen_seguridad"`
	Interpretation string           `json:"interpretacion"`
}

// MatrixCell is one cell of the cross-sensitivity matrix: NPV under a
// combined income and discount-rate perturbation.
type MatrixCell struct {
	NPV             decimal.Decimal `json:"van"`
	Viable          bool            `json:"viable"`
	IncomeVariation float64         `json:"var_ingresos"`
	RateVariation   float64         `json:"var_tasa"`
}

// MatrixAxes names the variables spanned by the matrix rows and columns.
type MatrixAxes struct {
	Rows    string `json:"filas"`
	Columns string `json:"columnas"`
}

// CrossMatrix is a 2-D sensitivity grid. Rows perturb income, columns
// perturb the discount rate; labels are preformatted for presentation.
type CrossMatrix struct {
	Cells     [][]MatrixCell `json:"matriz"`
	RowLabels []string       `json:"etiquetas_filas"`
	ColLabels []string       `json:"etiquetas_columnas"`
	Variables MatrixAxes     `json:"variables"`
}

// TornadoEntry records the NPV impact of symmetric perturbation of a single
// variable, the others held at base.
type TornadoEntry struct {
	Variable    Variable        `json:"variable"`
	NPVPositive decimal.Decimal `json:"van_positivo"`
	NPVNegative decimal.Decimal `json:"van_negativo"`
	NPVBase     decimal.Decimal `json:"van_base"`
	Impact      decimal.Decimal `json:"impacto_total"`
	Variation   float64         `json:"variacion_aplicada"`
}

// MonteCarloParams configures a simulation run. Zero values select the
// defaults (500 trials, 15% income volatility, 10% cost volatility, seed 42).
// The seed makes runs reproducible; callers wanting independent randomness
// must vary it per call.
type MonteCarloParams struct {
	Simulations      int     `json:"n_simulaciones"`
	IncomeVolatility float64 `json:"volatilidad_ingresos"`
	CostVolatility   float64 `json:"volatilidad_costos"`
	Seed             uint64  `json:"seed"`
}

// Histogram is a fixed-width binning of simulated NPVs. Edges has one more
// entry than Counts.
type Histogram struct {
	Edges  []decimal.Decimal `json:"rangos"`
	Counts []int             `json:"frecuencias"`
}

// MonteCarloResult aggregates the simulated NPV distribution.
type MonteCarloResult struct {
	Simulations     int             `json:"n_simulaciones"`
	Mean            decimal.Decimal `json:"van_promedio"`
	Median          decimal.Decimal `json:"van_mediana"`
	StdDev          decimal.Decimal `json:"van_desviacion"`
	Min             decimal.Decimal `json:"van_minimo"`
	Max             decimal.Decimal `json:"van_maximo"`
	Percentile5     decimal.Decimal `json:"percentil_5"`
	Percentile95    decimal.Decimal `json:"percentil_95"`
	LossProbability decimal.Decimal `json:"probabilidad_perdida"`
	ValueAtRisk     decimal.Decimal `json:"valor_en_riesgo_95"`
	Histogram       Histogram       `json:"histograma"`
}

// VariableSensitivity groups per-variable scenario sets for income and costs.
type VariableSensitivity struct {
	Income []VariableScenario `json:"ingresos"`
	Costs  []VariableScenario `json:"costos"`
}

// BreakevenSet groups breakeven results for income and costs.
type BreakevenSet struct {
	Income *BreakevenResult `json:"ingresos"`
	Costs  *BreakevenResult `json:"costos"`
}

// FullEvaluationReport is the combined output of a full project analysis.
type FullEvaluationReport struct {
	Evaluation  *EvaluationResult   `json:"evaluacion"`
	Sensitivity VariableSensitivity `json:"sensibilidad"`
	Breakeven   BreakevenSet        `json:"punto_equilibrio"`
	CrossMatrix *CrossMatrix        `json:"matriz_cruzada"`
	Tornado     []TornadoEntry      `json:"tornado"`
	MonteCarlo  *MonteCarloResult   `json:"montecarlo,omitempty"`
}
