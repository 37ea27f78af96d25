package risk

import "github.com/shopspring/decimal"

// RiskLevel is the ordinal tier derived from the composite score.
type RiskLevel string

const (
	LevelAAA RiskLevel = "AAA" // 800-1000: automatic approval
	LevelAA  RiskLevel = "AA"  // 700-799: approval with minimal review
	LevelA   RiskLevel = "A"   // 600-699: manual review
	LevelB   RiskLevel = "B"   // 500-599: credit committee review
	LevelC   RiskLevel = "C"   // < 500: automatic rejection
)

// Recommended actions, one per tier.
const (
	ActionAutoApprove     = "Automatic approval, preferential rate"
	ActionMinimalReview   = "Approval with minimal review"
	ActionManualReview    = "Requires review by analyst"
	ActionCommitteeReview = "Requires review by credit committee"
	ActionAutoReject      = "Automatic rejection due to high risk"
)

// Collateral types recognized by the collateral scorer. Unknown types score
// as if they carried no bonus.
const (
	CollateralRealEstate = "real_estate"
	CollateralDeposit    = "deposit"
	CollateralVehicle    = "vehicle"
	CollateralEquipment  = "equipment"
	CollateralNone       = "none"
)

// ScoreComponents breaks the composite credit score into its weighted parts.
type ScoreComponents struct {
	Capacity   int       `json:"score_capacidad_pago"`
	History    int       `json:"score_historial"`
	Collateral int       `json:"score_garantias"`
	Total      int       `json:"score_total"`
	Level      RiskLevel `json:"nivel_riesgo"`
	Action     string    `json:"accion_recomendada"`
}

// AnalysisInput carries everything AnalyzeFull needs: borrower financials,
// the requested loan, payment history and collateral.
type AnalysisInput struct {
	MonthlyIncome decimal.Decimal `json:"ingresos_mensuales"`
	FixedExpenses decimal.Decimal `json:"gastos_fijos"`
	CurrentDebt   decimal.Decimal `json:"deuda_actual"`

	RequestedAmount decimal.Decimal `json:"monto_solicitado"`
	TermMonths      int             `json:"plazo_meses"`
	ProposedRate    decimal.Decimal `json:"tasa_interes_propuesta"`

	MonthsActive   int  `json:"meses_actividad"`
	OnTimePayments int  `json:"pagos_puntuales"`
	LatePayments   int  `json:"pagos_atrasados"`
	PriorDefaults  int  `json:"defaults_previos"`
	BureauScore    *int `json:"score_buro,omitempty"`

	CollateralValue decimal.Decimal `json:"valor_garantias"`
	CollateralType  string          `json:"tipo_garantia"`
}

// RiskAssessment is the complete credit decision artifact. Observations are
// ordered, human-readable warnings; the list is empty (never nil) when the
// application is clean.
type RiskAssessment struct {
	ScoreComponents

	DefaultProbability decimal.Decimal `json:"probabilidad_default"`
	SuccessProbability decimal.Decimal `json:"probabilidad_exito"`
	DebtToIncome       decimal.Decimal `json:"ratio_deuda_ingreso"`
	LoanToValue        decimal.Decimal `json:"loan_to_value"`
	SuggestedRate      decimal.Decimal `json:"tasa_interes_sugerida"`
	MaxApprovedAmount  decimal.Decimal `json:"monto_maximo_aprobado"`
	RequiresCollateral bool            `json:"requiere_garantias_adicionales"`
	Observations       []string        `json:"observaciones"`
}
