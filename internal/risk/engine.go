// Package risk implements the Risk Engine: a composite 0-1000 credit score
// built from payment capacity, credit history and collateral coverage, plus
// the derived decision artifacts (tier, default probability, suggested rate,
// maximum approvable amount).
//
// S = C*0.40 + H*0.35 + G*0.25
//
// Every function is pure and stateless; edge inputs (zero income, missing
// collateral) produce documented sentinel values rather than errors.
package risk

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/fincore/engines/internal/domain"
)

// Component weights in percent. They must sum to 100; the composite uses
// integer arithmetic so the floor of the weighted sum is exact.
const (
	weightCapacityPct   = 40
	weightHistoryPct    = 35
	weightCollateralPct = 25
)

// Tier thresholds on the composite score.
const (
	thresholdAAA = 800
	thresholdAA  = 700
	thresholdA   = 600
	thresholdB   = 500
)

// suggestedRates is the fixed per-tier rate table.
var suggestedRates = map[RiskLevel]decimal.Decimal{
	LevelAAA: decimal.NewFromFloat(0.08),
	LevelAA:  decimal.NewFromFloat(0.10),
	LevelA:   decimal.NewFromFloat(0.12),
	LevelB:   decimal.NewFromFloat(0.15),
	LevelC:   decimal.NewFromFloat(0.20),
}

// collateralBonus is the fixed per-type score bonus.
var collateralBonus = map[string]int{
	CollateralRealEstate: 50,
	CollateralDeposit:    40,
	CollateralVehicle:    20,
	CollateralEquipment:  10,
	CollateralNone:       0,
}

// sentinelLTV marks "no collateral": a ratio no real application reaches.
var sentinelLTV = decimal.RequireFromString("999.99")

// disposableIncomeShare is the fraction of free monthly income that may be
// committed to a new installment when sizing the maximum approvable amount.
var disposableIncomeShare = decimal.NewFromFloat(0.40)

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 1000 {
		return 1000
	}
	return s
}

// CapacityScore scores payment capacity from the debt-to-income ratio:
// (fixed expenses + current debt + proposed installment) / monthly income.
// Zero or negative income scores 0 with a DTI of 1. The DTI is returned
// quantized to 4 decimals.
func CapacityScore(monthlyIncome, fixedExpenses, currentDebt, proposedInstallment decimal.Decimal) (int, decimal.Decimal) {
	if monthlyIncome.Sign() <= 0 {
		return 0, decimal.NewFromInt(1)
	}
	dti := fixedExpenses.Add(currentDebt).Add(proposedInstallment).Div(monthlyIncome)
	return clampScore(dtiBands.score(dti.InexactFloat64())), dti.Round(4)
}

// HistoryScore scores credit history on a 500 base: seniority tiers add up
// to 200, punctuality adds up to 200, each late payment costs 10 and each
// prior default 100. A bureau score, when present, is normalized from
// [300, 850] to [0, 1000] and averaged with the computed score. The result
// clamps to [0, 1000].
func HistoryScore(monthsActive, onTimePayments, latePayments, priorDefaults int, bureauScore *int) int {
	score := 500

	switch {
	case monthsActive >= 60:
		score += 200
	case monthsActive >= 36:
		score += 150
	case monthsActive >= 24:
		score += 100
	case monthsActive >= 12:
		score += 50
	}

	totalPayments := onTimePayments + latePayments
	if totalPayments > 0 {
		punctuality := float64(onTimePayments) / float64(totalPayments)
		score += int(punctuality * 200)
	}

	score -= latePayments * 10
	score -= priorDefaults * 100

	if bureauScore != nil {
		normalized := int(float64(*bureauScore-300) / 550 * 1000)
		score = (score + normalized) / 2
	}

	return clampScore(score)
}

// CollateralScore scores collateral coverage from the loan-to-value ratio
// plus a fixed bonus per collateral type. With no collateral (or a zero
// request) the LTV is the 999.99 sentinel and the score is 200 for type
// "none", 300 otherwise. The result clamps to 1000.
func CollateralScore(requestedAmount, collateralValue decimal.Decimal, collateralType string) (int, decimal.Decimal) {
	if collateralValue.Sign() <= 0 || requestedAmount.Sign() <= 0 {
		if collateralType == CollateralNone {
			return 200, sentinelLTV
		}
		return 300, sentinelLTV
	}

	ltv := requestedAmount.Div(collateralValue)
	score := ltvBands.score(ltv.InexactFloat64()) + collateralBonus[collateralType]
	return clampScore(score), ltv.Round(4)
}

func tierFor(total int) (RiskLevel, string) {
	switch {
	case total >= thresholdAAA:
		return LevelAAA, ActionAutoApprove
	case total >= thresholdAA:
		return LevelAA, ActionMinimalReview
	case total >= thresholdA:
		return LevelA, ActionManualReview
	case total >= thresholdB:
		return LevelB, ActionCommitteeReview
	default:
		return LevelC, ActionAutoReject
	}
}

// CompositeScore combines the three sub-scores into the weighted total,
// floor(C*0.40 + H*0.35 + G*0.25), and assigns the tier. Sub-scores are
// clamped to [0, 1000] first.
func CompositeScore(capacity, history, collateral int) ScoreComponents {
	capacity = clampScore(capacity)
	history = clampScore(history)
	collateral = clampScore(collateral)

	total := (capacity*weightCapacityPct + history*weightHistoryPct + collateral*weightCollateralPct) / 100
	level, action := tierFor(total)

	return ScoreComponents{
		Capacity:   capacity,
		History:    history,
		Collateral: collateral,
		Total:      total,
		Level:      level,
		Action:     action,
	}
}

// DefaultProbability estimates the probability of default from the composite
// score through an inverse exponential curve, quantized to 4 decimals.
func DefaultProbability(totalScore int) decimal.Decimal {
	pd := math.Exp(-float64(totalScore) / 250)
	return decimal.NewFromFloat(pd).Round(4)
}

// estimatedInstallment computes the monthly payment of an amortizing loan,
// falling back to straight division when the rate is zero or the term is
// missing.
func estimatedInstallment(principal decimal.Decimal, termMonths int, annualRate decimal.Decimal) decimal.Decimal {
	if termMonths > 0 && annualRate.Sign() > 0 {
		m := annualRate.InexactFloat64() / 12
		n := float64(termMonths)
		factor := m * math.Pow(1+m, n) / (math.Pow(1+m, n) - 1)
		return principal.Mul(decimal.NewFromFloat(factor))
	}
	if termMonths < 1 {
		termMonths = 1
	}
	return principal.Div(decimal.NewFromInt(int64(termMonths)))
}

// maxApprovableAmount annuitizes 40% of disposable income (income minus
// expenses minus debt) over the term at the proposed rate. With a zero rate
// the capacity is simply multiplied by the term. Negative disposable income
// yields a negative ceiling, which callers read as "nothing approvable".
func maxApprovableAmount(monthlyIncome, fixedExpenses, currentDebt decimal.Decimal, termMonths int, annualRate decimal.Decimal) decimal.Decimal {
	capacity := monthlyIncome.Sub(fixedExpenses).Sub(currentDebt).Mul(disposableIncomeShare)
	if capacity.Sign() > 0 && annualRate.Sign() > 0 {
		m := annualRate.InexactFloat64() / 12
		n := float64(termMonths)
		annuity := (math.Pow(1+m, n) - 1) / (m * math.Pow(1+m, n))
		return capacity.Mul(decimal.NewFromFloat(annuity)).Round(2)
	}
	return capacity.Mul(decimal.NewFromInt(int64(termMonths))).Round(2)
}

// Observation thresholds.
var (
	highDTI = decimal.NewFromFloat(0.40)
	highLTV = decimal.NewFromFloat(0.80)
)

// AnalyzeFull runs the complete credit-risk assessment for a loan request:
// estimated installment, the three sub-scores, composite score and tier,
// default/success probabilities, suggested rate, maximum approvable amount,
// collateral-insufficiency flag and ordered observations.
func AnalyzeFull(input AnalysisInput) (*RiskAssessment, error) {
	if input.RequestedAmount.Sign() < 0 {
		return nil, domain.Invalid("monto_solicitado", "must not be negative")
	}
	if input.TermMonths < 0 {
		return nil, domain.Invalid("plazo_meses", "must not be negative")
	}

	installment := estimatedInstallment(input.RequestedAmount, input.TermMonths, input.ProposedRate)

	capacity, dti := CapacityScore(input.MonthlyIncome, input.FixedExpenses, input.CurrentDebt, installment)
	history := HistoryScore(input.MonthsActive, input.OnTimePayments, input.LatePayments, input.PriorDefaults, input.BureauScore)
	collateral, ltv := CollateralScore(input.RequestedAmount, input.CollateralValue, input.CollateralType)

	score := CompositeScore(capacity, history, collateral)

	pd := DefaultProbability(score.Total)
	success := decimal.NewFromInt(1).Sub(pd).Round(4)

	maxAmount := maxApprovableAmount(input.MonthlyIncome, input.FixedExpenses, input.CurrentDebt, input.TermMonths, input.ProposedRate)

	observations := make([]string, 0, 4)
	if dti.Cmp(highDTI) > 0 {
		observations = append(observations, fmt.Sprintf("High DTI (%.1f%%). Consider reducing the requested amount.", dti.InexactFloat64()*100))
	}
	if ltv.Cmp(highLTV) > 0 {
		observations = append(observations, fmt.Sprintf("High LTV (%.1f%%). Additional collateral required.", ltv.InexactFloat64()*100))
	}
	if input.PriorDefaults > 0 {
		observations = append(observations, fmt.Sprintf("History shows %d prior default(s).", input.PriorDefaults))
	}
	if score.Total < thresholdA {
		observations = append(observations, "Low score. Exhaustive review recommended.")
	}

	return &RiskAssessment{
		ScoreComponents:    score,
		DefaultProbability: pd,
		SuccessProbability: success,
		DebtToIncome:       dti,
		LoanToValue:        ltv,
		SuggestedRate:      suggestedRates[score.Level],
		MaxApprovedAmount:  maxAmount,
		RequiresCollateral: ltv.Cmp(highLTV) > 0,
		Observations:       observations,
	}, nil
}
