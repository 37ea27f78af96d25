// Package financial implements the Financial Engine: deterministic valuation
// metrics (NPV, IRR, ROI, payback, profitability index) plus scenario,
// sensitivity, tornado and Monte Carlo analysis of a projected cash-flow
// series.
//
// Every function is pure: no shared state, no I/O, safe for concurrent use.
// Money is reported as fixed-point decimal quantized to cents, rates to four
// decimal places; iterative numerics run in float64 internally and results
// are re-quantized before being returned.
package financial

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/fincore/engines/internal/domain"
	"github.com/fincore/engines/pkg/formulas"
)

const (
	// DefaultMinAcceptableRate is the minimum IRR a project must clear to
	// be called viable when the caller does not supply its own hurdle.
	DefaultMinAcceptableRate = 0.10

	irrInitialGuess = 0.10
	rootTolerance   = 1e-9
	rootMaxIter     = 100
)

// money quantizes a float to 2 decimal places (cents), rounding ties away
// from zero. Non-finite values collapse to zero, the documented default for
// degenerate arithmetic.
func money(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

// asRate quantizes a float to 4 decimal places, the precision used for rates
// and ratios.
func asRate(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(4)
}

func toFloats(flows []decimal.Decimal) []float64 {
	out := make([]float64, len(flows))
	for i, f := range flows {
		out[i] = f.InexactFloat64()
	}
	return out
}

// npvFloat computes NPV in float64: -initial + sum(flows[t] / (1+rate)^t),
// t starting at 1. With rate = 0 the denominator is 1 for every term.
func npvFloat(initial float64, flows []float64, rate float64) float64 {
	v := -initial
	for t, f := range flows {
		v += f / math.Pow(1+rate, float64(t+1))
	}
	return v
}

// npvDerivative is the analytic derivative of npvFloat with respect to rate.
func npvDerivative(flows []float64, rate float64) float64 {
	d := 0.0
	for t, f := range flows {
		n := float64(t + 1)
		d -= n * f / math.Pow(1+rate, n+1)
	}
	return d
}

// NPV calculates the net present value of the series discounted at the given
// rate, quantized to cents.
func NPV(initial decimal.Decimal, flows []decimal.Decimal, discountRate decimal.Decimal) decimal.Decimal {
	return money(npvFloat(initial.InexactFloat64(), toFloats(flows), discountRate.InexactFloat64()))
}

// IRR calculates the internal rate of return: the rate at which NPV is zero
// over the vector [-initial, flows...]. It returns nil when the search does
// not converge or lands on a non-finite value, e.g. when all flows share the
// sign of the negated investment.
//
// When the cash flows change sign more than once several roots may exist;
// the returned root is whichever the solver converges to first.
func IRR(initial decimal.Decimal, flows []decimal.Decimal) *decimal.Decimal {
	cf := toFloats(flows)
	i0 := initial.InexactFloat64()

	f := func(r float64) float64 { return npvFloat(i0, cf, r) }
	df := func(r float64) float64 { return npvDerivative(cf, r) }

	root, err := formulas.Newton(f, df, irrInitialGuess, rootTolerance, rootMaxIter)
	if err != nil || root <= -1 {
		root, err = bracketedIRR(f)
		if err != nil {
			return nil
		}
	}
	if math.IsNaN(root) || math.IsInf(root, 0) {
		return nil
	}
	r := asRate(root)
	return &r
}

// bracketedIRR scans an expanding rate grid for a sign change and refines it
// with Brent's method. Used when Newton fails from the standard guess.
func bracketedIRR(f func(float64) float64) (float64, error) {
	grid := []float64{-0.99, -0.75, -0.50, -0.25, -0.10, 0, 0.10, 0.25, 0.50, 1, 2, 5, 10}
	for i := 0; i < len(grid)-1; i++ {
		if f(grid[i])*f(grid[i+1]) <= 0 {
			return formulas.Brent(f, grid[i], grid[i+1], rootTolerance, rootMaxIter)
		}
	}
	return 0, formulas.ErrNoBracket
}

// ROI calculates return on investment: (totalReturn - initial) / initial,
// quantized to 4 decimals. Returns zero when the investment is zero.
func ROI(initial, totalReturn decimal.Decimal) decimal.Decimal {
	if initial.IsZero() {
		return decimal.Zero
	}
	return totalReturn.Sub(initial).Div(initial).Round(4)
}

// Payback calculates the fractional period at which the cumulative cash flow
// first covers the initial investment, linearly interpolated inside that
// period. Returns nil when the investment is never recovered within the
// horizon.
func Payback(initial decimal.Decimal, flows []decimal.Decimal) *decimal.Decimal {
	cumulative := decimal.Zero
	for i, flow := range flows {
		cumulative = cumulative.Add(flow)
		if cumulative.Cmp(initial) >= 0 {
			fraction := decimal.Zero
			if flow.IsPositive() {
				excess := cumulative.Sub(initial)
				fraction = decimal.NewFromInt(1).Sub(excess.Div(flow))
			}
			p := decimal.NewFromInt(int64(i)).Add(fraction).Round(2)
			return &p
		}
	}
	return nil
}

// ProfitabilityIndex calculates 1 + NPV/initial, quantized to 2 decimals.
// Returns zero when the investment is zero.
func ProfitabilityIndex(npv, initial decimal.Decimal) decimal.Decimal {
	if initial.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Add(npv.Div(initial)).Round(2)
}

// WACC calculates the weighted average cost of capital:
// (1-D)*Re + D*Rd*(1-Tc), quantized to 4 decimals.
func WACC(costOfDebt, costOfEquity, debtRatio, taxRate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	equityRatio := one.Sub(debtRatio)
	wacc := equityRatio.Mul(costOfEquity).
		Add(debtRatio.Mul(costOfDebt).Mul(one.Sub(taxRate)))
	return wacc.Round(4)
}

// Evaluation verdict messages, one per NPV/IRR case.
const (
	MessageViable    = "Project VIABLE: positive NPV and IRR above the minimum rate."
	MessageLowIRR    = "Project has positive NPV but low IRR. Review assumptions."
	MessageNeutral   = "Neutral project: NPV equals zero."
	MessageNotViable = "Project NOT VIABLE: negative NPV."
)

// EvaluateProject runs the full deterministic valuation of a project. The
// project is viable iff NPV > 0, IRR (when it exists) clears the minimum
// acceptable rate, and the profitability index exceeds 1.
func EvaluateProject(initial decimal.Decimal, flows []decimal.Decimal, discountRate, minAcceptableRate decimal.Decimal) (*EvaluationResult, error) {
	if initial.Sign() <= 0 {
		return nil, domain.Invalid("inversion_inicial", "must be greater than zero")
	}
	if len(flows) == 0 {
		return nil, domain.Invalid("flujos_caja", "at least one cash-flow period is required")
	}

	npv := NPV(initial, flows, discountRate)
	irr := IRR(initial, flows)

	totalReturn := decimal.Zero
	for _, f := range flows {
		totalReturn = totalReturn.Add(f)
	}
	roi := ROI(initial, totalReturn)
	payback := Payback(initial, flows)
	pi := ProfitabilityIndex(npv, initial)

	rate := discountRate.InexactFloat64()
	discounted := make([]decimal.Decimal, len(flows))
	for t, f := range flows {
		discounted[t] = money(f.InexactFloat64() / math.Pow(1+rate, float64(t+1)))
	}

	viable := npv.IsPositive() &&
		(irr == nil || irr.Cmp(minAcceptableRate) >= 0) &&
		pi.Cmp(decimal.NewFromInt(1)) > 0

	var message string
	switch {
	case npv.IsPositive() && irr != nil && irr.Cmp(minAcceptableRate) >= 0:
		message = MessageViable
	case npv.IsPositive():
		message = MessageLowIRR
	case npv.IsZero():
		message = MessageNeutral
	default:
		message = MessageNotViable
	}

	return &EvaluationResult{
		InitialInvestment:  initial,
		DiscountRate:       discountRate,
		NPV:                npv,
		IRR:                irr,
		ROI:                roi,
		PaybackPeriod:      payback,
		ProfitabilityIndex: pi,
		DiscountedFlows:    discounted,
		Viable:             viable,
		Message:            message,
	}, nil
}

// NetFlows combines income and cost series into net flows (income - cost).
// Both series must have the same length.
func NetFlows(income, costs []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(income) != len(costs) {
		return nil, domain.Invalid("flujos_costos", "income and cost series must have the same length")
	}
	net := make([]decimal.Decimal, len(income))
	for i := range income {
		net[i] = income[i].Sub(costs[i])
	}
	return net, nil
}
