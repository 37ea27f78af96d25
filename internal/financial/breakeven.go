package financial

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/fincore/engines/internal/domain"
	"github.com/fincore/engines/pkg/formulas"
)

// Breakeven search bracket: variations between -99% and +500%.
const (
	breakevenLower = -0.99
	breakevenUpper = 5.0
)

// BreakevenVariable root-finds the variation fraction of income or cost that
// zeroes the project NPV, searching [-0.99, 5.0]. The margin of safety is
// the absolute variation. When the bracket holds no root the result carries
// a nil variation and explanatory text: the project is insensitive to the
// variable within the tested range, which is a valid answer, not an error.
func BreakevenVariable(initial decimal.Decimal, income, costs []decimal.Decimal, discountRate decimal.Decimal, variable Variable) (*BreakevenResult, error) {
	if variable != VariableIncome && variable != VariableCost {
		return nil, domain.Invalid("variable", "breakeven supports income and cost only")
	}
	if _, err := NetFlows(income, costs); err != nil {
		return nil, err
	}

	i0 := initial.InexactFloat64()
	incomeF := toFloats(income)
	costF := toFloats(costs)
	rate := discountRate.InexactFloat64()

	npvAt := func(variation float64) float64 {
		flows := make([]float64, len(incomeF))
		if variable == VariableIncome {
			for i := range incomeF {
				flows[i] = incomeF[i]*(1+variation) - costF[i]
			}
		} else {
			for i := range incomeF {
				flows[i] = incomeF[i] - costF[i]*(1+variation)
			}
		}
		return npvFloat(i0, flows, rate)
	}

	root, err := formulas.Brent(npvAt, breakevenLower, breakevenUpper, rootTolerance, rootMaxIter)
	if err != nil {
		return &BreakevenResult{
			Variable:       variable,
			Interpretation: "No breakeven point found in the tested range.",
		}, nil
	}

	variation := asRate(root)
	margin := asRate(math.Abs(root))
	return &BreakevenResult{
		Variable:       variable,
		Variation:      &variation,
		MarginOfSafety: &margin,
		Interpretation: fmt.Sprintf("The project withstands a %.1f%% variation in %s.", math.Abs(root)*100, variable),
	}, nil
}
