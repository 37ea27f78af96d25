package financial

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fincore/engines/internal/domain"
)

// Default variation grids.
var (
	// DefaultScenarioVariations drives the classic three-scenario analysis.
	DefaultScenarioVariations = []float64{-0.20, 0, 0.20}

	// DefaultVariableVariations drives per-variable sensitivity.
	DefaultVariableVariations = []float64{-0.20, -0.10, 0, 0.10, 0.20}

	// DefaultMatrixVariations drives the cross-sensitivity matrix.
	DefaultMatrixVariations = []float64{-0.10, 0, 0.10}
)

var scenarioLabels = [3]string{"pessimistic", "base", "optimistic"}

// SensitivityAnalysis scales every flow by (1 + variation) per scenario and
// recomputes NPV and IRR. With the default three variations the scenarios
// are labeled pessimistic/base/optimistic in that fixed order; custom grids
// are labeled by their variation. Viability here is NPV > 0 alone.
func SensitivityAnalysis(initial decimal.Decimal, baseFlows []decimal.Decimal, discountRate decimal.Decimal, variations []float64) []SensitivityScenario {
	if len(variations) == 0 {
		variations = DefaultScenarioVariations
	}

	results := make([]SensitivityScenario, 0, len(variations))
	for i, variation := range variations {
		scale := decimal.NewFromFloat(1 + variation)
		adjusted := make([]decimal.Decimal, len(baseFlows))
		for j, f := range baseFlows {
			adjusted[j] = f.Mul(scale)
		}

		npv := NPV(initial, adjusted, discountRate)

		label := fmt.Sprintf("%+.0f%%", variation*100)
		if len(variations) == len(scenarioLabels) {
			label = scenarioLabels[i]
		}

		results = append(results, SensitivityScenario{
			Scenario:  label,
			Variation: variation,
			NPV:       npv,
			IRR:       IRR(initial, adjusted),
			Viable:    npv.IsPositive(),
		})
	}
	return results
}

// perturbedSeries returns the net flow series and discount rate after
// applying a variation to a single variable, the others held at base.
func perturbedSeries(income, costs []decimal.Decimal, discountRate decimal.Decimal, variable Variable, variation float64) ([]decimal.Decimal, decimal.Decimal) {
	scale := decimal.NewFromFloat(1 + variation)
	net := make([]decimal.Decimal, len(income))

	switch variable {
	case VariableIncome:
		for i := range income {
			net[i] = income[i].Mul(scale).Sub(costs[i])
		}
		return net, discountRate
	case VariableCost:
		for i := range income {
			net[i] = income[i].Sub(costs[i].Mul(scale))
		}
		return net, discountRate
	default: // VariableDiscountRate
		for i := range income {
			net[i] = income[i].Sub(costs[i])
		}
		return net, discountRate.Mul(scale)
	}
}

// scenarioLabel classifies a variation by sign.
func scenarioLabel(variation float64) string {
	switch {
	case variation < 0:
		return "Pessimistic"
	case variation > 0:
		return "Optimistic"
	default:
		return "Base"
	}
}

// classifyScenario maps a scenario outcome to a viability status. A project
// is only called viable when the IRR also clears the base discount rate;
// a loss deeper than 10% of the investment is outright non-viable.
func classifyScenario(npv decimal.Decimal, irr *decimal.Decimal, initial, discountRate decimal.Decimal) string {
	if npv.IsPositive() {
		if irr != nil && irr.Cmp(discountRate) > 0 {
			return StatusViable
		}
		return StatusModerateRisk
	}
	if npv.Cmp(initial.Mul(decimal.NewFromFloat(-0.10))) < 0 {
		return StatusNotViable
	}
	return StatusHighRisk
}

// SensitivityByVariable perturbs a single variable (income or cost flows
// scaled per period, or the discount rate scaled as a whole) across the
// variation grid and recomputes NPV and IRR for each scenario.
func SensitivityByVariable(initial decimal.Decimal, income, costs []decimal.Decimal, discountRate decimal.Decimal, variable Variable, variations []float64) ([]VariableScenario, error) {
	if variable != VariableIncome && variable != VariableCost && variable != VariableDiscountRate {
		return nil, domain.Invalid("variable", "must be income, cost or discount_rate")
	}
	if _, err := NetFlows(income, costs); err != nil {
		return nil, err
	}
	if len(variations) == 0 {
		variations = DefaultVariableVariations
	}

	results := make([]VariableScenario, 0, len(variations))
	for _, variation := range variations {
		flows, rate := perturbedSeries(income, costs, discountRate, variable, variation)
		npv := NPV(initial, flows, rate)
		irr := IRR(initial, flows)

		results = append(results, VariableScenario{
			Scenario:  scenarioLabel(variation),
			Variation: variation,
			NPV:       npv,
			IRR:       irr,
			Status:    classifyScenario(npv, irr, initial, discountRate),
		})
	}
	return results, nil
}

// CrossSensitivityMatrix builds a 2-D grid of NPVs: rows vary income,
// columns vary the discount rate, each cell holding the combined result.
func CrossSensitivityMatrix(initial decimal.Decimal, income, costs []decimal.Decimal, discountRate decimal.Decimal, variations []float64) (*CrossMatrix, error) {
	if _, err := NetFlows(income, costs); err != nil {
		return nil, err
	}
	if len(variations) == 0 {
		variations = DefaultMatrixVariations
	}

	rowLabels := make([]string, 0, len(variations))
	colLabels := make([]string, 0, len(variations))
	for _, v := range variations {
		switch {
		case v < 0:
			rowLabels = append(rowLabels, fmt.Sprintf("%.0f%% income", v*100))
		case v > 0:
			rowLabels = append(rowLabels, fmt.Sprintf("+%.0f%% income", v*100))
		default:
			rowLabels = append(rowLabels, "Base")
		}
	}

	cells := make([][]MatrixCell, 0, len(variations))
	for _, incomeVar := range variations {
		scale := decimal.NewFromFloat(1 + incomeVar)
		flows := make([]decimal.Decimal, len(income))
		for i := range income {
			flows[i] = income[i].Mul(scale).Sub(costs[i])
		}

		row := make([]MatrixCell, 0, len(variations))
		for _, rateVar := range variations {
			rate := discountRate.Mul(decimal.NewFromFloat(1 + rateVar))
			npv := NPV(initial, flows, rate)
			row = append(row, MatrixCell{
				NPV:             npv,
				Viable:          npv.IsPositive(),
				IncomeVariation: incomeVar,
				RateVariation:   rateVar,
			})
		}
		cells = append(cells, row)
	}

	for _, v := range variations {
		rate := discountRate.Mul(decimal.NewFromFloat(1 + v))
		colLabels = append(colLabels, fmt.Sprintf("%.1f%%", rate.InexactFloat64()*100))
	}

	return &CrossMatrix{
		Cells:     cells,
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Variables: MatrixAxes{
			Rows:    string(VariableIncome),
			Columns: string(VariableDiscountRate),
		},
	}, nil
}

// DefaultTornadoVariation is the symmetric perturbation applied per variable.
const DefaultTornadoVariation = 0.10

// TornadoData computes, for each of income, cost and discount rate, the NPV
// at +variation and -variation with the others held at base. Entries are
// sorted by impact, |NPV(+v) - NPV(-v)|, descending.
func TornadoData(initial decimal.Decimal, income, costs []decimal.Decimal, discountRate decimal.Decimal, variation float64) ([]TornadoEntry, error) {
	net, err := NetFlows(income, costs)
	if err != nil {
		return nil, err
	}
	if variation == 0 {
		variation = DefaultTornadoVariation
	}

	baseNPV := NPV(initial, net, discountRate)

	variables := []Variable{VariableIncome, VariableCost, VariableDiscountRate}
	entries := make([]TornadoEntry, 0, len(variables))
	for _, variable := range variables {
		upFlows, upRate := perturbedSeries(income, costs, discountRate, variable, variation)
		downFlows, downRate := perturbedSeries(income, costs, discountRate, variable, -variation)

		npvUp := NPV(initial, upFlows, upRate)
		npvDown := NPV(initial, downFlows, downRate)

		entries = append(entries, TornadoEntry{
			Variable:    variable,
			NPVPositive: npvUp,
			NPVNegative: npvDown,
			NPVBase:     baseNPV,
			Impact:      npvUp.Sub(npvDown).Abs(),
			Variation:   variation,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Impact.Cmp(entries[j].Impact) > 0
	})
	return entries, nil
}
