package financial

import (
	"github.com/shopspring/decimal"
)

// FullEvaluation orchestrates every analysis into one combined report:
// deterministic valuation, per-variable sensitivity for income and costs,
// breakeven for both, the cross-sensitivity matrix, tornado ranking and,
// optionally, a Monte Carlo simulation with the default parameters.
func FullEvaluation(initial decimal.Decimal, income, costs []decimal.Decimal, discountRate decimal.Decimal, includeMonteCarlo bool) (*FullEvaluationReport, error) {
	net, err := NetFlows(income, costs)
	if err != nil {
		return nil, err
	}

	evaluation, err := EvaluateProject(initial, net, discountRate, decimal.NewFromFloat(DefaultMinAcceptableRate))
	if err != nil {
		return nil, err
	}

	sensIncome, err := SensitivityByVariable(initial, income, costs, discountRate, VariableIncome, nil)
	if err != nil {
		return nil, err
	}
	sensCosts, err := SensitivityByVariable(initial, income, costs, discountRate, VariableCost, nil)
	if err != nil {
		return nil, err
	}

	beIncome, err := BreakevenVariable(initial, income, costs, discountRate, VariableIncome)
	if err != nil {
		return nil, err
	}
	beCosts, err := BreakevenVariable(initial, income, costs, discountRate, VariableCost)
	if err != nil {
		return nil, err
	}

	matrix, err := CrossSensitivityMatrix(initial, income, costs, discountRate, nil)
	if err != nil {
		return nil, err
	}

	tornado, err := TornadoData(initial, income, costs, discountRate, DefaultTornadoVariation)
	if err != nil {
		return nil, err
	}

	report := &FullEvaluationReport{
		Evaluation: evaluation,
		Sensitivity: VariableSensitivity{
			Income: sensIncome,
			Costs:  sensCosts,
		},
		Breakeven: BreakevenSet{
			Income: beIncome,
			Costs:  beCosts,
		},
		CrossMatrix: matrix,
		Tornado:     tornado,
	}

	if includeMonteCarlo {
		mc, err := MonteCarloSimulation(initial, income, costs, discountRate, MonteCarloParams{})
		if err != nil {
			return nil, err
		}
		report.MonteCarlo = mc
	}
	return report, nil
}
