package financial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullEvaluation_AllSections(t *testing.T) {
	report, err := FullEvaluation(d(1000), series(600, 600, 600), series(100, 100, 100), d(0.10), false)

	require.NoError(t, err)
	require.NotNil(t, report.Evaluation)
	assert.True(t, report.Evaluation.Viable)
	assert.Len(t, report.Sensitivity.Income, 5)
	assert.Len(t, report.Sensitivity.Costs, 5)
	require.NotNil(t, report.Breakeven.Income)
	require.NotNil(t, report.Breakeven.Costs)
	require.NotNil(t, report.CrossMatrix)
	assert.Len(t, report.Tornado, 3)
	assert.Nil(t, report.MonteCarlo, "Monte Carlo is opt-in")
}

func TestFullEvaluation_WithMonteCarlo(t *testing.T) {
	report, err := FullEvaluation(d(1000), series(600, 600, 600), series(100, 100, 100), d(0.10), true)

	require.NoError(t, err)
	require.NotNil(t, report.MonteCarlo)
	assert.Equal(t, DefaultSimulations, report.MonteCarlo.Simulations)
}

func TestFullEvaluation_MismatchedSeries(t *testing.T) {
	_, err := FullEvaluation(d(1000), series(600, 600), series(100), d(0.10), false)

	assert.Error(t, err)
}
