package financial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincore/engines/internal/domain"
)

func TestMonteCarloSimulation_Defaults(t *testing.T) {
	result, err := MonteCarloSimulation(d(1000), series(600, 600, 600), series(100, 100, 100), d(0.10), MonteCarloParams{})

	require.NoError(t, err)
	assert.Equal(t, DefaultSimulations, result.Simulations)

	// Order statistics must be ordered.
	assert.True(t, result.Min.Cmp(result.Percentile5) <= 0)
	assert.True(t, result.Percentile5.Cmp(result.Median) <= 0)
	assert.True(t, result.Median.Cmp(result.Percentile95) <= 0)
	assert.True(t, result.Percentile95.Cmp(result.Max) <= 0)
	assert.True(t, result.ValueAtRisk.Equal(result.Percentile5))

	assert.True(t, result.LossProbability.Cmp(d(0)) >= 0)
	assert.True(t, result.LossProbability.Cmp(d(1)) <= 0)

	require.Len(t, result.Histogram.Counts, 20)
	require.Len(t, result.Histogram.Edges, 21)
	total := 0
	for _, c := range result.Histogram.Counts {
		total += c
	}
	assert.Equal(t, result.Simulations, total, "every trial lands in exactly one bucket")
}

func TestMonteCarloSimulation_Deterministic(t *testing.T) {
	params := MonteCarloParams{Simulations: 300, Seed: 42}

	a, err := MonteCarloSimulation(d(1000), series(600, 600, 600), series(100, 100, 100), d(0.10), params)
	require.NoError(t, err)
	b, err := MonteCarloSimulation(d(1000), series(600, 600, 600), series(100, 100, 100), d(0.10), params)
	require.NoError(t, err)

	assert.True(t, a.Mean.Equal(b.Mean))
	assert.True(t, a.StdDev.Equal(b.StdDev))
	assert.True(t, a.Min.Equal(b.Min))
	assert.True(t, a.Max.Equal(b.Max))
	assert.True(t, a.LossProbability.Equal(b.LossProbability))
	assert.Equal(t, a.Histogram.Counts, b.Histogram.Counts)
}

func TestMonteCarloSimulation_SeedChangesOutcome(t *testing.T) {
	a, err := MonteCarloSimulation(d(1000), series(600, 600, 600), series(100, 100, 100), d(0.10), MonteCarloParams{Simulations: 300, Seed: 1})
	require.NoError(t, err)
	b, err := MonteCarloSimulation(d(1000), series(600, 600, 600), series(100, 100, 100), d(0.10), MonteCarloParams{Simulations: 300, Seed: 2})
	require.NoError(t, err)

	assert.False(t, a.Mean.Equal(b.Mean), "different seeds should produce different draws")
}

func TestMonteCarloSimulation_SimulationBounds(t *testing.T) {
	var verr *domain.ValidationError

	_, err := MonteCarloSimulation(d(1000), series(600), series(100), d(0.10), MonteCarloParams{Simulations: 50})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "n_simulaciones", verr.Field)

	_, err = MonteCarloSimulation(d(1000), series(600), series(100), d(0.10), MonteCarloParams{Simulations: 6000})
	assert.ErrorAs(t, err, &verr)
}

func TestMonteCarloSimulation_MismatchedSeries(t *testing.T) {
	_, err := MonteCarloSimulation(d(1000), series(600, 600), series(100), d(0.10), MonteCarloParams{})

	assert.Error(t, err)
}
