package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 25.0, Mean([]float64{10, 20, 30, 40}))
	assert.Equal(t, 0.0, Mean(nil), "empty input should not panic")
}

func TestPopStdDev(t *testing.T) {
	// Population deviation of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2.
	assert.InDelta(t, 2.0, PopStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	assert.Equal(t, 0.0, PopStdDev(nil))
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	data := []float64{10, 20, 30, 40}

	assert.InDelta(t, 17.5, Percentile(data, 25), 1e-12)
	assert.InDelta(t, 25.0, Percentile(data, 50), 1e-12)
	assert.Equal(t, 10.0, Percentile(data, 0))
	assert.Equal(t, 40.0, Percentile(data, 100))
}

func TestPercentile_UnsortedInput(t *testing.T) {
	data := []float64{40, 10, 30, 20}

	assert.InDelta(t, 25.0, Percentile(data, 50), 1e-12)
	assert.Equal(t, []float64{40, 10, 30, 20}, data, "input slice must not be mutated")
}

func TestMedian_OddLength(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3, 2, 4}))
}
