package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrent_FindsRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x - 4 }

	root, err := Brent(f, 0, 5, 1e-10, 100)

	require.NoError(t, err)
	assert.InDelta(t, 2.0, root, 1e-8, "Brent should find the root of x^2-4 in [0,5]")
}

func TestBrent_NoBracket(t *testing.T) {
	f := func(x float64) float64 { return x*x - 4 }

	_, err := Brent(f, 3, 5, 1e-10, 100)

	assert.ErrorIs(t, err, ErrNoBracket, "interval with same-sign endpoints should not bracket a root")
}

func TestBrent_RootAtEndpoint(t *testing.T) {
	f := func(x float64) float64 { return x - 2 }

	root, err := Brent(f, 2, 5, 1e-10, 100)

	require.NoError(t, err)
	assert.Equal(t, 2.0, root)
}

func TestNewton_FindsRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x - 4 }
	df := func(x float64) float64 { return 2 * x }

	root, err := Newton(f, df, 3, 1e-10, 100)

	require.NoError(t, err)
	assert.InDelta(t, 2.0, root, 1e-8)
}

func TestNewton_ZeroDerivative(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	df := func(x float64) float64 { return 0 }

	_, err := Newton(f, df, 1, 1e-10, 100)

	assert.ErrorIs(t, err, ErrNoConvergence)
}
