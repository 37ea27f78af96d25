package formulas

import (
	"errors"
	"math"
)

// Root-finding errors. Callers treat these as "no solution in range", which
// is a valid business outcome for IRR and breakeven searches.
var (
	ErrNoBracket     = errors.New("formulas: interval does not bracket a root")
	ErrNoConvergence = errors.New("formulas: root search did not converge")
)

// Brent finds a root of f in [a, b] using Brent's method (inverse quadratic
// interpolation with secant and bisection fallbacks). The interval must
// bracket a root: f(a) and f(b) must have opposite signs.
func Brent(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa := f(a)
	fb := f(b)

	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if fa*fb > 0 {
		return 0, ErrNoBracket
	}

	// b is the best estimate, a the previous one, c the last bracket point.
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	mflag := true
	var d float64

	for i := 0; i < maxIter; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b, nil
		}

		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// Secant
			s = b - fb*(b-a)/(fb-fa)
		}

		lo := (3*a + b) / 4
		hi := b
		if lo > hi {
			lo, hi = hi, lo
		}
		bisect := s < lo || s > hi ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < tol) ||
			(!mflag && math.Abs(c-d) < tol)
		if bisect {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d = c
		c, fc = b, fb

		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}

		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}

	if math.Abs(fb) < tol {
		return b, nil
	}
	return 0, ErrNoConvergence
}

// Newton finds a root of f starting from x0 using Newton-Raphson with the
// analytic derivative df. Returns ErrNoConvergence when the iteration stalls,
// diverges, or produces a non-finite value.
func Newton(f, df func(float64) float64, x0, tol float64, maxIter int) (float64, error) {
	x := x0
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if math.Abs(fx) < tol {
			return x, nil
		}
		dfx := df(x)
		if dfx == 0 || math.IsNaN(dfx) || math.IsInf(dfx, 0) {
			return 0, ErrNoConvergence
		}
		next := x - fx/dfx
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, ErrNoConvergence
		}
		if math.Abs(next-x) < tol {
			return next, nil
		}
		x = next
	}
	return 0, ErrNoConvergence
}
