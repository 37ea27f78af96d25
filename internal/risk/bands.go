package risk

import "math"

// scoreBands maps a financial ratio onto the 0-1000 score scale through four
// linearly interpolated tiers. The first three bands share the 900/700/500
// floors; beyond the last threshold the score decays along tailSlope. The
// same shape serves both the DTI and LTV scorers, so the banding logic lives
// in exactly one place.
type scoreBands struct {
	thresholds [3]float64 // tier upper bounds for the ratio
	slopes     [3]float64 // points per unit of ratio below each bound
	tailSlope  float64    // points lost per unit of ratio beyond the last bound
}

// score maps a ratio through the band table. Output is clamped to [0, 1000].
func (b scoreBands) score(ratio float64) int {
	var s float64
	switch {
	case ratio < b.thresholds[0]:
		s = math.Min(900+(b.thresholds[0]-ratio)*b.slopes[0], 1000)
	case ratio < b.thresholds[1]:
		s = 700 + (b.thresholds[1]-ratio)*b.slopes[1]
	case ratio <= b.thresholds[2]:
		s = 500 + (b.thresholds[2]-ratio)*b.slopes[2]
	default:
		s = math.Max(0, 500-(ratio-b.thresholds[2])*b.tailSlope)
	}
	return int(s)
}

// Debt-to-income bands: <30% excellent, 30-40% good, 40-50% fair, beyond
// that the score decays 1000 points per unit of DTI.
var dtiBands = scoreBands{
	thresholds: [3]float64{0.30, 0.40, 0.50},
	slopes:     [3]float64{333, 2000, 2000},
	tailSlope:  1000,
}

// Loan-to-value bands: <60% excellent, 60-80% good, 80-100% fair, beyond
// full coverage the score decays 500 points per unit of LTV.
var ltvBands = scoreBands{
	thresholds: [3]float64{0.60, 0.80, 1.00},
	slopes:     [3]float64{166, 1000, 1000},
	tailSlope:  500,
}
