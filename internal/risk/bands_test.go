package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDTIBands(t *testing.T) {
	cases := []struct {
		name  string
		ratio float64
		want  int
	}{
		{"excellent band", 0.10, 966},
		{"excellent band near ceiling", 0.0, 999},
		{"good band", 0.35, 800},
		{"fair band lower edge", 0.40, 700},
		{"fair band upper edge", 0.50, 500},
		{"tail decay", 0.60, 400},
		{"tail floors at zero", 1.20, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dtiBands.score(tc.ratio))
		})
	}
}

func TestLTVBands(t *testing.T) {
	cases := []struct {
		name  string
		ratio float64
		want  int
	}{
		{"excellent band", 0.50, 916},
		{"good band", 0.70, 800},
		{"fair band lower edge", 0.80, 700},
		{"fair band upper edge", 1.00, 500},
		{"tail decay", 1.50, 250},
		{"tail floors at zero", 3.00, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ltvBands.score(tc.ratio))
		})
	}
}
