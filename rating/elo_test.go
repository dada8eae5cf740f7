package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpected(t *testing.T) {
	assert.InDelta(t, 0.5, Expected(1000, 1000), 1e-9)
	assert.InDelta(t, 1.0, Expected(1400, 1000)+Expected(1000, 1400), 1e-9)
	assert.InDelta(t, 0.909, Expected(1400, 1000), 1e-3)
}

func TestApplyResult(t *testing.T) {
	tests := []struct {
		name      string
		a, b      int
		winnerIsA bool
		k         int
		wantA     int
		wantB     int
	}{
		{name: "equal ratings, A wins", a: 1000, b: 1000, winnerIsA: true, k: 32, wantA: 1016, wantB: 984},
		{name: "equal ratings, B wins", a: 1000, b: 1000, winnerIsA: false, k: 32, wantA: 984, wantB: 1016},
		{name: "zero k falls back to default", a: 1000, b: 1000, winnerIsA: true, k: 0, wantA: 1016, wantB: 984},
		{name: "custom k", a: 1200, b: 1200, winnerIsA: true, k: 16, wantA: 1208, wantB: 1192},
		{name: "favourite wins small", a: 1400, b: 1000, winnerIsA: true, k: 32, wantA: 1403, wantB: 997},
		{name: "upset swings big", a: 1400, b: 1000, winnerIsA: false, k: 32, wantA: 1371, wantB: 1029},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotA, gotB := ApplyResult(tt.a, tt.b, tt.winnerIsA, tt.k)
			assert.Equal(t, tt.wantA, gotA)
			assert.Equal(t, tt.wantB, gotB)
		})
	}
}

func TestApplyResultIsZeroSumAtEqualRatings(t *testing.T) {
	for _, r := range []int{0, 800, 1000, 1500, 2300} {
		for _, k := range []int{10, 16, 24, 32, 40} {
			newA, newB := ApplyResult(r, r, true, k)
			assert.Equal(t, newA-r, r-newB, "rating %d, k %d", r, k)
		}
	}
}

func TestApplyResultAllowsNegativeRatings(t *testing.T) {
	_, newB := ApplyResult(10, 10, true, 40)
	assert.Equal(t, -10, newB)
}
