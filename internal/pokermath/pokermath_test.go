package pokermath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPotOdds(t *testing.T) {
	assert.InDelta(t, 2.0, PotOdds(100, 50), 1e-12)
	assert.InDelta(t, 2.0, PotOdds(200, 100), 1e-12)
	assert.Zero(t, PotOdds(100, 0))
	assert.Zero(t, PotOdds(100, -10))
}

func TestPotOddsPercentage(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, PotOddsPercentage(100, 50), 1e-12)
	assert.Zero(t, PotOddsPercentage(0, 0))
}

func TestImpliedOdds(t *testing.T) {
	assert.InDelta(t, 4.0, ImpliedOdds(100, 50, 100), 1e-12)
	assert.Zero(t, ImpliedOdds(100, 0, 100))
}

func TestExpectedValue(t *testing.T) {
	assert.InDelta(t, 0.5*200-0.5*100, ExpectedValue(0.5, 200, 100), 1e-12)
	assert.InDelta(t, -100.0, ExpectedValue(0, 200, 100), 1e-12)
	assert.Negative(t, ExpectedValue(0.3, 200, 100))
	// Break-even sits exactly at the pot odds percentage
	assert.InDelta(t, 0.0, ExpectedValue(PotOddsPercentage(200, 100), 200, 100), 1e-9)
}

func TestIsProfitableCall(t *testing.T) {
	assert.True(t, IsProfitableCall(0.40, 100, 50))
	assert.False(t, IsProfitableCall(0.30, 100, 50))
}

func TestKellyFraction(t *testing.T) {
	assert.InDelta(t, 0.4, KellyFraction(0.6, 2.0), 1e-12)

	assert.Zero(t, KellyFraction(0, 2.0))
	assert.Zero(t, KellyFraction(1, 2.0))
	assert.Zero(t, KellyFraction(0.6, 0))
	assert.Zero(t, KellyFraction(0.1, 1.0), "negative edge clamps to 0")

	for p := 0.01; p < 1; p += 0.01 {
		for _, b := range []float64{0.1, 0.5, 1, 2, 5, 100, 1e6} {
			k := KellyFraction(p, b)
			assert.GreaterOrEqual(t, k, 0.0)
			assert.LessOrEqual(t, k, 1.0)
		}
	}
}

func TestFractionalKelly(t *testing.T) {
	assert.InDelta(t, 0.2, FractionalKelly(0.6, 2.0, 0.5), 1e-12)
}

func TestMinimumDefenseFrequency(t *testing.T) {
	assert.InDelta(t, 2.0/3.0, MinimumDefenseFrequency(100, 50), 1e-12)
	assert.Zero(t, MinimumDefenseFrequency(0, 0))
}

func TestRiskOfRuin(t *testing.T) {
	assert.Equal(t, 1.0, RiskOfRuin(0.5, 1000, 100), "no edge")
	assert.Equal(t, 1.0, RiskOfRuin(0.4, 1000, 100), "negative edge")
	assert.Equal(t, 1.0, RiskOfRuin(0.6, 0, 100))
	assert.Equal(t, 1.0, RiskOfRuin(0.6, 1000, 0))

	// edge 0.2: (0.8/1.2)^10
	assert.InDelta(t, 0.017341529915832, RiskOfRuin(0.6, 1000, 100), 1e-12)
	assert.Less(t, RiskOfRuin(0.6, 2000, 100), RiskOfRuin(0.6, 1000, 100))
}

func TestSharpeRatio(t *testing.T) {
	assert.InDelta(t, 2.0, SharpeRatio(10, 5, 0), 1e-12)
	assert.Zero(t, SharpeRatio(10, 0, 0))
}

func TestStackToPotRatio(t *testing.T) {
	assert.InDelta(t, 5.0, StackToPotRatio(1000, 200), 1e-12)
	assert.Zero(t, StackToPotRatio(1000, 0))
}
