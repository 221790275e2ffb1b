// Package pokermath converts win probabilities and pot sizes into odds,
// expected value and bet sizing. Every function is total: a zero or negative
// denominator yields 0 rather than an error.
package pokermath

import "math"

// PotOdds returns pot / call as a ratio, e.g. 2.0 for 2:1
func PotOdds(pot, call int) float64 {
	if call <= 0 {
		return 0
	}
	return float64(pot) / float64(call)
}

// PotOddsPercentage returns call / (pot + call), the equity a call needs to
// break even
func PotOddsPercentage(pot, call int) float64 {
	if pot+call <= 0 {
		return 0
	}
	return float64(call) / float64(pot+call)
}

// ImpliedOdds returns pot odds against the pot plus bets expected on later streets
func ImpliedOdds(pot, call, futureBets int) float64 {
	return PotOdds(pot+futureBets, call)
}

// ExpectedValue returns winProb*pot - (1-winProb)*call. It may be negative.
func ExpectedValue(winProb float64, pot, call int) float64 {
	return winProb*float64(pot) - (1-winProb)*float64(call)
}

// IsProfitableCall reports whether equity exceeds the break-even percentage
func IsProfitableCall(equity float64, pot, call int) bool {
	return equity > PotOddsPercentage(pot, call)
}

// KellyFraction returns (b*p - q) / b clamped to [0, 1], where b is the pot
// odds ratio. Certain outcomes (p of 0 or 1) and non-positive odds return 0.
func KellyFraction(winProb, potOdds float64) float64 {
	if winProb <= 0 || winProb >= 1 || potOdds <= 0 {
		return 0
	}
	q := 1 - winProb
	kelly := (potOdds*winProb - q) / potOdds
	return math.Max(0, math.Min(1, kelly))
}

// FractionalKelly scales the Kelly fraction, e.g. 0.5 for half-Kelly
func FractionalKelly(winProb, potOdds, fraction float64) float64 {
	return KellyFraction(winProb, potOdds) * fraction
}

// MinimumDefenseFrequency returns pot / (pot + bet)
func MinimumDefenseFrequency(pot, bet int) float64 {
	if pot+bet <= 0 {
		return 0
	}
	return float64(pot) / float64(pot+bet)
}

// RiskOfRuin returns ((1-edge)/(1+edge))^(bankroll/bet) with edge = 2*winRate-1.
// Without a positive edge, bankroll or bet, ruin is certain and it returns 1.
func RiskOfRuin(winRate float64, bankroll, bet int) float64 {
	if bankroll <= 0 || bet <= 0 {
		return 1
	}
	edge := 2*winRate - 1
	if edge <= 0 {
		return 1
	}
	ratio := (1 - edge) / (1 + edge)
	return math.Pow(ratio, float64(bankroll)/float64(bet))
}

// SharpeRatio returns (avgReturn - riskFree) / stdDev, 0 without variance
func SharpeRatio(avgReturn, stdDev, riskFree float64) float64 {
	if stdDev <= 0 {
		return 0
	}
	return (avgReturn - riskFree) / stdDev
}

// StackToPotRatio returns stack / pot
func StackToPotRatio(stack, pot int) float64 {
	if pot <= 0 {
		return 0
	}
	return float64(stack) / float64(pot)
}
