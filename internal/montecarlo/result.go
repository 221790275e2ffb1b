package montecarlo

import "math"

// Result holds the outcome counts of one simulation run
type Result struct {
	Wins   int
	Ties   int
	Losses int
	Trials int
}

// WinRate returns the win rate (0.0 to 1.0)
func (r Result) WinRate() float64 {
	return r.rate(r.Wins)
}

// TieRate returns the tie rate (0.0 to 1.0)
func (r Result) TieRate() float64 {
	return r.rate(r.Ties)
}

// LossRate returns the loss rate (0.0 to 1.0)
func (r Result) LossRate() float64 {
	return r.rate(r.Losses)
}

// Equity returns the share of the pot won on average.
// Wins count as 1.0, ties count as 0.5
func (r Result) Equity() float64 {
	if r.Trials == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)*0.5) / float64(r.Trials)
}

func (r Result) rate(n int) float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(n) / float64(r.Trials)
}

// StdDev returns the standard error of the win-rate estimator, sqrt(p(1-p)/n)
func (r Result) StdDev() float64 {
	if r.Trials == 0 {
		return 0
	}
	p := r.WinRate()
	return math.Sqrt(p * (1 - p) / float64(r.Trials))
}

// ConfidenceInterval returns the normal-approximation interval for the win
// rate at the given confidence level, clamped to [0, 1]
func (r Result) ConfidenceInterval(level float64) (lower, upper float64) {
	if r.Trials == 0 {
		return 0, 0
	}
	p := r.WinRate()
	margin := ZScore(level) * r.StdDev()
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// ZScore maps a confidence level to the two-sided normal z-score.
// Levels below 0.90 fall back to 95%.
func ZScore(level float64) float64 {
	switch {
	case level >= 0.99:
		return 2.576
	case level >= 0.95:
		return 1.96
	case level >= 0.90:
		return 1.645
	default:
		return 1.96
	}
}
