package statistics

import (
	"fmt"
	"math"
	"slices"
)

// Position is the hero's acting order in a heads-up hand.
type Position int

const (
	// ActsFirst means the hero was first to decide on every street.
	ActsFirst Position = iota
	// ActsLast means the hero saw the villain's decision first.
	ActsLast
)

func (p Position) String() string {
	if p == ActsLast {
		return "acts last"
	}
	return "acts first"
}

// HandResult represents the outcome of a single heads-up hand from the hero's seat
type HandResult struct {
	Net            int      // Chips won or lost by the hero
	Seed           uint64   // Deck seed for this hand (for replay)
	Position       Position // Hero's acting order
	WentToShowdown bool     // Did hand go to showdown?
	Split          bool     // Was the pot split at showdown?
	FinalPotSize   int      // Final pot size in chips
	StreetReached  string   // Furthest street reached (Flop, Turn, River)
}

// PositionStats tracks statistics for one acting order
type PositionStats struct {
	Hands  int
	Sum    float64
	SumSq  float64
	Wins   int
	Losses int
}

// Mean returns the average net chips for this position.
func (p PositionStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.Sum / float64(p.Hands)
}

// Statistics tracks running results of a bot-versus-bot session in chips.
// BigPot sets the pot size (in chips) counted as a big pot; zero disables it.
type Statistics struct {
	Hands  int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	// Track ALL results, not just wins
	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won because the villain folded
	Splits          int     // Pots split at showdown
	ShowdownNet     float64 // Chips from showdown (wins AND losses)
	NonShowdownNet  float64 // Chips from folds (wins AND losses)
	AllNet          float64 // Total chips for sanity check

	PositionResults [2]PositionStats

	// Pot size analytics
	BigPot       int
	MaxPot       int
	BigPots      int
	BigPotsNet   float64
	StreetCounts map[string]int
}

// New returns statistics that count pots of at least bigPot chips as big pots.
func New(bigPot int) *Statistics {
	return &Statistics{BigPot: bigPot}
}

// Mean returns the arithmetic mean of all results in chips per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
	if v < 0 {
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	return s.ConfidenceInterval(1.96)
}

// ConfidenceInterval returns mean ± z standard errors.
func (s *Statistics) ConfidenceInterval(z float64) (float64, float64) {
	mean := s.Mean()
	margin := z * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := float64(result.Net)
	s.Hands++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	if result.Net > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.Split {
		s.Splits++
	}

	if result.WentToShowdown {
		s.ShowdownNet += net
	} else {
		s.NonShowdownNet += net
	}
	s.AllNet += net

	if pos := result.Position; pos == ActsFirst || pos == ActsLast {
		ps := &s.PositionResults[pos]
		ps.Hands++
		ps.Sum += net
		ps.SumSq += net * net
		switch {
		case result.Net > 0:
			ps.Wins++
		case result.Net < 0:
			ps.Losses++
		}
	}

	if result.FinalPotSize > s.MaxPot {
		s.MaxPot = result.FinalPotSize
	}
	if s.BigPot > 0 && result.FinalPotSize >= s.BigPot {
		s.BigPots++
		s.BigPotsNet += net
	}

	if result.StreetReached != "" {
		if s.StreetCounts == nil {
			s.StreetCounts = make(map[string]int)
		}
		s.StreetCounts[result.StreetReached]++
	}
}

// WinRate returns the fraction of hands with a positive result.
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.ShowdownWins+s.NonShowdownWins) / float64(s.Hands)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	p = math.Max(0, math.Min(1, p))

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)
	return sorted
}

// PositionMean returns the mean result for an acting order
func (s *Statistics) PositionMean(position Position) float64 {
	if position != ActsFirst && position != ActsLast {
		return 0
	}
	return s.PositionResults[position].Mean()
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.NonShowdownNet) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.2f, showdown=%.2f, non-showdown=%.2f",
			s.AllNet, s.ShowdownNet, s.NonShowdownNet)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	totalWins := s.ShowdownWins + s.NonShowdownWins
	if totalWins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", totalWins, s.Hands)
	}

	positionHands := s.PositionResults[ActsFirst].Hands + s.PositionResults[ActsLast].Hands
	if positionHands != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)",
			positionHands, s.Hands)
	}

	return nil
}
