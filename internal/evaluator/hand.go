package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-cli/internal/deck"
)

// HandCategory is one of the ten standard hand classes, ordered weakest first
type HandCategory int

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand category
func (hc HandCategory) String() string {
	switch hc {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandValue is the result of evaluating a hand: its category plus the
// tie-break ranks for that category, most significant first.
type HandValue struct {
	Category HandCategory
	Kickers  []int
}

// String returns e.g. "Full House [13 9]"
func (hv HandValue) String() string {
	return fmt.Sprintf("%s %v", hv.Category, hv.Kickers)
}

// Describe returns a readable description such as "Two Pair, Kings and Nines"
func (hv HandValue) Describe() string {
	k := hv.Kickers
	at := func(i int) string {
		if i < len(k) && k[i] > 0 {
			return rankName(k[i])
		}
		return "?"
	}

	switch hv.Category {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", singular(at(0)))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", at(0))
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", at(0), at(1))
	case Flush:
		return fmt.Sprintf("Flush, %s high", singular(at(0)))
	case Straight:
		return fmt.Sprintf("Straight, %s high", singular(at(0)))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", at(0))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", at(0), at(1))
	case OnePair:
		return fmt.Sprintf("Pair of %s", at(0))
	default:
		return fmt.Sprintf("High Card, %s", singular(at(0)))
	}
}

// Compare compares two hand values and returns:
// -1 if a is weaker than b
//
//	0 if a ties b
//	1 if a is stronger than b
//
// Categories are compared first, then kickers pairwise until one differs or
// either list runs out.
func Compare(a, b HandValue) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}

	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if a.Kickers[i] < b.Kickers[i] {
			return -1
		}
		if a.Kickers[i] > b.Kickers[i] {
			return 1
		}
	}
	return 0
}

// Beats returns true if hv is strictly stronger than other
func (hv HandValue) Beats(other HandValue) bool {
	return Compare(hv, other) > 0
}

// Ties returns true if hv and other split the pot at showdown
func (hv HandValue) Ties(other HandValue) bool {
	return Compare(hv, other) == 0
}

// Explain describes why one hand beats the other, or that they tie
func Explain(a, b HandValue) string {
	result := Compare(a, b)
	if result == 0 {
		return fmt.Sprintf("%s ties %s", a.Describe(), b.Describe())
	}

	winner, loser := a, b
	if result < 0 {
		winner, loser = b, a
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s beats %s", winner.Describe(), loser.Describe())
	if winner.Category != loser.Category {
		return sb.String()
	}

	// Same category: name the first kicker that decided it
	for i := 0; i < len(winner.Kickers) && i < len(loser.Kickers); i++ {
		w, l := winner.Kickers[i], loser.Kickers[i]
		if w == l {
			continue
		}
		fmt.Fprintf(&sb, " with %s (%s vs %s)", kickerLabel(winner.Category, i), rankShort(w), rankShort(l))
		break
	}
	return sb.String()
}

func kickerLabel(category HandCategory, i int) string {
	switch category {
	case OnePair:
		if i == 0 {
			return "higher pair"
		}
	case TwoPair:
		switch i {
		case 0:
			return "higher top pair"
		case 1:
			return "higher bottom pair"
		}
	case ThreeOfAKind:
		if i == 0 {
			return "higher trips"
		}
	case FourOfAKind:
		if i == 0 {
			return "higher quads"
		}
	case FullHouse:
		if i == 0 {
			return "higher trips"
		}
		return "higher pair"
	case Straight, StraightFlush:
		return "higher straight"
	}
	return "higher kicker"
}

func rankShort(v int) string {
	if v <= 0 {
		return "-"
	}
	return deck.Rank(v).String()
}

func rankName(v int) string {
	switch deck.Rank(v) {
	case deck.Ace, deck.AceLow:
		return "Aces"
	case deck.King:
		return "Kings"
	case deck.Queen:
		return "Queens"
	case deck.Jack:
		return "Jacks"
	case deck.Ten:
		return "Tens"
	case deck.Nine:
		return "Nines"
	case deck.Eight:
		return "Eights"
	case deck.Seven:
		return "Sevens"
	case deck.Six:
		return "Sixes"
	case deck.Five:
		return "Fives"
	case deck.Four:
		return "Fours"
	case deck.Three:
		return "Threes"
	case deck.Two:
		return "Twos"
	default:
		return "?"
	}
}

// singular turns "Sixes" into "Six" and "Aces" into "Ace"
func singular(plural string) string {
	switch {
	case strings.HasSuffix(plural, "xes"):
		return strings.TrimSuffix(plural, "es")
	case strings.HasSuffix(plural, "s"):
		return strings.TrimSuffix(plural, "s")
	default:
		return plural
	}
}
