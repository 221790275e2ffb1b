// Package evaluator classifies 5 to 7 card poker hands and orders the results.
package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-cli/internal/deck"
)

const (
	// MinCards is the fewest cards that form a poker hand
	MinCards = 5
	// MaxCards is two hole cards plus a full board
	MaxCards = 7
)

// ErrInvalidInput is returned for card sets that cannot be evaluated: fewer
// than five cards, more than seven, or duplicates.
var ErrInvalidInput = errors.New("evaluator: invalid input")

// Evaluate finds the best five-card hand among cards. It works for a raw
// five-card hand as well as a hole+board union. cards is never modified.
func Evaluate(cards []deck.Card) (HandValue, error) {
	if len(cards) < MinCards {
		return HandValue{}, fmt.Errorf("%w: need at least %d cards, got %d", ErrInvalidInput, MinCards, len(cards))
	}
	if len(cards) > MaxCards {
		return HandValue{}, fmt.Errorf("%w: at most %d cards, got %d", ErrInvalidInput, MaxCards, len(cards))
	}
	if dup, ok := deck.HasDuplicates(cards); ok {
		return HandValue{}, fmt.Errorf("%w: duplicate card %s", ErrInvalidInput, dup)
	}
	for _, c := range cards {
		if !c.Rank.Valid() || c.Suit < deck.Spades || c.Suit > deck.Clubs {
			return HandValue{}, fmt.Errorf("%w: malformed card %+v", ErrInvalidInput, c)
		}
	}
	return evaluate(cards), nil
}

// MustEvaluate is Evaluate for inputs the caller has already validated.
// It panics on invalid input.
func MustEvaluate(cards []deck.Card) HandValue {
	hv, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return hv
}

// rankGroups holds ranks bucketed by how many times they appear, each
// bucket sorted high to low.
type rankGroups struct {
	singles, pairs, trips, quads []int
}

func groupRanks(cards []deck.Card) rankGroups {
	var counts [deck.Ace + 1]int
	for _, c := range cards {
		counts[c.Rank]++
	}

	var g rankGroups
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		switch counts[r] {
		case 1:
			g.singles = append(g.singles, r)
		case 2:
			g.pairs = append(g.pairs, r)
		case 3:
			g.trips = append(g.trips, r)
		case 4:
			g.quads = append(g.quads, r)
		}
	}
	return g
}

func evaluate(cards []deck.Card) HandValue {
	g := groupRanks(cards)

	var suited [4][]int
	allRanks := make([]int, 0, len(cards))
	for _, c := range cards {
		suited[c.Suit] = append(suited[c.Suit], int(c.Rank))
		allRanks = append(allRanks, int(c.Rank))
	}

	// Straight flush / royal flush
	for _, ranks := range suited {
		if len(ranks) < 5 {
			continue
		}
		if high, ok := straightHigh(ranks); ok {
			if high == int(deck.Ace) {
				return HandValue{Category: RoyalFlush, Kickers: []int{high}}
			}
			return HandValue{Category: StraightFlush, Kickers: []int{high}}
		}
	}

	if len(g.quads) > 0 {
		kicker := highest(g.singles, g.pairs, g.trips, g.quads[1:])
		return HandValue{Category: FourOfAKind, Kickers: []int{g.quads[0], kicker}}
	}

	if len(g.trips) > 0 && (len(g.trips) > 1 || len(g.pairs) > 0) {
		// A second set of trips outranks using the best pair
		var pair int
		if len(g.trips) > 1 {
			pair = g.trips[1]
		} else {
			pair = g.pairs[0]
		}
		return HandValue{Category: FullHouse, Kickers: []int{g.trips[0], pair}}
	}

	for _, ranks := range suited {
		if len(ranks) < 5 {
			continue
		}
		top := slices.Clone(ranks)
		slices.SortFunc(top, descending)
		return HandValue{Category: Flush, Kickers: top[:5]}
	}

	if high, ok := straightHigh(allRanks); ok {
		return HandValue{Category: Straight, Kickers: []int{high}}
	}

	if len(g.trips) > 0 {
		rest := append(slices.Clone(g.singles), g.pairs...)
		for len(rest) < 2 {
			rest = append(rest, 0)
		}
		return HandValue{Category: ThreeOfAKind, Kickers: []int{g.trips[0], rest[0], rest[1]}}
	}

	if len(g.pairs) >= 2 {
		kicker := highest(g.singles, g.pairs[2:])
		return HandValue{Category: TwoPair, Kickers: []int{g.pairs[0], g.pairs[1], kicker}}
	}

	if len(g.pairs) == 1 {
		kickers := []int{g.pairs[0]}
		for i := 0; i < 3 && i < len(g.singles); i++ {
			kickers = append(kickers, g.singles[i])
		}
		return HandValue{Category: OnePair, Kickers: kickers}
	}

	n := min(5, len(g.singles))
	return HandValue{Category: HighCard, Kickers: slices.Clone(g.singles[:n])}
}

// straightHigh returns the top card of the highest five-rank run in ranks.
// An Ace also counts as 1 so the wheel (A-2-3-4-5) is a five-high straight.
func straightHigh(ranks []int) (int, bool) {
	var present [deck.Ace + 1]bool
	for _, r := range ranks {
		present[r] = true
	}
	present[deck.AceLow] = present[deck.Ace]

	for high := int(deck.Ace); high >= int(deck.Five); high-- {
		run := true
		for r := high; r > high-5; r-- {
			if !present[r] {
				run = false
				break
			}
		}
		if run {
			return high, true
		}
	}
	return 0, false
}

// highest returns the largest rank across already-descending groups, 0 if all are empty
func highest(groups ...[]int) int {
	best := 0
	for _, g := range groups {
		if len(g) > 0 && g[0] > best {
			best = g[0]
		}
	}
	return best
}

func descending(a, b int) int {
	return b - a
}
