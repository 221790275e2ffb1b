package evaluator

import (
	"testing"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, cards string) HandValue {
	t.Helper()
	hv, err := Evaluate(deck.MustParseCards(cards))
	require.NoError(t, err)
	return hv
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category HandCategory
		kickers  []int
	}{
		{"royal flush", "AhKhQhJhTh", RoyalFlush, []int{14}},
		{"royal flush in seven", "AsKsQsJsTs9h8h", RoyalFlush, []int{14}},
		{"straight flush", "9d8d7d6d5d", StraightFlush, []int{9}},
		{"steel wheel", "Ah2h3h4h5hKd", StraightFlush, []int{5}},
		{"highest straight flush run wins", "9c8c7c6c5c4c3c", StraightFlush, []int{9}},
		{"four of a kind", "KhKdKcKs2h", FourOfAKind, []int{13, 2}},
		{"quads kicker from pair", "9s9h9d9cKsKh2c", FourOfAKind, []int{9, 13}},
		{"quads kicker from trips", "5s5h5d5cQsQhQd", FourOfAKind, []int{5, 12}},
		{"full house", "AsAhAdKsKh2h3h", FullHouse, []int{14, 13}},
		{"full house from two trips", "7s7h7d4s4h4d2c", FullHouse, []int{7, 4}},
		{"full house best pair", "JsJhJd9s9h3c3d", FullHouse, []int{11, 9}},
		{"flush", "AsKsQs8s6s4h3h", Flush, []int{14, 13, 12, 8, 6}},
		{"flush top five of six", "As9s7s5s3s2s", Flush, []int{14, 9, 7, 5, 3}},
		{"flush beats straight", "8h7h6h5d4h2h", Flush, []int{8, 7, 6, 4, 2}},
		{"straight", "AsKhQdJcTs9h8h", Straight, []int{14}},
		{"ace low straight", "Ah2d3c4s5h", Straight, []int{5}},
		{"six high beats wheel", "Ah2d3c4s5h6c", Straight, []int{6}},
		{"three of a kind", "AsAhAdKs9c7h5h", ThreeOfAKind, []int{14, 13, 9}},
		{"three of a kind five cards", "7s7h7dKs2c", ThreeOfAKind, []int{7, 13, 2}},
		{"two pair", "AsAhKdKs9c7h5h", TwoPair, []int{14, 13, 9}},
		{"two pair kicker from third pair", "AsAhKdKsQcQh2h", TwoPair, []int{14, 13, 12}},
		{"two pair six cards", "AsAhKdKsQcQh", TwoPair, []int{14, 13, 12}},
		{"one pair", "AsAhKdQs9c7h5h", OnePair, []int{14, 13, 12, 9}},
		{"one pair five cards", "AhAdKcQsJh", OnePair, []int{14, 13, 12, 11}},
		{"high card", "AsKhQd9s7c5h3h", HighCard, []int{14, 13, 12, 9, 7}},
		{"high card five cards", "Kd9s7c5h3h", HighCard, []int{13, 9, 7, 5, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hv := mustEval(t, tt.cards)
			assert.Equal(t, tt.category, hv.Category)
			assert.Equal(t, tt.kickers, hv.Kickers)
		})
	}
}

func TestEvaluateInvalidInput(t *testing.T) {
	all := deck.MustParseCards("AsKsQsJsTs9s8s7s")

	for n := 0; n < MinCards; n++ {
		_, err := Evaluate(all[:n])
		require.ErrorIs(t, err, ErrInvalidInput, "size %d", n)
	}

	_, err := Evaluate(all)
	assert.ErrorIs(t, err, ErrInvalidInput, "eight cards")

	_, err = Evaluate(deck.MustParseCards("AsAsKdQcJh"))
	assert.ErrorIs(t, err, ErrInvalidInput, "duplicates")

	_, err = Evaluate([]deck.Card{{Rank: 1, Suit: deck.Spades}, {Rank: deck.Two}, {Rank: deck.Three}, {Rank: deck.Four}, {Rank: deck.Five}})
	assert.ErrorIs(t, err, ErrInvalidInput, "malformed rank")

	assert.Panics(t, func() { MustEvaluate(all[:3]) })
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	cards := deck.MustParseCards("2c9sAh5d9dKs3h")
	orig := append([]deck.Card(nil), cards...)
	_ = mustEval(t, deck.FormatNotation(cards))
	_, err := Evaluate(cards)
	require.NoError(t, err)
	assert.Equal(t, orig, cards)
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	a := mustEval(t, "2c9sAh5d9dKs3h")
	b := mustEval(t, "Ks3h9d2cAh5d9s")
	assert.Equal(t, a, b)
}

func TestCategoryOrdering(t *testing.T) {
	hands := []string{
		"Kd9s7c5h3h", // high card
		"AhAdKcQsJh", // pair
		"AsAhKdKs9c", // two pair
		"7s7h7dKs2c", // trips
		"Ah2d3c4s5h", // straight
		"As9s7s5s3s", // flush
		"JsJhJd9s9h", // full house
		"KhKdKcKs2h", // quads
		"9d8d7d6d5d", // straight flush
		"AhKhQhJhTh", // royal flush
	}
	for i := 1; i < len(hands); i++ {
		weaker := mustEval(t, hands[i-1])
		stronger := mustEval(t, hands[i])
		assert.Equal(t, HandCategory(i), stronger.Category)
		assert.True(t, stronger.Beats(weaker), "%s should beat %s", stronger, weaker)
		assert.False(t, weaker.Beats(stronger))
	}
}

func TestKickerComparison(t *testing.T) {
	better := mustEval(t, "AhAdKcQsJh")
	worse := mustEval(t, "AcAsTh9d8c")
	assert.Equal(t, []int{14, 13, 12, 11}, better.Kickers)
	assert.Equal(t, []int{14, 10, 9, 8}, worse.Kickers)
	assert.True(t, better.Beats(worse))
	assert.False(t, worse.Beats(better))
	assert.False(t, better.Ties(worse))
	assert.Equal(t, 1, Compare(better, worse))
	assert.Equal(t, -1, Compare(worse, better))
}

func TestSplitPot(t *testing.T) {
	board := "AsKd8c5h2s"
	a := mustEval(t, board+"3c4d") // wheel
	b := mustEval(t, board+"3h4s")
	assert.True(t, a.Ties(b))
	assert.False(t, a.Beats(b))
	assert.Equal(t, 0, Compare(a, b))
}

func TestCompareExhaustedKickersTie(t *testing.T) {
	a := HandValue{Category: OnePair, Kickers: []int{10, 9}}
	b := HandValue{Category: OnePair, Kickers: []int{10, 9, 4}}
	assert.Equal(t, 0, Compare(a, b))
}

func TestExplain(t *testing.T) {
	tests := []struct {
		a, b     string
		contains string
	}{
		{"AhAdKcQsJh", "AcAsTh9d8c", "higher kicker (K vs T)"},
		{"KhKdKcKs2h", "AsAhKdKs9c", "Four of a Kind, Kings beats Two Pair, Aces and Kings"},
		{"AsAhKdKs9c", "AcAdQdQs9h", "higher bottom pair (K vs Q)"},
		{"6h2d3c4s5h", "Ah2c3d4c5d", "higher straight (6 vs 5)"},
		{"JsJhJd9s9h", "JcJhJd8s8h", ""},
	}
	for _, tt := range tests {
		a := mustEval(t, tt.a)
		b := mustEval(t, tt.b)
		got := Explain(a, b)
		assert.Contains(t, got, tt.contains)
		assert.Equal(t, got, Explain(b, a), "explanation is symmetric")
	}
	assert.Contains(t, Explain(mustEval(t, "AsKd8c5h2s"), mustEval(t, "AhKc8d5s2h")), "ties")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Full House, Jacks full of Nines", mustEval(t, "JsJhJd9s9h").Describe())
	assert.Equal(t, "Straight, Five high", mustEval(t, "Ah2d3c4s5h").Describe())
	assert.Equal(t, "Straight Flush, Six high", mustEval(t, "6d5d4d3d2d").Describe())
	assert.Equal(t, "Pair of Aces", mustEval(t, "AhAdKcQsJh").Describe())
	assert.Equal(t, "Royal Flush", mustEval(t, "AhKhQhJhTh").Describe())
}

func TestStraightHigh(t *testing.T) {
	high, ok := straightHigh([]int{14, 2, 3, 4, 5, 6, 7})
	require.True(t, ok)
	assert.Equal(t, 7, high)

	_, ok = straightHigh([]int{14, 13, 12, 11, 9})
	assert.False(t, ok)

	_, ok = straightHigh([]int{13, 14, 2, 3, 4}) // no wrap-around
	assert.False(t, ok)
}
