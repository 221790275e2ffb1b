package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a standard deck
const Size = 52

// FullDeck returns all 52 cards in suit-major order. Each call returns a fresh slice.
func FullDeck() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Remaining returns the full deck minus every card in the known sets. The
// known slices are only read.
func Remaining(known ...[]Card) []Card {
	var used CardSet
	for _, cards := range known {
		for _, c := range cards {
			used.Add(c)
		}
	}

	out := make([]Card, 0, Size-used.Len())
	for _, c := range FullDeck() {
		if !used.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// HasDuplicates reports the first card that appears more than once in cards.
func HasDuplicates(cards []Card) (Card, bool) {
	var seen CardSet
	for _, c := range cards {
		if seen.Contains(c) {
			return c, true
		}
		seen.Add(c)
	}
	return Card{}, false
}

// CardSet is a bitset over the 52 cards, index = (rank-2)*4 + suit
type CardSet uint64

func cardIndex(c Card) uint {
	return uint(c.Rank-Two)*4 + uint(c.Suit)
}

// Add adds a card to the set
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << cardIndex(c)
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<cardIndex(c)) != 0
}

// Len returns the number of cards in the set
func (cs CardSet) Len() int {
	n := 0
	for v := uint64(cs); v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Deck is an ordered pile of cards dealt from the top. It owns its generator
// and is not safe for concurrent use.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full, shuffled 52-card deck using rng
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: FullDeck(), rng: rng}
	d.Shuffle()
	return d
}

// Shuffle applies a uniform Fisher-Yates permutation to the cards left
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards, failing without dealing anything if fewer remain
func (d *Deck) DealN(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", n)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("cannot deal %d cards: %d remaining", n, len(d.cards))
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}
