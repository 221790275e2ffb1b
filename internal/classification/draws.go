// Package classification detects drawing hands and the outs that complete them.
package classification

import (
	"slices"

	"github.com/lox/holdem-cli/internal/deck"
)

// DrawType represents the types of draws a hand can have
type DrawType int

const (
	NoDraw DrawType = iota
	FlushDraw
	OpenEndedStraightDraw
	Gutshot
)

func (dt DrawType) String() string {
	switch dt {
	case FlushDraw:
		return "flush draw"
	case OpenEndedStraightDraw:
		return "open-ended straight draw"
	case Gutshot:
		return "gutshot"
	case NoDraw:
		return "no draw"
	default:
		return "unknown"
	}
}

// DrawInfo contains information about draws among a set of known cards
type DrawInfo struct {
	Draws []DrawType
	// FlushSuit is only meaningful when the hand has a flush draw
	FlushSuit deck.Suit
	// NeededRanks lists the distinct ranks that complete a straight draw,
	// ascending, excluding ranks already held
	NeededRanks []deck.Rank
}

// Has reports whether the info includes the given draw
func (d DrawInfo) Has(dt DrawType) bool {
	return slices.Contains(d.Draws, dt)
}

// HasFlushDraw reports a flush draw
func (d DrawInfo) HasFlushDraw() bool {
	return d.Has(FlushDraw)
}

// HasStraightDraw reports an open-ended or gutshot straight draw
func (d DrawInfo) HasStraightDraw() bool {
	return d.Has(OpenEndedStraightDraw) || d.Has(Gutshot)
}

// HasDraw reports any flush or straight draw
func (d DrawInfo) HasDraw() bool {
	return d.HasFlushDraw() || d.HasStraightDraw()
}

// Detect analyzes known cards (hole plus board) for flush and straight draws
func Detect(cards []deck.Card) DrawInfo {
	var info DrawInfo

	if suit, ok := flushDrawSuit(cards); ok {
		info.Draws = append(info.Draws, FlushDraw)
		info.FlushSuit = suit
	}

	oesd, gutshot, needed := straightDraws(cards)
	if oesd {
		info.Draws = append(info.Draws, OpenEndedStraightDraw)
	}
	if gutshot {
		info.Draws = append(info.Draws, Gutshot)
	}
	info.NeededRanks = needed

	if len(info.Draws) == 0 {
		info.Draws = []DrawType{NoDraw}
	}
	return info
}

// HasFlushDraw reports whether some suit appears exactly four times in cards
func HasFlushDraw(cards []deck.Card) bool {
	_, ok := flushDrawSuit(cards)
	return ok
}

// HasStraightDraw reports four consecutive ranks, or four ranks inside a
// five-rank window with one internal gap
func HasStraightDraw(cards []deck.Card) bool {
	oesd, gutshot, _ := straightDraws(cards)
	return oesd || gutshot
}

// HasDrawingHand reports a flush or straight draw
func HasDrawingHand(cards []deck.Card) bool {
	return HasFlushDraw(cards) || HasStraightDraw(cards)
}

// FlushDrawOdds returns the chance that the next card completes a flush
// draw: unseen cards of the drawing suit over unseen cards. Zero without a draw.
func FlushDrawOdds(known []deck.Card) float64 {
	suit, ok := flushDrawSuit(known)
	if !ok {
		return 0
	}
	unseen := deck.Size - len(known)
	if unseen <= 0 {
		return 0
	}
	outs := 13 - countSuit(known, suit)
	return float64(outs) / float64(unseen)
}

// StraightDrawOdds returns the chance that the next card completes a
// straight draw. Each needed rank contributes its four cards minus any of
// that rank already known.
func StraightDrawOdds(known []deck.Card) float64 {
	_, _, needed := straightDraws(known)
	if len(needed) == 0 {
		return 0
	}
	unseen := deck.Size - len(known)
	if unseen <= 0 {
		return 0
	}

	outs := len(needed) * 4
	for _, c := range known {
		if slices.Contains(needed, c.Rank) {
			outs--
		}
	}
	return float64(outs) / float64(unseen)
}

func countSuit(cards []deck.Card, suit deck.Suit) int {
	n := 0
	for _, c := range cards {
		if c.Suit == suit {
			n++
		}
	}
	return n
}

func flushDrawSuit(cards []deck.Card) (deck.Suit, bool) {
	var counts [4]int
	for _, c := range cards {
		counts[c.Suit]++
	}
	for _, suit := range deck.Suits {
		if counts[suit] == 4 {
			return suit, true
		}
	}
	return 0, false
}

// straightDraws scans every five-rank window (Ace also plays as 1). A window
// holding four ranks is open-ended when the missing rank is at either end of
// four consecutive ranks, and a gutshot when it is inside. Needed ranks
// exclude ranks already held and are returned ascending.
func straightDraws(cards []deck.Card) (oesd, gutshot bool, needed []deck.Rank) {
	var present [deck.Ace + 1]bool
	for _, c := range cards {
		present[c.Rank] = true
	}
	present[deck.AceLow] = present[deck.Ace]

	add := func(v int) {
		if v < deck.AceLow || v > int(deck.Ace) || present[v] {
			return
		}
		r := deck.Rank(v)
		if v == deck.AceLow {
			r = deck.Ace
		}
		if !slices.Contains(needed, r) {
			needed = append(needed, r)
		}
	}

	// Four in a row: the cards on either end complete it
	for lo := deck.AceLow; lo+3 <= int(deck.Ace); lo++ {
		if present[lo] && present[lo+1] && present[lo+2] && present[lo+3] {
			oesd = true
			add(lo - 1)
			add(lo + 4)
		}
	}

	// Four of five with the gap strictly inside the window
	for lo := deck.AceLow; lo+4 <= int(deck.Ace); lo++ {
		if !present[lo] || !present[lo+4] {
			continue
		}
		missing, gap := 0, 0
		for v := lo + 1; v < lo+4; v++ {
			if !present[v] {
				missing++
				gap = v
			}
		}
		if missing == 1 {
			gutshot = true
			add(gap)
		}
	}

	slices.Sort(needed)
	return oesd, gutshot, needed
}
