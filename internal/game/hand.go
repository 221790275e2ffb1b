package game

import (
	"context"
	"fmt"

	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/decisionlog"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
	"github.com/lox/holdem-cli/internal/randutil"
	"github.com/lox/holdem-cli/internal/statistics"
)

// HandResult describes a completed hand. Seat indexes are 0 and 1.
type HandResult struct {
	Number int
	Seed   int64
	Button int
	Hole   [2][]deck.Card
	Board  []deck.Card
	Pot    int
	// Stage is the last street dealt
	Stage bot.Stage
	// Folded is the seat that folded, or -1
	Folded   int
	Showdown bool
	// Hands is only set at showdown
	Hands [2]evaluator.HandValue
	// Winner is the seat that took the pot, or -1 for a split pot
	Winner    int
	Net       [2]int
	Decisions []bot.Decision
}

// Stats converts the result to one seat's point of view
func (r HandResult) Stats(seat int) statistics.HandResult {
	pos := statistics.ActsFirst
	if seat == r.Button {
		pos = statistics.ActsLast
	}
	return statistics.HandResult{
		Net:            r.Net[seat],
		Seed:           uint64(r.Seed),
		Position:       pos,
		WentToShowdown: r.Showdown,
		Split:          r.Showdown && r.Winner == -1,
		FinalPotSize:   r.Pot,
		StreetReached:  r.Stage.String(),
	}
}

// hand is the in-progress state of one hand. Chips are committed to the
// table only once the hand completes.
type hand struct {
	result      HandResult
	chips       [2]int
	contributed [2]int
}

func (h *hand) put(seat, amount int) {
	h.chips[seat] -= amount
	h.contributed[seat] += amount
	h.result.Pot += amount
}

// PlayHand deals and plays one hand to completion, moves the pot and
// advances the button. On error no chips move.
func (t *Table) PlayHand(ctx context.Context) (HandResult, error) {
	ante := t.pot / 2
	for _, s := range t.seats {
		if s.Chips < ante || s.Chips == 0 {
			return HandResult{}, fmt.Errorf("%w: %s has %d chips", ErrBusted, s.Name, s.Chips)
		}
	}

	seed := t.rng.Int64()
	h := &hand{
		chips: [2]int{t.seats[0].Chips, t.seats[1].Chips},
		result: HandResult{
			Number: t.hands + 1,
			Seed:   seed,
			Button: t.button,
			Folded: -1,
			Winner: -1,
		},
	}
	if t.decisions != nil {
		h.result.Number = t.decisions.StartHand()
	}

	// hole cards go one at a time, alternating seats
	d := deck.NewDeck(randutil.New(seed))
	for range 2 {
		for i := range 2 {
			c, ok := d.Deal()
			if !ok {
				return HandResult{}, fmt.Errorf("deal hole cards: deck is empty")
			}
			h.result.Hole[i] = append(h.result.Hole[i], c)
		}
	}
	board, err := d.DealN(5)
	if err != nil {
		return HandResult{}, fmt.Errorf("deal board: %w", err)
	}

	for i := range 2 {
		h.put(i, ante)
	}

	t.logger.Debug("hand started",
		"hand", h.result.Number,
		"seed", seed,
		"button", t.seats[t.button].Name,
		"pot", h.result.Pot)

	streets := []struct {
		stage bot.Stage
		cards int
	}{
		{bot.Flop, 3},
		{bot.Turn, 4},
		{bot.River, 5},
	}

	order := [2]int{1 - t.button, t.button}

street:
	for _, st := range streets {
		if err := ctx.Err(); err != nil {
			return HandResult{}, err
		}
		h.result.Board = board[:st.cards]
		h.result.Stage = st.stage

		bet := min(t.bet, h.chips[0], h.chips[1])
		if bet == 0 {
			continue
		}
		for _, seat := range order {
			call, err := t.decide(h, seat, st.stage, bet)
			if err != nil {
				return HandResult{}, err
			}
			if !call {
				h.result.Folded = seat
				h.result.Winner = 1 - seat
				break street
			}
			h.put(seat, bet)
		}
	}

	if h.result.Folded == -1 {
		t.showdown(h)
	}
	t.settle(h)

	if t.decisions != nil && h.result.Showdown {
		if err := t.decisions.LogShowdown(decisionlog.Showdown{
			Players:     [2]string{t.seats[0].Name, t.seats[1].Name},
			Hands:       h.result.Hole,
			Community:   h.result.Board,
			Ranks:       [2]evaluator.HandCategory{h.result.Hands[0].Category, h.result.Hands[1].Category},
			ChipsChange: h.result.Net,
			Winner:      h.result.Winner,
		}); err != nil {
			t.logger.Warn("failed to log showdown", "error", err)
		}
	}

	t.seats[0].Chips, t.seats[1].Chips = h.chips[0], h.chips[1]
	t.hands++
	t.button = 1 - t.button

	t.logger.Debug("hand complete",
		"hand", h.result.Number,
		"pot", h.result.Pot,
		"winner", t.winnerName(h.result.Winner),
		"showdown", h.result.Showdown,
		"net", h.result.Net)

	return h.result, nil
}

// decide asks a seat whether to call and records the decision
func (t *Table) decide(h *hand, seat int, stage bot.Stage, bet int) (bool, error) {
	s := t.seats[seat]
	cards := make([]deck.Card, 0, 2+len(h.result.Board))
	cards = append(cards, h.result.Hole[seat]...)
	cards = append(cards, h.result.Board...)

	d, err := s.Bot.Decide(cards, stage)
	if err != nil {
		return false, fmt.Errorf("%s on the %s: %w", s.Name, stage, err)
	}
	d.Player = s.Name
	h.result.Decisions = append(h.result.Decisions, d)

	if t.decisions != nil {
		e := decisionlog.FromDecision(d)
		if d.Call {
			e.Amount = bet
		}
		if err := t.decisions.Log(e); err != nil {
			t.logger.Warn("failed to log decision", "error", err)
		}
	}
	return d.Call, nil
}

func (t *Table) showdown(h *hand) {
	h.result.Showdown = true
	for i := range 2 {
		cards := append(append([]deck.Card(nil), h.result.Hole[i]...), h.result.Board...)
		h.result.Hands[i] = evaluator.MustEvaluate(cards)
	}
	switch evaluator.Compare(h.result.Hands[0], h.result.Hands[1]) {
	case 1:
		h.result.Winner = 0
	case -1:
		h.result.Winner = 1
	default:
		h.result.Winner = -1
	}
}

// settle pays the pot and fills in each seat's net result
func (t *Table) settle(h *hand) {
	var payout [2]int
	if h.result.Winner == -1 {
		half := h.result.Pot / 2
		payout = [2]int{half, half}
		// odd chip goes to the seat out of position
		payout[1-h.result.Button] += h.result.Pot - 2*half
	} else {
		payout[h.result.Winner] = h.result.Pot
	}
	for i := range 2 {
		h.chips[i] += payout[i]
		h.result.Net[i] = payout[i] - h.contributed[i]
	}
}

func (t *Table) winnerName(seat int) string {
	if seat == -1 {
		return "split"
	}
	return t.seats[seat].Name
}
