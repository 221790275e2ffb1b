// Package decisionlog appends bot decisions and showdown outcomes to a CSV
// file for later analysis.
package decisionlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/coder/quartz"
	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
	"github.com/lox/holdem-cli/internal/fileutil"
)

// DefaultPath is where the CLI writes the log when enabled without a path
const DefaultPath = "/tmp/poker_game_log.csv"

// Header lists the CSV columns in order
var Header = []string{
	"session_id", "timestamp", "hand_number", "player", "hand_cards", "community_cards", "stage",
	"action", "amount", "hand_rank", "win_probability", "ev", "pot_odds", "decision", "outcome", "chips_change",
}

const timestampLayout = "2006-01-02 15:04:05"

// Outcome of a hand from one player's point of view
type Outcome string

const (
	Win  Outcome = "WIN"
	Lose Outcome = "LOSE"
	Tie  Outcome = "TIE"
)

// Entry is one CSV row
type Entry struct {
	Player         string
	Hand           []deck.Card
	Community      []deck.Card
	Stage          string
	Action         string
	Amount         int
	HandRank       evaluator.HandCategory
	WinProbability float64
	EV             float64
	PotOdds        float64
	Decision       string
	Outcome        Outcome
	ChipsChange    int
}

// Showdown describes how a heads-up hand ended for both seats
type Showdown struct {
	Players     [2]string
	Hands       [2][]deck.Card
	Community   []deck.Card
	Ranks       [2]evaluator.HandCategory
	ChipsChange [2]int
	// Winner is 0 or 1, or -1 for a split pot
	Winner int
}

// Logger writes entries as CSV rows, flushing after each one. It is safe
// for concurrent use.
type Logger struct {
	mu        sync.Mutex
	w         *csv.Writer
	closer    io.Closer
	clock     quartz.Clock
	sessionID string
	hand      int
	err       error
}

// Open appends to the CSV file at path, writing the header only when the
// file is new or empty.
func Open(path string, clock quartz.Clock) (*Logger, error) {
	f, empty, err := fileutil.OpenAppend(path, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open decision log: %w", err)
	}
	l, err := New(f, empty, clock)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	l.closer = f
	return l, nil
}

// New writes CSV rows to w. The session id is the clock's current time in
// milliseconds.
func New(w io.Writer, writeHeader bool, clock quartz.Clock) (*Logger, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	l := &Logger{
		w:         csv.NewWriter(w),
		clock:     clock,
		sessionID: strconv.FormatInt(clock.Now().UnixMilli(), 10),
	}
	if writeHeader {
		if err := l.write(Header); err != nil {
			return nil, fmt.Errorf("write decision log header: %w", err)
		}
	}
	return l, nil
}

// SessionID identifies every row written by this logger
func (l *Logger) SessionID() string {
	return l.sessionID
}

// StartHand advances the hand counter and returns the new hand number
func (l *Logger) StartHand() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hand++
	return l.hand
}

// HandNumber returns the current hand number
func (l *Logger) HandNumber() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hand
}

// Log writes one row
func (l *Logger) Log(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.write(l.record(e))
}

// FromDecision maps a bot decision onto a row. Amount and outcome are left
// for the caller, which knows the bet and the result.
func FromDecision(d bot.Decision) Entry {
	hole, community := d.Cards, []deck.Card(nil)
	if len(d.Cards) > 2 {
		hole, community = d.Cards[:2], d.Cards[2:]
	}
	return Entry{
		Player:         d.Player,
		Hand:           hole,
		Community:      community,
		Stage:          d.Stage.String(),
		Action:         d.Action(),
		HandRank:       d.Hand.Category,
		WinProbability: d.WinRate,
		EV:             d.EV,
		PotOdds:        d.PotOdds,
		Decision:       strings.ToUpper(d.Action()),
	}
}

// ObserveDecision logs a bot decision. Write errors are kept and reported
// by Err and Close, since observers cannot fail a decision.
func (l *Logger) ObserveDecision(d bot.Decision) {
	e := FromDecision(d)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.write(l.record(e)); err != nil && l.err == nil {
		l.err = err
	}
}

// LogShowdown writes one reveal row per seat
func (l *Logger) LogShowdown(s Showdown) error {
	for seat := range 2 {
		outcome := Tie
		switch s.Winner {
		case seat:
			outcome = Win
		case 1 - seat:
			outcome = Lose
		}
		err := l.Log(Entry{
			Player:      s.Players[seat],
			Hand:        s.Hands[seat],
			Community:   s.Community,
			Stage:       "Showdown",
			Action:      "reveal",
			HandRank:    s.Ranks[seat],
			Decision:    "N/A",
			Outcome:     outcome,
			ChipsChange: s.ChipsChange[seat],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Err returns the first error hit while observing decisions
func (l *Logger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close flushes and closes the underlying file, if Open created it
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.w.Flush()
	err := l.w.Error()
	if l.closer != nil {
		if cerr := l.closer.Close(); err == nil {
			err = cerr
		}
		l.closer = nil
	}
	if err == nil {
		err = l.err
	}
	return err
}

func (l *Logger) record(e Entry) []string {
	return []string{
		l.sessionID,
		l.clock.Now().Format(timestampLayout),
		strconv.Itoa(l.hand),
		e.Player,
		deck.FormatNotation(e.Hand),
		deck.FormatNotation(e.Community),
		e.Stage,
		e.Action,
		strconv.Itoa(e.Amount),
		strconv.Itoa(int(e.HandRank)),
		strconv.FormatFloat(e.WinProbability, 'f', 4, 64),
		strconv.FormatFloat(e.EV, 'f', 2, 64),
		strconv.FormatFloat(e.PotOdds, 'f', 4, 64),
		e.Decision,
		string(e.Outcome),
		strconv.Itoa(e.ChipsChange),
	}
}

func (l *Logger) write(record []string) error {
	if err := l.w.Write(record); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}
