package bot

import (
	"fmt"
	"strings"
)

// Difficulty selects a bot's strategy tier
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	HardPlus
)

// Difficulties lists every tier from weakest to strongest
var Difficulties = []Difficulty{Easy, Medium, Hard, HardPlus}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case HardPlus:
		return "hard+"
	default:
		return "unknown"
	}
}

// ParseDifficulty accepts "easy", "medium", "hard", and "hard+" (or "hardplus"),
// case-insensitively
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "hard+", "hardplus", "hard-plus":
		return HardPlus, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (want easy, medium, hard or hard+)", s)
	}
}

// Stage is the betting round a decision is made in
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
)

func (s Stage) String() string {
	switch s {
	case PreFlop:
		return "Pre-Flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

// ParseStage accepts stage names such as "preflop", "flop", "turn" and "river"
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preflop", "pre-flop":
		return PreFlop, nil
	case "flop":
		return Flop, nil
	case "turn":
		return Turn, nil
	case "river":
		return River, nil
	default:
		return 0, fmt.Errorf("unknown stage %q", s)
	}
}

// StageForBoard returns the stage implied by the number of community cards
func StageForBoard(boardCards int) Stage {
	switch {
	case boardCards >= 5:
		return River
	case boardCards == 4:
		return Turn
	case boardCards == 3:
		return Flop
	default:
		return PreFlop
	}
}
