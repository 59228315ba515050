// Package match implements the hand cricket rules: toss, innings, scoring
// and the result, driven one accepted move at a time.
package match

import (
	"fmt"
	"time"
)

// Phase is the stage a match is in.
type Phase int

const (
	PhaseToss Phase = iota
	PhaseTossChoice
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseToss:
		return "TOSS"
	case PhaseTossChoice:
		return "TOSS_CHOICE"
	case PhasePlaying:
		return "PLAYING"
	case PhaseGameOver:
		return "GAME_OVER"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Move is a shown hand: 1 to 6 fingers, a closed fist counting as 6.
type Move int

const (
	MinMove Move = 1
	MaxMove Move = 6
)

// Toss and toss-choice readings of a move.
const (
	CallOdd    Move = 1
	CallEven   Move = 2
	ChooseBat  Move = 1
	ChooseBowl Move = 2
)

// Valid reports whether m is a playable move.
func (m Move) Valid() bool {
	return m >= MinMove && m <= MaxMove
}

// NoTarget is the target before the second innings begins.
const NoTarget = -1

// Innings is the batting state of a match once both sides know their role.
type Innings struct {
	Number      int  `json:"number"` // 1 or 2
	Target      int  `json:"target"` // NoTarget during the first innings
	UserBatting bool `json:"user_batting"`
}

// Toss records how the toss went.
type Toss struct {
	Call    Move `json:"call"`
	Roll    int  `json:"roll"`
	UserWon bool `json:"user_won"`

	// UserBatsFirst is known once the winner of the toss has chosen.
	UserBatsFirst bool `json:"user_bats_first"`
}

// Ball is one delivery during play.
type Ball struct {
	Inning       int  `json:"inning"`
	UserBatting  bool `json:"user_batting"`
	UserMove     Move `json:"user_move"`
	ComputerMove Move `json:"computer_move"`
	Out          bool `json:"out"`
	Runs         int  `json:"runs"`
}

// State is a snapshot of a match.
// Innings is nil while the toss is being decided; Toss is nil before the toss
// and LastBall is nil before the first delivery.
type State struct {
	Phase         Phase     `json:"phase"`
	UserScore     int       `json:"user_score"`
	ComputerScore int       `json:"computer_score"`
	Innings       *Innings  `json:"innings,omitempty"`
	Toss          *Toss     `json:"toss,omitempty"`
	LastBall      *Ball     `json:"last_ball,omitempty"`
	Feedback      string    `json:"feedback"`
	LastMove      time.Time `json:"last_move"`
}

// Inning returns the current innings number, 1 before play starts.
func (s State) Inning() int {
	if s.Innings == nil {
		return 1
	}
	return s.Innings.Number
}

// Target returns the chase target, or NoTarget during the first innings.
func (s State) Target() int {
	if s.Innings == nil {
		return NoTarget
	}
	return s.Innings.Target
}

// UserBatting reports whether the user is batting. decided is false until
// the toss has settled the batting order.
func (s State) UserBatting() (batting, decided bool) {
	if s.Innings == nil {
		return false, false
	}
	return s.Innings.UserBatting, true
}

// Result returns the outcome of a finished match, or NoResult while it is in progress.
func (s State) Result() Outcome {
	if s.Phase != PhaseGameOver {
		return NoResult
	}
	switch {
	case s.UserScore > s.ComputerScore:
		return UserWon
	case s.ComputerScore > s.UserScore:
		return ComputerWon
	default:
		return Draw
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	if s.Innings != nil {
		inn := *s.Innings
		s.Innings = &inn
	}
	if s.Toss != nil {
		toss := *s.Toss
		s.Toss = &toss
	}
	if s.LastBall != nil {
		ball := *s.LastBall
		s.LastBall = &ball
	}
	return s
}

// Outcome is the result of a match.
type Outcome int

const (
	NoResult Outcome = iota
	UserWon
	ComputerWon
	Draw
)

func (o Outcome) String() string {
	switch o {
	case UserWon:
		return "user_won"
	case ComputerWon:
		return "computer_won"
	case Draw:
		return "draw"
	}
	return "no_result"
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Message is the line shown to the player when the match ends.
func (o Outcome) Message() string {
	switch o {
	case UserWon:
		return "YOU WON! Press 'R' to Restart"
	case ComputerWon:
		return "COMPUTER WON! Press 'R' to Restart"
	case Draw:
		return "IT'S A DRAW! Press 'R' to Restart"
	}
	return ""
}
