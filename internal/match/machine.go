package match

import (
	"fmt"
	"time"
)

// DefaultMoveDelay is the minimum gap between two accepted moves. A gesture
// held up for less than this is read once.
const DefaultMoveDelay = 2500 * time.Millisecond

// Player-facing prompts.
const (
	TossPrompt   = "TOSS: Show 1 for ODD or 2 for EVEN"
	ChoicePrompt = "You won the toss! Show 1 to BAT or 2 to BOWL"
)

// Config holds the rules that are not fixed by the game itself.
type Config struct {
	// MoveDelay is the cooldown between accepted moves (default: 2.5s).
	MoveDelay time.Duration

	// Dice supplies the computer's moves. Nil means a time-seeded NewDice.
	Dice Dice
}

// Machine owns one match and advances it move by move.
// It is not safe for concurrent use; the game loop is its only caller.
type Machine struct {
	delay time.Duration
	dice  Dice
	st    State
}

// New starts a match in the toss phase. The cooldown runs from now, so the
// first move is accepted only after MoveDelay has passed.
func New(cfg Config, now time.Time) *Machine {
	delay := cfg.MoveDelay
	if delay <= 0 {
		delay = DefaultMoveDelay
	}
	dice := cfg.Dice
	if dice == nil {
		dice = NewDice(0)
	}

	m := &Machine{delay: delay, dice: dice}
	m.reset(now)
	return m
}

// State returns a snapshot of the match.
func (m *Machine) State() State {
	return m.st.Clone()
}

// MoveDelay returns the cooldown between accepted moves.
func (m *Machine) MoveDelay() time.Duration {
	return m.delay
}

// Ready reports whether a move made at now would clear the cooldown.
func (m *Machine) Ready(now time.Time) bool {
	return now.Sub(m.st.LastMove) > m.delay
}

// ApplyMove feeds one move into the match and returns the resulting state.
// Moves outside 1..6, moves the current phase does not accept, moves during
// the cooldown and any move after the match is over leave the state unchanged.
func (m *Machine) ApplyMove(mv Move, now time.Time) State {
	if !mv.Valid() || !m.Ready(now) {
		return m.State()
	}

	switch m.st.Phase {
	case PhaseToss:
		m.toss(mv, now)
	case PhaseTossChoice:
		m.choose(mv, now)
	case PhasePlaying:
		m.play(mv, now)
	}
	return m.State()
}

// Restart resets a finished match to the toss. It reports false and leaves
// the state alone if the match is still in progress.
func (m *Machine) Restart(now time.Time) (State, bool) {
	if m.st.Phase != PhaseGameOver {
		return m.State(), false
	}
	m.reset(now)
	return m.State(), true
}

func (m *Machine) reset(now time.Time) {
	m.st = State{
		Phase:    PhaseToss,
		Feedback: TossPrompt,
		LastMove: now,
	}
}

// UserWinsToss reports whether a call of odd (1) or even (2) wins against
// the computer's roll.
func UserWinsToss(call Move, roll int) bool {
	odd := (int(call)+roll)%2 != 0
	return (odd && call == CallOdd) || (!odd && call == CallEven)
}

func (m *Machine) toss(call Move, now time.Time) {
	if call != CallOdd && call != CallEven {
		return
	}

	roll := m.dice.Roll()
	toss := &Toss{Call: call, Roll: roll, UserWon: UserWinsToss(call, roll)}
	m.st.Toss = toss
	m.st.LastMove = now

	if toss.UserWon {
		m.st.Phase = PhaseTossChoice
		m.st.Feedback = ChoicePrompt
		return
	}

	computerBats := m.dice.Coin()
	toss.UserBatsFirst = !computerBats
	m.startPlay(!computerBats)
	if computerBats {
		m.st.Feedback = "Computer won toss and chose to BAT."
	} else {
		m.st.Feedback = "Computer won toss and chose to BOWL."
	}
}

func (m *Machine) choose(choice Move, now time.Time) {
	if choice != ChooseBat && choice != ChooseBowl {
		return
	}

	bat := choice == ChooseBat
	if m.st.Toss != nil {
		m.st.Toss.UserBatsFirst = bat
	}
	m.st.LastMove = now
	m.startPlay(bat)
	if bat {
		m.st.Feedback = "You chose to BAT first!"
	} else {
		m.st.Feedback = "You chose to BOWL first!"
	}
}

func (m *Machine) startPlay(userBatting bool) {
	m.st.Phase = PhasePlaying
	m.st.Innings = &Innings{Number: 1, Target: NoTarget, UserBatting: userBatting}
}

func (m *Machine) play(user Move, now time.Time) {
	computer := Move(m.dice.Roll())
	inn := m.st.Innings
	m.st.LastMove = now

	ball := &Ball{
		Inning:       inn.Number,
		UserBatting:  inn.UserBatting,
		UserMove:     user,
		ComputerMove: computer,
	}
	m.st.LastBall = ball

	if user == computer {
		ball.Out = true
		feedback := fmt.Sprintf("OUT! You:%d Comp:%d", user, computer)
		if inn.Number == 2 {
			m.finish()
			return
		}
		inn.Target = m.battingScore() + 1
		inn.UserBatting = !inn.UserBatting
		inn.Number = 2
		m.st.Feedback = feedback + fmt.Sprintf(" | Target: %d", inn.Target)
		return
	}

	// Only the batting side's own move scores; the bowler's move decides outs.
	if inn.UserBatting {
		ball.Runs = int(user)
		m.st.UserScore += ball.Runs
		m.st.Feedback = fmt.Sprintf("You scored %d!", user)
	} else {
		ball.Runs = int(computer)
		m.st.ComputerScore += ball.Runs
		m.st.Feedback = fmt.Sprintf("Computer scored %d!", computer)
	}

	if inn.Number == 2 && m.battingScore() >= inn.Target {
		m.finish()
	}
}

func (m *Machine) battingScore() int {
	if m.st.Innings.UserBatting {
		return m.st.UserScore
	}
	return m.st.ComputerScore
}

func (m *Machine) finish() {
	m.st.Phase = PhaseGameOver
	m.st.Feedback = m.st.Result().Message()
}
