package match

// EventKind names something that happened in a match.
type EventKind string

const (
	EventTossWon      EventKind = "toss_won"
	EventTossLost     EventKind = "toss_lost"
	EventChoice       EventKind = "choice"
	EventRuns         EventKind = "runs"
	EventWicket       EventKind = "wicket"
	EventInningsBreak EventKind = "innings_break"
	EventMatchOver    EventKind = "match_over"
	EventRestart      EventKind = "restart"
)

// Classify lists what happened between two consecutive states, in order.
// It returns nil when next is the result of an ignored move.
func Classify(prev, next State) []EventKind {
	if prev.Phase == PhaseGameOver && next.Phase == PhaseToss {
		return []EventKind{EventRestart}
	}
	if next.LastMove.Equal(prev.LastMove) {
		return nil
	}

	switch prev.Phase {
	case PhaseToss:
		if next.Phase == PhaseTossChoice {
			return []EventKind{EventTossWon}
		}
		return []EventKind{EventTossLost}

	case PhaseTossChoice:
		return []EventKind{EventChoice}

	case PhasePlaying:
		var events []EventKind
		if next.LastBall != nil && next.LastBall.Out {
			events = append(events, EventWicket)
			if prev.Inning() == 1 && next.Inning() == 2 {
				events = append(events, EventInningsBreak)
			}
		} else {
			events = append(events, EventRuns)
		}
		if next.Phase == PhaseGameOver {
			events = append(events, EventMatchOver)
		}
		return events
	}
	return nil
}
