package app

import (
	"errors"
	"time"

	"github.com/ayusman/handcricket/internal/match"
	"github.com/ayusman/handcricket/internal/store"
)

// ledger mirrors the current match into the session store.
type ledger struct {
	store *store.Store
	row   *store.Match
}

func newLedger(s *store.Store) *ledger {
	return &ledger{store: s}
}

// start creates the row for a new match.
func (l *ledger) start(id string, now time.Time) error {
	row := &store.Match{
		ID:        id,
		Target:    match.NoTarget,
		Result:    store.ResultNone,
		StartedAt: now,
	}
	if err := l.store.Matches().Create(row); err != nil {
		l.row = nil
		return err
	}
	l.row = row
	return nil
}

// record stores the delivery behind events, if any, and the match totals.
func (l *ledger) record(events []match.EventKind, st match.State, now time.Time) error {
	if l.row == nil {
		return errors.New("no match started")
	}

	if st.Toss != nil {
		l.row.TossCall = int(st.Toss.Call)
		l.row.TossRoll = st.Toss.Roll
		l.row.UserWonToss = st.Toss.UserWon
		l.row.UserBatsFirst = st.Toss.UserBatsFirst
	}
	l.row.UserScore = st.UserScore
	l.row.ComputerScore = st.ComputerScore
	l.row.Target = st.Target()

	for _, ev := range events {
		switch ev {
		case match.EventRuns, match.EventWicket:
			if st.LastBall == nil {
				continue
			}
			b := st.LastBall
			err := l.store.Deliveries().Create(&store.Delivery{
				MatchID:      l.row.ID,
				Inning:       b.Inning,
				UserBatting:  b.UserBatting,
				UserMove:     int(b.UserMove),
				ComputerMove: int(b.ComputerMove),
				Out:          b.Out,
				Runs:         b.Runs,
				CreatedAt:    now,
			})
			if err != nil {
				return err
			}
		case match.EventMatchOver:
			finished := now
			l.row.FinishedAt = &finished
			l.row.Result = st.Result().String()
		}
	}

	return l.store.Matches().Update(l.row)
}
