package match

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Machine)
		dice  []int
		coins []bool
		move  Move
		want  []EventKind
	}{
		{
			name: "toss won",
			dice: []int{4},
			move: CallOdd,
			want: []EventKind{EventTossWon},
		},
		{
			name:  "toss lost",
			dice:  []int{3},
			coins: []bool{true},
			move:  CallEven,
			want:  []EventKind{EventTossLost},
		},
		{
			name: "choice",
			setup: func(m *Machine) {
				m.st.Phase = PhaseTossChoice
				m.st.Toss = &Toss{Call: CallOdd, Roll: 4, UserWon: true}
			},
			move: ChooseBowl,
			want: []EventKind{EventChoice},
		},
		{
			name:  "runs",
			setup: func(m *Machine) { inPlay(m, 1, NoTarget, true, 0, 0) },
			dice:  []int{1},
			move:  4,
			want:  []EventKind{EventRuns},
		},
		{
			name:  "first innings wicket",
			setup: func(m *Machine) { inPlay(m, 1, NoTarget, true, 7, 0) },
			dice:  []int{2},
			move:  2,
			want:  []EventKind{EventWicket, EventInningsBreak},
		},
		{
			name:  "second innings wicket",
			setup: func(m *Machine) { inPlay(m, 2, 8, true, 3, 7) },
			dice:  []int{2},
			move:  2,
			want:  []EventKind{EventWicket, EventMatchOver},
		},
		{
			name:  "winning runs",
			setup: func(m *Machine) { inPlay(m, 2, 8, true, 5, 7) },
			dice:  []int{1},
			move:  3,
			want:  []EventKind{EventRuns, EventMatchOver},
		},
		{
			name: "ignored move",
			dice: []int{4},
			move: 5,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(&SequenceDice{Rolls: tt.dice, Coins: tt.coins})
			if tt.setup != nil {
				tt.setup(m)
			}
			prev := m.State()

			next := m.ApplyMove(tt.move, t0.Add(step))

			if got := Classify(prev, next); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_Restart(t *testing.T) {
	m := newTestMachine(&SequenceDice{Rolls: []int{2}})
	inPlay(m, 2, 5, true, 1, 4)
	prev := m.ApplyMove(2, t0.Add(step))

	next, _ := m.Restart(t0.Add(2 * step))

	got := Classify(prev, next)
	if !reflect.DeepEqual(got, []EventKind{EventRestart}) {
		t.Errorf("Classify() = %v, want [restart]", got)
	}
}
