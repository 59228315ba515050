package match

import (
	"math/rand"
	"sync"
	"time"
)

// Dice supplies the computer's random choices.
type Dice interface {
	// Roll returns a uniformly drawn value in 1..6.
	Roll() int
	// Coin returns a fair coin flip.
	Coin() bool
}

type randDice struct {
	rng *rand.Rand
}

// NewDice returns Dice backed by math/rand. A zero seed is replaced by the
// current time.
func NewDice(seed int64) Dice {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *randDice) Roll() int  { return d.rng.Intn(6) + 1 }
func (d *randDice) Coin() bool { return d.rng.Intn(2) == 0 }

// SequenceDice replays fixed rolls and coin flips, cycling when exhausted.
// An empty Rolls always rolls 1; an empty Coins always flips true.
type SequenceDice struct {
	Rolls []int
	Coins []bool

	mu   sync.Mutex
	roll int
	coin int
}

func (d *SequenceDice) Roll() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.Rolls) == 0 {
		return 1
	}
	v := d.Rolls[d.roll%len(d.Rolls)]
	d.roll++
	return v
}

func (d *SequenceDice) Coin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.Coins) == 0 {
		return true
	}
	v := d.Coins[d.coin%len(d.Coins)]
	d.coin++
	return v
}
