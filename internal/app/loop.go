package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/handcricket/internal/detector"
	"github.com/ayusman/handcricket/internal/gesture"
	"github.com/ayusman/handcricket/internal/match"
	"github.com/ayusman/handcricket/internal/render"
	"github.com/ayusman/handcricket/internal/tray"
)

// Snapshot is what spectators receive after every change.
type Snapshot struct {
	MatchID string            `json:"match_id"`
	State   match.State       `json:"state"`
	Result  match.Outcome     `json:"result"`
	Events  []match.EventKind `json:"events,omitempty"`
}

// Run plays until ctx is cancelled, the player quits, the tray asks to quit
// or the camera stops delivering frames. Every device is released before
// it returns. A lost camera is a normal end of session, not an error.
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		a.release()
		return fmt.Errorf("open camera: %w", err)
	}
	defer a.release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.server != nil {
		serverDone := make(chan struct{})
		go func() {
			defer close(serverDone)
			if err := a.server.Run(ctx, a.config.Listen); err != nil {
				log.Printf("Spectator server stopped: %v", err)
			}
		}()
		defer func() { <-serverDone }()
		defer cancel()
	}

	if a.hooks != nil {
		a.hooks.Start()
	}

	now := a.now()
	a.machine = match.New(a.config.Match, now)
	a.beginMatch(now)
	a.publish(a.machine.State(), nil)

	log.Println("Game loop started")
	defer log.Println("Game loop stopped")

	var commands <-chan tray.Command
	if a.tray != nil {
		commands = a.tray.Commands()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			log.Printf("Camera stopped delivering frames: %v", err)
			return nil
		}

		quit := a.tick(frame)
		frame.Close()
		if quit {
			return nil
		}

		if a.drain(commands) {
			return nil
		}
	}
}

// tick runs one frame through detect, interpret, apply, render and key
// handling. It reports whether the player asked to quit.
func (a *App) tick(frame *gocv.Mat) bool {
	now := a.now()

	hands, err := a.detector.Detect(frame)
	if err != nil {
		if msg := err.Error(); msg != a.lastDetectErr {
			log.Printf("Hand detection failed: %v", err)
			a.lastDetectErr = msg
		}
		hands = nil
	} else {
		a.lastDetectErr = ""
	}

	hand := detector.First(hands)
	if n, ok := gesture.Count(hand); ok {
		a.advance(a.machine.ApplyMove(match.Move(n), now), now)
	}

	st := a.State()
	render.Draw(frame, hand, st)

	if a.frames != nil {
		if err := a.frames.PublishMat(frame); err != nil {
			log.Printf("Failed to publish frame: %v", err)
		}
	}
	if err := a.renderer.Show(frame); err != nil {
		log.Printf("Failed to show frame: %v", err)
	}

	switch a.renderer.PollKey() {
	case render.KeyQuit:
		return true
	case render.KeyRestart:
		a.restart(a.now())
	}
	return false
}

// drain handles pending tray commands without blocking. It reports whether
// the tray asked to quit.
func (a *App) drain(commands <-chan tray.Command) bool {
	for {
		select {
		case cmd := <-commands:
			switch cmd {
			case tray.CommandQuit:
				return true
			case tray.CommandRestart:
				a.restart(a.now())
			}
		default:
			return false
		}
	}
}

func (a *App) restart(now time.Time) {
	st, ok := a.machine.Restart(now)
	if !ok {
		return
	}
	a.beginMatch(now)
	a.advance(st, now)
}

// beginMatch opens a ledger row for a fresh match.
func (a *App) beginMatch(now time.Time) {
	id := uuid.New().String()

	a.mu.Lock()
	a.matchID = id
	a.mu.Unlock()

	if err := a.ledger.start(id, now); err != nil {
		log.Printf("Ledger: failed to start match %s: %v", id, err)
	}
}

// advance records next if it differs from the current state and tells
// every observer.
func (a *App) advance(next match.State, now time.Time) {
	events := match.Classify(a.State(), next)
	if len(events) == 0 {
		return
	}

	matchID := a.MatchID()
	if err := a.ledger.record(events, next, now); err != nil {
		log.Printf("Ledger: failed to record %v for %s: %v", events, matchID, err)
	}

	a.publish(next, events)

	if a.hooks != nil {
		for _, ev := range events {
			a.hooks.Dispatch(string(ev), matchID, next)
		}
	}
}

// publish makes st the current state and pushes it to the server and tray.
func (a *App) publish(st match.State, events []match.EventKind) {
	a.mu.Lock()
	a.current = st
	matchID := a.matchID
	a.mu.Unlock()

	if a.state != nil {
		snap := Snapshot{MatchID: matchID, State: st, Result: st.Result(), Events: events}
		if err := a.state.Publish(snap); err != nil {
			log.Printf("Failed to publish state: %v", err)
		}
	}
	if a.tray != nil {
		a.tray.SetState(st)
	}
}
