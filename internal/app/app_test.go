package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handcricket/internal/capture"
	"github.com/ayusman/handcricket/internal/detector"
	"github.com/ayusman/handcricket/internal/match"
	"github.com/ayusman/handcricket/internal/render"
	"github.com/ayusman/handcricket/internal/store"
	"github.com/ayusman/handcricket/internal/tray"
)

var t0 = time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

// stepClock returns a clock that moves forward one second per reading.
func stepClock() func() time.Time {
	now := t0
	return func() time.Time {
		current := now
		now = now.Add(time.Second)
		return current
	}
}

type testRig struct {
	app      *App
	camera   *capture.MockCamera
	detector *detector.MockDetector
	screen   *render.Headless
	store    *store.Store
}

// newTestRig builds a headless app fed by a looping blank frame, limited to
// frames reads, with a scripted detector and dice.
func newTestRig(t *testing.T, frames int, rolls []int, mutate func(*Config)) *testRig {
	t.Helper()

	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("store.NewMemory() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cfg := Config{
		Headless: true,
		Store:    s,
		Match: match.Config{
			MoveDelay: 500 * time.Millisecond,
			Dice:      &match.SequenceDice{Rolls: rolls},
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	frame := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })

	cam := capture.NewMockCamera([]*gocv.Mat{&frame}, true)
	cam.SetLimit(frames)
	det := detector.NewMockDetector()
	screen := render.NewHeadless()

	a.SetCamera(cam)
	a.SetDetector(det)
	a.SetRenderer(screen)
	a.SetClock(stepClock())

	return &testRig{app: a, camera: cam, detector: det, screen: screen, store: s}
}

// show queues one detected hand per tick.
func (r *testRig) show(fingers ...int) {
	for _, n := range fingers {
		r.detector.Enqueue([]detector.HandLandmarks{detector.FingersLandmarks(n)})
	}
}

// computerWinsRolls and computerWinsMoves play: user calls odd and wins the
// toss (roll 2), bats, scores 4, is out on 3, and the computer chases 5
// with a 6.
var (
	computerWinsRolls = []int{2, 1, 3, 6}
	computerWinsMoves = []int{1, 1, 4, 3, 2}
)

func TestApp_FullMatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rig := newTestRig(t, 7, computerWinsRolls, nil)
	rig.show(computerWinsMoves...)

	if err := rig.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st := rig.app.State()
	if st.Phase != match.PhaseGameOver {
		t.Fatalf("Phase = %v, want GAME_OVER", st.Phase)
	}
	if st.UserScore != 4 || st.ComputerScore != 6 {
		t.Errorf("scores = %d/%d, want 4/6", st.UserScore, st.ComputerScore)
	}
	if st.Result() != match.ComputerWon {
		t.Errorf("Result() = %v, want computer_won", st.Result())
	}
	if st.Feedback != "COMPUTER WON! Press 'R' to Restart" {
		t.Errorf("Feedback = %q", st.Feedback)
	}

	if rig.screen.Frames() != 7 {
		t.Errorf("shown %d frames, want 7", rig.screen.Frames())
	}
	if !rig.screen.Closed() || rig.camera.IsOpen() {
		t.Error("renderer and camera should be released")
	}

	row, err := rig.store.Matches().GetByID(rig.app.MatchID())
	if err != nil {
		t.Fatalf("ledger row missing: %v", err)
	}
	if row.Result != store.ResultComputerWon || !row.Finished() {
		t.Errorf("ledger result = %q finished = %v", row.Result, row.Finished())
	}
	if !row.UserWonToss || !row.UserBatsFirst || row.TossRoll != 2 || row.Target != 5 {
		t.Errorf("ledger toss/target mismatch: %+v", row)
	}

	balls, err := rig.store.Deliveries().ListByMatch(row.ID)
	if err != nil {
		t.Fatalf("ListByMatch() error = %v", err)
	}
	if len(balls) != 3 {
		t.Fatalf("recorded %d deliveries, want 3", len(balls))
	}
	if balls[0].Runs != 4 || !balls[1].Out || balls[2].Runs != 6 || balls[2].Inning != 2 {
		t.Errorf("unexpected deliveries: %+v %+v %+v", balls[0], balls[1], balls[2])
	}
}

func TestApp_HeldGestureReadOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	// Default 2.5s cooldown with a 1s clock: the held "1" is accepted on
	// the third tick only.
	rig := newTestRig(t, 4, []int{2}, func(c *Config) {
		c.Match.MoveDelay = 0
	})
	rig.detector.SetHands([]detector.HandLandmarks{detector.FingersLandmarks(1)})

	if err := rig.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st := rig.app.State()
	if st.Toss == nil || st.Toss.Call != match.CallOdd {
		t.Fatalf("toss should have been called odd: %+v", st)
	}
	if !st.Toss.UserWon || st.Phase != match.PhaseTossChoice {
		t.Errorf("odd call against roll 2 should win the toss and wait for a choice, got %v", st.Phase)
	}
	// Fourth tick is only one second after the toss.
	if !st.LastMove.Equal(t0.Add(3 * time.Second)) {
		t.Errorf("LastMove = %v, want the third tick", st.LastMove)
	}
}

func TestApp_QuitKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rig := newTestRig(t, 0, nil, nil)
	rig.screen.Press(render.KeyQuit)

	if err := rig.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rig.screen.Frames() != 1 {
		t.Errorf("shown %d frames, want 1", rig.screen.Frames())
	}
	if rig.camera.IsOpen() {
		t.Error("camera should be closed after quit")
	}
}

func TestApp_ContextCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rig := newTestRig(t, 0, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := rig.app.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rig.screen.Frames() != 0 {
		t.Errorf("no frame should be processed after cancel, got %d", rig.screen.Frames())
	}
	if !rig.screen.Closed() {
		t.Error("renderer should be released")
	}
}

func TestApp_DetectorErrorMeansNoHand(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rig := newTestRig(t, 3, nil, nil)
	rig.detector.SetError(os.ErrDeadlineExceeded)

	if err := rig.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st := rig.app.State()
	if st.Phase != match.PhaseToss || st.Feedback != match.TossPrompt {
		t.Errorf("state should not move without a hand: %+v", st)
	}
	if rig.screen.Frames() != 3 {
		t.Errorf("frames should still be shown, got %d", rig.screen.Frames())
	}
}

func TestApp_RestartKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rig := newTestRig(t, 7, computerWinsRolls, nil)
	rig.show(computerWinsMoves...)

	// 'r' early in the match is ignored; 'r' on tick six restarts.
	rig.screen.Press(render.KeyRestart)
	for i := 0; i < 4; i++ {
		rig.screen.Press(render.KeyNone)
	}
	rig.screen.Press(render.KeyRestart)

	if err := rig.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st := rig.app.State()
	if st.Phase != match.PhaseToss || st.UserScore != 0 || st.ComputerScore != 0 {
		t.Errorf("match should be back at the toss: %+v", st)
	}
	if st.Target() != match.NoTarget {
		t.Errorf("Target() = %d, want NoTarget", st.Target())
	}

	matches, err := rig.store.Matches().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("ledger has %d matches, want 2", len(matches))
	}

	var finished, open int
	for _, m := range matches {
		if m.Finished() {
			finished++
		} else {
			open++
			if m.ID != rig.app.MatchID() {
				t.Errorf("open match %s should be the current one %s", m.ID, rig.app.MatchID())
			}
		}
	}
	if finished != 1 || open != 1 {
		t.Errorf("finished=%d open=%d, want 1 and 1", finished, open)
	}
}

func TestApp_TrayCommands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rig := newTestRig(t, 0, nil, func(c *Config) { c.Tray = true })
	if rig.app.Tray() == nil {
		t.Fatal("tray should be created when enabled")
	}
	rig.app.Tray().Send(tray.CommandRestart)
	rig.app.Tray().Send(tray.CommandQuit)

	if err := rig.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rig.screen.Frames() != 1 {
		t.Errorf("tray quit should stop after one tick, got %d frames", rig.screen.Frames())
	}
	if got := rig.app.Tray().Score(); got != "You 0 - 0 Comp" {
		t.Errorf("tray score = %q", got)
	}
}

func TestApp_SpectatorSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rig := newTestRig(t, 7, computerWinsRolls, func(c *Config) { c.Listen = "127.0.0.1:0" })
	rig.show(computerWinsMoves...)

	if err := rig.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var snap struct {
		MatchID string `json:"match_id"`
		Result  string `json:"result"`
		State   struct {
			Phase string `json:"phase"`
		} `json:"state"`
	}
	if err := json.Unmarshal(rig.app.state.Latest(), &snap); err != nil {
		t.Fatalf("invalid snapshot: %v", err)
	}
	if snap.MatchID != rig.app.MatchID() {
		t.Errorf("snapshot match_id = %q, want %q", snap.MatchID, rig.app.MatchID())
	}
	if snap.State.Phase != "GAME_OVER" || snap.Result != "computer_won" {
		t.Errorf("unexpected final snapshot: %+v", snap)
	}

	raw := string(rig.app.state.Latest())
	for _, want := range []string{`"phase":"GAME_OVER"`, `"events":["runs","match_over"]`} {
		if !strings.Contains(raw, want) {
			t.Errorf("snapshot %s missing %s", raw, want)
		}
	}
}

func TestApp_HooksReceiveEventsInOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	pluginDir := t.TempDir()
	hookDir := filepath.Join(pluginDir, "recorder")
	if err := os.MkdirAll(hookDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := `{"name":"recorder","version":"1.0.0","executable":"recorder.sh","events":["*"]}`
	if err := os.WriteFile(filepath.Join(hookDir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	script := "#!/bin/sh\ncat >> events.log\necho >> events.log\necho '{\"success\":true}'\n"
	if err := os.WriteFile(filepath.Join(hookDir, "recorder.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	rig := newTestRig(t, 7, computerWinsRolls, func(c *Config) {
		c.PluginDir = pluginDir
		c.PluginTimeout = 5 * time.Second
	})
	rig.show(computerWinsMoves...)

	if err := rig.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(hookDir, "events.log"))
	if err != nil {
		t.Fatalf("hook never ran: %v", err)
	}

	var got []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var req struct {
			Event   string `json:"event"`
			MatchID string `json:"match_id"`
		}
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			t.Fatalf("bad hook request %q: %v", line, err)
		}
		if req.MatchID != rig.app.MatchID() {
			t.Errorf("event %s carried match %q, want %q", req.Event, req.MatchID, rig.app.MatchID())
		}
		got = append(got, req.Event)
	}

	want := []string{"toss_won", "choice", "runs", "wicket", "innings_break", "runs", "match_over"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
}
