// Package tray provides a system tray menu showing the live score.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/handcricket/internal/match"
)

// Command is a request from the tray menu to the game loop.
type Command int

const (
	CommandRestart Command = iota + 1
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandRestart:
		return "restart"
	case CommandQuit:
		return "quit"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Tray is the system tray application. Menu clicks are delivered as Commands.
type Tray struct {
	commands chan Command
	mu       sync.RWMutex
	score    string
	status   string

	menuScore  *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a Tray with a small command buffer.
func New() *Tray {
	return &Tray{
		commands: make(chan Command, 4),
		score:    "You 0 - 0 Comp",
		status:   match.TossPrompt,
	}
}

// Commands returns the channel of menu requests. The game loop drains it.
func (t *Tray) Commands() <-chan Command {
	return t.commands
}

// Run starts the system tray event loop.
// This function blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit stops the tray event loop started by Run.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Hand Cricket")
	systray.SetTooltip("Hand Cricket")

	t.mu.Lock()
	t.menuScore = systray.AddMenuItem(t.score, "Current score")
	t.menuScore.Disable()
	t.menuStatus = systray.AddMenuItem(t.status, "Last update")
	t.menuStatus.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuRestart := systray.AddMenuItem("Restart match", "Start a new match once this one is over")
	systray.AddSeparator()
	menuQuit := systray.AddMenuItem("Quit", "Quit Hand Cricket")

	go func() {
		for {
			select {
			case <-menuRestart.ClickedCh:
				t.Send(CommandRestart)
			case <-menuQuit.ClickedCh:
				t.Send(CommandQuit)
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// Send queues cmd as if its menu item had been clicked. Commands beyond
// the buffer are dropped.
func (t *Tray) Send(cmd Command) bool {
	select {
	case t.commands <- cmd:
		return true
	default:
		return false
	}
}

// SetState updates the score and status lines. It may be called before Run.
func (t *Tray) SetState(st match.State) {
	score, status := Summary(st), st.Feedback

	t.mu.Lock()
	defer t.mu.Unlock()

	t.score, t.status = score, status
	if t.menuScore != nil {
		t.menuScore.SetTitle(score)
	}
	if t.menuStatus != nil {
		t.menuStatus.SetTitle(status)
	}
}

// Score returns the current score line.
func (t *Tray) Score() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.score
}

// Summary renders a one-line scoreboard for st.
func Summary(st match.State) string {
	line := fmt.Sprintf("You %d - %d Comp", st.UserScore, st.ComputerScore)
	if target := st.Target(); target != match.NoTarget {
		line += fmt.Sprintf(" | Target %d", target)
	}
	if st.Phase == match.PhaseGameOver {
		switch st.Result() {
		case match.UserWon:
			line += " | You won"
		case match.ComputerWon:
			line += " | Computer won"
		case match.Draw:
			line += " | Draw"
		}
	}
	return line
}
