// Package app wires the camera, hand detector, match and its observers into
// the game loop.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/handcricket/internal/capture"
	"github.com/ayusman/handcricket/internal/detector"
	"github.com/ayusman/handcricket/internal/match"
	"github.com/ayusman/handcricket/internal/plugin"
	"github.com/ayusman/handcricket/internal/render"
	"github.com/ayusman/handcricket/internal/server"
	"github.com/ayusman/handcricket/internal/store"
	"github.com/ayusman/handcricket/internal/tray"
)

// Config holds configuration options for the application.
type Config struct {
	Camera   capture.Config
	Detector detector.Config
	Match    match.Config

	WindowTitle string
	Headless    bool

	// Store is the session ledger. Nil opens a private in-memory one.
	Store *store.Store

	// Listen enables the spectator server when set.
	Listen    string
	StaticDir string

	// PluginDir enables event hooks when set.
	PluginDir     string
	PluginTimeout time.Duration

	Tray bool
}

// App runs one game session. All match state is owned by the goroutine
// calling Run; other goroutines see snapshots only.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	renderer render.Renderer
	machine  *match.Machine
	store    *store.Store
	ownStore bool
	ledger   *ledger

	pluginMgr *plugin.Manager
	hooks     *plugin.Dispatcher

	state  *server.StateHub
	frames *server.FrameHub
	server *server.Server

	tray *tray.Tray

	now func() time.Time

	mu      sync.RWMutex
	current match.State
	matchID string

	lastDetectErr string
}

// New creates an App. Devices are not opened until Run.
func New(config Config) (*App, error) {
	a := &App{
		config: config,
		camera: capture.NewCamera(config.Camera),
		now:    time.Now,
	}

	if config.Store != nil {
		a.store = config.Store
	} else {
		s, err := store.NewMemory()
		if err != nil {
			return nil, fmt.Errorf("open session ledger: %w", err)
		}
		a.store = s
		a.ownStore = true
	}
	a.ledger = newLedger(a.store)

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector: no hands will be seen", err)
		a.detector = detector.NewMockDetector()
	}

	if config.Headless {
		a.renderer = render.NewHeadless()
	} else {
		a.renderer = render.NewWindow(config.WindowTitle)
	}

	if config.PluginDir != "" {
		a.pluginMgr = plugin.NewManager(config.PluginDir)
		if err := a.pluginMgr.Discover(); err != nil {
			log.Printf("Plugin discovery failed: %v", err)
		}
		log.Printf("Loaded %d hook plugins from %s", len(a.pluginMgr.List()), config.PluginDir)
		a.hooks = plugin.NewDispatcher(a.pluginMgr, plugin.NewExecutor(config.PluginTimeout), 0)
	}

	if config.Listen != "" {
		a.state = server.NewStateHub()
		a.frames = server.NewFrameHub()
		a.server = server.New(server.Config{
			StaticDir: config.StaticDir,
			Store:     a.store,
			State:     a.state,
			Frames:    a.frames,
		})
	}

	if config.Tray {
		a.tray = tray.New()
	}

	return a, nil
}

// SetCamera replaces the frame source. It must be called before Run.
func (a *App) SetCamera(c capture.Camera) {
	a.camera = c
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.detector = d
}

// SetRenderer replaces the display. It must be called before Run.
func (a *App) SetRenderer(r render.Renderer) {
	a.renderer = r
}

// SetClock replaces the time source used for the move cooldown.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// State returns the latest match snapshot.
func (a *App) State() match.State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current.Clone()
}

// MatchID returns the ledger ID of the current match.
func (a *App) MatchID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.matchID
}

// Store returns the session ledger.
func (a *App) Store() *store.Store {
	return a.store
}

// Tray returns the tray, or nil when it is disabled.
func (a *App) Tray() *tray.Tray {
	return a.tray
}

// Server returns the spectator server, or nil when it is disabled.
func (a *App) Server() *server.Server {
	return a.server
}

// PluginManager returns the hook plugin manager, or nil when hooks are disabled.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// release closes everything Run opened and the components New created.
func (a *App) release() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}
	if err := a.renderer.Close(); err != nil {
		log.Printf("Error closing window: %v", err)
	}
	if a.hooks != nil {
		a.hooks.Close()
	}
	if a.ownStore {
		if err := a.store.Close(); err != nil {
			log.Printf("Error closing ledger: %v", err)
		}
	}
}
