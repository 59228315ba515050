package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/handcricket/internal/app"
	"github.com/ayusman/handcricket/internal/capture"
	"github.com/ayusman/handcricket/internal/config"
	"github.com/ayusman/handcricket/internal/detector"
	"github.com/ayusman/handcricket/internal/match"
)

func main() {
	fmt.Println("Hand Cricket - play against the computer with your hand")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	staticDir := cfg.StaticDir
	if staticDir == "" && cfg.Listen != "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	detCfg := detector.DefaultConfig()
	detCfg.MinConfidence = cfg.MinConfidence
	detCfg.ScriptPath = cfg.DetectorScript

	a, err := app.New(app.Config{
		Camera: capture.Config{
			DeviceID: cfg.CameraID,
			Width:    cfg.Width,
			Height:   cfg.Height,
			FPS:      capture.DefaultFPS,
			Mirror:   cfg.Mirror,
		},
		Detector: detCfg,
		Match: match.Config{
			MoveDelay: cfg.MoveDelay,
			Dice:      match.NewDice(cfg.Seed),
		},
		WindowTitle:   cfg.WindowTitle,
		Headless:      cfg.Headless,
		Listen:        cfg.Listen,
		StaticDir:     staticDir,
		PluginDir:     cfg.PluginDir,
		PluginTimeout: cfg.PluginTimeout,
		Tray:          cfg.Tray,
	})
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if cfg.Listen != "" {
		fmt.Printf("Spectators can watch on %s\n", cfg.Listen)
	}

	// The tray event loop needs the main goroutine, so the game runs beside it.
	if t := a.Tray(); t != nil {
		errc := make(chan error, 1)
		go func() {
			errc <- a.Run(ctx)
			t.Quit()
		}()
		t.Run()
		stop()
		if err := <-errc; err != nil {
			log.Fatalf("Game failed: %v", err)
		}
		return
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("Game failed: %v", err)
	}
}

// findWebDir looks for the spectator page in "web", "../web" and
// ~/.handcricket/web. It returns "" when none exists.
func findWebDir() string {
	for _, p := range []string{"web", "../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homeWebDir := filepath.Join(homeDir, ".handcricket", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}
	return ""
}
