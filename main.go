// Package main provides the entry point for the CoDraw application.
package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"

	"codraw/internal/app"
	"codraw/internal/config"
	"codraw/internal/editor"
	"codraw/internal/genai"
	"codraw/internal/raster"
	"codraw/internal/version"
	"codraw/pkg/colorutil"
	"codraw/ui/mainwindow"
)

const (
	appTitle = "CoDraw"
	appID    = "io.codraw.app"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s (%s)", appTitle, version.Version, version.GitCommit)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfgPath, err := config.DefaultPath()
	if err != nil {
		log.Printf("Config path unavailable: %v", err)
	}
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			log.Printf("Failed to load config %s: %v", cfgPath, err)
		} else {
			cfg = loaded
		}
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.CoDrawTheme{})

	session := app.NewSession()
	if c, err := colorutil.FromHex(cfg.Pen.Color); err == nil {
		session.SetPenColor(c)
	}
	session.SetPenWidth(cfg.Pen.Width)
	session.SetModel(cfg.Generation.Model)

	client := genai.NewClient(cfg.Generation.Endpoint, cfg.Generation.APIKey, cfg.Generation.Timeout(), logger)

	ed, err := editor.New(session, client, cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		log.Fatalf("Failed to create editor: %v", err)
	}

	win := mainwindow.New(fyneApp, session, ed, cfg, logger)
	win.SetMaster()

	// Place an image passed on the command line
	if len(os.Args) > 1 {
		placeStartupImage(ed, os.Args[1])
	}

	if cfgPath != "" {
		watcher := setupConfigWatcher(cfgPath, cfg, session, ed, logger)
		defer watcher.Stop()
	}

	win.ShowAndRun()
}

// placeStartupImage places an image passed on the command line as the
// pending overlay.
func placeStartupImage(ed *editor.Editor, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Failed to open %s: %v", path, err)
		return
	}
	defer f.Close()

	img, err := raster.Decode(f)
	if err != nil {
		log.Printf("Failed to decode %s: %v", path, err)
		return
	}
	ed.PlaceImage(img)
	log.Printf("Placed %s", path)
}

// setupConfigWatcher reloads the configuration file when it changes on disk
// and applies the new values to the running session and editor. The canvas
// size is fixed at startup and is not affected by reloads.
func setupConfigWatcher(path string, cfg *config.Config, session *app.Session, ed *editor.Editor, logger *slog.Logger) *config.Watcher {
	watcher := config.NewWatcher(path, 2*time.Second)

	watcher.OnChange(func() {
		updated, err := config.Load(path)
		if err != nil {
			logger.Warn("config reload failed", "path", path, "error", err)
			return
		}
		*cfg = *updated

		if c, err := colorutil.FromHex(cfg.Pen.Color); err == nil {
			session.SetPenColor(c)
		}
		session.SetPenWidth(cfg.Pen.Width)
		session.SetModel(cfg.Generation.Model)
		ed.SetGenerator(genai.NewClient(cfg.Generation.Endpoint, cfg.Generation.APIKey, cfg.Generation.Timeout(), logger))
		session.Emit(app.EventConfigReloaded, cfg)

		logger.Info("configuration reloaded", "path", path)
	})

	watcher.Start()
	return watcher
}
