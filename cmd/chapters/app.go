package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-chapters/internal/audio"
	"github.com/vovakirdan/tui-chapters/internal/config"
	"github.com/vovakirdan/tui-chapters/internal/platform/tui"
	"github.com/vovakirdan/tui-chapters/internal/registry"
	"github.com/vovakirdan/tui-chapters/internal/storage"
)

// app holds everything a command needs, opened once.
type app struct {
	settings config.Settings
	logger   *log.Logger
	store    *storage.Store
	chime    *audio.Chime
	logFile  *os.File
}

// setup loads settings, applies flags and opens the log, store and chime.
// A missing database only disables milestone recording.
func setup(withChime bool) (*app, error) {
	if err := registry.Validate(); err != nil {
		return nil, err
	}

	settings, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagFPS > 0 {
		settings.FPS = flagFPS
	}
	if flagDBPath != "" {
		settings.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		settings.LogLevel = flagLogLevel
	}
	if flagNoChime {
		settings.Chime.Enabled = false
	}

	rt := &app{settings: settings}
	rt.logger, rt.logFile, err = openLog(settings)
	if err != nil {
		return nil, err
	}

	rt.store, err = storage.Open(settings.DBPath)
	if err != nil {
		rt.logger.Warn("could not open milestone database", "path", settings.DBPath, "error", err)
		rt.store = nil
	}

	if withChime {
		rt.chime = audio.NewChime(settings.Chime, rt.logger)
	}
	return rt, nil
}

// openLog writes logs to the configured file so they never mix with the
// alternate screen.
func openLog(settings config.Settings) (*log.Logger, *os.File, error) {
	level, err := log.ParseLevel(strings.ToLower(settings.LogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}

	path, err := config.ExpandHome(settings.LogFile)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "chapters"})
		return logger, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "chapters",
	})
	return logger, f, nil
}

// options builds the screen options for a local terminal.
func (rt *app) options() tui.Options {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	opts := tui.Options{
		Settings: rt.settings,
		Logger:   rt.logger,
		Store:    rt.store,
		Session:  fmt.Sprintf("local-%d", os.Getpid()),
		Width:    width,
		Height:   height,
	}
	if rt.chime != nil {
		opts.Chime = rt.chime
	}
	return opts
}

// close releases everything setup opened.
func (rt *app) close() {
	if rt.chime != nil {
		rt.chime.Close()
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warn("closing milestone database", "error", err)
		}
	}
	if rt.logFile != nil {
		rt.logFile.Close()
	}
}
