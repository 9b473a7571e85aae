package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-chapters/internal/audio"
	"github.com/vovakirdan/tui-chapters/internal/choreo"
	"github.com/vovakirdan/tui-chapters/internal/config"
	"github.com/vovakirdan/tui-chapters/internal/registry"
	"github.com/vovakirdan/tui-chapters/internal/scene"
	"github.com/vovakirdan/tui-chapters/internal/storage"
)

// Options carries the shared dependencies of every screen.
type Options struct {
	Settings config.Settings
	Logger   *log.Logger
	// Store records funnel milestones. Nil disables recording.
	Store *storage.Store
	// Chime plays on accepted activations. Nil is silent.
	Chime audio.Player
	// Session tags recorded milestones.
	Session string
	// Scenes replaces the chapter's scene table when set.
	Scenes *scene.Table
	// Width and Height are the initial terminal size.
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Chime == nil {
		o.Chime = audio.Nop{}
	}
	if o.Settings.FPS <= 0 {
		o.Settings.FPS = 30
	}
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 24
	}
	return o
}

// engineOptions maps settings onto engine tuning.
func (o Options) engineOptions() choreo.Options {
	eo := choreo.DefaultOptions()
	s := o.Settings
	if s.BlendRate > 0 {
		eo.BlendRate = s.BlendRate
	}
	if s.VisibleEpsilon > 0 {
		eo.VisibleEpsilon = s.VisibleEpsilon
	}
	if s.ProxyScale > 0 {
		eo.ProxyScale = s.ProxyScale
	}
	if s.DustCount > 0 {
		eo.DustCount = s.DustCount
	}
	eo.Labels = s.Labels
	eo.Logger = o.Logger
	return eo
}

// delayFor returns the configured advance delay for a chapter status, or
// fallback when none is configured.
func (o Options) delayFor(status registry.Status, fallback time.Duration) time.Duration {
	var d time.Duration
	switch status {
	case registry.StatusReady:
		d = o.Settings.Delays.Ready
	case registry.StatusScaffolded:
		d = o.Settings.Delays.Scaffolded
	}
	if d <= 0 {
		return fallback
	}
	return d
}

// record stores a milestone. Failures are logged and otherwise ignored.
func (o Options) record(kind storage.Kind, subject string) {
	if o.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := o.Store.RecordMilestone(ctx, kind, subject, o.Session); err != nil {
		o.Logger.Warn("milestone not recorded", "kind", kind, "subject", subject, "error", err)
	}
}
