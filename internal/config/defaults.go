package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hardcoded configuration.
func DefaultSettings() Settings {
	return Settings{
		FPS:            30,
		BlendRate:      3.2,
		VisibleEpsilon: 0.02,
		ProxyScale:     1.0,
		Labels:         true,
		DustCount:      160,
		Delays: DelayConfig{
			Ready:      420 * time.Millisecond,
			Scaffolded: 360 * time.Millisecond,
		},
		Chime: ChimeConfig{
			Enabled:   true,
			Frequency: 880,
			Duration:  140 * time.Millisecond,
			Volume:    -1.5,
		},
		DBPath:   "~/.chapters/funnel.db",
		LogLevel: "info",
		LogFile:  "~/.chapters/chapters.log",
		SSH: SSHConfig{
			Addr:    ":2222",
			HostKey: ".ssh/chapters_ed25519",
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
