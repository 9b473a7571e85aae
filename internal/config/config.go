// Package config provides YAML-based settings loading with environment
// overrides for the chapters platform.
package config

import "time"

// Settings is the full runtime configuration.
type Settings struct {
	FPS            int     `yaml:"fps" env:"FPS"`
	BlendRate      float64 `yaml:"blend_rate" env:"BLEND_RATE"`           // per second
	VisibleEpsilon float64 `yaml:"visible_epsilon" env:"VISIBLE_EPSILON"` // groups at or below this weight are hidden
	ProxyScale     float64 `yaml:"proxy_scale" env:"PROXY_SCALE"`
	Labels         bool    `yaml:"labels" env:"LABELS"`
	DustCount      int     `yaml:"dust_count" env:"DUST_COUNT"`

	Delays DelayConfig `yaml:"delays" envPrefix:"DELAY_"`
	Chime  ChimeConfig `yaml:"chime" envPrefix:"CHIME_"`

	DBPath   string `yaml:"db_path" env:"DB_PATH"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile  string `yaml:"log_file" env:"LOG_FILE"`

	SSH SSHConfig `yaml:"ssh" envPrefix:"SSH_"`
}

// DelayConfig holds the scripted advance delay per chapter status.
type DelayConfig struct {
	Ready      time.Duration `yaml:"ready" env:"READY"`
	Scaffolded time.Duration `yaml:"scaffolded" env:"SCAFFOLDED"`
}

// ChimeConfig controls the activation chime.
type ChimeConfig struct {
	Enabled   bool          `yaml:"enabled" env:"ENABLED"`
	Frequency float64       `yaml:"frequency" env:"FREQUENCY"` // Hz
	Duration  time.Duration `yaml:"duration" env:"DURATION"`
	Volume    float64       `yaml:"volume" env:"VOLUME"` // base-2 exponent, 0 is unchanged
}

// SSHConfig configures the serve command.
type SSHConfig struct {
	Addr    string `yaml:"addr" env:"ADDR"`
	HostKey string `yaml:"host_key" env:"HOST_KEY"`
}
