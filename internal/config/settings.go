package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/eugenenazirov/gotify-push/internal/apperrors"
)

const envPrefix = "GOTIFY_PUSH_"

// Settings are process-level knobs read from GOTIFY_PUSH_* environment
// variables. They never affect the notification parameters themselves,
// except ConfigPath which stands in for a missing --config flag.
type Settings struct {
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat  string        `env:"LOG_FORMAT" envDefault:"console"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"0s"`
	ConfigPath string        `env:"CONFIG"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: envPrefix}); err != nil {
		return Settings{}, &apperrors.ConfigError{Msg: "parse environment", Err: err}
	}
	if err := validateSettings(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func validateSettings(s Settings) error {
	switch s.LogFormat {
	case "console", "json":
	default:
		return apperrors.Configf("%sLOG_FORMAT must be console or json, got %q", envPrefix, s.LogFormat)
	}
	if s.Timeout < 0 {
		return apperrors.Configf("%sTIMEOUT must be >= 0", envPrefix)
	}
	return nil
}

// Describe renders settings for debug output.
func (s Settings) Describe() string {
	return fmt.Sprintf("log_level=%s log_format=%s timeout=%s", s.LogLevel, s.LogFormat, s.Timeout)
}
