package cmd

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

const envPrefix = "INSTAGOOD_"

// Config is the CLI configuration. Flags take precedence over INSTAGOOD_*
// environment variables.
type Config struct {
	Username   string        `env:"USERNAME"`
	CSRFToken  string        `env:"CSRF_TOKEN"`
	SessionID  string        `env:"SESSION_ID"`
	Password   string        `env:"PASSWORD"`
	TOTPSecret string        `env:"TOTP_SECRET"`
	Proxy      string        `env:"PROXY"`
	BaseURL    string        `env:"BASE_URL"`
	Timeout    time.Duration `env:"TIMEOUT"`
	Debug      bool          `env:"DEBUG"`
}

func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

// loadConfig layers the flags given on the command line over the
// environment. changed reports whether a flag was given; it may be nil.
func loadConfig(flags Config, changed func(name string) bool) (Config, error) {
	var out Config
	if err := parseEnv(&out); err != nil {
		return Config{}, err
	}
	if err := mergo.Merge(&out, flags, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("error merging configs: %w", err)
	}
	if changed != nil {
		for name, apply := range explicitFlags(&out, flags) {
			if changed(name) {
				apply()
			}
		}
	}
	return out, out.validate()
}

// explicitFlags copies zero values too, which mergo leaves alone.
func explicitFlags(out *Config, flags Config) map[string]func() {
	return map[string]func(){
		"username":    func() { out.Username = flags.Username },
		"csrf-token":  func() { out.CSRFToken = flags.CSRFToken },
		"session-id":  func() { out.SessionID = flags.SessionID },
		"password":    func() { out.Password = flags.Password },
		"totp-secret": func() { out.TOTPSecret = flags.TOTPSecret },
		"proxy":       func() { out.Proxy = flags.Proxy },
		"base-url":    func() { out.BaseURL = flags.BaseURL },
		"timeout":     func() { out.Timeout = flags.Timeout },
		"debug":       func() { out.Debug = flags.Debug },
	}
}

func (c Config) validate() error {
	if c.Username == "" {
		return errors.New("username is required (--username or " + envPrefix + "USERNAME)")
	}
	if (c.CSRFToken == "") != (c.SessionID == "") {
		return errors.New("csrf token and session id must be given together")
	}
	return nil
}
