package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/auth"
)

// Config is the top-level TOML document. Every section is optional in the file.
type Config struct {
	Server     Server     `toml:"server"`
	Auth       Auth       `toml:"auth"`
	Inactivity Inactivity `toml:"inactivity"`
	Log        Log        `toml:"log"`
}

type Server struct {
	Service string `toml:"service"` // for logs only
	Listen  string `toml:"listen" validate:"required"`
	TLSCert string `toml:"tls_cert"`
	TLSKey  string `toml:"tls_key"`
}

type Auth struct {
	CookieName  string `toml:"cookie_name" validate:"required"`
	ValidateURL string `toml:"validate_url" validate:"required,url"`
	TimeoutMS   int    `toml:"timeout_ms" validate:"gte=0"`
	RetryOnce   bool   `toml:"retry_once"`
}

// Inactivity disables the idle watchdog when LimitSeconds is 0.
type Inactivity struct {
	LimitSeconds         int `toml:"limit_seconds" validate:"gte=0"`
	CheckIntervalSeconds int `toml:"check_interval_seconds" validate:"gte=1"`
}

// Log controls both the system log and the access log. Rotation values
// are handed to lumberjack as-is; 0 means its default.
type Log struct {
	Dir        string `toml:"dir" validate:"required"`
	Level      string `toml:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `toml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `toml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `toml:"max_age_days" validate:"gte=0"`
	Quiet      bool   `toml:"quiet"` // no stdout copy
}

func Default() Config {
	return Config{
		Server:     Server{Service: "authdelegate", Listen: ":3000"},
		Auth:       Auth{TimeoutMS: 8000},
		Inactivity: Inactivity{CheckIntervalSeconds: 1},
		Log:        Log{Dir: "log", Level: "info", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// AuthConfig is the immutable configuration handed to the delegate.
func (c Config) AuthConfig() auth.Config {
	return auth.Config{
		CookieName:  c.Auth.CookieName,
		ValidateURL: c.Auth.ValidateURL,
		TimeoutMS:   c.Auth.TimeoutMS,
		RetryOnce:   c.Auth.RetryOnce,
	}
}
