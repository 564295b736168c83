package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Load reads .env (never overriding the real environment), then the TOML file
// at path if it exists, then environment overrides, and validates the result.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			if err := toml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(c *Config) error {
	setString(&c.Auth.CookieName, "COOKIE_NAME")
	setString(&c.Auth.ValidateURL, "VALIDATE_URL")
	setString(&c.Server.Listen, "SERVER_LISTEN_ADDRESS")
	setString(&c.Server.TLSCert, "SSL_SERVER_CERTIFICATE")
	setString(&c.Server.TLSKey, "SSL_SERVER_KEY")
	setString(&c.Log.Dir, "LOG_DIR")
	setString(&c.Log.Level, "LOG_LEVEL")

	for _, kv := range []struct {
		key string
		dst *int
	}{
		{"VALIDATE_TIMEOUT_MS", &c.Auth.TimeoutMS},
		{"IDLE_LIMIT_SECONDS", &c.Inactivity.LimitSeconds},
		{"IDLE_CHECK_INTERVAL_SECONDS", &c.Inactivity.CheckIntervalSeconds},
	} {
		if err := setInt(kv.dst, kv.key); err != nil {
			return err
		}
	}

	if v := strings.TrimSpace(os.Getenv("VALIDATE_RETRY_ONCE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("VALIDATE_RETRY_ONCE: %w", err)
		}
		c.Auth.RetryOnce = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
