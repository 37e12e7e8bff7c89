package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL string        `env:"API_BASE_URL, default=http://localhost:8080"`
	APITimeout time.Duration `env:"API_TIMEOUT,  default=10s"`
	LogLevel   string        `env:"LOG_LEVEL,    default=info"`
	LogPretty  bool          `env:"LOG_PRETTY,   default=true"`

	// DataDir holds the credential and preference files. Empty means a
	// per-user default under the OS config directory.
	DataDir string `env:"DATA_DIR"`

	// DeviceSecret overrides the auto-provisioned device identity; used by
	// tests and by platforms that expose a real hardware-backed secret.
	DeviceSecret string `env:"DEVICE_SECRET"`

	// Language forces the UI language, bypassing the saved preference and
	// device-locale detection. Normally unset.
	Language string `env:"LANGUAGE"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(base, "propmobile")
	}
	return &cfg, nil
}

// DeviceLocale reports the device's raw locale tag from the environment,
// empty when unset. POSIX values like "es_MX.UTF-8" are normalized later by
// the locale matcher.
func DeviceLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
