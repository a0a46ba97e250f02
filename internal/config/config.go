// Package config loads process-wide settings from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/yopmail-tools/go-yopmail-cli/internal/platform/yopmail"
)

// Config is the process-wide configuration surface. Everything is
// optional with working defaults.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	ProxyURL string
	LogLevel string
}

// Load reads configuration from YOPMAIL_* environment variables and, when
// present, a config.yaml under ~/.config/go-yopmail-cli or the working
// directory. Environment wins over file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("base_url", yopmail.DefaultBaseURL)
	v.SetDefault("timeout", yopmail.DefaultTimeout)
	v.SetDefault("proxy_url", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("YOPMAIL")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "go-yopmail-cli"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:  v.GetString("base_url"),
		Timeout:  v.GetDuration("timeout"),
		ProxyURL: v.GetString("proxy_url"),
		LogLevel: v.GetString("log_level"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = yopmail.DefaultTimeout
	}
	return cfg, nil
}

// ClientConfig maps the process config onto a client config.
func (c *Config) ClientConfig() *yopmail.Config {
	return &yopmail.Config{
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout,
		ProxyURL: c.ProxyURL,
		Logger:   logrus.StandardLogger(),
	}
}

// ParseLogLevel maps the configured level onto logrus, defaulting to
// info on unknown values.
func (c *Config) ParseLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
