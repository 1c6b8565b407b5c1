package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved client configuration. It is built once at startup
// and passed by value.
type Config struct {
	APIURL         string
	DownloadDir    string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath  = "~/.config/pitchdeck/config.toml"
	defaultAPIURL      = "http://127.0.0.1:8000"
	defaultDownloadDir = "~/Downloads"
	defaultLogFile     = "~/.local/state/pitchdeck/pitchdeck.log"
	defaultLogLevel    = "info"

	// APIURLEnv overrides api_url from the config file.
	APIURLEnv = "PITCHDECK_API_URL"
)

// Load reads the config file at path (or the default location), applies the
// environment override and falls back to defaults for anything missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("download_dir", defaultDownloadDir)
	v.SetDefault("log_file", defaultLogFile)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("request_timeout", "0s")
	if err := v.BindEnv("api_url", APIURLEnv); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if _, err := os.Stat(resolved); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := Config{
		APIURL:      stringOr(v.GetString("api_url"), defaultAPIURL),
		DownloadDir: mustExpand(stringOr(v.GetString("download_dir"), defaultDownloadDir)),
		LogFile:     mustExpand(stringOr(v.GetString("log_file"), defaultLogFile)),
		LogLevel:    strings.ToLower(stringOr(v.GetString("log_level"), defaultLogLevel)),
	}

	timeout, err := parseTimeout(v.GetString("request_timeout"))
	if err != nil {
		return Config{}, err
	}
	cfg.RequestTimeout = timeout

	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse request_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("request_timeout must not be negative, got %s", d)
	}
	return d, nil
}

func stringOr(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
