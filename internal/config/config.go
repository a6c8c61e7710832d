// Package config resolves loadday settings from defaults, an optional JSON
// config file and LOADDAY_* environment variables, in increasing order of
// precedence. Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pfrederiksen/loadday/internal/credentials"
	"github.com/pfrederiksen/loadday/internal/puzzle"
)

const (
	DefaultConfigFile = "loadday.json"
	DefaultTimeout    = 30

	envPrefix = "LOADDAY_"
)

// Config holds the application configuration
type Config struct {
	Year      int    `json:"year"`
	BaseURL   string `json:"base_url"`
	TokenFile string `json:"token_file"`
	Dir       string `json:"dir"`
	Timeout   int    `json:"timeout"` // seconds
	UserAgent string `json:"user_agent,omitempty"`
}

// Default returns the configuration used when nothing else is set.
// The year defaults to the year of now.
func Default(now time.Time) Config {
	return Config{
		Year:      now.Year(),
		BaseURL:   puzzle.DefaultBaseURL,
		TokenFile: credentials.DefaultTokenFile,
		Dir:       ".",
		Timeout:   DefaultTimeout,
	}
}

// LoadDotEnv loads environment variables from a .env file if one exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load builds the configuration. A missing config file is not an error.
func Load(path string, now time.Time) (Config, error) {
	cfg := Default(now)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			k := koanf.New(".")
			if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config: %w", err)
			}
			if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
				return Config{}, fmt.Errorf("unmarshal config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.TokenFile = strings.TrimSpace(cfg.TokenFile)
	if cfg.BaseURL == "" {
		cfg.BaseURL = puzzle.DefaultBaseURL
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = credentials.DefaultTokenFile
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// applyEnv overrides fields from LOADDAY_* variables
func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("YEAR"); ok {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %sYEAR: %w", envPrefix, err)
		}
		c.Year = year
	}
	if v, ok := lookupEnv("TIMEOUT"); ok {
		timeout, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %sTIMEOUT: %w", envPrefix, err)
		}
		c.Timeout = timeout
	}
	if v, ok := lookupEnv("BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := lookupEnv("TOKEN_FILE"); ok {
		c.TokenFile = v
	}
	if v, ok := lookupEnv("DIR"); ok {
		c.Dir = v
	}
	if v, ok := lookupEnv("USER_AGENT"); ok {
		c.UserAgent = v
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// TimeoutDuration returns the HTTP timeout
func (c Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
