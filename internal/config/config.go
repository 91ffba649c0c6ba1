// Package config loads the report generator's configuration. Values resolve
// in order: built-in defaults, an optional TOML file, .env and GRIDBOOK_*
// environment overrides, then flag overrides applied by the command layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// Report output formats.
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

// Config holds every tunable of a report run.
type Config struct {
	SourceURL      string `toml:"source_url"`
	CacheDir       string `toml:"cache_dir"`
	LogoPath       string `toml:"logo_path"`
	OutputPath     string `toml:"output_path"`
	Format         string `toml:"format"`
	Headshots      bool   `toml:"headshots"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
}

// Default returns the configuration of a bare run with no file, env, or
// flags.
func Default() Config {
	return Config{
		SourceURL:      "https://api.openf1.org/v1",
		CacheDir:       "headshots",
		LogoPath:       "f1_logo.png",
		Format:         FormatPDF,
		Headshots:      true,
		TimeoutSeconds: 30,
		LogLevel:       "info",
		LogFormat:      "auto",
	}
}

// Load builds the effective configuration from defaults, the resolved TOML
// file, and environment overrides, then validates it. Flag overrides are the
// caller's business.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	path := resolveConfigPath(explicitPath)
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config file %s: %w", path, err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolveConfigPath picks the config file to read: the explicit path when it
// exists, then gridbook.toml in the working directory, then the per-user
// config. A missing file is not an error; defaults cover it.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		log.Warn().Str("path", explicit).Msg("Config file not found, using defaults")
		return ""
	}

	if _, err := os.Stat("gridbook.toml"); err == nil {
		return "gridbook.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", "gridbook", "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// applyEnv layers .env and GRIDBOOK_* variables over the current values.
// Unparseable numeric or boolean values keep the previous value with a
// warning rather than failing the run.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("GRIDBOOK_SOURCE_URL"); v != "" {
		c.SourceURL = v
	}
	if v := os.Getenv("GRIDBOOK_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("GRIDBOOK_LOGO_PATH"); v != "" {
		c.LogoPath = v
	}
	if v := os.Getenv("GRIDBOOK_OUTPUT_PATH"); v != "" {
		c.OutputPath = v
	}
	if v := os.Getenv("GRIDBOOK_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("GRIDBOOK_HEADSHOTS"); v != "" {
		if parsed, err := strconv.ParseBool(v); err != nil {
			log.Warn().Str("value", v).Msg("Invalid GRIDBOOK_HEADSHOTS, keeping previous value")
		} else {
			c.Headshots = parsed
		}
	}
	if v := os.Getenv("GRIDBOOK_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err != nil {
			log.Warn().Str("value", v).Msg("Invalid GRIDBOOK_TIMEOUT_SECONDS, keeping previous value")
		} else {
			c.TimeoutSeconds = parsed
		}
	}
	if v := os.Getenv("GRIDBOOK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GRIDBOOK_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

// Validate rejects values no run could work with. Log levels are not
// checked here; the logging layer warns and falls back on its own.
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return errors.New("source_url must not be empty")
	}
	if c.Format != FormatPDF && c.Format != FormatCSV {
		return fmt.Errorf("format %q: want %q or %q", c.Format, FormatPDF, FormatCSV)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds %d: must be positive", c.TimeoutSeconds)
	}
	switch c.LogFormat {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("log_format %q: want auto, console, or json", c.LogFormat)
	}
	return nil
}

// Timeout returns the HTTP request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolveOutputPath returns the explicit output path when set, otherwise the
// conventional filename for the active format. PDF reports with headshots
// carry the _heads suffix.
func (c *Config) ResolveOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	name := "f1_drivers_report"
	if c.Headshots && c.Format == FormatPDF {
		name += "_heads"
	}
	return name + "." + c.Format
}
