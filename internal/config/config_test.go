package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the test away from real config files and GRIDBOOK_* vars.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"GRIDBOOK_SOURCE_URL", "GRIDBOOK_CACHE_DIR", "GRIDBOOK_LOGO_PATH",
		"GRIDBOOK_OUTPUT_PATH", "GRIDBOOK_FORMAT", "GRIDBOOK_HEADSHOTS",
		"GRIDBOOK_TIMEOUT_SECONDS", "GRIDBOOK_LOG_LEVEL", "GRIDBOOK_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://api.openf1.org/v1", cfg.SourceURL)
	assert.Equal(t, "headshots", cfg.CacheDir)
	assert.Equal(t, "f1_logo.png", cfg.LogoPath)
	assert.Equal(t, FormatPDF, cfg.Format)
	assert.True(t, cfg.Headshots)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "test.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_url = "http://localhost:9000/v1"
format = "csv"
headshots = false
timeout_seconds = 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/v1", cfg.SourceURL)
	assert.Equal(t, FormatCSV, cfg.Format)
	assert.False(t, cfg.Headshots)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
	// Untouched keys keep their defaults.
	assert.Equal(t, "headshots", cfg.CacheDir)
}

func TestLoadWorkingDirFile(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile("gridbook.toml", []byte(`log_level = "debug"`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadExplicitMissingFallsBack(t *testing.T) {
	isolate(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParseError(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`format = [broken`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GRIDBOOK_FORMAT", "csv")
	t.Setenv("GRIDBOOK_TIMEOUT_SECONDS", "5")
	t.Setenv("GRIDBOOK_HEADSHOTS", "false")
	t.Setenv("GRIDBOOK_CACHE_DIR", "/tmp/heads")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, cfg.Format)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
	assert.False(t, cfg.Headshots)
	assert.Equal(t, "/tmp/heads", cfg.CacheDir)
}

func TestEnvInvalidValuesKeepPrevious(t *testing.T) {
	isolate(t)
	t.Setenv("GRIDBOOK_TIMEOUT_SECONDS", "soon")
	t.Setenv("GRIDBOOK_HEADSHOTS", "nope")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.True(t, cfg.Headshots)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty source url", mutate: func(c *Config) { c.SourceURL = "" }},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "xlsx" }},
		{name: "zero timeout", mutate: func(c *Config) { c.TimeoutSeconds = 0 }},
		{name: "negative timeout", mutate: func(c *Config) { c.TimeoutSeconds = -1 }},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "pdf with headshots", cfg: Config{Format: FormatPDF, Headshots: true}, want: "f1_drivers_report_heads.pdf"},
		{name: "pdf without headshots", cfg: Config{Format: FormatPDF}, want: "f1_drivers_report.pdf"},
		{name: "csv ignores headshots", cfg: Config{Format: FormatCSV, Headshots: true}, want: "f1_drivers_report.csv"},
		{name: "explicit path wins", cfg: Config{Format: FormatPDF, OutputPath: "out/grid.pdf"}, want: "out/grid.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolveOutputPath())
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := Config{TimeoutSeconds: 30}
	assert.Equal(t, "30s", cfg.Timeout().String())
}
