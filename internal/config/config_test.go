package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "screen.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrentCompanies)
	assert.Equal(t, "https://serpapi.com", cfg.Serp.BaseURL)
	assert.Equal(t, "https://r.jina.ai", cfg.Jina.BaseURL)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 30, cfg.Scrape.RenderTimeoutSecs)
	assert.Equal(t, 10, cfg.Scrape.StaticTimeoutSecs)
	assert.InDelta(t, 0.75, cfg.Treasurer.HighThreshold, 0.001)
	assert.InDelta(t, 0.55, cfg.Treasurer.MediumThreshold, 0.001)
	assert.InDelta(t, 0.45, cfg.Treasurer.UsableThreshold, 0.001)
	assert.InDelta(t, 0.10, cfg.Treasurer.TieMargin, 0.001)
	assert.Equal(t, "penalize", cfg.Treasurer.FormerPolicy)
	assert.Equal(t, "company_tickers.json", cfg.Ticker.Path)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/screen
log:
  level: debug
  format: console
server:
  port: 9090
treasurer:
  high_threshold: 0.8
  former_policy: disqualify
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/screen", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.8, cfg.Treasurer.HighThreshold, 0.001)
	assert.Equal(t, "disqualify", cfg.Treasurer.FormerPolicy)
	// Defaults still apply for unset values
	assert.InDelta(t, 0.55, cfg.Treasurer.MediumThreshold, 0.001)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrentCompanies)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SCREEN_STORE_DRIVER", "postgres")
	t.Setenv("SCREEN_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("SCREEN_SERVER_PORT", "3000")
	t.Setenv("SCREEN_SERP_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Serp.Key)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Serp.Key = "serp-key"
	cfg.Anthropic.Key = "sk-ant-key"
	cfg.Server.Port = 8080
	cfg.Batch.MaxConcurrentCompanies = 5
	cfg.Treasurer.HighThreshold = 0.75
	cfg.Treasurer.MediumThreshold = 0.55
	cfg.Treasurer.UsableThreshold = 0.45
	cfg.Treasurer.TieMargin = 0.10
	cfg.Treasurer.FormerPolicy = "penalize"
	return cfg
}

func TestValidateScreen_AllPresent(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("screen"))
}

func TestValidateScreen_MissingKeys(t *testing.T) {
	cfg := validDefaults()
	cfg.Serp.Key = ""
	cfg.Anthropic.Key = ""

	err := cfg.Validate("screen")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "serp.key is required")
	assert.Contains(t, err.Error(), "anthropic.key is required")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateBatch_ConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Batch.MaxConcurrentCompanies = 0
	err := cfg.Validate("batch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrent_companies must be between 1 and 50")

	cfg.Batch.MaxConcurrentCompanies = 51
	err = cfg.Validate("batch")
	assert.Error(t, err)

	cfg.Batch.MaxConcurrentCompanies = 50
	assert.NoError(t, cfg.Validate("batch"))
}

func TestValidateTreasurerThresholds(t *testing.T) {
	cfg := validDefaults()

	cfg.Treasurer.HighThreshold = 1.5
	err := cfg.Validate("screen")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "within [0, 1]")

	cfg.Treasurer.HighThreshold = 0.5
	cfg.Treasurer.MediumThreshold = 0.6
	err = cfg.Validate("screen")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "high >= medium >= usable")

	cfg.Treasurer.HighThreshold = 0.75
	cfg.Treasurer.MediumThreshold = 0.55
	cfg.Treasurer.FormerPolicy = "ignore"
	err = cfg.Validate("screen")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "former_policy")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	want := validDefaults()
	want.Store.Driver = "postgres"
	want.Store.DatabaseURL = "postgres://localhost/screen"
	want.Treasurer.HighThreshold = 0.8
	want.Server.Port = 9191

	data, err := yaml.Marshal(want)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want.Store, got.Store)
	assert.Equal(t, want.Treasurer, got.Treasurer)
	assert.Equal(t, want.Server, got.Server)
}
