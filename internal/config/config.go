package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Serp      SerpConfig      `yaml:"serp" mapstructure:"serp"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Treasurer TreasurerConfig `yaml:"treasurer" mapstructure:"treasurer"`
	Ticker    TickerConfig    `yaml:"ticker" mapstructure:"ticker"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run audit store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Path        string `yaml:"path" mapstructure:"path"`
}

// SerpConfig holds search API settings.
type SerpConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// JinaConfig holds Jina AI Reader settings.
type JinaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// ScrapeConfig configures leadership-page text extraction.
type ScrapeConfig struct {
	RenderTimeoutSecs int    `yaml:"render_timeout_secs" mapstructure:"render_timeout_secs"`
	StaticTimeoutSecs int    `yaml:"static_timeout_secs" mapstructure:"static_timeout_secs"`
	UserAgent         string `yaml:"user_agent" mapstructure:"user_agent"`
}

// TreasurerConfig holds the disambiguation thresholds. The cutoffs between
// single_confident / multiple_candidates / uncertain are deliberately
// tunable; the defaults are conservative.
type TreasurerConfig struct {
	HighThreshold   float64 `yaml:"high_threshold" mapstructure:"high_threshold"`
	MediumThreshold float64 `yaml:"medium_threshold" mapstructure:"medium_threshold"`
	UsableThreshold float64 `yaml:"usable_threshold" mapstructure:"usable_threshold"`
	TieMargin       float64 `yaml:"tie_margin" mapstructure:"tie_margin"`
	// FormerPolicy decides how "former treasurer" language is treated:
	// "penalize" lowers the score, "disqualify" drops the candidate.
	FormerPolicy string `yaml:"former_policy" mapstructure:"former_policy"`
}

// TickerConfig locates the SEC ticker→company lookup table.
type TickerConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BatchConfig configures batch screening.
type BatchConfig struct {
	MaxConcurrentCompanies int `yaml:"max_concurrent_companies" mapstructure:"max_concurrent_companies"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "screen.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.max_concurrent_companies", 5)
	v.SetDefault("serp.base_url", "https://serpapi.com")
	v.SetDefault("jina.base_url", "https://r.jina.ai")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("scrape.render_timeout_secs", 30)
	v.SetDefault("scrape.static_timeout_secs", 10)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; ScreenBot/1.0)")
	v.SetDefault("treasurer.high_threshold", 0.75)
	v.SetDefault("treasurer.medium_threshold", 0.55)
	v.SetDefault("treasurer.usable_threshold", 0.45)
	v.SetDefault("treasurer.tie_margin", 0.10)
	v.SetDefault("treasurer.former_policy", "penalize")
	v.SetDefault("ticker.path", "company_tickers.json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the config is usable for the given mode ("screen",
// "batch", or "serve"). Modes share the core pipeline requirements; serve
// and batch add their own.
func (c *Config) Validate(mode string) error {
	var problems []string

	appendCore := func() {
		if c.Serp.Key == "" {
			problems = append(problems, "serp.key is required")
		}
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
		if err := c.Treasurer.validate(); err != nil {
			problems = append(problems, err.Error())
		}
	}

	switch mode {
	case "screen":
		appendCore()
	case "batch":
		appendCore()
		if c.Batch.MaxConcurrentCompanies < 1 || c.Batch.MaxConcurrentCompanies > 50 {
			problems = append(problems, "batch.max_concurrent_companies must be between 1 and 50")
		}
	case "serve":
		appendCore()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Batch.MaxConcurrentCompanies < 1 || c.Batch.MaxConcurrentCompanies > 50 {
			problems = append(problems, "batch.max_concurrent_companies must be between 1 and 50")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid for mode %s: %s", mode, strings.Join(problems, "; "))
	}
	return nil
}

func (t *TreasurerConfig) validate() error {
	inUnit := func(v float64) bool { return v >= 0 && v <= 1 }
	if !inUnit(t.HighThreshold) || !inUnit(t.MediumThreshold) || !inUnit(t.UsableThreshold) || !inUnit(t.TieMargin) {
		return eris.New("treasurer thresholds must be within [0, 1]")
	}
	if t.HighThreshold < t.MediumThreshold || t.MediumThreshold < t.UsableThreshold {
		return eris.New("treasurer thresholds must satisfy high >= medium >= usable")
	}
	switch t.FormerPolicy {
	case "penalize", "disqualify":
	default:
		return eris.Errorf("treasurer.former_policy must be penalize or disqualify, got %q", t.FormerPolicy)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
