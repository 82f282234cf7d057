package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Log         struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		SlowThreshold   time.Duration `yaml:"slow_threshold"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Data struct {
		CatalogPath        string `yaml:"catalog_path"`
		HistoryPath        string `yaml:"history_path"`
		FallbackPricesPath string `yaml:"fallback_prices_path"`
	} `yaml:"data"`
	Scryfall struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
		EURToUSD float64      `yaml:"eur_to_usd"`
	} `yaml:"scryfall"`
	Pricing struct {
		MinAccepted  float64 `yaml:"min_accepted"`
		DefaultPrice float64 `yaml:"default_price"`
	} `yaml:"pricing"`
	Cache struct {
		MemoryMaxSize int `yaml:"memory_max_size"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Narrative struct {
		Provider    string        `yaml:"provider"` // openai, gemini or template
		Model       string        `yaml:"model"`
		BaseURL     string        `yaml:"base_url"`
		MaxTokens   int           `yaml:"max_tokens"`
		Temperature float32       `yaml:"temperature"`
		Timeout     time.Duration `yaml:"timeout"`
		APIKey      string        `yaml:"-"`
		RateLimit   struct {
			Capacity  float64 `yaml:"capacity"`
			PerSecond float64 `yaml:"per_second"`
		} `yaml:"rate_limit"`
	} `yaml:"narrative"`
	Featured struct {
		Names       []string `yaml:"names"`
		Concurrency int      `yaml:"concurrency"`
		RefreshCron string   `yaml:"refresh_cron"`
	} `yaml:"featured"`
}

// Load reads and parses a YAML configuration file. A missing file is not an
// error: defaults and environment variables still produce a usable config.
func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads .env (if present), the YAML config, then applies
// environment variable overrides.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("CARDPULSE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		c.Data.CatalogPath = v
	}
	if v := os.Getenv("HISTORY_PATH"); v != "" {
		c.Data.HistoryPath = v
	}
	if v := os.Getenv("FALLBACK_PRICES_PATH"); v != "" {
		c.Data.FallbackPricesPath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("NARRATIVE_PROVIDER"); v != "" {
		c.Narrative.Provider = v
	}
	if v := os.Getenv("FEATURED_CARDS"); v != "" {
		names := strings.Split(v, ",")
		c.Featured.Names = nil
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				c.Featured.Names = append(c.Featured.Names, n)
			}
		}
	}

	// The narrator credential never lives in YAML.
	switch c.Narrative.Provider {
	case "gemini":
		c.Narrative.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		c.Narrative.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Data.CatalogPath == "" {
		c.Data.CatalogPath = "data/db.json"
	}
	if c.Data.HistoryPath == "" {
		c.Data.HistoryPath = "data/precios_historicos.json"
	}
	if c.Data.FallbackPricesPath == "" {
		c.Data.FallbackPricesPath = "data/fallback-prices.json"
	}
	if c.Scryfall.BaseURL == "" {
		c.Scryfall.BaseURL = "https://api.scryfall.com"
	}
	if c.Scryfall.Timeout == 0 {
		c.Scryfall.Timeout = 10 * time.Second
	}
	if c.Scryfall.EURToUSD == 0 {
		c.Scryfall.EURToUSD = 1.1
	}
	if c.Pricing.MinAccepted == 0 {
		c.Pricing.MinAccepted = 0.5
	}
	if c.Pricing.DefaultPrice == 0 {
		c.Pricing.DefaultPrice = 1
	}
	if c.Cache.Redis.Port == 0 {
		c.Cache.Redis.Port = 6379
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "cardpulse"
	}
	if c.Narrative.Provider == "" {
		c.Narrative.Provider = "openai"
	}
	if c.Narrative.Model == "" {
		switch c.Narrative.Provider {
		case "gemini":
			c.Narrative.Model = "gemini-2.0-flash"
		default:
			c.Narrative.Model = "gpt-3.5-turbo"
		}
	}
	if c.Narrative.MaxTokens == 0 {
		c.Narrative.MaxTokens = 250
	}
	if c.Narrative.Temperature == 0 {
		c.Narrative.Temperature = 0.7
	}
	if c.Narrative.Timeout == 0 {
		c.Narrative.Timeout = 20 * time.Second
	}
	if c.Narrative.RateLimit.Capacity == 0 {
		c.Narrative.RateLimit.Capacity = 5
	}
	if c.Narrative.RateLimit.PerSecond == 0 {
		c.Narrative.RateLimit.PerSecond = 0.5
	}
	if len(c.Featured.Names) == 0 {
		c.Featured.Names = DefaultFeatured()
	}
	if c.Featured.Concurrency == 0 {
		c.Featured.Concurrency = 4
	}
	if c.Featured.RefreshCron == "" {
		c.Featured.RefreshCron = "@every 10m"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Narrative.Provider {
	case "openai", "gemini", "template":
	default:
		return fmt.Errorf("narrative.provider must be 'openai', 'gemini' or 'template', got '%s'", c.Narrative.Provider)
	}
	if c.Pricing.DefaultPrice <= c.Pricing.MinAccepted {
		return fmt.Errorf("pricing.default_price (%v) must exceed pricing.min_accepted (%v)", c.Pricing.DefaultPrice, c.Pricing.MinAccepted)
	}
	if c.Featured.Concurrency < 1 {
		return fmt.Errorf("featured.concurrency must be positive")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Host == "" {
		return fmt.Errorf("cache.redis.host is required when redis is enabled")
	}
	return nil
}

// DefaultFeatured is the dashboard's fixed list of featured cards.
func DefaultFeatured() []string {
	return []string{
		"Black Lotus",
		"Ancestral Recall",
		"Mox Sapphire",
		"Mox Ruby",
		"Mox Emerald",
		"Time Walk",
		"Timetwister",
		"Sol Ring",
		"Mana Crypt",
		"Jace, the Mind Sculptor",
		"Force of Will",
		"Brainstorm",
		"Ponder",
		"Counterspell",
		"Lightning Bolt",
		"Thoughtseize",
		"Vendilion Clique",
		"Tarmogoyf",
		"Damnation",
		"Liliana of the Veil",
		"Polluted Delta",
		"Scalding Tarn",
		"Bloodstained Mire",
	}
}
