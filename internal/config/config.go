package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	AI      AIConfig      `toml:"ai"`
	News    NewsConfig    `toml:"news"`
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Ranking RankingConfig `toml:"ranking"`
	Storage StorageConfig `toml:"storage"`
}

// AIConfig holds AI provider settings.
type AIConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
}

// NewsConfig holds news source settings. APIKey enables the GNews source;
// Feeds lists RSS/Atom URLs fetched alongside it.
type NewsConfig struct {
	APIKey      string   `toml:"api_key"`
	Query       string   `toml:"query"`
	Lang        string   `toml:"lang"`
	Country     string   `toml:"country"`
	MaxArticles int      `toml:"max_articles"`
	HoursBack   int      `toml:"hours_back"`
	Feeds       []string `toml:"feeds"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// CacheConfig holds the optional Redis response cache settings. An empty
// RedisURL disables the cache.
type CacheConfig struct {
	RedisURL   string `toml:"redis_url"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// RankingConfig holds ranking and rewrite settings.
type RankingConfig struct {
	TopK               int  `toml:"top_k"`
	RewriteHeadlines   bool `toml:"rewrite_headlines"`
	RewriteConcurrency int  `toml:"rewrite_concurrency"`
}

// StorageConfig holds the database location and how long briefings are kept.
type StorageConfig struct {
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"` // 0 keeps briefings forever
}

// DefaultQuery is the GNews search expression used when none is configured.
const DefaultQuery = "artificial intelligence OR AI OR machine learning OR deep learning OR neural networks OR LLM OR GPT OR generative AI"

// MaxGNewsArticles is the per-request cap of the GNews free tier.
const MaxGNewsArticles = 10

const defaultConfigContent = `[ai]
provider = "anthropic"            # "anthropic" or "openai"
api_key = ""                      # Your API key (or set AI_API_KEY env var)
model = "claude-haiku-4-5"

[news]
api_key = ""                      # GNews API key (or set GNEWS_API_KEY env var)
query = "artificial intelligence OR AI OR machine learning OR deep learning OR neural networks OR LLM OR GPT OR generative AI"
lang = "en"
country = "us"
max_articles = 10
hours_back = 24
feeds = []                        # Optional RSS/Atom feed URLs

[server]
port = 8080
log_level = "info"

[cache]
redis_url = ""                    # e.g. redis://localhost:6379/0 (or set REDIS_URL)
ttl_minutes = 15

[ranking]
top_k = 3
rewrite_headlines = true
rewrite_concurrency = 4

[storage]
path = "./data/headliner.db"
retention_days = 30               # 0 keeps briefings forever
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg, md)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("news", "max_articles") {
		if cfg.News.MaxArticles < 1 {
			return fmt.Errorf("invalid news.max_articles %d: must be >= 1", cfg.News.MaxArticles)
		}
	}
	if md.IsDefined("news", "hours_back") {
		if cfg.News.HoursBack < 1 {
			return fmt.Errorf("invalid news.hours_back %d: must be >= 1", cfg.News.HoursBack)
		}
	}
	if md.IsDefined("ranking", "top_k") {
		if cfg.Ranking.TopK < 1 {
			return fmt.Errorf("invalid ranking.top_k %d: must be >= 1", cfg.Ranking.TopK)
		}
	}
	if md.IsDefined("ranking", "rewrite_concurrency") {
		if cfg.Ranking.RewriteConcurrency < 1 {
			return fmt.Errorf("invalid ranking.rewrite_concurrency %d: must be >= 1", cfg.Ranking.RewriteConcurrency)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "anthropic"
	}
	if cfg.AI.Model == "" {
		switch cfg.AI.Provider {
		case "openai":
			cfg.AI.Model = "gpt-4o-mini"
		default:
			cfg.AI.Model = "claude-haiku-4-5"
		}
	}
	if cfg.News.Query == "" {
		cfg.News.Query = DefaultQuery
	}
	if cfg.News.Lang == "" {
		cfg.News.Lang = "en"
	}
	if cfg.News.Country == "" {
		cfg.News.Country = "us"
	}
	if cfg.News.MaxArticles == 0 {
		cfg.News.MaxArticles = MaxGNewsArticles
	}
	if cfg.News.HoursBack == 0 {
		cfg.News.HoursBack = 24
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 15
	}
	if cfg.Ranking.TopK == 0 {
		cfg.Ranking.TopK = 3
	}
	if cfg.Ranking.RewriteConcurrency == 0 {
		cfg.Ranking.RewriteConcurrency = 4
	}
	// A missing bool decodes as false, so the metadata tells "not set" apart
	// from an explicit false.
	if !md.IsDefined("ranking", "rewrite_headlines") {
		cfg.Ranking.RewriteHeadlines = true
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "./data/headliner.db"
	}
	if !md.IsDefined("storage", "retention_days") {
		cfg.Storage.RetentionDays = 30
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. ANTHROPIC_API_KEY (when provider is "anthropic")
//  3. OPENAI_API_KEY (when provider is "openai")
func applyEnvOverrides(cfg *Config) {
	switch cfg.AI.Provider {
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	}

	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		cfg.News.APIKey = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "anthropic", "openai":
		// valid
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"anthropic\" or \"openai\"", cfg.AI.Provider)
	}

	switch cfg.Server.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid server.log_level %q: must be debug, info, warn or error", cfg.Server.LogLevel)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if cfg.News.MaxArticles > MaxGNewsArticles {
		slog.Warn("news.max_articles exceeds the GNews per-request cap, clamping",
			"configured", cfg.News.MaxArticles, "cap", MaxGNewsArticles)
		cfg.News.MaxArticles = MaxGNewsArticles
	}

	if cfg.Storage.RetentionDays < 0 {
		return fmt.Errorf("invalid storage.retention_days %d: must be >= 0", cfg.Storage.RetentionDays)
	}

	if cfg.Cache.TTLMinutes < 0 {
		return fmt.Errorf("invalid cache.ttl_minutes %d: must be >= 0", cfg.Cache.TTLMinutes)
	}

	if cfg.AI.APIKey == "" {
		slog.Warn("ai.api_key is empty: set it in the config file or via AI_API_KEY environment variable")
	}
	if cfg.News.APIKey == "" && len(cfg.News.Feeds) == 0 {
		slog.Warn("no news source configured: set news.api_key (or GNEWS_API_KEY) or list news.feeds")
	}

	return nil
}

// SlogLevel maps Server.LogLevel to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Server.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MissingKeys lists the credentials whose absence disables a collaborator,
// named by the environment variable that supplies them.
func (c *Config) MissingKeys() []string {
	missing := []string{}
	if c.News.APIKey == "" && len(c.News.Feeds) == 0 {
		missing = append(missing, "GNEWS_API_KEY")
	}
	if c.AI.APIKey == "" {
		missing = append(missing, "AI_API_KEY")
	}
	return missing
}
