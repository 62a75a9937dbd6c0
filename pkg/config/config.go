package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/user/mina-service/pkg/logger"
)

// Upstream failure policies.
const (
	PolicyFail            = "fail"
	PolicyFallbackDataset = "fallback_dataset"
)

// Provider IDs known to the websearch factory.
const (
	ProviderYou     = "you"
	ProviderSerpAPI = "serpapi"
)

// Config holds the application configuration.
type Config struct {
	Server ServerConfig  `mapstructure:"server"`
	Log    logger.Config `mapstructure:"log"`
	Search SearchConfig  `mapstructure:"search"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// SearchConfig controls the upstream fan-out and the extraction pipeline.
type SearchConfig struct {
	Providers []ProviderConfig `mapstructure:"providers"`

	// Shortcuts: a non-empty key enables the provider with default settings
	// unless it is already listed in Providers.
	YouAPIKey     string `mapstructure:"you_api_key"`
	SerpAPIAPIKey string `mapstructure:"serpapi_api_key"`

	HitThreshold          int    `mapstructure:"hit_threshold"`
	ResultsPerQuery       int    `mapstructure:"results_per_query"`
	PageSize              int    `mapstructure:"page_size"`
	OnUpstreamUnavailable string `mapstructure:"on_upstream_unavailable"`
}

// ProviderConfig configures one web search provider.
type ProviderConfig struct {
	ID      string        `mapstructure:"id"`
	APIHost string        `mapstructure:"api_host"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from an optional YAML file and MINA_* environment
// variables. An empty path searches ./config.yaml and ./configs/config.yaml and
// tolerates their absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("search.you_api_key", "MINA_SEARCH_YOU_API_KEY", "YOU_API_KEY")
	_ = v.BindEnv("search.serpapi_api_key", "MINA_SEARCH_SERPAPI_API_KEY", "SERPAPI_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Search.applyShortcuts()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 45*time.Second)

	def := logger.DefaultConfig()
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.format", def.Format)
	v.SetDefault("log.output", def.Output)
	v.SetDefault("log.file.filename", def.File.Filename)
	v.SetDefault("log.file.max_size", def.File.MaxSize)
	v.SetDefault("log.file.max_age", def.File.MaxAge)
	v.SetDefault("log.file.max_backups", def.File.MaxBackups)
	v.SetDefault("log.file.compress", def.File.Compress)

	v.SetDefault("search.hit_threshold", 30)
	v.SetDefault("search.results_per_query", 10)
	v.SetDefault("search.page_size", 9)
	v.SetDefault("search.on_upstream_unavailable", PolicyFail)
}

func (s *SearchConfig) applyShortcuts() {
	have := make(map[string]bool, len(s.Providers))
	for _, p := range s.Providers {
		have[p.ID] = true
	}
	if s.YouAPIKey != "" && !have[ProviderYou] {
		s.Providers = append(s.Providers, ProviderConfig{ID: ProviderYou, APIKey: s.YouAPIKey})
	}
	if s.SerpAPIAPIKey != "" && !have[ProviderSerpAPI] {
		s.Providers = append(s.Providers, ProviderConfig{ID: ProviderSerpAPI, APIKey: s.SerpAPIAPIKey})
	}
}

// Validate checks the values that have no safe fallback.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Search.HitThreshold <= 0 {
		return errors.New("search.hit_threshold must be greater than 0")
	}
	if c.Search.ResultsPerQuery <= 0 {
		return errors.New("search.results_per_query must be greater than 0")
	}
	if c.Search.PageSize <= 0 || c.Search.PageSize > 50 {
		return errors.New("search.page_size must be between 1 and 50")
	}
	switch c.Search.OnUpstreamUnavailable {
	case PolicyFail, PolicyFallbackDataset:
	default:
		return fmt.Errorf("search.on_upstream_unavailable must be %q or %q", PolicyFail, PolicyFallbackDataset)
	}
	return nil
}
