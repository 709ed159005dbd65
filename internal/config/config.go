package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	YouTube   YouTubeConfig
	Anthropic AnthropicConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

// RedisConfig drives both the cache and the transcript storage layers.
// An empty URL disables both; each layer reports enabled=false independently.
type RedisConfig struct {
	URL             string        `envconfig:"REDIS_URL"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	DefaultLanguage string        `envconfig:"DEFAULT_LANGUAGE" default:"en"`
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

type YouTubeConfig struct {
	OEmbedBaseURL    string        `envconfig:"YOUTUBE_OEMBED_BASE_URL" default:"https://www.youtube.com/oembed"`
	TimedTextBaseURL string        `envconfig:"YOUTUBE_TIMEDTEXT_BASE_URL" default:"https://www.youtube.com/api/timedtext"`
	RequestTimeout   time.Duration `envconfig:"YOUTUBE_REQUEST_TIMEOUT" default:"30s"`
}

type AnthropicConfig struct {
	APIKey    string        `envconfig:"ANTHROPIC_API_KEY"`
	BaseURL   string        `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com"`
	Model     string        `envconfig:"ANTHROPIC_MODEL" default:"claude-3-5-sonnet-20241022"`
	FastModel string        `envconfig:"ANTHROPIC_FAST_MODEL" default:"claude-3-5-haiku-20241022"`
	MaxTokens int           `envconfig:"ANTHROPIC_MAX_TOKENS" default:"8000"`
	Timeout   time.Duration `envconfig:"ANTHROPIC_TIMEOUT" default:"120s"`
}

func (c AnthropicConfig) Configured() bool {
	return c.APIKey != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
