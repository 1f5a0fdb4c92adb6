// Package config loads LOKAAH configuration from a YAML file with environment
// overrides. A .env file in the working directory is loaded first (via
// godotenv) so API keys never have to live in the YAML.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the tutoring service.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Redis   RedisConfig   `yaml:"redis"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig selects and parameterizes the language model backend. Provider
// "scripted" runs fully offline and is the default, so the chat works without
// any API key.
type ModelConfig struct {
	Provider    string  `yaml:"provider"` // scripted, anthropic or openai
	Name        string  `yaml:"name"`
	APIKey      string  `yaml:"api_key"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
}

// Duration wraps time.Duration so YAML values like "2h" or "45m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// RedisConfig enables the Redis session store. When disabled sessions live in
// process memory.
type RedisConfig struct {
	Enabled   bool     `yaml:"enabled"`
	URL       string   `yaml:"url"`
	KeyPrefix string   `yaml:"key_prefix"`
	TTL       Duration `yaml:"ttl"`
}

// EngineConfig tunes orchestration buffers and limits.
type EngineConfig struct {
	EventBufferSize int `yaml:"event_buffer_size"`
	MaxModelCalls   int `yaml:"max_model_calls"`
	MaxTransferHops int `yaml:"max_transfer_hops"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Provider:    "scripted",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Redis: RedisConfig{
			URL:       "redis://localhost:6379/0",
			KeyPrefix: "lokaah:session:",
			TTL:       Duration(24 * time.Hour),
		},
		Engine: EngineConfig{
			EventBufferSize: 100,
			MaxModelCalls:   10,
			MaxTransferHops: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration in three layers: defaults, then the YAML file at
// path (skipped when path is empty), then environment variables. A missing
// .env file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment variable names recognized by applyEnv.
const (
	EnvModelProvider = "LOKAAH_MODEL_PROVIDER"
	EnvModelName     = "LOKAAH_MODEL_NAME"
	EnvRedisEnabled  = "LOKAAH_REDIS_ENABLED"
	EnvRedisURL      = "LOKAAH_REDIS_URL"
	EnvRedisTTL      = "LOKAAH_REDIS_TTL"
	EnvLogLevel      = "LOKAAH_LOG_LEVEL"
	EnvLogFormat     = "LOKAAH_LOG_FORMAT"
)

// applyEnv overlays environment variables onto the loaded file values. The
// provider API key falls back to the vendor-standard variables so existing
// shell setups keep working.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvModelProvider); v != "" {
		c.Model.Provider = v
	}
	if v := os.Getenv(EnvModelName); v != "" {
		c.Model.Name = v
	}
	if c.Model.APIKey == "" {
		switch c.Model.Provider {
		case "anthropic":
			c.Model.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			c.Model.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if v := os.Getenv(EnvRedisEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Redis.Enabled = b
		}
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv(EnvRedisTTL); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Redis.TTL = Duration(d)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// Validate rejects configurations the runtime cannot act on.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "scripted", "anthropic", "openai":
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}

	if c.Engine.EventBufferSize <= 0 {
		return fmt.Errorf("engine.event_buffer_size must be positive, got %d", c.Engine.EventBufferSize)
	}
	if c.Engine.MaxTransferHops <= 0 {
		return fmt.Errorf("engine.max_transfer_hops must be positive, got %d", c.Engine.MaxTransferHops)
	}

	if c.Redis.Enabled && c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required when redis is enabled")
	}

	return nil
}
