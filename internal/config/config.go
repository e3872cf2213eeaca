// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DBDriver     string `mapstructure:"DB_DRIVER"`
	DBHost       string `mapstructure:"DB_HOST"`
	DBPort       string `mapstructure:"DB_PORT"`
	DBUser       string `mapstructure:"DB_USER"`
	DBPassword   string `mapstructure:"DB_PASSWORD"`
	DBName       string `mapstructure:"DB_NAME"`
	DBSSLMode    string `mapstructure:"DB_SSLMODE"`
	DBSQLitePath string `mapstructure:"DB_SQLITE_PATH"`
	DBSchemaMode string `mapstructure:"DB_SCHEMA_MODE"`
	RedisURL     string `mapstructure:"REDIS_URL"`

	AnthropicAPIKey string        `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicModel  string        `mapstructure:"ANTHROPIC_MODEL"`
	AnthropicURL    string        `mapstructure:"ANTHROPIC_API_URL"`
	LLMTimeout      time.Duration `mapstructure:"LLM_TIMEOUT"`

	BlueskyAPIURL string        `mapstructure:"BSKY_API_URL"`
	SearchTimeout time.Duration `mapstructure:"SEARCH_TIMEOUT"`

	XAPIURL            string        `mapstructure:"X_API_URL"`
	XAPIKey            string        `mapstructure:"X_API_KEY"`
	XAPISecret         string        `mapstructure:"X_API_SECRET"`
	XAccessToken       string        `mapstructure:"X_ACCESS_TOKEN"`
	XAccessTokenSecret string        `mapstructure:"X_ACCESS_TOKEN_SECRET"`
	PublishTimeout     time.Duration `mapstructure:"PUBLISH_TIMEOUT"`

	OperatorTokenSecret string `mapstructure:"OPERATOR_TOKEN_SECRET"`
	FeatureFlags        string `mapstructure:"FEATURE_FLAGS"`

	TracingEnabled     bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter    string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint       string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampleRatio float64 `mapstructure:"TRACING_SAMPLE_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional; env vars and defaults cover a bare checkout.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")

	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "trendsmith")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_SQLITE_PATH", "trendsmith.db")
	viper.SetDefault("DB_SCHEMA_MODE", "")
	viper.SetDefault("REDIS_URL", "localhost:6379")

	viper.SetDefault("ANTHROPIC_API_KEY", "")
	viper.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929")
	viper.SetDefault("ANTHROPIC_API_URL", "")
	viper.SetDefault("LLM_TIMEOUT", "60s")

	viper.SetDefault("BSKY_API_URL", "https://public.api.bsky.app")
	viper.SetDefault("SEARCH_TIMEOUT", "20s")

	viper.SetDefault("X_API_URL", "https://api.twitter.com")
	viper.SetDefault("X_API_KEY", "")
	viper.SetDefault("X_API_SECRET", "")
	viper.SetDefault("X_ACCESS_TOKEN", "")
	viper.SetDefault("X_ACCESS_TOKEN_SECRET", "")
	viper.SetDefault("PUBLISH_TIMEOUT", "15s")

	viper.SetDefault("OPERATOR_TOKEN_SECRET", "")
	viper.SetDefault("FEATURE_FLAGS", "")

	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLE_RATIO", 1.0)
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.DBSchemaMode = strings.ToLower(strings.TrimSpace(c.DBSchemaMode))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
}

// IsProduction reports whether the config targets a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.DBDriver == "sqlite" && c.DBSQLitePath == "" {
		return errors.New("DB_SQLITE_PATH is required when DB_DRIVER is sqlite")
	}

	for name, d := range map[string]time.Duration{
		"LLM_TIMEOUT":     c.LLMTimeout,
		"SEARCH_TIMEOUT":  c.SearchTimeout,
		"PUBLISH_TIMEOUT": c.PublishTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	if c.TracingSampleRatio < 0 || c.TracingSampleRatio > 1 {
		return errors.New("TRACING_SAMPLE_RATIO must be between 0 and 1")
	}
	if c.TracingEnabled && c.TracingExporter != "stdout" && c.TracingExporter != "otlp" {
		return fmt.Errorf("TRACING_EXPORTER must be stdout or otlp, got %q", c.TracingExporter)
	}

	if c.IsProduction() {
		if c.DBDriver == "sqlite" {
			return errors.New("DB_DRIVER sqlite is not supported in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must enable SSL in production")
		}
		if c.OperatorTokenSecret != "" && len(c.OperatorTokenSecret) < 32 {
			return errors.New("OPERATOR_TOKEN_SECRET must be at least 32 characters in production")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	if c.AnthropicAPIKey == "" {
		log.Println("WARNING: ANTHROPIC_API_KEY is not set; style analysis and composition will fail.")
	}
	if c.XAPIKey == "" || c.XAPISecret == "" || c.XAccessToken == "" || c.XAccessTokenSecret == "" {
		log.Println("WARNING: X API credentials are incomplete; publishing will fail.")
	}

	return nil
}
