// Package bootstrap wires the runtime dependencies shared by the server and the CLI tools.
package bootstrap

import (
	"fmt"

	"trendsmith/internal/cache"
	"trendsmith/internal/config"
	"trendsmith/internal/database"
	"trendsmith/internal/llm"
	"trendsmith/internal/publish"
	"trendsmith/internal/search"
	"trendsmith/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedFixtures loads the sample trends when the database has none.
	SeedFixtures bool
}

// InitRuntime connects to DB and Redis and optionally seeds sample data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// nil when unreachable; the cache and rate limits degrade accordingly
	r := cache.Connect(cfg.RedisURL)

	if opts.SeedFixtures {
		if _, err := seed.Fixtures(db, seed.Options{OnlyIfEmpty: true}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}

	return db, r, nil
}

// Clients are the external service clients built from configuration.
type Clients struct {
	Search    *search.Client
	LLM       *llm.AnthropicProvider
	Publisher *publish.XPublisher
}

// NewClients builds the Bluesky, Anthropic and X clients. Missing credentials
// are not an error here; the affected operations fail when invoked.
func NewClients(cfg *config.Config) Clients {
	return Clients{
		Search: search.NewClient(cfg.BlueskyAPIURL, cfg.SearchTimeout),
		LLM: llm.NewAnthropicProvider(llm.Options{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			BaseURL: cfg.AnthropicURL,
			Timeout: cfg.LLMTimeout,
		}),
		Publisher: publish.NewXPublisher(publish.Credentials{
			APIKey:            cfg.XAPIKey,
			APISecret:         cfg.XAPISecret,
			AccessToken:       cfg.XAccessToken,
			AccessTokenSecret: cfg.XAccessTokenSecret,
		}, cfg.XAPIURL, cfg.PublishTimeout),
	}
}
