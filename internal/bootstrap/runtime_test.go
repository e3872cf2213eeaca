package bootstrap

import (
	"path/filepath"
	"testing"
	"time"

	"trendsmith/internal/config"
	"trendsmith/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClients_UsesConfig(t *testing.T) {
	t.Parallel()

	clients := NewClients(&config.Config{
		BlueskyAPIURL:  "https://bsky.example",
		SearchTimeout:  7 * time.Second,
		LLMTimeout:     30 * time.Second,
		XAPIURL:        "https://x.example",
		PublishTimeout: 5 * time.Second,
	})

	require.NotNil(t, clients.Search)
	assert.Equal(t, "https://bsky.example", clients.Search.BaseURL)
	assert.Equal(t, 7*time.Second, clients.Search.Timeout)
	assert.NotNil(t, clients.LLM)
	assert.NotNil(t, clients.Publisher)
}

func TestInitRuntime_SQLiteWithFixtures(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Env:          "test",
		DBDriver:     "sqlite",
		DBSQLitePath: filepath.Join(t.TempDir(), "runtime.db"),
		RedisURL:     "127.0.0.1:1",
	}

	db, rdb, err := InitRuntime(cfg, Options{SeedFixtures: true})
	require.NoError(t, err)
	assert.Nil(t, rdb)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	var trends int64
	require.NoError(t, db.Model(&models.Trend{}).Count(&trends).Error)
	assert.Positive(t, trends)

	// A second start leaves existing data alone.
	db2, _, err := InitRuntime(cfg, Options{SeedFixtures: true})
	require.NoError(t, err)
	if sqlDB, err := db2.DB(); err == nil {
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	var again int64
	require.NoError(t, db.Model(&models.Trend{}).Count(&again).Error)
	assert.Equal(t, trends, again)
}
