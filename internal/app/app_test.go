package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hoanghai1803/headliner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AI:      config.AIConfig{Provider: "anthropic", Model: "claude-haiku-4-5"},
		News:    config.NewsConfig{Query: "ai", Lang: "en", Country: "us", MaxArticles: 10, HoursBack: 24},
		Ranking: config.RankingConfig{TopK: 3, RewriteHeadlines: true, RewriteConcurrency: 2},
		Storage: config.StorageConfig{Path: filepath.Join(t.TempDir(), "data", "headliner.db"), RetentionDays: 30},
		Cache:   config.CacheConfig{TTLMinutes: 15},
	}
}

func TestNew_NothingConfigured(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	st := a.Service.Status(context.Background())
	assert.False(t, st.NewsConfigured)
	assert.False(t, st.AIConfigured)
	assert.Equal(t, []string{"GNEWS_API_KEY", "AI_API_KEY"}, st.MissingKeys)
	assert.FileExists(t, cfg.Storage.Path)
}

func TestNew_FullyConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.AI.APIKey = "sk-test"
	cfg.News.APIKey = "gnews-key"
	cfg.News.Feeds = []string{"https://feeds.example/rss"}
	cfg.Cache.RedisURL = "redis://" + mr.Addr()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	st := a.Service.Status(context.Background())
	assert.True(t, st.Ready)
	assert.Equal(t, "gnews+rss", st.Source)
	assert.Empty(t, st.MissingKeys)

	require.NoError(t, a.Close())
}

func TestNew_UnreachableRedisDisablesCache(t *testing.T) {
	cfg := testConfig(t)
	cfg.News.APIKey = "gnews-key"
	cfg.Cache.RedisURL = "127.0.0.1:1"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	assert.Equal(t, "gnews", a.Service.Status(context.Background()).Source)
}

func TestNewSource(t *testing.T) {
	cfg := testConfig(t)
	assert.Nil(t, NewSource(cfg, nil))

	cfg.News.Feeds = []string{"https://feeds.example/rss"}
	src := NewSource(cfg, nil)
	require.NotNil(t, src)
	assert.Equal(t, "rss", src.Name())
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.AIConfig{Provider: "anthropic"})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewProvider(config.AIConfig{Provider: "openai", APIKey: "sk", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = NewProvider(config.AIConfig{Provider: "mystery", APIKey: "sk"})
	assert.Error(t, err)
}
