package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("GEMINI_API_KEY", "model-key")
	t.Setenv("GHOST_ADMIN_API_KEY", "abc123:646561646265656600")
	t.Setenv("GHOST_URL", "https://blog.test/")
	t.Setenv("COWSAY_NEWS_CONFIG", "")
	t.Setenv("GHOST_AUTHOR_ID", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "us", cfg.News.Country)
	assert.Equal(t, 20, cfg.News.PageSize)
	assert.Equal(t, 3, cfg.News.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.News.RetryDelay)
	assert.Equal(t, time.Second, cfg.Model.PaceDelay)
	assert.Equal(t, 8, cfg.Classify.CategoryCap)
	assert.Equal(t, 8, cfg.Classify.OtherCap)
	assert.Equal(t, " - ", cfg.Filter.SourceSeparator)
	assert.Contains(t, cfg.Filter.BlockedKeywords, "horoscope")
	assert.Contains(t, cfg.Filter.BlockedDomains, "facebook.com")
	assert.Equal(t, "headlines", cfg.Summary.TitleStrategy)
}

func TestLoadAppliesEnvCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GHOST_AUTHOR_ID", "author-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "news-key", cfg.News.APIKey)
	assert.Equal(t, "model-key", cfg.Model.APIKey)
	assert.Equal(t, "https://blog.test", cfg.Ghost.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "abc123", cfg.Ghost.KeyID)
	assert.Equal(t, []byte("deadbeef\x00"), cfg.Ghost.KeySecret)
	assert.Equal(t, "author-1", cfg.Ghost.AuthorID)
}

func TestLoadMissingRequiredEnvFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NEWS_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEWS_API_KEY")
}

func TestLoadMalformedAdminKeyFails(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("GHOST_ADMIN_API_KEY", "no-separator")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id:secret")

	t.Setenv("GHOST_ADMIN_API_KEY", "id:not-hex!")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hex")
}

func TestLoadMergesYAMLFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
news:
  country: gb
  pageSize: 50
classify:
  categoryCap: 5
  otherCap: 3
summary:
  titleStrategy: summary
filter:
  blockedKeywords:
    - horoscope
    - lottery
`), 0o600))
	t.Setenv("COWSAY_NEWS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gb", cfg.News.Country)
	assert.Equal(t, 50, cfg.News.PageSize)
	assert.Equal(t, 5, cfg.Classify.CategoryCap)
	assert.Equal(t, 3, cfg.Classify.OtherCap)
	assert.Equal(t, "summary", cfg.Summary.TitleStrategy)
	assert.Equal(t, []string{"horoscope", "lottery"}, cfg.Filter.BlockedKeywords)
	// Unspecified values keep their defaults.
	assert.Equal(t, 3, cfg.News.MaxAttempts)
}

func TestSplitAdminKey(t *testing.T) {
	t.Parallel()

	id, secret, err := splitAdminKey("abc:00ff")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, []byte{0x00, 0xff}, secret)

	_, _, err = splitAdminKey(":00ff")
	require.Error(t, err)

	_, _, err = splitAdminKey("abc:")
	require.Error(t, err)
}
