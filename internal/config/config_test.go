package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "blog:\n  blog_id: \"123\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "file://data", cfg.Store.DSN)
	assert.Equal(t, 24*time.Hour, cfg.Freshness.Window)
	assert.Equal(t, time.Minute, cfg.Cache.MemoTTL)
	assert.Equal(t, "api", cfg.Blog.Mode)
	assert.Equal(t, 3, cfg.Blog.Retry.MaxAttempts)
	assert.Equal(t, 60*time.Second, cfg.Video.MinDuration)
	assert.Equal(t, 16, cfg.Notify.QueueSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.BlogEnabled())
	assert.False(t, cfg.VideoEnabled())
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("MIRROR_VIDEO_TOKEN", "secret")

	cfg, err := Load(writeConfig(t, `
video:
  channel_id: chan-1
  token: ${MIRROR_VIDEO_TOKEN}
  min_duration: 90s
freshness:
  window: 6h
`))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Video.Token)
	assert.Equal(t, 90*time.Second, cfg.Video.MinDuration)
	assert.Equal(t, 6*time.Hour, cfg.Freshness.Window)
	assert.True(t, cfg.VideoEnabled())
}

func TestLoad_RejectsUnknownBlogMode(t *testing.T) {
	_, err := Load(writeConfig(t, "blog:\n  mode: scrape\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown blog mode")
}

func TestLoad_RejectsNonPositiveSweepInterval(t *testing.T) {
	_, err := Load(writeConfig(t, "blog:\n  blog_id: \"1\"\nnotify:\n  sweep_interval: -5m\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep interval")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
