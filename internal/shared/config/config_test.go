package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, 7*24*time.Hour, cfg.Redis.DraftTTL)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.WindowDuration)
	assert.Equal(t, 300, cfg.RateLimit.DesignerRequests)
	assert.Equal(t, 30, cfg.RateLimit.PreviewRequests)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REDIS_DRAFT_TTL", "48h")
	t.Setenv("RATE_LIMIT_PREVIEW_REQUESTS", "60")

	cfg := Load()
	assert.Equal(t, 48*time.Hour, cfg.Redis.DraftTTL)
	assert.Equal(t, 60, cfg.RateLimit.PreviewRequests)
}
