package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("PERSISTENCE", "mongo")
	t.Setenv("REASONING_CACHE_TTL", "90m")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "@every 15m", AppConfig.SLADigestSchedule)
	assert.Equal(t, 40, AppConfig.RecentAuditLimit)
	assert.Equal(t, 90*time.Minute, AppConfig.ReasoningCacheTTL)
	assert.True(t, UsesMongo())
	assert.False(t, IsProduction())
}
