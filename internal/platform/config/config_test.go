package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"CASENOTES_ADDR", "DATABASE_URL", "KAFKA_BROKERS", "LEGACY_TIMEOUT", "LEGACY_MAX_PAGE_SIZE"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Database.URL)
	assert.Nil(t, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Second, cfg.Legacy.Timeout)
	assert.Equal(t, 10000, cfg.Legacy.MaxPageSize)
	assert.Equal(t, 10*time.Minute, cfg.TypeCacheTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CASENOTES_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("LEGACY_TIMEOUT", "2500ms")
	t.Setenv("TYPE_CACHE_TTL", "60")
	t.Setenv("LEGACY_MAX_PAGE_SIZE", "500")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2500*time.Millisecond, cfg.Legacy.Timeout)
	assert.Equal(t, time.Minute, cfg.TypeCacheTTL)
	assert.Equal(t, 500, cfg.Legacy.MaxPageSize)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEGACY_TIMEOUT", "soon")
	t.Setenv("LEGACY_MAX_PAGE_SIZE", "0")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEGACY_TIMEOUT")
	assert.Contains(t, err.Error(), "LEGACY_MAX_PAGE_SIZE")
}
