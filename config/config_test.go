package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "marketplace.orders", cfg.Kafka.OrderTopic)
	assert.Empty(t, cfg.Kafka.ModerationSigningKey)
	assert.Empty(t, cfg.Access.AdminPrincipals)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")
	t.Setenv("ADMIN_PRINCIPALS", "alice, bob,,")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_MODERATION_SIGNING_KEY", "s3cret")

	cfg := LoadEnv()

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Access.AdminPrincipals)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "s3cret", cfg.Kafka.ModerationSigningKey)
}

func TestLoadEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("LOGGER_DISABLE_CALLER", "maybe")

	cfg := LoadEnv()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.False(t, cfg.Logger.DisableCaller)
}
