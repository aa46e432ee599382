package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"BORDEREAU_ADDR", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "DATABASE_TX_TIMEOUT", "HTTP_REQUEST_TIMEOUT", "HTTP_WRITE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.Postgres.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.Postgres.TxTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Greater(t, cfg.HTTP.WriteTimeout, cfg.HTTP.RequestTimeout)
	assert.NotEmpty(t, cfg.Auth.JWTSigningKey)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("BORDEREAU_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("DATABASE_TX_TIMEOUT", "2s")
	t.Setenv("REDIS_POOL_SIZE", "42")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "not-a-duration")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Second, cfg.Postgres.TxTimeout)
	assert.Equal(t, 42, cfg.Redis.PoolSize)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout, "unparsable values keep the default")
}
