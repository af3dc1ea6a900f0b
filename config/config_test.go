package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.SeedData)
	assert.False(t, cfg.StrictTransitions)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Second, cfg.RateWindow)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "order-events", cfg.KafkaTopic)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STRICT_TRANSITIONS", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	_, err := FromViper(newViper())
	assert.Error(t, err)
}

func TestDefaultSecretFilledIn(t *testing.T) {
	cfg := &Config{}
	assert.True(t, cfg.EnsureJWTSecret())
	assert.NotEmpty(t, cfg.JWTSecret)

	cfg = &Config{JWTSecret: "real"}
	assert.False(t, cfg.EnsureJWTSecret())
}

func TestOpenInMemorySQLite(t *testing.T) {
	db, err := OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE t (id INTEGER)").Error)
	require.NoError(t, db.Exec("INSERT INTO t VALUES (1)").Error)

	var n int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM t").Scan(&n).Error)
	assert.Equal(t, int64(1), n)
}
