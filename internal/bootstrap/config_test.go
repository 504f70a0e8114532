package bootstrap

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := parseConfig(env.Options{Environment: map[string]string{
		"DATABASE_URL": "postgres://localhost/supplier_import",
	}})
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "10M", cfg.UploadLimit)
	require.Equal(t, 5*time.Minute, cfg.ImportLockTTL)
	require.Equal(t, "supplier-invitations", cfg.KafkaInvitationTopic)
	require.Equal(t, "US", cfg.PhoneDefaultRegion)
	require.Empty(t, cfg.RedisAddr)
	require.False(t, cfg.KafkaEnabled())
}

func TestParseConfig_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := parseConfig(env.Options{Environment: map[string]string{
		"DATABASE_URL":         "postgres://db/supplier_import",
		"LOG_LEVEL":            "DEBUG",
		"KAFKA_BROKERS":        "k1:9092,k2:9092",
		"IMPORT_LOCK_TTL":      "90s",
		"PHONE_DEFAULT_REGION": "gb",
		"REDIS_ADDR":           "redis:6379",
	}})
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.True(t, cfg.KafkaEnabled())
	require.Equal(t, 90*time.Second, cfg.ImportLockTTL)
	require.Equal(t, "GB", cfg.PhoneDefaultRegion)
	require.Equal(t, "redis:6379", cfg.RedisAddr)
}

func TestParseConfig_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]map[string]string{
		"missing database url": {},
		"unknown log level":    {"DATABASE_URL": "postgres://db/x", "LOG_LEVEL": "verbose"},
		"bad region":           {"DATABASE_URL": "postgres://db/x", "PHONE_DEFAULT_REGION": "USA"},
		"bad ttl":              {"DATABASE_URL": "postgres://db/x", "IMPORT_LOCK_TTL": "soon"},
	}
	for name, environ := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := parseConfig(env.Options{Environment: environ})
			require.Error(t, err)
		})
	}
}
