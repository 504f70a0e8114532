package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	DatabaseURL     string        `env:"DATABASE_URL,required" validate:"required"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	UploadLimit     string        `env:"UPLOAD_LIMIT" envDefault:"10M" validate:"required"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	ImportLockTTL time.Duration `env:"IMPORT_LOCK_TTL" envDefault:"5m" validate:"gte=1s"`

	KafkaBrokers         []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaInvitationTopic string   `env:"KAFKA_INVITATION_TOPIC" envDefault:"supplier-invitations" validate:"required"`

	PhoneDefaultRegion string `env:"PHONE_DEFAULT_REGION" envDefault:"US" validate:"len=2,alpha"`
}

// LoadConfig reads the process environment. A .env file, if any, must be
// loaded before calling it.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.PhoneDefaultRegion = strings.ToUpper(cfg.PhoneDefaultRegion)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// KafkaEnabled reports whether invitations go to Kafka rather than the log.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
