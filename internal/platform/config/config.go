// Package config builds runtime configuration from the environment so
// main stays lean.
package config

import (
	"os"
	"strings"
	"time"
)

// Config is the full server configuration.
type Config struct {
	Addr string

	// PostgresDSN empty means in-memory stores (development mode).
	PostgresDSN string

	Redis RedisConfig

	// KafkaBrokers empty means the audit trail is store-only.
	KafkaBrokers []string
	KafkaTopic   string

	// S3Bucket empty means evidence is held in memory.
	S3Bucket string
	S3Region string
}

// RedisConfig captures the label-cache connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LabelTTL     time.Duration
}

// FromEnv reads APPEAL_* variables, applying development defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("APPEAL_ADDR", ":8080"),
		PostgresDSN: os.Getenv("APPEAL_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("APPEAL_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			LabelTTL:     12 * time.Hour,
		},
		KafkaTopic: envOr("APPEAL_KAFKA_TOPIC", "appeal.audit"),
		S3Bucket:   os.Getenv("APPEAL_S3_BUCKET"),
		S3Region:   envOr("APPEAL_S3_REGION", "ap-south-1"),
	}
	if brokers := os.Getenv("APPEAL_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
