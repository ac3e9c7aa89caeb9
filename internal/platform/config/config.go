package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration so main stays lean.
type Config struct {
	Addr        string
	PostgresURL string
	Redis       RedisConfig

	// AuditLeaseTTL bounds how long a per-tenant audit-run lease is held
	// before expiring on its own.
	AuditLeaseTTL time.Duration

	// UpcomingHorizonDays is the default look-ahead window for the upcoming
	// tasks report when the caller does not specify one.
	UpcomingHorizonDays int
}

// RedisConfig captures Redis connection tuning.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables with development
// defaults. Postgres and Redis are optional: when unset the process runs on
// in-memory stores with no advisory lease, which is the single-node dev mode.
func FromEnv() Config {
	return Config{
		Addr:                envString("COMPLYTRACK_ADDR", ":8080"),
		PostgresURL:         os.Getenv("COMPLYTRACK_POSTGRES_URL"),
		Redis:               redisFromEnv(),
		AuditLeaseTTL:       envDuration("COMPLYTRACK_AUDIT_LEASE_TTL", 2*time.Minute),
		UpcomingHorizonDays: envInt("COMPLYTRACK_UPCOMING_HORIZON_DAYS", 30),
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("COMPLYTRACK_REDIS_URL"),
		PoolSize:     envInt("COMPLYTRACK_REDIS_POOL_SIZE", 10),
		MinIdleConns: envInt("COMPLYTRACK_REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  envDuration("COMPLYTRACK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  envDuration("COMPLYTRACK_REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: envDuration("COMPLYTRACK_REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
