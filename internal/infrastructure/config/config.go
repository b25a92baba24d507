package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	SQLite   SQLiteConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=bookstore.db"`
}

type RedisConfig struct {
	// Addr left empty disables Redis-backed features (login throttling and
	// the Redis readiness check).
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type ThrottleConfig struct {
	LoginLimit  int           `env:"LOGIN_THROTTLE_LIMIT,  default=10"`
	LoginWindow time.Duration `env:"LOGIN_THROTTLE_WINDOW, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
