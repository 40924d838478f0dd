package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	// DatabaseURL is the document-store connection string. An empty value is
	// not an error: the service starts in degraded mode and reports
	// "Not Connected" on the diagnostic endpoint.
	DatabaseURL string
	Redis       RedisConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// RedisConfig is optional; an empty Addr disables the cache, the check-in
// rate limiter, the idempotency store and the check-in feed.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "0.0.0.0"
	}

	serverPortStr := os.Getenv("PORT")
	if serverPortStr == "" {
		serverPortStr = "8000"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid PORT: %w", op, err)
	}

	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		redisDB, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Host: serverHost,
			Port: serverPort,
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
	}, nil
}
