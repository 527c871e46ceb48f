// internal/config/config.go
package config

import (
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string

	JWTSecret           string
	JWTExpiresInSeconds int

	AgentBaseURL  string
	AgentUsername string
	AgentPassword string
	AgentTimeout  time.Duration
}

func Load() *Config {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "postgres")
		dbName := getEnv("PSQL_DB_NAME", "adpulse")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		DatabaseURL:         databaseURL,
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret"),
		JWTExpiresInSeconds: getEnvInt("JWT_EXPIRES_IN_SECONDS", 86400),
		AgentBaseURL:        getEnv("AGENT_BASE_URL", "http://localhost:9090"),
		AgentUsername:       os.Getenv("AGENT_USERNAME"),
		AgentPassword:       os.Getenv("AGENT_PASSWORD"),
		AgentTimeout:        time.Duration(getEnvInt("AGENT_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
