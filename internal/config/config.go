// internal/config/config.go
//
// Runtime settings read from the environment. main loads a .env file with
// godotenv before calling Load, so local development needs no exports.
//
// Environment variables:
//   PORT                   listen port (default 8080)
//   CHIRPY_DB_PATH         store document path (default database.json)
//   JWT_SECRET             token signing secret; login fails with 500 if unset
//   POLKA_KEY              webhook API key; webhook always 401s if unset
//   CHIRPY_TOKEN_TTL       default token lifetime (default 24h)
//   CHIRPY_PROFANITY_FILE  optional denylist override
//   CLIENT_ORIGIN          CORS origin (default *)
//   LOG_LEVEL              zerolog level (default info)
//   CHIRPY_LOG_FORMAT      "console" for human-readable logs, else JSON

package config

import (
	"os"
	"strconv"
	"time"
)

// MemoryDBPath selects the in-memory store instead of a file.
const MemoryDBPath = ":memory:"

type Config struct {
	Addr           string
	DBPath         string
	JWTSecret      string
	PolkaKey       string
	TokenTTL       time.Duration
	ProfanityFile  string
	ClientOrigin   string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:           ":" + envString("PORT", "8080"),
		DBPath:         envString("CHIRPY_DB_PATH", "database.json"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		PolkaKey:       os.Getenv("POLKA_KEY"),
		TokenTTL:       envDuration("CHIRPY_TOKEN_TTL", 24*time.Hour),
		ProfanityFile:  os.Getenv("CHIRPY_PROFANITY_FILE"),
		ClientOrigin:   envString("CLIENT_ORIGIN", "*"),
		LogLevel:       envString("LOG_LEVEL", "info"),
		LogFormat:      os.Getenv("CHIRPY_LOG_FORMAT"),
		RequestTimeout: time.Duration(envInt("CHIRPY_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
