package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer      string        // Optional: expected iss of access tokens and iss of ID token claims (default: idclaims)
	Audience    []string      // Optional: accepted access token audiences, comma separated (default: any)
	JWKSURL     string        // JWKS endpoint of the issuer; takes precedence over JWKSFile
	JWKSFile    string        // JWKS file path, for offline or test setups
	JWKSRefresh time.Duration // Optional: JWKS refresh interval (default: 5m)

	DatabaseFile  string        // Optional: path to SQLite database file (default: ./userinfo.db)
	RedisAddr     string        // Optional: Redis address; the profile cache is disabled when empty
	RedisPassword string        // Optional: Redis password
	RedisDB       int           // Optional: Redis database number (default: 0)
	CacheTTL      time.Duration // Optional: profile cache TTL (default: 5m)
	IDTokenTTL    time.Duration // Optional: default ID token lifetime (default: 5m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:      getEnvOrDefault("USERINFO_ISSUER", "idclaims"),
		Audience:    getEnvListOrDefault("USERINFO_AUDIENCE", nil),
		JWKSURL:     os.Getenv("USERINFO_JWKS_URL"),
		JWKSFile:    os.Getenv("USERINFO_JWKS_FILE"),
		JWKSRefresh: getEnvDurationOrDefault("USERINFO_JWKS_REFRESH", 5*time.Minute),

		DatabaseFile:  getEnvOrDefault("USERINFO_DATABASE_FILE", "userinfo.db"),
		RedisAddr:     os.Getenv("USERINFO_REDIS_ADDR"),
		RedisPassword: os.Getenv("USERINFO_REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("USERINFO_REDIS_DB", 0),
		CacheTTL:      getEnvDurationOrDefault("USERINFO_CACHE_TTL", 5*time.Minute),
		IDTokenTTL:    getEnvDurationOrDefault("USERINFO_IDTOKEN_TTL", 5*time.Minute),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// JWKSSource is the URL or file the refresher reads keys from.
func (c Config) JWKSSource() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	return c.JWKSFile
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
