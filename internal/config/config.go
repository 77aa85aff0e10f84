package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	APIBaseURL      string
	HTTPAddr        string
	StateFile       string
	RedisAddr       string
	SeedData        bool
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		APIBaseURL:      envOrDefault("API_BASE_URL", "http://localhost:8000/api"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8000"),
		StateFile:       envOrDefault("STATE_FILE", defaultStateFile()),
		RedisAddr:       envOrDefault("REDIS_ADDR", ""),
		SeedData:        envBool("SEED_DATA", true),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shophub-state.json"
	}
	return filepath.Join(home, ".shophub", "state.json")
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err == nil {
			return parsed
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
