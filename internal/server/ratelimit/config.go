package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled = "RESUMEACE_RATE_LIMIT_ENABLED"
	EnvAILimit = "RESUMEACE_AI_RATE_LIMIT"
	EnvExempt  = "RESUMEACE_RATE_LIMIT_EXEMPT"
)

// DefaultAILimit is the number of model calls a client may make per hour
const DefaultAILimit = 60

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	Rules           []Rule
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Exempt          map[string]bool // client ids never limited
}

func (c Config) idleTTL() time.Duration {
	if c.IdleTTL <= 0 {
		return time.Hour
	}
	return c.IdleTTL
}

// DefaultConfig limits model calls to aiLimit per hour and PDF exports to one
// every two seconds. Everything else is unlimited.
func DefaultConfig(aiLimit int) Config {
	if aiLimit <= 0 {
		aiLimit = DefaultAILimit
	}
	return Config{
		Enabled: true,
		Rules: []Rule{
			{Method: http.MethodPost, Pattern: "/documents/{mode}/ai/{tool}", Limit: aiLimit, Window: time.Hour, Burst: 5},
			{Method: http.MethodGet, Pattern: "/documents/{mode}/export/pdf", Limit: 30, Window: time.Minute, Burst: 3},
		},
		CleanupInterval: 5 * time.Minute,
		Exempt:          map[string]bool{},
	}
}

// LoadConfig builds DefaultConfig and applies the environment overrides
func LoadConfig() Config {
	cfg := DefaultConfig(getEnvInt(EnvAILimit, DefaultAILimit))
	cfg.Enabled = getEnvBool(EnvEnabled, true)
	cfg.Exempt = parseList(os.Getenv(EnvExempt))
	return cfg
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// parseList splits a comma-separated list of client ids
func parseList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
