// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/usestring/ghspec/pkg/apispec"
)

// Defaults for values that are also exposed as flags.
const (
	DefaultBatchWorkers       = 4
	DefaultQueryCacheMaxItems = 128
	DefaultSearchLimit        = 10
	DefaultInferMaxSamples    = 100
	DefaultMaxInputBytes      = 32 << 20
	DefaultResourceMaxBytes   = 1 << 20
)

// Config holds all configuration for the CLI and the MCP server.
type Config struct {
	SpecFile           string // GHSPEC_SPEC_FILE, default "api-specs.json"
	BatchWorkers       int    // GHSPEC_BATCH_WORKERS, default 4
	QueryCacheMaxItems int    // GHSPEC_QUERY_CACHE_MAX_ITEMS, default 128
	SearchLimit        int    // GHSPEC_SEARCH_LIMIT, default 10
	InferMaxSamples    int    // GHSPEC_INFER_MAX_SAMPLES, default 100
	MaxInputBytes      int    // GHSPEC_MAX_INPUT_BYTES, default 32MiB
	ResourceMaxBytes   int    // GHSPEC_RESOURCE_MAX_BYTES, default 1MiB

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		SpecFile:           getEnvString("GHSPEC_SPEC_FILE", apispec.DefaultFile),
		BatchWorkers:       getEnvPositiveInt("GHSPEC_BATCH_WORKERS", DefaultBatchWorkers),
		QueryCacheMaxItems: getEnvPositiveInt("GHSPEC_QUERY_CACHE_MAX_ITEMS", DefaultQueryCacheMaxItems),
		SearchLimit:        getEnvPositiveInt("GHSPEC_SEARCH_LIMIT", DefaultSearchLimit),
		InferMaxSamples:    getEnvPositiveInt("GHSPEC_INFER_MAX_SAMPLES", DefaultInferMaxSamples),
		MaxInputBytes:      getEnvPositiveInt("GHSPEC_MAX_INPUT_BYTES", DefaultMaxInputBytes),
		ResourceMaxBytes:   getEnvPositiveInt("GHSPEC_RESOURCE_MAX_BYTES", DefaultResourceMaxBytes),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvPositiveInt is getEnvInt that also rejects zero and negative values.
func getEnvPositiveInt(key string, defaultVal int) int {
	if i := getEnvInt(key, defaultVal); i > 0 {
		return i
	}
	return defaultVal
}
