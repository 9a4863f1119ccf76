package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "api-specs.json", cfg.SpecFile)
	assert.Equal(t, DefaultBatchWorkers, cfg.BatchWorkers)
	assert.Equal(t, DefaultQueryCacheMaxItems, cfg.QueryCacheMaxItems)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GHSPEC_SPEC_FILE", "/etc/ghspec/specs.yaml")
	t.Setenv("GHSPEC_BATCH_WORKERS", "9")
	t.Setenv("GHSPEC_SEARCH_LIMIT", "-3")
	t.Setenv("GHSPEC_INFER_MAX_SAMPLES", "many")
	t.Setenv("LOG_COMPRESS", "off")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "/etc/ghspec/specs.yaml", cfg.SpecFile)
	assert.Equal(t, 9, cfg.BatchWorkers)
	assert.Equal(t, DefaultSearchLimit, cfg.SearchLimit, "non-positive falls back to default")
	assert.Equal(t, DefaultInferMaxSamples, cfg.InferMaxSamples, "unparsable falls back to default")
	assert.False(t, cfg.LogCompress)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestGetEnvBool_Unrecognized(t *testing.T) {
	t.Setenv("GHSPEC_TEST_BOOL", "maybe")
	assert.True(t, getEnvBool("GHSPEC_TEST_BOOL", true))
	assert.False(t, getEnvBool("GHSPEC_TEST_BOOL", false))
}
