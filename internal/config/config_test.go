package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker   = "localhost:9092"
	testMapboxToken = "pk.test-token"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 800*time.Millisecond, cfg.StepDelayMin)
	assert.Equal(t, 2*time.Second, cfg.StepDelayMax)
	assert.Equal(t, 80*time.Millisecond, cfg.ProgressInterval)
	assert.Zero(t, cfg.RandomSeed)
	assert.Equal(t, 400, cfg.ChartWidth)
	assert.Equal(t, 400, cfg.ChartHeight)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "wildfire-analysis-results", cfg.KafkaResultsTopic)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("STEP_DELAY_MIN", "10ms")
	t.Setenv("STEP_DELAY_MAX", "20ms")
	t.Setenv("PROGRESS_INTERVAL", "1ms")
	t.Setenv("RANDOM_SEED", "1234")
	t.Setenv("CHART_WIDTH", "640")
	t.Setenv("CHART_HEIGHT", "480")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_RESULTS_TOPIC", "custom-results")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Millisecond, cfg.StepDelayMin)
	assert.Equal(t, 20*time.Millisecond, cfg.StepDelayMax)
	assert.Equal(t, time.Millisecond, cfg.ProgressInterval)
	assert.Equal(t, uint64(1234), cfg.RandomSeed)
	assert.Equal(t, 640, cfg.ChartWidth)
	assert.Equal(t, 480, cfg.ChartHeight)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-results", cfg.KafkaResultsTopic)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"STEP_DELAY_MIN", "STEP_DELAY_MAX", "PROGRESS_INTERVAL"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "soon")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_NegativeStepDelay(t *testing.T) {
	t.Setenv("STEP_DELAY_MIN", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STEP_DELAY_MIN")
}

func TestLoad_StepDelayWindowInverted(t *testing.T) {
	t.Setenv("STEP_DELAY_MIN", "3s")
	t.Setenv("STEP_DELAY_MAX", "1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STEP_DELAY_MAX")
}

func TestLoad_InvalidSeed(t *testing.T) {
	t.Setenv("RANDOM_SEED", "-3")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RANDOM_SEED")
}

func TestLoad_InvalidChartSize(t *testing.T) {
	t.Setenv("CHART_WIDTH", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHART_WIDTH")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxTokenImpliesEnabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MapboxEnabled)
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}
