package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "models/manifest.yaml", cfg.ModelManifest)
	assert.Equal(t, 0.01, cfg.ReconstructionThreshold)
	assert.Equal(t, "*", cfg.CORSAllowedOrigin)
	assert.False(t, cfg.AuditEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "prediction-audit", cfg.KafkaAuditTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("MODEL_MANIFEST", "/opt/models/manifest.yaml")
	t.Setenv("RECONSTRUCTION_THRESHOLD", "0.05")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://dashboard.example.com")
	t.Setenv("AUDIT_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_AUDIT_TOPIC", "audit-events")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/opt/models/manifest.yaml", cfg.ModelManifest)
	assert.Equal(t, 0.05, cfg.ReconstructionThreshold)
	assert.Equal(t, "https://dashboard.example.com", cfg.CORSAllowedOrigin)
	assert.True(t, cfg.AuditEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "audit-events", cfg.KafkaAuditTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidThreshold(t *testing.T) {
	t.Setenv("RECONSTRUCTION_THRESHOLD", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECONSTRUCTION_THRESHOLD")
}

func TestLoad_AuditRequiresBrokers(t *testing.T) {
	t.Setenv("AUDIT_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, parseBrokers("a:1, b:2"))
	assert.Empty(t, parseBrokers(""))
	assert.Empty(t, parseBrokers(" , "))
}
