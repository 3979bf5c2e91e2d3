package config

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, time.Hour, cfg.EphemeralInviteTTL)
	assert.Equal(t, 5, cfg.SeatLimitStaff)
	assert.Equal(t, 20, cfg.SeatLimitAthlete)
	assert.Equal(t, 3, cfg.TxMaxRetries)
	assert.Equal(t, 5, cfg.ClaimMirrorMaxTries)
	assert.Equal(t, 15*time.Minute, cfg.SweepInterval)
	assert.Equal(t, BackendMemory, cfg.RepairQueue)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("REPAIR_QUEUE", "redis")
	t.Setenv("SEAT_LIMIT_STAFF", "7")
	t.Setenv("EPHEMERAL_INVITE_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, QueueRedis, cfg.RepairQueue)
	assert.Equal(t, 7, cfg.SeatLimitStaff)
	assert.Equal(t, 30*time.Minute, cfg.EphemeralInviteTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret in production", map[string]string{"JWT_SECRET": ""}},
		{"missing webhook secret in production", map[string]string{"JWT_SECRET": "x", "PAYMENT_WEBHOOK_SECRET": ""}},
		{"unknown backend", map[string]string{"JWT_SECRET": "x", "STORE_BACKEND": "mongo"}},
		{"unknown queue", map[string]string{"JWT_SECRET": "x", "REPAIR_QUEUE": "kafka"}},
		{"zero seat limit", map[string]string{"JWT_SECRET": "x", "SEAT_LIMIT_ATHLETE": "0"}},
		{"bad duration", map[string]string{"JWT_SECRET": "x", "SWEEP_INTERVAL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GO_ENV", "production")
			t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DevSecretFallback(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.PaymentWebhookSecret)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept", "seat", 3)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])

	text := newLogger(&buf, "development", "")
	assert.True(t, text.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, text.Enabled(context.Background(), slog.LevelDebug))
}
