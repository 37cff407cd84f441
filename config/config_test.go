package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "DawakSahl", cfg.App.Name)
	assert.Equal(t, "ar", cfg.App.DefaultLanguage)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxAvatarSize)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxPrescriptionSize)
	assert.Equal(t, 24, cfg.Business.OrderExpiryHours)
	assert.Equal(t, "YER", cfg.Business.Currency)
	assert.True(t, cfg.Business.TaxRate.IsZero())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.Outbox.PollInterval)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_EXPIRY", "15m")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("TAX_RATE", "0.05")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "0.05", cfg.Business.TaxRate.String())
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DB.URL)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
