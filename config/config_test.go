package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCloudinaryEnv(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setCloudinaryEnv(t)

	v, err := LoadConfig()
	require.NoError(t, err)

	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "uploads", cfg.App.UploadDir)
	assert.Equal(t, int64(50)<<20, cfg.MaxUploadBytes())
	assert.Equal(t, 15*time.Minute, cfg.App.StaleFileAge)
	assert.Equal(t, "demo", cfg.Cloudinary.CloudName)
	assert.Equal(t, "Arial", cfg.Cloudinary.FontFamily)
	assert.Equal(t, time.Minute, cfg.Cloudinary.UploadTimeout)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	setCloudinaryEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("APP_UPLOAD_DIR", "/tmp/staging")
	t.Setenv("CLOUDINARY_FOLDER", "overlays")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	v, err := LoadConfig()
	require.NoError(t, err)

	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "/tmp/staging", cfg.App.UploadDir)
	assert.Equal(t, "overlays", cfg.Cloudinary.Folder)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestParseConfigRequiresCredentials(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")
	t.Setenv("CLOUDINARY_API_KEY", "")
	t.Setenv("CLOUDINARY_API_SECRET", "")

	v, err := LoadConfig()
	require.NoError(t, err)

	_, err = ParseConfig(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLOUDINARY_CLOUD_NAME")
	assert.Contains(t, err.Error(), "CLOUDINARY_API_SECRET")
}

func TestValidateRejectsNonPositiveUploadLimit(t *testing.T) {
	cfg := &Config{
		App:        AppConfig{MaxUploadMB: 0},
		Cloudinary: CloudinaryConfig{CloudName: "demo", APIKey: "k", APISecret: "s"},
	}

	assert.Error(t, cfg.Validate())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("GIF_OVERLAY_TEST_VALUE", "set")

	assert.Equal(t, "set", GetEnv("GIF_OVERLAY_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("GIF_OVERLAY_TEST_MISSING", "fallback"))
}

func TestValidateRejectsNonPositiveJanitorInterval(t *testing.T) {
	cfg := &Config{
		App:        AppConfig{MaxUploadMB: 10},
		Cloudinary: CloudinaryConfig{CloudName: "demo", APIKey: "k", APISecret: "s"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "janitor_interval")
}
