package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "PLATFORM_API_URL=http://platform.local\n" +
		"PORT=8088\n" +
		"CART_CLEAR_WINDOW=10m\n" +
		"REFRESH_DELAY=1500\n" +
		"CORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n" +
		"FLUENTBIT_ENABLED=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv не перезаписывает уже заданные переменные
	for _, key := range []string{"PLATFORM_API_URL", "PORT", "CART_CLEAR_WINDOW", "REFRESH_DELAY", "CORS_ALLOWED_ORIGINS", "FLUENTBIT_ENABLED", "FLUENTBIT_HOST"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "storefront", cfg.AppName)
	assert.Equal(t, "8088", cfg.Rest.Port)
	assert.Equal(t, "http://platform.local", cfg.Platform.BaseURL)
	assert.Equal(t, "http://localhost:8088", cfg.Platform.StoreBaseURL)
	assert.Equal(t, 10*time.Minute, cfg.Storefront.CartClearWindow)
	assert.Equal(t, 1500*time.Millisecond, cfg.Storefront.RefreshDelay)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.CORSAllowedOrigins)
	// хост не задан - fluent выключается
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestLoadConfig_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("PLATFORM_API_URL", "http://platform.env")
	t.Setenv("RABBITMQ_ENABLED", "false")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "http://platform.env", cfg.Platform.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.Storefront.CartClearWindow)
	assert.Equal(t, 2*time.Second, cfg.Storefront.RefreshDelay)
}

func TestLoadConfig_RequiredKeys(t *testing.T) {
	t.Setenv("PLATFORM_API_URL", "")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)

	t.Setenv("PLATFORM_API_URL", "http://platform.env")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("RABBITMQ_URL", "")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "bogus")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "-5s")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
}
