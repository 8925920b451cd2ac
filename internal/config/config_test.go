package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "http://127.0.0.1:8000/", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 120*time.Minute, cfg.TableBlock)
	assert.Equal(t, 360*time.Minute, cfg.SalonBlock)
	assert.Equal(t, 6, cfg.CodeMinLength)
	assert.Equal(t, "0.16", cfg.RoomTaxRate.String())
}

func TestLoad_BaseURLNormalized(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://hotel.example.com/api/")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://hotel.example.com/", cfg.APIBaseURL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("TABLE_BLOCK", "two hours")

	_, err := Load()

	assert.ErrorContains(t, err, "TABLE_BLOCK")
}

func TestLoad_ProdRequiresDurableStorage(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "https://hotel.example.com/")
	t.Setenv("STORAGE_URL", "memory")

	_, err := Load()

	assert.ErrorContains(t, err, "STORAGE_URL")
}

func TestLoad_ProdRequiresHTTPS(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("API_BASE_URL", "http://hotel.example.com/")

	_, err := Load()

	assert.ErrorContains(t, err, "https")
}

func TestLoad_NamespaceRejectsPatternCharacters(t *testing.T) {
	for _, ns := range []string{"*", "tenant?", "a[b]", "a:b", "with space"} {
		t.Setenv("STORAGE_NAMESPACE", ns)

		_, err := Load()

		assert.ErrorContains(t, err, "STORAGE_NAMESPACE", "namespace %q", ns)
	}

	t.Setenv("STORAGE_NAMESPACE", "tenant-1.prod_a")
	_, err := Load()
	assert.NoError(t, err)
}
