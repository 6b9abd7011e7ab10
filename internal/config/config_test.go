package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, SourceMock, cfg.Source)
	assert.Equal(t, DefaultRESTBaseURL, cfg.REST.BaseURL)
	assert.Zero(t, cfg.REST.Timeout)
	assert.True(t, cfg.REST.InternalCall)
	assert.Equal(t, 50, cfg.Mock.Size)
	assert.Equal(t, 500*time.Millisecond, cfg.Mock.PageLatency)
	assert.Equal(t, 300*time.Millisecond, cfg.Mock.ItemLatency)
	assert.Equal(t, 10, cfg.Listing.PageSize)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "/cms", cfg.HTTP.BasePath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "rest")
	t.Setenv("CATALOG_REST_BASE_URL", "http://localhost:9000/cms")
	t.Setenv("CATALOG_REST_TIMEOUT", "5s")
	t.Setenv("CATALOG_MOCK_PAGE_LATENCY", "0s")
	t.Setenv("LISTING_PAGE_SIZE", "25")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, SourceREST, cfg.Source)
	assert.Equal(t, "http://localhost:9000/cms", cfg.REST.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.REST.Timeout)
	assert.Zero(t, cfg.Mock.PageLatency)
	assert.Equal(t, 25, cfg.Listing.PageSize)
	assert.True(t, cfg.Log.Development)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown source", env: map[string]string{"CATALOG_SOURCE": "ftp"}},
		{name: "negative mock size", env: map[string]string{"CATALOG_MOCK_SIZE": "-1"}},
		{name: "zero page size", env: map[string]string{"LISTING_PAGE_SIZE": "0"}},
		{name: "bad duration", env: map[string]string{"CATALOG_REST_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestValidate_UnknownSource(t *testing.T) {
	cfg := &Config{Source: "ftp", Listing: ListingConfig{PageSize: 10}}
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownSource)
}

func TestSpannerConfig_DatabaseParts(t *testing.T) {
	project, instance, database, err := SpannerConfig{
		Database: "projects/p1/instances/i1/databases/d1",
	}.DatabaseParts()
	require.NoError(t, err)
	assert.Equal(t, "p1", project)
	assert.Equal(t, "i1", instance)
	assert.Equal(t, "d1", database)

	for _, bad := range []string{
		"",
		"product-catalog-db",
		"projects/p1/instances/i1",
		"projects/p1/instances//databases/d1",
		"projects/p1/databases/d1/instances/i1",
	} {
		_, _, _, err := SpannerConfig{Database: bad}.DatabaseParts()
		assert.ErrorIs(t, err, ErrInvalidDatabasePath, bad)
	}
}

func TestParse_SpannerEmulatorHost(t *testing.T) {
	t.Setenv("SPANNER_EMULATOR_HOST", "localhost:9010")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "localhost:9010", cfg.Spanner.EmulatorHost)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LISTING_PAGE_SIZE=5\n"), 0o600))
	t.Chdir(dir)
	// registers a restore of the original value; .env only fills unset keys
	t.Setenv("LISTING_PAGE_SIZE", "")
	require.NoError(t, os.Unsetenv("LISTING_PAGE_SIZE"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Listing.PageSize)
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	assert.NoError(t, err)
}
