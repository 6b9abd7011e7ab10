// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Source selects the DataProvider implementation.
type Source string

const (
	SourceMock    Source = "mock"
	SourceREST    Source = "rest"
	SourceSpanner Source = "spanner"
)

// DefaultRESTBaseURL is the CMS endpoint used when none is configured.
const DefaultRESTBaseURL = "https://catalog-management-system-dev-ak3ogf6zea-uc.a.run.app/cms"

var (
	ErrUnknownSource       = errors.New("unknown catalog source")
	ErrInvalidDatabasePath = errors.New("spanner database must look like projects/P/instances/I/databases/D")
)

type Config struct {
	Source  Source        `env:"CATALOG_SOURCE" envDefault:"mock"`
	REST    RESTConfig    `envPrefix:"CATALOG_REST_"`
	Spanner SpannerConfig `envPrefix:"SPANNER_"`
	Mock    MockConfig    `envPrefix:"CATALOG_MOCK_"`
	Listing ListingConfig `envPrefix:"LISTING_"`
	HTTP    HTTPConfig    `envPrefix:"HTTP_"`
	Log     LogConfig     `envPrefix:"LOG_"`
}

type RESTConfig struct {
	BaseURL      string        `env:"BASE_URL" envDefault:"https://catalog-management-system-dev-ak3ogf6zea-uc.a.run.app/cms"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"0s"`
	InternalCall bool          `env:"INTERNAL_CALL" envDefault:"true"`
}

type SpannerConfig struct {
	Database     string `env:"DATABASE" envDefault:"projects/test-project/instances/dev-instance/databases/product-catalog-db"`
	EmulatorHost string `env:"EMULATOR_HOST"`
}

// DatabaseParts splits Database into its project, instance and database ids.
func (c SpannerConfig) DatabaseParts() (project, instance, database string, err error) {
	parts := strings.Split(c.Database, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" ||
		parts[1] == "" || parts[3] == "" || parts[5] == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidDatabasePath, c.Database)
	}
	return parts[1], parts[3], parts[5], nil
}

type MockConfig struct {
	Size        int           `env:"SIZE" envDefault:"50"`
	Seed        uint64        `env:"SEED" envDefault:"1"`
	PageLatency time.Duration `env:"PAGE_LATENCY" envDefault:"500ms"`
	ItemLatency time.Duration `env:"ITEM_LATENCY" envDefault:"300ms"`
}

type ListingConfig struct {
	PageSize int `env:"PAGE_SIZE" envDefault:"10"`
}

type HTTPConfig struct {
	Port     string `env:"PORT" envDefault:"8080"`
	BasePath string `env:"BASE_PATH" envDefault:"/cms"`
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints the struct tags cannot express.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceMock, SourceREST, SourceSpanner:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source)
	}
	if c.Source == SourceREST && c.REST.BaseURL == "" {
		return errors.New("CATALOG_REST_BASE_URL must be set for the rest source")
	}
	if c.Source == SourceSpanner && c.Spanner.Database == "" {
		return errors.New("SPANNER_DATABASE must be set for the spanner source")
	}
	if c.Mock.Size < 0 {
		return errors.New("CATALOG_MOCK_SIZE must not be negative")
	}
	if c.Listing.PageSize <= 0 {
		return errors.New("LISTING_PAGE_SIZE must be positive")
	}
	return nil
}
