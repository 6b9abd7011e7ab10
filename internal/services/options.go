package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-browser/internal/app/catalog/contracts"
	"github.com/light-bringer/procat-browser/internal/app/catalog/detail"
	"github.com/light-bringer/procat-browser/internal/app/catalog/listing"
	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/memory"
	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/rest"
	"github.com/light-bringer/procat-browser/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/procat-browser/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/procat-browser/internal/app/catalog/repo"
	"github.com/light-bringer/procat-browser/internal/config"
	"github.com/light-bringer/procat-browser/internal/pkg/clock"
	"github.com/light-bringer/procat-browser/internal/pkg/logging"
	httptransport "github.com/light-bringer/procat-browser/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config         *config.Config
	Logger         *zap.Logger
	Clock          clock.Clock
	Provider       contracts.DataProvider
	SpannerClient  *spanner.Client
	ListProducts   *list_products.Query
	GetProduct     *get_product.Query
	CatalogHandler *httptransport.CatalogHandler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	logger = logging.OrNop(logger)

	opts := &ServiceOptions{
		Config: cfg,
		Logger: logger,
		Clock:  clock.NewRealClock(),
	}

	// 1. Pick the data source
	switch cfg.Source {
	case config.SourceMock:
		opts.Provider = memory.NewProvider(
			memory.MockCatalog(cfg.Mock.Size, cfg.Mock.Seed),
			memory.WithLatency(cfg.Mock.PageLatency, cfg.Mock.ItemLatency),
		)
	case config.SourceREST:
		opts.Provider = rest.NewProvider(rest.Config{
			BaseURL:      cfg.REST.BaseURL,
			Timeout:      cfg.REST.Timeout,
			InternalCall: cfg.REST.InternalCall,
		}, nil)
	case config.SourceSpanner:
		client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		opts.SpannerClient = client
		opts.Provider = repo.NewReadModel(client)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, cfg.Source)
	}
	logger.Info("Catalog source selected", zap.String("source", string(cfg.Source)))

	// 2. Query objects
	opts.ListProducts = list_products.NewQuery(opts.Provider)
	opts.GetProduct = get_product.NewQuery(opts.Provider)

	// 3. HTTP handler
	opts.CatalogHandler = httptransport.NewCatalogHandler(opts.ListProducts, opts.GetProduct, logger)

	return opts, nil
}

// NewListingController builds a listing controller over the configured source.
func (s *ServiceOptions) NewListingController(extra ...listing.Option) *listing.Controller {
	opts := []listing.Option{
		listing.WithLogger(s.Logger.Named("listing")),
		listing.WithClock(s.Clock),
		listing.WithPageSize(s.Config.Listing.PageSize),
	}
	return listing.NewController(s.Provider, append(opts, extra...)...)
}

// NewDetailController builds a detail controller over the configured source.
func (s *ServiceOptions) NewDetailController() *detail.Controller {
	return detail.NewController(s.Provider, s.Logger.Named("detail"), s.Clock)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
