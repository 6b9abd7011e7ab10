package get_product

import (
	"context"

	"github.com/light-bringer/procat-browser/internal/app/catalog/contracts"
	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID int64
}

// Query handles the get product query use case.
type Query struct {
	provider contracts.DataProvider
}

// NewQuery creates a new get product query.
func NewQuery(provider contracts.DataProvider) *Query {
	return &Query{
		provider: provider,
	}
}

// Execute retrieves a product by ID. A missing product returns (nil, nil).
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if req == nil || req.ProductID <= 0 {
		return nil, domain.ErrInvalidProductID
	}
	return q.provider.FetchByID(ctx, req.ProductID)
}
