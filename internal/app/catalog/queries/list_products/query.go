package list_products

import (
	"context"

	"github.com/light-bringer/procat-browser/internal/app/catalog/contracts"
	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

const (
	// DefaultPageSize is used when the request leaves the limit unset.
	DefaultPageSize = 10
	// MaxPageSize caps a single page.
	MaxPageSize = 100
)

// Request contains the 1-based page and its size. Zero values take defaults.
type Request struct {
	Page     int
	PageSize int
}

// Query handles the list products query use case.
type Query struct {
	provider contracts.DataProvider
}

// NewQuery creates a new list products query.
func NewQuery(provider contracts.DataProvider) *Query {
	return &Query{
		provider: provider,
	}
}

// Execute normalises the paging request and fetches one page.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.PageEnvelope, error) {
	page, pageSize, err := Normalize(req)
	if err != nil {
		return nil, err
	}
	return q.provider.FetchPage(ctx, page, pageSize)
}

// Normalize applies defaults (page 1, size 10) and the size cap.
// Negative values are rejected.
func Normalize(req *Request) (page, pageSize int, err error) {
	if req == nil {
		req = &Request{}
	}
	if req.Page < 0 || req.PageSize < 0 {
		return 0, 0, domain.ErrInvalidPageRequest
	}

	page = req.Page
	if page == 0 {
		page = 1
	}
	pageSize = req.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize, nil
}
