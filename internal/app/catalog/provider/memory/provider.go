// Package memory serves products from an injected in-memory arena.
package memory

import (
	"context"
	"slices"
	"time"

	"github.com/light-bringer/procat-browser/internal/app/catalog/contracts"
	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

// Provider implements contracts.DataProvider over a fixed product slice.
type Provider struct {
	products    []domain.Product
	pageLatency time.Duration
	itemLatency time.Duration
}

var _ contracts.DataProvider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithLatency simulates network delay for page and single-item fetches.
func WithLatency(page, item time.Duration) Option {
	return func(p *Provider) {
		p.pageLatency = page
		p.itemLatency = item
	}
}

// NewProvider creates a provider owning a copy of products, in the given order.
func NewProvider(products []domain.Product, opts ...Option) *Provider {
	p := &Provider{products: slices.Clone(products)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchPage returns the 1-based page slice and the arena size.
func (p *Provider) FetchPage(ctx context.Context, pageNumber, pageSize int) (*domain.PageEnvelope, error) {
	if err := contracts.ValidatePageRequest(pageNumber, pageSize); err != nil {
		return nil, err
	}
	if err := sleep(ctx, p.pageLatency); err != nil {
		return nil, domain.NewFetchError("fetch page", err)
	}

	total := len(p.products)
	start, end := pageBounds(pageNumber, pageSize, total)

	return &domain.PageEnvelope{
		Items:      slices.Clone(p.products[start:end]),
		TotalCount: total,
	}, nil
}

// FetchByID returns the matching product or (nil, nil).
func (p *Provider) FetchByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := sleep(ctx, p.itemLatency); err != nil {
		return nil, domain.NewFetchError("fetch product", err)
	}

	idx := slices.IndexFunc(p.products, func(prod domain.Product) bool { return prod.ID == id })
	if idx < 0 {
		return nil, nil
	}
	found := p.products[idx]
	return &found, nil
}

// pageBounds returns the [start, end) slice bounds of a 1-based page.
// Pages past the end are empty; the offset is never computed when it would
// exceed total, so huge page numbers cannot overflow.
func pageBounds(pageNumber, pageSize, total int) (start, end int) {
	if pageNumber-1 > total/pageSize {
		return total, total
	}
	start = min((pageNumber-1)*pageSize, total)
	return start, start + min(pageSize, total-start)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
