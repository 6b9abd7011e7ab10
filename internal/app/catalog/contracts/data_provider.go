package contracts

import (
	"context"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

// DataProvider is the only I/O boundary of the browser.
// Implementations make a single attempt per call: no caching, retries or backoff.
type DataProvider interface {
	// FetchPage retrieves one page (1-based pageNumber) and the remote collection size.
	// Transport or remote failures are returned as *domain.FetchError.
	FetchPage(ctx context.Context, pageNumber, pageSize int) (*domain.PageEnvelope, error)

	// FetchByID retrieves a single product. A missing record yields (nil, nil).
	FetchByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ValidatePageRequest checks the paging arguments shared by every provider.
func ValidatePageRequest(pageNumber, pageSize int) error {
	if pageNumber < 1 || pageSize <= 0 {
		return domain.ErrInvalidPageRequest
	}
	return nil
}
