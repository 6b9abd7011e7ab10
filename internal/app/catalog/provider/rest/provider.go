// Package rest fetches the catalog from the CMS REST API.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/light-bringer/procat-browser/internal/app/catalog/contracts"
	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/pkg/requestid"
)

// InternalCallHeader marks requests as coming from an internal caller.
const InternalCallHeader = "x-internal-call"

// ProductsResponse is the wire envelope of GET /products.
type ProductsResponse struct {
	Products      []domain.Product `json:"products"`
	TotalProducts int              `json:"totalProducts"`
}

// StatusError is returned (inside a FetchError) for non-2xx responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d", e.StatusCode)
}

// Config configures the REST provider.
type Config struct {
	BaseURL      string
	Timeout      time.Duration // 0 means no client-side timeout
	InternalCall bool
}

// Provider implements contracts.DataProvider over HTTP.
type Provider struct {
	httpClient   *http.Client
	baseURL      string
	internalCall bool
}

var _ contracts.DataProvider = (*Provider)(nil)

// NewProvider creates a REST provider. A nil httpClient gets a default one
// honouring cfg.Timeout.
func NewProvider(cfg Config, httpClient *http.Client) *Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Provider{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		internalCall: cfg.InternalCall,
	}
}

// FetchPage calls GET {base}/products?page=&limit=.
func (p *Provider) FetchPage(ctx context.Context, pageNumber, pageSize int) (*domain.PageEnvelope, error) {
	if err := contracts.ValidatePageRequest(pageNumber, pageSize); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(pageNumber))
	query.Set("limit", strconv.Itoa(pageSize))

	resp, err := p.get(ctx, p.baseURL+"/products?"+query.Encode())
	if err != nil {
		return nil, domain.NewFetchError("fetch page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewFetchError("fetch page", &StatusError{StatusCode: resp.StatusCode})
	}

	var body ProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewFetchError("fetch page", fmt.Errorf("failed to decode response: %w", err))
	}
	for _, prod := range body.Products {
		if err := prod.Validate(); err != nil {
			return nil, domain.NewFetchError("fetch page", err)
		}
	}

	return domain.NewPageEnvelope(body.Products, body.TotalProducts), nil
}

// FetchByID calls GET {base}/products/{id}. 404 or a null body means absent.
func (p *Provider) FetchByID(ctx context.Context, id int64) (*domain.Product, error) {
	resp, err := p.get(ctx, p.baseURL+"/products/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, domain.NewFetchError("fetch product", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, domain.NewFetchError("fetch product", &StatusError{StatusCode: resp.StatusCode})
	}

	var product *domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, domain.NewFetchError("fetch product", fmt.Errorf("failed to decode response: %w", err))
	}
	if product != nil {
		if err := product.Validate(); err != nil {
			return nil, domain.NewFetchError("fetch product", err)
		}
	}
	return product, nil
}

func (p *Provider) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.internalCall {
		req.Header.Set(InternalCallHeader, "true")
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}
