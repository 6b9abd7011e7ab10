package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-browser/internal/app/catalog/contracts"
	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/memory"
	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/rest"
	"github.com/light-bringer/procat-browser/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/procat-browser/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/procat-browser/internal/pkg/requestid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type brokenProvider struct{}

func (brokenProvider) FetchPage(ctx context.Context, page, size int) (*domain.PageEnvelope, error) {
	return nil, domain.NewFetchError("fetch page", errors.New("spanner unavailable"))
}

func (brokenProvider) FetchByID(ctx context.Context, id int64) (*domain.Product, error) {
	return nil, domain.NewFetchError("fetch product", errors.New("spanner unavailable"))
}

func newTestRouter(provider contracts.DataProvider) *gin.Engine {
	h := NewCatalogHandler(list_products.NewQuery(provider), get_product.NewQuery(provider), nil)
	return NewRouter(h, "/cms", nil)
}

func serve(r http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	r := newTestRouter(memory.NewProvider(memory.MockCatalog(memory.DefaultMockSize, 1)))

	t.Run("paged envelope", func(t *testing.T) {
		w := serve(r, "/cms/products?page=2&limit=5", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body rest.ProductsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 50, body.TotalProducts)
		require.Len(t, body.Products, 5)
		assert.Equal(t, int64(6), body.Products[0].ID)
		assert.Equal(t, "Product 6", body.Products[0].Name)
	})

	t.Run("defaults to first page of ten", func(t *testing.T) {
		w := serve(r, "/cms/products", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body rest.ProductsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Products, 10)
	})

	t.Run("page far past the end is empty, not a server error", func(t *testing.T) {
		w := serve(r, "/cms/products?page=184467440737095518&limit=50", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body rest.ProductsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Empty(t, body.Products)
		assert.Equal(t, 50, body.TotalProducts)
	})

	t.Run("invalid paging is rejected", func(t *testing.T) {
		for _, target := range []string{"/cms/products?page=-2", "/cms/products?limit=-1", "/cms/products?page=abc"} {
			w := serve(r, target, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, target)
		}
	})
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	r := newTestRouter(memory.NewProvider(memory.MockCatalog(memory.DefaultMockSize, 1)))

	t.Run("found", func(t *testing.T) {
		w := serve(r, "/cms/products/12", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var p domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, int64(12), p.ID)
		assert.True(t, p.Price.Valid)
	})

	t.Run("missing is 404", func(t *testing.T) {
		w := serve(r, "/cms/products/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"product not found"}`, w.Body.String())
	})

	t.Run("bad id is 400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(r, "/cms/products/abc", nil).Code)
		assert.Equal(t, http.StatusBadRequest, serve(r, "/cms/products/0", nil).Code)
	})
}

func TestCatalogHandler_ProviderFailure(t *testing.T) {
	r := newTestRouter(brokenProvider{})

	w := serve(r, "/cms/products", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = serve(r, "/cms/products/1", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(memory.NewProvider(nil))

	t.Run("echoes incoming id", func(t *testing.T) {
		w := serve(r, "/cms/products", http.Header{requestid.Header: {"abc-123"}})
		assert.Equal(t, "abc-123", w.Header().Get(requestid.Header))
	})

	t.Run("generates id when missing", func(t *testing.T) {
		w := serve(r, "/cms/products", nil)
		assert.NotEmpty(t, w.Header().Get(requestid.Header))
	})

	t.Run("provider sees the same id", func(t *testing.T) {
		rec := &recordingProvider{}
		w := serve(newTestRouter(rec), "/cms/products", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, w.Header().Get(requestid.Header), rec.requestID)
	})
}

type recordingProvider struct {
	requestID string
}

func (p *recordingProvider) FetchPage(ctx context.Context, page, size int) (*domain.PageEnvelope, error) {
	p.requestID = requestid.FromContext(ctx)
	return domain.NewPageEnvelope(nil, 0), nil
}

func (p *recordingProvider) FetchByID(ctx context.Context, id int64) (*domain.Product, error) {
	p.requestID = requestid.FromContext(ctx)
	return nil, nil
}

func TestMapErrorToStatus(t *testing.T) {
	code, _ := mapErrorToStatus(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)

	code, _ = mapErrorToStatus(domain.ErrInvalidPageRequest)
	assert.Equal(t, http.StatusBadRequest, code)
}
