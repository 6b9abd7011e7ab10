package rest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/memory"
	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/rest"
	"github.com/light-bringer/procat-browser/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/procat-browser/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/procat-browser/internal/pkg/requestid"
	httptransport "github.com/light-bringer/procat-browser/internal/transport/http"
)

func newCatalogServer(t *testing.T) (*httptest.Server, []domain.Product) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := memory.MockCatalog(memory.DefaultMockSize, 3)
	provider := memory.NewProvider(catalog)
	handler := httptransport.NewCatalogHandler(list_products.NewQuery(provider), get_product.NewQuery(provider), nil)

	srv := httptest.NewServer(httptransport.NewRouter(handler, "/cms", nil))
	t.Cleanup(srv.Close)
	return srv, catalog
}

func newProvider(baseURL string) *rest.Provider {
	return rest.NewProvider(rest.Config{BaseURL: baseURL, InternalCall: true}, nil)
}

func TestProvider_AgainstCatalogServer(t *testing.T) {
	ctx := context.Background()
	srv, catalog := newCatalogServer(t)
	p := newProvider(srv.URL + "/cms/")

	t.Run("first page of fifty", func(t *testing.T) {
		env, err := p.FetchPage(ctx, 1, 10)
		require.NoError(t, err)
		assert.Len(t, env.Items, 10)
		assert.Equal(t, 50, env.TotalCount)

		got := env.Items[4]
		want := catalog[4]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.Brand, got.Brand)
		assert.Equal(t, *want.Stock, *got.Stock)
		assert.True(t, want.Price.Decimal.Equal(got.Price.Decimal))
	})

	t.Run("found by id", func(t *testing.T) {
		prod, err := p.FetchByID(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, prod)
		assert.Equal(t, "Product 42", prod.Name)
	})

	t.Run("missing id is absent, not an error", func(t *testing.T) {
		prod, err := p.FetchByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, prod)
	})

	t.Run("invalid page request never hits the wire", func(t *testing.T) {
		_, err := p.FetchPage(ctx, 0, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidPageRequest)
	})
}

func TestProvider_RequestHeaders(t *testing.T) {
	var gotInternal, gotRequestID, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotInternal = r.Header.Get(rest.InternalCallHeader)
		gotRequestID = r.Header.Get(requestid.Header)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[],"totalProducts":0}`))
	}))
	defer srv.Close()

	ctx := requestid.WithID(context.Background(), "req-7")
	_, err := newProvider(srv.URL).FetchPage(ctx, 2, 25)
	require.NoError(t, err)

	assert.Equal(t, "true", gotInternal)
	assert.Equal(t, "req-7", gotRequestID)
	assert.Equal(t, "limit=25&page=2", gotQuery)
}

func TestProvider_Envelope(t *testing.T) {
	ctx := context.Background()

	respond := func(status int, body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
	}

	t.Run("missing total falls back to item count", func(t *testing.T) {
		srv := respond(http.StatusOK, `{"products":[{"id":1,"name":"a","price":12.5},{"id":2,"name":"b"}]}`)
		defer srv.Close()

		env, err := newProvider(srv.URL).FetchPage(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, env.TotalCount)
		assert.Equal(t, "$12.50", env.Items[0].DisplayPrice())
		assert.False(t, env.Items[1].Price.Valid)
		assert.Nil(t, env.Items[1].Stock)
	})

	t.Run("non-200 is a fetch error", func(t *testing.T) {
		srv := respond(http.StatusInternalServerError, `oops`)
		defer srv.Close()

		_, err := newProvider(srv.URL).FetchPage(ctx, 1, 10)
		require.Error(t, err)
		assert.True(t, domain.IsFetchError(err))

		var statusErr *rest.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)

		_, err = newProvider(srv.URL).FetchByID(ctx, 1)
		assert.True(t, domain.IsFetchError(err))
	})

	t.Run("malformed body is a fetch error", func(t *testing.T) {
		srv := respond(http.StatusOK, `{"products":`)
		defer srv.Close()

		_, err := newProvider(srv.URL).FetchPage(ctx, 1, 10)
		assert.True(t, domain.IsFetchError(err))
	})

	t.Run("null product body is absent", func(t *testing.T) {
		srv := respond(http.StatusOK, `null`)
		defer srv.Close()

		prod, err := newProvider(srv.URL).FetchByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, prod)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		srv := respond(http.StatusOK, `{"products":[{"id":1,"name":"a","price":-5}],"totalProducts":1}`)
		defer srv.Close()

		_, err := newProvider(srv.URL).FetchPage(ctx, 1, 10)
		assert.True(t, domain.IsFetchError(err))
		assert.ErrorIs(t, err, domain.ErrNegativePrice)
	})

	t.Run("negative stock on a single product is rejected", func(t *testing.T) {
		srv := respond(http.StatusOK, `{"id":3,"name":"c","price":1,"stock":-2}`)
		defer srv.Close()

		_, err := newProvider(srv.URL).FetchByID(ctx, 3)
		assert.True(t, domain.IsFetchError(err))
		assert.ErrorIs(t, err, domain.ErrNegativeStock)
	})

	t.Run("unreachable server is a fetch error", func(t *testing.T) {
		srv := respond(http.StatusOK, `{}`)
		url := srv.URL
		srv.Close()

		_, err := newProvider(url).FetchPage(ctx, 1, 10)
		assert.True(t, domain.IsFetchError(err))
	})
}
