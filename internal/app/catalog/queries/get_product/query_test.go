package get_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/memory"
)

func TestQuery_Execute(t *testing.T) {
	ctx := context.Background()
	q := NewQuery(memory.NewProvider(memory.MockCatalog(memory.DefaultMockSize, 1)))

	t.Run("found", func(t *testing.T) {
		p, err := q.Execute(ctx, &Request{ProductID: 50})
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Product 50", p.Name)
	})

	t.Run("missing is absent", func(t *testing.T) {
		p, err := q.Execute(ctx, &Request{ProductID: 999})
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{ProductID: -3})
		assert.ErrorIs(t, err, domain.ErrInvalidProductID)
	})
}
