package memory

import (
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

// DefaultMockSize is the size of the demo catalog.
const DefaultMockSize = 50

var (
	mockCategories = []string{"Electronics", "Clothing", "Books", "Home & Kitchen", "Sports"}
	mockBrands     = []string{"Brand A", "Brand B", "Brand C", "Brand D"}
)

// MockCatalog generates n demo products with ids 1..n. Names are "Product <id>",
// categories and brands rotate, and price (10..509) and stock (0..99) are drawn
// from a generator seeded with seed so the catalog is reproducible.
func MockCatalog(n int, seed uint64) []domain.Product {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		stock := rng.IntN(100)
		products = append(products, domain.Product{
			ID:          id,
			Name:        fmt.Sprintf("Product %d", id),
			Category:    mockCategories[i%len(mockCategories)],
			Price:       domain.NewPrice(decimal.NewFromInt(int64(rng.IntN(500) + 10))),
			Description: fmt.Sprintf("This is a detailed description for Product %d. High quality and affordable with amazing features.", id),
			Image:       fmt.Sprintf("https://picsum.photos/seed/%d/400/400", id),
			Stock:       &stock,
			Brand:       mockBrands[i%len(mockBrands)],
		})
	}
	return products
}
