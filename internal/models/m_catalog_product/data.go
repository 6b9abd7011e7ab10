package m_catalog_product

import (
	"cloud.google.com/go/spanner"
)

// Data is one row of catalog_products. Spanner tags map the snake_case
// columns onto the fields for Row.ToStruct.
type Data struct {
	ProductID   int64               `spanner:"product_id"`
	Name        spanner.NullString  `spanner:"name"`
	Category    spanner.NullString  `spanner:"category"`
	Price       spanner.NullNumeric `spanner:"price"`
	Description spanner.NullString  `spanner:"description"`
	Image       spanner.NullString  `spanner:"image"`
	Stock       spanner.NullInt64   `spanner:"stock"`
	Brand       spanner.NullString  `spanner:"brand"`
}
