package m_catalog_product

// Column names of the catalog_products table.
const (
	TableName = "catalog_products"

	ProductID   = "product_id"
	Name        = "name"
	Category    = "category"
	Price       = "price"
	Description = "description"
	Image       = "image"
	Stock       = "stock"
	Brand       = "brand"
)

// Columns lists every column in table order. Data's field order matches it.
var Columns = []string{
	ProductID,
	Name,
	Category,
	Price,
	Description,
	Image,
	Stock,
	Brand,
}
