package m_catalog_product

import (
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

// Model converts between catalog rows and domain products.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut upserts one product row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.ProductID,
			data.Name,
			data.Category,
			data.Price,
			data.Description,
			data.Image,
			data.Stock,
			data.Brand,
		},
	)
}

// DeleteAllMut clears the table.
func (m *Model) DeleteAllMut() *spanner.Mutation {
	return spanner.Delete(TableName, spanner.AllKeys())
}

// FromDomain builds a row from a product. Empty strings are stored as NULL.
func (m *Model) FromDomain(p *domain.Product) *Data {
	data := &Data{
		ProductID:   p.ID,
		Name:        nullString(p.Name),
		Category:    nullString(p.Category),
		Description: nullString(p.Description),
		Image:       nullString(p.Image),
		Brand:       nullString(p.Brand),
	}
	if p.Price.Valid {
		data.Price = spanner.NullNumeric{Numeric: *p.Price.Decimal.Rat(), Valid: true}
	}
	if p.Stock != nil {
		data.Stock = spanner.NullInt64{Int64: int64(*p.Stock), Valid: true}
	}
	return data
}

// ToDomain converts a row into a product.
func (m *Model) ToDomain(data *Data) *domain.Product {
	p := &domain.Product{
		ID:          data.ProductID,
		Name:        data.Name.StringVal,
		Category:    data.Category.StringVal,
		Description: data.Description.StringVal,
		Image:       data.Image.StringVal,
		Brand:       data.Brand.StringVal,
	}
	if data.Price.Valid {
		p.Price = domain.NewPrice(ratToDecimal(&data.Price.Numeric))
	}
	if data.Stock.Valid {
		stock := int(data.Stock.Int64)
		p.Stock = &stock
	}
	return p
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

// NUMERIC has a scale of 9.
func ratToDecimal(r *big.Rat) decimal.Decimal {
	return decimal.NewFromBigRat(r, 9)
}
