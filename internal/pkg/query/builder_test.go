package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_SelectStar(t *testing.T) {
	stmt := From("catalog_products").Build()

	assert.Equal(t, "SELECT * FROM catalog_products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAccumulates(t *testing.T) {
	stmt := From("catalog_products").
		Select("product_id", "name").
		Select("price").
		Build()

	assert.Equal(t, "SELECT product_id, name, price FROM catalog_products", stmt.SQL)
}

func TestBuilder_WhereParamsAreNumbered(t *testing.T) {
	stmt := From("catalog_products").
		Select("product_id").
		Where(Eq("category", "Books")).
		Where(Eq("brand", "Brand A")).
		Build()

	assert.Equal(t, "SELECT product_id FROM catalog_products WHERE category = @p0 AND brand = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "Books", "p1": "Brand A"}, stmt.Params)
}

func TestBuilder_OrderByKeys(t *testing.T) {
	stmt := From("catalog_products").
		Select("product_id").
		OrderBy("price", Desc).
		OrderBy("product_id", Asc).
		Build()

	assert.Equal(t, "SELECT product_id FROM catalog_products ORDER BY price DESC, product_id ASC", stmt.SQL)
}

func TestBuilder_Page(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantSQL    string
		wantParams map[string]interface{}
	}{
		{
			name: "first page has no offset",
			page: 1, size: 10,
			wantSQL:    "SELECT * FROM catalog_products LIMIT @limit",
			wantParams: map[string]interface{}{"limit": int64(10)},
		},
		{
			name: "later page",
			page: 3, size: 25,
			wantSQL:    "SELECT * FROM catalog_products LIMIT @limit OFFSET @offset",
			wantParams: map[string]interface{}{"limit": int64(25), "offset": int64(50)},
		},
		{
			name: "huge page clamps the offset instead of wrapping",
			page: math.MaxInt/50 + 2, size: 50,
			wantSQL:    "SELECT * FROM catalog_products LIMIT @limit OFFSET @offset",
			wantParams: map[string]interface{}{"limit": int64(50), "offset": int64(math.MaxInt64)},
		},
		{
			name: "invalid page clears pagination",
			page: 0, size: 10,
			wantSQL:    "SELECT * FROM catalog_products",
			wantParams: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := From("catalog_products").Page(tt.page, tt.size).Build()
			assert.Equal(t, tt.wantSQL, stmt.SQL)
			assert.Equal(t, tt.wantParams, stmt.Params)
		})
	}
}

func TestBuilder_CountDropsOrderingAndPaging(t *testing.T) {
	b := From("catalog_products").
		Select("product_id", "name").
		Where(Eq("category", "Books")).
		OrderBy("product_id", Asc).
		Page(2, 10)

	count := b.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM catalog_products WHERE category = @p0", count.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "Books"}, count.Params)

	rows := b.Build()
	assert.Equal(t, "SELECT product_id, name FROM catalog_products WHERE category = @p0 ORDER BY product_id ASC LIMIT @limit OFFSET @offset", rows.SQL)
}

func TestBuilder_Immutable(t *testing.T) {
	base := From("catalog_products").Select("product_id")

	a := base.Where(Eq("brand", "Brand A")).OrderBy("price", Asc).Build()
	b := base.Where(Eq("category", "Books")).Build()

	assert.Contains(t, a.SQL, "brand = @p0")
	assert.NotContains(t, b.SQL, "brand")
	assert.NotContains(t, b.SQL, "ORDER BY")
	assert.Equal(t, "SELECT product_id FROM catalog_products", base.Build().SQL)
}

func TestCondition_EqUsesGivenIndex(t *testing.T) {
	sql, params := Eq("product_id", int64(7)).SQL(4)

	assert.Equal(t, "product_id = @p4", sql)
	assert.Equal(t, map[string]interface{}{"p4": int64(7)}, params)
}

func TestBuilder_String(t *testing.T) {
	s := From("catalog_products").Where(Eq("product_id", int64(1))).String()

	assert.Contains(t, s, "SQL: SELECT * FROM catalog_products WHERE product_id = @p0")
	assert.Contains(t, s, "Params:")
}
