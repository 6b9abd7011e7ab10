package domain

// PageEnvelope is one page of products plus the size of the whole remote collection.
type PageEnvelope struct {
	Items      []Product
	TotalCount int
}

// NewPageEnvelope builds an envelope. A remote that reports no total while
// returning items falls back to the item count.
func NewPageEnvelope(items []Product, totalCount int) *PageEnvelope {
	if totalCount <= 0 {
		totalCount = len(items)
	}
	return &PageEnvelope{
		Items:      items,
		TotalCount: totalCount,
	}
}

// TotalPages returns how many pages of pageSize the collection spans.
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}
