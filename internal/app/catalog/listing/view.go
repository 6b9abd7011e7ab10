package listing

import (
	"slices"
	"strings"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

// ViewFilter is the local, non-fetching part of the listing state.
type ViewFilter struct {
	SearchText     string
	CategoryFilter string
	Sort           *domain.SortSpec
}

// VisibleRows derives the displayed rows from the current page items.
// It always recomputes from scratch: search filter, then category filter,
// then the optional stable price sort. items is never modified.
func VisibleRows(items []domain.Product, f ViewFilter) []domain.Product {
	rows := make([]domain.Product, 0, len(items))

	needle := strings.ToLower(f.SearchText)
	for _, p := range items {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if f.CategoryFilter != "" && p.Category != f.CategoryFilter {
			continue
		}
		rows = append(rows, p)
	}

	sortRows(rows, f.Sort)
	return rows
}

// sortRows applies a price sort in place. Any other field, a nil spec or a
// malformed spec leaves server order untouched.
func sortRows(rows []domain.Product, spec *domain.SortSpec) {
	if spec == nil || !spec.Valid() || spec.Field != domain.SortFieldPrice {
		return
	}

	desc := spec.Direction == domain.Desc
	slices.SortStableFunc(rows, func(a, b domain.Product) int {
		c := a.PriceOrZero().Cmp(b.PriceOrZero())
		if desc {
			return -c
		}
		return c
	})
}

// CategoryFacets returns the distinct non-empty categories of items in
// first-appearance order.
func CategoryFacets(items []domain.Product) []string {
	seen := make(map[string]struct{})
	facets := make([]string, 0)
	for _, p := range items {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		facets = append(facets, p.Category)
	}
	return facets
}
