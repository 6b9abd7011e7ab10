package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/app/catalog/listing"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(13)
	inStock     = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Render("in stock")
	outOfStock  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Render("out of stock")
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
)

var listHeaders = []string{"ID", "Name", "Category", "Brand", "Price", "Stock"}

func stockText(p domain.Product) string {
	if p.Stock == nil {
		return "-"
	}
	return strconv.Itoa(*p.Stock)
}

func stockBadge(p domain.Product) string {
	if p.InStock() {
		return inStock
	}
	return outOfStock
}

// renderListing draws the visible rows of state plus a paging footer.
func renderListing(state listing.State) string {
	rows := state.VisibleRows()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(listHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, p := range rows {
		t.Row(
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Category,
			p.Brand,
			p.DisplayPrice(),
			stockText(p),
		)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Products"))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("No products match the current filters."))
	} else {
		b.WriteString(t.Render())
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(listingFooter(state, len(rows))))
	return b.String()
}

func listingFooter(state listing.State, shown int) string {
	parts := []string{
		fmt.Sprintf("Page %d of %d", state.Page+1, max(state.TotalPages(), 1)),
		fmt.Sprintf("%d of %d products", shown, state.TotalCount),
		fmt.Sprintf("%d per page", state.PageSize),
	}
	if len(state.CategoryFacets) > 0 {
		parts = append(parts, "categories: "+strings.Join(state.CategoryFacets, ", "))
	}
	if state.Sort != nil {
		parts = append(parts, "sort: "+state.Sort.String())
	}
	return strings.Join(parts, " | ")
}

// renderProduct draws the detail card of p.
func renderProduct(p *domain.Product) string {
	field := func(label, value string) string {
		if value == "" {
			value = mutedStyle.Render("-")
		}
		return labelStyle.Render(label) + value
	}

	lines := []string{
		titleStyle.Render(p.Name),
		field("ID", strconv.FormatInt(p.ID, 10)),
		field("Category", p.Category),
		field("Brand", p.Brand),
		field("Price", p.DisplayPrice()),
		field("Stock", stockText(*p)+" "+stockBadge(*p)),
		field("Image", p.Image),
		"",
		p.Description,
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5A5A5A")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
