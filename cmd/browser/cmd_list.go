package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/app/catalog/listing"
)

type listFlags struct {
	page     int
	pageSize int
	search   string
	category string
	sort     string
}

func newListCmd(a *app) *cobra.Command {
	f := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of products",
		Example: `  browser list --page 2 --page-size 25
  browser list --search "product 1" --category Books --sort price:desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()
			return runList(ctx, cmd, a, f)
		},
	}

	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "Page number, starting at 1")
	cmd.Flags().IntVarP(&f.pageSize, "page-size", "n", 0, "Rows per page: 5, 10, 25 or 50 (default from LISTING_PAGE_SIZE)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Case-insensitive name filter")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Exact category filter")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort override, e.g. price:asc or price:desc")
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, a *app, f *listFlags) error {
	if f.page < 1 {
		return fmt.Errorf("--page must be at least 1: %w", domain.ErrInvalidPage)
	}
	if f.pageSize != 0 && !slices.Contains(listing.PageSizeOptions, f.pageSize) {
		return fmt.Errorf("--page-size must be one of %v: %w", listing.PageSizeOptions, domain.ErrInvalidPageSize)
	}
	spec, err := domain.ParseSortSpec(f.sort)
	if err != nil {
		return err
	}

	c := a.svc.NewListingController(listing.WithPageSize(f.pageSize))
	if err := c.SetPage(ctx, f.page-1); err != nil {
		return err
	}
	c.Wait()

	c.SetSearchText(f.search)
	c.SetCategoryFilter(f.category)
	c.SetSortSpec(spec)

	state := c.State()
	if state.Status == listing.StatusFailed {
		return errors.New(state.Error)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderListing(state))
	return err
}
