package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-browser/internal/app/catalog/detail"
	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Short:   "Show one product",
		Example: "  browser show 12",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", args[0], domain.ErrInvalidProductID)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			c := a.svc.NewDetailController()
			if err := c.Load(ctx, id); err != nil {
				return err
			}
			c.Wait()

			state := c.State()
			switch state.Status {
			case detail.StatusFailed:
				return errors.New(state.Error)
			case detail.StatusNotFound:
				return fmt.Errorf("product %d not found", id)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderProduct(state.Product))
			return err
		},
	}
}
