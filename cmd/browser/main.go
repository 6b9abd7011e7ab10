// Package main implements the catalog browser CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-browser/internal/config"
	"github.com/light-bringer/procat-browser/internal/pkg/logging"
	"github.com/light-bringer/procat-browser/internal/services"
)

// app carries what PersistentPreRunE builds for the subcommands.
type app struct {
	source  string
	verbose bool
	timeout time.Duration

	logger *zap.Logger
	svc    *services.ServiceOptions
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "browser",
		Short: "Browse the product catalog from the terminal",
		Long: `Browse the product catalog page by page.

The data source comes from CATALOG_SOURCE (mock, rest or spanner) unless
--source is given. Search, category and sort apply to the fetched page only.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.source, "source", "", "Catalog source: mock, rest or spanner (default from CATALOG_SOURCE)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", time.Minute, "Overall timeout for the command")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.source != "" {
		cfg.Source = config.Source(a.source)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	a.logger, err = logging.New(level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.svc, err = services.NewServiceOptions(cmd.Context(), cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return nil
}

func (a *app) close() {
	if a.svc != nil {
		a.svc.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}
