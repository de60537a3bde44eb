package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/storefront/internal/storefront/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront e-commerce API",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Migrate(cmd.Context(), app.LoadConfig())
			},
		},
		newSeedCmd(),
	)

	return root
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load roles, users and catalog data",
		Long: "Load roles, users, categories and products from a YAML fixture. " +
			"Without --file the built-in demo data is used. Safe to run repeatedly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read seed file: %w", err)
				}
				raw = b
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := app.Seed(ctx, app.LoadConfig(), raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d roles, %d users (%d new), %d categories, %d products, %d images\n",
				report.Roles, report.Users, report.CreatedUsers, report.Categories, report.Products, report.Images,
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a YAML seed fixture")

	return cmd
}

func serve(ctx context.Context) error {
	application, err := app.New(ctx, app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}
