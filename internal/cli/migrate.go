package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront/internal/store"
)

func newMigrateCmd() *cobra.Command {
	var dropFirst bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the storefront schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if dropFirst {
				fmt.Fprintln(cmd.OutOrStdout(), "Dropping existing tables...")
				if err := db.DropSchema(cmd.Context()); err != nil {
					return fmt.Errorf("failed to drop schema: %w", err)
				}
			}
			if err := db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s)\n", db.Dialect)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dropFirst, "drop-first", false, "Drop existing tables before creating")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo persons, products, warehouses and stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			f := store.DemoFixture()
			if err := db.Seed(cmd.Context(), f); err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products across %d warehouses\n", len(f.Products), len(f.Warehouses))
			return nil
		},
	}
}
