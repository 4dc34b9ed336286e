// Package cli implements storefrontctl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront/internal/config"
	"github.com/jcmexdev/storefront/internal/store"
)

// NewRootCmd builds the storefrontctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefrontctl",
		Short: "Storefront operator tool",
		Long: `storefrontctl manages the storefront database: schema migrations,
demo data, stock administration and order status reconciliation.

Configuration is read from storefront.yaml and STOREFRONT_* variables,
the same way the services read it.`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newReconcileCmd(), newStockCmd(), newCheckoutLogCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (*config.Config, *store.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := store.Open(ctx, &cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}
