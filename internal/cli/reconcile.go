package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	orderapp "github.com/jcmexdev/storefront/internal/order-service/app"
	"github.com/jcmexdev/storefront/internal/order-service/progression"
)

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Advance every unsettled order to the status its dates call for",
		Long: `Orders are normally advanced when they are read. reconcile applies the
same rules to every Processing and Shipped order at once, for orders
nobody has looked at in a while.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			loc, err := cfg.Checkout.Location()
			if err != nil {
				return err
			}
			svc := orderapp.NewService(db, orderapp.NewRepository(loc), progression.NewEngine(loc, time.Now))

			report, err := svc.ReconcileAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to reconcile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d orders, advanced %d\n", report.Scanned, report.Advanced)
			return nil
		},
	}
}
