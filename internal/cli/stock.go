package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	inventoryservice "github.com/jcmexdev/storefront/internal/inventory-service"
	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
)

func newStockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Administer warehouse stock",
	}
	cmd.AddCommand(
		newStockChangeCmd("add", "Add quantity to a warehouse's stock of a product",
			func(ctx context.Context, l *inventoryservice.Ledger, w, p string, q int) (domain.StockEntry, error) {
				return l.AddStock(ctx, w, p, q)
			}),
		newStockChangeCmd("set", "Overwrite a warehouse's stock of a product (0 removes it)",
			func(ctx context.Context, l *inventoryservice.Ledger, w, p string, q int) (domain.StockEntry, error) {
				return l.SetStock(ctx, w, p, q)
			}),
	)
	return cmd
}

type stockChange func(ctx context.Context, l *inventoryservice.Ledger, warehouseID, productID string, quantity int) (domain.StockEntry, error)

func newStockChangeCmd(use, short string, change stockChange) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <warehouse> <product> <quantity>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number", args[2])
			}

			_, db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			entry, err := change(cmd.Context(), inventoryservice.NewLedger(db), args[0], args[1], quantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now holds %d of %s\n", entry.WarehouseID, entry.Quantity, entry.ProductID)
			return nil
		},
	}
}
