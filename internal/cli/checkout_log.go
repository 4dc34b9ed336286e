package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront/internal/config"
	sagasqlite "github.com/jcmexdev/storefront/internal/coordinator/sagalog/sqlite"
)

func newCheckoutLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout-log <saga-id>",
		Short: "Print the audit trail of one checkout run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			repo, err := sagasqlite.Open(cmd.Context(), cfg.SagaLog.Path)
			if err != nil {
				return err
			}
			defer repo.Close()

			entries, err := repo.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no checkout run %q in %s", args[0], cfg.SagaLog.Path)
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-12s %-26s order=%s trace=%s errors=%s\n",
					e.UpdatedAt.Format(time.RFC3339), e.Status, e.Step, e.OrderID, e.TraceID, e.Errors)
			}
			return nil
		},
	}
}
