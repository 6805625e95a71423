package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	ledgerapp "github.com/smbc/backend/internal/application/ledger"
	"github.com/smbc/backend/internal/infrastructure/persistence"
)

func newInvoiceCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Inspect construction invoice numbers",
	}
	cmd.AddCommand(newInvoicePeekCommand(configPath))
	return cmd
}

// Numbers are only consumed by recorded construction batches, so there is no
// command that takes one.
func newInvoicePeekCommand(configPath *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "peek",
		Short: "Show the next invoice number without reserving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx, *configPath, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			scope := persistence.NewGormTransactionScope(rt.db.DB)
			recorder := ledgerapp.NewRecordingService(
				scope.Ledger(),
				persistence.NewGormEntryRepository(rt.db.DB),
				persistence.NewGormProjectRepository(rt.db.DB),
				persistence.NewGormInvoiceSequence(rt.db.DB),
				rt.log,
			)
			recorder.SetClock(rt.clock())

			resp, err := recorder.PeekInvoiceNumber(ctx, date)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.InvoiceNumber)
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "issue date YYYY-MM-DD (default: today)")
	return cmd
}
