package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartspend/backend/internal/application/usecase/dashboard"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

// showResult is the JSON shape of the show command.
type showResult struct {
	Summary dto.SummaryResponse  `json:"summary"`
	Ledger  dto.SnapshotResponse `json:"ledger"`
}

func newShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the budget overview with planned and logged items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			state := facade.State()
			summary := dashboard.Summarize(&state)
			p := opts.printer(cmd.OutOrStdout())

			if p.format == "json" {
				return p.json(showResult{
					Summary: dto.ToSummaryResponse(summary),
					Ledger:  dto.ToSnapshotResponse(&state),
				})
			}

			fmt.Fprintf(p.w, "Budget:    %s\n", summary.Budget.StringFixed(2))
			fmt.Fprintf(p.w, "Planned:   %s\n", summary.TotalPlanned.StringFixed(2))
			fmt.Fprintf(p.w, "Spent:     %s (%s%%)\n", summary.TotalActual.StringFixed(2), summary.SpendingProgress.StringFixed(0))
			fmt.Fprintf(p.w, "Remaining: %s\n", summary.RemainingBudget.StringFixed(2))
			if summary.IsOverBudget {
				fmt.Fprintln(p.w, "Over budget!")
			}
			fmt.Fprintf(p.w, "\nPlanned items (%d/%d complete)\n", summary.FullyPurchasedCount, summary.PlannedItemCount)
			if err := p.plannedItems(state.PlannedItems); err != nil {
				return err
			}
			fmt.Fprintf(p.w, "\nPurchases (%d)\n", summary.ActualItemCount)
			return p.actualItems(state.ActualItems)
		},
	}
}
