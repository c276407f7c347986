package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

func newBudgetCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			return printBudget(opts, cmd, facade.State().Budget)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the budget amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMoney("amount", args[0])
			if err != nil {
				return err
			}

			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			if err := facade.UpdateBudget(amount); err != nil {
				return err
			}
			if err := commit(cmd.Context(), facade); err != nil {
				return err
			}
			return printBudget(opts, cmd, facade.State().Budget)
		},
	})

	return cmd
}

func printBudget(opts *RootOptions, cmd *cobra.Command, amount decimal.Decimal) error {
	p := opts.printer(cmd.OutOrStdout())
	if p.format == "json" {
		return p.json(dto.BudgetResponse{Amount: dto.NewMoney(amount)})
	}
	_, err := fmt.Fprintf(p.w, "Budget: %s\n", amount.StringFixed(2))
	return err
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return amount, nil
}
