package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartspend/backend/internal/application/ledgersync"
	"github.com/smartspend/backend/internal/domain/entity"
)

func newPlanCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage planned items",
	}

	cmd.AddCommand(newPlanListCommand(opts))
	cmd.AddCommand(newPlanAddCommand(opts))
	cmd.AddCommand(newPlanUpdateCommand(opts))
	cmd.AddCommand(newPlanDeleteCommand(opts))
	cmd.AddCommand(newPlanBuyCommand(opts))

	return cmd
}

func newPlanListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List planned items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			return opts.printer(cmd.OutOrStdout()).plannedItems(facade.State().PlannedItems)
		},
	}
}

func newPlanAddCommand(opts *RootOptions) *cobra.Command {
	var (
		quantity int
		price    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Plan a purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pricePerUnit, err := parseMoney("price", price)
			if err != nil {
				return err
			}

			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			item, err := facade.AddPlannedItem(ledgersync.PlannedItemInput{
				Name:           args[0],
				TargetQuantity: quantity,
				PricePerUnit:   pricePerUnit,
			})
			if err != nil {
				return err
			}
			if err := commit(cmd.Context(), facade); err != nil {
				return err
			}
			return opts.printer(cmd.OutOrStdout()).plannedItem(item)
		},
	}

	cmd.Flags().IntVarP(&quantity, "qty", "q", 1, "target quantity")
	cmd.Flags().StringVarP(&price, "price", "p", "0", "price per unit")

	return cmd
}

func newPlanUpdateCommand(opts *RootOptions) *cobra.Command {
	var (
		name     string
		quantity int
		price    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a planned item; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			state := facade.State()
			idx, ok := state.FindPlanned(args[0])
			if !ok {
				return fmt.Errorf("planned item %s not found", args[0])
			}
			current := state.PlannedItems[idx]

			input := ledgersync.PlannedItemInput{
				Name:           current.Name,
				TargetQuantity: current.TargetQuantity,
				PricePerUnit:   current.PricePerUnit,
			}
			if cmd.Flags().Changed("name") {
				input.Name = name
			}
			if cmd.Flags().Changed("qty") {
				input.TargetQuantity = quantity
			}
			if cmd.Flags().Changed("price") {
				if input.PricePerUnit, err = parseMoney("price", price); err != nil {
					return err
				}
			}

			item, err := facade.UpdatePlannedItem(args[0], input)
			if err != nil {
				return err
			}
			if err := commit(cmd.Context(), facade); err != nil {
				return err
			}
			return opts.printer(cmd.OutOrStdout()).plannedItem(item)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().IntVarP(&quantity, "qty", "q", 0, "new target quantity")
	cmd.Flags().StringVarP(&price, "price", "p", "", "new price per unit")

	return cmd
}

func newPlanDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a planned item; its purchases stay logged, unlinked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			if err := facade.DeletePlannedItem(args[0]); err != nil {
				return err
			}
			if err := commit(cmd.Context(), facade); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted planned item %s\n", args[0])
			return err
		},
	}
}

func newPlanBuyCommand(opts *RootOptions) *cobra.Command {
	var (
		quantity int
		cost     string
		date     string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "buy <id>",
		Short: "Log a purchase against a planned item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			totalCost, err := parseMoney("cost", cost)
			if err != nil {
				return err
			}
			purchaseDate, err := opts.parseDate(date)
			if err != nil {
				return err
			}

			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			item, err := facade.MarkPurchased(args[0], quantity, totalCost, purchaseDate, ledgersync.WithName(name))
			if err != nil {
				return err
			}
			if err := commit(cmd.Context(), facade); err != nil {
				return err
			}
			return opts.printer(cmd.OutOrStdout()).actualItem(item)
		},
	}

	cmd.Flags().IntVarP(&quantity, "qty", "q", 1, "quantity bought")
	cmd.Flags().StringVarP(&cost, "cost", "c", "", "total cost")
	cmd.Flags().StringVarP(&date, "date", "d", "", "purchase date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&name, "name", "", "name to log instead of the planned item's")
	_ = cmd.MarkFlagRequired("cost")

	return cmd
}

// parseDate reads a YYYY-MM-DD date, defaulting to today.
func (o *RootOptions) parseDate(value string) (time.Time, error) {
	if value == "" {
		return entity.CalendarDate(o.now()), nil
	}
	return entity.ParseDate(value)
}
