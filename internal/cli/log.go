package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartspend/backend/internal/application/ledgersync"
)

func newLogCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage logged purchases",
	}

	cmd.AddCommand(newLogListCommand(opts))
	cmd.AddCommand(newLogAddCommand(opts))
	cmd.AddCommand(newLogUpdateCommand(opts))
	cmd.AddCommand(newLogDeleteCommand(opts))

	return cmd
}

func newLogListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List logged purchases, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			return opts.printer(cmd.OutOrStdout()).actualItems(facade.State().ActualItems)
		},
	}
}

func newLogAddCommand(opts *RootOptions) *cobra.Command {
	var (
		quantity int
		cost     string
		date     string
		plan     string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Log a purchase",
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

			item, err := facade.AddActualItem(ledgersync.ActualItemInput{
				Name:          args[0],
				Quantity:      quantity,
				TotalCost:     totalCost,
				Date:          purchaseDate,
				PlannedItemID: plan,
			})
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
	cmd.Flags().StringVar(&plan, "plan", "", "planned item to count this purchase towards")
	_ = cmd.MarkFlagRequired("cost")

	return cmd
}

func newLogUpdateCommand(opts *RootOptions) *cobra.Command {
	var (
		name     string
		quantity int
		cost     string
		date     string
		plan     string
		unlink   bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a logged purchase; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if unlink && cmd.Flags().Changed("plan") {
				return fmt.Errorf("--plan and --unlink are mutually exclusive")
			}

			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			state := facade.State()
			idx, ok := state.FindActual(args[0])
			if !ok {
				return fmt.Errorf("actual item %s not found", args[0])
			}
			current := state.ActualItems[idx]

			input := ledgersync.ActualItemInput{
				Name:          current.Name,
				Quantity:      current.Quantity,
				TotalCost:     current.TotalCost,
				Date:          current.Date,
				PlannedItemID: current.LinkedID(),
			}
			if cmd.Flags().Changed("name") {
				input.Name = name
			}
			if cmd.Flags().Changed("qty") {
				input.Quantity = quantity
			}
			if cmd.Flags().Changed("cost") {
				if input.TotalCost, err = parseMoney("cost", cost); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("date") {
				if input.Date, err = opts.parseDate(date); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("plan") {
				input.PlannedItemID = plan
			}
			if unlink {
				input.PlannedItemID = ""
			}

			item, err := facade.UpdateActualItem(args[0], input)
			if err != nil {
				return err
			}
			if err := commit(cmd.Context(), facade); err != nil {
				return err
			}
			return opts.printer(cmd.OutOrStdout()).actualItem(item)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().IntVarP(&quantity, "qty", "q", 0, "new quantity")
	cmd.Flags().StringVarP(&cost, "cost", "c", "", "new total cost")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new purchase date as YYYY-MM-DD")
	cmd.Flags().StringVar(&plan, "plan", "", "planned item to link to")
	cmd.Flags().BoolVar(&unlink, "unlink", false, "detach from its planned item")

	return cmd
}

func newLogDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a logged purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer facade.Close()

			if err := facade.DeleteActualItem(args[0]); err != nil {
				return err
			}
			if err := commit(cmd.Context(), facade); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted actual item %s\n", args[0])
			return err
		},
	}
}
