package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/smartspend/backend/internal/domain/entity"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

// printer writes command results as text tables or indented JSON.
type printer struct {
	format string
	w      io.Writer
}

func (o *RootOptions) printer(w io.Writer) printer {
	return printer{format: o.Format, w: w}
}

func (p printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) plannedItems(items []entity.PlannedItem) error {
	if p.format == "json" {
		out := make([]dto.PlannedItemResponse, 0, len(items))
		for i := range items {
			out = append(out, dto.ToPlannedItemResponse(&items[i]))
		}
		return p.json(out)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBOUGHT\tPRICE")
	for i := range items {
		item := &items[i]
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n", item.ID, item.Name, item.PurchasedQuantity, item.TargetQuantity, item.PricePerUnit.StringFixed(2))
	}
	return tw.Flush()
}

func (p printer) actualItems(items []entity.ActualItem) error {
	if p.format == "json" {
		out := make([]dto.ActualItemResponse, 0, len(items))
		for i := range items {
			out = append(out, dto.ToActualItemResponse(&items[i]))
		}
		return p.json(out)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tNAME\tQTY\tCOST\tPLAN")
	for i := range items {
		item := &items[i]
		plan := "-"
		if item.PlannedItemID != nil {
			plan = *item.PlannedItemID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", item.ID, item.Date.Format(entity.DateLayout), item.Name, item.Quantity, item.TotalCost.StringFixed(2), plan)
	}
	return tw.Flush()
}

func (p printer) plannedItem(item entity.PlannedItem) error {
	return p.plannedItems([]entity.PlannedItem{item})
}

func (p printer) actualItem(item entity.ActualItem) error {
	return p.actualItems([]entity.ActualItem{item})
}
