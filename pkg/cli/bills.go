package cli

import (
	"fmt"
	"io"
	"strconv"

	"billscan/pkg/services/bills"

	"github.com/spf13/cobra"
)

var (
	billsClear  bool
	billsDelete uint
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "List stored bills and their total",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, logger, false, false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if billsClear {
			n, err := a.bills.ClearAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %d bills\n", n)
		}
		if billsDelete != 0 {
			if err := a.bills.Delete(ctx, billsDelete); err != nil {
				return fmt.Errorf("delete bill %d: %w", billsDelete, err)
			}
		}

		summary, err := a.bills.Summary(ctx)
		if err != nil {
			return err
		}
		printSummary(out, summary)
		return nil
	},
}

func init() {
	billsCmd.Flags().BoolVar(&billsClear, "clear", false, "delete every stored bill first")
	billsCmd.Flags().UintVar(&billsDelete, "delete", 0, "delete the bill with this id first")
}

func printSummary(out io.Writer, summary bills.Summary) {
	if len(summary.Bills) == 0 {
		fmt.Fprintln(out, summary.Message)
		return
	}

	fmt.Fprintf(out, "Total value of all bills: %s\n", summary.FormattedTotal)
	rows := make([][]string, 0, len(summary.Bills))
	for _, b := range summary.Bills {
		rows = append(rows, []string{
			strconv.Itoa(b.Number),
			strconv.FormatUint(uint64(b.ID), 10),
			b.Name,
			b.Date,
			b.Comment,
			b.FormattedAmount,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Bill Number", "ID", "Name", "Date", "Comment", "Amount"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	))
}
