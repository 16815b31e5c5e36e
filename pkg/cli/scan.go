package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"billscan/pkg/services/bills"

	"github.com/spf13/cobra"
)

var (
	scanName    string
	scanDate    string
	scanComment string
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>...",
	Short: "OCR bill images and store their totals",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg, logger, true, false)
		if err != nil {
			return err
		}
		defer a.Close()

		uploads := make([]bills.Upload, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			uploads = append(uploads, bills.Upload{
				Filename: filepath.Base(path),
				Data:     data,
				Name:     scanName,
				Date:     scanDate,
				Comment:  scanComment,
			})
		}

		results, err := a.bills.Scan(cmd.Context(), uploads)
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			detail := r.FormattedAmount
			switch r.Status {
			case bills.StatusNoTotal:
				detail = "no total found"
			case bills.StatusError:
				detail = r.Error
			}
			rows = append(rows, []string{r.Filename, r.Status, detail, r.Line})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"File", "Status", "Amount", "Line"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		))
		return err
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanName, "name", "", "name to store with each bill")
	scanCmd.Flags().StringVar(&scanDate, "date", "", "date to store with each bill")
	scanCmd.Flags().StringVar(&scanComment, "comment", "", "comment to store with each bill")
}
