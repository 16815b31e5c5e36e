package cli

import (
	"fmt"
	"os"
	"strings"

	"billscan/pkg/services/pdftext"

	"github.com/spf13/cobra"
)

var askShowText bool

var askCmd = &cobra.Command{
	Use:   "ask <pdf> <question>...",
	Short: "Ask a question about a PDF",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		pages, err := pdftext.ExtractBytes(data)
		if err != nil {
			return err
		}
		text := pdftext.Join(pages)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "PDF processed: %d pages.\n", len(pages))
		if askShowText {
			fmt.Fprintln(out, text)
		}

		a, err := newApp(cmd.Context(), cfg, logger, false, true)
		if err != nil {
			return err
		}
		defer a.Close()

		ans, err := a.documents.AskText(cmd.Context(), text, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ans.Response)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askShowText, "show-text", false, "print the extracted text before answering")
}
