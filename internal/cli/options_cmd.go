package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newOptionsCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the questionnaire categories and their options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(app.Catalog.Options())
			}
			for i, cat := range app.Catalog.Categories() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, header(fmt.Sprintf("%s (%s)", cat.Label, cat.AnswerKey)))
				if cat.Question != "" {
					fmt.Fprintln(out, dim(cat.Question))
				}
				for _, opt := range cat.Options {
					fmt.Fprintf(out, "  • %s  %s\n", opt.Arabic, dim(opt.English))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the options listing as served by GET /api/options")
	return cmd
}
