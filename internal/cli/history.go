package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently executed requests",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.History.Recent(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.Out, "no history recorded")
				return nil
			}

			tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "AT\tMETHOD\tURL\tRESULT\tDURATION")
			for _, e := range entries {
				result := "ok"
				switch {
				case e.StatusCode != 0:
					result = fmt.Sprintf("status %d", e.StatusCode)
				case !e.OK && e.ErrorKind != "":
					result = e.ErrorKind + " error"
				case !e.OK:
					result = "error"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dms\n",
					e.At.Local().Format("2006-01-02 15:04:05"), e.Method, e.URL, result, e.DurationMs)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show (0 for all)")
	return cmd
}
