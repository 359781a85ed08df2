package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			version := a.Version
			if version == "" {
				version = "dev"
			}
			fmt.Fprintf(a.Out, "fetch version %s\n", version)
		},
	}
}
