package cli

import (
	"fmt"

	"github.com/samvad-hq/samvad-fetcher/internal/app"
	"github.com/samvad-hq/samvad-fetcher/pkg/requests"
	"github.com/spf13/cobra"
)

func newRunCmd(a *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run the requests defined in a YAML or JSON file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := requests.LoadFile(args[0])
			if err != nil {
				return &usageError{err: err}
			}
			if name != "" {
				req, ok := requests.Find(reqs, name)
				if !ok {
					return &usageError{err: fmt.Errorf("no request named %q in %s", name, args[0])}
				}
				reqs = []requests.Request{req}
			}

			runner, err := a.runner()
			if err != nil {
				return &ConfigError{Err: err}
			}
			results, err := runner.RunAll(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			var firstErr error
			for _, res := range results {
				printStatus(a.Err, res)
				if res.Err != nil {
					if firstErr == nil {
						firstErr = res.Err
					}
					continue
				}
				fmt.Fprintf(a.Out, "### %s\n%s\n", res.Request.Name, res.Extracted)
			}
			if firstErr != nil {
				return fmt.Errorf("%d of %d requests failed: %w", countFailed(results), len(results), firstErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "run only the request with this name")
	return cmd
}

func countFailed(results []app.Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
