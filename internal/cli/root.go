package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/samvad-hq/samvad-fetcher/internal/app"
	"github.com/samvad-hq/samvad-fetcher/internal/logger"
	"github.com/samvad-hq/samvad-fetcher/internal/storage"
	"github.com/samvad-hq/samvad-fetcher/pkg/httpclient"
	"github.com/spf13/cobra"
)

// App holds the collaborators the commands run against.
type App struct {
	Client  httpclient.Client
	History storage.History
	Log     logger.Logger
	Out     io.Writer
	Err     io.Writer
	Version string
}

// NewRootCmd builds the fetch command tree around a.
func NewRootCmd(a *App) *cobra.Command {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Err == nil {
		a.Err = os.Stderr
	}
	if a.History == nil {
		a.History, _ = storage.NewHistory("none", "", storage.Options{})
	}

	var noColor bool

	root := &cobra.Command{
		Use:   "fetch",
		Short: "Send HTTP requests from the command line or from request files.",
		Long: `fetch sends GET, POST, form POST, PUT and DELETE requests with JSON,
form or query payloads. Successful response bodies go to stdout; any
non-2xx status is reported as an error.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.SetOut(a.Out)
	root.SetErr(a.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored status output")

	for _, spec := range requestCommands {
		root.AddCommand(newRequestCmd(a, spec))
	}
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newVersionCmd(a))

	return root
}

func (a *App) runner() (*app.Runner, error) {
	return app.NewRunner(a.Client, a.History, a.Log)
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func printStatus(w io.Writer, res app.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	label := res.Request.Name
	if label == "" {
		label = res.Request.URL
	}
	elapsed := dim(fmt.Sprintf("(%dms)", res.Duration.Milliseconds()))

	if res.Err != nil {
		fmt.Fprintf(w, "%s %s %s %s\n", red("✗"), label, elapsed, res.Err)
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", green("✓"), label, elapsed)
}
