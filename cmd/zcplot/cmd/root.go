package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/plotfn"
	"github.com/user/zcplot_go/internal/version"
)

// Options are the command line flags of a plot run.
type Options struct {
	KwargsFile string
	Export     string
	Log        string
	Interact   bool
	Verbose    bool
	Summary    bool
	Raw        bool
	MonteCarlo bool
	Yes        bool
	PlotDir    string
	LogDir     string
}

var (
	opts     Options
	registry = plotfn.Default()
)

var rootCmd = &cobra.Command{
	Use:   "zcplot [flags] PLOT INPUT [kwargs...]",
	Short: "Reshape circuit simulator CSV exports and plot them",
	Long: `Ingests a simulator wave, summary, raw or Monte-Carlo CSV export into a
tidy table and hands it to a plot function together with key=value kwargs.

Examples:
  zcplot replot data/tran.csv x=time ys=1e3          # Plot the first signal in mV
  zcplot -s gmid data/sweep.csv                      # gm/Id charts of a summary export
  zcplot -k style.kw -x last.kw replot data/tran.csv # Load and export kwargs
  zcplot plots replot                                # Show the replot kwargs`,
	Version:       version.String(),
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlot,
}

// Execute runs the root command and exits with the status mapped from the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		if code == exitUsage {
			fmt.Fprintln(os.Stderr)
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
		os.Exit(code)
	}
}

func defaultOptions() Options {
	return Options{PlotDir: "plots", LogDir: "logs"}
}

func init() {
	opts = defaultOptions()
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("zcplot ver. {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitUsage, "%w", err)
	})

	flags := rootCmd.Flags()
	// kwargs after PLOT and INPUT are never parsed as flags
	flags.SetInterspersed(false)
	flags.StringVarP(&opts.KwargsFile, "kwargs", "k", "", "load additional kwargs from `FILE`")
	flags.StringVarP(&opts.Export, "export", "x", "", "export the merged kwargs to `FILE`")
	flags.StringVarP(&opts.Log, "log", "l", "", "log to `FILE` instead of <logs>/<time>.log, or none")
	flags.BoolVarP(&opts.Interact, "interact", "i", false, "view the ingested table and edit kwargs before plotting")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&opts.Summary, "summary", "s", false, "input is a summary export")
	flags.BoolVarP(&opts.Raw, "raw", "r", false, "input is a plain numeric CSV")
	flags.BoolVarP(&opts.MonteCarlo, "montecarlo", "m", false, "input is a Monte-Carlo wave export")
	flags.BoolVarP(&opts.Yes, "yes", "y", false, "answer yes to every prompt")
	flags.StringVar(&opts.PlotDir, "plots", opts.PlotDir, "default plot output `DIR`")
	flags.StringVar(&opts.LogDir, "logs", opts.LogDir, "default log `DIR`")

	rootCmd.Long += "\n\nAvailable plots:\n    " + strings.Join(registry.Names(), "\n    ") +
		"\n\nINPUT must be a CSV file, e.g. data/my_data.csv."
}

func runPlot(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return withCode(exitUsage, "not enough arguments")
	}
	ingests := 0
	for _, set := range []bool{opts.Summary, opts.Raw, opts.MonteCarlo} {
		if set {
			ingests++
		}
	}
	if ingests > 1 {
		return withCode(exitUsage, "--summary, --raw and --montecarlo are exclusive")
	}

	app, err := NewApp(opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()
	return app.Run(args[0], args[1], kwargs.List(args[2:]))
}
