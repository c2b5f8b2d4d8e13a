package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var plotsCmd = &cobra.Command{
	Use:   "plots [PLOT]",
	Short: "List the plot functions or show the kwargs of one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlots,
}

func init() {
	rootCmd.AddCommand(plotsCmd)
}

func runPlots(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, "Available plots:")
		for _, name := range registry.Names() {
			fmt.Fprintf(out, "    %s\n", name)
		}
		return nil
	}

	fn, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, fn.Usage())
	return nil
}
