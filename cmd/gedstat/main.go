// gedstat inspects GEDCOM files from the command line: document
// statistics, record rendering, and kinship queries.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagStrict bool
)

func main() {
	root := &cobra.Command{
		Use:           "gedstat",
		Short:         "Inspect GEDCOM files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: text or yaml")
	root.PersistentFlags().BoolVar(&flagStrict, "strict", false, "fail on any parse warning")

	root.AddCommand(newStatsCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newRelativesCmd())
	root.AddCommand(newDegreeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
