// Command siqtool inspects, unpacks, creates and repacks SIQ trivia packages.
package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand shares.
type app struct {
	out     io.Writer
	verbose bool
	logger  *log.Logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout}

	cmd := &cobra.Command{
		Use:   "siqtool",
		Short: "Work with SIQ trivia packages",
		Long: `siqtool reads and writes SIQ trivia packages.

Examples:
  siqtool inspect quiz.siq
  siqtool unpack quiz.siq --out quiz
  siqtool new quiz.siq --name "Friday Quiz" --rounds 3 --themes 6
  siqtool repack old.siq new.siq --compression zstd`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			a.logger = log.NewWithOptions(stderr, log.Options{Prefix: "siqtool", Level: level})
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every member read or written")

	cmd.AddCommand(
		newInspectCommand(a),
		newUnpackCommand(a),
		newNewCommand(a),
		newRepackCommand(a),
	)
	return cmd
}
