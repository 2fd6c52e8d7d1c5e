package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tcztzy/wenyan-go/internal/errors"
	"github.com/tcztzy/wenyan-go/pkg/wenyan"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run a Wenyan source file",
	Long: `Compile and run one Wenyan source file.

Examples:
  wenyan run greet.wy
  wenyan run --no-outputHanzi list.wy
  cat greet.wy | wenyan run -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSource,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runSource is also the root command's default action, so that `wenyan
// file.wy` works without an explicit `run` subcommand (spec §6 "<path> or
// - (stdin): Compile and run one or more sources").
func runSource(_ *cobra.Command, args []string) error {
	src, filename, err := readInput(args)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Running: %s\n", filename)
	}
	if err := wenyan.RunSource(filename, src, os.Stdout, noOutputHanzi); err != nil {
		if gf, ok := err.(*errors.GrammarFault); ok {
			fmt.Fprint(os.Stderr, gf.Format())
			return errSilent{err}
		}
		return err
	}
	return nil
}

// errSilent marks an error already printed to stderr in the exact §6
// format, so main doesn't print it a second time via cobra's default
// error reporting.
type errSilent struct{ err error }

func (e errSilent) Error() string { return e.err.Error() }
func (e errSilent) Unwrap() error { return e.err }

// Silenced marks e as already reported to stderr, for main's exit-code
// dispatch to recognize without needing cmd's unexported type.
func (e errSilent) Silenced() bool { return true }
