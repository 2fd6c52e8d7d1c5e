package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	noOutputHanzi bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "wenyan",
	Short: "Wenyan compiler and runtime",
	Long: `wenyan-go is a Go implementation of the Wenyan classical-Chinese
programming language: a tokenizer, a recursive-descent parser, a macro
and import preprocessor, a lowering pass to a host-agnostic program
graph, and a stack-based runtime.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSource,
}

// Execute runs the root command. main maps its returned error to spec §6's
// exit codes: unknown-flag/unknown-command errors from cobra's own parsing
// get 2, everything else (including an already-printed errSilent) gets 1.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Errors are printed by runSource (in the exact §6 GrammarFault format)
	// or by main (everything else); cobra's own default printing would
	// duplicate one of the two.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().BoolVar(&noOutputHanzi, "no-outputHanzi", false, "enable reference-CLI-compatible list formatting")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// readInput returns a source file's content plus the filename to report
// in diagnostics, reading stdin for the "-" path (spec §6 "<path> or -
// (stdin)").
func readInput(args []string) (src, filename string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			return "", "", rerr
		}
		return string(data), "<stdin>", nil
	}
	data, rerr := os.ReadFile(args[0])
	if rerr != nil {
		return "", "", rerr
	}
	return string(data), args[0], nil
}
