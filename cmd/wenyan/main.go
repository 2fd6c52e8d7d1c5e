// Command wenyan is the wenyan-go CLI: compile and run Wenyan source files,
// or inspect the stages in between (tokens, AST, lowered program graph).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tcztzy/wenyan-go/cmd/wenyan/cmd"
)

// silenced is implemented by cmd's errSilent: an error already printed to
// stderr in its final form, so main must not print it again.
type silenced interface{ Silenced() bool }

func main() {
	os.Exit(run())
}

func run() int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if s, ok := err.(silenced); ok && s.Silenced() {
		return 1
	}
	if isUnknownOption(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

// isUnknownOption reports whether err is one of cobra's own flag/command
// parsing failures (spec §6 exit code 2, "unknown CLI option"), as opposed
// to a grammar fault or file-read error in the source being compiled (exit
// code 1). Cobra doesn't export a distinct error type for these, so they
// are recognized by the fixed message prefixes it always uses.
func isUnknownOption(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown flag:", "unknown shorthand flag:", "unknown command"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
