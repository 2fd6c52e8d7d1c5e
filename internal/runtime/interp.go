package runtime

import (
	"io"

	"github.com/tcztzy/wenyan-go/internal/graph"
)

// Machine bundles the mutable state a lowered program graph executes
// against: the current procedure's __stack, the process-wide __negIdx
// table, the root lexical scope, and the writer Print emits to (spec §5
// "The runtime's __stack and __negIdx are per-program globals").
type Machine struct {
	Stack         *Stack
	NegIdx        *NegIdx
	Global        *Env
	Output        io.Writer
	NoOutputHanzi bool
}

// New creates a Machine with a fresh root scope and global stack, writing
// to out. NoOutputHanzi selects compatibility-mode list formatting (spec
// §6 "--no-outputHanzi: Enable compatibility formatting").
func New(out io.Writer, noOutputHanzi bool) *Machine {
	return &Machine{
		Stack:         NewStack(),
		NegIdx:        NewNegIdx(),
		Global:        NewEnv(nil),
		Output:        out,
		NoOutputHanzi: noOutputHanzi,
	}
}

// Run executes a lowered program's top-level statements in the root
// scope. A stray Return/Break/Continue escaping the top level is not
// possible for a well-lowered program; if one occurs it silently ends the
// run (the remaining top-level statements are skipped) rather than
// panicking, so a malformed graph fails softly.
func (rt *Machine) Run(prog *graph.Program) error {
	_, _, err := rt.execStmts(prog.Statements, rt.Global)
	return err
}
