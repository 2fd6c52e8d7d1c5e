// Package wenyan is the stable façade embedders and the cmd/wenyan CLI
// build on: compile a source file down through preprocessing, parsing,
// and lowering, then run the resulting program graph. It mirrors go-dws's
// cmd/dwscript commands calling straight into internal/lexer,
// internal/parser, and internal/interp rather than duplicating their
// logic at the CLI layer.
package wenyan

import (
	"io"

	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/graph"
	"github.com/tcztzy/wenyan-go/internal/lexer"
	"github.com/tcztzy/wenyan-go/internal/lowering"
	"github.com/tcztzy/wenyan-go/internal/preprocessor"
	"github.com/tcztzy/wenyan-go/internal/runtime"
)

// Tokenize expands filename's macros and lexes the result, for the
// --tokens CLI diagnostic: it reports the tokens the parser actually
// consumes, not the raw pre-macro source.
func Tokenize(filename, src string) ([]lexer.Token, error) {
	env := preprocessor.NewEnvironment()
	expanded, err := env.ExpandedSource(filename, src)
	if err != nil {
		return nil, err
	}
	return lexer.New(expanded).Tokenize()
}

// ParseAST preprocesses (macro expansion, import splicing) and parses
// filename's source, for the --wyast CLI diagnostic.
func ParseAST(filename, src string) (*ast.Program, error) {
	return preprocessor.NewEnvironment().Compile(filename, src)
}

// Compile preprocesses, parses, and lowers filename's source into a
// runnable program graph, for the --pyast CLI diagnostic and for Run.
func Compile(filename, src string) (*graph.Program, error) {
	prog, err := ParseAST(filename, src)
	if err != nil {
		return nil, err
	}
	return lowering.Lower(prog), nil
}

// Run executes a lowered program graph, writing Print output to out.
// noOutputHanzi selects the reference-CLI-compatible list-formatting mode
// (spec §6 "--no-outputHanzi").
func Run(prog *graph.Program, out io.Writer, noOutputHanzi bool) error {
	return runtime.New(out, noOutputHanzi).Run(prog)
}

// RunSource is the convenience entry point cmd/wenyan's default (no
// subcommand) path uses: compile filename's source and run it in one
// call.
func RunSource(filename, src string, out io.Writer, noOutputHanzi bool) error {
	prog, err := Compile(filename, src)
	if err != nil {
		return err
	}
	return Run(prog, out, noOutputHanzi)
}
