// Package preprocessor implements the Wenyan macro expander and import
// resolver that sits between the lexer and the parser (spec §4.3): it
// collects 或云/蓋謂 macro rules (including those pulled in transitively by
// 吾嘗觀 imports), expands them across the raw source text, and then
// splices each import's compiled statements into the importing program.
package preprocessor

import (
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/errors"
	"github.com/tcztzy/wenyan-go/internal/lexer"
	"github.com/tcztzy/wenyan-go/internal/parser"
)

// Environment caches per-module work across a single compile so that a
// diamond of imports reads and compiles each module exactly once, and
// tracks the two disjoint in-progress sets spec §4.3's cycle-safety rule
// requires: one for macro collection, one for import splicing ("lowering"
// in the spec's own wording for this step).
type Environment struct {
	LibRoot string

	macroInProgress map[string]bool
	lowerInProgress map[string]bool
	macroCache      map[string][]MacroDef
	programCache    map[string]*ast.Program
	sourceCache     map[string]string
}

// NewEnvironment returns a ready-to-use Environment. A fresh Environment
// should be used per top-level Compile call so caches don't leak between
// unrelated compilations.
func NewEnvironment() *Environment {
	return &Environment{
		macroInProgress: map[string]bool{},
		lowerInProgress: map[string]bool{},
		macroCache:      map[string][]MacroDef{},
		programCache:    map[string]*ast.Program{},
		sourceCache:     map[string]string{},
	}
}

// Compile expands filename's macros (and those of every module it
// transitively imports), parses the result, and splices each import's
// exposed statements into the returned program.
func (e *Environment) Compile(filename, src string) (*ast.Program, error) {
	src = norm.NFC.String(src)
	path := filepath.Clean(filename)
	e.sourceCache[path] = src

	macros, err := e.collectMacros(filepath.Dir(path), path, src)
	if err != nil {
		return nil, e.resolve(filename, src, err)
	}

	expanded := ExpandMacros(macros, src)
	prog, err := parser.Parse(filename, expanded)
	if err != nil {
		return nil, err
	}

	stmts, err := e.spliceImports(filepath.Dir(path), prog.Statements)
	if err != nil {
		return nil, e.resolve(filename, expanded, err)
	}
	return ast.NewProgram(prog.Span(), stmts), nil
}

// ExpandedSource runs macro collection and expansion only, without
// parsing or import-splicing, for tooling that wants to see exactly what
// text the parser will consume (e.g. a --tokens diagnostic).
func (e *Environment) ExpandedSource(filename, src string) (string, error) {
	src = norm.NFC.String(src)
	path := filepath.Clean(filename)
	e.sourceCache[path] = src
	macros, err := e.collectMacros(filepath.Dir(path), path, src)
	if err != nil {
		return "", e.resolve(filename, src, err)
	}
	return ExpandMacros(macros, src), nil
}

// resolve turns a scanFault (byte offset only) into a full GrammarFault
// anchored in src, and passes already-resolved errors through unchanged.
func (e *Environment) resolve(filename, src string, err error) error {
	sf, ok := err.(*scanFault)
	if !ok {
		return err
	}
	l := lexer.New(src)
	line, col, lineText := l.LineCol(sf.Pos)
	return errors.New(filename, line, col, lineText, sf.Message)
}

// collectMacros returns every macro visible at path: its own 或云
// definitions plus, in declaration order, every macro belonging to a module
// it imports (spec §4.3: "吾嘗觀 pulls a module's macros").
func (e *Environment) collectMacros(dir, path, src string) ([]MacroDef, error) {
	if cached, ok := e.macroCache[path]; ok {
		return cached, nil
	}
	if e.macroInProgress[path] {
		return nil, faultAt(0, "循環匯入")
	}
	e.macroInProgress[path] = true
	defer delete(e.macroInProgress, path)

	directives, err := scanDirectives(src)
	if err != nil {
		return nil, err
	}

	var macros []MacroDef
	for _, d := range directives {
		switch d.Kind {
		case macroDirective:
			macros = append(macros, MacroDef{Pattern: d.Pattern, Replacement: d.Replacement})
		case importDirective:
			modDir, modPath, rerr := resolveModule(dir, d.Module, e.LibRoot)
			if rerr != nil {
				return nil, faultAt(d.Pos, rerr.Error())
			}
			modSrc, rerr := e.readSource(modPath)
			if rerr != nil {
				return nil, faultAt(d.Pos, "匯入之書不見")
			}
			modMacros, merr := e.collectMacros(modDir, modPath, modSrc)
			if merr != nil {
				if sf, ok := merr.(*scanFault); ok {
					return nil, faultAt(d.Pos, sf.Message)
				}
				return nil, merr
			}
			macros = append(macros, modMacros...)
		}
	}

	e.macroCache[path] = macros
	return macros, nil
}

// spliceImports replaces each *ast.Import statement with the (optionally
// name-filtered) top-level statements of the compiled module it names.
func (e *Environment) spliceImports(dir string, stmts []ast.Stmt) ([]ast.Stmt, error) {
	var out []ast.Stmt
	for _, s := range stmts {
		imp, ok := s.(*ast.Import)
		if !ok {
			out = append(out, s)
			continue
		}
		modProg, err := e.compileModule(dir, imp.Module)
		if err != nil {
			return nil, err
		}
		out = append(out, filterExposed(runtimeStatements(modProg.Statements), imp.Exposed)...)
	}
	return out, nil
}

// compileModule fully compiles (macros expanded, imports spliced) the
// module named by name as seen from dir, caching the result by resolved
// path so diamond imports are compiled once.
func (e *Environment) compileModule(dir, name string) (*ast.Program, error) {
	_, modPath, err := resolveModule(dir, name, e.LibRoot)
	if err != nil {
		return nil, err
	}
	if cached, ok := e.programCache[modPath]; ok {
		return cached, nil
	}
	if e.lowerInProgress[modPath] {
		return nil, faultAt(0, "循環匯入")
	}
	e.lowerInProgress[modPath] = true
	defer delete(e.lowerInProgress, modPath)

	src, err := e.readSource(modPath)
	if err != nil {
		return nil, err
	}
	prog, err := e.Compile(modPath, src)
	if err != nil {
		return nil, err
	}
	e.programCache[modPath] = prog
	return prog, nil
}

func (e *Environment) readSource(path string) (string, error) {
	if src, ok := e.sourceCache[path]; ok {
		return src, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	src := string(data)
	e.sourceCache[path] = src
	return src, nil
}

// runtimeStatements drops the preprocessor-only node kinds (macro
// definitions, already expanded, and source comments) that a module's own
// parse still carries, since spec §4.3 says an import pulls a module's
// macros "and later its emitted statements" — not its macro definitions
// themselves.
func runtimeStatements(stmts []ast.Stmt) []ast.Stmt {
	var out []ast.Stmt
	for _, s := range stmts {
		switch s.(type) {
		case *ast.Macro, *ast.Comment:
			continue
		}
		out = append(out, s)
	}
	return out
}

// filterExposed keeps every top-level statement when exposed is empty;
// otherwise it keeps the declarations of the listed names plus every
// statement that is not a Declare, ProcDef or ObjectDef (spec §4.3:
// "方悟 <name>…之義 re-exposes the listed names").
func filterExposed(stmts []ast.Stmt, exposed []string) []ast.Stmt {
	if len(exposed) == 0 {
		return stmts
	}
	want := map[string]bool{}
	for _, n := range exposed {
		want[n] = true
	}
	var out []ast.Stmt
	for _, s := range stmts {
		if name, ok := declaredName(s); ok && want[name] {
			out = append(out, s)
			continue
		}
		if _, ok := s.(*ast.Declare); !ok {
			if _, ok := s.(*ast.ProcDef); !ok {
				if _, ok := s.(*ast.ObjectDef); !ok {
					// Side-effecting top-level statements (macro-expanded
					// setup code with no name to expose) always run.
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func declaredName(s ast.Stmt) (string, bool) {
	switch n := s.(type) {
	case *ast.ProcDef:
		return n.Name, true
	case *ast.ObjectDef:
		return n.Name, true
	case *ast.Declare:
		if len(n.Names) == 1 {
			return n.Names[0], true
		}
	}
	return "", false
}
