// Package semantic implements the Wenyan scope analyzer (spec §4.5): for
// every procedure, the set of names it assigns that resolve to the global
// (top-level) scope versus an enclosing non-top procedure's scope.
//
// internal/runtime executes the lowered program graph with ordinary
// lexical closures: a procedure call opens one environment frame (chained
// to its defining environment) shared by every nested if/while/for/try
// block, exactly like Wenyan's own non-block-scoped binding model. Under
// that model, a write-through Store that doesn't find an existing binding
// anywhere in the chain lands in the root frame on its own — which is
// precisely the spec's definition of "global" — so the sets this package
// computes are not required for correctness of evaluation. They are still
// computed and attached to each lowered ProcDef (internal/graph.ProcDef's
// Globals/Nonlocals fields) because the lowering pass is specified to
// "emit the appropriate scope declarations at procedure entry" (spec
// §4.5) and because the --pyast introspection dump shows them.
package semantic

import (
	"sort"

	"github.com/tcztzy/wenyan-go/internal/ast"
)

// Info is one procedure's computed scope classification.
type Info struct {
	Globals   []string
	Nonlocals []string
}

// frame tracks one lexical scope during the walk: the top-level frame has
// isProc false and never gets an Info entry.
type frame struct {
	isProc   bool
	bound    map[string]bool
	assigned map[string]bool
}

func newFrame(isProc bool) *frame {
	return &frame{isProc: isProc, bound: map[string]bool{}, assigned: map[string]bool{}}
}

// analyzer threads the frame stack through the recursive statement/value
// walk, grounded on go-dws's internal/semantic.Analyzer walking the AST
// once and recording results keyed by node identity.
type analyzer struct {
	frames []*frame
	info   map[*ast.ProcDef]*Info
}

// Analyze walks prog and returns a map keyed by ProcDef node identity, per
// spec §4.5 "The analyzer's output is a map keyed by ProcDef node identity."
func Analyze(prog *ast.Program) map[*ast.ProcDef]*Info {
	a := &analyzer{frames: []*frame{newFrame(false)}, info: map[*ast.ProcDef]*Info{}}
	a.walkStmts(prog.Statements)
	return a.info
}

func (a *analyzer) top() *frame { return a.frames[len(a.frames)-1] }

func (a *analyzer) bindLocal(name string) {
	if name == "" {
		return
	}
	a.top().bound[name] = true
}

func (a *analyzer) markAssigned(name string) {
	if name == "" {
		return
	}
	if f := a.top(); f.isProc {
		f.assigned[name] = true
	}
}

func (a *analyzer) walkStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.walkStmt(s)
	}
}

func (a *analyzer) walkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Declare:
		for _, v := range n.Inits {
			a.walkValue(v)
		}
		for _, nm := range n.Names {
			a.bindLocal(nm)
			a.markAssigned(nm)
		}
	case *ast.Assign:
		for _, nm := range n.Names {
			a.bindLocal(nm)
			a.markAssigned(nm)
		}
	case *ast.ObjectDef:
		a.bindLocal(n.Name)
		a.markAssigned(n.Name)
		for _, p := range n.Props {
			a.walkValue(p.Value)
		}
	case *ast.ProcDef:
		a.bindLocal(n.Name)
		a.markAssigned(n.Name)
		a.enterProc(n)
	case *ast.Call:
		a.walkValue(n.Callee)
		for _, arg := range n.Args {
			a.walkValue(arg)
		}
	case *ast.PipeCall:
		a.walkValue(n.Callee)
	case *ast.Return:
		if n.Value != nil {
			a.walkValue(n.Value)
		}
	case *ast.Append:
		a.walkValue(n.Target)
		for _, v := range n.Values {
			a.walkValue(v)
		}
	case *ast.Concat:
		a.walkValue(n.Target)
		for _, v := range n.Lists {
			a.walkValue(v)
		}
	case *ast.Push:
		a.walkValue(n.Value)
	case *ast.BinOp:
		a.walkValue(n.Lhs)
		a.walkValue(n.Rhs)
	case *ast.Not:
		a.walkValue(n.Value)
	case *ast.Index:
		a.walkValue(n.Container)
		a.walkValue(n.IndexVal)
	case *ast.Length:
		a.walkValue(n.Container)
	case *ast.Store:
		a.walkValue(n.LhsIdx)
		a.walkValue(n.Rhs)
		a.walkValue(n.RhsIdx)
		if n.LhsIdx == nil {
			a.markAssigned(n.Name)
		}
	case *ast.If:
		a.walkCond(n.Cond)
		a.walkStmts(n.Then)
		for _, e := range n.Elifs {
			a.walkCond(e.Cond)
			a.walkStmts(e.Body)
		}
		a.walkStmts(n.Else)
	case *ast.While:
		a.walkStmts(n.Body)
	case *ast.For:
		a.walkValue(n.Count)
		a.walkStmts(n.Body)
	case *ast.Foreach:
		a.walkValue(n.Container)
		a.bindLocal(n.Var)
		a.markAssigned(n.Var)
		a.walkStmts(n.Body)
	case *ast.Try:
		a.walkStmts(n.Body)
		for _, h := range n.Handlers {
			if h.Name != nil {
				a.walkValue(h.Name)
			}
			if h.VarName != "" {
				a.bindLocal(h.VarName)
				a.markAssigned(h.VarName)
			}
			a.walkStmts(h.Body)
		}
	case *ast.Raise:
		a.walkValue(n.Name)
		if n.Msg != nil {
			a.walkValue(n.Msg)
		}
	}
}

// enterProc pushes a fresh procedure frame seeded with the parameter
// names, walks the body, and resolves the frame's assigned-but-not-local
// names into globals/nonlocals per spec §4.5's two definitions.
func (a *analyzer) enterProc(def *ast.ProcDef) {
	f := newFrame(true)
	for _, p := range def.Params {
		f.bound[p.Name] = true
	}
	if def.Rest != nil {
		f.bound[def.Rest.Name] = true
	}
	a.frames = append(a.frames, f)
	a.walkStmts(def.Body)

	var globals, nonlocals []string
	for name := range f.assigned {
		if f.bound[name] {
			continue
		}
		if a.boundInEnclosingProc(name) {
			nonlocals = append(nonlocals, name)
		} else {
			globals = append(globals, name)
		}
	}
	sort.Strings(globals)
	sort.Strings(nonlocals)
	a.info[def] = &Info{Globals: globals, Nonlocals: nonlocals}

	a.frames = a.frames[:len(a.frames)-1]
}

// boundInEnclosingProc reports whether name is bound in any enclosing
// frame that is itself a (non-top) procedure, excluding the frame just
// pushed for the procedure currently being walked.
func (a *analyzer) boundInEnclosingProc(name string) bool {
	for i := len(a.frames) - 2; i >= 1; i-- {
		if a.frames[i].bound[name] {
			return true
		}
	}
	return false
}

func (a *analyzer) walkValue(v ast.Value) {
	switch n := v.(type) {
	case nil:
	case *ast.BinOp:
		a.walkValue(n.Lhs)
		a.walkValue(n.Rhs)
	case *ast.Not:
		a.walkValue(n.Value)
	case *ast.Index:
		a.walkValue(n.Container)
		a.walkValue(n.IndexVal)
	case *ast.Length:
		a.walkValue(n.Container)
	case *ast.Membership:
		a.walkValue(n.Container)
		a.walkValue(n.Item)
	}
}

func (a *analyzer) walkCond(c ast.CondExpr) {
	switch n := c.(type) {
	case nil:
	case *ast.CondAtom:
		a.walkValue(n.Value)
		a.walkValue(n.Index)
	case *ast.CondCompare:
		a.walkCond(n.Left)
		a.walkCond(n.Right)
	case *ast.CondLogic:
		a.walkCond(n.Left)
		a.walkCond(n.Right)
	}
}
