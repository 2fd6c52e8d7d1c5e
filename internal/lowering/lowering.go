// Package lowering turns a parsed, import-spliced Wenyan ast.Program into
// the host-agnostic internal/graph program the runtime executes (spec §3
// "Lowering pass", §4.6). It mirrors informatter-nilan's split between a
// compiler package and the vm that runs its output: this package only
// builds graph nodes, it never evaluates anything itself.
package lowering

import (
	"fmt"
	"math/big"

	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/graph"
	"github.com/tcztzy/wenyan-go/internal/semantic"
)

// Lower compiles prog into a program graph. prog must already have its
// imports spliced in by the preprocessor; lowering does not resolve
// 吾嘗觀 itself.
func Lower(prog *ast.Program) *graph.Program {
	infos := semantic.Analyze(prog)
	return &graph.Program{Statements: lowerStmts(prog.Statements, infos)}
}

func lowerStmts(stmts []ast.Stmt, infos map[*ast.ProcDef]*semantic.Info) []graph.Stmt {
	out := make([]graph.Stmt, 0, len(stmts))
	for i := 0; i < len(stmts); i++ {
		switch n := stmts[i].(type) {
		case *ast.Comment, *ast.Macro, *ast.Import:
			// Preprocessor-only bookkeeping: comments are prose, macros are
			// already expanded into source text, and imports are already
			// spliced into their importing statement list by the time
			// lowering runs.
			continue

		case *ast.Take:
			// A Take is only ever immediately followed by its PipeCall
			// (spec §4.4's pending-take protocol, enforced by the parser),
			// so the two fuse into one graph.PipeCall here.
			pc, ok := stmts[i+1].(*ast.PipeCall)
			if !ok {
				panic("lowering: Take not followed by PipeCall")
			}
			out = append(out, &graph.PipeCall{
				Callee:    lowerValue(pc.Callee),
				TakeCount: takeCount(n),
				TakeRest:  n.Rest,
			})
			i++

		case *ast.PipeCall:
			panic("lowering: PipeCall without a preceding Take")

		case *ast.Declare:
			out = append(out, lowerDeclare(n))
			// Initial values with no name to bind stay on the stack, like
			// any other unconsumed value (吾有一言。曰「「…」」。書之。).
			for j := len(n.Names); j < len(n.Inits); j++ {
				out = append(out, &graph.Push{Value: lowerValue(n.Inits[j])})
			}

		case *ast.Assign:
			out = append(out, &graph.Assign{Names: n.Names})

		case *ast.ProcDef:
			out = append(out, lowerProcDef(n, infos))

		case *ast.Call:
			out = append(out, &graph.Call{Callee: lowerValue(n.Callee), Args: lowerValues(n.Args)})

		case *ast.Return:
			out = append(out, &graph.Return{Value: lowerValueMaybe(n.Value), PopStack: n.PopStack, Empty: n.Empty})

		case *ast.Append:
			out = append(out, &graph.Append{Target: lowerValue(n.Target), Values: lowerValues(n.Values)})

		case *ast.Concat:
			out = append(out, &graph.Concat{Target: lowerValue(n.Target), Lists: lowerValues(n.Lists)})

		case *ast.ObjectDef:
			out = append(out, lowerObjectDef(n))

		case *ast.Print:
			out = append(out, &graph.Print{})

		case *ast.Clear:
			out = append(out, &graph.Clear{})

		case *ast.Push:
			out = append(out, &graph.Push{Value: lowerValue(n.Value)})

		case *ast.Store:
			out = append(out, lowerStore(n))

		case *ast.If:
			out = append(out, lowerIf(n, infos))

		case *ast.While:
			out = append(out, &graph.While{Body: lowerStmts(n.Body, infos)})

		case *ast.For:
			out = append(out, &graph.For{Count: lowerValue(n.Count), Body: lowerStmts(n.Body, infos)})

		case *ast.Foreach:
			out = append(out, &graph.Foreach{Container: lowerValue(n.Container), Var: n.Var, Body: lowerStmts(n.Body, infos)})

		case *ast.Break:
			out = append(out, &graph.Break{})

		case *ast.Continue:
			out = append(out, &graph.Continue{})

		case *ast.Try:
			out = append(out, lowerTry(n, infos))

		case *ast.Raise:
			out = append(out, &graph.Raise{Name: lowerValue(n.Name), Msg: lowerValueMaybe(n.Msg)})

		default:
			// BinOp, Not, Index, Length double as both Value and
			// Stmt: used bare at statement level they are an unconsumed
			// expression, which the stack discipline rule pushes (spec §3
			// "Every Value appearing as an expression lowers to
			// __stack.append(<expr>) unless it is consumed in place").
			v, ok := stmts[i].(ast.Value)
			if !ok {
				panic(fmt.Sprintf("lowering: unhandled statement node %T", stmts[i]))
			}
			out = append(out, &graph.Push{Value: lowerValue(v)})
		}
	}
	return out
}

func takeCount(t *ast.Take) int {
	if t.Count == nil {
		return 0
	}
	return *t.Count
}

func lowerValues(vs []ast.Value) []graph.Expr {
	out := make([]graph.Expr, len(vs))
	for i, v := range vs {
		out[i] = lowerValue(v)
	}
	return out
}

func lowerValueMaybe(v ast.Value) graph.Expr {
	if v == nil {
		return nil
	}
	return lowerValue(v)
}

func lowerValue(v ast.Value) graph.Expr {
	switch n := v.(type) {
	case *ast.Name:
		return &graph.Name{Ident: n.Ident}
	case *ast.String:
		return &graph.String{Value: n.Value}
	case *ast.Number:
		return &graph.Number{Value: parseDecimal(n.Decimal)}
	case *ast.Bool:
		return &graph.Bool{Value: n.Value}
	case *ast.Self:
		return &graph.Self{}
	case *ast.Rest:
		return &graph.RestValue{}
	case *ast.BinOp:
		return &graph.BinOp{Op: n.Op, Lhs: lowerValue(n.Lhs), Rhs: lowerValue(n.Rhs)}
	case *ast.Not:
		return &graph.Not{Value: lowerValue(n.Value)}
	case *ast.Index:
		return &graph.Index{Container: lowerValue(n.Container), IndexVal: lowerValue(n.IndexVal)}
	case *ast.Length:
		return &graph.Length{Container: lowerValue(n.Container)}
	case *ast.Membership:
		return &graph.Membership{Container: lowerValue(n.Container), Item: lowerValue(n.Item), Negate: n.Negate}
	}
	panic(fmt.Sprintf("lowering: unhandled value node %T", v))
}

// parseDecimal parses a numeral decoder's canonical decimal string (spec
// §4.1) into an exact rational; the decoder guarantees a well-formed
// literal, so a parse failure here means the decoder itself is broken.
func parseDecimal(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("lowering: malformed decoded numeral " + s)
	}
	return r
}

func lowerDeclare(n *ast.Declare) *graph.Declare {
	count := parseDecimal(n.Count)
	return &graph.Declare{
		Count:   int(count.Num().Int64()),
		TypeTag: n.TypeTag,
		Inits:   lowerValues(n.Inits),
		Names:   n.Names,
		Public:  n.Public,
	}
}

func lowerObjectDef(n *ast.ObjectDef) *graph.ObjectDef {
	props := make([]graph.ObjectProp, len(n.Props))
	for i, p := range n.Props {
		props[i] = graph.ObjectProp{Key: p.Key, Value: lowerValue(p.Value)}
	}
	return &graph.ObjectDef{Name: n.Name, Props: props}
}

func lowerStore(n *ast.Store) *graph.Store {
	return &graph.Store{
		Name:   n.Name,
		LhsIdx: lowerValueMaybe(n.LhsIdx),
		Rhs:    lowerValueMaybe(n.Rhs),
		RhsIdx: lowerValueMaybe(n.RhsIdx),
		Delete: n.Delete,
	}
}

func lowerIf(n *ast.If, infos map[*ast.ProcDef]*semantic.Info) *graph.If {
	elifs := make([]graph.Elif, len(n.Elifs))
	for i, e := range n.Elifs {
		elifs[i] = graph.Elif{Cond: lowerCond(e.Cond), Body: lowerStmts(e.Body, infos)}
	}
	return &graph.If{
		Cond:   lowerCond(n.Cond),
		Invert: n.Invert,
		Then:   lowerStmts(n.Then, infos),
		Elifs:  elifs,
		Else:   lowerStmts(n.Else, infos),
	}
}

func lowerCond(c ast.CondExpr) graph.CondExpr {
	switch n := c.(type) {
	case *ast.CondAtom:
		return &graph.CondAtom{Value: lowerValue(n.Value), Index: lowerValueMaybe(n.Index), IsLength: n.IsLength}
	case *ast.CondCompare:
		left := lowerCond(n.Left).(*graph.CondAtom)
		right := lowerCond(n.Right).(*graph.CondAtom)
		return &graph.CondCompare{Op: n.Op, Left: left, Right: right}
	case *ast.CondLogic:
		return &graph.CondLogic{Op: n.Op, Left: lowerCond(n.Left), Right: lowerCond(n.Right)}
	}
	panic(fmt.Sprintf("lowering: unhandled condition node %T", c))
}

func lowerTry(n *ast.Try, infos map[*ast.ProcDef]*semantic.Info) *graph.Try {
	handlers := make([]graph.Handler, len(n.Handlers))
	for i, h := range n.Handlers {
		handlers[i] = graph.Handler{
			Name:     lowerValueMaybe(h.Name),
			CatchAll: h.CatchAll,
			VarName:  h.VarName,
			Body:     lowerStmts(h.Body, infos),
		}
	}
	return &graph.Try{Body: lowerStmts(n.Body, infos), Handlers: handlers}
}

// lowerProcDef generates the variadic-wrapper metadata spec §4.6
// "Procedures" describes (ParamCount/TakesRest attached to the body so
// __invoke can apply the partial/chaining rules) and attaches the scope
// analyzer's computed sets for introspection tooling (--pyast).
func lowerProcDef(n *ast.ProcDef, infos map[*ast.ProcDef]*semantic.Info) *graph.ProcDef {
	paramNames := make([]string, len(n.Params))
	for i, p := range n.Params {
		paramNames[i] = p.Name
	}
	restName := ""
	if n.Rest != nil {
		restName = n.Rest.Name
	}
	info := infos[n]
	var globals, nonlocals []string
	if info != nil {
		globals, nonlocals = info.Globals, info.Nonlocals
	}
	return &graph.ProcDef{
		Name:       n.Name,
		ParamNames: paramNames,
		RestName:   restName,
		ParamCount: len(paramNames),
		TakesRest:  n.Rest != nil,
		Body:       lowerStmts(n.Body, infos),
		Globals:    globals,
		Nonlocals:  nonlocals,
		Public:     n.Public,
	}
}
