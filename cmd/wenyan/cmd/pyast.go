package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tcztzy/wenyan-go/internal/graph"
	"github.com/tcztzy/wenyan-go/pkg/wenyan"
)

var pyastCmd = &cobra.Command{
	Use:   "pyast [file]",
	Short: "Compile a source file and dump its lowered program graph",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPyast,
}

func init() {
	rootCmd.AddCommand(pyastCmd)
}

func runPyast(_ *cobra.Command, args []string) error {
	src, filename, err := readInput(args)
	if err != nil {
		return err
	}
	prog, err := wenyan.Compile(filename, src)
	if err != nil {
		return err
	}
	dumpGraphStmts(prog.Statements, 0)
	return nil
}

func dumpGraphStmts(stmts []graph.Stmt, indent int) {
	for _, s := range stmts {
		dumpGraphNode(s, indent)
	}
}

func dumpGraphNode(node any, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *graph.Declare:
		fmt.Printf("%sDeclare %s x%d %v\n", pad, n.TypeTag, n.Count, n.Names)
	case *graph.Assign:
		fmt.Printf("%sAssign %v\n", pad, n.Names)
	case *graph.ProcDef:
		fmt.Printf("%sProcDef %q (params=%d rest=%v globals=%v nonlocals=%v)\n",
			pad, n.Name, n.ParamCount, n.TakesRest, n.Globals, n.Nonlocals)
		dumpGraphStmts(n.Body, indent+1)
	case *graph.Call:
		fmt.Printf("%sCall\n", pad)
		dumpGraphNode(n.Callee, indent+1)
	case *graph.PipeCall:
		fmt.Printf("%sPipeCall takeCount=%d takeRest=%v\n", pad, n.TakeCount, n.TakeRest)
		dumpGraphNode(n.Callee, indent+1)
	case *graph.Return:
		fmt.Printf("%sReturn popStack=%v empty=%v\n", pad, n.PopStack, n.Empty)
		if n.Value != nil {
			dumpGraphNode(n.Value, indent+1)
		}
	case *graph.Push:
		fmt.Printf("%sPush\n", pad)
		dumpGraphNode(n.Value, indent+1)
	case *graph.Print:
		fmt.Printf("%sPrint\n", pad)
	case *graph.Clear:
		fmt.Printf("%sClear\n", pad)
	case *graph.Store:
		fmt.Printf("%sStore %q delete=%v\n", pad, n.Name, n.Delete)
	case *graph.If:
		fmt.Printf("%sIf invert=%v\n", pad, n.Invert)
		dumpGraphStmts(n.Then, indent+1)
		for _, e := range n.Elifs {
			fmt.Printf("%sElif\n", pad)
			dumpGraphStmts(e.Body, indent+1)
		}
		if n.Else != nil {
			fmt.Printf("%sElse\n", pad)
			dumpGraphStmts(n.Else, indent+1)
		}
	case *graph.While:
		fmt.Printf("%sWhile\n", pad)
		dumpGraphStmts(n.Body, indent+1)
	case *graph.For:
		fmt.Printf("%sFor\n", pad)
		dumpGraphStmts(n.Body, indent+1)
	case *graph.Foreach:
		fmt.Printf("%sForeach %q\n", pad, n.Var)
		dumpGraphStmts(n.Body, indent+1)
	case *graph.Break:
		fmt.Printf("%sBreak\n", pad)
	case *graph.Continue:
		fmt.Printf("%sContinue\n", pad)
	case *graph.Try:
		fmt.Printf("%sTry\n", pad)
		dumpGraphStmts(n.Body, indent+1)
		for _, h := range n.Handlers {
			fmt.Printf("%sHandler catchAll=%v var=%q\n", pad, h.CatchAll, h.VarName)
			dumpGraphStmts(h.Body, indent+1)
		}
	case *graph.Raise:
		fmt.Printf("%sRaise\n", pad)
	case *graph.Append:
		fmt.Printf("%sAppend\n", pad)
	case *graph.Concat:
		fmt.Printf("%sConcat\n", pad)
	case *graph.ObjectDef:
		fmt.Printf("%sObjectDef %q\n", pad, n.Name)
	case *graph.BinOp:
		fmt.Printf("%sBinOp %q\n", pad, n.Op)
		dumpGraphNode(n.Lhs, indent+1)
		dumpGraphNode(n.Rhs, indent+1)
	case *graph.Not:
		fmt.Printf("%sNot\n", pad)
		dumpGraphNode(n.Value, indent+1)
	case *graph.Index:
		fmt.Printf("%sIndex\n", pad)
		dumpGraphNode(n.Container, indent+1)
		dumpGraphNode(n.IndexVal, indent+1)
	case *graph.Length:
		fmt.Printf("%sLength\n", pad)
		dumpGraphNode(n.Container, indent+1)
	case *graph.Membership:
		fmt.Printf("%sMembership negate=%v\n", pad, n.Negate)
	case *graph.Name:
		fmt.Printf("%sName %q\n", pad, n.Ident)
	case *graph.String:
		fmt.Printf("%sString %q\n", pad, n.Value)
	case *graph.Number:
		fmt.Printf("%sNumber %s\n", pad, n.Value.RatString())
	case *graph.Bool:
		fmt.Printf("%sBool %v\n", pad, n.Value)
	case *graph.Self:
		fmt.Printf("%sSelf\n", pad)
	case *graph.RestValue:
		fmt.Printf("%sRestValue\n", pad)
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
