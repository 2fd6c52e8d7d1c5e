package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/pkg/wenyan"
)

var wyastCmd = &cobra.Command{
	Use:   "wyast [file]",
	Short: "Preprocess and parse a source file, then dump its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWyast,
}

func init() {
	rootCmd.AddCommand(wyastCmd)
}

func runWyast(_ *cobra.Command, args []string) error {
	src, filename, err := readInput(args)
	if err != nil {
		return err
	}
	prog, err := wenyan.ParseAST(filename, src)
	if err != nil {
		return err
	}
	dumpAstStmts(prog.Statements, 0)
	return nil
}

func dumpAstStmts(stmts []ast.Stmt, indent int) {
	for _, s := range stmts {
		dumpAstNode(s, indent)
	}
}

func dumpAstNode(node any, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *ast.Declare:
		fmt.Printf("%sDeclare %s x%s %v\n", pad, n.TypeTag, n.Count, n.Names)
	case *ast.Assign:
		fmt.Printf("%sAssign %v\n", pad, n.Names)
	case *ast.ProcDef:
		fmt.Printf("%sProcDef %q (%d params, rest=%v)\n", pad, n.Name, len(n.Params), n.Rest != nil)
		dumpAstStmts(n.Body, indent+1)
	case *ast.Call:
		fmt.Printf("%sCall\n", pad)
		dumpAstNode(n.Callee, indent+1)
	case *ast.PipeCall:
		fmt.Printf("%sPipeCall\n", pad)
		dumpAstNode(n.Callee, indent+1)
	case *ast.Take:
		fmt.Printf("%sTake rest=%v\n", pad, n.Rest)
	case *ast.Return:
		fmt.Printf("%sReturn popStack=%v empty=%v\n", pad, n.PopStack, n.Empty)
		if n.Value != nil {
			dumpAstNode(n.Value, indent+1)
		}
	case *ast.Push:
		fmt.Printf("%sPush\n", pad)
		dumpAstNode(n.Value, indent+1)
	case *ast.Print:
		fmt.Printf("%sPrint\n", pad)
	case *ast.Clear:
		fmt.Printf("%sClear\n", pad)
	case *ast.Store:
		fmt.Printf("%sStore %q delete=%v\n", pad, n.Name, n.Delete)
	case *ast.Import:
		fmt.Printf("%sImport %q %v\n", pad, n.Module, n.Exposed)
	case *ast.Comment:
		fmt.Printf("%sComment %q\n", pad, n.Text)
	case *ast.BinOp:
		fmt.Printf("%sBinOp %q\n", pad, n.Op)
		dumpAstNode(n.Lhs, indent+1)
		dumpAstNode(n.Rhs, indent+1)
	case *ast.Not:
		fmt.Printf("%sNot\n", pad)
		dumpAstNode(n.Value, indent+1)
	case *ast.Index:
		fmt.Printf("%sIndex\n", pad)
		dumpAstNode(n.Container, indent+1)
		dumpAstNode(n.IndexVal, indent+1)
	case *ast.Length:
		fmt.Printf("%sLength\n", pad)
		dumpAstNode(n.Container, indent+1)
	case *ast.Name:
		fmt.Printf("%sName %q\n", pad, n.Ident)
	case *ast.String:
		fmt.Printf("%sString %q\n", pad, n.Value)
	case *ast.Number:
		fmt.Printf("%sNumber %s\n", pad, n.Decimal)
	case *ast.Bool:
		fmt.Printf("%sBool %v\n", pad, n.Value)
	case *ast.Self:
		fmt.Printf("%sSelf\n", pad)
	case *ast.Rest:
		fmt.Printf("%sRest\n", pad)
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
