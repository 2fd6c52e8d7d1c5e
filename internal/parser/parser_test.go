package parser

import (
	"testing"

	"github.com/tcztzy/wenyan-go/internal/ast"
)

// Grammar shapes below are grounded on the fixture sentences in
// _examples/original_source/tests/test_bootstrap_prep.py and
// test_runtime_features.py, re-expressed against this package's own AST.

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse("t.wy", src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return prog
}

func TestParseDeclareWithInit(t *testing.T) {
	prog := mustParse(t, "吾有一數。曰一。")
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	d, ok := prog.Statements[0].(*ast.Declare)
	if !ok {
		t.Fatalf("want *ast.Declare, got %T", prog.Statements[0])
	}
	if d.Count != "1" || d.TypeTag != "數" || len(d.Inits) != 1 {
		t.Fatalf("unexpected Declare: %+v", d)
	}
	n, ok := d.Inits[0].(*ast.Number)
	if !ok || n.Decimal != "1" {
		t.Fatalf("unexpected init: %+v", d.Inits[0])
	}
}

func TestParseStandaloneAssign(t *testing.T) {
	prog := mustParse(t, "加一以二。名之曰「甲」。")
	if len(prog.Statements) != 2 {
		t.Fatalf("want 2 statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*ast.BinOp); !ok {
		t.Fatalf("want *ast.BinOp, got %T", prog.Statements[0])
	}
	a, ok := prog.Statements[1].(*ast.Assign)
	if !ok || len(a.Names) != 1 || a.Names[0] != "甲" {
		t.Fatalf("unexpected Assign: %+v", prog.Statements[1])
	}
}

func TestParseCall(t *testing.T) {
	prog := mustParse(t, "施「加」於一。於二。")
	c, ok := prog.Statements[0].(*ast.Call)
	if !ok {
		t.Fatalf("want *ast.Call, got %T", prog.Statements[0])
	}
	callee, ok := c.Callee.(*ast.Name)
	if !ok || callee.Ident != "加" {
		t.Fatalf("unexpected callee: %+v", c.Callee)
	}
	if len(c.Args) != 2 {
		t.Fatalf("want 2 args, got %d", len(c.Args))
	}
}

func TestParsePushAndReturns(t *testing.T) {
	prog := mustParse(t, "夫「甲」。乃得其。乃得矣。乃歸空無。")
	kinds := []string{}
	for _, s := range prog.Statements {
		switch s.(type) {
		case *ast.Push:
			kinds = append(kinds, "push")
		case *ast.Return:
			kinds = append(kinds, "return")
		}
	}
	if len(kinds) != 4 {
		t.Fatalf("want 4 statements, got %d: %v", len(kinds), kinds)
	}
	r1 := prog.Statements[1].(*ast.Return)
	if _, ok := r1.Value.(*ast.Self); !ok || r1.PopStack || r1.Empty {
		t.Fatalf("unexpected first return: %+v", r1)
	}
	r2 := prog.Statements[2].(*ast.Return)
	if !r2.PopStack || r2.Empty {
		t.Fatalf("unexpected second return: %+v", r2)
	}
	r3 := prog.Statements[3].(*ast.Return)
	if r3.PopStack || !r3.Empty {
		t.Fatalf("unexpected third return: %+v", r3)
	}
}

func TestParseIndexAndLength(t *testing.T) {
	prog := mustParse(t, "夫「列」之一者。夫「列」之長者。")
	idx, ok := prog.Statements[0].(*ast.Index)
	if !ok {
		t.Fatalf("want *ast.Index, got %T", prog.Statements[0])
	}
	if c, ok := idx.Container.(*ast.Name); !ok || c.Ident != "列" {
		t.Fatalf("unexpected container: %+v", idx.Container)
	}
	if n, ok := idx.IndexVal.(*ast.Number); !ok || n.Decimal != "1" {
		t.Fatalf("unexpected index: %+v", idx.IndexVal)
	}
	length, ok := prog.Statements[1].(*ast.Length)
	if !ok {
		t.Fatalf("want *ast.Length, got %T", prog.Statements[1])
	}
	if c, ok := length.Container.(*ast.Name); !ok || c.Ident != "列" {
		t.Fatalf("unexpected container: %+v", length.Container)
	}
}

func TestParseStoreAndDelete(t *testing.T) {
	prog := mustParse(t, "昔之「甲」者。今二是矣。昔之「乙」者。今不復存矣。")
	s1 := prog.Statements[0].(*ast.Store)
	if s1.Name != "甲" || s1.Delete || s1.LhsIdx != nil {
		t.Fatalf("unexpected store: %+v", s1)
	}
	if n, ok := s1.Rhs.(*ast.Number); !ok || n.Decimal != "2" {
		t.Fatalf("unexpected rhs: %+v", s1.Rhs)
	}
	s2 := prog.Statements[1].(*ast.Store)
	if s2.Name != "乙" || !s2.Delete {
		t.Fatalf("unexpected delete store: %+v", s2)
	}
}

func TestParseStoreWithIndices(t *testing.T) {
	prog := mustParse(t, "昔之「甲」之一者。今「乙」之二是矣。")
	s := prog.Statements[0].(*ast.Store)
	if s.Name != "甲" {
		t.Fatalf("unexpected name: %s", s.Name)
	}
	if idx, ok := s.LhsIdx.(*ast.Number); !ok || idx.Decimal != "1" {
		t.Fatalf("unexpected lhs index: %+v", s.LhsIdx)
	}
	if rhs, ok := s.Rhs.(*ast.Name); !ok || rhs.Ident != "乙" {
		t.Fatalf("unexpected rhs: %+v", s.Rhs)
	}
	if idx, ok := s.RhsIdx.(*ast.Number); !ok || idx.Decimal != "2" {
		t.Fatalf("unexpected rhs index: %+v", s.RhsIdx)
	}
}

func TestParseStoreDeleteWithTrailingShiYe(t *testing.T) {
	prog := mustParse(t, "昔之「甲」之一者。今不復存矣是也。")
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	s := prog.Statements[0].(*ast.Store)
	if !s.Delete || s.Name != "甲" {
		t.Fatalf("unexpected store: %+v", s)
	}
}

func TestParseIfAndWhile(t *testing.T) {
	prog := mustParse(t, "若一者。書之。若非。書之。云云。恆為是。乃止是遍。乃止。云云。")
	ifStmt := prog.Statements[0].(*ast.If)
	if _, ok := ifStmt.Cond.(*ast.CondAtom); !ok {
		t.Fatalf("unexpected cond: %+v", ifStmt.Cond)
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("unexpected branches: then=%d else=%d", len(ifStmt.Then), len(ifStmt.Else))
	}
	while := prog.Statements[1].(*ast.While)
	if len(while.Body) != 2 {
		t.Fatalf("unexpected while body: %+v", while.Body)
	}
	if _, ok := while.Body[0].(*ast.Continue); !ok {
		t.Fatalf("want Continue first, got %T", while.Body[0])
	}
	if _, ok := while.Body[1].(*ast.Break); !ok {
		t.Fatalf("want Break second, got %T", while.Body[1])
	}
}

func TestParseProcDef(t *testing.T) {
	prog := mustParse(t, "今有一術。名之曰「恆三」。欲行是術。乃行是術曰。乃得三。是謂「恆三」之術也。")
	def, ok := prog.Statements[0].(*ast.ProcDef)
	if !ok {
		t.Fatalf("want *ast.ProcDef, got %T", prog.Statements[0])
	}
	if def.Name != "恆三" || len(def.Params) != 0 || def.Rest != nil {
		t.Fatalf("unexpected proc def: %+v", def)
	}
	if len(def.Body) != 1 {
		t.Fatalf("unexpected body: %+v", def.Body)
	}
}

func TestParseProcDefWithParamsAndRest(t *testing.T) {
	prog := mustParse(t, "今有一術。名之曰「收尾」。欲行是術。必先得一數。曰「首」。其餘數。曰「餘」。乃行是術曰。乃得矣。是謂「收尾」之術也。")
	def := prog.Statements[0].(*ast.ProcDef)
	if len(def.Params) != 1 || def.Params[0].Name != "首" || def.Params[0].TypeTag != "數" {
		t.Fatalf("unexpected params: %+v", def.Params)
	}
	if def.Rest == nil || def.Rest.Name != "餘" {
		t.Fatalf("unexpected rest param: %+v", def.Rest)
	}
}

func TestParseProcDefWithMultiNameParamGroup(t *testing.T) {
	prog := mustParse(t, "今有一術。名之曰「取乙」。欲行是術。必先得二數。曰「甲」曰「乙」。乃行是術曰。乃得「乙」。是謂「取乙」之術也。")
	def := prog.Statements[0].(*ast.ProcDef)
	if len(def.Params) != 2 || def.Params[0].Name != "甲" || def.Params[1].Name != "乙" {
		t.Fatalf("unexpected params: %+v", def.Params)
	}
}

func TestParseTryWithHandlersAndCatchAll(t *testing.T) {
	prog := mustParse(t, "姑妄行此。嗚呼。「「甲」」之禍。如事不諧。豈「「乙」」之禍歟。乃得一。不知何禍歟。名之曰「禍」。乃得二。乃作罷。")
	try := prog.Statements[0].(*ast.Try)
	if len(try.Body) != 1 {
		t.Fatalf("unexpected try body: %+v", try.Body)
	}
	if _, ok := try.Body[0].(*ast.Raise); !ok {
		t.Fatalf("want Raise in try body, got %T", try.Body[0])
	}
	if len(try.Handlers) != 2 {
		t.Fatalf("want 2 handlers, got %d", len(try.Handlers))
	}
	if try.Handlers[0].CatchAll {
		t.Fatalf("first handler should be named, not catch-all")
	}
	if !try.Handlers[1].CatchAll || try.Handlers[1].VarName != "禍" {
		t.Fatalf("unexpected catch-all handler: %+v", try.Handlers[1])
	}
}

func TestParseTryWithoutHandlers(t *testing.T) {
	prog := mustParse(t, "姑妄行此。書之。如事不諧乃作罷。")
	try := prog.Statements[0].(*ast.Try)
	if len(try.Handlers) != 0 {
		t.Fatalf("want no handlers, got %d", len(try.Handlers))
	}
}

func TestParseImportWithExposed(t *testing.T) {
	prog := mustParse(t, `吾嘗觀「「宏經」」之書。方悟「咒」之義。`)
	imp := prog.Statements[0].(*ast.Import)
	if imp.Module != "宏經" {
		t.Fatalf("unexpected module: %q", imp.Module)
	}
	if len(imp.Exposed) != 1 || imp.Exposed[0] != "咒" {
		t.Fatalf("unexpected exposed: %+v", imp.Exposed)
	}
}

func TestParseAppendRequiresYi(t *testing.T) {
	_, err := Parse("t.wy", "充「甲」曰一。")
	if err == nil {
		t.Fatal("want error for 充 without 以")
	}
}

func TestPendingTakeProtocol(t *testing.T) {
	if _, err := Parse("t.wy", "取一。書之。"); err == nil {
		t.Fatal("want 取後需以施 error")
	}
	if _, err := Parse("t.wy", "以施「加」。"); err == nil {
		t.Fatal("want 以施需先取 error")
	}
	prog, err := Parse("t.wy", "取一。以施「加」。")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prog.Statements[1].(*ast.PipeCall); !ok {
		t.Fatalf("want *ast.PipeCall, got %T", prog.Statements[1])
	}
}
