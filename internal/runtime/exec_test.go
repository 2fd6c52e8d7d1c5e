package runtime

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/tcztzy/wenyan-go/internal/graph"
)

func num(n int64) *graph.Number { return &graph.Number{Value: big.NewRat(n, 1)} }

// TestPushAndPrintClearsStack exercises the universal invariant that the
// stack is empty after Print (spec §8 invariant 3).
func TestPushAndPrintClearsStack(t *testing.T) {
	var out bytes.Buffer
	rt := New(&out, true)
	prog := &graph.Program{Statements: []graph.Stmt{
		&graph.Push{Value: num(1)},
		&graph.Push{Value: num(2)},
		&graph.Print{},
	}}
	if err := rt.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rt.Stack.Len() != 0 {
		t.Errorf("stack not empty after Print: len=%d", rt.Stack.Len())
	}
	if got, want := out.String(), "1 2\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestBinOpArithmetic checks the four arithmetic operators and
// division-by-zero faulting.
func TestBinOpArithmetic(t *testing.T) {
	cases := []struct {
		op        string
		lhs, rhs  int64
		want      string
		wantFault bool
	}{
		{"+", 1, 2, "3", false},
		{"-", 5, 2, "3", false},
		{"*", 3, 4, "12", false},
		{"/", 6, 2, "3", false},
		{"/", 1, 0, "", true},
	}
	for _, c := range cases {
		var out bytes.Buffer
		rt := New(&out, true)
		prog := &graph.Program{Statements: []graph.Stmt{
			&graph.Push{Value: &graph.BinOp{Op: c.op, Lhs: num(c.lhs), Rhs: num(c.rhs)}},
			&graph.Print{},
		}}
		err := rt.Run(prog)
		if c.wantFault {
			if err == nil {
				t.Errorf("%s(%d,%d): expected fault, got none", c.op, c.lhs, c.rhs)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s(%d,%d): %v", c.op, c.lhs, c.rhs, err)
		}
		if got, want := out.String(), c.want+"\n"; got != want {
			t.Errorf("%s(%d,%d) = %q, want %q", c.op, c.lhs, c.rhs, got, want)
		}
	}
}

// TestProcedureCallRestoresCallerStack checks the Stack discipline
// invariant for procedure calls (spec §8 invariant 4): the caller's stack
// after a call equals its stack before, plus one value for a returning
// callee.
func TestProcedureCallRestoresCallerStack(t *testing.T) {
	var out bytes.Buffer
	rt := New(&out, true)
	prog := &graph.Program{Statements: []graph.Stmt{
		&graph.ProcDef{
			Name:       "加一",
			ParamNames: []string{"甲"},
			ParamCount: 1,
			Body: []graph.Stmt{
				&graph.Return{Value: &graph.BinOp{Op: "+", Lhs: &graph.Name{Ident: "甲"}, Rhs: num(1)}},
			},
		},
		&graph.Push{Value: num(99)}, // caller stack has an unrelated pending value
		&graph.Push{Value: num(41)}, // top of stack: the one value TakeCount 1 takes
		&graph.PipeCall{Callee: &graph.Name{Ident: "加一"}, TakeCount: 1},
	}}
	if err := rt.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rt.Stack.Len() != 2 {
		t.Fatalf("caller stack len = %d, want 2 (the untouched 99 plus the call's result)", rt.Stack.Len())
	}
	top, _ := rt.Stack.Pop()
	if top.Kind != KindNum || top.Num.Cmp(big.NewRat(42, 1)) != 0 {
		t.Errorf("call result = %+v, want 42", top)
	}
}

// TestEmptyStackTakeFaults checks that a PipeCall against an empty stack
// raises the 虛指 fault rather than panicking (spec §4.6 "Errors from
// runtime").
func TestEmptyStackTakeFaults(t *testing.T) {
	var out bytes.Buffer
	rt := New(&out, true)
	prog := &graph.Program{Statements: []graph.Stmt{
		&graph.ProcDef{Name: "恆一", Body: []graph.Stmt{&graph.Return{Value: num(1)}}},
		&graph.PipeCall{Callee: &graph.Name{Ident: "恆一"}, TakeCount: 1},
	}}
	err := rt.Run(prog)
	wf, ok := err.(*WenyanFault)
	if !ok {
		t.Fatalf("err = %v (%T), want *WenyanFault", err, err)
	}
	if wf.Name != "虛指" {
		t.Errorf("fault name = %q, want 虛指", wf.Name)
	}
}

// TestUnboundNameFaults checks unknown-name lookup faults rather than
// panicking.
func TestUnboundNameFaults(t *testing.T) {
	var out bytes.Buffer
	rt := New(&out, true)
	prog := &graph.Program{Statements: []graph.Stmt{
		&graph.Push{Value: &graph.Name{Ident: "未嘗言"}},
	}}
	err := rt.Run(prog)
	wf, ok := err.(*WenyanFault)
	if !ok {
		t.Fatalf("err = %v (%T), want *WenyanFault", err, err)
	}
	if wf.Name != "不識之名" {
		t.Errorf("fault name = %q, want 不識之名", wf.Name)
	}
}

// TestTryCatchesRaisedFaultByName checks that Try/Handler matches a raise
// by name and binds the fault's fields to the handler variable.
func TestTryCatchesRaisedFaultByName(t *testing.T) {
	var out bytes.Buffer
	rt := New(&out, true)
	prog := &graph.Program{Statements: []graph.Stmt{
		&graph.Try{
			Body: []graph.Stmt{
				&graph.Raise{Name: &graph.String{Value: "大禍"}},
			},
			Handlers: []graph.Handler{{
				Name:    &graph.String{Value: "大禍"},
				VarName: "禍",
				Body: []graph.Stmt{
					&graph.Push{Value: &graph.Index{Container: &graph.Name{Ident: "禍"}, IndexVal: &graph.String{Value: "名"}}},
					&graph.Print{},
				},
			}},
		},
	}}
	if err := rt.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "大禍\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestListIndexSetThenGetRoundTrips checks invariant 5: after
// set(L,k,v); x = get(L,k), x == v.
func TestListIndexSetThenGetRoundTrips(t *testing.T) {
	var out bytes.Buffer
	rt := New(&out, true)
	prog := &graph.Program{Statements: []graph.Stmt{
		&graph.Declare{Count: 1, TypeTag: "列", Names: []string{"列"}},
		&graph.Store{Name: "列", LhsIdx: num(1), Rhs: &graph.String{Value: "乙"}},
		&graph.Push{Value: &graph.Index{Container: &graph.Name{Ident: "列"}, IndexVal: num(1)}},
		&graph.Print{},
	}}
	if err := rt.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "乙\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
