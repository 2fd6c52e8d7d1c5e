package lowering

import (
	"testing"

	"github.com/tcztzy/wenyan-go/internal/graph"
	"github.com/tcztzy/wenyan-go/internal/parser"
)

func mustLower(t *testing.T, src string) *graph.Program {
	t.Helper()
	prog, err := parser.Parse("<test>", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Lower(prog)
}

// TestPushAndPrint exercises spec §8 scenario 1: an unnamed declared string
// (Declare, then a Push of its initial value) followed by 書之.
func TestPushAndPrint(t *testing.T) {
	g := mustLower(t, `吾有一言。曰「「問天地好在。」」。書之。`)
	if len(g.Statements) != 3 {
		t.Fatalf("want 3 statements, got %d: %#v", len(g.Statements), g.Statements)
	}
	if _, ok := g.Statements[0].(*graph.Declare); !ok {
		t.Fatalf("want Declare, got %T", g.Statements[0])
	}
	if _, ok := g.Statements[len(g.Statements)-1].(*graph.Print); !ok {
		t.Fatalf("want trailing Print, got %T", g.Statements[len(g.Statements)-1])
	}
}

// TestTakeFusesIntoPipeCall exercises spec §8 scenario 4's 取二以施 form:
// lowering must fuse the Take/PipeCall pair into one graph.PipeCall.
func TestTakeFusesIntoPipeCall(t *testing.T) {
	src := `今有一術。名之曰「加」。欲行是術。必先得二數。曰「甲」曰「乙」。乃行是術曰。乃得「甲」。是謂「加」之術也。
夫一。夫二。取二以施「加」。書之。`
	g := mustLower(t, src)
	var found *graph.PipeCall
	for _, s := range g.Statements {
		if pc, ok := s.(*graph.PipeCall); ok {
			found = pc
		}
	}
	if found == nil {
		t.Fatalf("no PipeCall lowered from statements: %#v", g.Statements)
	}
	if found.TakeCount != 2 || found.TakeRest {
		t.Fatalf("want TakeCount=2 TakeRest=false, got %+v", found)
	}
}

// TestProcDefCarriesWrapperMetadata checks that a procedure's fixed
// parameter count and rest-parameter presence survive lowering, since
// __invoke's currying rules depend on them (spec §4.6 "Procedures").
func TestProcDefCarriesWrapperMetadata(t *testing.T) {
	src := `今有一術。名之曰「收尾」。欲行是術。必先得一數。曰「首」。其餘數。曰「餘」。乃行是術曰。乃得「餘」之長。是謂「收尾」之術也。`
	g := mustLower(t, src)
	var def *graph.ProcDef
	for _, s := range g.Statements {
		if pd, ok := s.(*graph.ProcDef); ok {
			def = pd
		}
	}
	if def == nil {
		t.Fatalf("no ProcDef lowered: %#v", g.Statements)
	}
	if def.ParamCount != 1 || !def.TakesRest || def.RestName != "餘" {
		t.Fatalf("unexpected wrapper metadata: %+v", def)
	}
}
