package preprocessor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tcztzy/wenyan-go/internal/ast"
)

// Fixture grounded on _examples/original_source/tests/test_runtime_features.py's
// test_匯入與宏: 宏經.wy defines a macro that expands bare text into a
// print statement, 主.wy imports it, uses the macro once in live code and
// once inside a string literal (which must be left untouched).
const macroModuleSrc = "或云「「書「甲」焉」」。\n蓋謂「「吾有一言。曰「甲」。書之」」。"

const macroMainSrc = "吾嘗觀「「宏經」」之書。\n\n" +
	"書「「嘿」」焉。\n" +
	"吾有一言。曰「「書「甲」焉」」。書之。"

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name+".wy")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestExpandMacrosSkipsStringLiterals(t *testing.T) {
	def := MacroDef{Pattern: "書「甲」焉", Replacement: "吾有一言。曰「甲」。書之"}
	out := ExpandMacros([]MacroDef{def}, "書「「嘿」」焉。")
	want := "吾有一言。曰「「嘿」」。書之。"
	if out != want {
		t.Fatalf("ExpandMacros() = %q, want %q", out, want)
	}

	// An occurrence lying inside a string literal must be left alone.
	lit := "吾有一言。曰「「書「甲」焉」」。書之。"
	if out := ExpandMacros([]MacroDef{def}, lit); out != lit {
		t.Fatalf("ExpandMacros() modified a string-literal-internal match: %q", out)
	}
}

func TestCompileResolvesImportAndExpandsMacros(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "宏經", macroModuleSrc)
	mainPath := writeModule(t, dir, "主", macroMainSrc)

	env := NewEnvironment()
	prog, err := env.Compile(mainPath, macroMainSrc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Expect: the imported macro definition itself contributes no runtime
	// statement, the first 書「「嘿」」焉 line (macro-expanded) declares and
	// prints "嘿", and the string-literal-internal occurrence is parsed as
	// a literal string declare+print.
	var declares []*ast.Declare
	for _, s := range prog.Statements {
		if d, ok := s.(*ast.Declare); ok {
			declares = append(declares, d)
		}
	}
	if len(declares) != 2 {
		t.Fatalf("want 2 declare statements, got %d: %+v", len(declares), prog.Statements)
	}
	first, ok := declares[0].Inits[0].(*ast.String)
	if !ok || first.Value != "嘿" {
		t.Fatalf("unexpected first declare init: %+v", declares[0].Inits[0])
	}
	second, ok := declares[1].Inits[0].(*ast.String)
	if !ok || second.Value != "書「甲」焉" {
		t.Fatalf("unexpected second declare init: %+v", declares[1].Inits[0])
	}
}

func TestCompileDetectsImportCycle(t *testing.T) {
	dir := t.TempDir()
	aSrc := `吾嘗觀「「乙」」之書。`
	bSrc := `吾嘗觀「「甲」」之書。`
	writeModule(t, dir, "甲", aSrc)
	bPath := writeModule(t, dir, "乙", bSrc)
	// Rewrite 甲 to import 乙, forming a cycle 甲 -> 乙 -> 甲.
	aPath := filepath.Join(dir, "甲.wy")
	if err := os.WriteFile(aPath, []byte(aSrc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	env := NewEnvironment()
	_, err := env.Compile(bPath, bSrc)
	if err == nil {
		t.Fatal("want 循環匯入 error, got nil")
	}
}

func TestScanDirectivesFindsMacroAndImport(t *testing.T) {
	src := macroModuleSrc + "\n" + `吾嘗觀「「宏經」」之書。方悟「甲」之義。`
	directives, err := scanDirectives(src)
	if err != nil {
		t.Fatalf("scanDirectives: %v", err)
	}
	if len(directives) != 2 {
		t.Fatalf("want 2 directives, got %d: %+v", len(directives), directives)
	}
	if directives[0].Kind != macroDirective || directives[0].Pattern != "書「甲」焉" {
		t.Fatalf("unexpected macro directive: %+v", directives[0])
	}
	if directives[1].Kind != importDirective || directives[1].Module != "宏經" {
		t.Fatalf("unexpected import directive: %+v", directives[1])
	}
	if len(directives[1].Exposed) != 1 || directives[1].Exposed[0] != "甲" {
		t.Fatalf("unexpected exposed names: %+v", directives[1].Exposed)
	}
}
