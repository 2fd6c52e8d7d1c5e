// Package errors provides the compile-time diagnostic type of the Wenyan
// preprocessor and parser. The tokenizer reports its own lexer.Fault, and
// lowering reports no errors.
package errors

import (
	"fmt"
	"strings"
)

// GrammarFault is a single compile-time diagnostic carrying enough context
// to reproduce the reference compiler's error output byte-for-byte:
//
//	<filename>:<line>:<col>: <message>
//	<source line>
//	   ^
//
// Message strings are part of the external ABI (spec §7): callers match on
// them, so GrammarFault never rewrites or translates Message.
type GrammarFault struct {
	Message  string
	Filename string
	Line     int
	Column   int
	LineText string
}

// New constructs a GrammarFault at the given 1-based line/column.
func New(filename string, line, column int, lineText, message string) *GrammarFault {
	return &GrammarFault{
		Message:  message,
		Filename: filename,
		Line:     line,
		Column:   column,
		LineText: lineText,
	}
}

// Error implements the error interface using the plain (non-caret) form.
func (e *GrammarFault) Error() string {
	name := e.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", name, e.Line, e.Column, e.Message)
}

// Format renders the full diagnostic: header line, offending source line,
// and a caret under the faulting column, matching spec §6's error format.
func (e *GrammarFault) Format() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteByte('\n')
	if e.LineText != "" {
		sb.WriteString(e.LineText)
		sb.WriteByte('\n')
		col := e.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// Wrap re-anchors a GrammarFault raised while compiling an imported module
// onto the outer file's importing statement, per spec §7: "Grammar faults
// inside the preprocessor carry the outer file's position for the offending
// 吾嘗觀, not the imported file's internal position."
func Wrap(inner error, filename string, line, column int, lineText string) *GrammarFault {
	msg := inner.Error()
	if gf, ok := inner.(*GrammarFault); ok {
		msg = gf.Message
	}
	return New(filename, line, column, lineText, msg)
}
