// Package ast defines the Wenyan abstract syntax tree (spec §3): the tagged
// node variants the parser produces and the scope analyzer and lowering
// pass consume. Every node carries its source span.
package ast

import "github.com/tcztzy/wenyan-go/internal/lexer"

// Node is the common interface implemented by every AST node.
type Node interface {
	Span() lexer.Span
}

// base embeds the span every node carries, mirroring go-dws's ast.Node
// shape (a small shared struct rather than per-node span plumbing).
type base struct {
	span lexer.Span
}

// Span returns the node's source byte-range.
func (b base) Span() lexer.Span { return b.span }

// NewBase constructs the embeddable span holder; node constructors in this
// package and the parser use it instead of setting unexported fields
// directly from outside the package.
func NewBase(span lexer.Span) base { return base{span: span} }

// Value is the subset of Node usable as an expression: a name, literal,
// destructive self-read, or the variadic rest marker (spec §3 "Values").
type Value interface {
	Node
	valueNode()
}

// Name references a bound identifier.
type Name struct {
	base
	Ident string
}

func NewName(span lexer.Span, ident string) *Name { return &Name{NewBase(span), ident} }
func (*Name) valueNode()                          {}

// String is a string literal value.
type String struct {
	base
	Value string
}

func NewString(span lexer.Span, v string) *String { return &String{NewBase(span), v} }
func (*String) valueNode()                        {}

// Number is a decoded Classical numeral literal, stored as its canonical
// decimal string (spec §4.1).
type Number struct {
	base
	Decimal string
}

func NewNumber(span lexer.Span, decimal string) *Number { return &Number{NewBase(span), decimal} }
func (*Number) valueNode()                              {}

// Bool is a boolean literal (陽/陰).
type Bool struct {
	base
	Value bool
}

func NewBool(span lexer.Span, v bool) *Bool { return &Bool{NewBase(span), v} }
func (*Bool) valueNode()                    {}

// Self is the destructive top-of-stack read (其): it returns the top
// element and atomically clears the stack (spec §3 invariants).
type Self struct{ base }

func NewSelf(span lexer.Span) *Self { return &Self{NewBase(span)} }
func (*Self) valueNode()            {}

// Rest is the variadic tail marker, used in procedure parameters and
// container-slice contexts (其餘).
type Rest struct{ base }

func NewRest(span lexer.Span) *Rest { return &Rest{NewBase(span)} }
func (*Rest) valueNode()            {}

// Stmt is the subset of Node usable as a top-level or block statement.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed file: an ordered statement list.
type Program struct {
	base
	Statements []Stmt
}

func NewProgram(span lexer.Span, stmts []Stmt) *Program { return &Program{NewBase(span), stmts} }
