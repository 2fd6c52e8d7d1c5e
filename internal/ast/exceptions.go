package ast

import "github.com/tcztzy/wenyan-go/internal/lexer"

// Try is 姑妄行此 … 如事不諧 (handlers) 乃作罷 (spec §4.4 "Try/raise").
type Try struct {
	base
	Body     []Stmt
	Handlers []Handler
}

// Handler is one 豈 <name> 之禍歟 clause, or the catch-all 不知何禍歟
// (CatchAll true, Name nil).
type Handler struct {
	Name     Value // nil for the catch-all handler
	CatchAll bool
	VarName  string // "" if the fault is not bound via 名之曰
	Body     []Stmt
}

func NewTry(span lexer.Span, body []Stmt, handlers []Handler) *Try {
	return &Try{NewBase(span), body, handlers}
}
func (*Try) stmtNode() {}

// Raise is 嗚呼 <name> 之禍 [曰 <msg>].
type Raise struct {
	base
	Name Value
	Msg  Value // nil if no 曰 <msg>
}

func NewRaise(span lexer.Span, name, msg Value) *Raise { return &Raise{NewBase(span), name, msg} }
func (*Raise) stmtNode()                                {}
