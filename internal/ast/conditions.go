package ast

import "github.com/tcztzy/wenyan-go/internal/lexer"

// CondExpr is a condition expression (spec §3 "Condition expression"): a
// sequence of Atoms interleaved with comparison and logical operators, with
// && binding tighter than ||.
type CondExpr interface {
	Node
	condNode()
}

// CondAtom is a value with an optional index or "length of" marker, used
// either as a standalone truthy check or as one side of a CondCompare.
type CondAtom struct {
	base
	Value    Value
	Index    Value // nil if not indexed
	IsLength bool
}

func NewCondAtom(span lexer.Span, v Value, index Value, isLength bool) *CondAtom {
	return &CondAtom{NewBase(span), v, index, isLength}
}
func (*CondAtom) condNode() {}

// CondCompare compares two atoms with one of ==, !=, <=, >=, <, >.
type CondCompare struct {
	base
	Op          string
	Left, Right *CondAtom
}

func NewCondCompare(span lexer.Span, op string, left, right *CondAtom) *CondCompare {
	return &CondCompare{NewBase(span), op, left, right}
}
func (*CondCompare) condNode() {}

// CondLogic combines two sub-expressions with && or ||.
type CondLogic struct {
	base
	Op          string
	Left, Right CondExpr
}

func NewCondLogic(span lexer.Span, op string, left, right CondExpr) *CondLogic {
	return &CondLogic{NewBase(span), op, left, right}
}
func (*CondLogic) condNode() {}

// Membership is 夫 <container> <item> 中有陽乎/中無陰乎: a boolean push
// testing whether Item occurs in Container, pre-negated when Negate is true
// (the 中無陰乎 form). It is a value, not a CondExpr, since the backtracked
// grammar pushes its result onto the stack like any other 夫 statement
// rather than feeding a condition directly (spec §4.4 "夫…中有陽乎
// backtrack").
type Membership struct {
	base
	Container, Item Value
	Negate          bool
}

func NewMembership(span lexer.Span, container, item Value, negate bool) *Membership {
	return &Membership{NewBase(span), container, item, negate}
}
func (*Membership) valueNode() {}
