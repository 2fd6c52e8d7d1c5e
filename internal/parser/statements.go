package parser

import (
	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/lexer"
)

// parsePush parses 夫 <value>, then checks for the three suffixes that turn
// it into something else: 之<idx>[者] (Index), 之長[者] (Length), or a second
// value followed by 中有陽乎/中無陰乎 (Membership). Plain 夫 <value>。 falls
// through to a bare Push (spec §4.4 "夫…中有陽乎 backtrack").
func (p *parser) parsePush(start lexer.Token) (ast.Stmt, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	mark := p.c.mark()
	if member, ok := p.tryMembership(v); ok {
		return ast.NewPush(lexer.Span{Start: start.Span.Start, End: member.Span().End}, member), nil
	}
	p.c.reset(mark)
	suffixed, err := p.parseIndexSuffix(v, true)
	if err != nil {
		return nil, err
	}
	switch s := suffixed.(type) {
	case *ast.Index:
		return s, nil
	case *ast.Length:
		return s, nil
	}
	return ast.NewPush(lexer.Span{Start: start.Span.Start, End: v.Span().End}, v), nil
}

// tryMembership speculatively parses <item> 中有陽乎/中無陰乎 after an
// already-parsed container value, backtracking on failure.
func (p *parser) tryMembership(container ast.Value) (ast.Value, bool) {
	mark := p.c.mark()
	item, err := p.parseValue()
	if err != nil {
		p.c.reset(mark)
		return nil, false
	}
	span := lexer.Span{Start: container.Span().Start, End: item.Span().End}
	switch {
	case p.c.acceptKeyword("中有陽乎"):
		return ast.NewMembership(span, container, item, false), true
	case p.c.acceptKeyword("中無陰乎"):
		return ast.NewMembership(span, container, item, true), true
	}
	p.c.reset(mark)
	return nil, false
}

// parseAssign parses a statement-level 名之曰「name」(曰「name2」)* that
// isn't trailing a Declare: sugar for binding the top of the stack (spec §3
// Assign).
func (p *parser) parseAssign(start lexer.Token) (ast.Stmt, error) {
	name, err := p.c.expectIdentifier()
	if err != nil {
		return nil, err
	}
	names := []string{name}
	for p.c.acceptKeyword("曰") {
		n, err := p.c.expectIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return ast.NewAssign(start.Span, names), nil
}

// parseReturn parses 乃得矣 / 乃歸空無 / 乃得 <value>[之長|之idx].
func (p *parser) parseReturn(start lexer.Token) (ast.Stmt, error) {
	switch start.Value {
	case "乃得矣":
		return ast.NewReturn(start.Span, nil, true, false), nil
	case "乃歸空無":
		return ast.NewReturn(start.Span, nil, false, true), nil
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	v, err = p.parseIndexSuffix(v, false)
	if err != nil {
		return nil, err
	}
	return ast.NewReturn(lexer.Span{Start: start.Span.Start, End: v.Span().End}, v, false, false), nil
}

// parseAppend parses 充 <target> 以 <v1> (以 <v2>)*; the leading 以 is
// mandatory, raising 充需以值 when absent (spec §6 diagnostics).
func (p *parser) parseAppend(start lexer.Token) (ast.Stmt, error) {
	target, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if !p.c.acceptKeyword("以") {
		return nil, p.c.faultHere("充需以值")
	}
	end := target.Span()
	var values []ast.Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		end = v.Span()
		if !p.c.acceptKeyword("以") {
			break
		}
	}
	return ast.NewAppend(lexer.Span{Start: start.Span.Start, End: end.End}, target, values), nil
}

// parseConcat parses 銜 <target> 以 <list1> (以 <list2>)*; the leading 以 is
// mandatory, raising 銜需以列 when absent.
func (p *parser) parseConcat(start lexer.Token) (ast.Stmt, error) {
	target, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if !p.c.acceptKeyword("以") {
		return nil, p.c.faultHere("銜需以列")
	}
	end := target.Span()
	var lists []ast.Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		lists = append(lists, v)
		end = v.Span()
		if !p.c.acceptKeyword("以") {
			break
		}
	}
	return ast.NewConcat(lexer.Span{Start: start.Span.Start, End: end.End}, target, lists), nil
}

// parseStore parses 昔之「X」[之idx]者。今 (rhs[之idx] (是矣|是也) |
// 不復存矣) (spec §4.4 "Assignment").
func (p *parser) parseStore(start lexer.Token) (ast.Stmt, error) {
	name, err := p.c.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var lhsIdx ast.Value
	if p.c.acceptKeyword("之") {
		lhsIdx, err = p.parseValue()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.c.expectKeyword("者"); err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword("今"); err != nil {
		return nil, err
	}
	if delTok, ok := p.c.acceptKeywordTok("不復存矣"); ok {
		end := delTok.Span
		if also, ok := p.c.acceptKeywordTok("是也"); ok {
			end = also.Span
		}
		return ast.NewStore(lexer.Span{Start: start.Span.Start, End: end.End}, name, lhsIdx, nil, nil, true), nil
	}
	rhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	var rhsIdx ast.Value
	if p.c.acceptKeyword("之") {
		rhsIdx, err = p.parseValue()
		if err != nil {
			return nil, err
		}
	}
	end := rhs.Span()
	if rhsIdx != nil {
		end = rhsIdx.Span()
	}
	if !p.c.acceptKeyword("是矣") && !p.c.acceptKeyword("是也") {
		return nil, p.c.faultHere("當為「是矣」")
	}
	return ast.NewStore(lexer.Span{Start: start.Span.Start, End: end.End}, name, lhsIdx, rhs, rhsIdx, false), nil
}
