package parser

import (
	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/lexer"
)

// parseValue parses one atomic value: a name, a literal, 其/其餘, or a
// nested 加/減/乘/除 arithmetic expression (spec §3 "Values").
func (p *parser) parseValue() (ast.Value, error) {
	tok := p.c.peek()
	switch {
	case tok.Kind == lexer.Identifier:
		p.c.advance()
		return ast.NewName(tok.Span, tok.Value), nil
	case tok.Kind == lexer.StringLiteral:
		p.c.advance()
		return ast.NewString(tok.Span, tok.Value), nil
	case tok.Kind == lexer.NumberLiteral:
		p.c.advance()
		return ast.NewNumber(tok.Span, tok.Value), nil
	case tok.Is("陽"):
		p.c.advance()
		return ast.NewBool(tok.Span, true), nil
	case tok.Is("陰"):
		p.c.advance()
		return ast.NewBool(tok.Span, false), nil
	case tok.Is("其"):
		p.c.advance()
		return ast.NewSelf(tok.Span), nil
	case tok.Is("其餘"):
		p.c.advance()
		return ast.NewRest(tok.Span), nil
	case tok.Is("加"), tok.Is("減"), tok.Is("乘"), tok.Is("除"):
		return p.parseArith()
	}
	return nil, p.c.faultHere("當為名")
}

// parseArith parses 加/乘 <a> 以 <b> or 減/除 <a> 於 <b>, raising
// 算術句介詞非法 when the wrong preposition follows the operator (spec §4.4
// "Arithmetic preposition").
func (p *parser) parseArith() (ast.Value, error) {
	start := p.c.peek()
	opTok := p.c.advance()
	op := map[string]string{"加": "+", "減": "-", "乘": "*", "除": "/"}[opTok.Value]
	lhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	prep := "以"
	if opTok.Value == "減" || opTok.Value == "除" {
		prep = "於"
	}
	if !p.c.acceptKeyword(prep) {
		return nil, p.c.faultHere("算術句介詞非法")
	}
	rhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return ast.NewBinOp(lexer.Span{Start: start.Span.Start, End: rhs.Span().End}, op, lhs, rhs), nil
}

// parseIndexSuffix parses an optional 之<idx>[者] or 之長[者] suffix on an
// already-parsed value, used by the 夫 push statement and by 乃得 (spec §4.6
// "Indexing", "Length"). allowZhe lets a trailing 者 close the suffix when
// one is present; 夫 passes true, 乃得 and 昔之 pass false and leave any 者
// unconsumed.
func (p *parser) parseIndexSuffix(v ast.Value, allowZhe bool) (ast.Value, error) {
	if p.c.isKeyword("之長") {
		end := p.c.advance()
		if allowZhe {
			if zhe, ok := p.c.acceptKeywordTok("者"); ok {
				end = zhe
			}
		}
		return ast.NewLength(lexer.Span{Start: v.Span().Start, End: end.Span.End}, v), nil
	}
	if p.c.isKeyword("之") {
		p.c.advance()
		idx, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		end := idx.Span()
		if allowZhe {
			if zhe, ok := p.c.acceptKeywordTok("者"); ok {
				end = zhe.Span
			}
		}
		return ast.NewIndex(lexer.Span{Start: v.Span().Start, End: end.End}, v, idx), nil
	}
	return v, nil
}

// parseCondAtom parses one condition atom: a value with an optional index
// or length suffix (spec §3 "Condition expression").
func (p *parser) parseCondAtom() (*ast.CondAtom, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.c.isKeyword("之長") {
		end := p.c.advance()
		return ast.NewCondAtom(lexer.Span{Start: v.Span().Start, End: end.Span.End}, v, nil, true), nil
	}
	if p.c.isKeyword("之") {
		p.c.advance()
		idx, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return ast.NewCondAtom(lexer.Span{Start: v.Span().Start, End: idx.Span().End}, v, idx, false), nil
	}
	return ast.NewCondAtom(v.Span(), v, nil, false), nil
}

// parseComparison parses one atom, optionally followed by a comparison
// keyword and a second atom.
func (p *parser) parseComparison() (ast.CondExpr, error) {
	left, err := p.parseCondAtom()
	if err != nil {
		return nil, err
	}
	for kw, op := range lexer.CompareWords {
		if p.c.isKeyword(kw) {
			p.c.advance()
			right, err := p.parseCondAtom()
			if err != nil {
				return nil, err
			}
			return ast.NewCondCompare(lexer.Span{Start: left.Span().Start, End: right.Span().End}, op, left, right), nil
		}
	}
	return left, nil
}

// parseAndExpr parses Comparison (且 Comparison)*: && binds tighter than ||
// (spec §4.4 "Condition precedence").
func (p *parser) parseAndExpr() (ast.CondExpr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.c.isKeyword("且") {
		p.c.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.NewCondLogic(lexer.Span{Start: left.Span().Start, End: right.Span().End}, "&&", left, right)
	}
	return left, nil
}

// parseCondition parses AndExpr (或 AndExpr)*.
func (p *parser) parseCondition() (ast.CondExpr, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for p.c.isKeyword("或") {
		p.c.advance()
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewCondLogic(lexer.Span{Start: left.Span().Start, End: right.Span().End}, "||", left, right)
	}
	return left, nil
}

// selfCond builds the implicit "check the top of the stack" condition used
// by 若其然者/若其不然者, which test Self rather than an explicit expression.
func selfCond(span lexer.Span) ast.CondExpr {
	return ast.NewCondAtom(span, ast.NewSelf(span), nil, false)
}
