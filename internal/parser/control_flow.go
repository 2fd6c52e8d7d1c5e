package parser

import (
	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/lexer"
)

// parseIf parses 若/若其然者/若其不然者 … (或若 …)* (若非 …)? 云云. The two
// self-testing forms synthesize their condition from the top of the stack
// rather than parsing one (spec §4.4 "若其然者/若其不然者 backtrack").
func (p *parser) parseIf(start lexer.Token) (ast.Stmt, error) {
	var cond ast.CondExpr
	var invert bool
	var err error
	switch {
	case start.Is("若其然者"):
		cond, invert = selfCond(start.Span), false
	case start.Is("若其不然者"):
		cond, invert = selfCond(start.Span), true
	default:
		cond, err = p.parseCondition()
		if err != nil {
			return nil, err
		}
		if _, err := p.c.expectKeyword("者"); err != nil {
			return nil, err
		}
	}
	then, err := p.parseStatementsUntilAny("或若", "若非", "云云")
	if err != nil {
		return nil, err
	}
	var elifs []ast.Elif
	for p.c.acceptKeyword("或若") {
		ec, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if _, err := p.c.expectKeyword("者"); err != nil {
			return nil, err
		}
		ebody, err := p.parseStatementsUntilAny("或若", "若非", "云云")
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, ast.Elif{Cond: ec, Body: ebody})
	}
	var elseBody []ast.Stmt
	if p.c.acceptKeyword("若非") {
		elseBody, err = p.parseStatementsUntil("云云")
		if err != nil {
			return nil, err
		}
	}
	end, err := p.c.expectKeywordMsg("云云", "若未終")
	if err != nil {
		return nil, err
	}
	return ast.NewIf(lexer.Span{Start: start.Span.Start, End: end.Span.End}, cond, invert, then, elifs, elseBody), nil
}

// parseWhile parses 恆為是 … 云云.
func (p *parser) parseWhile(start lexer.Token) (ast.Stmt, error) {
	body, err := p.parseStatementsUntil("云云")
	if err != nil {
		return nil, err
	}
	end, err := p.c.expectKeywordMsg("云云", "循環未終")
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(lexer.Span{Start: start.Span.Start, End: end.Span.End}, body), nil
}

// parseFor parses 為是 <n> 遍 … 云云.
func (p *parser) parseFor(start lexer.Token) (ast.Stmt, error) {
	count, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword("遍"); err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil("云云")
	if err != nil {
		return nil, err
	}
	end, err := p.c.expectKeywordMsg("云云", "循環未終")
	if err != nil {
		return nil, err
	}
	return ast.NewFor(lexer.Span{Start: start.Span.Start, End: end.Span.End}, count, body), nil
}

// parseForeach parses 凡 <container> 中之 <var> … 云云.
func (p *parser) parseForeach(start lexer.Token) (ast.Stmt, error) {
	container, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword("中之"); err != nil {
		return nil, err
	}
	v, err := p.c.expectIdentifier()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil("云云")
	if err != nil {
		return nil, err
	}
	end, err := p.c.expectKeywordMsg("云云", "循環未終")
	if err != nil {
		return nil, err
	}
	return ast.NewForeach(lexer.Span{Start: start.Span.Start, End: end.Span.End}, container, v, body), nil
}
