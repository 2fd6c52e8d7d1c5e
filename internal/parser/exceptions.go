package parser

import (
	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/lexer"
)

// parseTry parses 姑妄行此 <body> 如事不諧 (豈 <name> 之禍歟 [名之曰「var」]
// <body>)* (不知何禍歟 <body>)? 乃作罷 (spec §4.4 "Try/raise").
func (p *parser) parseTry(start lexer.Token) (ast.Stmt, error) {
	body, err := p.parseStatementsUntil("如事不諧")
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword("如事不諧"); err != nil {
		return nil, err
	}
	var handlers []ast.Handler
	for p.c.acceptKeyword("豈") {
		name, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.c.expectKeyword("之禍歟"); err != nil {
			return nil, err
		}
		var varName string
		if p.c.acceptKeyword("名之曰") {
			varName, err = p.c.expectIdentifier()
			if err != nil {
				return nil, err
			}
		}
		hbody, err := p.parseStatementsUntilAny("豈", "不知何禍歟", "乃作罷")
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, ast.Handler{Name: name, VarName: varName, Body: hbody})
	}
	if p.c.acceptKeyword("不知何禍歟") {
		var varName string
		if p.c.acceptKeyword("名之曰") {
			v, err := p.c.expectIdentifier()
			if err != nil {
				return nil, err
			}
			varName = v
		}
		cbody, err := p.parseStatementsUntil("乃作罷")
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, ast.Handler{CatchAll: true, VarName: varName, Body: cbody})
	}
	end, err := p.c.expectKeyword("乃作罷")
	if err != nil {
		return nil, err
	}
	return ast.NewTry(lexer.Span{Start: start.Span.Start, End: end.Span.End}, body, handlers), nil
}

// parseRaise parses 嗚呼 <name> 之禍 [曰 <msg>].
func (p *parser) parseRaise(start lexer.Token) (ast.Stmt, error) {
	name, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword("之禍"); err != nil {
		return nil, err
	}
	end := name.Span()
	var msg ast.Value
	if p.c.acceptKeyword("曰") {
		msg, err = p.parseValue()
		if err != nil {
			return nil, err
		}
		end = msg.Span()
	}
	return ast.NewRaise(lexer.Span{Start: start.Span.Start, End: end.End}, name, msg), nil
}
