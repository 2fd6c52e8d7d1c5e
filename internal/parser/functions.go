package parser

import (
	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/lexer"
)

// parseProcDefTail re-parses, for real this time, the 名之曰「name」欲行是術
// [必先得 …] (是術曰|乃行是術曰) body 是謂「name」之術也 construct that
// looksLikeProcDef already confirmed speculatively.
func (p *parser) parseProcDefTail(start lexer.Token, public bool) (ast.Stmt, error) {
	if err := p.c.acceptKeywordOrFault("名之曰"); err != nil {
		return nil, err
	}
	name, err := p.c.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.c.acceptKeywordOrFault("欲行是術"); err != nil {
		return nil, err
	}
	var params []ast.Param
	var rest *ast.Param
	if p.c.acceptKeyword("必先得") {
		params, rest, err = p.parseParamGroups()
		if err != nil {
			return nil, err
		}
	}
	if !p.c.acceptKeyword("是術曰") && !p.c.acceptKeyword("乃行是術曰") {
		return nil, p.c.faultHere("當為「是術曰」")
	}
	body, err := p.parseStatementsUntil("是謂")
	if err != nil {
		return nil, err
	}
	closer, err := p.c.expectKeyword("是謂")
	if err != nil {
		return nil, err
	}
	closingName, err := p.c.expectIdentifier()
	if err != nil {
		return nil, err
	}
	end, err := p.c.expectKeyword("之術也")
	if err != nil {
		return nil, err
	}
	if closingName != name {
		return nil, p.c.faultAt(closer.Span, "術名不可多")
	}
	return ast.NewProcDef(lexer.Span{Start: start.Span.Start, End: end.Span.End}, name, params, rest, body, public), nil
}

// parseParamGroups builds the Param list declared by 必先得: repeated
// <count> <type> 曰「name」(曰「name2」)* groups, with an optional trailing
// 其餘 <type> 曰「name」 variadic tail (spec §4.4 "Procedure parameters").
func (p *parser) parseParamGroups() ([]ast.Param, *ast.Param, error) {
	var params []ast.Param
	var rest *ast.Param
	for {
		if p.c.acceptKeyword("其餘") {
			restType := p.c.peek()
			if restType.Kind != lexer.KeywordTok || !lexer.TypeWords[restType.Value] {
				return nil, nil, p.c.faultHere("當為型別")
			}
			p.c.advance()
			if err := p.c.acceptKeywordOrFault("曰"); err != nil {
				return nil, nil, err
			}
			name, err := p.c.expectIdentifier()
			if err != nil {
				return nil, nil, err
			}
			rest = &ast.Param{TypeTag: restType.Value, Name: name}
			return params, rest, nil
		}
		if p.c.peek().Kind != lexer.NumberLiteral {
			return params, rest, nil
		}
		p.c.advance()
		typeTok := p.c.peek()
		if typeTok.Kind != lexer.KeywordTok || !lexer.TypeWords[typeTok.Value] {
			return nil, nil, p.c.faultHere("當為型別")
		}
		p.c.advance()
		if err := p.c.acceptKeywordOrFault("曰"); err != nil {
			return nil, nil, err
		}
		for {
			name, err := p.c.expectIdentifier()
			if err != nil {
				return nil, nil, err
			}
			params = append(params, ast.Param{TypeTag: typeTok.Value, Name: name})
			if !p.c.acceptKeyword("曰") {
				break
			}
		}
	}
}

// parseTake parses 取 <n> / 取其餘, which arms the pending-take protocol:
// the very next statement must be 以施 <callee> (spec §4.4 "Pending take").
func (p *parser) parseTake(start lexer.Token) (ast.Stmt, error) {
	if p.c.acceptKeyword("其餘") {
		return ast.NewTake(start.Span, nil, true), nil
	}
	numTok := p.c.peek()
	n, err := p.c.expectNumber()
	if err != nil {
		return nil, err
	}
	count := decimalToInt(n)
	return ast.NewTake(lexer.Span{Start: start.Span.Start, End: numTok.Span.End}, &count, false), nil
}

// parsePipeCall parses 以施 <callee>, only legal immediately after a Take
// statement; the caller (parseStatement's dispatcher) enforces that
// adjacency and raises 以施需先取 otherwise.
func (p *parser) parsePipeCall(start lexer.Token) (ast.Stmt, error) {
	callee, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return ast.NewPipeCall(lexer.Span{Start: start.Span.Start, End: callee.Span().End}, callee), nil
}

// parseCall parses 施 <callee> (於 <arg>)* (spec §3 Call).
func (p *parser) parseCall(start lexer.Token) (ast.Stmt, error) {
	callee, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	end := callee.Span()
	var args []ast.Value
	for p.c.acceptKeyword("於") {
		arg, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		end = arg.Span()
	}
	return ast.NewCall(lexer.Span{Start: start.Span.Start, End: end.End}, callee, args), nil
}

// decimalToInt converts a decoded-numeral decimal string (always
// non-negative and small for a take count) to an int for Take.Count.
func decimalToInt(decimal string) int {
	n := 0
	for _, r := range decimal {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
