package parser

import (
	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/lexer"
)

// parser drives statement-level dispatch over a cursor, threading the
// pending-take protocol state (spec §4.4 "Pending take") across calls.
type parser struct {
	c           *cursor
	pendingTake bool
}

// Parse tokenizes src (via a fresh lexer.Lexer, so diagnostics can map
// spans back to line/column) and parses it into a *ast.Program.
func Parse(filename, src string) (*ast.Program, error) {
	lx := lexer.New(src)
	tokens, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	return ParseTokens(filename, tokens, lx)
}

// ParseTokens parses an already-tokenized stream; Parse calls it after
// tokenizing. src may be nil if line/column diagnostics aren't needed.
func ParseTokens(filename string, tokens []lexer.Token, src *lexer.Lexer) (*ast.Program, error) {
	p := &parser{c: newCursor(tokens, filename, src)}
	var start lexer.Span
	if len(tokens) > 0 {
		start = tokens[0].Span
	}
	stmts, err := p.parseStatementsUntil("")
	if err != nil {
		return nil, err
	}
	end := start
	if n := len(stmts); n > 0 {
		end.End = stmts[n-1].Span().End
	}
	return ast.NewProgram(lexer.Span{Start: start.Start, End: end.End}, stmts), nil
}

// parseStatementsUntil parses statements until EOF or a token matching one
// of the stop keywords is reached (without consuming it); "" matches only
// EOF, for the top-level program.
func (p *parser) parseStatementsUntil(stop string) ([]ast.Stmt, error) {
	if stop == "" {
		return p.parseStatementsUntilAny()
	}
	return p.parseStatementsUntilAny(stop)
}

// parseStatementsUntilAny is parseStatementsUntil generalized to several
// alternative closers (If's 或若/若非/云云, Try's 豈/不知何禍歟/乃作罷).
func (p *parser) parseStatementsUntilAny(stops ...string) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for {
		if p.c.atEOF() {
			if p.pendingTake {
				return nil, p.c.faultHere("取後未以施")
			}
			return stmts, nil
		}
		stopped := false
		for _, kw := range stops {
			if p.c.isKeyword(kw) {
				stopped = true
				break
			}
		}
		if stopped {
			if p.pendingTake {
				return nil, p.c.faultHere("取後未以施")
			}
			return stmts, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// parseStatement dispatches on the current token's leading keyword to the
// matching construct (spec §4.4). It also enforces the pending-take
// protocol: a Take must be followed immediately by a PipeCall, and a
// PipeCall is only legal immediately after a Take.
func (p *parser) parseStatement() (ast.Stmt, error) {
	start := p.c.peek()

	if p.pendingTake && !start.Is("以施") {
		return nil, p.c.faultHere("取後需以施")
	}
	if start.Is("以施") && !p.pendingTake {
		return nil, p.c.faultHere("以施需先取")
	}

	switch {
	case start.Is("吾有"):
		p.c.advance()
		return p.parseDeclareOrProcDef(start, true)
	case start.Is("今有"):
		p.c.advance()
		return p.parseDeclareOrProcDef(start, false)
	case start.Is("名之曰"):
		p.c.advance()
		return p.parseAssign(start)
	case start.Is("夫"):
		p.c.advance()
		return p.parsePush(start)
	case start.Is("加"), start.Is("減"), start.Is("乘"), start.Is("除"):
		v, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		return v.(ast.Stmt), nil
	case start.Is("取其餘"):
		p.c.advance()
		p.pendingTake = true
		return ast.NewTake(start.Span, nil, true), nil
	case start.Is("取"):
		p.c.advance()
		stmt, err := p.parseTake(start)
		if err != nil {
			return nil, err
		}
		p.pendingTake = true
		return stmt, nil
	case start.Is("以施"):
		p.c.advance()
		p.pendingTake = false
		return p.parsePipeCall(start)
	case start.Is("施"):
		p.c.advance()
		return p.parseCall(start)
	case start.Is("乃得矣"), start.Is("乃歸空無"), start.Is("乃得"):
		p.c.advance()
		return p.parseReturn(start)
	case start.Is("乃止是遍"):
		p.c.advance()
		return ast.NewContinue(start.Span), nil
	case start.Is("乃止"):
		p.c.advance()
		return ast.NewBreak(start.Span), nil
	case start.Is("若"), start.Is("若其然者"), start.Is("若其不然者"):
		p.c.advance()
		return p.parseIf(start)
	case start.Is("恆為是"):
		p.c.advance()
		return p.parseWhile(start)
	case start.Is("為是"):
		p.c.advance()
		return p.parseFor(start)
	case start.Is("凡"):
		p.c.advance()
		return p.parseForeach(start)
	case start.Is("姑妄行此"):
		p.c.advance()
		return p.parseTry(start)
	case start.Is("嗚呼"):
		p.c.advance()
		return p.parseRaise(start)
	case start.Is("昔之"):
		p.c.advance()
		return p.parseStore(start)
	case start.Is("書之"):
		p.c.advance()
		return ast.NewPrint(start.Span), nil
	case start.Is("噫"):
		p.c.advance()
		return ast.NewClear(start.Span), nil
	case start.Is("充"):
		p.c.advance()
		return p.parseAppend(start)
	case start.Is("銜"):
		p.c.advance()
		return p.parseConcat(start)
	case start.Is("吾嘗觀"):
		p.c.advance()
		return p.parseImport(start)
	case start.Is("批曰"):
		p.c.advance()
		return p.parseComment(start)
	case start.Is("或云"):
		p.c.advance()
		return p.parseMacro(start)
	}
	return nil, p.c.faultHere("不明句式")
}

// parseComment parses 批曰「「…」」: a retained source comment.
func (p *parser) parseComment(start lexer.Token) (ast.Stmt, error) {
	tok := p.c.peek()
	if tok.Kind != lexer.StringLiteral {
		return nil, p.c.faultHere("當為注文")
	}
	p.c.advance()
	return ast.NewComment(lexer.Span{Start: start.Span.Start, End: tok.Span.End}, tok.Value), nil
}

// parseMacro parses 或云「「pattern」」蓋謂「「replacement」」: normally
// consumed by the preprocessor before the parser ever sees it, but retained
// here so --wyast can show already-expanded sources faithfully.
func (p *parser) parseMacro(start lexer.Token) (ast.Stmt, error) {
	patTok := p.c.peek()
	if patTok.Kind != lexer.StringLiteral {
		return nil, p.c.faultHere("當為注文")
	}
	p.c.advance()
	if _, err := p.c.expectKeyword("蓋謂"); err != nil {
		return nil, err
	}
	replTok := p.c.peek()
	if replTok.Kind != lexer.StringLiteral {
		return nil, p.c.faultHere("當為注文")
	}
	p.c.advance()
	return ast.NewMacro(lexer.Span{Start: start.Span.Start, End: replTok.Span.End}, patTok.Value, replTok.Value), nil
}
