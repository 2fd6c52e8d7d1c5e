// Package parser implements the Wenyan recursive-descent parser (spec
// §4.4): token stream in, *ast.Program out, resolving the grammar's
// context-sensitive ambiguities (procedure-definition lookahead, the
// dangling-terminator rules, and the pending-take protocol).
package parser

import (
	"github.com/tcztzy/wenyan-go/internal/errors"
	"github.com/tcztzy/wenyan-go/internal/lexer"
)

// cursor is a linear, backtrackable read head over a token slice. Parser
// methods that need lookahead beyond one token (procedure-definition
// detection, the 夫…中有陽乎 backtrack) save a mark and restore it if the
// speculative parse doesn't pan out.
type cursor struct {
	tokens   []lexer.Token
	pos      int
	filename string
	source   *lexer.Lexer
}

func newCursor(tokens []lexer.Token, filename string, src *lexer.Lexer) *cursor {
	return &cursor{tokens: tokens, filename: filename, source: src}
}

func (c *cursor) mark() int { return c.pos }

func (c *cursor) reset(mark int) { c.pos = mark }

func (c *cursor) peek() lexer.Token { return c.peekN(0) }

func (c *cursor) peekN(n int) lexer.Token {
	i := c.pos + n
	if i >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1] // EOF
	}
	return c.tokens[i]
}

func (c *cursor) advance() lexer.Token {
	t := c.peek()
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return t
}

func (c *cursor) atEOF() bool { return c.peek().Kind == lexer.EOF }

// isKeyword reports whether the current token is the keyword kw.
func (c *cursor) isKeyword(kw string) bool { return c.peek().Is(kw) }

// acceptKeyword consumes the current token if it is the keyword kw.
func (c *cursor) acceptKeyword(kw string) bool {
	if c.isKeyword(kw) {
		c.advance()
		return true
	}
	return false
}

// acceptKeywordTok is acceptKeyword that also returns the consumed token.
func (c *cursor) acceptKeywordTok(kw string) (lexer.Token, bool) {
	if c.isKeyword(kw) {
		return c.advance(), true
	}
	return lexer.Token{}, false
}

// expectKeyword consumes kw or raises 當為「<k>」.
func (c *cursor) expectKeyword(kw string) (lexer.Token, error) {
	if c.isKeyword(kw) {
		return c.advance(), nil
	}
	return lexer.Token{}, c.faultHere("當為「" + kw + "」")
}

// acceptKeywordOrFault is expectKeyword without the matched token, for
// callers that only need the error.
func (c *cursor) acceptKeywordOrFault(kw string) error {
	_, err := c.expectKeyword(kw)
	return err
}

// expectKeywordMsg is expectKeyword with a caller-supplied diagnostic
// message, for closers whose spec-assigned fault code differs from the
// generic 當為「<k>」 (若未終, 循環未終).
func (c *cursor) expectKeywordMsg(kw, message string) (lexer.Token, error) {
	if c.isKeyword(kw) {
		return c.advance(), nil
	}
	return lexer.Token{}, c.faultHere(message)
}

// expectIdentifier consumes an Identifier token or raises 當為名.
func (c *cursor) expectIdentifier() (string, error) {
	if c.peek().Kind == lexer.Identifier {
		return c.advance().Value, nil
	}
	return "", c.faultHere("當為名")
}

// expectNumber consumes a NumberLiteral token or raises 當為數.
func (c *cursor) expectNumber() (string, error) {
	if c.peek().Kind == lexer.NumberLiteral {
		return c.advance().Value, nil
	}
	return "", c.faultHere("當為數")
}

// faultHere builds a GrammarFault at the current token's position.
func (c *cursor) faultHere(message string) *errors.GrammarFault {
	tok := c.peek()
	return c.faultAt(tok.Span, message)
}

func (c *cursor) faultAt(span lexer.Span, message string) *errors.GrammarFault {
	line, col, lineText := 1, 1, ""
	if c.source != nil {
		line, col, lineText = c.source.LineCol(span.Start)
	}
	return errors.New(c.filename, line, col, lineText, message)
}
