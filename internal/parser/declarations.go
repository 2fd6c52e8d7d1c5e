package parser

import (
	"github.com/tcztzy/wenyan-go/internal/ast"
	"github.com/tcztzy/wenyan-go/internal/lexer"
)

// procDefLookaheadBound is how far parseDeclareOrProcDef scans past 欲行是術
// looking for the confirming 是術曰/乃行是術曰 before giving up on treating
// the declaration as a procedure definition. It must stay generous: a
// parameter group with several 曰「name」 clauses can run long before the
// body opens, and shrinking this bound turns a legal procedure definition
// into a misparsed plain declaration.
const procDefLookaheadBound = 64

// parseDeclareOrProcDef handles 吾有/今有 once the leading keyword has been
// consumed: either a plain Declare, an ObjectDef (typeTag 物), or a ProcDef,
// disambiguated by a bounded backtracking lookahead (spec §4.4
// "Procedure-definition detection").
func (p *parser) parseDeclareOrProcDef(start lexer.Token, public bool) (ast.Stmt, error) {
	count, err := p.c.expectNumber()
	if err != nil {
		return nil, err
	}
	typeTok := p.c.peek()
	if typeTok.Kind != lexer.KeywordTok || !lexer.TypeWords[typeTok.Value] {
		return nil, p.c.faultHere("當為型別")
	}
	p.c.advance()

	if typeTok.Value == "術" {
		mark := p.c.mark()
		confirmed := p.looksLikeProcDef()
		p.c.reset(mark)
		if confirmed {
			if count != "1" {
				return nil, p.c.faultAt(start.Span, "術定義數量須為一")
			}
			return p.parseProcDefTail(start, public)
		}
	}
	if typeTok.Value == "物" {
		return p.parseObjectDefTail(start, public)
	}

	inits, names, err := p.parseDeclareTail()
	if err != nil {
		return nil, err
	}
	end := start.Span
	if n := len(inits); n > 0 {
		end.End = inits[n-1].Span().End
	}
	return ast.NewDeclare(lexer.Span{Start: start.Span.Start, End: end.End}, count, typeTok.Value, inits, names, public), nil
}

// looksLikeProcDef peeks for 名之曰「name」欲行是術 and then scans up to
// procDefLookaheadBound tokens further for a confirming 是術曰/乃行是術曰.
// It advances the cursor while probing, on success and on failure alike;
// callers reset to their own mark afterwards.
func (p *parser) looksLikeProcDef() bool {
	if !p.c.isKeyword("名之曰") {
		return false
	}
	p.c.advance()
	if p.c.peek().Kind != lexer.Identifier {
		return false
	}
	p.c.advance()
	if !p.c.acceptKeyword("欲行是術") {
		return false
	}
	if p.c.acceptKeyword("必先得") {
		p.skipParamGroups()
	}
	for i := 0; i < procDefLookaheadBound && !p.c.atEOF(); i++ {
		if p.c.isKeyword("是術曰") || p.c.isKeyword("乃行是術曰") {
			return true
		}
		p.c.advance()
	}
	return false
}

// skipParamGroups advances past a 必先得 parameter-group list without
// building AST, for use inside the speculative lookahead.
func (p *parser) skipParamGroups() {
	for {
		if p.c.isKeyword("其餘") {
			p.c.advance()
			if p.c.peek().Kind == lexer.Identifier {
				p.c.advance()
			}
			return
		}
		if p.c.peek().Kind != lexer.NumberLiteral {
			return
		}
		p.c.advance()
		if p.c.peek().Kind == lexer.KeywordTok && lexer.TypeWords[p.c.peek().Value] {
			p.c.advance()
		}
		for p.c.acceptKeyword("曰") {
			if p.c.peek().Kind == lexer.Identifier {
				p.c.advance()
			}
		}
	}
}

// parseDeclareTail parses the zero-or-more 曰<init> and 名之曰「name」
// clauses that trail a 吾有/今有 <count> <type> declaration (spec §3
// Declare.Inits/.Names).
func (p *parser) parseDeclareTail() ([]ast.Value, []string, error) {
	var inits []ast.Value
	var names []string
	for {
		if p.c.acceptKeyword("曰") {
			v, err := p.parseValue()
			if err != nil {
				return nil, nil, err
			}
			inits = append(inits, v)
			continue
		}
		if p.c.acceptKeyword("名之曰") {
			name, err := p.c.expectIdentifier()
			if err != nil {
				return nil, nil, err
			}
			names = append(names, name)
			continue
		}
		break
	}
	return inits, names, nil
}

// parseObjectDefTail parses 今有一物。名之曰「name」。(曰「key」<value>)*
// (spec §3 ObjectDef).
func (p *parser) parseObjectDefTail(start lexer.Token, public bool) (ast.Stmt, error) {
	if err := p.c.acceptKeywordOrFault("名之曰"); err != nil {
		return nil, err
	}
	name, err := p.c.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var props []ast.ObjectProp
	for p.c.acceptKeyword("曰") {
		keyTok := p.c.peek()
		if keyTok.Kind != lexer.StringLiteral {
			return nil, p.c.faultHere("物鍵當為言")
		}
		p.c.advance()
		if _, err := p.c.expectKeyword("之"); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		props = append(props, ast.ObjectProp{Key: keyTok.Value, Value: v})
	}
	end := start.Span
	if n := len(props); n > 0 {
		end.End = props[n-1].Value.Span().End
	}
	return ast.NewObjectDef(lexer.Span{Start: start.Span.Start, End: end.End}, name, props), nil
}

// parseImport parses 吾嘗觀 "<module>" 之書 [方悟 name(曰 name)* 之義]
// (spec §4.3 "Import resolution").
func (p *parser) parseImport(start lexer.Token) (ast.Stmt, error) {
	modTok := p.c.peek()
	if modTok.Kind != lexer.StringLiteral {
		return nil, p.c.faultHere("當為書名")
	}
	p.c.advance()
	if _, err := p.c.expectKeyword("之書"); err != nil {
		return nil, err
	}
	var exposed []string
	end := modTok.Span
	if p.c.acceptKeyword("方悟") {
		for {
			name, err := p.c.expectIdentifier()
			if err != nil {
				return nil, err
			}
			exposed = append(exposed, name)
			if !p.c.acceptKeyword("曰") {
				break
			}
		}
		zhi, err := p.c.expectKeyword("之義")
		if err != nil {
			return nil, err
		}
		end = zhi.Span
	}
	return ast.NewImport(lexer.Span{Start: start.Span.Start, End: end.End}, modTok.Value, exposed), nil
}
