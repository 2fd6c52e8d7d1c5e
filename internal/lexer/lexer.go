package lexer

import (
	"fmt"
	"strings"

	"github.com/tcztzy/wenyan-go/internal/numeral"
)

// skippable are characters the tokenizer discards between tokens: sentence
// punctuation and whitespace (spec §4.2).
var skippable = map[rune]bool{
	'。': true, '、': true, '，': true, ',': true,
	' ': true, '\t': true, '\n': true, '\r': true,
	'！': true, '？': true, '：': true, '；': true,
}

// Lexer tokenizes Wenyan source text rune by rune, tracking byte-range
// spans into the original buffer so diagnostics and the preprocessor can
// slice the source directly (spec §3 Token.span).
type Lexer struct {
	source  string
	runes   []rune
	offsets []int // offsets[i] = byte offset of runes[i]; offsets[len(runes)] = len(source)
	pos     int   // rune index
}

// New creates a Lexer over src. CR characters are dropped up front so that
// logical lines are always LF-terminated (spec §6).
func New(src string) *Lexer {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "")
	src = strings.TrimPrefix(src, string(rune(0xFEFF)))

	runes := []rune(src)
	offsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		offsets[i] = b
		b += len(string(r))
	}
	offsets[len(runes)] = b

	return &Lexer{source: src, runes: runes, offsets: offsets}
}

// Source returns the (CR-normalized) source buffer the lexer operates over.
func (l *Lexer) Source() string { return l.source }

func (l *Lexer) byteAt(runePos int) int {
	if runePos < 0 {
		return 0
	}
	if runePos > len(l.runes) {
		runePos = len(l.runes)
	}
	return l.offsets[runePos]
}

// Fault is a tokenizer-level error (spec §7): one of 言未尽, 名未尽, or a
// numeral-decode error string, carrying the byte span of the offending run.
type Fault struct {
	Message string
	Span    Span
}

func (f *Fault) Error() string { return f.Message }

// Tokenize runs the lexer to completion, returning every token up to and
// including a final EOF-kind token, or the first Fault encountered.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	var data []rune
	dataStart := l.pos

	flush := func() {
		if len(data) == 0 {
			return
		}
		tokens = append(tokens, Token{
			Kind:  Data,
			Value: string(data),
			Span:  Span{l.byteAt(dataStart), l.byteAt(l.pos)},
		})
		data = nil
	}

	for l.pos < len(l.runes) {
		ch := l.runes[l.pos]

		if skippable[ch] {
			flush()
			l.pos++
			dataStart = l.pos
			continue
		}

		if ch == '「' && l.peek(1) == '「' {
			flush()
			tok, err := l.scanString("「「", "」」")
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			dataStart = l.pos
			continue
		}
		if ch == '『' {
			flush()
			tok, err := l.scanString("『", "』")
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			dataStart = l.pos
			continue
		}
		if ch == '「' {
			flush()
			tok, err := l.scanIdentifier()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			dataStart = l.pos
			continue
		}

		if kw := matchKeyword(l.runes, l.pos); kw != "" {
			flush()
			start := l.pos
			l.pos += len([]rune(kw))
			tokens = append(tokens, Token{
				Kind:  KeywordTok,
				Value: kw,
				Span:  Span{l.byteAt(start), l.byteAt(l.pos)},
			})
			dataStart = l.pos
			continue
		}

		if numeral.IsNumeralRune(ch) {
			flush()
			start := l.pos
			for l.pos < len(l.runes) && numeral.IsNumeralRune(l.runes[l.pos]) {
				l.pos++
			}
			raw := string(l.runes[start:l.pos])
			decoded, err := numeral.Decode(raw)
			if err != nil {
				msg := err.Error()
				if f, ok := err.(*numeral.Fault); ok {
					msg = f.Message
				}
				return nil, &Fault{Message: msg, Span: Span{l.byteAt(start), l.byteAt(l.pos)}}
			}
			tokens = append(tokens, Token{
				Kind:  NumberLiteral,
				Value: decoded,
				Span:  Span{l.byteAt(start), l.byteAt(l.pos)},
			})
			dataStart = l.pos
			continue
		}

		data = append(data, ch)
		l.pos++
	}
	flush()

	tokens = append(tokens, Token{Kind: EOF, Span: Span{l.byteAt(l.pos), l.byteAt(l.pos)}})
	return tokens, nil
}

func (l *Lexer) peek(ahead int) rune {
	p := l.pos + ahead
	if p < 0 || p >= len(l.runes) {
		return 0
	}
	return l.runes[p]
}

// scanString reads a 「「…」」 or 『…』 literal, tracking nesting depth with
// one counter shared by both families: 「「 and 『 each open a level, 」」
// and 』 each close one (spec §4.2 rule 1). A reference
// quirk: a single trailing 」 right after the outer 」」 of a 「「-opened
// literal is folded into the literal's content.
func (l *Lexer) scanString(open, close string) (Token, error) {
	start := l.pos
	openLen := len([]rune(open))
	l.pos += openLen
	depth := 1
	var content []rune

	for depth > 0 {
		if l.pos >= len(l.runes) {
			return Token{}, &Fault{Message: "言未尽", Span: Span{l.byteAt(start), l.byteAt(l.pos)}}
		}
		if l.matchesHere("「「") {
			content = append(content, '「', '「')
			depth++
			l.pos += 2
			continue
		}
		if l.matchesHere("『") {
			content = append(content, '『')
			depth++
			l.pos++
			continue
		}
		if l.matchesHere("」」") {
			depth--
			l.pos += 2
			if depth == 0 {
				if open == "「「" && l.peek(0) == '」' {
					content = append(content, '」')
					l.pos++
				}
			} else {
				content = append(content, '」', '」')
			}
			continue
		}
		if l.matchesHere("』") {
			depth--
			l.pos++
			if depth > 0 {
				content = append(content, '』')
			}
			continue
		}
		content = append(content, l.runes[l.pos])
		l.pos++
	}

	return Token{
		Kind:  StringLiteral,
		Value: string(content),
		Span:  Span{l.byteAt(start), l.byteAt(l.pos)},
	}, nil
}

func (l *Lexer) matchesHere(s string) bool {
	rs := []rune(s)
	if l.pos+len(rs) > len(l.runes) {
		return false
	}
	for i, r := range rs {
		if l.runes[l.pos+i] != r {
			return false
		}
	}
	return true
}

// scanIdentifier reads a single-「name」 token (spec §4.2 rule 2).
func (l *Lexer) scanIdentifier() (Token, error) {
	start := l.pos
	l.pos++ // consume 「
	contentStart := l.pos
	for l.pos < len(l.runes) && l.runes[l.pos] != '」' {
		l.pos++
	}
	if l.pos >= len(l.runes) {
		return Token{}, &Fault{Message: "名未尽", Span: Span{l.byteAt(start), l.byteAt(l.pos)}}
	}
	name := string(l.runes[contentStart:l.pos])
	l.pos++ // consume 」
	return Token{
		Kind:  Identifier,
		Value: name,
		Span:  Span{l.byteAt(start), l.byteAt(l.pos)},
	}, nil
}

// LineCol converts a byte offset into 1-based line and column (rune count
// from line start), for diagnostics.
func (l *Lexer) LineCol(byteOffset int) (line, col int, lineText string) {
	line = 1
	lineStartByte := 0
	for i := 0; i < len(l.runes); i++ {
		if l.offsets[i] >= byteOffset {
			break
		}
		if l.runes[i] == '\n' {
			line++
			lineStartByte = l.offsets[i+1]
		}
	}
	end := strings.IndexByte(l.source[lineStartByte:], '\n')
	if end < 0 {
		lineText = l.source[lineStartByte:]
	} else {
		lineText = l.source[lineStartByte : lineStartByte+end]
	}
	col = 1
	for b := lineStartByte; b < byteOffset && b < len(l.source); {
		_, size := decodeRune(l.source[b:])
		b += size
		col++
	}
	return line, col, lineText
}

func decodeRune(s string) (rune, int) {
	for i, r := range s {
		_ = i
		return r, len(string(r))
	}
	return 0, 1
}

// DescribeSpan renders a span for debug dumps.
func DescribeSpan(s Span) string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
