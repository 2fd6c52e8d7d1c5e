package preprocessor

import "strings"

// directiveKind distinguishes the two preprocessor-level statements this
// package must find without a full parse (spec §4.3): a macro definition or
// an import.
type directiveKind int

const (
	macroDirective directiveKind = iota
	importDirective
)

// directive is one 或云/蓋謂 or 吾嘗觀 construct found by scanning raw
// source text, along with its byte position (for fault reporting).
type directive struct {
	Kind        directiveKind
	Pos, End    int
	Pattern     string // macroDirective
	Replacement string // macroDirective
	Module      string // importDirective
	Exposed     []string
}

// directiveSpans is scanDirectives's result reduced to byte spans, used to
// keep macro expansion from matching across a 或云/蓋謂/吾嘗觀 directive's
// own text (spec §4.3's literal-span exclusion extends to these: a bare
// "之書" ending an import line must never seed an unrelated macro match).
// Parse failures are treated as "no directives" since this is a best-effort
// exclusion pass; scanDirectives' own call from collectMacros reports the
// real error.
func directiveSpans(text string) []literalSpan {
	dirs, err := scanDirectives(text)
	if err != nil {
		return nil
	}
	spans := make([]literalSpan, len(dirs))
	for i, d := range dirs {
		spans[i] = literalSpan{d.Pos, d.End}
	}
	return spans
}

// skippablePunct mirrors the punctuation the lexer discards between tokens,
// plus the ideographic space; kept
// local because scanDirectives must work on text that may not tokenize as a
// whole (spec §4.3 runs before the rest of the file is known to parse).
const skippablePunct = "。，、,！？：；\t\n\r 　"

func skipPunct(runes []rune, i int) int {
	for i < len(runes) && strings.ContainsRune(skippablePunct, runes[i]) {
		i++
	}
	return i
}

// scanDirectives finds, in source order, every top-level 或云…蓋謂… and
// 吾嘗觀…之書[…方悟…之義] construct in src, skipping any keyword occurrence
// that falls inside a string literal.
func scanDirectives(src string) ([]directive, error) {
	runes := []rune(src)
	offsets := runeByteOffsets(runes, src)
	spans := scanLiterals(src)

	var out []directive
	i := 0
	for i < len(runes) {
		bytePos := offsets[i]
		if insideLiteral(bytePos, spans) {
			i++
			continue
		}
		switch {
		case matchesAt(runes, i, "或云"):
			d, next, err := scanMacro(runes, offsets, i)
			if err != nil {
				return nil, err
			}
			d.End = offsets[next]
			out = append(out, d)
			i = next
		case matchesAt(runes, i, "吾嘗觀"):
			d, next, err := scanImport(runes, offsets, i)
			if err != nil {
				return nil, err
			}
			d.End = offsets[next]
			out = append(out, d)
			i = next
		default:
			i++
		}
	}
	return out, nil
}

// literalAt reads one 「「…」」/『…』 literal's decoded content starting at
// rune index i (after skipping punctuation), mirroring lexer.scanString's
// delimiter rules well enough to pull macro/import payload strings.
func literalAt(runes []rune, i int) (content string, next int, ok bool) {
	i = skipPunct(runes, i)
	switch {
	case matchesAt(runes, i, "「「"):
		start := i + 2
		j := start
		depth := 1
		for depth > 0 && j < len(runes) {
			switch {
			case matchesAt(runes, j, "「「"):
				depth++
				j += 2
			case matchesAt(runes, j, "『"):
				depth++
				j++
			case matchesAt(runes, j, "」」"):
				depth--
				j += 2
				if depth == 0 {
					end := j
					if j < len(runes) && runes[j] == '」' {
						j++
					}
					return string(runes[start:end]), j, true
				}
			case matchesAt(runes, j, "』"):
				depth--
				j++
			default:
				j++
			}
		}
		return "", i, false
	case matchesAt(runes, i, "『"):
		start := i + 1
		j := start
		depth := 1
		for depth > 0 && j < len(runes) {
			switch {
			case matchesAt(runes, j, "「「"):
				depth++
				j += 2
			case matchesAt(runes, j, "『"):
				depth++
				j++
			case matchesAt(runes, j, "」」"):
				depth--
				j += 2
			case matchesAt(runes, j, "』"):
				depth--
				j++
				if depth == 0 {
					return string(runes[start : j-1]), j, true
				}
			default:
				j++
			}
		}
		return "", i, false
	}
	return "", i, false
}

func identifierAt(runes []rune, i int) (name string, next int, ok bool) {
	i = skipPunct(runes, i)
	if i < len(runes) && runes[i] == '「' {
		j := i + 1
		for j < len(runes) && runes[j] != '」' {
			j++
		}
		if j < len(runes) {
			return string(runes[i+1 : j]), j + 1, true
		}
	}
	return "", i, false
}

func scanMacro(runes []rune, offsets []int, i int) (directive, int, error) {
	start := i
	i = skipPunct(runes, i+2)
	pattern, next, ok := literalAt(runes, i)
	if !ok {
		return directive{}, 0, faultAt(offsets[start], "當為注文")
	}
	i = skipPunct(runes, next)
	if !matchesAt(runes, i, "蓋謂") {
		return directive{}, 0, faultAt(offsets[i], "當為「蓋謂」")
	}
	i = skipPunct(runes, i+2)
	repl, next, ok := literalAt(runes, i)
	if !ok {
		return directive{}, 0, faultAt(offsets[start], "當為注文")
	}
	return directive{Kind: macroDirective, Pos: offsets[start], Pattern: pattern, Replacement: repl}, next, nil
}

func scanImport(runes []rune, offsets []int, i int) (directive, int, error) {
	start := i
	i = skipPunct(runes, i+3)
	module, next, ok := literalAt(runes, i)
	if !ok {
		return directive{}, 0, faultAt(offsets[start], "當為書名")
	}
	i = skipPunct(runes, next)
	if !matchesAt(runes, i, "之書") {
		return directive{}, 0, faultAt(offsets[i], "當為「之書」")
	}
	afterZhiShu := i + 2
	probe := skipPunct(runes, afterZhiShu)
	var exposed []string
	end := afterZhiShu
	if matchesAt(runes, probe, "方悟") {
		j := skipPunct(runes, probe+2)
		for {
			name, nx, ok := identifierAt(runes, j)
			if !ok {
				return directive{}, 0, faultAt(offsets[start], "當為名")
			}
			exposed = append(exposed, name)
			j = skipPunct(runes, nx)
			if matchesAt(runes, j, "曰") {
				j = skipPunct(runes, j+1)
				continue
			}
			break
		}
		if !matchesAt(runes, j, "之義") {
			return directive{}, 0, faultAt(offsets[j], "當為「之義」")
		}
		end = j + 2
	}
	return directive{Kind: importDirective, Pos: offsets[start], Module: module, Exposed: exposed}, end, nil
}
