package preprocessor

// literalSpan is a byte range [Start,End) of a 「「…」」/『…』 string
// literal in a raw source buffer, computed independently of the full
// lexer.Lexer so macro scanning can run before the source is guaranteed to
// tokenize cleanly (spec §4.3 expansion must "use rule 4.2(1) to precompute
// literal spans").
type literalSpan struct{ Start, End int }

// scanLiterals walks src once, in rune order, tracking the same nested
// 「「…」」/『…』 counting rule as lexer.Lexer.scanString (including the
// trailing-lone-」 compatibility quirk), and returns every top-level
// literal's byte span.
func scanLiterals(src string) []literalSpan {
	runes := []rune(src)
	offsets := runeByteOffsets(runes, src)

	var spans []literalSpan
	i := 0
	for i < len(runes) {
		switch {
		case matchesAt(runes, i, "「「"):
			start := i
			i += 2
			depth := 1
			for depth > 0 && i < len(runes) {
				switch {
				case matchesAt(runes, i, "「「"):
					depth++
					i += 2
				case matchesAt(runes, i, "『"):
					depth++
					i++
				case matchesAt(runes, i, "」」"):
					depth--
					i += 2
					if depth == 0 && i < len(runes) && runes[i] == '」' {
						i++
					}
				case matchesAt(runes, i, "』"):
					depth--
					i++
				default:
					i++
				}
			}
			spans = append(spans, literalSpan{offsets[start], offsets[min(i, len(runes))]})
		case matchesAt(runes, i, "『"):
			start := i
			i++
			depth := 1
			for depth > 0 && i < len(runes) {
				switch {
				case matchesAt(runes, i, "「「"):
					depth++
					i += 2
				case matchesAt(runes, i, "『"):
					depth++
					i++
				case matchesAt(runes, i, "」」"):
					depth--
					i += 2
				case matchesAt(runes, i, "』"):
					depth--
					i++
				default:
					i++
				}
			}
			spans = append(spans, literalSpan{offsets[start], offsets[min(i, len(runes))]})
		default:
			i++
		}
	}
	return spans
}

func matchesAt(runes []rune, pos int, s string) bool {
	rs := []rune(s)
	if pos+len(rs) > len(runes) {
		return false
	}
	for i, r := range rs {
		if runes[pos+i] != r {
			return false
		}
	}
	return true
}

func runeByteOffsets(runes []rune, src string) []int {
	offsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		offsets[i] = b
		b += len(string(r))
	}
	offsets[len(runes)] = len(src)
	return offsets
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// insideLiteral reports whether byte offset pos falls strictly inside one
// of spans.
func insideLiteral(pos int, spans []literalSpan) bool {
	for _, s := range spans {
		if pos >= s.Start && pos < s.End {
			return true
		}
	}
	return false
}
