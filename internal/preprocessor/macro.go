package preprocessor

import (
	"regexp"
	"strings"
)

// MacroDef is one 或云 pattern 蓋謂 replacement rule (spec §4.3 "Macro
// definitions"). Pattern and Replacement may contain placeholders 「X」
// where X is drawn from the fixed ten-character 天干 alphabet.
type MacroDef struct {
	Pattern     string
	Replacement string
}

// placeholderAlphabet is the fixed 天干 set of legal macro-placeholder names.
const placeholderAlphabet = "甲乙丙丁戊己庚辛壬癸"

func isPlaceholderName(s string) bool {
	return len(s) > 0 && strings.ContainsRune(placeholderAlphabet, []rune(s)[0]) && len([]rune(s)) == 1
}

// compiledMacro is a MacroDef compiled into a regexp whose capture groups
// correspond, in order, to the placeholder names that appear in Pattern.
type compiledMacro struct {
	re    *regexp.Regexp
	names []string // names[i] is the placeholder bound to capture group i+1
	def   MacroDef
}

// compileMacro turns a pattern string into a DOTALL, non-greedy regexp: any
// substring 「X」 with X in the placeholder alphabet becomes a capture
// group, everything else is matched literally.
func compileMacro(def MacroDef) *compiledMacro {
	runes := []rune(def.Pattern)
	var b strings.Builder
	b.WriteString("(?s)")
	var names []string
	i := 0
	for i < len(runes) {
		if runes[i] == '「' && i+2 < len(runes) && runes[i+2] == '」' && isPlaceholderName(string(runes[i+1])) {
			b.WriteString("(.*?)")
			names = append(names, string(runes[i+1]))
			i += 3
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(runes[i])))
		i++
	}
	return &compiledMacro{re: regexp.MustCompile(b.String()), names: names, def: def}
}

// expand substitutes every occurrence of m in text that neither starts
// inside a string-literal span nor ends partway into one, restarting the
// search at the start of each
// replacement so that a macro may recursively match its own output (spec
// §4.3 "Expansion").
func (m *compiledMacro) expand(text string) string {
	pos := 0
	for {
		spans := append(scanLiterals(text), directiveSpans(text)...)
		loc := m.re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			return text
		}
		matchStart, matchEnd := pos+loc[0], pos+loc[1]
		crosses := false
		for _, s := range spans {
			if s.Start < matchEnd && matchEnd < s.End {
				crosses = true
				break
			}
		}
		if crosses || insideLiteral(matchStart, spans) {
			_, size := decodeRuneAt(text, matchStart)
			pos = matchStart + size
			if pos >= len(text) {
				return text
			}
			continue
		}
		groups := make([]string, len(m.names))
		for i := range groups {
			gs, ge := loc[2+2*i], loc[3+2*i]
			if gs >= 0 {
				groups[i] = text[pos+gs : pos+ge]
			}
		}
		repl := substitutePlaceholders(m.def.Replacement, m.names, groups)
		text = text[:matchStart] + repl + text[matchEnd:]
		pos = matchStart
	}
}

func decodeRuneAt(s string, pos int) (rune, int) {
	for i, r := range s[pos:] {
		_ = i
		return r, len(string(r))
	}
	return 0, 1
}

// substitutePlaceholders replaces every 「X」 occurrence in replacement with
// the captured text bound to placeholder X (first occurrence of X in names
// wins when a pattern reuses the same placeholder twice).
func substitutePlaceholders(replacement string, names []string, groups []string) string {
	runes := []rune(replacement)
	var b strings.Builder
	i := 0
	for i < len(runes) {
		if runes[i] == '「' && i+2 < len(runes) && runes[i+2] == '」' && isPlaceholderName(string(runes[i+1])) {
			name := string(runes[i+1])
			found := false
			for j, n := range names {
				if n == name {
					b.WriteString(groups[j])
					found = true
					break
				}
			}
			if found {
				i += 3
				continue
			}
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// ExpandMacros applies every macro in macros, in order, to text (spec §4.3
// "Concatenate macros visible at the current site in declaration order").
func ExpandMacros(macros []MacroDef, text string) string {
	for _, def := range macros {
		text = compileMacro(def).expand(text)
	}
	return text
}
