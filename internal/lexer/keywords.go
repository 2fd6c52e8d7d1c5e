package lexer

import "sort"

// keywordList is the closed keyword set (spec §6): the external ABI a
// conforming tokenizer must reproduce exactly, since changing it breaks
// source compatibility. It mirrors the lexemes spec.md quotes directly and
// the grammar fixtures in _examples/original_source/tests/.
//
// Type words, comparison words, and logical words are kept in this same
// table (they tokenize as ordinary Keyword tokens); TypeWords, CompareWords
// and LogicWords below merely classify a subset of it for the parser.
var keywordList = []string{
	// Declarations / naming
	"吾有", "今有", "曰", "名之曰", "其", "此", "之",
	// Value push / destructive read
	"夫", "中有陽乎", "中無陰乎",
	// Terminators
	"云云", "是矣", "是也", "是謂", "也", "者",
	// Procedure definition
	"是術曰", "乃行是術曰", "欲行是術", "必先得", "之術也", "其餘",
	// Call / pipe-take
	"取其餘", "取", "以施", "施", "於",
	// Return family
	"乃得矣", "乃歸空無", "乃得",
	// Loop control
	"乃止是遍", "乃止",
	// Conditionals
	"若其然者", "若其不然者", "或若", "若非", "若",
	// Loops
	"恆為是", "為是", "遍", "凡", "中之",
	// Exceptions
	"姑妄行此", "如事不諧", "不知何禍歟", "之禍歟", "豈", "乃作罷", "嗚呼", "之禍",
	// Assignment
	"昔之", "今", "不復存矣",
	// Arithmetic
	"加", "減", "乘", "除", "以",
	// Print / clear
	"書之", "噫",
	// Import / macro
	"吾嘗觀", "之書", "方悟", "之義", "或云", "蓋謂",
	// Container ops
	"長", "置", "充", "銜", "之長",
	// Comment
	"批曰",
	// Type words
	"數", "言", "爻", "列", "物", "術", "元",
	// Comparison words
	"不等於", "不小於", "不大於", "等於", "大於", "小於",
	// Logical words
	"且", "或",
	// Boolean literals
	"陽", "陰",
}

// byFirstRune indexes keywords by their first rune, each bucket sorted by
// descending length so the tokenizer can do a true longest-match scan
// (spec §4.2 "Longest-match keyword").
var byFirstRune map[rune][]string

func init() {
	byFirstRune = make(map[rune][]string)
	for _, kw := range keywordList {
		r := []rune(kw)[0]
		byFirstRune[r] = append(byFirstRune[r], kw)
	}
	for r, kws := range byFirstRune {
		sort.Slice(kws, func(i, j int) bool {
			return len([]rune(kws[i])) > len([]rune(kws[j]))
		})
		byFirstRune[r] = kws
	}
}

// TypeWords are the type tags usable after a count in a 吾有/今有
// declaration (spec §4.4 "Procedure parameters", §3 Declare.typeTag).
var TypeWords = map[string]bool{
	"數": true, "言": true, "爻": true, "列": true, "物": true, "術": true, "元": true,
}

// CompareWords map a keyword to the comparison operator of the condition
// comparison (CondCompare) it parses to.
var CompareWords = map[string]string{
	"等於": "==", "不等於": "!=", "大於": ">", "小於": "<", "不小於": ">=", "不大於": "<=",
}

// LogicWords map a keyword to its logical operator.
var LogicWords = map[string]string{
	"且": "&&", "或": "||",
}

// matchKeyword returns the longest keyword that is a prefix of runes[pos:],
// or "" if none matches.
func matchKeyword(runes []rune, pos int) string {
	candidates, ok := byFirstRune[runes[pos]]
	if !ok {
		return ""
	}
	for _, kw := range candidates {
		kwRunes := []rune(kw)
		if pos+len(kwRunes) > len(runes) {
			continue
		}
		match := true
		for i, r := range kwRunes {
			if runes[pos+i] != r {
				match = false
				break
			}
		}
		if match {
			return kw
		}
	}
	return ""
}
