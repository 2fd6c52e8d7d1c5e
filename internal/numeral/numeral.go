// Package numeral decodes Classical Chinese numeral runs into canonical
// decimal strings, per spec §4.1. The integer path never touches
// floating point — it accumulates into math/big so that values like
// 負一垓 decode to the exact string "-100000000000000000000".
package numeral

import (
	"math/big"
	"strings"
)

// Fault is raised by Decode when the numeral text violates one of the
// grammar rules in spec §4.1. Message is one of the fixed error strings
// from spec §7's tokenizer fault list; the caller (the lexer) wraps it
// into a GrammarFault carrying filename/line/col.
type Fault struct {
	Message string
}

func (f *Fault) Error() string { return f.Message }

func fault(msg string) error { return &Fault{Message: msg} }

// digitValues maps the eleven base-digit hanzi to 0-9.
var digitValues = map[rune]int{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// smallUnits multiply the current digit within one large-unit section.
var smallUnits = map[rune]int64{
	'十': 10, '百': 100, '千': 1000,
}

// largeUnits flush a section into the running total, myriad by myriad.
var largeUnits = []struct {
	r   rune
	exp int
}{
	{'萬', 4}, {'億', 8}, {'兆', 12}, {'京', 16}, {'垓', 20}, {'秭', 24},
	{'穰', 28}, {'溝', 32}, {'澗', 36}, {'正', 40}, {'載', 44}, {'極', 48},
}

// fractionMarkers define decimal positions 1..12 after the point, used by
// both the 又-fraction-by-unit path and standalone "三分" style numerals.
var fractionMarkers = []rune{
	'分', '釐', '毫', '絲', '忽', '微', '纖', '沙', '塵', '埃', '渺', '漠',
}

func largeUnitExp(r rune) (int, bool) {
	for _, u := range largeUnits {
		if u.r == r {
			return u.exp, true
		}
	}
	return 0, false
}

func fractionPos(r rune) (int, bool) {
	for i, m := range fractionMarkers {
		if m == r {
			return i + 1, true
		}
	}
	return 0, false
}

// IsNumeralRune reports whether r belongs to the closed numeral character
// set (digits, units, fraction markers, 負/又/·). The lexer uses this to
// find the maximal numeral run to hand to Decode.
func IsNumeralRune(r rune) bool {
	if r == '負' || r == '又' || r == '·' {
		return true
	}
	if _, ok := digitValues[r]; ok {
		return true
	}
	if _, ok := smallUnits[r]; ok {
		return true
	}
	if _, ok := largeUnitExp(r); ok {
		return true
	}
	if _, ok := fractionPos(r); ok {
		return true
	}
	return false
}

// Decode converts a numeral run into a canonical decimal string: an
// optional leading '-', digits, and at most one '.'.
func Decode(s string) (string, error) {
	if s == "" {
		return "", fault("空數字")
	}
	runes := []rune(s)

	negative := false
	if runes[0] == '負' {
		negative = true
		runes = runes[1:]
	}
	for _, r := range runes {
		if r == '負' {
			return "", fault("多重負號")
		}
	}
	if len(runes) == 0 {
		return "", fault("空數字")
	}

	for _, r := range runes {
		if !IsNumeralRune(r) {
			return "", fault("非數值字符")
		}
	}

	dotCount := 0
	yòuCount := 0
	for _, r := range runes {
		if r == '·' {
			dotCount++
		}
		if r == '又' {
			yòuCount++
		}
	}
	if dotCount > 1 {
		return "", fault("多重小數點")
	}
	if yòuCount > 1 {
		return "", fault("多重又")
	}
	if dotCount == 1 && yòuCount == 1 {
		return "", fault("混用小數點與又")
	}

	var out string
	var err error
	switch {
	case dotCount == 1:
		out, err = decodeDotted(runes)
	case yòuCount == 1:
		out, err = decodeYou(runes)
	default:
		out, err = decodeIntegerOrFraction(runes)
	}
	if err != nil {
		return "", err
	}
	if negative {
		out = "-" + out
	}
	return out, nil
}

// decodeDotted handles the "一·二三" form: integer part . fractional part,
// both made only of base digits.
func decodeDotted(runes []rune) (string, error) {
	idx := -1
	for i, r := range runes {
		if r == '·' {
			idx = i
			break
		}
	}
	if idx == 0 || idx == len(runes)-1 {
		return "", fault("小數點位置錯誤")
	}
	left, right := runes[:idx], runes[idx+1:]
	var lb, rb strings.Builder
	for _, r := range left {
		d, ok := digitValues[r]
		if !ok {
			return "", fault("小數點位置錯誤")
		}
		lb.WriteByte(byte('0' + d))
	}
	for _, r := range right {
		d, ok := digitValues[r]
		if !ok {
			return "", fault("小數點位置錯誤")
		}
		rb.WriteByte(byte('0' + d))
	}
	intPart := strings.TrimLeft(lb.String(), "0")
	if intPart == "" {
		intPart = "0"
	}
	return intPart + "." + rb.String(), nil
}

// decodeYou handles the "一又二分三釐" / "一又二" forms: an integer left
// half summed with either a fraction-by-unit or an integer right half.
func decodeYou(runes []rune) (string, error) {
	idx := -1
	for i, r := range runes {
		if r == '又' {
			idx = i
			break
		}
	}
	left, right := runes[:idx], runes[idx+1:]
	if len(right) == 0 {
		return "", fault("又後為空")
	}

	leftInt, err := decodeIntegerRunes(left)
	if err != nil {
		return "", err
	}

	hasMarker := false
	for _, r := range right {
		if _, ok := fractionPos(r); ok {
			hasMarker = true
			break
		}
	}

	if !hasMarker {
		rightInt, err := decodeIntegerRunes(right)
		if err != nil {
			return "", err
		}
		sum := new(big.Int)
		sum.Add(leftInt, rightInt)
		return sum.String(), nil
	}

	frac, err := decodeFractionByUnit(right)
	if err != nil {
		return "", err
	}
	return leftInt.String() + "." + frac, nil
}

// decodeIntegerOrFraction handles plain numerals with no separator: either
// a pure integer ("十二"), or a standalone fraction-by-unit run ("三分").
func decodeIntegerOrFraction(runes []rune) (string, error) {
	hasMarker := false
	for _, r := range runes {
		if _, ok := fractionPos(r); ok {
			hasMarker = true
			break
		}
	}
	if hasMarker {
		frac, err := decodeFractionByUnit(runes)
		if err != nil {
			return "", err
		}
		return "0." + frac, nil
	}
	v, err := decodeIntegerRunes(runes)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// decodeIntegerRunes implements spec §4.1 rule 4: an accumulator of
// current-digit/section/total, where small units multiply the current
// digit into a section and large units flush the section into the total.
func decodeIntegerRunes(runes []rune) (*big.Int, error) {
	total := new(big.Int)
	section := new(big.Int)
	var curDigit *big.Int

	flushDigit := func() {
		if curDigit != nil {
			section.Add(section, curDigit)
			curDigit = nil
		}
	}

	for _, r := range runes {
		switch {
		case func() bool { _, ok := digitValues[r]; return ok }():
			// Consecutive digits read positionally: 一二三 is 123.
			d := big.NewInt(int64(digitValues[r]))
			if curDigit != nil {
				d.Add(d, new(big.Int).Mul(curDigit, big.NewInt(10)))
			}
			curDigit = d
		case func() bool { _, ok := smallUnits[r]; return ok }():
			unit := smallUnits[r]
			val := big.NewInt(1)
			if curDigit != nil {
				val = curDigit
			}
			section.Add(section, new(big.Int).Mul(val, big.NewInt(unit)))
			curDigit = nil
		case func() bool { _, ok := largeUnitExp(r); return ok }():
			flushDigit()
			exp, _ := largeUnitExp(r)
			if section.Sign() == 0 {
				section.SetInt64(1)
			}
			mult := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
			section.Mul(section, mult)
			total.Add(total, section)
			section.SetInt64(0)
		default:
			return nil, fault("非數值字符")
		}
	}
	flushDigit()
	total.Add(total, section)
	if len(runes) == 0 {
		return nil, fault("空數字")
	}
	return total, nil
}

// decodeFractionByUnit implements spec §4.1 rule 5: decimal-unit markers
// name fixed positions 1..12 after the decimal point; digits attach to the
// next marker position and position may only advance.
func decodeFractionByUnit(runes []rune) (string, error) {
	digits := make([]int, 13) // 1-indexed, 0 unused
	set := make([]bool, 13)
	curPos := 0
	var pending *int

	assign := func(pos int, value int) error {
		if pos <= curPos {
			return fault("小數位錯序")
		}
		if pos > 12 {
			return fault("小數位過長")
		}
		digits[pos] = value
		set[pos] = true
		curPos = pos
		return nil
	}

	for _, r := range runes {
		if d, ok := digitValues[r]; ok {
			v := d
			pending = &v
			continue
		}
		if pos, ok := fractionPos(r); ok {
			val := 1
			if pending != nil {
				val = *pending
			}
			if err := assign(pos, val); err != nil {
				return "", err
			}
			pending = nil
			continue
		}
		return "", fault("非數值字符")
	}
	if pending != nil {
		if err := assign(curPos+1, *pending); err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	maxPos := 0
	for p := 1; p <= 12; p++ {
		if set[p] {
			maxPos = p
		}
	}
	if maxPos == 0 {
		return "", fault("非數值字符")
	}
	for p := 1; p <= maxPos; p++ {
		sb.WriteByte(byte('0' + digits[p]))
	}
	return sb.String(), nil
}
