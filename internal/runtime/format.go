package runtime

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"golang.org/x/text/width"
)

// Format implements Print: render every value currently on __stack
// through __format, space-joined, newline-terminated (spec §4.6
// "Printing"). The process-wide __no_output_hanzi flag picks between the
// two formatter modes.
func (rt *Machine) Format(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = rt.render(v, 0)
	}
	return strings.Join(parts, " ") + "\n"
}

func (rt *Machine) render(v Value, indent int) string {
	switch v.Kind {
	case KindNum:
		return formatNumber(v.Num)
	case KindStr:
		return v.Str
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	case KindList:
		if rt.NoOutputHanzi {
			return rt.renderListCompat(v.List, indent)
		}
		return rt.renderListDefault(v.List)
	case KindDict:
		return rt.renderDict(v.Dict, indent)
	case KindProc:
		return "[術 " + v.Proc.Name + "]"
	}
	return ""
}

// formatNumber renders r as the shortest decimal string that round-trips
// back to r exactly, falling back to an exact "a/b" rational literal for
// fractions with no terminating decimal expansion (e.g. 1/3).
func formatNumber(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	for prec := 1; prec <= 30; prec++ {
		s := r.FloatString(prec)
		back, ok := new(big.Rat).SetString(s)
		if ok && back.Cmp(r) == 0 {
			return s
		}
	}
	return r.RatString()
}

// renderListDefault is the natural (non-compatibility) list format: a
// single inline row, since the spec only mandates the reference CLI's
// exact column-aligned layout for compatibility mode.
func (rt *Machine) renderListDefault(l *List) string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = rt.render(item, 0)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (rt *Machine) renderDict(d *Dict, indent int) string {
	parts := make([]string, len(d.Keys))
	for i, k := range d.Keys {
		v, _ := d.Get(k)
		parts[i] = k + ": " + rt.render(v, indent+2)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

const screenWidth = 80
const truncateAt = 100

// renderListCompat reproduces the reference CLI's compatibility-mode list
// layout (spec §4.6 "List column layout"): short lists print inline,
// longer ones column-align using the computed column count, truncating
// at 100 items with a synthetic unaligned "... N more" row.
func (rt *Machine) renderListCompat(l *List, indent int) string {
	items := l.Items
	more := 0
	if len(items) > truncateAt {
		more = len(items) - truncateAt
		items = items[:truncateAt]
	}
	if len(items) == 0 {
		return "[ ]"
	}

	rendered := make([]string, len(items))
	numeric := true
	for i, item := range items {
		rendered[i] = rt.render(item, indent+2)
		if item.Kind != KindNum {
			numeric = false
		}
	}

	n := len(rendered)
	total := 0
	maxLen := 0
	for _, s := range rendered {
		l := displayWidth(s)
		total += l
		if l > maxLen {
			maxLen = l
		}
	}
	colWidth := maxLen + 2

	cols := 1
	singleColumn := 3*colWidth+indent >= screenWidth && float64(total)/float64(colWidth) <= 5 && maxLen > 6
	if !singleColumn {
		bias := math.Sqrt(math.Max(float64(colWidth)-float64(total)/float64(n), 0))
		effective := math.Max(float64(colWidth)-3-bias, 1)
		cols = minInt(
			minInt(
				roundInt(math.Sqrt(2.5*effective*float64(n))/effective),
				(screenWidth-indent)/colWidth,
			),
			minInt(12, 15),
		)
		if cols < 1 {
			cols = 1
		}
	}

	if more == 0 && n <= cols {
		return "[ " + strings.Join(rendered, ", ") + " ]"
	}

	colRowWidth := make([]int, cols)
	for c := 0; c < cols; c++ {
		w := 0
		for i := c; i < n; i += cols {
			if l := displayWidth(rendered[i]); l > w {
				w = l
			}
		}
		colRowWidth[c] = w + 2
	}

	var b strings.Builder
	pad := strings.Repeat(" ", indent+2)
	b.WriteString("[\n")
	for i := 0; i < n; i += cols {
		b.WriteString(pad)
		for c := 0; c < cols && i+c < n; c++ {
			cell := rendered[i+c]
			if i+c < n-1 || more > 0 {
				cell += ","
			}
			cellWidth := colRowWidth[c]
			if numeric {
				b.WriteString(strings.Repeat(" ", cellWidth-displayWidth(cell)))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", cellWidth-displayWidth(cell)))
			}
		}
		b.WriteString("\n")
	}
	if more > 0 {
		b.WriteString(pad)
		b.WriteString(fmt.Sprintf("... %d more\n", more))
	}
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString("]")
	return b.String()
}

// displayWidth is the terminal column width of s, counting East Asian
// wide/fullwidth runes as two columns (spec §4.6's list layout packs
// columns by *display* width, not rune count, since Wenyan source and
// output is CJK-heavy).
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func roundInt(f float64) int {
	return int(math.Round(f))
}
