package render

import (
	"iter"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cory-johannsen/hexcombat/internal/game/hex"
)

// OddQ is a hex position in odd-q offset coordinates: flat-topped hexes
// whose odd columns sit half a hex lower than their even neighbours.
type OddQ struct {
	Col int
	Row int
}

// ToOddQ converts an axial position to odd-q offset coordinates.
func ToOddQ(p hex.Pos) OddQ {
	return OddQ{Col: p.Q, Row: p.R + (p.Q-(p.Q&1))/2}
}

// Axial converts o back to axial coordinates.
func (o OddQ) Axial() hex.Pos {
	return hex.P(o.Row-(o.Col-(o.Col&1))/2, o.Col)
}

// Span is the half-open range [From, To).
type Span struct {
	From int
	To   int
}

// Cell is one line of text inside a hex. Color is applied after the text
// is fitted to the hex, so it never affects layout.
type Cell struct {
	Text  string
	Color string
}

// Content supplies the text drawn inside each hex. line counts from 0 at
// the top of the hex to 2*HalfHeight-2 just above its bottom edge; the
// widest line is HalfHeight-1.
type Content interface {
	HexContent(pos hex.Pos, line int) Cell
}

// ContentFunc adapts a function to Content.
type ContentFunc func(pos hex.Pos, line int) Cell

// HexContent calls f.
func (f ContentFunc) HexContent(pos hex.Pos, line int) Cell { return f(pos, line) }

// Layout sizes each hex: FlatWidth is the length of its top and bottom edges,
// HalfHeight the number of text lines in each half.
type Layout struct {
	FlatWidth  int
	HalfHeight int
	Color      bool
}

// DefaultLayout fits a short name, a health line and a condition line.
var DefaultLayout = Layout{FlatWidth: 7, HalfHeight: 3}

// ContentLines returns the number of content lines inside one hex.
func (l Layout) ContentLines() int { return 2*l.HalfHeight - 1 }

// Grid draws every hex in rows × cols (odd-q) and fills it from c. Columns
// are drawn in even/odd pairs starting at cols.From.
//
// Precondition: l.FlatWidth >= 1 and l.HalfHeight >= 1.
// Postcondition: lines carry no trailing spaces and end in "\n".
func Grid(c Content, rows, cols Span, l Layout) string {
	if l.FlatWidth < 1 || l.HalfHeight < 1 {
		panic("render.Grid: FlatWidth and HalfHeight must be positive")
	}
	w, h := l.FlatWidth, l.HalfHeight
	subRows := 2 * h
	widest := w + 2*(h-1)

	var out []string
	var b strings.Builder
	for range pairs(cols) {
		b.WriteString(strings.Repeat(" ", h))
		b.WriteString(strings.Repeat("_", w))
		b.WriteString(strings.Repeat(" ", h+w))
	}
	out = append(out, b.String())

	for row := rows.From; row < rows.To; row++ {
		for sub := range subRows {
			b.Reset()
			upper := sub < h
			left, right := "╱", "╲"
			if !upper {
				left, right = "╲", "╱"
			}
			pad := (absInt(2*h-1-2*sub) - 1) / 2
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(left)

			oddRow := row
			if upper {
				oddRow--
			}
			oddSub := (sub + h) % subRows
			for col := range pairs(cols) {
				if sub == subRows-1 {
					b.WriteString(strings.Repeat("_", w))
				} else {
					b.WriteString(fit(c.HexContent(OddQ{Col: col, Row: row}.Axial(), sub), widest-2*pad, l.Color))
				}
				b.WriteString(right)
				if oddSub == subRows-1 {
					b.WriteString(strings.Repeat("_", w))
				} else {
					b.WriteString(fit(c.HexContent(OddQ{Col: col + 1, Row: oddRow}.Axial(), oddSub), w+2*pad, l.Color))
				}
				b.WriteString(left)
			}
			out = append(out, b.String())
		}
	}

	for i := range out {
		out[i] = strings.TrimRight(out[i], " ")
	}
	return strings.Join(out, "\n") + "\n"
}

// pairs yields the even-offset columns of cols: From, From+2, ...
func pairs(cols Span) iter.Seq[int] {
	return func(yield func(int) bool) {
		for col := cols.From; col < cols.To; col += 2 {
			if !yield(col) {
				return
			}
		}
	}
}

// fit truncates cell's text to width cells, centres it, then colours it.
func fit(cell Cell, width int, color bool) string {
	text := runewidth.Truncate(StripANSI(cell.Text), width, "")
	pad := width - runewidth.StringWidth(text)
	left := pad / 2
	if color {
		text = Colorize(cell.Color, text)
	}
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Bounds returns the odd-q rows and columns covering every position with
// margin hexes to spare on each side. cols.From is always even. An empty
// positions slice covers the origin.
func Bounds(positions []hex.Pos, margin int) (rows, cols Span) {
	if len(positions) == 0 {
		positions = []hex.Pos{{}}
	}
	first := ToOddQ(positions[0])
	minRow, maxRow, minCol, maxCol := first.Row, first.Row, first.Col, first.Col
	for _, p := range positions[1:] {
		o := ToOddQ(p)
		minRow, maxRow = min(minRow, o.Row), max(maxRow, o.Row)
		minCol, maxCol = min(minCol, o.Col), max(maxCol, o.Col)
	}
	minCol -= margin
	if minCol&1 != 0 {
		minCol--
	}
	return Span{From: minRow - margin, To: maxRow + margin + 1},
		Span{From: minCol, To: maxCol + margin + 1}
}
