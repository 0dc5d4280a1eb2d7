package termview

import "strings"

// Row is one line of the grid: a fixed-capacity slice of cells, grown to
// the view's width on creation and kept at that width.
type Row struct {
	cells []Cell
}

// newRow creates a row of the given width filled with blanks.
func newRow(width int) Row {
	cells := make([]Cell, width)
	for i := range cells {
		cells[i] = BlankCell()
	}
	return Row{cells: cells}
}

func (r *Row) len() int { return len(r.cells) }

func (r *Row) at(x int) *Cell {
	if x < 0 || x >= len(r.cells) {
		return nil
	}
	return &r.cells[x]
}

func (r *Row) set(x int, c Cell) {
	if x >= 0 && x < len(r.cells) {
		r.cells[x] = c
	}
}

func (r *Row) clear() {
	for i := range r.cells {
		r.cells[i] = BlankCell()
	}
}

func (r *Row) clearRange(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(r.cells) {
		to = len(r.cells)
	}
	for i := from; i < to; i++ {
		r.cells[i] = BlankCell()
	}
}

func (r *Row) ensureWidth(width int) {
	for len(r.cells) < width {
		r.cells = append(r.cells, BlankCell())
	}
}

func (r *Row) truncate(width int) {
	if width < len(r.cells) {
		r.cells = r.cells[:width]
	}
}

// plainText renders the row's runes with no styling, trailing spaces kept.
func (r *Row) plainText() string {
	var b strings.Builder
	for _, c := range r.cells {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// styledText renders the row emitting an SGR sequence whenever the style
// changes from the previous cell.
func (r *Row) styledText(current *Style) string {
	var b strings.Builder
	for _, c := range r.cells {
		if !c.Style.equal(*current) {
			if *current != (Style{}) {
				b.WriteString("\x1b[0m")
			}
			b.WriteString(c.Style.ToAnsiSequence())
			*current = c.Style
		}
		b.WriteRune(c.Rune)
	}
	return b.String()
}

func (r *Row) clone() Row {
	cells := make([]Cell, len(r.cells))
	copy(cells, r.cells)
	return Row{cells: cells}
}
