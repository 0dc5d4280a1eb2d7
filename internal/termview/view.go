package termview

import (
	"strings"

	"github.com/saitoha/tff"
)

// View is a tff.Context backed by a fixed-size cell grid. It tracks cursor
// position, pending SGR style, a single scroll region, a saved-cursor slot,
// and the G0/G1 charset designations SI/SO shift between, and interprets
// enough of CSI/ESC/OSC to drive a plain-text or ANSI-colored render of
// whatever was written to it. It is not a full terminal: the alternate
// screen and most private modes (DEC or otherwise) are not tracked.
type View struct {
	tff.BaseContext

	width, height int
	rows          []Row
	cursor        Cursor
	saved         *SavedCursor
	style         Style
	scrollTop     int
	scrollBottom  int
	title         string

	charsets [4]StandardCharset
	activeG  CharsetIndex

	// Invalid records the raw code points of every DispatchInvalid call, in
	// order, so tests and cmd/tffcat's run mode can inspect what the
	// stream's malformed sequences looked like.
	Invalid [][]rune
}

var _ tff.Context = (*View)(nil)

// New creates a View with the given grid dimensions.
func New(width, height int) *View {
	v := &View{width: width, height: height}
	v.rows = make([]Row, height)
	for i := range v.rows {
		v.rows[i] = newRow(width)
	}
	v.cursor = NewCursor()
	v.scrollTop = 0
	v.scrollBottom = height - 1
	return v
}

// Dimensions returns the grid's width and height.
func (v *View) Dimensions() (int, int) { return v.width, v.height }

// CursorPosition returns the 0-based cursor column and row.
func (v *View) CursorPosition() (int, int) { return v.cursor.X, v.cursor.Y }

// Title returns the most recent OSC 0/1/2 window title, or "" if none was
// ever set.
func (v *View) Title() string { return v.title }

// PlainText renders the grid's runes with no styling, one row per line,
// trailing blank rows and trailing spaces on each row trimmed.
func (v *View) PlainText() string {
	lines := make([]string, len(v.rows))
	for i := range v.rows {
		lines[i] = strings.TrimRight(v.rows[i].plainText(), " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// StyledText renders the grid re-emitting SGR sequences at every style
// change, suitable for round-tripping back to a real terminal.
func (v *View) StyledText() string {
	var b strings.Builder
	current := Style{}
	for i := range v.rows {
		b.WriteString(v.rows[i].styledText(&current))
		if i < len(v.rows)-1 {
			b.WriteString("\n")
		}
	}
	if current != (Style{}) {
		b.WriteString("\x1b[0m")
	}
	return strings.TrimRight(b.String(), " \n")
}

func (v *View) clampCursor() {
	v.cursor.X = clamp(v.cursor.X, 0, v.width-1)
	v.cursor.Y = clamp(v.cursor.Y, 0, v.height-1)
}

// DispatchChar implements tff.Context: printable code points advance the
// cursor and wrap; C0 controls execute their terminal function.
func (v *View) DispatchChar(c rune) error {
	switch {
	case c == 0x0A: // LF
		v.cursor.lineFeed()
		v.clampCursor()
	case c == 0x0D: // CR
		v.cursor.carriageReturn()
	case c == 0x08: // BS
		v.cursor.moveLeft(1)
	case c == 0x09: // HT, next 8-column stop
		next := ((v.cursor.X / 8) + 1) * 8
		if next >= v.width {
			next = v.width - 1
		}
		v.cursor.X = next
	case c == 0x07: // BEL
		// no-op: View does not model an audible/visible bell
	case c == 0x0F: // SI, shift to G0
		v.activeG = G0
	case c == 0x0E: // SO, shift to G1
		v.activeG = G1
	case c < 0x20 || c == 0x7F:
		// other C0/DEL controls have no grid effect here
	default:
		v.print(c)
	}
	return nil
}

func (v *View) print(c rune) {
	if v.cursor.Y >= len(v.rows) {
		return
	}
	c = v.charsets[v.activeG].Map(c)
	row := &v.rows[v.cursor.Y]
	row.ensureWidth(v.width)
	if v.cursor.X >= v.width {
		v.cursor.carriageReturn()
		v.cursor.lineFeed()
		v.clampCursor()
		row = &v.rows[v.cursor.Y]
	}
	cell := NewCell(c, v.style)
	row.set(v.cursor.X, cell)
	v.cursor.X += cell.Width
}

// DispatchInvalid implements tff.Context by recording the rejected
// sequence; it does not otherwise affect the grid.
func (v *View) DispatchInvalid(seq []rune) error {
	cp := make([]rune, len(seq))
	copy(cp, seq)
	v.Invalid = append(v.Invalid, cp)
	return nil
}

// DispatchEsc implements tff.Context for charset designation (ESC ( / ) /
// * / + followed by a charset final byte) and the two-character escape
// sequences used by cursor save/restore, index, and reset.
func (v *View) DispatchEsc(intermediates []rune, final rune) error {
	if len(intermediates) == 1 {
		if idx, ok := charsetIntermediate(intermediates[0]); ok {
			if cs, ok := standardCharsetFromFinal(final); ok {
				v.charsets[idx] = cs
			}
		}
		return nil
	}
	if len(intermediates) != 0 {
		return nil
	}
	switch final {
	case 'D': // IND
		v.cursor.lineFeed()
		v.clampCursor()
	case 'M': // RI
		v.cursor.moveUp(1)
	case 'E': // NEL
		v.cursor.newLine()
		v.clampCursor()
	case '7': // DECSC
		saved := v.cursor.save()
		v.saved = &saved
	case '8': // DECRC
		if v.saved != nil {
			v.cursor.restore(*v.saved)
			v.style = v.cursor.Pending
		}
	case 'c': // RIS
		v.resetToInitialState()
	}
	return nil
}

func (v *View) resetToInitialState() {
	v.cursor = NewCursor()
	v.style = Style{}
	v.saved = nil
	v.scrollTop = 0
	v.scrollBottom = v.height - 1
	v.title = ""
	v.charsets = [4]StandardCharset{}
	v.activeG = G0
	for i := range v.rows {
		v.rows[i] = newRow(v.width)
	}
}

// DispatchCSI implements tff.Context for cursor movement, erase, SGR, and
// the scroll-region/scroll operations.
func (v *View) DispatchCSI(params, intermediates []rune, final rune) error {
	if len(intermediates) != 0 {
		return nil
	}
	groups := tff.ParseCSIParams(params)
	arg := func(i int, def int) int {
		if i < len(groups) && len(groups[i]) > 0 && groups[i][0] > 0 {
			return int(groups[i][0])
		}
		return def
	}

	switch final {
	case 'H', 'f': // CUP / HVP
		v.cursor.Y = clamp(arg(0, 1)-1, 0, v.height-1)
		v.cursor.X = clamp(arg(1, 1)-1, 0, v.width-1)
	case 'A':
		v.cursor.moveUp(arg(0, 1))
	case 'B':
		v.cursor.moveDown(arg(0, 1))
	case 'C':
		v.cursor.moveRight(arg(0, 1))
	case 'D':
		v.cursor.moveLeft(arg(0, 1))
	case 'G':
		v.cursor.X = clamp(arg(0, 1)-1, 0, v.width-1)
	case 'd':
		v.cursor.Y = clamp(arg(0, 1)-1, 0, v.height-1)
	case 'J':
		v.eraseInDisplay(arg(0, 0))
	case 'K':
		v.eraseInLine(arg(0, 0))
	case 'm':
		v.style.applySGR(groups)
		v.cursor.Pending = v.style
	case 'r':
		top, bottom := arg(0, 1), arg(1, v.height)
		if top < bottom && top >= 1 && bottom <= v.height {
			v.scrollTop, v.scrollBottom = top-1, bottom-1
		}
	case 's':
		saved := v.cursor.save()
		v.saved = &saved
	case 'u':
		if v.saved != nil {
			v.cursor.restore(*v.saved)
			v.style = v.cursor.Pending
		}
	case 'S':
		v.scroll(arg(0, 1), true)
	case 'T':
		v.scroll(arg(0, 1), false)
	}
	v.clampCursor()
	return nil
}

func (v *View) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		if v.cursor.Y < len(v.rows) {
			v.rows[v.cursor.Y].clearRange(v.cursor.X, v.width)
		}
		for y := v.cursor.Y + 1; y < len(v.rows); y++ {
			v.rows[y].clear()
		}
	case 1:
		for y := 0; y < v.cursor.Y && y < len(v.rows); y++ {
			v.rows[y].clear()
		}
		if v.cursor.Y < len(v.rows) {
			v.rows[v.cursor.Y].clearRange(0, v.cursor.X+1)
		}
	case 2, 3:
		for y := range v.rows {
			v.rows[y].clear()
		}
	}
}

func (v *View) eraseInLine(mode int) {
	if v.cursor.Y >= len(v.rows) {
		return
	}
	row := &v.rows[v.cursor.Y]
	switch mode {
	case 0:
		row.clearRange(v.cursor.X, v.width)
	case 1:
		row.clearRange(0, v.cursor.X+1)
	case 2:
		row.clear()
	}
}

func (v *View) scroll(lines int, up bool) {
	if lines <= 0 {
		return
	}
	top, bottom := v.scrollTop, v.scrollBottom
	if top >= bottom {
		return
	}
	for n := 0; n < lines; n++ {
		if up {
			for y := top; y < bottom; y++ {
				v.rows[y] = v.rows[y+1]
			}
			v.rows[bottom] = newRow(v.width)
		} else {
			for y := bottom; y > top; y-- {
				v.rows[y] = v.rows[y-1]
			}
			v.rows[top] = newRow(v.width)
		}
	}
}

// DispatchControlString implements tff.Context for OSC 0/1/2 (window
// title); DCS/SOS/PM/APC payloads are recognized but not interpreted.
func (v *View) DispatchControlString(prefix rune, payload []rune) error {
	if prefix != ']' {
		return nil
	}
	s := string(payload)
	idx := strings.IndexByte(s, ';')
	if idx < 0 {
		return nil
	}
	switch s[:idx] {
	case "0", "1", "2":
		v.title = s[idx+1:]
	}
	return nil
}

// DispatchSS2 and DispatchSS3 implement tff.Context for the single-shot
// introducers; View treats both as printing the final character into the
// current cell through the active G0/G1 charset. The G2/G3 designations
// stored by ESC * and ESC + are not consulted.
func (v *View) DispatchSS2(final rune) error {
	v.print(final)
	return nil
}

func (v *View) DispatchSS3(final rune) error {
	v.print(final)
	return nil
}
