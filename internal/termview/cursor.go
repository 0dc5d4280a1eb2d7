package termview

// Cursor tracks the active write position and the style that will be
// applied to the next printed cell.
type Cursor struct {
	X, Y    int
	Pending Style
	Shape   CursorShape
	Hidden  bool
}

// NewCursor creates a cursor at the origin with default style.
func NewCursor() Cursor {
	return Cursor{Shape: CursorShapeBlock}
}

func (c *Cursor) moveUp(n int) {
	c.Y -= n
	if c.Y < 0 {
		c.Y = 0
	}
}

func (c *Cursor) moveDown(n int) { c.Y += n }

func (c *Cursor) moveLeft(n int) {
	c.X -= n
	if c.X < 0 {
		c.X = 0
	}
}

func (c *Cursor) moveRight(n int) { c.X += n }

func (c *Cursor) carriageReturn() { c.X = 0 }

func (c *Cursor) lineFeed() { c.Y++ }

func (c *Cursor) newLine() {
	c.lineFeed()
	c.carriageReturn()
}

// SavedCursor is the subset of Cursor state that DECSC/DECRC and
// SCOSC/SCORC save and restore.
type SavedCursor struct {
	X, Y int
	Style Style
}

func (c *Cursor) save() SavedCursor {
	return SavedCursor{X: c.X, Y: c.Y, Style: c.Pending}
}

func (c *Cursor) restore(s SavedCursor) {
	c.X, c.Y, c.Pending = s.X, s.Y, s.Style
}

// CursorShape names a visual cursor shape of the kind DECSCUSR selects.
// View does not interpret DECSCUSR (it ignores CSI sequences with
// intermediates), so Cursor.Shape stays at its initial block value.
type CursorShape int

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeUnderline
	CursorShapeBar
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
