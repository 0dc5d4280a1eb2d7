package termview

import (
	"testing"

	"github.com/saitoha/tff"
	"github.com/stretchr/testify/assert"
)

func render(t *testing.T, width, height int, input string) *View {
	t.Helper()
	v := New(width, height)
	p := tff.NewParser()
	p.Init(v)
	assert.NoError(t, p.Parse([]byte(input)))
	return v
}

func TestViewPrintsPlainText(t *testing.T) {
	v := render(t, 10, 3, "hello")
	assert.Equal(t, "hello", v.PlainText())
}

func TestViewLineFeedAndCarriageReturn(t *testing.T) {
	v := render(t, 10, 3, "one\r\ntwo")
	assert.Equal(t, "one\ntwo", v.PlainText())
}

func TestViewCursorPosition(t *testing.T) {
	v := render(t, 10, 5, "\x1b[3;4Hx")
	col, row := v.CursorPosition()
	// CUP is 1-based; (3,4) -> 0-based row 2, col 3, then the 'x' advances
	// the column by one.
	assert.Equal(t, 4, col)
	assert.Equal(t, 2, row)
}

func TestViewCursorMovement(t *testing.T) {
	v := render(t, 10, 5, "\x1b[2;2H\x1b[1A\x1b[1C")
	col, row := v.CursorPosition()
	assert.Equal(t, 2, col)
	assert.Equal(t, 0, row)
}

func TestViewSGRTruecolor(t *testing.T) {
	v := render(t, 10, 1, "\x1b[38;2;255;128;0mx")
	row := &v.rows[0]
	cell := row.at(0)
	assert.NotNil(t, cell.Style.Foreground)
	assert.Equal(t, ColorRGB, cell.Style.Foreground.Kind)
	assert.EqualValues(t, 255, cell.Style.Foreground.R)
	assert.EqualValues(t, 128, cell.Style.Foreground.G)
	assert.EqualValues(t, 0, cell.Style.Foreground.B)
}

func TestViewSGR256Color(t *testing.T) {
	v := render(t, 10, 1, "\x1b[48;5;202mx")
	cell := v.rows[0].at(0)
	assert.Equal(t, ColorIndexed, cell.Style.Background.Kind)
	assert.EqualValues(t, 202, cell.Style.Background.Index)
}

func TestViewSGRReset(t *testing.T) {
	v := render(t, 10, 1, "\x1b[1;31mx\x1b[0my")
	assert.True(t, v.rows[0].at(0).Style.Bold)
	assert.False(t, v.rows[0].at(1).Style.Bold)
	assert.Nil(t, v.rows[0].at(1).Style.Foreground)
}

func TestViewEraseInLine(t *testing.T) {
	v := render(t, 5, 1, "abcde\r\x1b[2K")
	assert.Equal(t, "", v.PlainText())
}

func TestViewEraseInDisplay(t *testing.T) {
	v := render(t, 5, 2, "abcde\r\nfghij\x1b[1;1H\x1b[2J")
	assert.Equal(t, "", v.PlainText())
}

func TestViewScrollRegionAndScrollUp(t *testing.T) {
	v := render(t, 5, 3, "one\r\ntwo\r\nthr\x1b[1;3r\x1b[1S")
	lines := []string{v.rows[0].plainText(), v.rows[1].plainText(), v.rows[2].plainText()}
	assert.Equal(t, "two  ", lines[0])
	assert.Equal(t, "thr  ", lines[1])
}

func TestViewSaveRestoreCursor(t *testing.T) {
	v := render(t, 10, 5, "\x1b[3;3H\x1b[s\x1b[1;1H\x1b[u")
	col, row := v.CursorPosition()
	assert.Equal(t, 2, col)
	assert.Equal(t, 2, row)
}

func TestViewOSCTitle(t *testing.T) {
	v := render(t, 10, 1, "\x1b]0;my title\x07")
	assert.Equal(t, "my title", v.Title())
}

func TestViewOSCTitleSTTerminated(t *testing.T) {
	v := render(t, 10, 1, "\x1b]2;other title\x1b\\")
	assert.Equal(t, "other title", v.Title())
}

func TestViewRecordsInvalid(t *testing.T) {
	v := render(t, 10, 1, "\x1b\x1b")
	assert.Len(t, v.Invalid, 1)
	assert.Equal(t, []rune{0x1B}, v.Invalid[0])
}

func TestViewRISResets(t *testing.T) {
	v := render(t, 10, 1, "\x1b[1;31mhello\x1bc")
	assert.Equal(t, "", v.PlainText())
	assert.False(t, v.cursor.Pending.Bold)
}

func TestViewChunkBoundarySplitSequence(t *testing.T) {
	v := New(10, 1)
	p := tff.NewParser()
	p.Init(v)
	full := "\x1b[1;31mhi"
	for i := range full {
		assert.NoError(t, p.Parse([]byte{full[i]}))
	}
	assert.Equal(t, "hi", v.PlainText())
	assert.True(t, v.rows[0].at(0).Style.Bold)
}
