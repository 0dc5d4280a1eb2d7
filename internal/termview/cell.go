// Package termview is a small cell-grid terminal emulator built on top of
// tff.Parser/tff.Context. It exists to exercise the Context contract
// end-to-end with something more substantial than a no-op, not to be a
// complete terminal: scrollback, alternate screens, and most private modes
// are out of scope.
package termview

import (
	"fmt"
	"strings"
)

// Cell is a single grid position: a display rune (already width-measured)
// plus the graphic rendition in effect when it was written.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// NewCell creates a Cell with the given style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: runeWidth(r), Style: style}
}

// BlankCell is a space cell with no style, used to clear grid positions.
func BlankCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: Style{}}
}

// Style holds the SGR attributes accumulated for a cell.
type Style struct {
	Foreground *Color
	Background *Color
	Bold       bool
	Dim        bool
	Italic     bool
	Underline  bool
	Blink      bool
	Reverse    bool
	Hidden     bool
	Strike     bool
}

func (s Style) equal(o Style) bool {
	return colorEqual(s.Foreground, o.Foreground) &&
		colorEqual(s.Background, o.Background) &&
		s.Bold == o.Bold && s.Dim == o.Dim && s.Italic == o.Italic &&
		s.Underline == o.Underline && s.Blink == o.Blink &&
		s.Reverse == o.Reverse && s.Hidden == o.Hidden && s.Strike == o.Strike
}

// ToAnsiSequence renders the attributes (not including a leading reset) as
// an SGR escape sequence, for round-tripping a rendered grid back to a
// terminal.
func (s Style) ToAnsiSequence() string {
	var b strings.Builder
	writeIf := func(on bool, code string) {
		if on {
			b.WriteString("\x1b[")
			b.WriteString(code)
			b.WriteString("m")
		}
	}
	writeIf(s.Bold, "1")
	writeIf(s.Dim, "2")
	writeIf(s.Italic, "3")
	writeIf(s.Underline, "4")
	writeIf(s.Blink, "5")
	writeIf(s.Reverse, "7")
	writeIf(s.Hidden, "8")
	writeIf(s.Strike, "9")
	if s.Foreground != nil {
		b.WriteString(s.Foreground.fgSequence())
	}
	if s.Background != nil {
		b.WriteString(s.Background.bgSequence())
	}
	return b.String()
}

// ColorKind distinguishes the three ways a Color can be specified.
type ColorKind int

const (
	ColorNamed ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is an SGR color value: one of the 16 named colors, a 256-color
// palette index, or a 24-bit RGB triple (SGR 38/48;2;...).
type Color struct {
	Kind  ColorKind
	Named uint8 // foreground-form SGR code (30-37, bright 90-97); a red bg is stored as 31
	Index uint8
	R, G, B uint8
}

func colorEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func namedColor(base uint8) Color {
	return Color{Kind: ColorNamed, Named: base}
}

func (c Color) fgSequence() string {
	switch c.Kind {
	case ColorNamed:
		return fmt.Sprintf("\x1b[%dm", c.Named)
	case ColorIndexed:
		return fmt.Sprintf("\x1b[38;5;%dm", c.Index)
	case ColorRGB:
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	default:
		return ""
	}
}

func (c Color) bgSequence() string {
	switch c.Kind {
	case ColorNamed:
		return fmt.Sprintf("\x1b[%dm", c.Named+10)
	case ColorIndexed:
		return fmt.Sprintf("\x1b[48;5;%dm", c.Index)
	case ColorRGB:
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
	default:
		return ""
	}
}

// applySGR applies one CSI 'm' parameter group list to the style, matching
// ECMA-48's Select Graphic Rendition semantics including the extended
// (38/48;5;n and 38/48;2;r;g;b) truecolor forms.
func (s *Style) applySGR(groups [][]uint16) {
	i := 0
	for i < len(groups) {
		if len(groups[i]) == 0 {
			i++
			continue
		}
		switch groups[i][0] {
		case 0:
			*s = Style{}
		case 1:
			s.Bold = true
		case 2:
			s.Dim = true
		case 3:
			s.Italic = true
		case 4:
			s.Underline = true
		case 5, 6:
			s.Blink = true
		case 7:
			s.Reverse = true
		case 8:
			s.Hidden = true
		case 9:
			s.Strike = true
		case 21, 22:
			s.Bold, s.Dim = false, false
		case 23:
			s.Italic = false
		case 24:
			s.Underline = false
		case 25:
			s.Blink = false
		case 27:
			s.Reverse = false
		case 28:
			s.Hidden = false
		case 29:
			s.Strike = false
		case 30, 31, 32, 33, 34, 35, 36, 37:
			c := namedColor(uint8(groups[i][0]))
			s.Foreground = &c
		case 38:
			consumed := s.applyExtendedColor(groups[i:], true)
			i += consumed - 1
		case 39:
			s.Foreground = nil
		case 40, 41, 42, 43, 44, 45, 46, 47:
			c := namedColor(uint8(groups[i][0] - 10))
			s.Background = &c
		case 48:
			consumed := s.applyExtendedColor(groups[i:], false)
			i += consumed - 1
		case 49:
			s.Background = nil
		case 90, 91, 92, 93, 94, 95, 96, 97:
			c := namedColor(uint8(groups[i][0]))
			s.Foreground = &c
		case 100, 101, 102, 103, 104, 105, 106, 107:
			c := namedColor(uint8(groups[i][0] - 10))
			s.Background = &c
		}
		i++
	}
}

// applyExtendedColor consumes the 38/48 subform starting at groups[0] and
// returns how many groups it consumed (including the 38/48 itself), so the
// caller's loop can skip past them. A subform shorter than ECMA-48 requires
// is treated as if it terminated early: it consumes what it can and stops.
func (s *Style) applyExtendedColor(groups [][]uint16, fg bool) int {
	if len(groups) < 2 || len(groups[1]) == 0 {
		return 1
	}
	switch groups[1][0] {
	case 2: // r;g;b
		if len(groups) < 5 {
			return len(groups)
		}
		c := Color{Kind: ColorRGB}
		if len(groups[2]) > 0 {
			c.R = uint8(groups[2][0])
		}
		if len(groups[3]) > 0 {
			c.G = uint8(groups[3][0])
		}
		if len(groups[4]) > 0 {
			c.B = uint8(groups[4][0])
		}
		if fg {
			s.Foreground = &c
		} else {
			s.Background = &c
		}
		return 5
	case 5: // palette index
		if len(groups) < 3 || len(groups[2]) == 0 {
			return 2
		}
		c := Color{Kind: ColorIndexed, Index: uint8(groups[2][0])}
		if fg {
			s.Foreground = &c
		} else {
			s.Background = &c
		}
		return 3
	default:
		return 2
	}
}

// runeWidth returns the display width of r. Control characters occupy no
// column; everything else, including non-ASCII code points, is treated as
// single-width. A full East Asian Width / combining-mark table is outside
// this package's scope.
func runeWidth(r rune) int {
	if r < 0x20 || r == 0x7F {
		return 0
	}
	return 1
}
