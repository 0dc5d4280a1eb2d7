package termview

// RGB resolves an SGR Color to its concrete 24-bit value, using the
// standard VT100/xterm default palette for named colors and the xterm
// 256-color cube/grayscale ramp for indexed colors. Truecolor values are
// returned as-is.
func (c Color) RGB() (r, g, b uint8) {
	switch c.Kind {
	case ColorRGB:
		return c.R, c.G, c.B
	case ColorIndexed:
		return indexedToRGB(c.Index)
	case ColorNamed:
		return namedToRGB(c.Named)
	default:
		return 0, 0, 0
	}
}

// named16 is the default VT100/xterm RGB value of the 16 standard colors,
// indexed 0-7 for the base set and 8-15 for the bright variants.
var named16 = [16][3]uint8{
	{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
	{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
	{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
	{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
}

// namedToRGB maps an SGR named-color code, in the foreground form applySGR
// stores for both foregrounds and backgrounds (30-37, or 90-97 for the
// bright set), to its xterm default.
func namedToRGB(base uint8) (r, g, b uint8) {
	idx := base - 30
	if base >= 90 {
		idx = base - 90 + 8
	}
	if int(idx) >= len(named16) {
		return 0, 0, 0
	}
	c := named16[idx]
	return c[0], c[1], c[2]
}

// indexedToRGB resolves a 256-color palette index: 0-15 are the named
// colors, 16-231 are the 6x6x6 color cube, 232-255 are a 24-step grayscale
// ramp, matching xterm's default palette.
func indexedToRGB(index uint8) (r, g, b uint8) {
	switch {
	case index < 16:
		c := named16[index]
		return c[0], c[1], c[2]
	case index < 232:
		cube := index - 16
		levels := [6]uint8{0, 95, 135, 175, 215, 255}
		return levels[cube/36], levels[(cube/6)%6], levels[cube%6]
	default:
		gray := uint8(8 + (index-232)*10)
		return gray, gray, gray
	}
}
