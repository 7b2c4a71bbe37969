package random

import "image/color"

// Palette is the fixed set of target tints.
var Palette = []color.RGBA{
	Hex(0x1abc9c),
	Hex(0x2ecc71),
	Hex(0x3498db),
	Hex(0x9b59b6),
	Hex(0x34495e),
	Hex(0x16a085),
	Hex(0x27ae60),
	Hex(0x2980b9),
	Hex(0x8e44ad),
	Hex(0x2c3e50),
	Hex(0xf1c40f),
	Hex(0xe67e22),
	Hex(0xe74c3c),
	Hex(0x95a5a6),
	Hex(0xf39c12),
	Hex(0xd35400),
	Hex(0xc0392b),
	Hex(0x7f8c8d),
}

// Hex converts a 0xRRGGBB value to an opaque color.
func Hex(v uint32) color.RGBA {
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}
