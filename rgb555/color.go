// Package rgb555 implements the packed 15-bit colour used by the GBA LCD.
//
// A Color holds three 5-bit channels in a 16-bit word:
//
//	bit  15    14-10   9-5     4-0
//	     -     blue    green   red
//
// Bit 15 is unused and ignored by every accessor.
package rgb555

import "image/color"

type Color uint16

const MASK5 = 0x1F

const (
	Black Color = 0x0000
	White Color = 0x7FFF
)

// New packs three 5-bit channels. Upper bits of each channel are discarded.
func New(r, g, b uint8) Color {
	return Color(uint16(r&MASK5) | uint16(g&MASK5)<<5 | uint16(b&MASK5)<<10)
}

// FromRGB888 reduces 8-bit channels to the nearest lower 5-bit value.
func FromRGB888(r, g, b uint8) Color {
	return New(r>>3, g>>3, b>>3)
}

func (c Color) Red() uint8   { return uint8(c) & MASK5 }
func (c Color) Green() uint8 { return uint8(c>>5) & MASK5 }
func (c Color) Blue() uint8  { return uint8(c>>10) & MASK5 }

// Expand widens a 5-bit channel to 8 bits. The top three bits are
// replicated into the low three so that 0 maps to 0 and 31 maps to 255.
func Expand(v uint8) uint8 {
	v &= MASK5
	return (v << 3) | (v >> 2)
}

// RGB returns the colour as 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return Expand(c.Red()), Expand(c.Green()), Expand(c.Blue())
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB()
	r = uint32(r8) | uint32(r8)<<8
	g = uint32(g8) | uint32(g8)<<8
	b = uint32(b8) | uint32(b8)<<8
	return r, g, b, 0xFFFF
}

// Model converts any color.Color to a Color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return FromRGB888(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})
