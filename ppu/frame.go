package ppu

import "vsasakiv/gbadisplay/rgb555"

// GBA LCD resolution
const LCD_WIDTH = 240
const LCD_HEIGHT = 160

// Frame is one complete LCD image, row-major.
type Frame [LCD_HEIGHT][LCD_WIDTH]rgb555.Color

func (frame *Frame) Fill(c rgb555.Color) {
	for y := range frame {
		for x := range frame[y] {
			frame[y][x] = c
		}
	}
}

func (frame *Frame) At(x uint, y uint) rgb555.Color {
	return frame[y][x]
}

func (frame *Frame) setPixel(x uint, y uint, c rgb555.Color) {
	frame[y][x] = c
}
