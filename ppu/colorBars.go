package ppu

import "vsasakiv/gbadisplay/rgb555"

var barColors = [...]rgb555.Color{
	rgb555.New(24, 24, 24),
	rgb555.New(24, 24, 0),
	rgb555.New(0, 24, 24),
	rgb555.New(0, 24, 0),
	rgb555.New(24, 0, 24),
	rgb555.New(24, 0, 0),
	rgb555.New(0, 0, 24),
	rgb555.Black,
}

// ColorBars is a program for the emulated machine. It puts the display in
// mode 3 and draws vertical colour bars over a grey ramp. A white marker
// moves across the ramp, one pixel per tick, so that a stalled display is
// easy to spot.
func ColorBars(ppu *Ppu, tick uint64) {
	ppu.mu.Lock()
	defer ppu.mu.Unlock()

	ppu.writeToDispcnt(3 | 1<<10)

	const barsHeight = LCD_HEIGHT * 2 / 3
	const barWidth = uint32(LCD_WIDTH / len(barColors))

	marker := uint32(tick % LCD_WIDTH)

	for y := uint32(0); y < LCD_HEIGHT; y++ {
		for x := uint32(0); x < LCD_WIDTH; x++ {
			var c rgb555.Color
			switch {
			case y < barsHeight:
				c = barColors[x/barWidth]
			case x == marker:
				c = rgb555.White
			default:
				v := uint8(x * 32 / LCD_WIDTH)
				c = rgb555.New(v, v, v)
			}
			ppu.memWrite16(VRAM_BASE+(y*LCD_WIDTH+x)*2, uint16(c))
		}
	}
}
