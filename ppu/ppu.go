package ppu

import (
	"errors"
	"fmt"
	"sync"

	"vsasakiv/gbadisplay/rgb555"
)

// dispcnt settings
const BG_MODE = "BG_MODE"
const FRAME_SELECT = "FRAME_SELECT"
const FORCED_BLANK = "FORCED_BLANK"
const BG2_ENABLE = "BG2_ENABLE"

// bitmap mode geometry
const MODE5_WIDTH = 160
const MODE5_HEIGHT = 128
const PAGE_SIZE = 0xA000

var ErrUnsupportedMode = errors.New("unsupported video mode")
var ErrInvalidMode = errors.New("invalid video mode")

// Ppu is the picture processing side of the emulated machine. It owns VRAM,
// palette RAM and the display control register and knows how to turn them
// into a Frame.
//
// Only the bitmap modes (3, 4 and 5) are implemented. Tile modes are
// reported as ErrUnsupportedMode by Render().
type Ppu struct {
	mu      sync.Mutex
	dispcnt uint16
	memory  Memory
	// number of completed Render() calls
	renders uint64
}

func NewPpu() *Ppu {
	var ppu Ppu
	ppu.Reset()
	return &ppu
}

func (ppu *Ppu) Reset() {
	ppu.mu.Lock()
	defer ppu.mu.Unlock()
	// the BIOS leaves the display in forced blank until a program sets it up
	ppu.dispcnt = 1 << 7
	ppu.memory.Reset()
	ppu.renders = 0
}

// Renders returns the number of frames rendered since the last reset.
func (ppu *Ppu) Renders() uint64 {
	ppu.mu.Lock()
	defer ppu.mu.Unlock()
	return ppu.renders
}

// Render draws the current state of VRAM into frame. Every pixel of the frame
// is written on success. On failure the frame is left untouched.
func (ppu *Ppu) Render(frame *Frame) error {
	ppu.mu.Lock()
	defer ppu.mu.Unlock()

	mode := ppu.getDispcntSetting(BG_MODE)
	if mode > 5 {
		return fmt.Errorf("%w: mode %d", ErrInvalidMode, mode)
	}

	switch {
	case ppu.getDispcntSetting(FORCED_BLANK) == 1:
		frame.Fill(rgb555.White)
	case mode < 3:
		return fmt.Errorf("%w: mode %d", ErrUnsupportedMode, mode)
	case ppu.getDispcntSetting(BG2_ENABLE) == 0:
		frame.Fill(ppu.backdrop())
	case mode == 3:
		ppu.renderMode3(frame)
	case mode == 4:
		ppu.renderMode4(frame)
	case mode == 5:
		ppu.renderMode5(frame)
	}

	ppu.renders++
	return nil
}

func (ppu *Ppu) backdrop() rgb555.Color {
	return rgb555.Color(ppu.palette16(0))
}

func (ppu *Ppu) pageBase() uint32 {
	return uint32(ppu.getDispcntSetting(FRAME_SELECT)) * PAGE_SIZE
}

// 240x160, one halfword per pixel, single page
func (ppu *Ppu) renderMode3(frame *Frame) {
	for y := range uint(LCD_HEIGHT) {
		for x := range uint(LCD_WIDTH) {
			frame.setPixel(x, y, rgb555.Color(ppu.vram16(uint32(y*LCD_WIDTH+x)*2)))
		}
	}
}

// 240x160, one palette index byte per pixel, two pages
func (ppu *Ppu) renderMode4(frame *Frame) {
	base := ppu.pageBase()
	for y := range uint(LCD_HEIGHT) {
		for x := range uint(LCD_WIDTH) {
			index := ppu.memory.vram[base+uint32(y*LCD_WIDTH+x)]
			frame.setPixel(x, y, rgb555.Color(ppu.palette16(index)))
		}
	}
}

// 160x128, one halfword per pixel, two pages. The rest of the screen shows
// the backdrop.
func (ppu *Ppu) renderMode5(frame *Frame) {
	base := ppu.pageBase()
	backdrop := ppu.backdrop()
	for y := range uint(LCD_HEIGHT) {
		for x := range uint(LCD_WIDTH) {
			if x >= MODE5_WIDTH || y >= MODE5_HEIGHT {
				frame.setPixel(x, y, backdrop)
				continue
			}
			frame.setPixel(x, y, rgb555.Color(ppu.vram16(base+uint32(y*MODE5_WIDTH+x)*2)))
		}
	}
}

// ----- DISPCNT 0x04000000 REGISTER -----

func (ppu *Ppu) writeToDispcnt(val uint16) {
	// bit 3 is only writeable by the BIOS
	ppu.dispcnt = val &^ (1 << 3)
}

func (ppu *Ppu) SetDispcnt(val uint16) {
	ppu.mu.Lock()
	defer ppu.mu.Unlock()
	ppu.writeToDispcnt(val)
}

func (ppu *Ppu) getDispcntSetting(setting string) uint16 {
	switch setting {
	case BG_MODE:
		return ppu.dispcnt & 0b111
	case FRAME_SELECT:
		return (ppu.dispcnt >> 4) & 0b1
	case FORCED_BLANK:
		return (ppu.dispcnt >> 7) & 0b1
	case BG2_ENABLE:
		return (ppu.dispcnt >> 10) & 0b1
	}
	return 0
}
