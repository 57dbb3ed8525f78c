package ppu

import "encoding/binary"

// PPU VISIBLE ADDRESSING SPACE

//  _______________________ 0x07000000
// |                      |
// |         VRAM         |
// |   96KiB, mirrored    |
// |    every 128KiB      |
//  _______________________ 0x06000000
// |                      |
// |     palette RAM      |
// |  1KiB, BG then OBJ   |
//  _______________________ 0x05000000
// |                      |
// |     IO registers     |
// |  (DISPCNT at base)   |
//  _______________________ 0x04000000

const IO_BASE = 0x04000000
const PALETTE_BASE = 0x05000000
const VRAM_BASE = 0x06000000

const DISPCNT = IO_BASE + 0x0000

const PALETTE_SIZE = 0x0400
const VRAM_SIZE = 0x18000

// start of OBJ tiles in VRAM for the bitmap modes, byte writes above this
// are ignored by the hardware
const VRAM_OBJ_BITMAP = 0x14000

type Memory struct {
	vram       [VRAM_SIZE]uint8
	paletteRam [PALETTE_SIZE]uint8
}

func (memory *Memory) Reset() {
	memory.vram = [VRAM_SIZE]uint8{}
	memory.paletteRam = [PALETTE_SIZE]uint8{}
}

func mirrorVramAddress(addr uint32) uint32 {
	addr &= 0x1FFFF
	if addr >= VRAM_SIZE {
		addr -= 0x8000
	}
	return addr
}

func mirrorPaletteAddress(addr uint32) uint32 {
	return addr & (PALETTE_SIZE - 1)
}

// MemRead16 reads a little-endian halfword. Addresses are aligned down to an
// even address, as on the hardware.
func (ppu *Ppu) MemRead16(addr uint32) uint16 {
	ppu.mu.Lock()
	defer ppu.mu.Unlock()
	return ppu.memRead16(addr)
}

func (ppu *Ppu) memRead16(addr uint32) uint16 {
	addr &^= 1
	switch addr >> 24 {
	case IO_BASE >> 24:
		if addr == DISPCNT {
			return ppu.dispcnt
		}
	case PALETTE_BASE >> 24:
		return binary.LittleEndian.Uint16(ppu.memory.paletteRam[mirrorPaletteAddress(addr):])
	case VRAM_BASE >> 24:
		return binary.LittleEndian.Uint16(ppu.memory.vram[mirrorVramAddress(addr):])
	}
	return 0
}

// MemWrite16 writes a little-endian halfword.
func (ppu *Ppu) MemWrite16(addr uint32, val uint16) {
	ppu.mu.Lock()
	defer ppu.mu.Unlock()
	ppu.memWrite16(addr, val)
}

func (ppu *Ppu) memWrite16(addr uint32, val uint16) {
	addr &^= 1
	switch addr >> 24 {
	case IO_BASE >> 24:
		if addr == DISPCNT {
			ppu.writeToDispcnt(val)
		}
	case PALETTE_BASE >> 24:
		binary.LittleEndian.PutUint16(ppu.memory.paletteRam[mirrorPaletteAddress(addr):], val)
	case VRAM_BASE >> 24:
		binary.LittleEndian.PutUint16(ppu.memory.vram[mirrorVramAddress(addr):], val)
	}
}

// MemWrite writes a single byte. Palette RAM and VRAM have a 16-bit data bus
// so the byte is written to both halves of the addressed halfword. Byte
// writes to OBJ VRAM are dropped.
func (ppu *Ppu) MemWrite(addr uint32, val uint8) {
	ppu.mu.Lock()
	defer ppu.mu.Unlock()

	switch addr >> 24 {
	case IO_BASE >> 24:
		if addr&^1 == DISPCNT {
			shift := (addr & 1) * 8
			ppu.writeToDispcnt(ppu.dispcnt&^(0xFF<<shift) | uint16(val)<<shift)
		}
	case PALETTE_BASE >> 24:
		ppu.memWrite16(addr, uint16(val)|uint16(val)<<8)
	case VRAM_BASE >> 24:
		if mirrorVramAddress(addr) < VRAM_OBJ_BITMAP {
			ppu.memWrite16(addr, uint16(val)|uint16(val)<<8)
		}
	}
}

// caller must hold ppu.mu
func (ppu *Ppu) vram16(offset uint32) uint16 {
	return binary.LittleEndian.Uint16(ppu.memory.vram[offset:])
}

// caller must hold ppu.mu
func (ppu *Ppu) palette16(index uint8) uint16 {
	return binary.LittleEndian.Uint16(ppu.memory.paletteRam[uint32(index)*2:])
}
