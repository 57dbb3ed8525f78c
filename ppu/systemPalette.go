package ppu

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ReadPalette fills palette RAM from a raw dump of little-endian BGR555
// entries. A dump of the BG palette only (512 bytes) is accepted as well as a
// full 1KiB dump. Anything shorter than one entry is an error.
func (ppu *Ppu) ReadPalette(r io.Reader) error {
	palette := make([]byte, PALETTE_SIZE)
	n, err := io.ReadFull(bufio.NewReader(r), palette)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("reading palette: %w", err)
	}
	if n < 2 {
		return fmt.Errorf("reading palette: %d bytes is not a palette", n)
	}

	ppu.mu.Lock()
	defer ppu.mu.Unlock()
	copy(ppu.memory.paletteRam[:], palette[:n&^1])
	return nil
}

func (ppu *Ppu) LoadPaletteFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ppu.ReadPalette(file)
}
