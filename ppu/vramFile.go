package ppu

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ReadVram copies a raw VRAM dump into VRAM starting at offset zero and
// returns the number of bytes copied. A mode 3 screen dump (76800 bytes) is
// the most common input. Dumps larger than VRAM are an error.
func (ppu *Ppu) ReadVram(r io.Reader) (int, error) {
	reader := bufio.NewReader(r)

	vram := make([]byte, VRAM_SIZE)
	n, err := io.ReadFull(reader, vram)
	switch err {
	case nil:
		switch _, err := reader.ReadByte(); err {
		case nil:
			return 0, fmt.Errorf("reading vram: dump is larger than %d bytes", VRAM_SIZE)
		case io.EOF:
		default:
			return 0, fmt.Errorf("reading vram: %w", err)
		}
	case io.ErrUnexpectedEOF, io.EOF:
	default:
		return 0, fmt.Errorf("reading vram: %w", err)
	}

	ppu.mu.Lock()
	defer ppu.mu.Unlock()
	copy(ppu.memory.vram[:], vram[:n])
	return n, nil
}

func (ppu *Ppu) LoadVramFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return ppu.ReadVram(file)
}
