package ppu_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"vsasakiv/gbadisplay/ppu"
	"vsasakiv/gbadisplay/rgb555"
	"vsasakiv/gbadisplay/test"
)

const mode3 = 3 | 1<<10
const mode4 = 4 | 1<<10
const mode5 = 5 | 1<<10

func render(t *testing.T, p *ppu.Ppu) *ppu.Frame {
	t.Helper()
	var frame ppu.Frame
	test.DemandSuccess(t, p.Render(&frame))
	return &frame
}

func TestResetIsForcedBlank(t *testing.T) {
	p := ppu.NewPpu()
	frame := render(t, p)
	test.ExpectEquality(t, frame.At(0, 0), rgb555.White)
	test.ExpectEquality(t, frame.At(ppu.LCD_WIDTH-1, ppu.LCD_HEIGHT-1), rgb555.White)
	test.ExpectEquality(t, p.Renders(), uint64(1))
}

func TestMode3(t *testing.T) {
	p := ppu.NewPpu()
	p.SetDispcnt(mode3)

	c := rgb555.New(1, 2, 3)
	p.MemWrite16(ppu.VRAM_BASE+(10*ppu.LCD_WIDTH+20)*2, uint16(c))

	frame := render(t, p)
	test.ExpectEquality(t, frame.At(20, 10), c)
	test.ExpectEquality(t, frame.At(21, 10), rgb555.Black)
}

func TestMode4(t *testing.T) {
	p := ppu.NewPpu()
	p.SetDispcnt(mode4)

	c := rgb555.New(31, 0, 0)
	p.MemWrite16(ppu.PALETTE_BASE+7*2, uint16(c))
	p.MemWrite(ppu.VRAM_BASE+5, 7)

	frame := render(t, p)
	// byte writes to VRAM fill both halves of the halfword
	test.ExpectEquality(t, frame.At(4, 0), c)
	test.ExpectEquality(t, frame.At(5, 0), c)
	test.ExpectEquality(t, frame.At(6, 0), rgb555.Black)

	// second page
	p.SetDispcnt(mode4 | 1<<4)
	frame = render(t, p)
	test.ExpectEquality(t, frame.At(5, 0), rgb555.Black)
}

func TestMode5(t *testing.T) {
	p := ppu.NewPpu()
	p.SetDispcnt(mode5)

	backdrop := rgb555.New(0, 0, 31)
	p.MemWrite16(ppu.PALETTE_BASE, uint16(backdrop))

	c := rgb555.New(0, 31, 0)
	p.MemWrite16(ppu.VRAM_BASE+(1*ppu.MODE5_WIDTH+1)*2, uint16(c))

	frame := render(t, p)
	test.ExpectEquality(t, frame.At(1, 1), c)
	test.ExpectEquality(t, frame.At(ppu.MODE5_WIDTH, 0), backdrop)
	test.ExpectEquality(t, frame.At(0, ppu.MODE5_HEIGHT), backdrop)
}

func TestBG2Disabled(t *testing.T) {
	p := ppu.NewPpu()
	p.SetDispcnt(3)
	backdrop := rgb555.New(5, 5, 5)
	p.MemWrite16(ppu.PALETTE_BASE, uint16(backdrop))
	p.MemWrite16(ppu.VRAM_BASE, uint16(rgb555.White))

	frame := render(t, p)
	test.ExpectEquality(t, frame.At(0, 0), backdrop)
}

func TestRenderFailures(t *testing.T) {
	p := ppu.NewPpu()
	var frame ppu.Frame
	frame.Fill(rgb555.New(1, 1, 1))

	p.SetDispcnt(0 | 1<<10)
	err := p.Render(&frame)
	test.ExpectEquality(t, errors.Is(err, ppu.ErrUnsupportedMode), true)

	p.SetDispcnt(6 | 1<<10)
	err = p.Render(&frame)
	test.ExpectEquality(t, errors.Is(err, ppu.ErrInvalidMode), true)

	// failed renders leave the frame alone
	test.ExpectEquality(t, frame.At(0, 0), rgb555.New(1, 1, 1))
	test.ExpectEquality(t, p.Renders(), uint64(0))
}

func TestMemoryMirrors(t *testing.T) {
	p := ppu.NewPpu()

	p.MemWrite16(ppu.PALETTE_BASE+0x402, 0x1234)
	test.ExpectEquality(t, p.MemRead16(ppu.PALETTE_BASE+0x002), uint16(0x1234))

	// upper 32KiB of the 128KiB VRAM window mirrors 0x10000
	p.MemWrite16(ppu.VRAM_BASE+0x18000, 0xBEEF)
	test.ExpectEquality(t, p.MemRead16(ppu.VRAM_BASE+0x10000), uint16(0xBEEF))

	// unaligned access is aligned down
	test.ExpectEquality(t, p.MemRead16(ppu.VRAM_BASE+0x10001), uint16(0xBEEF))

	// byte writes to OBJ VRAM are ignored
	p.MemWrite(ppu.VRAM_BASE+ppu.VRAM_OBJ_BITMAP, 0xFF)
	test.ExpectEquality(t, p.MemRead16(ppu.VRAM_BASE+ppu.VRAM_OBJ_BITMAP), uint16(0))
}

func TestDispcntAccess(t *testing.T) {
	p := ppu.NewPpu()
	p.MemWrite16(ppu.DISPCNT, mode3|1<<3)
	// bit 3 can't be set by software
	test.ExpectEquality(t, p.MemRead16(ppu.DISPCNT), uint16(mode3))

	p.MemWrite(ppu.DISPCNT, 4)
	test.ExpectEquality(t, p.MemRead16(ppu.DISPCNT), uint16(mode4))
}

func TestReadPalette(t *testing.T) {
	p := ppu.NewPpu()
	c := rgb555.New(3, 6, 9)
	test.DemandSuccess(t, p.ReadPalette(bytes.NewReader([]byte{byte(c), byte(c >> 8), 0xFF})))
	test.ExpectEquality(t, p.MemRead16(ppu.PALETTE_BASE), uint16(c))
	// the odd trailing byte is not a complete entry
	test.ExpectEquality(t, p.MemRead16(ppu.PALETTE_BASE+2), uint16(0))

	test.ExpectFailure(t, p.ReadPalette(bytes.NewReader([]byte{0x01})))
}

func TestReadVram(t *testing.T) {
	p := ppu.NewPpu()
	p.SetDispcnt(mode3)

	dump := make([]byte, ppu.LCD_WIDTH*ppu.LCD_HEIGHT*2)
	for i := 0; i < len(dump); i += 2 {
		dump[i] = byte(uint16(rgb555.White) & 0xFF)
		dump[i+1] = byte(uint16(rgb555.White) >> 8)
	}
	n, err := p.ReadVram(bytes.NewReader(dump))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, len(dump))

	frame := render(t, p)
	test.ExpectEquality(t, frame.At(ppu.LCD_WIDTH-1, ppu.LCD_HEIGHT-1), rgb555.White)

	_, err = p.ReadVram(bytes.NewReader(make([]byte, ppu.VRAM_SIZE+1)))
	test.ExpectFailure(t, err)
}

func TestReadVramPassesOnReadErrors(t *testing.T) {
	p := ppu.NewPpu()

	errDevice := errors.New("device gone")
	r := io.MultiReader(bytes.NewReader(make([]byte, ppu.VRAM_SIZE)), iotest.ErrReader(errDevice))

	_, err := p.ReadVram(r)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, errDevice))
	test.ExpectFailure(t, strings.Contains(err.Error(), "larger"))
}

func TestColorBars(t *testing.T) {
	p := ppu.NewPpu()
	ppu.ColorBars(p, 0)
	frame := render(t, p)

	test.ExpectEquality(t, frame.At(0, 0), rgb555.New(24, 24, 24))
	test.ExpectEquality(t, frame.At(ppu.LCD_WIDTH-1, 0), rgb555.Black)
	// eight bars of 30 pixels each
	test.ExpectEquality(t, frame.At(29, 0), rgb555.New(24, 24, 24))
	test.ExpectEquality(t, frame.At(30, 0), rgb555.New(24, 24, 0))
	test.ExpectEquality(t, frame.At(210, 0), rgb555.Black)
	test.ExpectEquality(t, frame.At(209, 0), rgb555.New(0, 0, 24))
	// marker on the ramp
	test.ExpectEquality(t, frame.At(0, ppu.LCD_HEIGHT-1), rgb555.White)
	test.ExpectEquality(t, frame.At(1, ppu.LCD_HEIGHT-1), rgb555.Black)

	// the marker moves with the tick
	ppu.ColorBars(p, 1)
	frame = render(t, p)
	test.ExpectInequality(t, frame.At(0, ppu.LCD_HEIGHT-1), rgb555.White)
	test.ExpectEquality(t, frame.At(1, ppu.LCD_HEIGHT-1), rgb555.White)
}

func TestRun(t *testing.T) {
	p := ppu.NewPpu()
	store := ppu.NewFrameStore()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := p.Run(ctx, store, 200, ppu.ColorBars)
	test.ExpectEquality(t, errors.Is(err, context.DeadlineExceeded), true)
	test.ExpectInequality(t, p.Renders(), uint64(0))

	test.ExpectSuccess(t, store.With(func(frame *ppu.Frame) error {
		test.ExpectEquality(t, frame.At(0, 0), rgb555.New(24, 24, 24))
		return nil
	}))

	test.ExpectFailure(t, p.Run(context.Background(), store, 0, nil))
}

func TestRunStopsWhenPoisoned(t *testing.T) {
	p := ppu.NewPpu()
	store := ppu.NewFrameStore()
	store.With(func(_ *ppu.Frame) error { panic("poison") })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := p.Run(ctx, store, 100, nil)
	test.ExpectEquality(t, errors.Is(err, ppu.ErrPoisoned), true)
}
