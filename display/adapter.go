// Package display bridges the emulation core's frame store to a presentation
// surface.
//
// Each presentation cycle the Adapter takes the frame store, asks the core to
// render into it, copies the pixels out and releases the store. Colour
// conversion happens after the release so the emulation core is held up for
// as short a time as possible.
package display

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vsasakiv/gbadisplay/logger"
	"vsasakiv/gbadisplay/ppu"
	"vsasakiv/gbadisplay/rgb555"
)

// BufferSize is the length of every buffer returned by AcquireAndConvert().
const BufferSize = 3 * ppu.LCD_WIDTH * ppu.LCD_HEIGHT

// Core is the emulation core as seen by the display adapter.
type Core interface {
	// Render draws the current state of the emulated machine into frame.
	Render(frame *ppu.Frame) error
}

// Adapter implements the Tool interface for the GBA LCD.
type Adapter struct {
	store *ppu.FrameStore
	core  Core
	scale Selector

	// maximum time to wait for the frame store. zero means wait forever.
	timeout time.Duration
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithAcquireTimeout limits how long AcquireAndConvert() will wait for the
// emulation core to release the frame store.
func WithAcquireTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// WithScale sets the initial scale. It panics if the scale isn't supported.
func WithScale(s Scale) Option {
	return func(a *Adapter) {
		if err := a.scale.Select(s); err != nil {
			panic(err)
		}
	}
}

// New creates an adapter that triggers rendering by core into store. It
// panics if core or store is nil.
func New(core Core, store *ppu.FrameStore, opts ...Option) *Adapter {
	if core == nil {
		panic("display: nil core")
	}
	if store == nil {
		panic("display: nil frame store")
	}
	a := &Adapter{
		store: store,
		core:  core,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Adapter) Name() string {
	return "Gba Display"
}

// Scale returns the currently selected scale.
func (a *Adapter) Scale() Scale {
	return a.scale.Selected()
}

// SelectScale changes the scale used by Show().
func (a *Adapter) SelectScale(s Scale) error {
	return a.scale.Select(s)
}

// Size returns the presented size of the display at the current scale.
func (a *Adapter) Size() (int, int) {
	return a.Scale().Size(ppu.LCD_WIDTH, ppu.LCD_HEIGHT)
}

// AcquireAndConvert renders one frame and returns it as packed RGB24. The
// returned buffer is always BufferSize bytes long and is never reused.
//
// Every call triggers one render by the emulation core.
func (a *Adapter) AcquireAndConvert(ctx context.Context) ([]byte, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var snapshot ppu.Frame
	err := a.store.WithContext(ctx, func(frame *ppu.Frame) error {
		if err := a.core.Render(frame); err != nil {
			return fmt.Errorf("%w: %w", ErrRenderFailure, err)
		}
		snapshot = *frame
		return nil
	})
	if err != nil {
		return nil, err
	}

	return Convert(&snapshot), nil
}

// Convert expands every pixel of frame to three bytes.
func Convert(frame *ppu.Frame) []byte {
	buf := make([]byte, 0, BufferSize)
	for y := range frame {
		for _, c := range frame[y] {
			buf = append(buf, rgb555.Expand(c.Red()), rgb555.Expand(c.Green()), rgb555.Expand(c.Blue()))
		}
	}
	return buf
}

// Show acquires a frame and hands it to the surface. If the frame can't be
// acquired the error is logged, the surface is told to show an error state
// and the error is returned.
func (a *Adapter) Show(surface Surface) error {
	scale := a.Scale()

	buf, err := a.AcquireAndConvert(context.Background())
	if err != nil {
		if Fatal(err) {
			logger.Logf("display", "frame store is unusable: %v", err)
		} else {
			logger.Logf("display", "%v", err)
		}
		if perr := surface.PresentError(err, ppu.LCD_WIDTH, ppu.LCD_HEIGHT, scale); perr != nil {
			return errors.Join(err, perr)
		}
		return err
	}

	return surface.Present(buf, ppu.LCD_WIDTH, ppu.LCD_HEIGHT, PixelFormatRGB24, scale)
}
