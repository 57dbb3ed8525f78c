package ppu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vsasakiv/gbadisplay/logger"
)

// Program advances the emulated machine by one frame.
type Program func(ppu *Ppu, tick uint64)

// Run is the emulation loop. On every tick the program (which can be nil) is
// stepped and the result is rendered into store. It returns when ctx is done
// or when the store is poisoned. Render errors are logged and the loop
// continues, the display adapter reports them to the user.
func (ppu *Ppu) Run(ctx context.Context, store *FrameStore, hz int, program Program) error {
	if hz <= 0 {
		return fmt.Errorf("invalid emulation hz: %d", hz)
	}

	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if program != nil {
				program(ppu, tick)
			}
			tick++

			err := store.WithContext(ctx, ppu.Render)
			switch {
			case err == nil:
			case errors.Is(err, ErrPoisoned):
				return err
			case errors.Is(err, ErrAcquireTimeout):
				return ctx.Err()
			default:
				logger.Logf("ppu", "render: %v", err)
			}
		}
	}
}
