package surface

import (
	"context"
	"fmt"
	"time"

	"vsasakiv/gbadisplay/display"
)

// HeadlessConfig controls the no-window presentation loop.
type HeadlessConfig struct {
	Hz int
	// stop after N presentation cycles (0 = run until ctx is done)
	Frames uint64
}

// RunHeadless shows the tool on the surface at a fixed rate. Acquisition
// errors are not retried, the surface is shown the error and the next cycle
// tries again. A fatal error ends the loop.
func RunHeadless(ctx context.Context, tool display.Tool, surface display.Surface, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var cycle uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := tool.Show(surface); display.Fatal(err) {
				return err
			}
			cycle++
			if cfg.Frames > 0 && cycle >= cfg.Frames {
				return nil
			}
		}
	}
}
