package display

import (
	"errors"

	"vsasakiv/gbadisplay/ppu"
)

var (
	// ErrLockPoisoned means the frame store is unusable. The display should
	// be considered broken until the program is restarted.
	ErrLockPoisoned = ppu.ErrPoisoned

	// ErrAcquireTimeout means the emulation core held the frame store for
	// longer than the adapter was willing to wait.
	ErrAcquireTimeout = ppu.ErrAcquireTimeout

	// ErrRenderFailure wraps any error returned by the emulation core while
	// rendering.
	ErrRenderFailure = errors.New("render failure")

	// ErrInvalidScale is returned when selecting a scale that isn't one of
	// Scales().
	ErrInvalidScale = errors.New("invalid scale factor")
)

// Fatal returns true if err means that no further frame can ever be
// acquired.
func Fatal(err error) bool {
	return errors.Is(err, ErrLockPoisoned)
}
