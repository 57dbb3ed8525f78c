package display

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"vsasakiv/gbadisplay/logger"
)

// Scale is the integer magnification used when presenting a frame.
type Scale int

const (
	X1 Scale = 1
	X2 Scale = 2
	X4 Scale = 4
)

// Scales returns the supported scale factors in ascending order.
func Scales() []Scale {
	return []Scale{X1, X2, X4}
}

func (s Scale) Valid() bool {
	switch s {
	case X1, X2, X4:
		return true
	}
	return false
}

func (s Scale) String() string {
	return fmt.Sprintf("x%d", int(s))
}

// Size returns the presented size of an image of width and height.
func (s Scale) Size(width, height int) (int, int) {
	return width * int(s), height * int(s)
}

// ParseScale accepts "2", "x2" and "2x" forms.
func ParseScale(v string) (Scale, error) {
	t := strings.TrimSuffix(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), "x"), "x")
	n, err := strconv.Atoi(t)
	if err != nil || !Scale(n).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScale, v)
	}
	return Scale(n), nil
}

// Selector holds the currently selected scale. The zero value selects X1.
// It is safe to use from more than one goroutine.
type Selector struct {
	scale atomic.Int32
}

// Selected returns the current scale.
func (sel *Selector) Selected() Scale {
	s := Scale(sel.scale.Load())
	if s == 0 {
		return X1
	}
	return s
}

// Select changes the current scale. An unsupported scale is a programming
// error: it is logged, the selection is left unchanged and ErrInvalidScale is
// returned.
func (sel *Selector) Select(s Scale) error {
	if !s.Valid() {
		logger.Logf("display", "rejected scale factor %d (keeping %s)", int(s), sel.Selected())
		return fmt.Errorf("%w: %d", ErrInvalidScale, int(s))
	}
	sel.scale.Store(int32(s))
	return nil
}
