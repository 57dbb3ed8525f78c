package surface

import (
	"image"
	"image/png"
	"io"
	"sync"

	"vsasakiv/gbadisplay/display"
)

// Snapshot is a surface that keeps the most recent presentation as an image.
// It is used for headless runs and for copying the screen elsewhere.
type Snapshot struct {
	mu     sync.Mutex
	img    *image.RGBA
	err    error
	frames int
}

func (s *Snapshot) Present(buf []byte, width, height int, format display.PixelFormat, scale display.Scale) error {
	if err := checkBuffer(buf, width, height, format); err != nil {
		return err
	}
	img := scaleImage(toRGBA(buf, width, height), scale)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = img
	s.err = nil
	s.frames++
	return nil
}

func (s *Snapshot) PresentError(err error, width, height int, scale display.Scale) error {
	img := scaleImage(placeholder(err, width, height), scale)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = img
	s.err = err
	return nil
}

// Image returns the last presented image or nil if nothing has been
// presented yet.
func (s *Snapshot) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// Err returns the error shown by the last presentation, if any.
func (s *Snapshot) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Frames returns the number of good frames presented.
func (s *Snapshot) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// WritePNG encodes the last presented image.
func (s *Snapshot) WritePNG(w io.Writer) error {
	img := s.Image()
	if img == nil {
		img = placeholder(nil, 1, 1)
	}
	return png.Encode(w, img)
}
