package display

// Tool is a window-like component of a larger user interface.
type Tool interface {
	Name() string
	Show(surface Surface) error
}

// PixelFormat tags the layout of a buffer given to a Surface.
type PixelFormat int

const (
	// PixelFormatRGB24 is three bytes per pixel in R, G, B order with no
	// alpha channel. Rows are packed without padding.
	PixelFormatRGB24 PixelFormat = iota + 1
)

func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB24:
		return 3
	}
	return 0
}

// Surface turns converted frames into something the user can see.
type Surface interface {
	// Present is given a complete frame. The buffer belongs to the surface
	// once Present has been called.
	Present(buf []byte, width, height int, format PixelFormat, scale Scale) error

	// PresentError is called instead of Present when a frame could not be
	// acquired. The surface must show that something is wrong rather than
	// continuing to show the previous frame.
	PresentError(err error, width, height int, scale Scale) error
}
