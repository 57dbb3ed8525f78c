// Package surface contains the presentation surfaces that frames from the
// display adapter can be shown on.
package surface

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"vsasakiv/gbadisplay/display"
)

var ErrBufferSize = errors.New("buffer size does not match dimensions")
var ErrPixelFormat = errors.New("unsupported pixel format")

func checkBuffer(buf []byte, width, height int, format display.PixelFormat) error {
	if format != display.PixelFormatRGB24 {
		return fmt.Errorf("%w: %d", ErrPixelFormat, format)
	}
	if want := width * height * format.BytesPerPixel(); len(buf) != want {
		return fmt.Errorf("%w: %d bytes for %dx%d, wanted %d", ErrBufferSize, len(buf), width, height, want)
	}
	return nil
}

func convertRGB24ToRGBA(dst []byte, src []byte) {
	for si, di := 0, 0; si+2 < len(src) && di+3 < len(dst); si, di = si+3, di+4 {
		dst[di] = src[si]
		dst[di+1] = src[si+1]
		dst[di+2] = src[si+2]
		dst[di+3] = 0xFF // Opaque alpha
	}
}

func convertRGBAToRGB24(dst []byte, src []byte) {
	for si, di := 0, 0; si+3 < len(src) && di+2 < len(dst); si, di = si+4, di+3 {
		dst[di] = src[si]
		dst[di+1] = src[si+1]
		dst[di+2] = src[si+2]
	}
}

// toRGBA copies an RGB24 buffer into a new image.
func toRGBA(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	convertRGB24ToRGBA(img.Pix, buf)
	return img
}

// scaleImage returns src enlarged by the scale factor. Nearest neighbour
// keeps the pixels square.
func scaleImage(src *image.RGBA, scale display.Scale) *image.RGBA {
	if scale == display.X1 {
		return src
	}
	w, h := scale.Size(src.Bounds().Dx(), src.Bounds().Dy())
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// fitWidth shrinks src so that it is no wider than width, keeping the aspect
// ratio. A width of zero or less means no limit.
func fitWidth(src *image.RGBA, width int) *image.RGBA {
	b := src.Bounds()
	if width <= 0 || b.Dx() <= width {
		return src
	}
	h := max(1, b.Dy()*width/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
