package surface

import (
	"image"

	"tinygo.org/x/drivers"

	"vsasakiv/gbadisplay/display"
)

// Device presents frames on anything that implements drivers.Displayer, for
// example an SPI connected LCD panel. Pixels outside the panel are clipped.
type Device struct {
	d drivers.Displayer
}

func NewDevice(d drivers.Displayer) *Device {
	return &Device{d: d}
}

func (dev *Device) Present(buf []byte, width, height int, format display.PixelFormat, scale display.Scale) error {
	if err := checkBuffer(buf, width, height, format); err != nil {
		return err
	}
	return dev.push(toRGBA(buf, width, height), scale)
}

func (dev *Device) PresentError(err error, width, height int, scale display.Scale) error {
	return dev.push(placeholder(err, width, height), scale)
}

func (dev *Device) push(img *image.RGBA, scale display.Scale) error {
	pw, ph := dev.d.Size()
	b := img.Bounds()
	s := int(scale)

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := img.RGBAAt(x, y)
			for sy := 0; sy < s; sy++ {
				py := y*s + sy
				if py >= int(ph) {
					break
				}
				for sx := 0; sx < s; sx++ {
					px := x*s + sx
					if px >= int(pw) {
						break
					}
					dev.d.SetPixel(int16(px), int16(py), c)
				}
			}
		}
	}
	return dev.d.Display()
}
