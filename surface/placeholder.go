package surface

import (
	"image"
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"vsasakiv/gbadisplay/display"
)

var (
	colorPlaceholderBG = color.RGBA{R: 0x40, G: 0x00, B: 0x00, A: 0xff}
	colorPlaceholderFG = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorPlaceholderHi = color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff}
)

var placeholderFont = &tinyfont.TomThumb

// rgbaDisplayer lets tinyfont draw into an image.
type rgbaDisplayer struct {
	img *image.RGBA
}

func (d rgbaDisplayer) Size() (x, y int16) {
	return int16(d.img.Bounds().Dx()), int16(d.img.Bounds().Dy())
}

func (d rgbaDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.img.SetRGBA(int(x), int(y), c)
}

func (d rgbaDisplayer) Display() error {
	return nil
}

// placeholder returns an image of the given size explaining why there is no
// frame to show.
func placeholder(err error, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = colorPlaceholderBG.R
		img.Pix[i+1] = colorPlaceholderBG.G
		img.Pix[i+2] = colorPlaceholderBG.B
		img.Pix[i+3] = colorPlaceholderBG.A
	}
	drawPlaceholderText(rgbaDisplayer{img: img}, err)
	return img
}

func drawPlaceholderText(d drivers.Displayer, err error) {
	w, _ := d.Size()
	lineHeight := int16(placeholderFont.GetYAdvance())

	headline := "NO SIGNAL"
	if display.Fatal(err) {
		headline = "DISPLAY FAILED - RESTART REQUIRED"
	}

	y := lineHeight * 2
	tinyfont.WriteLine(d, placeholderFont, 4, y, headline, colorPlaceholderHi)
	y += lineHeight * 2

	if err == nil {
		return
	}
	for _, line := range wrapText(strings.ToUpper(err.Error()), int(w)-8) {
		tinyfont.WriteLine(d, placeholderFont, 4, y, line, colorPlaceholderFG)
		y += lineHeight
	}
}

// wrapText splits s into lines no wider than width pixels when drawn with
// the placeholder font.
func wrapText(s string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if _, w := tinyfont.LineWidth(placeholderFont, candidate); int(w) > width && line != "" {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
