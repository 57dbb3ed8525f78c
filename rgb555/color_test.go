package rgb555_test

import (
	"image/color"
	"testing"

	"vsasakiv/gbadisplay/rgb555"
	"vsasakiv/gbadisplay/test"
)

func TestExpandBoundaries(t *testing.T) {
	test.ExpectEquality(t, rgb555.Expand(0), uint8(0))
	test.ExpectEquality(t, rgb555.Expand(16), uint8(132))
	test.ExpectEquality(t, rgb555.Expand(31), uint8(255))
}

func TestExpandAllValues(t *testing.T) {
	for v := uint8(0); v <= 31; v++ {
		test.ExpectEquality(t, rgb555.Expand(v), (v<<3)|(v>>2), v)
	}
}

func TestExpandIgnoresUpperBits(t *testing.T) {
	test.ExpectEquality(t, rgb555.Expand(0x20|5), rgb555.Expand(5))
}

func TestChannelLayout(t *testing.T) {
	c := rgb555.Color(0b1_10101_01010_11111)
	test.ExpectEquality(t, c.Red(), uint8(0b11111))
	test.ExpectEquality(t, c.Green(), uint8(0b01010))
	test.ExpectEquality(t, c.Blue(), uint8(0b10101))

	// bit 15 is not part of any channel
	test.ExpectEquality(t, rgb555.Color(0x8000).Red(), uint8(0))
	test.ExpectEquality(t, rgb555.Color(0x8000).Blue(), uint8(0))
}

func TestNew(t *testing.T) {
	c := rgb555.New(1, 2, 3)
	test.ExpectEquality(t, c, rgb555.Color(1|2<<5|3<<10))
	test.ExpectEquality(t, rgb555.New(31, 31, 31), rgb555.White)
	test.ExpectEquality(t, rgb555.New(0xFF, 0xFF, 0xFF), rgb555.White)
}

func TestRGB(t *testing.T) {
	r, g, b := rgb555.White.RGB()
	test.ExpectEquality(t, r, uint8(255))
	test.ExpectEquality(t, g, uint8(255))
	test.ExpectEquality(t, b, uint8(255))

	r, g, b = rgb555.New(16, 0, 31).RGB()
	test.ExpectEquality(t, r, uint8(132))
	test.ExpectEquality(t, g, uint8(0))
	test.ExpectEquality(t, b, uint8(255))
}

func TestModel(t *testing.T) {
	c := rgb555.Model.Convert(color.RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF})
	test.ExpectEquality(t, c.(rgb555.Color), rgb555.New(31, 16, 0))

	// converting back through the model preserves the packed value
	for _, v := range []rgb555.Color{rgb555.Black, rgb555.White, rgb555.New(16, 16, 16)} {
		test.ExpectEquality(t, rgb555.Model.Convert(color.RGBAModel.Convert(v)).(rgb555.Color), v)
	}
}
