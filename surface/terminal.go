package surface

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/term"

	"vsasakiv/gbadisplay/display"
)

// Terminal presents frames on a 24-bit colour ANSI terminal. Each character
// cell shows two pixels, one above the other, using the upper half block
// glyph. Frames wider than the terminal are shrunk to fit.
type Terminal struct {
	out io.Writer
	fd  int
	tty bool

	// columns to use when the output isn't a terminal. zero means no limit
	Columns int
}

// NewTerminal writes frames to f. If f is a terminal its width is queried
// on every frame.
func NewTerminal(f *os.File) *Terminal {
	fd := int(f.Fd())
	return &Terminal{
		out: f,
		fd:  fd,
		tty: term.IsTerminal(fd),
	}
}

// NewTerminalWriter writes frames to w, which is assumed not to be a
// terminal.
func NewTerminalWriter(w io.Writer, columns int) *Terminal {
	return &Terminal{out: w, Columns: columns}
}

func (t *Terminal) columns() int {
	if t.tty {
		if w, _, err := term.GetSize(t.fd); err == nil {
			return w
		}
	}
	return t.Columns
}

const ansiHome = "\x1b[H"
const ansiClear = "\x1b[2J"
const ansiReset = "\x1b[0m"

func (t *Terminal) Present(buf []byte, width, height int, format display.PixelFormat, scale display.Scale) error {
	if err := checkBuffer(buf, width, height, format); err != nil {
		return err
	}
	img := fitWidth(scaleImage(toRGBA(buf, width, height), scale), t.columns())
	return t.write(img)
}

func (t *Terminal) PresentError(err error, width, height int, scale display.Scale) error {
	w := bufio.NewWriter(t.out)
	w.WriteString(ansiHome + ansiClear)
	if display.Fatal(err) {
		w.WriteString("\x1b[1;31mDISPLAY FAILED - RESTART REQUIRED\x1b[0m\r\n")
	} else {
		w.WriteString("\x1b[1;33mNO SIGNAL\x1b[0m\r\n")
	}
	fmt.Fprintf(w, "%v\r\n", err)
	return w.Flush()
}

func (t *Terminal) write(img *image.RGBA) error {
	w := bufio.NewWriter(t.out)
	w.WriteString(ansiHome)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm", top.R, top.G, top.B)
			if y+1 < b.Max.Y {
				bottom := img.RGBAAt(x, y+1)
				fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm", bottom.R, bottom.G, bottom.B)
			} else {
				w.WriteString("\x1b[49m")
			}
			w.WriteString("▀")
		}
		w.WriteString(ansiReset + "\r\n")
	}
	return w.Flush()
}
