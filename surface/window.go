package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"vsasakiv/gbadisplay/display"
	"vsasakiv/gbadisplay/logger"
	"vsasakiv/gbadisplay/ppu"
)

var colorWindowErrorBG = color.RGBA{R: 0x40, G: 0x00, B: 0x00, A: 0xff}
var colorWindowErrorFG = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

// scaleKeys maps number keys to scale factors
var scaleKeys = map[ebiten.Key]display.Scale{
	ebiten.KeyDigit1: display.X1,
	ebiten.KeyDigit2: display.X2,
	ebiten.KeyDigit4: display.X4,
}

// Window is a desktop window showing the display adapter. It implements both
// ebiten.Game and display.Surface: every Draw() asks the adapter to show a
// frame on the window.
//
// Keys 1, 2 and 4 select the scale. C copies the current frame to the
// clipboard as a PNG.
type Window struct {
	adapter *display.Adapter

	mu    sync.Mutex
	rgb   []byte
	rgba  []byte
	scale display.Scale
	err   error
	fbImg *ebiten.Image

	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewWindow(adapter *display.Adapter) *Window {
	return &Window{
		adapter: adapter,
		rgba:    make([]byte, ppu.LCD_WIDTH*ppu.LCD_HEIGHT*4),
		scale:   adapter.Scale(),
	}
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.adapter.Name())
	ebiten.SetWindowSize(w.adapter.Size())
	ebiten.SetTPS(60)
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	for key, scale := range scaleKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := w.adapter.SelectScale(scale); err == nil {
				ebiten.SetWindowSize(w.adapter.Size())
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		w.copyToClipboard()
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	// errors are logged by the adapter and shown by PresentError()
	_ = w.adapter.Show(w)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil {
		screen.Fill(colorWindowErrorBG)
		headline := "NO SIGNAL"
		if display.Fatal(w.err) {
			headline = "DISPLAY FAILED - RESTART REQUIRED"
		}
		face := basicfont.Face7x13
		text.Draw(screen, headline, face, 8, 20, colorWindowErrorFG)
		for i, line := range strings.Split(w.err.Error(), ": ") {
			text.Draw(screen, line, face, 8, 44+i*16, colorWindowErrorFG)
		}
		return
	}

	if w.fbImg == nil {
		w.fbImg = ebiten.NewImage(ppu.LCD_WIDTH, ppu.LCD_HEIGHT)
	}
	w.fbImg.WritePixels(w.rgba)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.fbImg, op)
}

func (w *Window) Layout(_, _ int) (int, int) {
	return w.adapter.Size()
}

func (w *Window) Present(buf []byte, width, height int, format display.PixelFormat, scale display.Scale) error {
	if err := checkBuffer(buf, width, height, format); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rgb = buf
	convertRGB24ToRGBA(w.rgba, buf)
	w.scale = scale
	w.err = nil
	return nil
}

func (w *Window) PresentError(err error, width, height int, scale display.Scale) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rgb = nil
	w.scale = scale
	w.err = err
	return nil
}

// currentPNG returns the frame on screen encoded as a PNG. It returns nil if
// there is no good frame on screen.
func (w *Window) currentPNG() []byte {
	w.mu.Lock()
	buf := w.rgb
	w.mu.Unlock()

	if buf == nil {
		return nil
	}
	var b bytes.Buffer
	if err := png.Encode(&b, toRGBA(buf, ppu.LCD_WIDTH, ppu.LCD_HEIGHT)); err != nil {
		logger.Logf("window", "encoding frame: %v", err)
		return nil
	}
	return b.Bytes()
}

func (w *Window) copyToClipboard() {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		logger.Log("window", "clipboard is not available")
		return
	}
	data := w.currentPNG()
	if data == nil {
		logger.Log("window", "no frame to copy")
		return
	}
	clipboard.Write(clipboard.FmtImage, data)
	logger.Log("window", "frame copied to clipboard")
}
