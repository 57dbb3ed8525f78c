package surface

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"vsasakiv/gbadisplay/display"
	"vsasakiv/gbadisplay/logger"
	"vsasakiv/gbadisplay/ppu"
)

var sdlScaleKeys = map[sdl.Keycode]display.Scale{
	sdl.K_1: display.X1,
	sdl.K_2: display.X2,
	sdl.K_4: display.X4,
}

// SDLWindow is an alternative to Window for systems where SDL is preferred.
// The RGB24 buffer from the adapter is uploaded as is to a streaming
// texture. SDL functions must be called from the main thread.
type SDLWindow struct {
	adapter  *display.Adapter
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	scale display.Scale
}

func NewSDLWindow(adapter *display.Adapter) (*SDLWindow, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	win := &SDLWindow{adapter: adapter, scale: adapter.Scale()}

	var err error
	w, h := adapter.Size()
	win.window, err = sdl.CreateWindow(adapter.Name(), int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED), int32(w), int32(h), uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	win.renderer, err = sdl.CreateRenderer(win.window, -1, uint32(sdl.RENDERER_ACCELERATED)|uint32(sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	win.texture, err = win.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGB24), int(sdl.TEXTUREACCESS_STREAMING), ppu.LCD_WIDTH, ppu.LCD_HEIGHT)
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	return win, nil
}

// Destroy releases all SDL resources.
func (win *SDLWindow) Destroy() {
	if win.texture != nil {
		win.texture.Destroy()
	}
	if win.renderer != nil {
		win.renderer.Destroy()
	}
	if win.window != nil {
		win.window.Destroy()
	}
	sdl.Quit()
}

// Run services the window at hz until it is closed or ctx is done.
func (win *SDLWindow) Run(ctx context.Context, hz int) error {
	if hz <= 0 {
		return fmt.Errorf("invalid presentation hz: %d", hz)
	}
	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
					continue
				}
				if scale, ok := sdlScaleKeys[ev.Keysym.Sym]; ok {
					win.adapter.SelectScale(scale)
				}
			}
		}

		err := win.adapter.Show(win)
		if display.Fatal(err) {
			logger.Log("sdl", "display is unusable, waiting for the window to be closed")
		}
	}
}

func (win *SDLWindow) Present(buf []byte, width, height int, format display.PixelFormat, scale display.Scale) error {
	if err := checkBuffer(buf, width, height, format); err != nil {
		return err
	}
	win.resize(scale, width, height)
	return win.upload(buf, width, height)
}

func (win *SDLWindow) PresentError(err error, width, height int, scale display.Scale) error {
	img := placeholder(err, width, height)
	buf := make([]byte, width*height*3)
	convertRGBAToRGB24(buf, img.Pix)
	win.resize(scale, width, height)
	return win.upload(buf, width, height)
}

// the texture is stretched over the whole window so changing the window size
// is all that is needed to change the scale
func (win *SDLWindow) resize(scale display.Scale, width, height int) {
	if scale == win.scale {
		return
	}
	win.scale = scale
	w, h := scale.Size(width, height)
	win.window.SetSize(int32(w), int32(h))
}

func (win *SDLWindow) upload(buf []byte, width, height int) error {
	pixels, pitch, err := win.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	rowBytes := width * 3
	for y := 0; y < height; y++ {
		copy(pixels[y*pitch:y*pitch+rowBytes], buf[y*rowBytes:(y+1)*rowBytes])
	}
	win.texture.Unlock()

	if err := win.renderer.Clear(); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	if err := win.renderer.Copy(win.texture, nil, nil); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	win.renderer.Present()
	return nil
}
