package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"time"

	"vsasakiv/gbadisplay/display"
	"vsasakiv/gbadisplay/logger"
	"vsasakiv/gbadisplay/ppu"
	"vsasakiv/gbadisplay/statsview"
	"vsasakiv/gbadisplay/surface"
)

// ebiten and SDL both need to run on the main thread
func init() {
	runtime.LockOSThread()
}

type config struct {
	surface    string
	scale      string
	hz         int
	presentHz  int
	frames     uint64
	out        string
	vram       string
	palette    string
	mode       uint
	timeout    time.Duration
	echo       bool
	statsview  bool
	cpuProfile string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.surface, "surface", "window", "Presentation surface: window, sdl, term or png.")
	flag.StringVar(&cfg.scale, "scale", "1", "Initial scale factor: 1, 2 or 4.")
	flag.IntVar(&cfg.hz, "hz", 60, "Emulation frame rate.")
	flag.IntVar(&cfg.presentHz, "present-hz", 30, "Presentation rate for the sdl, term and png surfaces.")
	flag.Uint64Var(&cfg.frames, "frames", 0, "Stop after N presentations (0 = run forever, png defaults to 1).")
	flag.StringVar(&cfg.out, "out", "frame.png", "Output file for the png surface.")
	flag.StringVar(&cfg.vram, "vram", "", "Show a raw VRAM dump instead of the colour bars.")
	flag.StringVar(&cfg.palette, "palette", "", "Raw BGR555 palette dump (for mode 4 VRAM dumps).")
	flag.UintVar(&cfg.mode, "mode", 3, "Bitmap video mode of the VRAM dump: 3, 4 or 5.")
	flag.DurationVar(&cfg.timeout, "timeout", 250*time.Millisecond, "Maximum wait for the emulation core to release the frame (0 = forever).")
	flag.BoolVar(&cfg.echo, "echo", false, "Echo log entries to stderr.")
	flag.BoolVar(&cfg.statsview, "statsview", false, "Launch the runtime stats server (needs the statsview build tag).")
	flag.StringVar(&cfg.cpuProfile, "cpuprofile", "", "Write a CPU profile to file.")
	flag.Parse()

	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		logger.Tail(os.Stderr, 10)
		log.Fatal(err)
	}
}

func run(cfg config) error {
	if cfg.echo {
		logger.SetEcho(os.Stderr)
	}

	if cfg.cpuProfile != "" {
		f, err := os.Create(cfg.cpuProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	if cfg.statsview {
		if !statsview.Available() {
			return errors.New("statsview is not available in this build")
		}
		statsview.Launch()
	}

	scale, err := display.ParseScale(cfg.scale)
	if err != nil {
		return err
	}

	emu, program, err := setupPpu(cfg)
	if err != nil {
		return err
	}

	store := ppu.NewFrameStore()
	adapter := display.New(emu, store, display.WithScale(scale), display.WithAcquireTimeout(cfg.timeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		err := emu.Run(ctx, store, cfg.hz, program)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Logf("ppu", "emulation stopped: %v", err)
		}
	}()

	switch cfg.surface {
	case "window":
		return surface.NewWindow(adapter).Run()

	case "sdl":
		win, err := surface.NewSDLWindow(adapter)
		if err != nil {
			return err
		}
		defer win.Destroy()
		return win.Run(ctx, cfg.presentHz)

	case "term":
		return surface.RunHeadless(ctx, adapter, surface.NewTerminal(os.Stdout), surface.HeadlessConfig{
			Hz:     cfg.presentHz,
			Frames: cfg.frames,
		})

	case "png":
		if cfg.frames == 0 {
			cfg.frames = 1
		}
		snapshot := &surface.Snapshot{}
		err := surface.RunHeadless(ctx, adapter, snapshot, surface.HeadlessConfig{
			Hz:     cfg.presentHz,
			Frames: cfg.frames,
		})
		if err != nil {
			return err
		}
		return writePNG(cfg.out, snapshot)
	}

	return fmt.Errorf("unknown surface: %s", cfg.surface)
}

// setupPpu prepares the emulation core. Without a VRAM dump the colour bars
// program is run, otherwise the dump is shown unchanged.
func setupPpu(cfg config) (*ppu.Ppu, ppu.Program, error) {
	emu := ppu.NewPpu()

	if cfg.palette != "" {
		if err := emu.LoadPaletteFile(cfg.palette); err != nil {
			return nil, nil, err
		}
	}

	if cfg.vram == "" {
		return emu, ppu.ColorBars, nil
	}

	n, err := emu.LoadVramFile(cfg.vram)
	if err != nil {
		return nil, nil, err
	}
	logger.Logf("ppu", "loaded %d bytes of VRAM from %s", n, cfg.vram)

	switch cfg.mode {
	case 3, 4, 5:
		emu.SetDispcnt(uint16(cfg.mode) | 1<<10)
	default:
		return nil, nil, fmt.Errorf("video mode %d is not a bitmap mode", cfg.mode)
	}
	return emu, nil, nil
}

func writePNG(path string, snapshot *surface.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := snapshot.Err(); err != nil {
		return fmt.Errorf("%s shows an error state: %w", path, err)
	}
	return nil
}
