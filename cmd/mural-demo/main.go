// Command mural-demo runs an interactive infinite-canvas board in an
// Ebitengine window.
//
// Tools are on the number row: 1 select, 2 pen, 3 rectangle, 4 circle,
// 5 line, 6 arrow, 7 text, 8 nested canvas. Middle-drag or empty-space
// drag pans, the wheel zooms at the cursor, Home recenters, 0 resets
// zoom, Delete removes the selection, F/B reorder it, Ctrl+S saves the
// board and Ctrl+L restores it, Escape backs out of a nested canvas.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kelseyhightower/envconfig"

	"github.com/muralkit/mural"
	"github.com/muralkit/mural/backend/ebitengine"
	"github.com/muralkit/mural/store"
)

// envOverrides are read before flags so deployments can pin defaults
// without wrapper scripts.
type envOverrides struct {
	Config  string `envconfig:"MURAL_CONFIG" default:""`
	AppName string `envconfig:"MURAL_APP" default:"mural-demo"`
	Slot    string `envconfig:"MURAL_SLOT" default:"default"`
	Verbose bool   `envconfig:"MURAL_VERBOSE" default:"false"`
}

type game struct {
	canvas  *mural.Canvas
	painter *ebitengine.Painter
	input   *ebitengine.Input
	frames  *ebitengine.Frames
	store   *store.SnapshotStore
	slot    string

	w, h int
}

var toolKeys = map[ebiten.Key]mural.Tool{
	ebiten.Key1: mural.ToolSelect,
	ebiten.Key2: mural.ToolPen,
	ebiten.Key3: mural.ToolRectangle,
	ebiten.Key4: mural.ToolCircle,
	ebiten.Key5: mural.ToolLine,
	ebiten.Key6: mural.ToolArrow,
	ebiten.Key7: mural.ToolText,
	ebiten.Key8: mural.ToolNested,
}

func (g *game) Update() error {
	g.input.Update()
	g.handleKeys()
	g.frames.Tick()
	return nil
}

func (g *game) handleKeys() {
	for key, tool := range toolKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.canvas.SetTool(tool)
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete),
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.canvas.DeleteSelection()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if g.canvas.EditingEmbed() != "" {
			g.canvas.ExitEmbedEdit()
		} else {
			g.canvas.CloseNested()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.canvas.Recenter()
	case inpututil.IsKeyJustPressed(ebiten.Key0):
		g.canvas.ZoomReset()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.canvas.ZoomIn()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.canvas.ZoomOut()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if ref, ok := g.canvas.ActiveScene().SoleSelection(); ok {
			g.canvas.BringToFront(ref)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		if ref, ok := g.canvas.ActiveScene().SoleSelection(); ok {
			g.canvas.SendToBack(ref)
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := g.store.Save(g.slot, g.canvas); err != nil {
			log.Printf("save failed: %v", err)
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyL):
		err := g.store.Load(g.slot, g.canvas)
		if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
			log.Printf("load failed: %v", err)
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	g.painter.SetTarget(screen)
	g.canvas.Redraw()
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return g.w, g.h
}

func main() {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		log.Fatalf("read environment: %v", err)
	}

	var (
		width   = flag.Int("width", 1280, "window width")
		height  = flag.Int("height", 800, "window height")
		cfgPath = flag.String("config", env.Config, "canvas config file (YAML)")
		slot    = flag.String("slot", env.Slot, "snapshot slot for save/load")
	)
	flag.Parse()

	if env.Verbose {
		mural.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	painter, err := ebitengine.NewPainter(true)
	if err != nil {
		log.Fatalf("init painter: %v", err)
	}
	frames := ebitengine.NewFrames()

	opts := []mural.Option{
		mural.WithPainter(painter),
		mural.WithFrameSource(frames),
	}
	if *cfgPath != "" {
		cfg, err := mural.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		opts = append(opts, mural.WithConfig(cfg))
	}

	canvas := mural.New(float64(*width), float64(*height), opts...)

	snapshots, err := store.Open(env.AppName)
	if err != nil {
		// Degraded mode keeps the demo usable on locked-down systems.
		log.Printf("persistent storage unavailable: %v", err)
		snapshots = store.NewWithManager(nil)
	}

	g := &game{
		canvas:  canvas,
		painter: painter,
		input:   ebitengine.NewInput(canvas),
		frames:  frames,
		store:   snapshots,
		slot:    *slot,
		w:       *width,
		h:       *height,
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("mural demo")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
