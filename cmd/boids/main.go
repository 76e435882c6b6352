package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/DavideWiest/boids/pkg/geometry"
	"github.com/DavideWiest/boids/pkg/simulation"
	"github.com/DavideWiest/boids/pkg/ui"
)

// trailRetention is the fraction of a trail pixel that survives one frame.
// The fade must be multiplicative so undrawn pixels decay toward transparent
// and the field background stays visible under the trails.
const trailRetention = 220.0 / 255.0

// whiteImage is the 3x3 source texture for DrawTriangles; vertex colors
// multiply against it, so it must stay white.
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

type Game struct {
	world *simulation.World
	cfg   *simulation.Config

	trails     *ebiten.Image
	fade       *ebiten.Image
	background *ebiten.Image
	lastField  *simulation.FieldGrid

	panel          *ui.Panel
	showField      *ui.Checkbox
	showAttractors *ui.Checkbox
	showTrails     *ui.Checkbox
}

func newGame(cfg *simulation.Config, world *simulation.World) *Game {
	panel := ui.NewPanel(10, 10, 180)
	g := &Game{
		world:  world,
		cfg:    cfg,
		trails: ebiten.NewImage(int(cfg.WorldWidth), int(cfg.WorldHeight)),
		fade:   ebiten.NewImage(int(cfg.WorldWidth), int(cfg.WorldHeight)),
		panel:  panel,
	}
	g.fade.Fill(color.White)
	g.showField = panel.AddCheckbox("Show force field", true)
	g.showAttractors = panel.AddCheckbox("Show attractors", true)
	g.showTrails = panel.AddCheckbox("Trails", true)
	return g
}

func (g *Game) Update() error {
	g.panel.Update()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if !g.panel.Contains(float64(mx), float64(my)) {
			g.world.PlaceAttractor(geometry.Vector2D{X: float64(mx), Y: float64(my)})
		}
	}

	g.world.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// 1. Ambient background from the sampled attractor field. The grid only
	// changes when an attractor is placed, so the upscaled image is rebuilt
	// lazily.
	if f := g.world.Field(); f != g.lastField {
		g.background = fieldImage(f)
		g.lastField = f
	}
	if g.showField.Value {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(
			g.cfg.WorldWidth/float64(g.background.Bounds().Dx()),
			g.cfg.WorldHeight/float64(g.background.Bounds().Dy()),
		)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.background, op)
	} else {
		screen.Fill(color.Black)
	}

	// 2. Boids, drawn into the persistent trail buffer which fades a little
	// each frame. BlendDestinationOut removes (1 - trailRetention) of every
	// pixel, so alpha decays instead of accumulating.
	fadeOp := &ebiten.DrawImageOptions{}
	fadeOp.Blend = ebiten.BlendDestinationOut
	fadeOp.ColorScale.ScaleAlpha(1 - trailRetention)
	g.trails.DrawImage(g.fade, fadeOp)
	for _, b := range g.world.Snapshot() {
		drawBoid(g.trails, b)
	}
	if g.showTrails.Value {
		screen.DrawImage(g.trails, nil)
	} else {
		for _, b := range g.world.Snapshot() {
			drawBoid(screen, b)
		}
	}

	// 3. Attractor markers.
	if g.showAttractors.Value {
		for _, at := range g.world.Attractors() {
			vector.StrokeCircle(screen,
				float32(at.X), float32(at.Y), 4, 1,
				color.RGBA{R: 200, G: 200, B: 0, A: 255}, true)
		}
	}

	// 4. Overlay.
	g.panel.Draw(screen)
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nAttractors: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), len(g.world.Attractors()))
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-120, 10)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}

// drawBoid renders one oriented triangle glyph from the agent's position,
// heading and derived color.
func drawBoid(dst *ebiten.Image, b simulation.AgentView) {
	const size = 8.0

	tipX := b.Position.X + math.Cos(b.Heading)*size
	tipY := b.Position.Y + math.Sin(b.Heading)*size
	rightX := b.Position.X + math.Cos(b.Heading+2.5)*(size/2)
	rightY := b.Position.Y + math.Sin(b.Heading+2.5)*(size/2)
	leftX := b.Position.X + math.Cos(b.Heading-2.5)*(size/2)
	leftY := b.Position.Y + math.Sin(b.Heading-2.5)*(size/2)

	cr := float32(b.Color.R) / 255
	cg := float32(b.Color.G) / 255
	cb := float32(b.Color.B) / 255

	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}

	dst.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

// fieldImage converts the brightness grid into a grayscale image at grid
// resolution; Draw upscales it to the window.
func fieldImage(f *simulation.FieldGrid) *ebiten.Image {
	pix := make([]byte, f.Cols*f.Rows*4)
	for i, v := range f.Values() {
		pix[i*4+0] = v
		pix[i*4+1] = v
		pix[i*4+2] = v
		pix[i*4+3] = 0xff
	}
	img := ebiten.NewImage(f.Cols, f.Rows)
	img.WritePixels(pix)
	return img
}

func main() {
	var (
		configFile = flag.String("config", "", "path to a JSON config file (default: built-in config)")
		schemaFile = flag.String("schema", "config.schema.json", "path to the config JSON schema")
		seed       = flag.Uint64("seed", 1, "simulation seed; equal seeds reproduce equal runs")
	)
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		loaded, err := simulation.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	world, err := simulation.NewWorld(cfg, *seed)
	if err != nil {
		log.Fatalf("creating world: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids")
	if err := ebiten.RunGame(newGame(cfg, world)); err != nil {
		log.Fatal(err)
	}
}
