// Package ui provides the small overlay panel the simulation window uses to
// toggle rendering layers at runtime.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelPadding  = 8.0
	widgetSpacing = 24.0
	checkboxSize  = 16.0
)

// One shared palette for the whole overlay keeps the widgets visually tied to
// the panel they sit on.
var (
	panelFill   = color.RGBA{R: 40, G: 40, B: 45, A: 230}
	panelBorder = color.RGBA{R: 100, G: 100, B: 110, A: 255}
	boxOutline  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	boxChecked  = color.RGBA{R: 100, G: 200, B: 100, A: 255}
)

// Checkbox toggles a boolean when its box is clicked. Hosts keep the pointer
// returned by Panel.AddCheckbox and read Value each frame; the panel owns the
// layout and input handling.
type Checkbox struct {
	Label string
	Value bool

	x, y float64
}

func (c *Checkbox) hit(x, y float64) bool {
	return x >= c.x && x <= c.x+checkboxSize &&
		y >= c.y && y <= c.y+checkboxSize
}

func (c *Checkbox) draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.x), float32(c.y),
		checkboxSize, checkboxSize,
		2, boxOutline, true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.x+2), float32(c.y+2),
			checkboxSize-4, checkboxSize-4,
			boxChecked, true)
	}

	ebitenutil.DebugPrintAt(screen, c.Label, int(c.x+checkboxSize+6), int(c.y))
}

// Panel is an overlay holding a column of checkboxes. The host checks
// Contains before treating a click as a world interaction, so toggling a
// widget never doubles as a "place attractor" event.
type Panel struct {
	x, y          float64
	width, height float64
	checkboxes    []*Checkbox
}

// NewPanel creates an empty panel at the given position.
func NewPanel(x, y, width float64) *Panel {
	return &Panel{x: x, y: y, width: width, height: panelPadding * 2}
}

// AddCheckbox appends a checkbox below the previous widget and returns it so
// the host can read its Value each frame.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := &Checkbox{
		Label: label,
		Value: value,
		x:     p.x + panelPadding,
		y:     p.y + panelPadding + float64(len(p.checkboxes))*widgetSpacing,
	}
	p.checkboxes = append(p.checkboxes, c)
	p.height = panelPadding*2 + float64(len(p.checkboxes))*widgetSpacing
	return c
}

// Contains reports whether the point lies inside the panel.
func (p *Panel) Contains(x, y float64) bool {
	return x >= p.x && x <= p.x+p.width && y >= p.y && y <= p.y+p.height
}

// Update toggles whichever checkbox the cursor is over on the frame the left
// button goes down. Just-pressed means a held button toggles once, never
// once per frame.
func (p *Panel) Update() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	for _, c := range p.checkboxes {
		if c.hit(float64(mx), float64(my)) {
			c.Value = !c.Value
		}
	}
}

// Draw renders the panel background and its widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.x), float32(p.y), float32(p.width), float32(p.height),
		panelFill, true)
	vector.StrokeRect(screen,
		float32(p.x), float32(p.y), float32(p.width), float32(p.height),
		1, panelBorder, true)

	for _, c := range p.checkboxes {
		c.draw(screen)
	}
}
