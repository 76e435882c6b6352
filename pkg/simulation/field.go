package simulation

import (
	"github.com/DavideWiest/boids/pkg/geometry"
)

// FieldGrid is the sampled ambient force field: one brightness value per
// grid cell over the world bounds, row-major. It is immutable once built;
// the World publishes a freshly computed grid atomically, so a renderer may
// keep reading an old grid while the next one is being computed.
type FieldGrid struct {
	Cols, Rows  int
	WorldWidth  float64
	WorldHeight float64
	values      []uint8
}

// At returns the brightness of the cell at (col, row).
func (g *FieldGrid) At(col, row int) uint8 {
	return g.values[row*g.Cols+col]
}

// Values returns the row-major brightness values. The slice must be treated
// as read-only.
func (g *FieldGrid) Values() []uint8 {
	return g.values
}

// sampleField evaluates the net attractor force over a coarse grid spanning
// the world bounds and maps its magnitude linearly to a brightness in
// [0,255]. Pure function of the attractor set and the config: identical
// inputs yield bit-identical grids. The attractor physics is the same
// formula the agents feel, evaluated with unit mass.
func sampleField(attractors []geometry.Vector2D, cfg *Config) *FieldGrid {
	cols := int(cfg.WorldWidth * cfg.FieldScale)
	rows := int(cfg.WorldHeight * cfg.FieldScale)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	g := &FieldGrid{
		Cols:        cols,
		Rows:        rows,
		WorldWidth:  cfg.WorldWidth,
		WorldHeight: cfg.WorldHeight,
		values:      make([]uint8, cols*rows),
	}

	scale := 255 * cfg.AttractorColorFactor / cfg.AttractorForceMax
	for row := 0; row < rows; row++ {
		y := gridCoord(row, rows, cfg.WorldHeight)
		for col := 0; col < cols; col++ {
			x := gridCoord(col, cols, cfg.WorldWidth)
			net := attractorForce(geometry.Vector2D{X: x, Y: y}, attractors, cfg, 1)
			g.values[row*cols+col] = clampChannel(net.Len() * scale)
		}
	}
	return g
}

// gridCoord maps a cell index to its world-space sample coordinate, with the
// first and last cells sitting exactly on the world edges.
func gridCoord(i, n int, extent float64) float64 {
	if n <= 1 {
		return 0
	}
	return extent * float64(i) / float64(n-1)
}
