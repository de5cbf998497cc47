package terminal

import (
	"github.com/Carmen-Shannon/pixel-morph/common"
	"github.com/Carmen-Shannon/pixel-morph/engine"
	"github.com/lucasb-eyer/go-colorful"
)

// glyphs shade a plotted cell from nearest to farthest.
var glyphs = []rune{'●', '•', '·'}

// Sample is the nearest particle that landed in one character cell.
type Sample struct {
	// W is the clip-space w of the particle, its distance along the view axis.
	W     float32
	Color colorful.Color
	set   bool
}

// Canvas rasterizes a frame's particles into a grid of character cells with a nearest-wins depth test.
type Canvas struct {
	cols, rows int
	cells      []Sample
	minW, maxW float32
}

// NewCanvas creates a canvas of the given size.
//
// Parameters:
//   - cols, rows: grid size in cells
//
// Returns:
//   - *Canvas: the canvas
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the grid size. Negative sizes are treated as zero.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	if n := c.cols * c.rows; cap(c.cells) >= n {
		c.cells = c.cells[:n]
	} else {
		c.cells = make([]Sample, n)
	}
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Plot clears the grid and projects every particle of f through its MVP. Particles outside the
// view frustum are culled. Nothing is plotted while the cloud is hidden.
//
// Parameters:
//   - f: the frame to rasterize
//
// Returns:
//   - int: the number of occupied cells
func (c *Canvas) Plot(f engine.Frame) int {
	clear(c.cells)
	c.minW, c.maxW = 0, 0
	if !f.CloudVisible || c.cols == 0 || c.rows == 0 {
		return 0
	}

	frustum := common.ExtractFrustumFromMatrix(f.MVP[:])
	count := min(len(f.Positions), len(f.Colors)) / 3
	occupied := 0
	for i := range count {
		x, y, z := f.Positions[i*3], f.Positions[i*3+1], f.Positions[i*3+2]
		if !frustum.Contains(x, y, z) {
			continue
		}
		cx, cy, _, cw := common.TransformPoint(f.MVP[:], x, y, z)
		if cw <= 0 {
			continue
		}
		col, row, ok := c.cellOf(cx/cw, cy/cw)
		if !ok {
			continue
		}

		s := &c.cells[row*c.cols+col]
		if s.set && s.W <= cw {
			continue
		}
		if !s.set {
			occupied++
		}
		s.set = true
		s.W = cw
		s.Color = colorful.Color{R: float64(f.Colors[i*3]), G: float64(f.Colors[i*3+1]), B: float64(f.Colors[i*3+2])}

		if occupied == 1 || cw < c.minW {
			c.minW = cw
		}
		if occupied == 1 || cw > c.maxW {
			c.maxW = cw
		}
	}
	return occupied
}

// cellOf maps normalized device coordinates to a grid cell. +y is up in NDC and down on screen.
func (c *Canvas) cellOf(ndcX, ndcY float32) (col, row int, ok bool) {
	fx := (ndcX + 1) / 2 * float32(c.cols)
	fy := (1 - ndcY) / 2 * float32(c.rows)
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	col, row = int(fx), int(fy)
	if col >= c.cols || row >= c.rows {
		return 0, 0, false
	}
	return col, row, true
}

// At returns the sample at a cell.
//
// Returns:
//   - Sample: the nearest particle in the cell
//   - bool: false if the cell is empty or out of range
func (c *Canvas) At(col, row int) (Sample, bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return Sample{}, false
	}
	s := c.cells[row*c.cols+col]
	return s, s.set
}

// Shade picks the glyph and color for a sample from its depth within the plotted range.
// Farther samples use smaller glyphs and are dimmed toward black.
//
// Returns:
//   - rune: the glyph
//   - colorful.Color: the shaded color
func (c *Canvas) Shade(s Sample) (rune, colorful.Color) {
	t := 0.0
	if span := c.maxW - c.minW; span > 0 {
		t = float64((s.W - c.minW) / span)
	}
	idx := min(int(t*float64(len(glyphs))), len(glyphs)-1)
	return glyphs[idx], s.Color.BlendRgb(colorful.Color{}, t*0.6).Clamped()
}
