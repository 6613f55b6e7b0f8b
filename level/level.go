// Package level builds tile grids for the game world, either generated from
// a seed or parsed from hand-written layouts.
package level

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/geom"
)

// Cell is the content of one grid slot.
type Cell uint8

const (
	Empty Cell = iota
	Ground
	Plank
	Bush
	Goal
)

var cellRunes = [...]byte{
	Empty:  '.',
	Ground: 'g',
	Plank:  'p',
	Bush:   'b',
	Goal:   '*',
}

// String returns the layout character for c.
func (c Cell) String() string {
	if int(c) < len(cellRunes) {
		return string(cellRunes[c])
	}
	return "?"
}

// Solid reports whether the cell blocks bodies.
func (c Cell) Solid() bool {
	return c == Ground || c == Plank
}

// ErrBadLayout is returned by Parse for malformed layouts.
var ErrBadLayout = errors.New("bad level layout")

// Grid is a rows × cols matrix of cells. Row 0 is the top.
type Grid struct {
	Cols, Rows int
	cells      []Cell
}

// NewGrid creates an empty grid.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows, cells: make([]Cell, cols*rows)}
}

// In reports whether (col, row) is inside the grid.
func (g *Grid) In(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// At returns the cell at (col, row), or Empty outside the grid.
func (g *Grid) At(col, row int) Cell {
	if !g.In(col, row) {
		return Empty
	}
	return g.cells[row*g.Cols+col]
}

// Set writes a cell. Writes outside the grid are dropped.
func (g *Grid) Set(col, row int, c Cell) {
	if g.In(col, row) {
		g.cells[row*g.Cols+col] = c
	}
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Each calls fn for every non-empty cell in row-major order.
func (g *Grid) Each(fn func(col, row int, c Cell)) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if c := g.cells[row*g.Cols+col]; c != Empty {
				fn(col, row, c)
			}
		}
	}
}

// Lines renders the grid in the layout format read by Parse.
func (g *Grid) Lines() []string {
	lines := make([]string, g.Rows)
	var b strings.Builder
	for row := 0; row < g.Rows; row++ {
		b.Reset()
		for col := 0; col < g.Cols; col++ {
			b.WriteString(g.At(col, row).String())
		}
		lines[row] = b.String()
	}
	return lines
}

// Fingerprint hashes the grid contents. Equal grids hash equal.
func (g *Grid) Fingerprint() uint64 {
	h := xxhash.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[:4], uint32(g.Cols))
	binary.LittleEndian.PutUint32(dims[4:], uint32(g.Rows))
	h.Write(dims[:])
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return h.Sum64()
}

// PlaceGoal puts a Goal cell on top of the last column's surface and
// returns where it went. ok is false when the column is full to the top.
func (g *Grid) PlaceGoal() (col, row int, ok bool) {
	col = g.Cols - 1
	for row = 0; row < g.Rows; row++ {
		if g.At(col, row) != Empty {
			break
		}
	}
	row--
	if col < 0 || row < 0 {
		return 0, 0, false
	}
	g.Set(col, row, Goal)
	return col, row, true
}

// CellRect returns the world box of a cell for the given cell size.
func CellRect(col, row int, cellW, cellH float64) r2.Box {
	return geom.Rect(geom.V(float64(col)*cellW, float64(row)*cellH), geom.V(cellW, cellH))
}

// Generate builds terrain column by column with a random walk on the
// ground height. Bushes sit on the surface, and trees (plank trunk under a
// ground canopy) are spaced at least four columns apart.
func Generate(rng *rand.Rand, cols, rows int) *Grid {
	g := NewGrid(cols, rows)
	bottom := rows - 1
	height := 2 + rng.Intn(4)
	lastTree := 0

	for col := 0; col < cols; col++ {
		for j := 0; j <= height; j++ {
			g.Set(col, bottom-j, Ground)
		}
		if rng.Intn(9) == 0 && bottom-1-height >= 0 {
			g.Set(col, bottom-1-height, Bush)
		}
		if rng.Intn(4) == 0 &&
			col-lastTree > 3 &&
			bottom-4-height >= 0 &&
			col+1 < cols-1 &&
			col >= 1 {
			g.Set(col, bottom-1-height, Plank)
			g.Set(col, bottom-2-height, Plank)
			g.Set(col-1, bottom-3-height, Ground)
			g.Set(col, bottom-3-height, Ground)
			g.Set(col+1, bottom-3-height, Ground)
			g.Set(col, bottom-4-height, Ground)
			lastTree = col
		}

		if height > 0 {
			if rng.Intn(2) == 0 {
				height += rng.Intn(3) - 1
			}
		} else {
			height++
		}
	}
	return g
}

// GenerateNoise builds a heightmap from 2D simplex noise. scale controls how
// quickly the surface varies between columns.
func GenerateNoise(seed int64, cols, rows int, scale float64) *Grid {
	g := NewGrid(cols, rows)
	noise := opensimplex.NewNormalized(seed)
	bottom := rows - 1
	maxHeight := max(1, rows/2)

	for col := 0; col < cols; col++ {
		n := noise.Eval2(float64(col)*scale, 0)
		height := int(math.Round(n * float64(maxHeight)))
		for j := 0; j <= height; j++ {
			g.Set(col, bottom-j, Ground)
		}
		if d := noise.Eval2(float64(col)*scale, 100); d > 0.8 {
			g.Set(col, bottom-1-height, Bush)
		}
	}
	return g
}

// Parse reads a layout where every line is one row:
// 'g' ground, 'p' plank, 'b' bush, '*' goal, '.' or ' ' empty.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}
	cols := len(lines[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: empty first row", ErrBadLayout)
	}
	g := NewGrid(cols, len(lines))
	for row, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadLayout, row, len(line), cols)
		}
		for col := 0; col < cols; col++ {
			c, ok := parseCell(line[col])
			if !ok {
				return nil, fmt.Errorf("%w: row %d col %d: unknown cell %q", ErrBadLayout, row, col, line[col])
			}
			g.Set(col, row, c)
		}
	}
	return g, nil
}

func parseCell(b byte) (Cell, bool) {
	switch b {
	case '.', ' ':
		return Empty, true
	case 'g':
		return Ground, true
	case 'p':
		return Plank, true
	case 'b':
		return Bush, true
	case '*':
		return Goal, true
	}
	return Empty, false
}
