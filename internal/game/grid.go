package game

import (
	"fmt"
	"strings"

	"github.com/Red1-Rahman/Quantum-Adventure/internal/entropy"
)

// Point is a board cell coordinate: X is the column, Y is the row, with
// (0,0) the top-left corner.
type Point struct {
	X int
	Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Grid is one generated maze layout. Each cell is either open floor or a
// wall. Layouts come straight from the entropy source, one word per row, so
// two open regions may be mutually unreachable; such boards are kept as-is.
type Grid struct {
	Size  int
	start Point
	goal  Point
	cells []bool // row-major: index = y*Size + x; true = open
}

// NewGrid draws a fresh layout: one Size-bit word per row, where bit x of
// row y opens cell (x, y). The start and goal cells are forced open after
// the fill, overriding whatever was drawn; no other cell is touched.
func NewGrid(size int, start, goal Point, src *entropy.Source) (*Grid, error) {
	if size < MinGridSize || size > MaxGridSize {
		return nil, fmt.Errorf("game: grid size must be in [%d,%d], got %d", MinGridSize, MaxGridSize, size)
	}
	g := &Grid{Size: size, start: start, goal: goal, cells: make([]bool, size*size)}
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil, fmt.Errorf("game: start %v and goal %v must lie on a %dx%d board", start, goal, size, size)
	}
	for y := 0; y < size; y++ {
		word, err := src.RowBits(size)
		if err != nil {
			return nil, fmt.Errorf("game: maze row %d: %w", y, err)
		}
		for x := 0; x < size; x++ {
			g.cells[y*size+x] = word>>uint(x)&1 == 1
		}
	}
	g.setOpen(start)
	g.setOpen(goal)
	return g, nil
}

// Start returns the forced-open cell where the first agent spawns.
func (g *Grid) Start() Point { return g.start }

// Goal returns the forced-open target cell.
func (g *Grid) Goal() Point { return g.goal }

// InBounds returns true if p lies on the board.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// Open returns true if p is on the board and open floor.
func (g *Grid) Open(p Point) bool {
	return g.InBounds(p) && g.cells[p.Y*g.Size+p.X]
}

// OpenCount returns how many cells are open floor.
func (g *Grid) OpenCount() int {
	n := 0
	for _, open := range g.cells {
		if open {
			n++
		}
	}
	return n
}

func (g *Grid) setOpen(p Point) { g.cells[p.Y*g.Size+p.X] = true }

// String renders the layout one row per line, '.' for floor and '#' for
// walls. Used in logs and episode reports.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.cells[y*g.Size+x] {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
