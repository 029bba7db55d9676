package game

import "fmt"

// Classic layout: a 10x10 board with three walkers that step every five
// ticks, simulated at ten ticks per second.
const (
	DefaultGridSize       = 10
	DefaultAdversaryCount = 3
	DefaultAdversaryDelay = 5
	TicksPerSecond        = 10
)

// Maze rows are drawn as single entropy words, so a side can never exceed 64
// cells. Below 2 cells the two agents would share one corner.
const (
	MinGridSize = 2
	MaxGridSize = 64
)

// The window targets baseWindowPx pixels per side, but cells stay readable.
const (
	baseWindowPx = 600
	minCellPx    = 20
	maxCellPx    = 60
)

// Config fixes the episode parameters shared by the windowed game and the
// headless harness.
type Config struct {
	GridSize       int // cells per board side
	AdversaryCount int // walkers spawned per episode
	AdversaryDelay int // ticks between walker steps
}

// DefaultConfig returns the classic layout.
func DefaultConfig() Config {
	return Config{
		GridSize:       DefaultGridSize,
		AdversaryCount: DefaultAdversaryCount,
		AdversaryDelay: DefaultAdversaryDelay,
	}
}

// Validate reports the first out-of-range parameter. Walkers spawn on
// distinct cells with both agents and the goal reserved, so the count is
// capped by the board area minus three.
func (c Config) Validate() error {
	if c.GridSize < MinGridSize || c.GridSize > MaxGridSize {
		return fmt.Errorf("game: grid size must be in [%d,%d], got %d", MinGridSize, MaxGridSize, c.GridSize)
	}
	if c.AdversaryCount < 0 {
		return fmt.Errorf("game: adversary count must be non-negative, got %d", c.AdversaryCount)
	}
	if max := c.GridSize*c.GridSize - 3; c.AdversaryCount > max {
		return fmt.Errorf("game: adversary count %d exceeds the %d placeable cells", c.AdversaryCount, max)
	}
	if c.AdversaryDelay < 1 {
		return fmt.Errorf("game: adversary delay must be positive, got %d", c.AdversaryDelay)
	}
	return nil
}

// CellSize returns the pixel size of one board cell.
func (c Config) CellSize() int {
	px := baseWindowPx / c.GridSize
	if px < minCellPx {
		px = minCellPx
	}
	if px > maxCellPx {
		px = maxCellPx
	}
	return px
}

// WindowSize returns the square pixel dimensions of the board window.
func (c Config) WindowSize() (w, h int) {
	side := c.GridSize * c.CellSize()
	return side, side
}
