// Package minegrid is the rule engine of a mine-detection puzzle: it places
// mines, answers neighbour queries, and applies reveal and flag moves until
// the grid is won or lost.
//
// A Grid is not safe for concurrent use; callers serialise access.
package minegrid

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

//go:generate stringer -type=GridState
type GridState uint8

const (
	Play GridState = iota
	Win
	Lose
)

// Terminal reports whether no further move can change the grid.
func (s GridState) Terminal() bool {
	switch s {
	case Play:
		return false
	case Win, Lose:
		return true
	default:
		panic(fmt.Sprintf("minegrid: unknown grid state %d", s))
	}
}

var (
	ErrInvalidDimensions = errors.New("grid dimensions must not be negative")
	ErrNegativeMines     = errors.New("mine count must not be negative")
	ErrTooManyMines      = errors.New("mine count exceeds number of cells")
)

type point struct {
	x, y int
}

type Grid struct {
	cells         []Cell
	width, height int
	mines         int
	maxFlagLevel  uint8
	minesFlagged  int
	spacesLeft    int
	state         GridState
}

type Option func(*Grid)

// WithMaxFlagLevel sets how many flag levels a hidden cell cycles through
// before returning to unflagged. Level 0 is treated as 1.
func WithMaxFlagLevel(level uint8) Option {
	return func(g *Grid) {
		g.maxFlagLevel = max(level, 1)
	}
}

// New builds a width x height grid with mines placed uniformly at random.
func New(width, height, mines int, opts ...Option) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if mines < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeMines, mines)
	}
	if mines > width*height {
		return nil, fmt.Errorf(
			"%w: %d > %dx%d", ErrTooManyMines, mines, width, height,
		)
	}
	return build(width, height, placeMines(width, height, mines), opts...), nil
}

// reject and resample until enough distinct points are drawn
func placeMines(width, height, mines int) mapset.Set[point] {
	points := mapset.New[point]()
	for points.Size() != mines {
		points.Put(point{rand.IntN(width), rand.IntN(height)})
	}
	return points
}

func build(width, height int, mines mapset.Set[point], opts ...Option) *Grid {
	g := &Grid{
		cells:        make([]Cell, 0, width*height),
		width:        width,
		height:       height,
		mines:        mines.Size(),
		maxFlagLevel: 1,
		spacesLeft:   width*height - mines.Size(),
		state:        Play,
	}
	for y := range height {
		for x := range width {
			var m uint8
			if mines.Has(point{x, y}) {
				m = 1
			}
			g.cells = append(g.cells, Cell{x: x, y: y, mines: m, state: Hidden{}})
		}
	}
	for i := range g.cells {
		c := &g.cells[i]
		c.surroundingMines = g.countSurroundingMines(c.x, c.y)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Mines() int  { return g.mines }

// MinesFlagged is the sum of flag levels over hidden cells.
func (g *Grid) MinesFlagged() int { return g.minesFlagged }

// MinesLeft is Mines minus MinesFlagged. It goes negative when the player
// places more flags than there are mines.
func (g *Grid) MinesLeft() int { return g.mines - g.minesFlagged }

// SpacesLeft is the number of safe cells still hidden.
func (g *Grid) SpacesLeft() int { return g.spacesLeft }

func (g *Grid) MaxFlagLevel() uint8 { return g.maxFlagLevel }

func (g *Grid) State() GridState { return g.state }

func (g *Grid) InBounds(x, y int) bool {
	return 0 <= x && x < g.width && 0 <= y && y < g.height
}

// cell assumes InBounds(x, y).
func (g *Grid) cell(x, y int) *Cell {
	return &g.cells[y*g.width+x]
}

// CellAt returns a copy of the cell at (x, y); ok is false out of bounds.
func (g *Grid) CellAt(x, y int) (c Cell, ok bool) {
	if !g.InBounds(x, y) {
		return Cell{}, false
	}
	return *g.cell(x, y), true
}

// All yields a copy of every cell in row-major order.
func (g *Grid) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range g.cells {
			if !yield(c) {
				return
			}
		}
	}
}
