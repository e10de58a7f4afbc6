package minegrid

import (
	"fmt"
	"strconv"
)

// CellState is one of [Hidden] or [Revealed]. The set is closed: code that
// switches over a CellState must handle both and treat anything else as a
// programming error.
type CellState interface {
	fmt.Stringer
	cellState()
}

// Hidden is a cell the player has not opened. Flags is the flag level the
// player put on it, cycling through 0..MaxFlagLevel.
type Hidden struct {
	Flags uint8
}

// Revealed is an opened cell. A revealed cell never becomes hidden again.
type Revealed struct{}

func (Hidden) cellState()   {}
func (Revealed) cellState() {}

func (h Hidden) String() string {
	if h.Flags == 0 {
		return "hidden"
	}
	return "flagged(" + strconv.Itoa(int(h.Flags)) + ")"
}

func (Revealed) String() string {
	return "revealed"
}

func unknownState(s CellState) string {
	return fmt.Sprintf("minegrid: unknown cell state %T", s)
}

// Cell is a copy of one grid position. Mutations go through [Grid].
type Cell struct {
	x, y             int
	mines            uint8
	state            CellState
	surroundingMines uint8
}

func (c Cell) X() int { return c.x }
func (c Cell) Y() int { return c.y }

// Mines is 1 for a mine cell and 0 otherwise.
func (c Cell) Mines() uint8 { return c.mines }

func (c Cell) IsMine() bool { return c.mines != 0 }

func (c Cell) State() CellState { return c.state }

// SurroundingMines is the number of mines among the 8 neighbours, fixed
// when the grid is built.
func (c Cell) SurroundingMines() uint8 { return c.surroundingMines }

// Flags is the flag level of a hidden cell and 0 for a revealed one.
func (c Cell) Flags() uint8 {
	switch s := c.state.(type) {
	case Hidden:
		return s.Flags
	case Revealed:
		return 0
	default:
		panic(unknownState(s))
	}
}

func (c Cell) Revealed() bool {
	switch s := c.state.(type) {
	case Hidden:
		return false
	case Revealed:
		return true
	default:
		panic(unknownState(s))
	}
}
