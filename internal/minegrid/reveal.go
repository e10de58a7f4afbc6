package minegrid

import "slices"

// Reveal opens the cell at (x, y).
//
// A hidden unflagged cell is revealed; a mine loses the game, the last safe
// cell wins it, and a cell with no surrounding mines reveals all of its
// neighbours in turn. Flagged cells are protected. Revealing an already
// open numbered cell whose surrounding flags match its number exactly
// reveals its hidden neighbours (a chord).
//
// Pending reveals are kept on an explicit stack and processed in the same
// order a depth-first recursion would visit them. Processing stops as soon
// as the grid is won or lost.
func (g *Grid) Reveal(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	pending := []point{{x, y}}
	for len(pending) > 0 && !g.state.Terminal() {
		p := pending[len(pending)-1]
		pending = g.revealOne(pending[:len(pending)-1], p)
	}
}

// revealOne applies one reveal to p and pushes the follow-up reveals.
func (g *Grid) revealOne(pending []point, p point) []point {
	c := g.cell(p.x, p.y)
	switch s := c.state.(type) {
	case Hidden:
		if s.Flags > 0 {
			return pending
		}
		c.state = Revealed{}
		if c.IsMine() {
			g.state = Lose
			return pending
		}
		g.spacesLeft--
		if g.spacesLeft == 0 {
			g.state = Win
			return pending
		}
		if c.surroundingMines == 0 {
			return g.pushNeighbors(pending, p, false)
		}
	case Revealed:
		if c.surroundingMines == 0 {
			return pending
		}
		if g.countSurroundingFlags(p.x, p.y) != int(c.surroundingMines) {
			return pending
		}
		return g.pushNeighbors(pending, p, true)
	default:
		panic(unknownState(s))
	}
	return pending
}

// pushNeighbors pushes the neighbours of p in reverse scan order so that the
// first neighbour is popped first.
func (g *Grid) pushNeighbors(pending []point, p point, hiddenOnly bool) []point {
	var buf [8]point
	neighbors := g.neighborPoints(buf[:0], p.x, p.y)
	if hiddenOnly {
		neighbors = slices.DeleteFunc(neighbors, func(n point) bool {
			return g.cell(n.x, n.y).Revealed()
		})
	}
	for _, n := range slices.Backward(neighbors) {
		pending = append(pending, n)
	}
	return pending
}
