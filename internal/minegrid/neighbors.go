package minegrid

// row-major within the 3x3 block, center skipped
var offsets = [8]point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// neighborPoints appends the in-bounds neighbours of (x, y) to dst.
func (g *Grid) neighborPoints(dst []point, x, y int) []point {
	for _, d := range offsets {
		if nx, ny := x+d.x, y+d.y; g.InBounds(nx, ny) {
			dst = append(dst, point{nx, ny})
		}
	}
	return dst
}

// Neighbors returns copies of the up to 8 cells around (x, y). It returns
// nil when (x, y) itself is out of bounds.
func (g *Grid) Neighbors(x, y int) []Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	var buf [8]point
	neighbors := make([]Cell, 0, 8)
	for _, p := range g.neighborPoints(buf[:0], x, y) {
		neighbors = append(neighbors, *g.cell(p.x, p.y))
	}
	return neighbors
}

func (g *Grid) countSurroundingMines(x, y int) (total uint8) {
	var buf [8]point
	for _, p := range g.neighborPoints(buf[:0], x, y) {
		total += g.cell(p.x, p.y).mines
	}
	return
}

// countSurroundingFlags sums the flag levels of hidden neighbours.
func (g *Grid) countSurroundingFlags(x, y int) (total int) {
	var buf [8]point
	for _, p := range g.neighborPoints(buf[:0], x, y) {
		switch s := g.cell(p.x, p.y).state.(type) {
		case Hidden:
			total += int(s.Flags)
		case Revealed:
		default:
			panic(unknownState(s))
		}
	}
	return
}
