package minegrid

// ToggleFlag advances the flag level of a hidden cell, wrapping back to 0
// after MaxFlagLevel. Revealed cells, out-of-bounds points and finished
// grids are left alone.
func (g *Grid) ToggleFlag(x, y int) {
	if !g.InBounds(x, y) || g.state.Terminal() {
		return
	}
	c := g.cell(x, y)
	switch s := c.state.(type) {
	case Hidden:
		next := uint8((int(s.Flags) + 1) % (int(g.maxFlagLevel) + 1))
		g.minesFlagged += int(next) - int(s.Flags)
		c.state = Hidden{Flags: next}
	case Revealed:
	default:
		panic(unknownState(s))
	}
}
