package model

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Index maps p to its offset in the cell buffer, NoIndex when p is outside.
func (g *Grid) Index(p Position) int {
	if !g.Contains(p) {
		return NoIndex
	}
	return p.Y*g.width + p.X
}

// Position maps a cell offset back to coordinates.
func (g *Grid) Position(i int) (Position, bool) {
	if i < 0 || i >= g.Area() {
		return Position{}, false
	}
	return Position{X: i % g.width, Y: i / g.width}, true
}
