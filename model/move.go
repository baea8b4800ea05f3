package model

import (
	"errors"
	"unicode"
)

var ErrInvalidMove = errors.New("invalid move")

// RunLength bounds a run command; a run stops at the first blocking cell
// long before reaching it on any sane map.
const RunLength = 1000

// Direction is a requested displacement. Unit moves have components in
// {-1, 0, 1}; runs repeat the unit step.
type Direction struct {
	DX, DY int
}

var (
	Left      = Direction{DX: -1}
	Right     = Direction{DX: 1}
	Up        = Direction{DY: -1}
	Down      = Direction{DY: 1}
	UpLeft    = Direction{DX: -1, DY: -1}
	UpRight   = Direction{DX: 1, DY: -1}
	DownLeft  = Direction{DX: -1, DY: 1}
	DownRight = Direction{DX: 1, DY: 1}
)

var cardinals = []Direction{Up, Right, Down, Left}

var keyDirections = map[rune]Direction{
	'h': Left,
	'l': Right,
	'k': Up,
	'j': Down,
	'y': UpLeft,
	'u': UpRight,
	'b': DownLeft,
	'n': DownRight,
}

// Run repeats d until blocked.
func (d Direction) Run() Direction {
	return Direction{DX: d.DX * RunLength, DY: d.DY * RunLength}
}

// DirectionForKey maps a movement key: lower case steps once, upper case runs.
func DirectionForKey(key rune) (Direction, bool) {
	if d, ok := keyDirections[key]; ok {
		return d, true
	}
	if unicode.IsUpper(key) {
		if d, ok := keyDirections[unicode.ToLower(key)]; ok {
			return d.Run(), true
		}
	}
	return Direction{}, false
}

// Bounds reserves a margin of cells on the outer columns and rows that a
// move may never enter. Some map formats keep their outer ring unplayable.
type Bounds struct {
	MarginCols int
	MarginRows int
}

// Mover validates and applies movement on one grid.
type Mover struct {
	Grid   *Grid
	Bounds Bounds
	// Occupied, when set, reports cells a player may not enter because
	// someone else stands there.
	Occupied func(Position) bool
}

// Move applies d to p on g with no margins and no occupancy checks.
func Move(g *Grid, p *Player, d Direction, gold *GoldTable) (Position, int, error) {
	return Mover{Grid: g}.Move(p, d, gold)
}

// Move walks p one cell at a time toward the requested displacement. Each
// committed step collects gold lying there and refreshes p's sight. The walk
// stops early at a blocking cell; that is not an error. A diagonal with
// unequal components is rejected without touching p.
func (m Mover) Move(p *Player, d Direction, gold *GoldTable) (Position, int, error) {
	if p == nil {
		return Position{}, 0, ErrInvalidMove
	}
	if d.DX != 0 && d.DY != 0 && abs(d.DX) != abs(d.DY) {
		return p.Pos, 0, ErrInvalidMove
	}
	ux, uy := sign(d.DX), sign(d.DY)
	steps := m.limit(p.Pos, ux, uy, max(abs(d.DX), abs(d.DY)))

	collected := 0
	for ; steps > 0; steps-- {
		next := p.Pos.Add(ux, uy)
		c, ok := m.Grid.At(next)
		if !ok || BlocksMovement(c) {
			break
		}
		if m.Occupied != nil && m.Occupied(next) {
			break
		}
		p.Pos = next
		if gold != nil {
			n := gold.CollectAt(next)
			p.Purse += n
			collected += n
		}
		p.Observe(m.Grid)
	}
	return p.Pos, collected, nil
}

// limit clamps the number of unit steps so the walk stays inside the
// playable area.
func (m Mover) limit(from Position, ux, uy, steps int) int {
	minX, maxX := m.Bounds.MarginCols, m.Grid.Width()-1-m.Bounds.MarginCols
	minY, maxY := m.Bounds.MarginRows, m.Grid.Height()-1-m.Bounds.MarginRows
	switch {
	case ux > 0:
		steps = min(steps, maxX-from.X)
	case ux < 0:
		steps = min(steps, from.X-minX)
	}
	switch {
	case uy > 0:
		steps = min(steps, maxY-from.Y)
	case uy < 0:
		steps = min(steps, from.Y-minY)
	}
	if steps < 0 {
		return 0
	}
	return steps
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
