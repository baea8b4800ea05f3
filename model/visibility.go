package model

import (
	"github.com/bits-and-blooms/bitset"
)

// ComputeVisible returns the cells in line of sight from observer. One ray is
// cast to every cell of the grid, so a call costs O(area * max(width, height)).
func ComputeVisible(g *Grid, observer Position) *bitset.BitSet {
	visible := bitset.New(uint(g.Area()))
	origin := g.Index(observer)
	if origin == NoIndex {
		return visible
	}
	visible.Set(uint(origin))
	for i := 0; i < g.Area(); i++ {
		target, _ := g.Position(i)
		castRay(g, visible, observer, target)
	}
	return visible
}

// MergeKnown ORs the instantaneous mask into the player's known cells and
// keeps it as the player's current sight.
func MergeKnown(p *Player, visible *bitset.BitSet) {
	if p.Known == nil {
		p.Known = bitset.New(visible.Len())
	}
	p.Known.InPlaceUnion(visible)
	p.Visible = visible
}

// ray walks the cells between two positions, one axis at a time.
type ray struct {
	pos, to  Position
	sx, sy   int
	dx2, dy2 int
	err      int
	left     int
}

func newRay(from, to Position) *ray {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	r := &ray{
		pos:  from,
		to:   to,
		sx:   1,
		sy:   1,
		dx2:  dx * 2,
		dy2:  dy * 2,
		err:  dx - dy,
		left: dx + dy,
	}
	if to.X < from.X {
		r.sx = -1
	}
	if to.Y < from.Y {
		r.sy = -1
	}
	return r
}

// next advances to the following cell; false once the target was passed.
func (r *ray) next() bool {
	if r.left == 0 {
		return false
	}
	r.left--
	if r.dx2 == 0 {
		// straight up or down
		r.pos.Y += r.sy
		return true
	}
	if r.err >= 0 {
		r.pos.X += r.sx
		r.err -= r.dy2
	} else {
		r.pos.Y += r.sy
		r.err += r.dx2
	}
	return true
}

func castRay(g *Grid, visible *bitset.BitSet, from, to Position) {
	if from == to {
		return
	}
	r := newRay(from, to)
	blocked := false
	var blocker byte
	for r.next() {
		i := g.Index(r.pos)
		if i == NoIndex {
			return
		}
		c := g.cells[i]
		if blocked {
			// a passage lets a stopped ray see one more cell
			if blocker == Passage || c == Passage {
				visible.Set(uint(i))
			}
			return
		}
		if c == Corridor {
			if r.pos == to || adjacent(r.pos, from) {
				revealCorridor(g, visible, r.pos)
				blocked, blocker = true, c
				continue
			}
			// hidden corridors stop the ray without letting anything through
			return
		}
		visible.Set(uint(i))
		if BlocksSight(c) {
			blocked, blocker = true, c
		}
	}
}

// revealCorridor shows a corridor cell together with the wall segments
// framing it.
func revealCorridor(g *Grid, visible *bitset.BitSet, p Position) {
	visible.Set(uint(g.Index(p)))
	for _, d := range cardinals {
		n := p.Add(d.DX, d.DY)
		if c, ok := g.At(n); ok && IsWall(c) {
			visible.Set(uint(g.Index(n)))
		}
	}
}

func adjacent(a, b Position) bool {
	return abs(a.X-b.X)+abs(a.Y-b.Y) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
