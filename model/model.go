package model

import (
	"github.com/bits-and-blooms/bitset"
)

// Cell alphabet.
const (
	Void     byte = ' '
	Corridor byte = '#'
	HWall    byte = '-'
	VWall    byte = '|'
	Passage  byte = '+'
	Floor    byte = '.'
	Gold     byte = '*'
	Self     byte = '@'
)

type Position struct {
	X, Y int
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Grid is the immutable terrain, stored row-major without row separators.
type Grid struct {
	width, height int
	cells         []byte
}

type Player struct {
	ID     string
	Name   string
	Letter byte
	Pos    Position
	Purse  int
	Active bool

	// Known holds every cell the player has ever seen.
	Known *bitset.BitSet
	// Visible holds the cells in line of sight from Pos at the last recompute.
	Visible *bitset.BitSet
}

type GoldPile struct {
	Value     int
	Collected bool
	Pos       Position
}

// NewPlayer creates an active player with an all-unknown mask sized for g.
func NewPlayer(g *Grid, id, name string, letter byte, pos Position) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Letter:  letter,
		Pos:     pos,
		Active:  true,
		Known:   bitset.New(uint(g.Area())),
		Visible: bitset.New(uint(g.Area())),
	}
}

// Observe recomputes line of sight from the player's position and merges it
// into the known mask.
func (p *Player) Observe(g *Grid) {
	MergeKnown(p, ComputeVisible(g, p.Pos))
}

// Sees reports whether cell i is currently in the player's line of sight.
func (p *Player) Sees(i int) bool {
	return i >= 0 && p.Visible != nil && p.Visible.Test(uint(i))
}

// Knows reports whether cell i has ever been seen by the player.
func (p *Player) Knows(i int) bool {
	return i >= 0 && p.Known != nil && p.Known.Test(uint(i))
}
