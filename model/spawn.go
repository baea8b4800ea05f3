package model

import (
	"errors"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

var ErrOutOfSpace = errors.New("no free floor cell left")

// SpawnPosition picks a random floor cell that is not in occupied.
func SpawnPosition(g *Grid, occupied mapset.Set[Position], rng *rand.Rand) (Position, error) {
	free := make([]Position, 0)
	for _, p := range g.FloorCells() {
		if !occupied.Has(p) {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return Position{}, ErrOutOfSpace
	}
	return free[rng.Intn(len(free))], nil
}
