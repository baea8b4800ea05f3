package server

import (
	"math/rand"

	"github.com/zucenko/nuggets/model"
	"github.com/zyedidia/generic/mapset"
)

// PlaceGold splits total into between minPiles and maxPiles piles of at
// least one nugget each and drops them on distinct free floor cells.
func PlaceGold(g *model.Grid, occupied mapset.Set[model.Position], rng *rand.Rand, total, minPiles, maxPiles int) (*model.GoldTable, error) {
	free := make([]model.Position, 0)
	for _, p := range g.FloorCells() {
		if !occupied.Has(p) {
			free = append(free, p)
		}
	}
	if len(free) == 0 || total <= 0 {
		return nil, model.ErrOutOfSpace
	}

	piles := minPiles
	if maxPiles > minPiles {
		piles += rng.Intn(maxPiles - minPiles + 1)
	}
	piles = min(piles, len(free), total)
	if piles < 1 {
		piles = 1
	}

	values := make([]int, piles)
	for i := range values {
		values[i] = 1
	}
	for left := total - piles; left > 0; left-- {
		values[rng.Intn(piles)]++
	}

	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	table := model.NewGoldTable()
	for i, v := range values {
		table.Add(&model.GoldPile{Value: v, Pos: free[i]})
	}
	return table, nil
}
