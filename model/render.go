package model

import (
	"strings"
)

// Render draws the map as one client sees it. Layers, later winning: terrain,
// uncollected gold, active players, the viewer's own '@', and finally the
// viewer's mask blanking every cell never seen. Gold and players standing on
// cells the viewer remembers but does not currently see fall back to
// terrain. A nil viewer is a spectator and gets the whole map.
func Render(g *Grid, viewer *Player, gold *GoldTable, players *Registry) string {
	layer := make([]byte, g.Area())
	copy(layer, g.cells)

	if gold != nil {
		gold.Each(func(_ int, pile *GoldPile) {
			if i := g.Index(pile.Pos); i != NoIndex && !pile.Collected {
				layer[i] = Gold
			}
		})
	}
	if players != nil {
		players.Each(func(_ string, p *Player) {
			if i := g.Index(p.Pos); i != NoIndex && p.Active {
				layer[i] = p.Letter
			}
		})
	}

	if viewer != nil {
		if i := g.Index(viewer.Pos); i != NoIndex {
			layer[i] = Self
		}
		for i := range layer {
			switch {
			case !viewer.Knows(i):
				layer[i] = Void
			case layer[i] != g.cells[i] && layer[i] != Self && !viewer.Sees(i):
				layer[i] = g.cells[i]
			}
		}
	}

	var b strings.Builder
	b.Grow(g.Area() + g.height)
	for row := 0; row < g.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.Write(layer[row*g.width : (row+1)*g.width])
	}
	return b.String()
}
