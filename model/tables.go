package model

import (
	g "github.com/zyedidia/generic"
	"github.com/zyedidia/generic/avl"
	"github.com/zyedidia/generic/mapset"
)

// GoldTable holds the gold piles of a game keyed by pile id. Iteration is in
// id order.
type GoldTable struct {
	piles  *avl.Tree[int, *GoldPile]
	nextID int
	size   int
}

func NewGoldTable() *GoldTable {
	return &GoldTable{piles: avl.New[int, *GoldPile](g.Less[int])}
}

// Add stores pile under the next free id and returns that id.
func (t *GoldTable) Add(pile *GoldPile) int {
	id := t.nextID
	t.Put(id, pile)
	return id
}

func (t *GoldTable) Put(id int, pile *GoldPile) {
	if _, found := t.piles.Get(id); !found {
		t.size++
	}
	t.piles.Put(id, pile)
	if id >= t.nextID {
		t.nextID = id + 1
	}
}

func (t *GoldTable) Get(id int) (*GoldPile, bool) {
	return t.piles.Get(id)
}

func (t *GoldTable) Len() int { return t.size }

func (t *GoldTable) Each(fn func(id int, pile *GoldPile)) {
	t.piles.Each(fn)
}

// At returns the uncollected pile lying on p, if any.
func (t *GoldTable) At(p Position) *GoldPile {
	var found *GoldPile
	t.Each(func(_ int, pile *GoldPile) {
		if found == nil && !pile.Collected && pile.Pos == p {
			found = pile
		}
	})
	return found
}

// CollectAt marks every uncollected pile on p as collected and returns the
// gold gained. Collected piles are never counted twice.
func (t *GoldTable) CollectAt(p Position) int {
	gained := 0
	t.Each(func(_ int, pile *GoldPile) {
		if !pile.Collected && pile.Pos == p {
			gained += pile.Value
			pile.Collected = true
		}
	})
	return gained
}

// Remaining returns the uncollected gold and the number of piles holding it.
func (t *GoldTable) Remaining() (gold, piles int) {
	t.Each(func(_ int, pile *GoldPile) {
		if !pile.Collected {
			gold += pile.Value
			piles++
		}
	})
	return
}

// Positions returns the cells holding uncollected gold.
func (t *GoldTable) Positions() mapset.Set[Position] {
	set := mapset.New[Position]()
	t.Each(func(_ int, pile *GoldPile) {
		if !pile.Collected {
			set.Put(pile.Pos)
		}
	})
	return set
}

// Registry holds every player that ever joined a game keyed by id. Players
// who quit stay registered as inactive.
type Registry struct {
	players *avl.Tree[string, *Player]
	size    int
}

func NewRegistry() *Registry {
	return &Registry{players: avl.New[string, *Player](g.Less[string])}
}

func (r *Registry) Put(p *Player) {
	if _, found := r.players.Get(p.ID); !found {
		r.size++
	}
	r.players.Put(p.ID, p)
}

func (r *Registry) Get(id string) (*Player, bool) {
	return r.players.Get(id)
}

func (r *Registry) Len() int { return r.size }

func (r *Registry) Each(fn func(id string, p *Player)) {
	r.players.Each(fn)
}

// ActiveCount counts players that have not quit.
func (r *Registry) ActiveCount() int {
	n := 0
	r.Each(func(_ string, p *Player) {
		if p.Active {
			n++
		}
	})
	return n
}

// At returns the active player standing on p, if any.
func (r *Registry) At(p Position) *Player {
	var found *Player
	r.Each(func(_ string, pl *Player) {
		if found == nil && pl.Active && pl.Pos == p {
			found = pl
		}
	})
	return found
}

// Occupied returns the cells taken by active players.
func (r *Registry) Occupied() mapset.Set[Position] {
	set := mapset.New[Position]()
	r.Each(func(_ string, p *Player) {
		if p.Active {
			set.Put(p.Pos)
		}
	})
	return set
}
