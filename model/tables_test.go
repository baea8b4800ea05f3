package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

func TestGoldTable(t *testing.T) {
	table := NewGoldTable()
	assert.Zero(t, table.Len())

	first := table.Add(&GoldPile{Value: 10, Pos: Position{X: 1, Y: 1}})
	second := table.Add(&GoldPile{Value: 20, Pos: Position{X: 2, Y: 1}})
	table.Put(7, &GoldPile{Value: 30, Pos: Position{X: 2, Y: 1}})
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 8, table.Add(&GoldPile{Value: 1, Pos: Position{X: 3, Y: 3}}))

	ids := make([]int, 0)
	table.Each(func(id int, _ *GoldPile) { ids = append(ids, id) })
	assert.Equal(t, []int{0, 1, 7, 8}, ids)

	gold, piles := table.Remaining()
	assert.Equal(t, 61, gold)
	assert.Equal(t, 4, piles)

	assert.NotNil(t, table.At(Position{X: 2, Y: 1}))
	assert.Equal(t, 50, table.CollectAt(Position{X: 2, Y: 1}))
	assert.Zero(t, table.CollectAt(Position{X: 2, Y: 1}))
	assert.Nil(t, table.At(Position{X: 2, Y: 1}))

	gold, piles = table.Remaining()
	assert.Equal(t, 11, gold)
	assert.Equal(t, 2, piles)

	positions := table.Positions()
	assert.Equal(t, 2, positions.Size())
	assert.True(t, positions.Has(Position{X: 1, Y: 1}))
	assert.False(t, positions.Has(Position{X: 2, Y: 1}))
}

func TestRegistry(t *testing.T) {
	g := mustGrid(t, smallMap)
	reg := NewRegistry()
	a := NewPlayer(g, "a", "alice", 'A', Position{X: 1, Y: 1})
	b := NewPlayer(g, "b", "bob", 'B', Position{X: 3, Y: 1})
	reg.Put(a)
	reg.Put(b)
	reg.Put(a)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 2, reg.ActiveCount())

	got, ok := reg.Get("b")
	require.True(t, ok)
	assert.Same(t, b, got)
	_, ok = reg.Get("c")
	assert.False(t, ok)

	assert.Same(t, a, reg.At(Position{X: 1, Y: 1}))
	assert.Nil(t, reg.At(Position{X: 2, Y: 1}))
	assert.True(t, reg.Occupied().Has(Position{X: 3, Y: 1}))

	b.Active = false
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 1, reg.ActiveCount())
	assert.Nil(t, reg.At(Position{X: 3, Y: 1}))
	assert.Equal(t, 1, reg.Occupied().Size())
}

func TestSpawnPosition(t *testing.T) {
	g := mustGrid(t, smallMap)
	rng := rand.New(rand.NewSource(1))
	occupied := mapset.New[Position]()
	occupied.Put(Position{X: 1, Y: 1})
	occupied.Put(Position{X: 3, Y: 1})

	for i := 0; i < 20; i++ {
		p, err := SpawnPosition(g, occupied, rng)
		require.NoError(t, err)
		assert.Equal(t, Position{X: 2, Y: 1}, p)
	}

	occupied.Put(Position{X: 2, Y: 1})
	_, err := SpawnPosition(g, occupied, rng)
	assert.ErrorIs(t, err, ErrOutOfSpace)
}

func TestSpawnOnFloorOnly(t *testing.T) {
	g := mustGrid(t, "+---+###", "|...+..#", "+---+###")
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		p, err := SpawnPosition(g, mapset.New[Position](), rng)
		require.NoError(t, err)
		c, _ := g.At(p)
		assert.Equal(t, Floor, c)
	}
}
