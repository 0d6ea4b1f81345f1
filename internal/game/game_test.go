package game

import (
	"math/rand"

	"github.com/talgya/stonefall/internal/world"
)

// flatMapGen builds a uniform 20x20 map of the given tile type.
func flatMapGen(t world.TileType) func() *world.Map {
	return func() *world.Map {
		m := world.NewMap(20, 20)
		for row := range m.Tiles {
			for col := range m.Tiles[row] {
				m.Tiles[row][col].Type = t
			}
		}
		return m
	}
}

// mixedMapGen builds a plains map with a forest column, a mountain column
// and one gold tile, so every building type has a valid spot.
func mixedMapGen() *world.Map {
	m := world.NewMap(20, 20)
	for row := 0; row < 20; row++ {
		m.Tiles[row][0].Type = world.TileForest
		m.Tiles[row][1].Type = world.TileMountain
	}
	m.Tiles[0][2].Type = world.TileGold
	return m
}

func newTestGame(mapGen func() *world.Map, seed int64) *Game {
	return New(Options{
		MapGen: mapGen,
		Rand:   rand.New(rand.NewSource(seed)),
	})
}

// zeroSource makes rng.Float64 return 0, forcing every stochastic roll to
// succeed.
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}
