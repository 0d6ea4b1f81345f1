// Terrain generation using layered simplex noise.
// Elevation and moisture layers derive the tile types; post-passes add sand
// shorelines and sparse gold deposits on high ground.
package world

import (
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width       int
	Height      int
	Seed        int64   // 0 = random
	WaterLevel  float64 // elevation threshold for water
	MountainLvl float64 // elevation threshold for mountains
	MinGold     int     // minimum gold deposits guaranteed on the map
}

// DefaultGenConfig returns the standard 20x20 settlement map.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       20,
		Height:      20,
		Seed:        0,
		WaterLevel:  0.30,
		MountainLvl: 0.72,
		MinGold:     3,
	}
}

// Generate creates a complete map. The same seed always yields the same map.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)
	oreNoise := opensimplex.NewNormalized(seed + 2)

	m := NewMap(cfg.Width, cfg.Height)

	for row := 0; row < cfg.Height; row++ {
		for col := 0; col < cfg.Width; col++ {
			x := float64(col)
			y := float64(row)

			elev := octaveNoise(elevNoise, x, y, 4, 0.09, 0.5)
			moist := octaveNoise(moistNoise, x, y, 3, 0.07, 0.5)

			m.Tiles[row][col] = Tile{
				Type: deriveTile(elev, moist, cfg),
				Col:  col,
				Row:  row,
			}
		}
	}

	markShorelines(m)
	placeGoldDeposits(m, oreNoise, cfg.MinGold)

	return m
}

// deriveTile determines a tile type from the noise layers.
func deriveTile(elev, moist float64, cfg GenConfig) TileType {
	switch {
	case elev < cfg.WaterLevel:
		return TileWater
	case elev > cfg.MountainLvl:
		return TileMountain
	case moist > 0.58:
		return TileForest
	default:
		return TilePlains
	}
}

// markShorelines converts low plains adjacent to water into sand.
func markShorelines(m *Map) {
	var toMark []*Tile
	for row := range m.Tiles {
		for col := range m.Tiles[row] {
			tile := &m.Tiles[row][col]
			if tile.Type != TilePlains {
				continue
			}
			for _, n := range neighbors(m, col, row) {
				if n.Type == TileWater {
					toMark = append(toMark, tile)
					break
				}
			}
		}
	}
	for _, tile := range toMark {
		tile.Type = TileSand
	}
}

// placeGoldDeposits converts the richest mountain tiles into gold deposits.
// At least minGold deposits are placed so a gold mine is always buildable
// somewhere, provided the map has mountains at all.
func placeGoldDeposits(m *Map, ore opensimplex.Noise, minGold int) {
	type candidate struct {
		tile *Tile
		ore  float64
	}
	var candidates []candidate

	for row := range m.Tiles {
		for col := range m.Tiles[row] {
			tile := &m.Tiles[row][col]
			if tile.Type != TileMountain {
				continue
			}
			candidates = append(candidates, candidate{
				tile: tile,
				ore:  ore.Eval2(float64(col)*0.15, float64(row)*0.15),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ore != candidates[j].ore {
			return candidates[i].ore > candidates[j].ore
		}
		// Stable order for equal ore values keeps generation deterministic.
		if candidates[i].tile.Row != candidates[j].tile.Row {
			return candidates[i].tile.Row < candidates[j].tile.Row
		}
		return candidates[i].tile.Col < candidates[j].tile.Col
	})

	placed := 0
	for _, c := range candidates {
		if placed >= minGold && c.ore < 0.78 {
			break
		}
		c.tile.Type = TileGold
		placed++
	}
}

// neighbors returns the orthogonally adjacent tiles of (col, row).
func neighbors(m *Map, col, row int) []*Tile {
	var out []*Tile
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if t := m.At(col+d[0], row+d[1]); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
