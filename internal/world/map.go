package world

import "fmt"

// Map holds the complete tile grid.
type Map struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  [][]Tile `json:"tiles"` // indexed [row][col]
}

// NewMap creates an empty map of the given dimensions, all plains.
func NewMap(width, height int) *Map {
	tiles := make([][]Tile, height)
	for row := range tiles {
		tiles[row] = make([]Tile, width)
		for col := range tiles[row] {
			tiles[row][col] = Tile{Type: TilePlains, Col: col, Row: row}
		}
	}
	return &Map{Width: width, Height: height, Tiles: tiles}
}

// At returns the tile at (col, row), or nil if out of bounds.
func (m *Map) At(col, row int) *Tile {
	if !m.InBounds(col, row) {
		return nil
	}
	return &m.Tiles[row][col]
}

// InBounds reports whether (col, row) lies within the grid.
func (m *Map) InBounds(col, row int) bool {
	return col >= 0 && col < m.Width && row >= 0 && row < m.Height
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d)", m.Width, m.Height)
}

// TerrainCounts returns the tile type distribution.
func TerrainCounts(m *Map) map[TileType]int {
	counts := make(map[TileType]int)
	for row := range m.Tiles {
		for col := range m.Tiles[row] {
			counts[m.Tiles[row][col].Type]++
		}
	}
	return counts
}
