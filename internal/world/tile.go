package world

// TileType classifies a single grid cell.
type TileType uint8

const (
	TilePlains TileType = iota
	TileForest
	TileMountain
	TileWater
	TileGold
	TileSand
)

// TileName returns a human-readable name for a tile type.
func TileName(t TileType) string {
	switch t {
	case TilePlains:
		return "plains"
	case TileForest:
		return "forest"
	case TileMountain:
		return "mountain"
	case TileWater:
		return "water"
	case TileGold:
		return "gold"
	case TileSand:
		return "sand"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (t TileType) String() string { return TileName(t) }

// MarshalJSON encodes a tile type as its name.
func (t TileType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + TileName(t) + `"`), nil
}

// Tile is one cell of the map grid. Immutable after generation.
type Tile struct {
	Type TileType `json:"type"`
	Col  int      `json:"col"`
	Row  int      `json:"row"`
}
