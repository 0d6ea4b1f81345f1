package game

import (
	"github.com/talgya/stonefall/internal/world"
)

// BuildingType identifies a building kind.
type BuildingType string

const (
	BuildingTownCenter   BuildingType = "town_center"
	BuildingHouse        BuildingType = "house"
	BuildingFarm         BuildingType = "farm"
	BuildingSawmill      BuildingType = "sawmill"
	BuildingMine         BuildingType = "mine"
	BuildingGoldMine     BuildingType = "gold_mine"
	BuildingBarracks     BuildingType = "barracks"
	BuildingDefenseTower BuildingType = "defense_tower"
)

// Building is a placed structure.
type Building struct {
	ID    string       `json:"id"`
	Type  BuildingType `json:"type"`
	Col   int          `json:"col"`
	Row   int          `json:"row"`
	HP    int          `json:"hp"`
	MaxHP int          `json:"maxHp"`
}

// BuildingDefinition is the static per-type record. Never mutated at runtime.
type BuildingDefinition struct {
	Type            BuildingType
	Name            string
	Cost            Resources
	Production      Resources
	PopulationBonus int
	HP              int
	Era             Era // earliest era in which buildable
	ValidTiles      []world.TileType
	Limit           int // 0 = unbounded
}

// Definitions is the building catalog, keyed by type.
var Definitions = map[BuildingType]BuildingDefinition{
	BuildingTownCenter: {
		Type:            BuildingTownCenter,
		Name:            "Town Center",
		Cost:            Resources{},
		Production:      Resources{Food: 1.5, Wood: 1, Stone: 0.5},
		PopulationBonus: 10,
		HP:              500,
		Era:             EraStone,
		ValidTiles:      []world.TileType{world.TilePlains, world.TileForest},
		Limit:           1,
	},
	BuildingHouse: {
		Type:            BuildingHouse,
		Name:            "House",
		Cost:            Resources{Wood: 25},
		PopulationBonus: 5,
		HP:              100,
		Era:             EraStone,
		ValidTiles:      []world.TileType{world.TilePlains, world.TileForest},
	},
	BuildingFarm: {
		Type:       BuildingFarm,
		Name:       "Farm",
		Cost:       Resources{Wood: 15, Stone: 5},
		Production: Resources{Food: 3},
		HP:         50,
		Era:        EraStone,
		ValidTiles: []world.TileType{world.TilePlains},
	},
	BuildingSawmill: {
		Type:       BuildingSawmill,
		Name:       "Sawmill",
		Cost:       Resources{Stone: 20},
		Production: Resources{Wood: 2},
		HP:         75,
		Era:        EraStone,
		ValidTiles: []world.TileType{world.TileForest},
	},
	BuildingMine: {
		Type:       BuildingMine,
		Name:       "Mine",
		Cost:       Resources{Wood: 30, Stone: 15},
		Production: Resources{Stone: 2},
		HP:         100,
		Era:        EraStone,
		ValidTiles: []world.TileType{world.TileMountain},
	},
	BuildingGoldMine: {
		Type:       BuildingGoldMine,
		Name:       "Gold Mine",
		Cost:       Resources{Wood: 40, Stone: 30},
		Production: Resources{Gold: 1},
		HP:         100,
		Era:        EraBronze,
		ValidTiles: []world.TileType{world.TileGold},
	},
	BuildingBarracks: {
		Type:       BuildingBarracks,
		Name:       "Barracks",
		Cost:       Resources{Wood: 50, Stone: 30, Gold: 10},
		HP:         200,
		Era:        EraBronze,
		ValidTiles: []world.TileType{world.TilePlains, world.TileForest},
		Limit:      3,
	},
	BuildingDefenseTower: {
		Type:       BuildingDefenseTower,
		Name:       "Defense Tower",
		Cost:       Resources{Stone: 40, Gold: 15},
		HP:         300,
		Era:        EraBronze,
		ValidTiles: []world.TileType{world.TilePlains, world.TileForest, world.TileMountain},
		Limit:      4,
	},
}

// BuildingChange describes one building collection mutation, for renderer
// diffing by id.
type BuildingChange struct {
	Op       string   `json:"op"` // "added" or "removed"
	Building Building `json:"building"`
}

// CanPlaceBuilding reports whether a building of the given type may be
// placed at (col, row) right now.
func (g *Game) CanPlaceBuilding(t BuildingType, col, row int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canPlaceBuildingLocked(t, col, row)
}

// PlacementBlocker returns the first unmet placement precondition for the
// given spot, or "" when the building could be placed right now. The string
// is meant for the player ("not enough wood", "tile occupied").
func (g *Game) PlacementBlocker(t BuildingType, col, row int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.placementBlockerLocked(t, col, row)
}

func (g *Game) canPlaceBuildingLocked(t BuildingType, col, row int) bool {
	return g.placementBlockerLocked(t, col, row) == ""
}

func (g *Game) placementBlockerLocked(t BuildingType, col, row int) string {
	def, ok := Definitions[t]
	if !ok {
		return "unknown building type"
	}

	if !g.worldMap.InBounds(col, row) {
		return "out of bounds"
	}

	tile := g.worldMap.At(col, row)
	if tile == nil {
		return "out of bounds"
	}
	if !tileAllowed(def, tile.Type) {
		return "cannot build on " + world.TileName(tile.Type)
	}

	// Water is never buildable, independent of the per-type tile list.
	if tile.Type == world.TileWater {
		return "cannot build on water"
	}

	if g.buildingAtLocked(col, row) != nil {
		return "tile occupied"
	}

	if def.Limit > 0 && g.countBuildingsLocked(t) >= def.Limit {
		return def.Name + " limit reached"
	}

	if short := g.resources.Shortfall(def.Cost); short != "" {
		return "not enough " + short
	}

	// Era gate. Bronze-tier buildings are blocked only in the Stone Age;
	// Iron-tier buildings are Iron-exclusive.
	if def.Era == EraBronze && g.era == EraStone {
		return "requires the bronze age"
	}
	if def.Era == EraIron && g.era != EraIron {
		return "requires the iron age"
	}

	return ""
}

// PlaceBuilding validates, deducts the cost and creates the building.
// On an unmet precondition it returns false plus the blocking reason,
// with nothing mutated.
func (g *Game) PlaceBuilding(t BuildingType, col, row int) (bool, string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if reason := g.placementBlockerLocked(t, col, row); reason != "" {
		return false, reason
	}
	def := Definitions[t]

	if !g.resources.Subtract(def.Cost) {
		return false, "not enough resources"
	}

	firstOfType := g.countBuildingsLocked(t) == 0

	b := &Building{
		ID:    newID(),
		Type:  t,
		Col:   col,
		Row:   row,
		HP:    def.HP,
		MaxHP: def.HP,
	}
	g.buildings = append(g.buildings, b)
	g.changes = append(g.changes, BuildingChange{Op: "added", Building: *b})

	g.recalculateLocked()
	g.placementMode = ""

	if firstOfType && t != BuildingTownCenter {
		g.addChronicleEntryLocked(ChronicleBuilding,
			"First "+def.Name,
			"Built the civilization's first "+def.Name+".",
			"🏗️")
	}

	return true, ""
}

// RemoveBuilding deletes a building by id. Returns false when no building
// with that id exists.
func (g *Game) RemoveBuilding(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, b := range g.buildings {
		if b.ID != id {
			continue
		}
		g.buildings = append(g.buildings[:i], g.buildings[i+1:]...)
		g.changes = append(g.changes, BuildingChange{Op: "removed", Building: *b})
		g.recalculateLocked()
		return true
	}
	return false
}

// SetPlacementMode arms (or clears, with "") the building type the UI is
// about to place.
func (g *Game) SetPlacementMode(t BuildingType) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t != "" {
		if _, ok := Definitions[t]; !ok {
			return false
		}
	}
	g.placementMode = t
	return true
}

// BuildingAt returns a copy of the building occupying (col, row), if any.
func (g *Game) BuildingAt(col, row int) *Building {
	g.mu.Lock()
	defer g.mu.Unlock()

	if b := g.buildingAtLocked(col, row); b != nil {
		cp := *b
		return &cp
	}
	return nil
}

// BuildingCount returns the number of standing buildings of the given type.
func (g *Game) BuildingCount(t BuildingType) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.countBuildingsLocked(t)
}

func (g *Game) buildingAtLocked(col, row int) *Building {
	for _, b := range g.buildings {
		if b.Col == col && b.Row == row {
			return b
		}
	}
	return nil
}

func (g *Game) countBuildingsLocked(t BuildingType) int {
	n := 0
	for _, b := range g.buildings {
		if b.Type == t {
			n++
		}
	}
	return n
}

// recalculateLocked recomputes aggregate production and max population from
// the standing buildings. Called after every add/remove.
func (g *Game) recalculateLocked() {
	var production Resources
	maxPop := BaseMaxPopulation

	for _, b := range g.buildings {
		def := Definitions[b.Type]
		production.Add(def.Production)
		maxPop += def.PopulationBonus
	}

	// The era modifier survives recomputation.
	g.production = production.Scale(g.prodModifier)
	g.population.Max = maxPop
	if g.population.Current > g.population.Max {
		g.population.Current = g.population.Max
	}
	g.population.ConsumptionPerTick = float64(g.population.Current) * ConsumptionRate
}

func tileAllowed(def BuildingDefinition, t world.TileType) bool {
	for _, vt := range def.ValidTiles {
		if vt == t {
			return true
		}
	}
	return false
}
