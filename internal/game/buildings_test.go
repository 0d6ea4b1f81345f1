package game

import (
	"testing"

	"github.com/talgya/stonefall/internal/world"
)

func TestPlaceFarm(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	if ok, _ := g.PlaceBuilding(BuildingFarm, 0, 0); !ok {
		t.Fatal("farm placement on plains should succeed")
	}

	r := g.Resources()
	want := Resources{Food: 150, Wood: 45, Stone: 25, Gold: 0}
	if r != want {
		t.Errorf("resources = %+v, want %+v", r, want)
	}

	// Town Center 1.5 + farm 3.
	if p := g.Production(); p.Food != 4.5 {
		t.Errorf("food production = %v, want 4.5", p.Food)
	}

	b := g.BuildingAt(0, 0)
	if b == nil || b.Type != BuildingFarm {
		t.Fatalf("no farm at (0,0): %+v", b)
	}
	if b.HP != 50 || b.MaxHP != 50 {
		t.Errorf("farm hp = %d/%d, want 50/50", b.HP, b.MaxHP)
	}
}

func TestPlaceRejectsWrongTile(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)
	before := g.Resources()

	// Sawmills need forest.
	if ok, _ := g.PlaceBuilding(BuildingSawmill, 0, 0); ok {
		t.Fatal("sawmill placement on plains should fail")
	}
	if g.Resources() != before {
		t.Error("rejected placement mutated resources")
	}
	if g.BuildingAt(0, 0) != nil {
		t.Error("rejected placement created a building")
	}
}

func TestPlacementRejectionReasons(t *testing.T) {
	g := newTestGame(mixedMapGen, 1)

	cases := []struct {
		name string
		typ  BuildingType
		col  int
		row  int
		want string
	}{
		{"unknown type", BuildingType("ziggurat"), 5, 5, "unknown building type"},
		{"out of bounds", BuildingHouse, -1, 0, "out of bounds"},
		{"wrong terrain", BuildingFarm, 0, 0, "cannot build on forest"},
		{"occupied", BuildingHouse, 9, 9, "tile occupied"},
		{"limit", BuildingTownCenter, 5, 5, "Town Center limit reached"},
		{"era gate", BuildingGoldMine, 2, 0, "requires the bronze age"},
		{"placeable", BuildingFarm, 5, 5, ""},
	}
	for _, tc := range cases {
		if got := g.PlacementBlocker(tc.typ, tc.col, tc.row); got != tc.want {
			t.Errorf("%s: blocker = %q, want %q", tc.name, got, tc.want)
		}
	}

	g.worldMap.Tiles[4][4].Type = world.TileWater
	if got := g.PlacementBlocker(BuildingDefenseTower, 4, 4); got != "cannot build on water" {
		t.Errorf("water blocker = %q", got)
	}

	g.resources = Resources{Food: 150, Wood: 10}
	if got := g.PlacementBlocker(BuildingHouse, 5, 5); got != "not enough wood" {
		t.Errorf("cost blocker = %q", got)
	}

	ok, reason := g.PlaceBuilding(BuildingHouse, 5, 5)
	if ok || reason != "not enough wood" {
		t.Errorf("PlaceBuilding = %v, %q, want rejection with cost reason", ok, reason)
	}
}

func TestPlaceRejectsWater(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)
	g.worldMap.Tiles[0][0].Type = world.TileWater

	if g.CanPlaceBuilding(BuildingHouse, 0, 0) {
		t.Error("water tile should never be buildable")
	}
}

func TestPlaceRejectsOccupiedTile(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	if ok, _ := g.PlaceBuilding(BuildingHouse, 3, 3); !ok {
		t.Fatal("first house should place")
	}
	if ok, _ := g.PlaceBuilding(BuildingFarm, 3, 3); ok {
		t.Error("occupied tile accepted a second building")
	}
}

func TestPlaceRejectsOutOfBounds(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	if g.CanPlaceBuilding(BuildingHouse, -1, 0) {
		t.Error("negative coordinate accepted")
	}
	if g.CanPlaceBuilding(BuildingHouse, 20, 19) {
		t.Error("coordinate past the grid accepted")
	}
}

func TestPlaceRejectsUnaffordable(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)
	g.resources = Resources{Wood: 24}

	if ok, _ := g.PlaceBuilding(BuildingHouse, 0, 0); ok {
		t.Error("house placed with 24 wood, costs 25")
	}
}

func TestEraGateBlocksBronzeBuilding(t *testing.T) {
	g := newTestGame(mixedMapGen, 1)

	// Gold mine is affordable from the starting stockpile but Bronze-gated.
	if g.CanPlaceBuilding(BuildingGoldMine, 2, 0) {
		t.Fatal("gold mine placeable in the Stone Age")
	}

	g.era = EraBronze
	if !g.CanPlaceBuilding(BuildingGoldMine, 2, 0) {
		t.Fatal("gold mine should be placeable in the Bronze Age")
	}
	if ok, _ := g.PlaceBuilding(BuildingGoldMine, 2, 0); !ok {
		t.Fatal("gold mine placement failed")
	}
	if p := g.Production(); p.Gold != 1 {
		t.Errorf("gold production = %v, want 1", p.Gold)
	}
}

func TestBuildingLimit(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	// The initial Town Center exhausts its limit of 1.
	if n := g.BuildingCount(BuildingTownCenter); n != 1 {
		t.Fatalf("town center count = %d, want 1", n)
	}
	if g.CanPlaceBuilding(BuildingTownCenter, 0, 0) {
		t.Error("second town center accepted")
	}
}

func TestRemoveBuildingRecalculates(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	if ok, _ := g.PlaceBuilding(BuildingHouse, 0, 0); !ok {
		t.Fatal("house placement failed")
	}
	if max := g.Population().Max; max != BaseMaxPopulation+10+5 {
		t.Fatalf("max population = %d, want %d", max, BaseMaxPopulation+15)
	}

	house := g.BuildingAt(0, 0)
	if !g.RemoveBuilding(house.ID) {
		t.Fatal("remove failed")
	}
	if max := g.Population().Max; max != BaseMaxPopulation+10 {
		t.Errorf("max population after removal = %d, want %d", max, BaseMaxPopulation+10)
	}
	if g.RemoveBuilding(house.ID) {
		t.Error("removing a removed building succeeded")
	}
}

func TestPlacementClampsPopulation(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)
	g.PlaceBuilding(BuildingHouse, 0, 0)
	g.population.Current = g.population.Max

	house := g.BuildingAt(0, 0)
	g.RemoveBuilding(house.ID)

	if g.Population().Current > g.Population().Max {
		t.Errorf("population %d exceeds max %d after removal",
			g.Population().Current, g.Population().Max)
	}
}

func TestPlacementModeValidation(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	if !g.SetPlacementMode(BuildingFarm) {
		t.Fatal("valid placement mode rejected")
	}
	if g.PlacementMode() != BuildingFarm {
		t.Errorf("placement mode = %q", g.PlacementMode())
	}
	if g.SetPlacementMode("castle") {
		t.Error("unknown building type accepted as placement mode")
	}
	if !g.SetPlacementMode("") {
		t.Error("clearing placement mode rejected")
	}

	// A successful placement clears the armed mode.
	g.SetPlacementMode(BuildingFarm)
	g.PlaceBuilding(BuildingFarm, 5, 5)
	if g.PlacementMode() != "" {
		t.Errorf("placement mode not cleared: %q", g.PlacementMode())
	}
}

func TestFirstBuildingChronicleEntry(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	g.PlaceBuilding(BuildingFarm, 0, 0)
	g.PlaceBuilding(BuildingFarm, 0, 1)

	count := 0
	for _, e := range g.Chronicle() {
		if e.Type == ChronicleBuilding && e.Title == "First Farm" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("found %d 'First Farm' entries, want 1", count)
	}
}

func TestBuildingChangelog(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	// The initial Town Center is already in the changelog.
	changes := g.DrainBuildingChanges()
	if len(changes) != 1 || changes[0].Op != "added" || changes[0].Building.Type != BuildingTownCenter {
		t.Fatalf("unexpected initial changelog: %+v", changes)
	}

	g.PlaceBuilding(BuildingHouse, 0, 0)
	house := g.BuildingAt(0, 0)
	g.RemoveBuilding(house.ID)

	changes = g.DrainBuildingChanges()
	if len(changes) != 2 {
		t.Fatalf("changelog length = %d, want 2", len(changes))
	}
	if changes[0].Op != "added" || changes[1].Op != "removed" {
		t.Errorf("changelog ops = %q, %q", changes[0].Op, changes[1].Op)
	}
	if got := g.DrainBuildingChanges(); len(got) != 0 {
		t.Errorf("drain did not clear the changelog: %d entries", len(got))
	}
}
