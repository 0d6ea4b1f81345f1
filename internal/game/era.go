package game

// Era is one of the three ordered progress stages.
type Era uint8

const (
	EraStone Era = iota
	EraBronze
	EraIron
)

// EraName returns the wire name of an era.
func EraName(e Era) string {
	switch e {
	case EraStone:
		return "stone"
	case EraBronze:
		return "bronze"
	case EraIron:
		return "iron"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (e Era) String() string { return EraName(e) }

// MarshalJSON encodes an era as its wire name.
func (e Era) MarshalJSON() ([]byte, error) {
	return []byte(`"` + EraName(e) + `"`), nil
}

// Next returns the following era, or ok=false past Iron.
func (e Era) Next() (Era, bool) {
	switch e {
	case EraStone:
		return EraBronze, true
	case EraBronze:
		return EraIron, true
	default:
		return e, false
	}
}

// EraRequirements gate advancement into an era.
type EraRequirements struct {
	Resources  Resources      `json:"resources"`
	Population int            `json:"population"`
	Buildings  []BuildingType `json:"buildings"` // at least one instance of each
}

// eraSpec bundles the advancement gate with the production modifier applied
// once on transition.
type eraSpec struct {
	Requirements       EraRequirements
	ProductionModifier float64
}

var eraSpecs = map[Era]eraSpec{
	EraBronze: {
		Requirements: EraRequirements{
			Resources:  Resources{Food: 100, Wood: 80, Stone: 60},
			Population: 10,
			Buildings:  []BuildingType{BuildingFarm, BuildingSawmill, BuildingMine},
		},
		ProductionModifier: 1.25,
	},
	EraIron: {
		Requirements: EraRequirements{
			Resources:  Resources{Food: 200, Wood: 150, Stone: 120, Gold: 50},
			Population: 20,
			Buildings:  []BuildingType{BuildingGoldMine, BuildingBarracks},
		},
		ProductionModifier: 1.5,
	},
}

// NextEraRequirements returns the gate for advancing out of era e,
// or ok=false when e is terminal.
func NextEraRequirements(e Era) (EraRequirements, bool) {
	next, ok := e.Next()
	if !ok {
		return EraRequirements{}, false
	}
	return eraSpecs[next].Requirements, true
}

// CanAdvanceEra reports whether every requirement for the next era is met.
func (g *Game) CanAdvanceEra() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canAdvanceEraLocked()
}

func (g *Game) canAdvanceEraLocked() bool {
	next, ok := g.era.Next()
	if !ok {
		return false
	}
	req := eraSpecs[next].Requirements

	if !g.resources.CanAfford(req.Resources) {
		return false
	}
	if g.population.Current < req.Population {
		return false
	}
	for _, bt := range req.Buildings {
		if g.countBuildingsLocked(bt) < 1 {
			return false
		}
	}
	return true
}

// AdvanceEra moves the civilization one era forward, deducting the exact
// required resources and scaling production by the new era's modifier.
// Returns false when the requirements are not met or the era is terminal.
func (g *Game) AdvanceEra() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.canAdvanceEraLocked() {
		return false
	}
	next, _ := g.era.Next()
	spec := eraSpecs[next]

	// canAdvanceEraLocked guarantees affordability; this is a plain deduction.
	g.resources.Subtract(spec.Requirements.Resources)
	g.prodModifier *= spec.ProductionModifier
	g.production = g.production.Scale(spec.ProductionModifier)
	g.era = next

	g.addChronicleEntryLocked(ChronicleEra,
		"Dawn of the "+eraTitle(next),
		"The civilization advanced into the "+eraTitle(next)+", unlocking new technologies.",
		"⚡")

	return true
}

func eraTitle(e Era) string {
	switch e {
	case EraStone:
		return "Stone Age"
	case EraBronze:
		return "Bronze Age"
	case EraIron:
		return "Iron Age"
	default:
		return "Unknown Age"
	}
}
