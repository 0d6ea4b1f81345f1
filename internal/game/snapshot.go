package game

import "github.com/talgya/stonefall/internal/world"

// Snapshot is a consistent read-only copy of the externally visible state.
// Readers must treat it as stale the moment the next tick or command runs.
type Snapshot struct {
	Tick             uint64         `json:"tick"`
	Era              Era            `json:"era"`
	IsPaused         bool           `json:"isPaused"`
	GameSpeed        int            `json:"gameSpeed"`
	GameOver         GameOverReason `json:"gameOver"`
	Resources        Resources      `json:"resources"`
	Production       Resources      `json:"production"`
	Population       Population     `json:"population"`
	Buildings        []Building     `json:"buildings"`
	PlacementMode    BuildingType   `json:"placementMode"`
	Rival            RivalState     `json:"rival"`
	Military         MilitaryStatus `json:"military"`
	Combat           CombatState    `json:"combat"`
	LastRivalAttack  *RivalAttack   `json:"lastRivalAttack,omitempty"`
	PendingEvent     *GameEvent     `json:"pendingEvent,omitempty"`
	CivilizationName string         `json:"civilizationName"`
	Statistics       Statistics     `json:"statistics"`
}

// Snapshot copies the current state under the lock.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	buildings := make([]Building, len(g.buildings))
	for i, b := range g.buildings {
		buildings[i] = *b
	}

	var lastAttack *RivalAttack
	if g.lastRivalAttack != nil {
		cp := *g.lastRivalAttack
		lastAttack = &cp
	}

	var pending *GameEvent
	if g.pendingEvent != nil {
		cp := *g.pendingEvent
		pending = &cp
	}

	return Snapshot{
		Tick:             g.tick,
		Era:              g.era,
		IsPaused:         g.paused,
		GameSpeed:        g.speed,
		GameOver:         g.gameOver,
		Resources:        g.resources,
		Production:       g.production,
		Population:       g.population,
		Buildings:        buildings,
		PlacementMode:    g.placementMode,
		Rival:            g.rival,
		Military:         g.calculateMilitaryLocked(),
		Combat:           g.combat,
		LastRivalAttack:  lastAttack,
		PendingEvent:     pending,
		CivilizationName: g.civilizationName,
		Statistics:       g.statistics,
	}
}

// Tick returns the current tick counter.
func (g *Game) Tick() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tick
}

// Era returns the current era.
func (g *Game) Era() Era {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.era
}

// IsPaused reports whether the simulation is paused.
func (g *Game) IsPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// Speed returns the current tick speed multiplier.
func (g *Game) Speed() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speed
}

// GameOver returns the terminal reason, or empty while playing.
func (g *Game) GameOver() GameOverReason {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gameOver
}

// Resources returns the current stockpile.
func (g *Game) Resources() Resources {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resources
}

// Production returns the per-tick production rates.
func (g *Game) Production() Resources {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.production
}

// Population returns the current population state.
func (g *Game) Population() Population {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.population
}

// Buildings returns a copy of the standing building collection.
func (g *Game) Buildings() []Building {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Building, len(g.buildings))
	for i, b := range g.buildings {
		out[i] = *b
	}
	return out
}

// PlacementMode returns the armed building type, or "" when none.
func (g *Game) PlacementMode() BuildingType {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.placementMode
}

// Rival returns the rival civilization state.
func (g *Game) Rival() RivalState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rival
}

// Combat returns the cooldown/defense state.
func (g *Game) Combat() CombatState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.combat
}

// PendingEvent returns a copy of the event awaiting a choice, or nil.
func (g *Game) PendingEvent() *GameEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pendingEvent == nil {
		return nil
	}
	cp := *g.pendingEvent
	return &cp
}

// EventHistory returns a copy of the resolved-event history.
func (g *Game) EventHistory() []ResolvedEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ResolvedEvent, len(g.eventHistory))
	copy(out, g.eventHistory)
	return out
}

// Chronicle returns a copy of the milestone log.
func (g *Game) Chronicle() []ChronicleEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ChronicleEntry, len(g.chronicle))
	copy(out, g.chronicle)
	return out
}

// Statistics returns the aggregate run counters.
func (g *Game) Statistics() Statistics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statistics
}

// CivilizationName returns the player civilization's name.
func (g *Game) CivilizationName() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.civilizationName
}

// Map returns the tile grid. Tiles are immutable after generation, so the
// pointer is safe to share with readers.
func (g *Game) Map() *world.Map {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.worldMap
}

// DrainBuildingChanges returns the building mutations since the last drain
// and clears the changelog. Renderers use this to diff sprites by id.
func (g *Game) DrainBuildingChanges() []BuildingChange {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.changes
	g.changes = nil
	return out
}
