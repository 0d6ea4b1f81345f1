// Package game implements the deterministic civilization simulation core:
// resources, population, buildings, era progression, rival combat, narrative
// events and the tick loop that drives them.
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/talgya/stonefall/internal/world"
)

// GameOverReason is the terminal state of a run. Empty means still playing.
type GameOverReason string

const (
	GameOverNone       GameOverReason = ""
	GameOverStarvation GameOverReason = "starvation"
	GameOverDefeat     GameOverReason = "defeat"
	GameOverVictory    GameOverReason = "victory"
)

// Population is the head count and its derived consumption.
type Population struct {
	Current            int     `json:"current"`
	Max                int     `json:"max"`
	ConsumptionPerTick float64 `json:"consumptionPerTick"`
}

// Recorder mirrors chronicle entries and resolved events to durable storage.
// All methods must tolerate being called from the simulation goroutine;
// errors are logged, never fatal.
type Recorder interface {
	RecordEntry(e ChronicleEntry) error
	RecordResolvedEvent(ev ResolvedEvent) error
}

// Options configure a new Game.
type Options struct {
	// MapGen produces the tile grid. Called at creation and on every reset.
	MapGen func() *world.Map

	// Rand is the random source for combat rolls and event triggering.
	// Nil means time-seeded.
	Rand *rand.Rand

	// Generator supplies narrative events. Nil disables events entirely.
	Generator EventGenerator

	// Recorder persists milestones. Nil disables recording.
	Recorder Recorder

	// GenerateTimeout bounds a single narrative request. Zero means 15s.
	GenerateTimeout time.Duration
}

// Game owns the complete authoritative state of one running game. All
// mutation goes through its command surface; reads return snapshots.
type Game struct {
	mu  sync.Mutex
	rng *rand.Rand

	mapGen     func() *world.Map
	generator  EventGenerator
	recorder   Recorder
	genTimeout time.Duration

	tick     uint64
	era      Era
	paused   bool
	speed    int
	gameOver GameOverReason

	worldMap *world.Map

	resources    Resources
	production   Resources
	prodModifier float64
	population   Population

	buildings     []*Building
	placementMode BuildingType
	changes       []BuildingChange

	rival           RivalState
	combat          CombatState
	lastRivalAttack *RivalAttack

	pendingEvent  *GameEvent
	eventHistory  []ResolvedEvent
	lastEventTick uint64
	generating    bool

	civilizationName string
	chronicle        []ChronicleEntry
	statistics       Statistics
	startedAt        time.Time
}

// New creates a game in its initial (paused) state.
func New(opts Options) *Game {
	if opts.MapGen == nil {
		cfg := world.DefaultGenConfig()
		opts.MapGen = func() *world.Map { return world.Generate(cfg) }
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	timeout := opts.GenerateTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	g := &Game{
		rng:        rng,
		mapGen:     opts.MapGen,
		generator:  opts.Generator,
		recorder:   opts.Recorder,
		genTimeout: timeout,
	}
	g.resetLocked()
	return g
}

// ResetGame restores the initial state and regenerates the map.
func (g *Game) ResetGame() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

func (g *Game) resetLocked() {
	g.tick = 0
	g.era = EraStone
	g.paused = true
	g.speed = 1
	g.gameOver = GameOverNone

	g.worldMap = g.mapGen()

	g.resources = InitialResources
	g.production = Resources{}
	g.prodModifier = 1
	g.population = Population{
		Current:            InitialPopulation,
		Max:                BaseMaxPopulation,
		ConsumptionPerTick: InitialPopulation * ConsumptionRate,
	}

	g.buildings = nil
	g.placementMode = ""
	g.changes = nil

	g.rival = newRival(g.rng)
	g.combat = CombatState{}
	g.lastRivalAttack = nil

	g.pendingEvent = nil
	g.eventHistory = nil
	g.lastEventTick = 0
	g.generating = false

	g.civilizationName = RivalNames[g.rng.Intn(len(RivalNames))]
	g.chronicle = nil
	g.startedAt = time.Now()
	g.statistics = Statistics{
		FinalEra:       EraStone,
		MaxPopulation:  InitialPopulation,
		TotalBuildings: 0,
	}

	g.placeInitialTownCenterLocked()
}

// placeInitialTownCenterLocked seeds the map with the free Town Center on
// the valid tile nearest the grid center.
func (g *Game) placeInitialTownCenterLocked() {
	def := Definitions[BuildingTownCenter]
	cx := float64(g.worldMap.Width-1) / 2
	cy := float64(g.worldMap.Height-1) / 2

	var best *world.Tile
	bestDist := -1.0
	for row := 0; row < g.worldMap.Height; row++ {
		for col := 0; col < g.worldMap.Width; col++ {
			tile := g.worldMap.At(col, row)
			if !tileAllowed(def, tile.Type) {
				continue
			}
			dx := float64(col) - cx
			dy := float64(row) - cy
			dist := dx*dx + dy*dy
			if best == nil || dist < bestDist {
				best = tile
				bestDist = dist
			}
		}
	}
	if best == nil {
		// Degenerate map with no plains or forest; start without one.
		return
	}

	if g.placeTownCenterLocked(best.Col, best.Row) {
		g.statistics.TotalBuildings = 1
	}
}

func (g *Game) placeTownCenterLocked(col, row int) bool {
	if !g.canPlaceBuildingLocked(BuildingTownCenter, col, row) {
		return false
	}
	def := Definitions[BuildingTownCenter]
	b := &Building{
		ID:    newID(),
		Type:  BuildingTownCenter,
		Col:   col,
		Row:   row,
		HP:    def.HP,
		MaxHP: def.HP,
	}
	g.buildings = append(g.buildings, b)
	g.changes = append(g.changes, BuildingChange{Op: "added", Building: *b})
	g.recalculateLocked()
	return true
}

// TogglePause flips the pause flag. Returns the new paused state.
func (g *Game) TogglePause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = !g.paused
	return g.paused
}

// SetPaused sets the pause flag directly.
func (g *Game) SetPaused(paused bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = paused
}

// SetGameSpeed sets the tick speed multiplier. Only 1, 2 and 4 are valid.
func (g *Game) SetGameSpeed(speed int) bool {
	if speed != 1 && speed != 2 && speed != 4 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.speed = speed
	return true
}

// setGameOverLocked stores the terminal reason, pauses the game and
// freezes the run statistics.
func (g *Game) setGameOverLocked(reason GameOverReason) {
	if g.gameOver != GameOverNone {
		return
	}
	g.gameOver = reason
	g.paused = true

	g.statistics.Duration = g.tick
	g.statistics.RealTimePlayed = int64(time.Since(g.startedAt).Seconds())
	g.statistics.FinalEra = g.era
	if g.population.Current > g.statistics.MaxPopulation {
		g.statistics.MaxPopulation = g.population.Current
	}
	g.statistics.TotalBuildings = len(g.buildings)
	g.statistics.EventsEncountered = len(g.eventHistory)

	switch reason {
	case GameOverStarvation:
		g.addChronicleEntryLocked(ChronicleGame, "Starvation",
			"The granaries ran empty and the civilization collapsed.", "💀")
	case GameOverDefeat:
		g.addChronicleEntryLocked(ChronicleGame, "Defeat",
			"The last defenders fell to "+g.rival.Name+".", "🏳️")
	case GameOverVictory:
		g.addChronicleEntryLocked(ChronicleGame, "Victory",
			g.rival.Name+" was conquered. The land is yours.", "🏆")
	}
}
