// Balance constants. All tuning numbers live here.
package game

import "time"

// Timing.
const (
	// BaseTickInterval is the wall-clock duration of one tick at speed 1.
	BaseTickInterval = time.Second
)

// Population.
const (
	InitialPopulation = 5
	BaseMaxPopulation = 10

	// ConsumptionRate is food consumed per head per tick.
	ConsumptionRate = 0.3

	// GrowthInterval: +1 population every N ticks while food is positive.
	GrowthInterval = 20

	// DeathInterval: -1 population every N ticks while food debt exceeds
	// FoodDebtThreshold.
	DeathInterval = 5

	// FoodDebtThreshold is the food level below which attrition starts.
	FoodDebtThreshold = -20.0

	// FoodGameOverThreshold is the deeper debt at which the civilization
	// starves outright. Must stay below FoodDebtThreshold.
	FoodGameOverThreshold = -50.0
)

// InitialResources is the starting stockpile.
var InitialResources = Resources{Food: 150, Wood: 60, Stone: 30, Gold: 0}

// Combat.
const (
	CombatCooldown = 10 // ticks between any two combat actions
	DefendDuration = 5  // ticks the defend buff lasts

	BarracksStrength = 25 // player strength per barracks
	TowerDefense     = 20 // player defense per defense tower

	RivalAttackDivisor  = 20 // rival damage = max(0, (power-defense)/divisor)
	PlayerAttackDivisor = 10 // player kills = max(1, (power-defense/2)/divisor)

	RivalGrowthInterval  = 30  // rival +1 population cadence
	RivalAttackInterval  = 30  // rival attack cadence
	RivalEraAdvanceTicks = 300 // rival era progression cadence
	RivalPopulationCap   = 50
	InitialRivalPop      = 25
)

// AttackCost is deducted when the player attacks.
var AttackCost = Resources{Food: 15, Gold: 5}

// DefendCost is deducted when the player raises defenses.
var DefendCost = Resources{Food: 10}

// RivalNames is the pool of rival civilization names.
var RivalNames = []string{
	"The Ferring Clans",
	"Serpent Tribe",
	"Thunder People",
	"Shadowfolk",
	"The Gilded Empire",
}

// Events.
const (
	// MinTicksBetweenEvents is the hard floor between narrative events,
	// regardless of era.
	MinTicksBetweenEvents = 15

	// RecentEventTitles is how many resolved event titles are sent to the
	// narrative service for novelty avoidance.
	RecentEventTitles = 3

	// ChronicleCap bounds the in-memory milestone log.
	ChronicleCap = 200
)

// EventFrequency is the per-era trigger policy.
type EventFrequency struct {
	MinInterval   uint64  // minimum ticks since the last event
	ChancePerTick float64 // stochastic roll threshold
}

var eventFrequency = map[Era]EventFrequency{
	EraStone:  {MinInterval: 30, ChancePerTick: 0.025},
	EraBronze: {MinInterval: 20, ChancePerTick: 0.04},
	EraIron:   {MinInterval: 15, ChancePerTick: 0.05},
}
