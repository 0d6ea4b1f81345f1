package game

import (
	"fmt"
	"math"
	"math/rand"
)

// RivalState is the autonomous opposing civilization.
type RivalState struct {
	Name       string `json:"name"`
	Era        Era    `json:"era"`
	Strength   int    `json:"strength"`
	Defense    int    `json:"defense"`
	Population int    `json:"population"`
	IsDefeated bool   `json:"isDefeated"`
}

// CombatState governs the shared attack/defend cooldown.
type CombatState struct {
	LastActionTick uint64 `json:"lastActionTick"`
	IsDefending    bool   `json:"isDefending"`
	DefenseEndTick uint64 `json:"defenseEndTick"`
}

// MilitaryStatus is the player's military power, derived live from standing
// barracks and defense towers.
type MilitaryStatus struct {
	Strength int `json:"strength"`
	Defense  int `json:"defense"`
}

// CombatResult describes the outcome of a player attack.
type CombatResult struct {
	Action      string `json:"action"`
	Success     bool   `json:"success"`
	RivalKilled int    `json:"rivalKilled"`
	Victory     bool   `json:"victory"`
	Message     string `json:"message"`
}

// RivalAttack records the most recent rival strike, for UI feedback.
type RivalAttack struct {
	Tick   uint64 `json:"tick"`
	Killed int    `json:"killed"`
}

// Per-era rival military tables.
var (
	rivalStrength = map[Era]int{EraStone: 15, EraBronze: 40, EraIron: 80}
	rivalDefense  = map[Era]int{EraStone: 10, EraBronze: 35, EraIron: 70}
)

func newRival(rng *rand.Rand) RivalState {
	return RivalState{
		Name:       RivalNames[rng.Intn(len(RivalNames))],
		Era:        EraStone,
		Strength:   rivalStrength[EraStone],
		Defense:    rivalDefense[EraStone],
		Population: InitialRivalPop,
	}
}

// CalculateMilitary returns the player's current military status.
func (g *Game) CalculateMilitary() MilitaryStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calculateMilitaryLocked()
}

func (g *Game) calculateMilitaryLocked() MilitaryStatus {
	var m MilitaryStatus
	for _, b := range g.buildings {
		switch b.Type {
		case BuildingBarracks:
			m.Strength += BarracksStrength
		case BuildingDefenseTower:
			m.Defense += TowerDefense
		}
	}
	return m
}

// rollMultiplier returns a uniform multiplier in [0.8, 1.2).
func (g *Game) rollMultiplier() float64 {
	return 0.8 + g.rng.Float64()*0.4
}

// Attack launches a strike against the rival. Returns nil without any
// mutation when the action is on cooldown, unaffordable, the rival is
// already defeated or the game is over.
func (g *Game) Attack() *CombatResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gameOver != GameOverNone || g.rival.IsDefeated {
		return nil
	}
	if g.tick-g.combat.LastActionTick < CombatCooldown {
		return nil
	}
	if !g.resources.CanAfford(AttackCost) {
		return nil
	}

	g.resources.Subtract(AttackCost)
	g.combat.LastActionTick = g.tick

	military := g.calculateMilitaryLocked()
	playerPower := float64(military.Strength) * g.rollMultiplier()
	rivalDef := float64(g.rival.Defense) * g.rollMultiplier()

	// An attack with spent resources always deals at least one point.
	killed := int(math.Floor((playerPower - rivalDef/2) / PlayerAttackDivisor))
	if killed < 1 {
		killed = 1
	}

	g.rival.Population -= killed
	if g.rival.Population < 0 {
		g.rival.Population = 0
	}
	victory := g.rival.Population == 0
	g.rival.IsDefeated = victory

	g.statistics.TotalBattles++
	if victory {
		g.statistics.BattlesWon++
	}

	if killed >= 3 || victory {
		title := "Bloody Battle"
		desc := fmt.Sprintf("A devastating attack killed %d of the enemy population.", killed)
		if victory {
			title = "Victory over " + g.rival.Name
			desc = "Crushed " + g.rival.Name + " completely, claiming final victory."
		}
		g.addChronicleEntryLocked(ChronicleCombat, title, desc, "⚔️")
	}

	message := fmt.Sprintf("You killed %d of the enemy population!", killed)
	if victory {
		message = "Victory! " + g.rival.Name + " has been defeated!"
		g.setGameOverLocked(GameOverVictory)
	}

	return &CombatResult{
		Action:      "attack",
		Success:     true,
		RivalKilled: killed,
		Victory:     victory,
		Message:     message,
	}
}

// Defend raises a time-boxed defense buff sharing the attack cooldown.
// Returns false without mutation when blocked.
func (g *Game) Defend() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gameOver != GameOverNone {
		return false
	}
	if g.tick-g.combat.LastActionTick < CombatCooldown {
		return false
	}
	if !g.resources.CanAfford(DefendCost) {
		return false
	}

	g.resources.Subtract(DefendCost)
	g.combat = CombatState{
		LastActionTick: g.tick,
		IsDefending:    true,
		DefenseEndTick: g.tick + DefendDuration,
	}
	return true
}

// rivalTurnLocked runs the rival's autonomous behavior for the current tick.
// Only called once the player has left the Stone Age and the rival stands.
func (g *Game) rivalTurnLocked() {
	// Population growth.
	if g.tick%RivalGrowthInterval == 0 && g.rival.Population < RivalPopulationCap {
		g.rival.Population++
	}

	// Era progression, updating the military tables.
	if g.tick%RivalEraAdvanceTicks == 0 {
		if next, ok := g.rival.Era.Next(); ok {
			g.rival.Era = next
			g.rival.Strength = rivalStrength[next]
			g.rival.Defense = rivalDefense[next]
		}
	}

	// Attack on a fixed cadence.
	if g.tick%RivalAttackInterval == 0 {
		military := g.calculateMilitaryLocked()
		rivalPower := float64(g.rival.Strength) * g.rollMultiplier()
		playerDef := float64(military.Defense) * g.rollMultiplier()

		damage := int(math.Floor((rivalPower - playerDef) / RivalAttackDivisor))
		if damage < 0 {
			damage = 0
		}
		if g.combat.IsDefending {
			damage /= 2
		}

		if damage > 0 {
			g.population.Current -= damage
			if g.population.Current < 0 {
				g.population.Current = 0
			}
			g.population.ConsumptionPerTick = float64(g.population.Current) * ConsumptionRate
			g.lastRivalAttack = &RivalAttack{Tick: g.tick, Killed: damage}
		}
	}
}
