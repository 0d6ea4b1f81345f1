package game

// AdvanceTick advances the simulation by exactly one tick: resource
// accounting, population dynamics, the rival's turn, terminal-condition
// checks and finally the event trigger roll. A no-op while paused or after
// game over.
func (g *Game) AdvanceTick() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.paused || g.gameOver != GameOverNone {
		return
	}

	g.tick++

	// Resource accounting. Food may run negative; the other counters only
	// ever gain from production here.
	consumption := float64(g.population.Current) * ConsumptionRate
	g.resources.Food += g.production.Food - consumption
	g.resources.Wood += g.production.Wood
	g.resources.Stone += g.production.Stone
	g.resources.Gold += g.production.Gold

	newFood := g.resources.Food

	// Growth and death are independent parity-gated checks on the new food
	// balance; the food-sign conditions make them mutually exclusive in
	// practice.
	if newFood > 0 && g.tick%GrowthInterval == 0 && g.population.Current < g.population.Max {
		g.population.Current++
		if g.population.Current > g.statistics.MaxPopulation {
			g.statistics.MaxPopulation = g.population.Current
		}
	}
	if newFood < FoodDebtThreshold && g.tick%DeathInterval == 0 && g.population.Current > 1 {
		g.population.Current--
	}
	g.population.ConsumptionPerTick = float64(g.population.Current) * ConsumptionRate

	// Defend buff is time-boxed.
	if g.combat.IsDefending && g.tick >= g.combat.DefenseEndTick {
		g.combat.IsDefending = false
	}

	// Rival acts once the player has left the Stone Age.
	if g.era != EraStone && !g.rival.IsDefeated {
		g.rivalTurnLocked()
	}

	// Terminal conditions. Starvation and defeat derive from disjoint state
	// but only one reason is stored: starvation is checked first.
	switch {
	case g.resources.Food < FoodGameOverThreshold:
		g.setGameOverLocked(GameOverStarvation)
	case g.population.Current <= 0:
		g.setGameOverLocked(GameOverDefeat)
	}

	if g.gameOver == GameOverNone && g.pendingEvent == nil {
		g.checkForEventLocked()
	}
}
