package game

import (
	"context"
	"log/slog"
	"math"
)

// EventType classifies a narrative event.
type EventType string

const (
	EventEconomic  EventType = "economic"
	EventSocial    EventType = "social"
	EventNatural   EventType = "natural"
	EventMilitary  EventType = "military"
	EventPolitical EventType = "political"
)

// EventEffect is one state change an event choice applies.
type EventEffect struct {
	Kind         string  `json:"type"`   // "resource", "population" ("military"/"production" reserved)
	Target       string  `json:"target"` // resource name, or "current" for population
	Value        float64 `json:"value"`
	IsPercentage bool    `json:"isPercentage,omitempty"`
}

// EventChoice is one option the player can pick for a pending event.
type EventChoice struct {
	ID           string        `json:"id"`
	Text         string        `json:"text"`
	Effects      []EventEffect `json:"effects"`
	Requirements *Resources    `json:"requirements,omitempty"`
}

// GameEvent is a transient narrative event awaiting a player choice.
type GameEvent struct {
	ID          string        `json:"id"`
	Type        EventType     `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon,omitempty"`
	TriggeredAt uint64        `json:"triggeredAt"`
	Era         Era           `json:"era"`
	Choices     []EventChoice `json:"choices"`
}

// ResolvedEvent is a consumed event, kept in history.
type ResolvedEvent struct {
	Event          GameEvent     `json:"event"`
	ChoiceID       string        `json:"choiceId"`
	ResolvedAt     uint64        `json:"resolvedAt"`
	AppliedEffects []EventEffect `json:"appliedEffects"`
}

// EventContext is the state snapshot sent to the narrative collaborator.
type EventContext struct {
	Era          Era
	Tick         uint64
	Population   int
	Resources    Resources
	RecentEvents []string
}

// EventGenerator produces narrative events from a game-state snapshot.
// A nil event with a nil error means "no event this cycle".
type EventGenerator interface {
	Generate(ctx context.Context, ec EventContext) (*GameEvent, error)
}

// checkForEventLocked rolls the per-tick event trigger policy and, on
// success, kicks off an asynchronous generation request. The Generating
// lock prevents overlapping requests; ticks keep running meanwhile.
func (g *Game) checkForEventLocked() {
	if g.generator == nil || g.generating {
		return
	}

	since := g.tick - g.lastEventTick
	if since < MinTicksBetweenEvents {
		return
	}
	freq := eventFrequency[g.era]
	if since < freq.MinInterval {
		return
	}
	if g.rng.Float64() > freq.ChancePerTick {
		return
	}

	g.generating = true
	ec := EventContext{
		Era:          g.era,
		Tick:         g.tick,
		Population:   g.population.Current,
		Resources:    g.resources,
		RecentEvents: g.recentEventTitlesLocked(),
	}
	go g.generateEvent(ec)
}

func (g *Game) recentEventTitlesLocked() []string {
	n := len(g.eventHistory)
	start := n - RecentEventTitles
	if start < 0 {
		start = 0
	}
	titles := make([]string, 0, n-start)
	for _, re := range g.eventHistory[start:] {
		titles = append(titles, re.Event.Title)
	}
	return titles
}

// generateEvent runs outside the lock: it performs the (possibly slow)
// narrative request and re-acquires the lock to apply the result.
func (g *Game) generateEvent(ec EventContext) {
	ctx, cancel := context.WithTimeout(context.Background(), g.genTimeout)
	defer cancel()

	ev, err := g.generator.Generate(ctx, ec)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.generating = false

	if err != nil {
		slog.Debug("event generation failed", "error", err)
		return
	}
	if ev == nil {
		return
	}
	// A late response after the game ended, or after another event somehow
	// became pending, is discarded.
	if g.gameOver != GameOverNone || g.pendingEvent != nil {
		return
	}
	g.triggerEventLocked(ev)
}

// triggerEventLocked stores the pending event and pauses gameplay.
func (g *Game) triggerEventLocked(ev *GameEvent) {
	ev.TriggeredAt = g.tick
	ev.Era = g.era
	g.pendingEvent = ev
	g.paused = true
	g.lastEventTick = g.tick

	slog.Info("event triggered",
		"tick", g.tick,
		"type", ev.Type,
		"title", ev.Title,
	)
}

// TriggerEvent injects an event directly, bypassing the trigger policy.
// Fails when one is already pending or the game is over.
func (g *Game) TriggerEvent(ev GameEvent) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gameOver != GameOverNone || g.pendingEvent != nil {
		return false
	}
	g.triggerEventLocked(&ev)
	return true
}

// ResolveEvent applies the chosen choice's effects, records the event into
// history and unpauses the game. Returns false when nothing is pending, the
// choice id is unknown, or the choice's resource requirements are unmet.
func (g *Game) ResolveEvent(choiceID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	ev := g.pendingEvent
	if ev == nil {
		return false
	}

	var choice *EventChoice
	for i := range ev.Choices {
		if ev.Choices[i].ID == choiceID {
			choice = &ev.Choices[i]
			break
		}
	}
	if choice == nil {
		return false
	}
	if choice.Requirements != nil && !g.resources.CanAfford(*choice.Requirements) {
		return false
	}

	for _, effect := range choice.Effects {
		g.applyEffectLocked(effect)
	}

	// Population clamps: never below 1, never above max.
	if g.population.Current < 1 {
		g.population.Current = 1
	}
	if g.population.Current > g.population.Max {
		g.population.Current = g.population.Max
	}
	g.population.ConsumptionPerTick = float64(g.population.Current) * ConsumptionRate
	if g.population.Current > g.statistics.MaxPopulation {
		g.statistics.MaxPopulation = g.population.Current
	}

	resolved := ResolvedEvent{
		Event:          *ev,
		ChoiceID:       choiceID,
		ResolvedAt:     g.tick,
		AppliedEffects: choice.Effects,
	}
	g.eventHistory = append(g.eventHistory, resolved)
	g.statistics.EventsEncountered = len(g.eventHistory)

	g.pendingEvent = nil
	g.paused = false

	if g.recorder != nil {
		if err := g.recorder.RecordResolvedEvent(resolved); err != nil {
			slog.Warn("failed to record resolved event", "error", err)
		}
	}

	return true
}

func (g *Game) applyEffectLocked(effect EventEffect) {
	switch effect.Kind {
	case "resource":
		g.applyResourceEffectLocked(effect)
	case "population":
		if effect.Target != "current" {
			return
		}
		if effect.IsPercentage {
			g.population.Current = int(math.Floor(float64(g.population.Current) * (1 + effect.Value/100)))
		} else {
			g.population.Current += int(effect.Value)
		}
	default:
		// "military" and "production" effects are reserved; ignored.
	}
}

func (g *Game) applyResourceEffectLocked(effect EventEffect) {
	var counter *float64
	switch effect.Target {
	case "food":
		counter = &g.resources.Food
	case "wood":
		counter = &g.resources.Wood
	case "stone":
		counter = &g.resources.Stone
	case "gold":
		counter = &g.resources.Gold
	default:
		return
	}

	if effect.IsPercentage {
		*counter = math.Floor(*counter * (1 + effect.Value/100))
		return
	}
	*counter += effect.Value
	if *counter < 0 {
		*counter = 0
	}
}
