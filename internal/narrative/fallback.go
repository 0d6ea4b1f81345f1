package narrative

import (
	"context"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/stonefall/internal/game"
)

// Fallback serves pre-authored events filtered to the current era. Events
// tagged Stone are era-agnostic baseline content; Bronze and Iron entries
// only appear once the player reaches them.
type Fallback struct {
	mu   sync.Mutex
	rng  *rand.Rand
	pool []game.GameEvent
}

// NewFallback creates a fallback pool backed by the given random source.
func NewFallback(rng *rand.Rand) *Fallback {
	return &Fallback{rng: rng, pool: fallbackEvents}
}

// Generate picks a random era-appropriate event from the pool. Never fails.
func (f *Fallback) Generate(_ context.Context, ec game.EventContext) (*game.GameEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var available []game.GameEvent
	for _, ev := range f.pool {
		if ev.Era == game.EraStone || ev.Era == ec.Era {
			available = append(available, ev)
		}
	}
	if len(available) == 0 {
		return nil, nil
	}

	ev := available[f.rng.Intn(len(available))]
	ev.ID = ev.ID + "_" + uuid.NewString()[:8]
	ev.TriggeredAt = ec.Tick
	ev.Era = ec.Era
	return &ev, nil
}

var fallbackEvents = []game.GameEvent{
	{
		ID:          "fallback_abundant_harvest",
		Type:        game.EventEconomic,
		Title:       "Abundant Harvest",
		Description: "The fields produced more than expected this cycle. Your granaries overflow with golden grain.",
		Icon:        "🌾",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:   "celebrate",
				Text: "Celebrate with a festival",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "food", Value: 40},
					{Kind: "population", Target: "current", Value: 1},
				},
			},
			{
				ID:      "store",
				Text:    "Store it for harder times",
				Effects: []game.EventEffect{{Kind: "resource", Target: "food", Value: 60}},
			},
		},
	},
	{
		ID:          "fallback_drought",
		Type:        game.EventEconomic,
		Title:       "Severe Drought",
		Description: "A merciless sun has punished your lands for weeks. Crops wither and water grows scarce.",
		Icon:        "☀️",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:      "ration",
				Text:    "Ration food strictly",
				Effects: []game.EventEffect{{Kind: "resource", Target: "food", Value: -25}},
			},
			{
				ID:   "search_water",
				Text: "Send scouts to find water",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "food", Value: -15},
					{Kind: "resource", Target: "wood", Value: 20},
				},
			},
		},
	},
	{
		ID:          "fallback_resource_discovery",
		Type:        game.EventEconomic,
		Title:       "Resource Discovery",
		Description: "Scouts found a deposit rich in materials near the settlement.",
		Icon:        "💎",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:      "mine_stone",
				Text:    "Quarry the stone",
				Effects: []game.EventEffect{{Kind: "resource", Target: "stone", Value: 30}},
			},
			{
				ID:      "harvest_wood",
				Text:    "Harvest the surrounding timber",
				Effects: []game.EventEffect{{Kind: "resource", Target: "wood", Value: 35}},
			},
		},
	},
	{
		ID:          "fallback_locusts",
		Type:        game.EventEconomic,
		Title:       "Crop Plague",
		Description: "A cloud of locusts descended on the fields, devouring everything in its path.",
		Icon:        "🦗",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:   "burn_fields",
				Text: "Burn the infested fields",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "food", Value: -40},
					{Kind: "resource", Target: "wood", Value: -10},
				},
			},
			{
				ID:      "wait",
				Text:    "Wait for the plague to pass",
				Effects: []game.EventEffect{{Kind: "resource", Target: "food", Value: -60}},
			},
		},
	},
	{
		ID:          "fallback_festival",
		Type:        game.EventSocial,
		Title:       "Harvest Festival",
		Description: "The people wish to celebrate abundance with music and dancing. Morale is high.",
		Icon:        "🎉",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:   "grand_feast",
				Text: "Hold a grand feast",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "food", Value: -30},
					{Kind: "population", Target: "current", Value: 2},
				},
			},
			{
				ID:   "modest_celebration",
				Text: "A modest celebration",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "food", Value: -10},
					{Kind: "population", Target: "current", Value: 1},
				},
			},
		},
	},
	{
		ID:          "fallback_migrants",
		Type:        game.EventSocial,
		Title:       "Migrants Arrive",
		Description: "A band of nomad families asks for shelter in your settlement. They look like skilled workers.",
		Icon:        "🚶",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:   "welcome",
				Text: "Welcome them with open arms",
				Effects: []game.EventEffect{
					{Kind: "population", Target: "current", Value: 3},
					{Kind: "resource", Target: "food", Value: -20},
				},
			},
			{
				ID:      "reject",
				Text:    "Turn them away",
				Effects: []game.EventEffect{{Kind: "resource", Target: "wood", Value: 15}},
			},
		},
	},
	{
		ID:          "fallback_disease",
		Type:        game.EventSocial,
		Title:       "Sickness Spreads",
		Description: "A mysterious fever has begun to afflict the settlers. The healers are worried.",
		Icon:        "🤒",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:   "quarantine",
				Text: "Isolate the sick",
				Effects: []game.EventEffect{
					{Kind: "population", Target: "current", Value: -1},
					{Kind: "resource", Target: "food", Value: -10},
				},
			},
			{
				ID:   "herbal_remedy",
				Text: "Search for medicinal herbs",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "wood", Value: -15},
					{Kind: "resource", Target: "food", Value: -5},
				},
			},
		},
	},
	{
		ID:          "fallback_storm",
		Type:        game.EventNatural,
		Title:       "Violent Storm",
		Description: "Dark clouds gather. Thunder rolls in the distance and the wind begins to howl.",
		Icon:        "⛈️",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:      "reinforce",
				Text:    "Reinforce the structures",
				Effects: []game.EventEffect{{Kind: "resource", Target: "wood", Value: -20}},
			},
			{
				ID:   "shelter",
				Text: "Just take shelter",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "wood", Value: -30},
					{Kind: "resource", Target: "food", Value: -10},
				},
			},
		},
	},
	{
		ID:          "fallback_wildfire",
		Type:        game.EventNatural,
		Title:       "Forest Fire",
		Description: "Smoke rises from the nearby woods. A fire threatens to spread toward the settlement.",
		Icon:        "🔥",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:   "fight_fire",
				Text: "Fight the fire",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "food", Value: -15},
					{Kind: "resource", Target: "wood", Value: -10},
				},
			},
			{
				ID:      "evacuate",
				Text:    "Evacuate and wait",
				Effects: []game.EventEffect{{Kind: "resource", Target: "wood", Value: -40}},
			},
		},
	},
	{
		ID:          "fallback_good_weather",
		Type:        game.EventNatural,
		Title:       "Favorable Weather",
		Description: "The weather is perfect for work. Blue skies and a gentle breeze inspire your people.",
		Icon:        "☀️",
		Era:         game.EraStone,
		Choices: []game.EventChoice{
			{
				ID:      "farm_focus",
				Text:    "Focus on the fields",
				Effects: []game.EventEffect{{Kind: "resource", Target: "food", Value: 25}},
			},
			{
				ID:   "build_focus",
				Text: "Focus on construction",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "wood", Value: 15},
					{Kind: "resource", Target: "stone", Value: 10},
				},
			},
		},
	},
	{
		ID:          "fallback_border_skirmish",
		Type:        game.EventMilitary,
		Title:       "Border Skirmish",
		Description: "Raiders probed the settlement's outskirts during the night. The watch demands a response.",
		Icon:        "⚔️",
		Era:         game.EraBronze,
		Choices: []game.EventChoice{
			{
				ID:   "drive_off",
				Text: "Arm the militia and drive them off",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "food", Value: -20},
					{Kind: "resource", Target: "gold", Value: 10},
				},
			},
			{
				ID:   "pay_tribute",
				Text: "Pay them to leave",
				Effects: []game.EventEffect{
					{Kind: "resource", Target: "gold", Value: -15},
				},
			},
		},
	},
	{
		ID:          "fallback_council",
		Type:        game.EventPolitical,
		Title:       "Council of Elders",
		Description: "The elders demand a say in how the city's wealth is spent. The crowd outside grows restless.",
		Icon:        "🏛️",
		Era:         game.EraIron,
		Choices: []game.EventChoice{
			{
				ID:   "grant_council",
				Text: "Grant them a council seat",
				Effects: []game.EventEffect{
					{Kind: "population", Target: "current", Value: 2},
					{Kind: "resource", Target: "gold", Value: -20},
				},
			},
			{
				ID:   "refuse",
				Text: "Refuse and disperse the crowd",
				Effects: []game.EventEffect{
					{Kind: "population", Target: "current", Value: -2},
				},
			},
		},
	},
}
