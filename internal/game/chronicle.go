package game

import (
	"log/slog"

	"github.com/google/uuid"
)

// ChronicleType categorizes a milestone entry.
type ChronicleType string

const (
	ChronicleBuilding ChronicleType = "building"
	ChronicleEra      ChronicleType = "era"
	ChronicleCombat   ChronicleType = "combat"
	ChronicleGame     ChronicleType = "game"
)

// ChronicleEntry is one milestone in the civilization's history.
type ChronicleEntry struct {
	ID          string        `json:"id"`
	Tick        uint64        `json:"tick"`
	Era         Era           `json:"era"`
	Type        ChronicleType `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
}

// Statistics are aggregate run counters, frozen at game over.
type Statistics struct {
	Duration          uint64 `json:"duration"`       // ticks
	RealTimePlayed    int64  `json:"realTimePlayed"` // seconds
	FinalEra          Era    `json:"finalEra"`
	MaxPopulation     int    `json:"maxPopulation"`
	TotalBuildings    int    `json:"totalBuildings"`
	TotalBattles      int    `json:"totalBattles"`
	BattlesWon        int    `json:"battlesWon"`
	EventsEncountered int    `json:"eventsEncountered"`
}

func newID() string { return uuid.NewString() }

// addChronicleEntryLocked appends a milestone, dropping the oldest entry
// past the cap, and mirrors it to the recorder when one is configured.
func (g *Game) addChronicleEntryLocked(t ChronicleType, title, description, icon string) {
	entry := ChronicleEntry{
		ID:          newID(),
		Tick:        g.tick,
		Era:         g.era,
		Type:        t,
		Title:       title,
		Description: description,
		Icon:        icon,
	}

	g.chronicle = append(g.chronicle, entry)
	if len(g.chronicle) > ChronicleCap {
		g.chronicle = g.chronicle[1:]
	}

	if g.recorder != nil {
		if err := g.recorder.RecordEntry(entry); err != nil {
			slog.Warn("failed to record chronicle entry", "error", err)
		}
	}
}
