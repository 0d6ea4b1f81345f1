package game

import (
	"fmt"
	"testing"

	"github.com/talgya/stonefall/internal/world"
)

type memRecorder struct {
	entries  []ChronicleEntry
	resolved []ResolvedEvent
}

func (m *memRecorder) RecordEntry(e ChronicleEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRecorder) RecordResolvedEvent(ev ResolvedEvent) error {
	m.resolved = append(m.resolved, ev)
	return nil
}

func TestChronicleCapDropsOldest(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	for i := 0; i < ChronicleCap+10; i++ {
		g.addChronicleEntryLocked(ChronicleGame, fmt.Sprintf("entry %d", i), "", "")
	}

	entries := g.Chronicle()
	if len(entries) != ChronicleCap {
		t.Fatalf("chronicle length = %d, want %d", len(entries), ChronicleCap)
	}
	if entries[len(entries)-1].Title != fmt.Sprintf("entry %d", ChronicleCap+9) {
		t.Errorf("newest entry = %q", entries[len(entries)-1].Title)
	}
	if entries[0].Title == "entry 0" {
		t.Error("oldest entry was not dropped")
	}
}

func TestRecorderMirrorsEntries(t *testing.T) {
	rec := &memRecorder{}
	g := New(Options{
		MapGen:   flatMapGen(world.TilePlains),
		Recorder: rec,
	})

	g.PlaceBuilding(BuildingFarm, 0, 0) // "First Farm" milestone
	g.TriggerEvent(testEvent())
	g.ResolveEvent("take")

	if len(rec.entries) == 0 {
		t.Error("no chronicle entries reached the recorder")
	}
	if len(rec.resolved) != 1 {
		t.Fatalf("recorded resolved events = %d, want 1", len(rec.resolved))
	}
	if rec.resolved[0].ChoiceID != "take" {
		t.Errorf("recorded choice = %q", rec.resolved[0].ChoiceID)
	}
}

func TestGameOverWritesChronicle(t *testing.T) {
	g := newTestGame(flatMapGen(world.TileWater), 1)
	g.SetPaused(false)
	for i := 0; i < 5000 && g.GameOver() == GameOverNone; i++ {
		g.AdvanceTick()
	}

	found := false
	for _, e := range g.Chronicle() {
		if e.Type == ChronicleGame && e.Title == "Starvation" {
			found = true
		}
	}
	if !found {
		t.Error("starvation game over produced no chronicle entry")
	}
}
