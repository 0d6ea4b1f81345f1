package narrative

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talgya/stonefall/internal/game"
)

func TestFallbackEraFilter(t *testing.T) {
	f := NewFallback(rand.New(rand.NewSource(1)))

	// Stone Age contexts must never see Bronze or Iron pool entries.
	ec := testContext()
	for i := 0; i < 50; i++ {
		ev, err := f.Generate(context.Background(), ec)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if ev.ID == "" || len(ev.Choices) < 2 {
			t.Fatalf("malformed event: %+v", ev)
		}
		if ev.Era != game.EraStone {
			t.Fatalf("stone context got era %v event", ev.Era)
		}
	}
}

func TestFallbackIncludesEraContent(t *testing.T) {
	f := NewFallback(rand.New(rand.NewSource(1)))
	ec := testContext()
	ec.Era = game.EraIron

	sawIronPoolEvent := false
	for i := 0; i < 200; i++ {
		ev, err := f.Generate(context.Background(), ec)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if ev.Type == game.EventPolitical {
			sawIronPoolEvent = true
		}
	}
	if !sawIronPoolEvent {
		t.Error("iron era context never drew iron pool content")
	}
}

func TestFallbackStampsContext(t *testing.T) {
	f := NewFallback(rand.New(rand.NewSource(1)))
	ec := testContext()
	ec.Tick = 77

	ev, err := f.Generate(context.Background(), ec)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if ev.TriggeredAt != 77 {
		t.Errorf("triggered at %d, want 77", ev.TriggeredAt)
	}
	if ev.Era != ec.Era {
		t.Errorf("era = %v, want %v", ev.Era, ec.Era)
	}

	// IDs get a fresh suffix so history entries never collide.
	ev2, _ := f.Generate(context.Background(), ec)
	if ev.ID == ev2.ID {
		t.Errorf("two draws produced the same id %q", ev.ID)
	}
}

func TestFallbackPoolIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, ev := range fallbackEvents {
		if seen[ev.ID] {
			t.Errorf("duplicate pool id %q", ev.ID)
		}
		seen[ev.ID] = true
		if len(ev.Choices) < 2 {
			t.Errorf("event %q has %d choices, want at least 2", ev.ID, len(ev.Choices))
		}
		if ev.Title == "" || ev.Description == "" {
			t.Errorf("event %q missing title or description", ev.ID)
		}
	}
}

func TestSourceWithoutClientUsesFallback(t *testing.T) {
	fb := NewFallback(rand.New(rand.NewSource(1)))

	s := NewSource(nil, fb)
	ev, err := s.Generate(context.Background(), testContext())
	if err != nil || ev == nil {
		t.Fatalf("fallback-only source failed: %v", err)
	}
}

func TestSourceFallsBackOnServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	fb := NewFallback(rand.New(rand.NewSource(1)))
	s := NewSource(NewClient(srv.URL, time.Second, 0), fb)

	ev, err := s.Generate(context.Background(), testContext())
	if err != nil {
		t.Fatalf("source surfaced a service failure: %v", err)
	}
	if ev == nil {
		t.Fatal("no fallback event after service failure")
	}
	if ev.Era != game.EraStone {
		t.Errorf("fallback era = %v", ev.Era)
	}
}
