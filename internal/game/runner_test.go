package game

import (
	"testing"
	"time"

	"github.com/talgya/stonefall/internal/world"
)

func TestRunnerTicksAndStops(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)
	g.SetPaused(false)

	r := NewRunner(g, time.Millisecond)
	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for g.Tick() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("runner did not advance ticks")
		}
		time.Sleep(time.Millisecond)
	}

	r.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunnerIdlesWhilePaused(t *testing.T) {
	g := newTestGame(flatMapGen(world.TilePlains), 1)

	r := NewRunner(g, time.Millisecond)
	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if g.Tick() != 0 {
		t.Errorf("paused game ticked to %d", g.Tick())
	}

	r.Stop()
	<-done
}
