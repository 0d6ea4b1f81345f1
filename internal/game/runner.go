package game

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Runner drives AdvanceTick at its base interval divided by the game speed.
// Speed changes take effect on the next scheduling, not retroactively.
type Runner struct {
	game     *Game
	interval time.Duration
	running  atomic.Bool
}

// NewRunner creates a tick driver for the given game. A non-positive
// interval falls back to BaseTickInterval.
func NewRunner(g *Game, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = BaseTickInterval
	}
	return &Runner{
		game:     g,
		interval: interval,
	}
}

// Run loops until Stop is called. Blocks the calling goroutine.
func (r *Runner) Run() {
	r.running.Store(true)
	slog.Info("tick driver started", "tick", r.game.Tick(), "speed", r.game.Speed())

	for r.running.Load() {
		if r.game.IsPaused() {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		r.game.AdvanceTick()

		target := r.interval / time.Duration(r.game.Speed())
		if elapsed := time.Since(start); elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("tick driver stopped", "tick", r.game.Tick())
}

// Stop halts the loop after the current lap.
func (r *Runner) Stop() {
	r.running.Store(false)
}
