package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/game"
	"github.com/zeusync/strike/internal/game/ship"
	"github.com/zeusync/strike/internal/injector"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (defaults when empty)")
		seconds    = flag.Float64("seconds", 30, "simulated seconds to run")
		realtime   = flag.Bool("realtime", false, "pace frames at the configured rate")
		switchSecs = flag.Float64("switch-every", 5, "autopilot weapon slot rotation period in seconds")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, cleanup, err := injector.InitializeGame(injector.ConfigPath(*configPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting game:", err)
		os.Exit(1)
	}
	defer cleanup()

	logger := log.Provide().Named("strike")
	dt := g.FrameDelta()
	frames := int(*seconds / dt)

	var tick <-chan time.Time
	if *realtime {
		ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}

	err = g.Run(ctx, frames, autopilot(g, *switchSecs), tick, func(h game.HUD) {
		logger.Info("hud", h.Fields()...)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("run finished with errors", log.Error(err))
	}
	logger.Info("final", g.HUD().Fields()...)
}

// autopilot holds fire, weaves up and down, and rotates through the ship's
// loadout slots every period seconds.
func autopilot(g *game.Game, period float64) game.Pilot {
	slots := 0
	if s, ok := g.World.Ships.Get(g.World.Player); ok {
		slots = len(s.Loadout)
	}
	return func(h game.HUD) ship.Intent {
		intent := ship.Intent{Fire: true}
		phase := int(h.Time) % 4
		intent.Up = phase == 0
		intent.Down = phase == 2
		if slots > 1 && period > 0 {
			intent.SwitchSlot = int(h.Time/period)%slots + 1
		}
		return intent
	}
}
