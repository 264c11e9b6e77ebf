// Package game assembles the world, the systems and the initial population
// into a steppable simulation.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/core/systems"
	"github.com/zeusync/strike/internal/game/combat"
	"github.com/zeusync/strike/internal/game/enemies"
	"github.com/zeusync/strike/internal/game/lifecycle"
	"github.com/zeusync/strike/internal/game/motion"
	"github.com/zeusync/strike/internal/game/projectiles"
	"github.com/zeusync/strike/internal/game/ship"
	"github.com/zeusync/strike/internal/game/weapons"
	"github.com/zeusync/strike/internal/game/world"
)

type Game struct {
	World     *world.World
	Scheduler *systems.Scheduler[*world.World]
	Input     *ship.Input
	Catalog   *weapons.Catalog
	Enemies   *enemies.Spawner

	log      log.Log
	stats    *Stats
	contacts *combat.ContactResolver
	dt       float64
}

// New builds a game from cfg: the ship armed with its first loadout slot,
// the configured enemy populations, and every system in frame order.
func New(cfg *config.Config, logger log.Log) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Nop()
	}

	eventBus := bus.New()
	stats := newStats()
	eventBus.AddObserver(stats)

	w := world.New(world.Options{
		Seed:   cfg.SeedValue(),
		Bus:    eventBus,
		Log:    logger.Named("world"),
		Shapes: cfg.Sim.Collision == config.CollisionContact,
	})

	catalog, err := weapons.NewCatalog(cfg.Weapons, projectiles.Spawners(cfg.Projectiles), weapons.Meshes())
	if err != nil {
		return nil, fmt.Errorf("weapons: %w", err)
	}

	g := &Game{
		World:     w,
		Scheduler: systems.NewScheduler[*world.World](),
		Input:     &ship.Input{},
		Catalog:   catalog,
		Enemies:   enemies.NewSpawner(cfg.Enemies, cfg.Bounds, catalog),
		log:       logger,
		stats:     stats,
		dt:        cfg.FrameDelta(),
	}
	g.Scheduler.OnSystemError(func(name string, err error) {
		g.log.Warn("system failed", log.String("system", name), log.Error(err))
	})

	if err := g.register(cfg); err != nil {
		return nil, err
	}

	ship.Spawn(w, cfg.Ship)
	if len(cfg.Ship.Loadout) > 0 {
		if err := ship.Equip(w, catalog, 1); err != nil {
			return nil, err
		}
	}
	if _, err := g.Enemies.Populate(w, cfg.Populations); err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}

	logger.Info("game ready",
		log.String("collision", cfg.Sim.Collision),
		log.Int("enemies", w.Enemies.Len()),
		log.String("systems", fmt.Sprint(g.Scheduler.ExecutionOrder())))
	return g, nil
}

func (g *Game) register(cfg *config.Config) error {
	all := []systems.System[*world.World]{
		ship.Loadout(g.Input, g.Catalog),
		ship.Control(g.Input),
		weapons.Cooldown(),
	}
	all = append(all, projectiles.Systems()...)
	all = append(all,
		weapons.PlayerFire(g.Input.Firing),
		weapons.EnemyFire(),
		motion.Integrate(),
	)

	switch cfg.Sim.Collision {
	case config.CollisionContact:
		contacts, err := combat.NewContactResolver(g.World.Bus)
		if err != nil {
			return err
		}
		g.contacts = contacts
		all = append(all, motion.NewContacts(), contacts)
	default:
		all = append(all, combat.NewDistanceResolver(cfg.Sim.ParallelScanThreshold, cfg.Sim.ParallelChunks))
	}

	all = append(all, lifecycle.NewSweeper(cfg.Bounds, g.Enemies).Systems()...)
	return g.Scheduler.Register(all...)
}

// FrameDelta is the fixed timestep.
func (g *Game) FrameDelta() float64 { return g.dt }

// Step runs one frame with the given intent.
func (g *Game) Step(intent ship.Intent) error {
	g.Input.Set(intent)
	g.World.Advance(g.dt)
	return g.Scheduler.Update(g.dt, g.World)
}

// Pilot chooses the intent for the next frame.
type Pilot func(hud HUD) ship.Intent

// Run steps frames frames, or until ctx is done. With a non-nil tick each
// frame waits for the next tick; otherwise frames run back to back. report
// is called once per simulated second.
func (g *Game) Run(ctx context.Context, frames int, pilot Pilot, tick <-chan time.Time, report func(HUD)) error {
	perSecond := max(int(1/g.dt+0.5), 1)
	var errs []error
	for i := 0; i < frames; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return errors.Join(append(errs, ctx.Err())...)
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}

		var intent ship.Intent
		if pilot != nil {
			intent = pilot(g.HUD())
		}
		if err := g.Step(intent); err != nil {
			errs = append(errs, fmt.Errorf("frame %d: %w", g.World.Frame, err))
		}
		if report != nil && (i+1)%perSecond == 0 {
			report(g.HUD())
		}
	}
	return errors.Join(errs...)
}

// Close releases bus subscriptions.
func (g *Game) Close() error {
	if g.contacts != nil {
		return g.contacts.Close()
	}
	return nil
}
