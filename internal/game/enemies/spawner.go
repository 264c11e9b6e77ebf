// Package enemies spawns the population-maintained kinds: drones that drift
// toward the ship and stationary target cubes.
package enemies

import (
	"errors"
	"fmt"

	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/weapons"
	"github.com/zeusync/strike/internal/game/world"
)

var ErrUnknownEnemy = errors.New("unknown enemy")

type Spawner struct {
	kinds   map[string]config.EnemyConfig
	bounds  config.BoundsConfig
	weapons *weapons.Catalog
}

// NewSpawner builds a spawner for the configured kinds. catalog may be nil
// when no kind carries a weapon.
func NewSpawner(kinds map[string]config.EnemyConfig, bounds config.BoundsConfig, catalog *weapons.Catalog) *Spawner {
	return &Spawner{kinds: kinds, bounds: bounds, weapons: catalog}
}

// Spawn places one enemy of kind at pos, armed if the kind has a weapon.
func (s *Spawner) Spawn(w *world.World, kind string, pos physics.Vec3) (ecs.EntityID, error) {
	cfg, ok := s.kinds[kind]
	if !ok {
		return ecs.None, fmt.Errorf("%w %q", ErrUnknownEnemy, kind)
	}
	var weapon *component.Weapon
	if cfg.Weapon != "" {
		if s.weapons == nil {
			return ecs.None, fmt.Errorf("enemy %s: no weapon catalog for %q", kind, cfg.Weapon)
		}
		wp, err := s.weapons.Build(cfg.Weapon)
		if err != nil {
			return ecs.None, fmt.Errorf("enemy %s: %w", kind, err)
		}
		weapon = &wp
	}

	tr := component.At(pos)
	mv := physics.NewMovable(cfg.Velocity.Vec(), cfg.Damping)
	col := component.NewCollidable(cfg.Hitbox, cfg.Damage, cfg.HitPoints, component.TeamEnemy)
	id := w.Spawn(component.Bundle{
		Name:       kind,
		Transform:  &tr,
		Movable:    &mv,
		Collidable: &col,
		Enemy:      &component.Enemy{Kind: kind, Score: cfg.Score},
	})
	if weapon != nil {
		weapons.Attach(w, id, *weapon)
	}
	return id, nil
}

// Respawn places a fresh enemy of kind on the spawn side at a uniformly
// random height.
func (s *Spawner) Respawn(w *world.World, kind string) (ecs.EntityID, error) {
	y := s.bounds.SpawnMinY + w.RNG.Float64()*(s.bounds.SpawnMaxY-s.bounds.SpawnMinY)
	id, err := s.Spawn(w, kind, physics.Vec3{s.bounds.SpawnX, y, 0})
	if err != nil {
		return ecs.None, err
	}
	w.Log.Debug("respawned", log.String("kind", kind), log.Entity("entity", uint64(id)), log.Float64("y", y))
	return id, nil
}

// Populate spawns every population: at its listed positions first, then at
// random spawn-side positions for the remaining count.
func (s *Spawner) Populate(w *world.World, pops []config.PopulationConfig) ([]ecs.EntityID, error) {
	var (
		ids  []ecs.EntityID
		errs []error
	)
	for _, pop := range pops {
		for i := 0; i < pop.Count; i++ {
			var (
				id  ecs.EntityID
				err error
			)
			if i < len(pop.Positions) {
				id, err = s.Spawn(w, pop.Enemy, pop.Positions[i].Vec())
			} else {
				id, err = s.Respawn(w, pop.Enemy)
			}
			if err != nil {
				errs = append(errs, err)
				break
			}
			ids = append(ids, id)
		}
	}
	return ids, errors.Join(errs...)
}
