// Package lifecycle removes dead and out-of-bounds entities after combat has
// been resolved, credits score, and keeps enemy populations constant by
// pairing every enemy despawn with one respawn.
package lifecycle

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/core/systems"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/world"
)

const source = "lifecycle"

// Respawner replaces a despawned population-maintained entity.
type Respawner interface {
	Respawn(w *world.World, kind string) (ecs.EntityID, error)
}

type Sweeper struct {
	bounds  config.BoundsConfig
	respawn Respawner
}

func NewSweeper(bounds config.BoundsConfig, respawn Respawner) *Sweeper {
	return &Sweeper{bounds: bounds, respawn: respawn}
}

// Systems returns the death sweep followed by the bounds sweep, both in the
// cleanup phase.
func (s *Sweeper) Systems() []systems.System[*world.World] {
	return []systems.System[*world.World]{
		systems.Func("lifecycle.death", systems.PhaseCleanup, systems.PriorityHigh, s.Death),
		systems.Func("lifecycle.bounds", systems.PhaseCleanup, systems.PriorityNormal, s.Bounds),
	}
}

// Death despawns every non-persistent collidable at zero health. Enemies
// credit their score before they go and are replaced.
func (s *Sweeper) Death(_ float64, w *world.World) error {
	var errs []error
	for _, id := range w.Collidables.Entities() {
		col, ok := w.Collidables.Get(id)
		if !ok || col.Alive() || w.IsPersistent(id) {
			continue
		}
		enemy, isEnemy := w.Enemies.Get(id)
		var kind string
		if isEnemy {
			kind = enemy.Kind
			w.Score.Points += enemy.Score
			w.Score.Kills++
			w.Emit(world.TopicCombat, world.EventScoreAwarded, source, world.ScoreEvent{
				Entity: id, Points: enemy.Score, Total: w.Score.Points,
			})
		}
		if !w.DespawnWith(id, world.ReasonKilled, source) {
			continue
		}
		if isEnemy {
			w.Log.Info("enemy destroyed",
				log.String("kind", kind), log.Entity("entity", uint64(id)), log.Uint64("score", w.Score.Points))
			if err := s.replace(w, kind); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Bounds despawns projectiles past the projectile limit on any axis, and
// enemies that drifted past the left edge, replacing the enemies.
func (s *Sweeper) Bounds(_ float64, w *world.World) error {
	for _, id := range w.Projectiles.Entities() {
		tr, ok := w.Transforms.Get(id)
		if !ok || !outside(tr.Position, s.bounds.ProjectileLimit) {
			continue
		}
		w.DespawnWith(id, world.ReasonOutOfBounds, source)
	}

	var errs []error
	for _, id := range w.Enemies.Entities() {
		tr, ok := w.Transforms.Get(id)
		if !ok || tr.Position.X() >= s.bounds.EnemyMinX {
			continue
		}
		enemy, _ := w.Enemies.Get(id)
		kind := enemy.Kind
		if !w.DespawnWith(id, world.ReasonOutOfBounds, source) {
			continue
		}
		if err := s.replace(w, kind); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Sweeper) replace(w *world.World, kind string) error {
	if s.respawn == nil {
		return nil
	}
	if _, err := s.respawn.Respawn(w, kind); err != nil {
		return fmt.Errorf("respawn %s: %w", kind, err)
	}
	return nil
}

func outside(p physics.Vec3, limit float64) bool {
	return math.Abs(p.X()) > limit || math.Abs(p.Y()) > limit || math.Abs(p.Z()) > limit
}

// Population counts live enemies of kind.
func Population(w *world.World, kind string) int {
	n := 0
	w.Enemies.Each(func(_ ecs.EntityID, e *component.Enemy) bool {
		if e.Kind == kind {
			n++
		}
		return true
	})
	return n
}
