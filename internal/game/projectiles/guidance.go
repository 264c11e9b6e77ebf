package projectiles

import (
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/core/systems"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/world"
)

// Guidance pipeline priorities inside the update phase. The stages read
// what the previous stage wrote this frame and must keep this order.
const (
	PriorityActivation = systems.PriorityHigh
	PrioritySelection  = systems.PriorityHigh + 10
	PriorityThrust     = systems.PriorityHigh + 20
	PrioritySteering   = systems.PriorityHigh + 30
)

const source = "projectiles"

// Systems returns the guidance pipeline in execution order.
func Systems() []systems.System[*world.World] {
	return []systems.System[*world.World]{
		systems.Func("projectiles.activation", systems.PhaseUpdate, PriorityActivation, Activation),
		systems.Func("projectiles.selection", systems.PhaseUpdate, PrioritySelection, SelectTargets),
		systems.Func("projectiles.thrust", systems.PhaseUpdate, PriorityThrust, Thrust),
		systems.Func("projectiles.steering", systems.PhaseUpdate, PrioritySteering, Steer),
	}
}

// Activation counts activation timers down, flooring at zero.
func Activation(dt float64, w *world.World) error {
	w.Projectiles.Each(func(_ ecs.EntityID, p *component.Projectile) bool {
		if p.ActivationTimer > 0 {
			p.ActivationTimer = max(p.ActivationTimer-dt, 0)
		}
		return true
	})
	return nil
}

// SelectTargets drops targets that are gone and gives every seeking homing
// projectile a uniformly random live opponent. A projectile whose target
// was dropped picks again on the next frame.
func SelectTargets(_ float64, w *world.World) error {
	var candidates map[component.Team][]ecs.EntityID

	w.Projectiles.Each(func(id ecs.EntityID, p *component.Projectile) bool {
		if !p.Homing {
			return true
		}
		switch p.State() {
		case component.GuidanceTracking:
			if !targetable(w, p.Target) {
				w.Log.Debug("target lost", log.Entity("projectile", uint64(id)), log.Entity("target", uint64(p.Target)))
				p.Target = ecs.None
			}
		case component.GuidanceSeeking:
			col, ok := w.Collidables.Get(id)
			if !ok {
				return true
			}
			if candidates == nil {
				candidates = opponents(w)
			}
			pool := candidates[col.Team]
			if len(pool) == 0 {
				return true
			}
			p.Target = pool[w.RNG.IntN(len(pool))]
			w.Log.Debug("target acquired", log.Entity("projectile", uint64(id)), log.Entity("target", uint64(p.Target)))
			w.Emit(world.TopicCombat, world.EventTargetAcquired, source, world.TargetEvent{Projectile: id, Target: p.Target})
		}
		return true
	})
	return nil
}

// opponents lists, per team, the live non-projectile combatants that team
// may target, in store order.
func opponents(w *world.World) map[component.Team][]ecs.EntityID {
	out := make(map[component.Team][]ecs.EntityID, 2)
	w.Collidables.Each(func(id ecs.EntityID, c *component.Collidable) bool {
		if w.IsProjectile(id) || !c.Alive() || !w.Transforms.Has(id) {
			return true
		}
		for _, team := range []component.Team{component.TeamPlayer, component.TeamEnemy} {
			if team.Opposes(c.Team) {
				out[team] = append(out[team], id)
			}
		}
		return true
	})
	return out
}

func targetable(w *world.World, id ecs.EntityID) bool {
	if !w.Alive(id) || !w.Transforms.Has(id) {
		return false
	}
	c, ok := w.Collidables.Get(id)
	return ok && c.Alive()
}

// Thrust accelerates every active projectile along its heading, with or
// without a target.
func Thrust(dt float64, w *world.World) error {
	w.Projectiles.Each(func(id ecs.EntityID, p *component.Projectile) bool {
		if !p.Active() || p.Acceleration == 0 {
			return true
		}
		if mv, ok := w.Movables.Get(id); ok {
			mv.Push(p.Direction.Mul(p.Acceleration * dt))
		}
		return true
	})
	return nil
}

// Steer turns tracking projectiles toward their target by at most
// agility·dt radians and orients them along the new heading.
func Steer(dt float64, w *world.World) error {
	w.Projectiles.Each(func(id ecs.EntityID, p *component.Projectile) bool {
		if !p.Homing || p.State() != component.GuidanceTracking {
			return true
		}
		tr, ok := w.Transforms.Get(id)
		if !ok {
			return true
		}
		target, ok := w.Transforms.Get(p.Target)
		if !ok {
			p.Target = ecs.None
			return true
		}
		desired, ok := physics.Normalize(target.Position.Sub(tr.Position))
		if !ok {
			return true
		}
		p.Direction = physics.RotateTowards(p.Direction, desired, p.Agility*dt)
		tr.Rotation = physics.LookRotation(p.Direction).Mul(p.MeshRotationOffset)
		return true
	})
	return nil
}
