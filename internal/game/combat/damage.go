// Package combat applies mutual damage between opposing combatants that are
// in contact. Contacts come either from a pairwise distance scan or from
// shape contact events raised by the physics step.
package combat

import (
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/game/world"
)

const source = "combat"

// Exchange applies simultaneous damage between a and b: a takes dealtByB and
// b takes dealtByA. Both values must be read before either side is mutated.
// If either side is no longer a live collidable nothing is applied.
func Exchange(w *world.World, a, b ecs.EntityID, dealtByA, dealtByB float64) bool {
	ca, okA := w.Collidables.Get(a)
	cb, okB := w.Collidables.Get(b)
	if !okA || !okB {
		w.Log.Debug("contact with missing combatant skipped",
			log.Entity("a", uint64(a)), log.Entity("b", uint64(b)))
		return false
	}

	ca.TakeDamage(dealtByB)
	cb.TakeDamage(dealtByA)

	w.Log.Debug("hit",
		log.Entity("a", uint64(a)), log.Entity("b", uint64(b)),
		log.Float64("hp_a", ca.HitPoints), log.Float64("hp_b", cb.HitPoints))
	w.Emit(world.TopicCombat, world.EventHit, source, world.HitEvent{
		A: a, B: b, DamageA: dealtByB, DamageB: dealtByA,
	})
	return true
}
