package combat

import (
	"fmt"

	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/systems"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/world"
)

// ContactResolver consumes contact-started events raised on the physics
// topic and resolves each shape pair to its owning combatants.
type ContactResolver struct {
	sub     bus.Subscription
	pending []physics.ContactStarted
}

// NewContactResolver subscribes to contact events on b. Events queue until
// the next Update.
func NewContactResolver(b bus.EventBus) (*ContactResolver, error) {
	r := &ContactResolver{}
	sub, err := b.SubscribeTopic(world.TopicPhysics, physics.EventContactStarted, func(e bus.Event) error {
		c, ok := e.Data().(physics.ContactStarted)
		if !ok {
			return fmt.Errorf("contact event: unexpected payload %T", e.Data())
		}
		r.pending = append(r.pending, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe contacts: %w", err)
	}
	r.sub = sub
	return r, nil
}

func (r *ContactResolver) Name() string                  { return "combat.contact" }
func (r *ContactResolver) Phase() systems.ExecutionPhase { return systems.PhaseResolve }
func (r *ContactResolver) Priority() systems.Priority    { return systems.PriorityNormal }

// Pending reports queued contacts not yet resolved.
func (r *ContactResolver) Pending() int { return len(r.pending) }

func (r *ContactResolver) Update(_ float64, w *world.World) error {
	type ownerPair struct{ a, b ecs.EntityID }
	seen := make(map[ownerPair]struct{}, len(r.pending))

	for _, c := range r.pending {
		a, okA := w.ShapeOwner(c.A)
		b, okB := w.ShapeOwner(c.B)
		if !okA || !okB || w.Root(a) == w.Root(b) {
			continue
		}
		ca, okA := w.Collidables.Get(a)
		cb, okB := w.Collidables.Get(b)
		if !okA || !okB || !ca.Team.Opposes(cb.Team) {
			continue
		}

		// Several shapes of the same two combatants touching count once.
		k := ownerPair{a: min(a, b), b: max(a, b)}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		Exchange(w, a, b, ca.Damage, cb.Damage)
	}
	r.pending = r.pending[:0]
	return nil
}

// Close stops receiving contact events.
func (r *ContactResolver) Close() error {
	return r.sub.Cancel()
}
