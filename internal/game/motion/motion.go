// Package motion holds the physics-phase systems: the Movable integrator and
// the shape overlap step that raises contact events.
package motion

import (
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/core/systems"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/world"
)

// Integrate advances every entity with a Transform and a Movable.
func Integrate() systems.System[*world.World] {
	return systems.Func("motion.integrate", systems.PhasePhysics, systems.PriorityHigh,
		func(dt float64, w *world.World) error {
			w.Movables.Each(func(id ecs.EntityID, m *component.Movable) bool {
				if tr, ok := w.Transforms.Get(id); ok {
					m.Step(&tr.Position, dt)
				}
				return true
			})
			return nil
		})
}

// Contacts is the physics step used in contact mode. After integration it
// places every shape in world space and publishes one contact-started event
// per shape pair that began overlapping this frame.
type Contacts struct {
	tracker *physics.OverlapTracker
	shapes  []physics.ShapeState
}

func NewContacts() *Contacts {
	return &Contacts{tracker: physics.NewOverlapTracker()}
}

func (c *Contacts) Name() string                  { return "motion.contacts" }
func (c *Contacts) Phase() systems.ExecutionPhase { return systems.PhasePhysics }
func (c *Contacts) Priority() systems.Priority    { return systems.PriorityLow }

func (c *Contacts) Update(_ float64, w *world.World) error {
	c.shapes = c.shapes[:0]
	w.Shapes.Each(func(id ecs.EntityID, s *component.Shape) bool {
		owner, ok := w.ShapeOwner(physics.ShapeID(id))
		if !ok {
			return true
		}
		tr, ok := w.Transforms.Get(owner)
		if !ok {
			return true
		}
		c.shapes = append(c.shapes, physics.ShapeState{
			ID:     physics.ShapeID(id),
			Owner:  uint64(owner),
			Center: tr.Position.Add(tr.Rotation.Rotate(s.Offset)),
			Radius: s.Radius,
		})
		return true
	})

	started := c.tracker.Step(c.shapes)
	if len(started) == 0 {
		return nil
	}
	events := make([]bus.Event, 0, len(started))
	for _, s := range started {
		events = append(events, bus.NewEvent(physics.EventContactStarted, "motion", w.Frame, s))
	}
	w.Log.Debug("contacts started", log.Int("count", len(started)))
	return w.Bus.PublishBatch(world.TopicPhysics, events...)
}
