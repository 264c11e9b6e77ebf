package world

import (
	"math/rand/v2"

	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
)

// Score is the shared score resource, written only by the lifecycle sweep.
type Score struct {
	Points uint64
	Kills  uint64
}

// Options configure a new World.
type Options struct {
	Seed uint64
	Bus  bus.EventBus
	Log  log.Log
	// Shapes makes every collidable spawn contact shapes (contact mode).
	Shapes bool
}

// World is the component tables plus the shared resources systems read and
// write. It is mutated by one system at a time.
type World struct {
	*ecs.Registry

	Transforms  *ecs.Store[component.Transform]
	Movables    *ecs.Store[component.Movable]
	Collidables *ecs.Store[component.Collidable]
	Weapons     *ecs.Store[component.Weapon]
	Projectiles *ecs.Store[component.Projectile]
	Enemies     *ecs.Store[component.Enemy]
	Ships       *ecs.Store[component.Ship]
	Attachments *ecs.Store[component.Attachment]
	Persistents *ecs.Store[component.Persistent]
	Shapes      *ecs.Store[component.Shape]

	// shapeOwners maps every shape to its combatant, filled at spawn time.
	shapeOwners map[physics.ShapeID]ecs.EntityID
	names       map[ecs.EntityID]string
	withShapes  bool

	// Player is the player ship, ecs.None when there is none.
	Player ecs.EntityID
	Score  Score

	RNG   *rand.Rand
	Bus   bus.EventBus
	Log   log.Log
	Frame uint64
	Time  float64
}

func New(opts Options) *World {
	r := ecs.NewRegistry()
	w := &World{
		Registry:    r,
		Transforms:  ecs.Track(r, ecs.NewStore[component.Transform]()),
		Movables:    ecs.Track(r, ecs.NewStore[component.Movable]()),
		Collidables: ecs.Track(r, ecs.NewStore[component.Collidable]()),
		Weapons:     ecs.Track(r, ecs.NewStore[component.Weapon]()),
		Projectiles: ecs.Track(r, ecs.NewStore[component.Projectile]()),
		Enemies:     ecs.Track(r, ecs.NewStore[component.Enemy]()),
		Ships:       ecs.Track(r, ecs.NewStore[component.Ship]()),
		Attachments: ecs.Track(r, ecs.NewStore[component.Attachment]()),
		Persistents: ecs.Track(r, ecs.NewStore[component.Persistent]()),
		Shapes:      ecs.Track(r, ecs.NewStore[component.Shape]()),
		shapeOwners: make(map[physics.ShapeID]ecs.EntityID),
		names:       make(map[ecs.EntityID]string),
		withShapes:  opts.Shapes,
		RNG:         rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		Bus:         opts.Bus,
		Log:         opts.Log,
	}
	if w.Bus == nil {
		w.Bus = bus.New()
	}
	if w.Log == nil {
		w.Log = log.Nop()
	}
	r.OnDespawn(func(id ecs.EntityID) {
		delete(w.shapeOwners, physics.ShapeID(id))
		delete(w.names, id)
		if id == w.Player {
			w.Player = ecs.None
		}
	})
	return w
}

// Spawn creates a root entity from b.
func (w *World) Spawn(b component.Bundle) ecs.EntityID {
	return w.insert(w.Registry.Spawn(), b)
}

// SpawnChild creates an entity from b parented to parent.
func (w *World) SpawnChild(parent ecs.EntityID, b component.Bundle) ecs.EntityID {
	return w.insert(w.Registry.SpawnChild(parent), b)
}

func (w *World) insert(id ecs.EntityID, b component.Bundle) ecs.EntityID {
	if b.Name != "" {
		w.names[id] = b.Name
	}
	if b.Transform != nil {
		w.Transforms.Set(id, *b.Transform)
	}
	if b.Movable != nil {
		w.Movables.Set(id, *b.Movable)
	}
	if b.Collidable != nil {
		w.Collidables.Set(id, *b.Collidable)
	}
	if b.Weapon != nil {
		w.Weapons.Set(id, *b.Weapon)
	}
	if b.Projectile != nil {
		w.Projectiles.Set(id, *b.Projectile)
	}
	if b.Enemy != nil {
		w.Enemies.Set(id, *b.Enemy)
	}
	if b.Ship != nil {
		w.Ships.Set(id, *b.Ship)
	}
	if b.Attachment != nil {
		w.Attachments.Set(id, *b.Attachment)
	}
	if b.Persistent {
		w.Persistents.Set(id, component.Persistent{})
	}
	if w.withShapes && b.Collidable != nil {
		shapes := b.Shapes
		if len(shapes) == 0 {
			shapes = []component.Shape{{Radius: b.Collidable.Hitbox}}
		}
		for _, s := range shapes {
			w.AddShape(id, s)
		}
	}
	return id
}

// AddShape spawns a shape child of owner and indexes it.
func (w *World) AddShape(owner ecs.EntityID, s component.Shape) physics.ShapeID {
	child := w.Registry.SpawnChild(owner)
	w.Shapes.Set(child, s)
	id := physics.ShapeID(child)
	w.shapeOwners[id] = owner
	return id
}

// ShapeOwner resolves a shape to its combatant.
func (w *World) ShapeOwner(id physics.ShapeID) (ecs.EntityID, bool) {
	owner, ok := w.shapeOwners[id]
	if !ok || !w.Alive(owner) {
		return ecs.None, false
	}
	return owner, true
}

// Name returns the spawn name of id, or "".
func (w *World) Name(id ecs.EntityID) string {
	return w.names[id]
}

func (w *World) IsPersistent(id ecs.EntityID) bool {
	return w.Persistents.Has(id)
}

func (w *World) IsProjectile(id ecs.EntityID) bool {
	return w.Projectiles.Has(id)
}

// Advance moves the frame clock; called once per frame before systems run.
func (w *World) Advance(dt float64) {
	w.Frame++
	w.Time += dt
}
