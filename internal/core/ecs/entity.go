package ecs

import "slices"

// EntityID identifies an entity. Zero is never allocated and means "none".
type EntityID uint64

// None is the zero entity.
const None EntityID = 0

// Registry allocates entity ids and owns liveness and the parent/child
// hierarchy. Component data lives in Stores registered with Track.
type Registry struct {
	next     EntityID
	alive    map[EntityID]struct{}
	parent   map[EntityID]EntityID
	children map[EntityID][]EntityID
	hooks    []func(EntityID)
}

func NewRegistry() *Registry {
	return &Registry{
		alive:    make(map[EntityID]struct{}),
		parent:   make(map[EntityID]EntityID),
		children: make(map[EntityID][]EntityID),
	}
}

// Spawn allocates a new live entity.
func (r *Registry) Spawn() EntityID {
	r.next++
	id := r.next
	r.alive[id] = struct{}{}
	return id
}

// SpawnChild allocates a live entity parented to parent. If parent is not
// alive the child is spawned as a root.
func (r *Registry) SpawnChild(parent EntityID) EntityID {
	id := r.Spawn()
	if r.Alive(parent) {
		r.parent[id] = parent
		r.children[parent] = append(r.children[parent], id)
	}
	return id
}

func (r *Registry) Alive(id EntityID) bool {
	_, ok := r.alive[id]
	return ok
}

func (r *Registry) Count() int {
	return len(r.alive)
}

func (r *Registry) Parent(id EntityID) (EntityID, bool) {
	p, ok := r.parent[id]
	return p, ok
}

// Root walks up the hierarchy to the top-most ancestor.
func (r *Registry) Root(id EntityID) EntityID {
	for {
		p, ok := r.parent[id]
		if !ok {
			return id
		}
		id = p
	}
}

func (r *Registry) Children(id EntityID) []EntityID {
	return slices.Clone(r.children[id])
}

// OnDespawn registers a hook called once for every despawned entity,
// children before parents.
func (r *Registry) OnDespawn(fn func(EntityID)) {
	r.hooks = append(r.hooks, fn)
}

// Despawn removes id and all of its descendants. It reports false when id
// was already gone.
func (r *Registry) Despawn(id EntityID) bool {
	if !r.Alive(id) {
		return false
	}
	for _, child := range r.Children(id) {
		r.Despawn(child)
	}
	if p, ok := r.parent[id]; ok {
		r.children[p] = slices.DeleteFunc(r.children[p], func(c EntityID) bool { return c == id })
		if len(r.children[p]) == 0 {
			delete(r.children, p)
		}
		delete(r.parent, id)
	}
	delete(r.children, id)
	delete(r.alive, id)
	for _, hook := range r.hooks {
		hook(id)
	}
	return true
}

// Track removes an entity's component from s whenever the entity despawns.
func Track[T any](r *Registry, s *Store[T]) *Store[T] {
	r.OnDespawn(s.Remove)
	return s
}
