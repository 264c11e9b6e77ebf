package physics

// ShapeID identifies one collision shape. A combatant may own several.
type ShapeID uint64

// EventContactStarted is the bus event type for ContactStarted payloads.
const EventContactStarted = "contact.started"

// ContactStarted reports that two shapes began touching this step.
type ContactStarted struct {
	A, B ShapeID
}

// ShapeState is one sphere shape in world space.
type ShapeState struct {
	ID     ShapeID
	Owner  uint64
	Center Vec3
	Radius float64
}

type pairKey struct{ lo, hi ShapeID }

func keyOf(a, b ShapeID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// OverlapTracker stands in for the external physics engine's narrow
// phase: it reports sphere pairs only on the step they start overlapping.
// Shapes sharing an owner never contact each other.
type OverlapTracker struct {
	active map[pairKey]struct{}
}

func NewOverlapTracker() *OverlapTracker {
	return &OverlapTracker{active: make(map[pairKey]struct{})}
}

// Step returns contacts that started since the previous step, in input order.
func (t *OverlapTracker) Step(shapes []ShapeState) []ContactStarted {
	next := make(map[pairKey]struct{}, len(t.active))
	var started []ContactStarted
	for i := 0; i < len(shapes); i++ {
		a := shapes[i]
		for j := i + 1; j < len(shapes); j++ {
			b := shapes[j]
			if a.Owner == b.Owner {
				continue
			}
			reach := a.Radius + b.Radius
			d := b.Center.Sub(a.Center)
			if d.Dot(d) >= reach*reach {
				continue
			}
			k := keyOf(a.ID, b.ID)
			next[k] = struct{}{}
			if _, ok := t.active[k]; !ok {
				started = append(started, ContactStarted{A: a.ID, B: b.ID})
			}
		}
	}
	t.active = next
	return started
}

// Active reports the number of pairs currently touching.
func (t *OverlapTracker) Active() int {
	return len(t.active)
}
