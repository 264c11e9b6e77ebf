package combat

import (
	"context"
	"fmt"

	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/systems"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/world"
	"github.com/zeusync/strike/pkg/concurrent"
	"github.com/zeusync/strike/pkg/generic"
)

// combatant is one row of the pre-resolution snapshot.
type combatant struct {
	id         ecs.EntityID
	position   physics.Vec3
	collidable component.Collidable
}

type pair struct{ i, j int }

// DistanceResolver finds contacts with an O(n²) scan over a snapshot of all
// positioned collidables: contact iff distance < hitboxA + hitboxB.
type DistanceResolver struct {
	// ParallelThreshold is the combatant count from which pair detection is
	// split across goroutines. Zero keeps it serial.
	ParallelThreshold int
	Chunks            int

	snapshot []combatant
	pairs    []pair
	buffers  *generic.Pool[*[]pair]
}

func NewDistanceResolver(parallelThreshold, chunks int) *DistanceResolver {
	return &DistanceResolver{
		ParallelThreshold: parallelThreshold,
		Chunks:            chunks,
		buffers:           generic.Slices[pair](16),
	}
}

func (r *DistanceResolver) Name() string                  { return "combat.distance" }
func (r *DistanceResolver) Phase() systems.ExecutionPhase { return systems.PhaseResolve }
func (r *DistanceResolver) Priority() systems.Priority    { return systems.PriorityNormal }

func (r *DistanceResolver) Update(_ float64, w *world.World) error {
	r.snapshot = r.snapshot[:0]
	w.Collidables.Each(func(id ecs.EntityID, c *component.Collidable) bool {
		if tr, ok := w.Transforms.Get(id); ok {
			r.snapshot = append(r.snapshot, combatant{id: id, position: tr.Position, collidable: *c})
		}
		return true
	})

	pairs, err := r.contacts()
	if err != nil {
		return fmt.Errorf("scan contacts: %w", err)
	}
	for _, p := range pairs {
		a, b := r.snapshot[p.i], r.snapshot[p.j]
		Exchange(w, a.id, b.id, a.collidable.Damage, b.collidable.Damage)
	}
	return nil
}

func (r *DistanceResolver) contacts() ([]pair, error) {
	n := len(r.snapshot)
	if r.ParallelThreshold <= 0 || n < r.ParallelThreshold || r.Chunks <= 1 {
		r.pairs = r.scan(r.pairs[:0], 0, n)
		return r.pairs, nil
	}
	return concurrent.CollectChunks(context.Background(), n, r.Chunks,
		func(lo, hi int) []pair {
			return r.scan(*r.buffers.Get(), lo, hi)
		},
		func(p []pair) {
			r.buffers.Put(&p)
		})
}

// scan appends contacts (i, j) with lo <= i < hi and i < j to out, in index
// order. It only reads the snapshot.
func (r *DistanceResolver) scan(out []pair, lo, hi int) []pair {
	for i := lo; i < hi; i++ {
		a := &r.snapshot[i]
		for j := i + 1; j < len(r.snapshot); j++ {
			b := &r.snapshot[j]
			if !a.collidable.Team.Opposes(b.collidable.Team) {
				continue
			}
			if physics.Distance(a.position, b.position) < a.collidable.Hitbox+b.collidable.Hitbox {
				out = append(out, pair{i: i, j: j})
			}
		}
	}
	return out
}
