package component

import (
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/systems/physics"
)

// GuidanceState of a homing projectile.
type GuidanceState uint8

const (
	GuidanceInert    GuidanceState = iota // activation timer still running
	GuidanceSeeking                       // active, no target
	GuidanceTracking                      // active, target assigned
)

func (s GuidanceState) String() string {
	switch s {
	case GuidanceInert:
		return "inert"
	case GuidanceSeeking:
		return "seeking"
	case GuidanceTracking:
		return "tracking"
	}
	return "unknown"
}

type Projectile struct {
	Kind         string
	Damage       float64
	Acceleration float64
	// Agility is the max turn rate in rad/s.
	Agility   float64
	Direction physics.Vec3
	Homing    bool
	// ActivationTimer counts down; steering and acceleration wait for zero.
	ActivationTimer float64
	// Target is a weak reference, cleared when the target is gone.
	Target             ecs.EntityID
	MeshRotationOffset physics.Quat
}

func (p *Projectile) Active() bool {
	return p.ActivationTimer <= 0
}

func (p *Projectile) State() GuidanceState {
	switch {
	case !p.Active():
		return GuidanceInert
	case p.Target == ecs.None:
		return GuidanceSeeking
	default:
		return GuidanceTracking
	}
}
