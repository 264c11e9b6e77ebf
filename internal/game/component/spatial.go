package component

import "github.com/zeusync/strike/internal/core/systems/physics"

// Transform is an entity's world position and orientation.
type Transform struct {
	Position physics.Vec3
	Rotation physics.Quat
}

func At(position physics.Vec3) Transform {
	return Transform{Position: position, Rotation: physics.Identity()}
}

// Movable is integrated by the physics phase.
type Movable = physics.Movable

// Shape is a collision sphere owned by a combatant, offset in the owner's
// local frame.
type Shape struct {
	Radius float64
	Offset physics.Vec3
}

// Attachment is a visual child (weapon mesh) spawned by a MeshSpawner.
type Attachment struct {
	Kind   string
	Offset physics.Vec3
}
