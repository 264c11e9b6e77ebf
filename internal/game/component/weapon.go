package component

import (
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/systems/physics"
)

// Shot is what a weapon hands its projectile spawner at fire time.
type Shot struct {
	Owner    ecs.EntityID
	Position physics.Vec3
	Velocity physics.Vec3
	Rotation physics.Quat
	Team     Team
}

// ProjectileSpawner builds the projectile entity for one projectile kind.
type ProjectileSpawner interface {
	Kind() string
	SpawnProjectile(shot Shot) Bundle
}

// MeshSpawner builds the visual attachment of one weapon kind.
type MeshSpawner interface {
	SpawnMesh(offset physics.Vec3) Bundle
}

// Weapon fires projectiles through its spawner. It is Ready while
// CooldownTimer <= 0 and Cooling otherwise.
type Weapon struct {
	Name                  string
	FireCooldown          float64
	CooldownTimer         float64
	Projectile            ProjectileSpawner
	Mesh                  MeshSpawner
	PositionOffset        physics.Vec3
	ProjectileSpawnOffset physics.Vec3
	ProjectileSpawnSpeed  physics.Vec3
	Rotation              physics.Quat
	// Attachment is the mesh child spawned on attach, if any.
	Attachment ecs.EntityID
}

func (w *Weapon) CanFire() bool {
	return w.CooldownTimer <= 0
}

func (w *Weapon) StartCooldown() {
	w.CooldownTimer = w.FireCooldown
}

// Cool counts the timer down by dt, flooring at zero.
func (w *Weapon) Cool(dt float64) {
	if w.CooldownTimer <= 0 {
		return
	}
	w.CooldownTimer -= dt
	if w.CooldownTimer < 0 {
		w.CooldownTimer = 0
	}
}
