// Package weapons runs the weapon fire state machine: Ready while the
// cooldown timer is at zero, Cooling after a successful fire until the timer
// has been counted back down.
package weapons

import (
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/core/systems"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/world"
)

const source = "weapons"

// Cooldown counts every weapon's timer down by dt, flooring at zero.
func Cooldown() systems.System[*world.World] {
	return systems.Func("weapons.cooldown", systems.PhaseUpdate, systems.PriorityHighest,
		func(dt float64, w *world.World) error {
			w.Weapons.Each(func(_ ecs.EntityID, wp *component.Weapon) bool {
				wp.Cool(dt)
				return true
			})
			return nil
		})
}

// Fire shoots owner's weapon if it is Ready. The shot rotation is the owner
// rotation composed with the weapon rotation, and the projectile inherits the
// owner's velocity. Fire is dropped without error when the owner has no
// weapon, is Cooling, or is missing its transform, movable or collidable.
func Fire(w *world.World, owner ecs.EntityID) (ecs.EntityID, bool) {
	wp, ok := w.Weapons.Get(owner)
	if !ok || !wp.CanFire() || wp.Projectile == nil {
		return ecs.None, false
	}
	tr, okT := w.Transforms.Get(owner)
	mv, okM := w.Movables.Get(owner)
	col, okC := w.Collidables.Get(owner)
	if !okT || !okM || !okC {
		w.Log.Debug("fire dropped, owner incomplete", log.Entity("owner", uint64(owner)))
		return ecs.None, false
	}

	rotation := tr.Rotation.Mul(wp.Rotation)
	velocity := mv.Velocity.Add(rotation.Rotate(wp.ProjectileSpawnSpeed))
	weaponPos := tr.Position.Add(tr.Rotation.Rotate(wp.PositionOffset))
	spawnPos := weaponPos.Add(rotation.Rotate(wp.ProjectileSpawnOffset))

	id := w.Spawn(wp.Projectile.SpawnProjectile(component.Shot{
		Owner:    owner,
		Position: spawnPos,
		Velocity: velocity,
		Rotation: rotation,
		Team:     col.Team,
	}))
	wp.StartCooldown()

	w.Log.Debug("fired",
		log.Entity("owner", uint64(owner)), log.Entity("projectile", uint64(id)), log.String("weapon", wp.Name))
	w.Emit(world.TopicCombat, world.EventWeaponFired, source, world.FireEvent{Owner: owner, Projectile: id, Weapon: wp.Name})
	return id, true
}

// Attach gives owner weapon, spawning its mesh attachment as a child of the
// owner when the weapon has a mesh spawner.
func Attach(w *world.World, owner ecs.EntityID, weapon component.Weapon) {
	weapon.Attachment = ecs.None
	if weapon.Mesh != nil {
		weapon.Attachment = w.SpawnChild(owner, weapon.Mesh.SpawnMesh(weapon.PositionOffset))
	}
	w.Weapons.Set(owner, weapon)
}

// Remove detaches owner's weapon and despawns its attachment. It reports
// whether there was a weapon to remove.
func Remove(w *world.World, owner ecs.EntityID) bool {
	wp, ok := w.Weapons.Get(owner)
	if !ok {
		return false
	}
	if wp.Attachment != ecs.None {
		w.Despawn(wp.Attachment)
	}
	w.Weapons.Remove(owner)
	return true
}

// Switch replaces owner's weapon within the current frame.
func Switch(w *world.World, owner ecs.EntityID, weapon component.Weapon) {
	if !w.Alive(owner) {
		return
	}
	Remove(w, owner)
	Attach(w, owner, weapon)
	w.Log.Debug("weapon switched", log.Entity("owner", uint64(owner)), log.String("weapon", weapon.Name))
}

// PlayerFire fires the player's weapon every frame held reports true.
func PlayerFire(held func() bool) systems.System[*world.World] {
	return systems.Func("weapons.player_fire", systems.PhaseUpdate, systems.PriorityLow,
		func(_ float64, w *world.World) error {
			if w.Player != ecs.None && held() {
				Fire(w, w.Player)
			}
			return nil
		})
}

// EnemyFire fires every enemy-owned weapon as soon as it is Ready.
func EnemyFire() systems.System[*world.World] {
	return systems.Func("weapons.enemy_fire", systems.PhaseUpdate, systems.PriorityLow,
		func(_ float64, w *world.World) error {
			for _, owner := range w.Weapons.Entities() {
				if w.Enemies.Has(owner) {
					Fire(w, owner)
				}
			}
			return nil
		})
}
