// Package projectiles builds projectile entities and runs homing guidance.
package projectiles

import (
	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
)

// Ballistic spawns unguided projectiles that keep the velocity they were
// fired with.
type Ballistic struct {
	kind string
	cfg  config.ProjectileConfig
}

func NewBallistic(kind string, cfg config.ProjectileConfig) *Ballistic {
	return &Ballistic{kind: kind, cfg: cfg}
}

func (b *Ballistic) Kind() string { return b.kind }

func (b *Ballistic) SpawnProjectile(shot component.Shot) component.Bundle {
	dir, _ := physics.Normalize(shot.Velocity)
	tr := component.Transform{Position: shot.Position, Rotation: shot.Rotation}
	mv := physics.NewMovable(shot.Velocity, b.cfg.Damping)
	col := component.NewCollidable(b.cfg.Hitbox, b.cfg.Damage, b.cfg.HitPoints, shot.Team)
	return component.Bundle{
		Name:       b.kind,
		Transform:  &tr,
		Movable:    &mv,
		Collidable: &col,
		Projectile: &component.Projectile{
			Kind:               b.kind,
			Damage:             b.cfg.Damage,
			Acceleration:       b.cfg.Acceleration,
			Direction:          dir,
			MeshRotationOffset: b.cfg.MeshRotation.Quat(),
		},
	}
}

// Homing spawns guided projectiles. The heading starts along the shot's
// local +X and the projectile stays inert for the configured activation
// delay before it accelerates and steers.
type Homing struct {
	kind string
	cfg  config.ProjectileConfig
}

func NewHoming(kind string, cfg config.ProjectileConfig) *Homing {
	return &Homing{kind: kind, cfg: cfg}
}

func (h *Homing) Kind() string { return h.kind }

func (h *Homing) SpawnProjectile(shot component.Shot) component.Bundle {
	dir, ok := physics.Normalize(shot.Rotation.Rotate(physics.AxisX))
	if !ok {
		dir = physics.AxisX
	}
	tr := component.Transform{Position: shot.Position, Rotation: physics.LookRotation(dir)}
	mv := physics.NewMovable(shot.Velocity, h.cfg.Damping)
	col := component.NewCollidable(h.cfg.Hitbox, h.cfg.Damage, h.cfg.HitPoints, shot.Team)
	return component.Bundle{
		Name:       h.kind,
		Transform:  &tr,
		Movable:    &mv,
		Collidable: &col,
		Projectile: &component.Projectile{
			Kind:               h.kind,
			Damage:             h.cfg.Damage,
			Acceleration:       h.cfg.Acceleration,
			Agility:            h.cfg.Agility,
			Direction:          dir,
			Homing:             true,
			ActivationTimer:    h.cfg.ActivationDelay,
			MeshRotationOffset: h.cfg.MeshRotation.Quat(),
		},
	}
}

// Spawners builds one spawner per configured projectile kind.
func Spawners(cfgs map[string]config.ProjectileConfig) map[string]component.ProjectileSpawner {
	out := make(map[string]component.ProjectileSpawner, len(cfgs))
	for kind, cfg := range cfgs {
		if cfg.Homing {
			out[kind] = NewHoming(kind, cfg)
		} else {
			out[kind] = NewBallistic(kind, cfg)
		}
	}
	return out
}
