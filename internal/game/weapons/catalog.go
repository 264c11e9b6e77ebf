package weapons

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
)

var (
	ErrUnknownWeapon     = errors.New("unknown weapon")
	ErrUnknownProjectile = errors.New("unknown projectile")
	ErrUnknownMesh       = errors.New("unknown weapon mesh")
)

// CannonMesh is the visual barrel attached under the ship.
type CannonMesh struct{}

func (CannonMesh) SpawnMesh(offset physics.Vec3) component.Bundle {
	return component.Bundle{
		Name:       "cannon_mesh",
		Attachment: &component.Attachment{Kind: "cannon", Offset: offset},
	}
}

// Meshes lists the known mesh spawners by name.
func Meshes() map[string]component.MeshSpawner {
	return map[string]component.MeshSpawner{"cannon": CannonMesh{}}
}

// Catalog builds weapon components by name with their spawners resolved.
type Catalog struct {
	weapons map[string]component.Weapon
}

func NewCatalog(
	cfgs map[string]config.WeaponConfig,
	projectiles map[string]component.ProjectileSpawner,
	meshes map[string]component.MeshSpawner,
) (*Catalog, error) {
	c := &Catalog{weapons: make(map[string]component.Weapon, len(cfgs))}
	var errs []error
	for name, cfg := range cfgs {
		spawner, ok := projectiles[cfg.Projectile]
		if !ok {
			errs = append(errs, fmt.Errorf("weapon %s: %w %q", name, ErrUnknownProjectile, cfg.Projectile))
			continue
		}
		var mesh component.MeshSpawner
		if cfg.Mesh != "" {
			if mesh, ok = meshes[cfg.Mesh]; !ok {
				errs = append(errs, fmt.Errorf("weapon %s: %w %q", name, ErrUnknownMesh, cfg.Mesh))
				continue
			}
		}
		c.weapons[name] = component.Weapon{
			Name:                  name,
			FireCooldown:          cfg.Cooldown,
			Projectile:            spawner,
			Mesh:                  mesh,
			PositionOffset:        cfg.PositionOffset.Vec(),
			ProjectileSpawnOffset: cfg.SpawnOffset.Vec(),
			ProjectileSpawnSpeed:  cfg.SpawnSpeed.Vec(),
			Rotation:              cfg.Rotation.Quat(),
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Build returns a fresh, Ready weapon of the named kind.
func (c *Catalog) Build(name string) (component.Weapon, error) {
	wp, ok := c.weapons[name]
	if !ok {
		return component.Weapon{}, fmt.Errorf("%w %q", ErrUnknownWeapon, name)
	}
	return wp, nil
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.weapons))
	for name := range c.weapons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
