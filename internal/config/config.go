package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/strike/internal/core/systems/physics"
)

// Collision detection strategies.
const (
	CollisionDistance = "distance"
	CollisionContact  = "contact"
)

var ErrInvalid = errors.New("invalid config")

// Config is the full game tuning, loaded from YAML.
type Config struct {
	Log         LogConfig                   `yaml:"log"`
	Sim         SimConfig                   `yaml:"sim"`
	Bounds      BoundsConfig                `yaml:"bounds"`
	Ship        ShipConfig                  `yaml:"ship"`
	Weapons     map[string]WeaponConfig     `yaml:"weapons"`
	Projectiles map[string]ProjectileConfig `yaml:"projectiles"`
	Enemies     map[string]EnemyConfig      `yaml:"enemies"`
	Populations []PopulationConfig          `yaml:"populations"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type SimConfig struct {
	Hz   float64 `yaml:"hz"`
	Seed string  `yaml:"seed"`
	// Collision selects "distance" (pairwise scan) or "contact" (shape
	// contact events).
	Collision string `yaml:"collision"`
	// ParallelScanThreshold is the collidable count from which the distance
	// scan fans out across goroutines; 0 disables it.
	ParallelScanThreshold int `yaml:"parallel_scan_threshold"`
	ParallelChunks        int `yaml:"parallel_chunks"`
}

type BoundsConfig struct {
	ProjectileLimit float64 `yaml:"projectile_limit"`
	EnemyMinX       float64 `yaml:"enemy_min_x"`
	SpawnX          float64 `yaml:"spawn_x"`
	SpawnMinY       float64 `yaml:"spawn_min_y"`
	SpawnMaxY       float64 `yaml:"spawn_max_y"`
}

type ShipConfig struct {
	Position  Vector   `yaml:"position"`
	HitPoints float64  `yaml:"hit_points"`
	Damage    float64  `yaml:"damage"`
	Hitbox    float64  `yaml:"hitbox"`
	Thrust    float64  `yaml:"thrust"`
	TurnRate  float64  `yaml:"turn_rate"`
	Damping   float64  `yaml:"damping"`
	Loadout   []string `yaml:"loadout"`
}

type WeaponConfig struct {
	Cooldown       float64 `yaml:"cooldown"`
	Projectile     string  `yaml:"projectile"`
	Mesh           string  `yaml:"mesh,omitempty"`
	PositionOffset Vector  `yaml:"position_offset"`
	SpawnOffset    Vector  `yaml:"spawn_offset"`
	SpawnSpeed     Vector  `yaml:"spawn_speed"`
	// Rotation is XYZ Euler angles in degrees.
	Rotation Vector `yaml:"rotation"`
}

type ProjectileConfig struct {
	Damage          float64 `yaml:"damage"`
	HitPoints       float64 `yaml:"hit_points"`
	Hitbox          float64 `yaml:"hitbox"`
	Acceleration    float64 `yaml:"acceleration"`
	Agility         float64 `yaml:"agility"`
	Homing          bool    `yaml:"homing"`
	ActivationDelay float64 `yaml:"activation_delay"`
	Damping         float64 `yaml:"damping"`
	// MeshRotation is XYZ Euler angles in degrees.
	MeshRotation Vector `yaml:"mesh_rotation"`
}

type EnemyConfig struct {
	Damage    float64 `yaml:"damage"`
	HitPoints float64 `yaml:"hit_points"`
	Hitbox    float64 `yaml:"hitbox"`
	Score     uint64  `yaml:"score"`
	Velocity  Vector  `yaml:"velocity"`
	Damping   float64 `yaml:"damping"`
	Weapon    string  `yaml:"weapon,omitempty"`
}

type PopulationConfig struct {
	Enemy     string   `yaml:"enemy"`
	Count     int      `yaml:"count"`
	Positions []Vector `yaml:"positions,omitempty"`
}

// Vector is a YAML [x, y, z] triple.
type Vector [3]float64

func (v Vector) Vec() physics.Vec3 { return physics.Vec3(v) }

// Quat reads v as XYZ Euler angles in degrees.
func (v Vector) Quat() physics.Quat {
	return mgl64.AnglesToQuat(mgl64.DegToRad(v[0]), mgl64.DegToRad(v[1]), mgl64.DegToRad(v[2]), mgl64.XYZ)
}

// SeedValue hashes the seed string into the RNG seed.
func (c *Config) SeedValue() uint64 {
	return xxhash.Sum64String(c.Sim.Seed)
}

// FrameDelta is the fixed timestep in seconds.
func (c *Config) FrameDelta() float64 {
	return 1 / c.Sim.Hz
}

// Validate checks ranges and cross references.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Sim.Hz > 0, "sim.hz must be positive, got %v", c.Sim.Hz)
	check(c.Sim.Collision == CollisionDistance || c.Sim.Collision == CollisionContact,
		"sim.collision must be %q or %q, got %q", CollisionDistance, CollisionContact, c.Sim.Collision)
	check(c.Sim.ParallelScanThreshold >= 0, "sim.parallel_scan_threshold must not be negative")
	check(c.Bounds.ProjectileLimit > 0, "bounds.projectile_limit must be positive")
	check(c.Bounds.SpawnMinY < c.Bounds.SpawnMaxY, "bounds.spawn_min_y must be below spawn_max_y")

	check(c.Ship.HitPoints > 0, "ship.hit_points must be positive")
	check(c.Ship.Damage >= 0, "ship.damage must not be negative")
	check(dampingOK(c.Ship.Damping), "ship.damping must be in (0, 1], got %v", c.Ship.Damping)
	for i, name := range c.Ship.Loadout {
		_, ok := c.Weapons[name]
		check(ok, "ship.loadout[%d]: unknown weapon %q", i, name)
	}

	for name, w := range c.Weapons {
		check(w.Cooldown > 0, "weapons.%s.cooldown must be positive", name)
		_, ok := c.Projectiles[w.Projectile]
		check(ok, "weapons.%s: unknown projectile %q", name, w.Projectile)
	}
	for name, p := range c.Projectiles {
		check(p.HitPoints > 0, "projectiles.%s.hit_points must be positive", name)
		check(p.Damage >= 0, "projectiles.%s.damage must not be negative", name)
		check(dampingOK(p.Damping), "projectiles.%s.damping must be in (0, 1]", name)
		check(!p.Homing || p.Agility > 0, "projectiles.%s: homing needs positive agility", name)
	}
	for name, e := range c.Enemies {
		check(e.HitPoints > 0, "enemies.%s.hit_points must be positive", name)
		check(e.Damage >= 0, "enemies.%s.damage must not be negative", name)
		check(dampingOK(e.Damping), "enemies.%s.damping must be in (0, 1]", name)
		if e.Weapon != "" {
			_, ok := c.Weapons[e.Weapon]
			check(ok, "enemies.%s: unknown weapon %q", name, e.Weapon)
		}
	}
	for i, p := range c.Populations {
		_, ok := c.Enemies[p.Enemy]
		check(ok, "populations[%d]: unknown enemy %q", i, p.Enemy)
		check(p.Count >= 0, "populations[%d].count must not be negative", i)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func dampingOK(d float64) bool {
	return d > 0 && d <= 1 && !math.IsNaN(d)
}
