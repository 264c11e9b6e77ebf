package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the stock arcade tuning: a cannon and a rocket launcher
// on the ship, five drones and five target cubes on the right.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Encoding: "console"},
		Sim: SimConfig{
			Hz:                    60,
			Seed:                  "strike",
			Collision:             CollisionDistance,
			ParallelScanThreshold: 256,
			ParallelChunks:        4,
		},
		Bounds: BoundsConfig{
			ProjectileLimit: 50,
			EnemyMinX:       -5,
			SpawnX:          3,
			SpawnMinY:       -2,
			SpawnMaxY:       2,
		},
		Ship: ShipConfig{
			HitPoints: 100,
			Damage:    0,
			Hitbox:    0.15,
			Thrust:    4,
			TurnRate:  2,
			Damping:   0.95,
			Loadout:   []string{"cannon", "rocket_launcher"},
		},
		Weapons: map[string]WeaponConfig{
			"cannon": {
				Cooldown:       0.5,
				Projectile:     "cannon_ball",
				Mesh:           "cannon",
				PositionOffset: Vector{0, -0.1, 0},
				SpawnOffset:    Vector{0.5, 0, 0},
				SpawnSpeed:     Vector{10, 0, 0},
			},
			"rocket_launcher": {
				Cooldown:    1.5,
				Projectile:  "rocket",
				SpawnOffset: Vector{0.3, 0, 0},
				SpawnSpeed:  Vector{2, 0, 0},
			},
			"drone_blaster": {
				Cooldown:    3,
				Projectile:  "cannon_ball",
				SpawnOffset: Vector{0.3, 0, 0},
				SpawnSpeed:  Vector{4, 0, 0},
				Rotation:    Vector{0, 0, 180},
			},
		},
		Projectiles: map[string]ProjectileConfig{
			"cannon_ball": {
				Damage:    10,
				HitPoints: 1,
				Hitbox:    0.03,
				Damping:   1,
			},
			"rocket": {
				Damage:          25,
				HitPoints:       1,
				Hitbox:          0.05,
				Acceleration:    5,
				Agility:         0.5,
				Homing:          true,
				ActivationDelay: 1,
				Damping:         0.99,
				MeshRotation:    Vector{0, 180, 0},
			},
		},
		Enemies: map[string]EnemyConfig{
			"drone": {
				Damage:    20,
				HitPoints: 20,
				Hitbox:    0.25,
				Score:     100,
				Velocity:  Vector{-0.2, 0, 0},
				Damping:   1,
			},
			"target": {
				Damage:    0,
				HitPoints: 100,
				Hitbox:    0.25,
				Score:     50,
				Damping:   1,
			},
		},
		Populations: []PopulationConfig{
			{
				Enemy: "drone",
				Count: 5,
				Positions: []Vector{
					{3, 0, 0}, {3, 2, 0}, {3, -2, 0}, {3, 1, 0}, {3, -1, 0},
				},
			},
		},
	}
}

// LoadYAML decodes YAML over the defaults and validates the result.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a YAML file. An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		c := Default()
		return c, c.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	c, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
