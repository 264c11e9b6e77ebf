package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.InDelta(t, 1.0/60, c.FrameDelta(), 1e-12)
	assert.Equal(t, c.SeedValue(), Default().SeedValue(), "seed hashing is deterministic")
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(`
sim:
  hz: 30
  seed: other
  collision: contact
weapons:
  cannon:
    cooldown: 0.25
    projectile: cannon_ball
`))
	require.NoError(t, err)
	assert.Equal(t, 30.0, c.Sim.Hz)
	assert.Equal(t, CollisionContact, c.Sim.Collision)
	assert.Equal(t, 0.25, c.Weapons["cannon"].Cooldown)
	assert.Contains(t, c.Weapons, "rocket_launcher", "untouched defaults survive")
	assert.NotEqual(t, Default().SeedValue(), c.SeedValue())
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("sim:\n  warp: 9\n"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	c := Default()
	c.Sim.Collision = "raycast"
	c.Ship.Loadout = append(c.Ship.Loadout, "laser")
	c.Enemies["drone"] = EnemyConfig{HitPoints: 0, Damping: 2}

	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	msg := err.Error()
	assert.Contains(t, msg, "sim.collision")
	assert.Contains(t, msg, `unknown weapon "laser"`)
	assert.Contains(t, msg, "enemies.drone.hit_points")
	assert.Contains(t, msg, "enemies.drone.damping")
}

func TestLoadShippedConfig(t *testing.T) {
	path := filepath.Join("..", "..", "configs", "strike.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Skip("shipped config not found")
	}
	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Populations, 2)
	assert.Equal(t, "drone_blaster", c.Enemies["drone"].Weapon)
}

func TestVectorQuat(t *testing.T) {
	q := Vector{0, 0, 180}.Quat()
	v := q.Rotate(Vector{1, 0, 0}.Vec())
	assert.InDelta(t, -1, v.X(), 1e-9)
	assert.InDelta(t, 0, v.Y(), 1e-9)
}
