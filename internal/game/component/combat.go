package component

import "fmt"

// Team partitions combatants; same-team pairs never exchange damage.
type Team uint8

const (
	TeamPlayer Team = 1 // ship and projectiles fired by the ship
	TeamEnemy  Team = 2 // drones, targets and their projectiles
)

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("team(%d)", uint8(t))
	}
}

// Opposes reports whether t and other exchange damage on contact.
func (t Team) Opposes(other Team) bool {
	return t != other
}

// Collidable makes an entity a combat participant.
type Collidable struct {
	// Hitbox is the contact radius used by the distance strategy.
	Hitbox       float64
	Damage       float64
	MaxHitPoints float64
	HitPoints    float64
	Team         Team
}

// NewCollidable starts at full health.
func NewCollidable(hitbox, damage, maxHitPoints float64, team Team) Collidable {
	return Collidable{
		Hitbox:       hitbox,
		Damage:       damage,
		MaxHitPoints: maxHitPoints,
		HitPoints:    maxHitPoints,
		Team:         team,
	}
}

func (c *Collidable) Alive() bool {
	return c.HitPoints > 0
}

// TakeDamage subtracts damage and clamps at zero. Negative damage is ignored
// so hit points never move upward.
func (c *Collidable) TakeDamage(damage float64) {
	if damage <= 0 {
		return
	}
	c.HitPoints -= damage
	if c.HitPoints < 0 {
		c.HitPoints = 0
	}
}

// HealthFraction is HitPoints/MaxHitPoints in [0, 1].
func (c *Collidable) HealthFraction() float64 {
	if c.MaxHitPoints <= 0 {
		return 0
	}
	f := c.HitPoints / c.MaxHitPoints
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
