package component

// Enemy marks a population-maintained kind that awards Score on death.
type Enemy struct {
	Kind  string
	Score uint64
}

// Persistent entities stay spawned at zero health (the player ship).
type Persistent struct{}

// Ship holds player ship handling and its weapon loadout.
type Ship struct {
	Thrust   float64
	TurnRate float64
	Loadout  []string
	// Slot is the 1-based loadout slot currently equipped, 0 for none.
	Slot int
}

// Bundle is a set of components spawned together as one entity.
type Bundle struct {
	Name       string
	Transform  *Transform
	Movable    *Movable
	Collidable *Collidable
	Weapon     *Weapon
	Projectile *Projectile
	Enemy      *Enemy
	Ship       *Ship
	Attachment *Attachment
	Persistent bool
	// Shapes overrides the default single sphere of radius Hitbox used in
	// contact mode.
	Shapes []Shape
}
