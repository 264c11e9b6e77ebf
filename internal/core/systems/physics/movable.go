package physics

// Movable is velocity/acceleration state integrated once per frame.
type Movable struct {
	Velocity     Vec3
	Acceleration Vec3
	// Damping multiplies velocity every frame, in (0, 1].
	Damping float64
}

func NewMovable(velocity Vec3, damping float64) Movable {
	return Movable{Velocity: velocity, Damping: damping}
}

// Step advances velocity then position:
// v += a*dt, v *= damping, p += v*dt.
func (m *Movable) Step(position *Vec3, dt float64) {
	m.Velocity = m.Velocity.Add(m.Acceleration.Mul(dt))
	m.Velocity = m.Velocity.Mul(m.Damping)
	*position = position.Add(m.Velocity.Mul(dt))
}

// Push adds an instantaneous velocity change.
func (m *Movable) Push(dv Vec3) {
	m.Velocity = m.Velocity.Add(dv)
}
