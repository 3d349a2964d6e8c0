package world

import "mazebots.ai/internal/sim/mathx"

// LinearMover pushes a body toward a target against velocity-proportional
// friction.
type LinearMover struct {
	Acceleration   float64
	Friction       float64
	Mass           float64
	ArriveDistance float64
	Velocity       mathx.Vec3
}

func newLinearMover(cfg MoverConfig) LinearMover {
	return LinearMover{
		Acceleration:   cfg.Acceleration,
		Friction:       cfg.Friction,
		Mass:           cfg.Mass,
		ArriveDistance: cfg.ArriveDistance,
	}
}

// Step integrates one tick of length dt and returns the new position. On
// arrival the body snaps to target and stops. A step that would carry it past
// the target also counts as arrival.
func (m *LinearMover) Step(pos, target mathx.Vec3, dt float64) (mathx.Vec3, bool) {
	to := target.Sub(pos)
	dist := to.Length()
	if dist < m.ArriveDistance {
		m.Velocity = mathx.Vec3Zero
		return target, true
	}

	dir := to.Scale(1 / dist)
	force := dir.Scale(m.Acceleration).Sub(m.Velocity.Scale(m.Friction))
	m.Velocity = m.Velocity.Add(force.Scale(dt / m.Mass))

	delta := m.Velocity.Scale(dt)
	if delta.Dot(dir) >= dist {
		m.Velocity = mathx.Vec3Zero
		return target, true
	}
	next := pos.Add(delta)
	if target.Sub(next).Length() < m.ArriveDistance {
		m.Velocity = mathx.Vec3Zero
		return target, true
	}
	return next, false
}
