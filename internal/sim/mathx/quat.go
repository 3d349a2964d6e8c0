package mathx

import "math"

// Quat is a unit rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

var QuatIdentity = Quat{W: 1}

func QuatFromRotationX(angle float64) Quat {
	s, c := math.Sincos(angle * 0.5)
	return Quat{X: s, W: c}
}

func QuatFromRotationY(angle float64) Quat {
	s, c := math.Sincos(angle * 0.5)
	return Quat{Y: s, W: c}
}

func QuatFromRotationZ(angle float64) Quat {
	s, c := math.Sincos(angle * 0.5)
	return Quat{Z: s, W: c}
}

// Mul composes q then r applied first (q * r).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// MulVec3 rotates v by q.
func (q Quat) MulVec3(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

func (q Quat) ApproxEqual(o Quat, eps float64) bool {
	return math.Abs(q.X-o.X) <= eps && math.Abs(q.Y-o.Y) <= eps &&
		math.Abs(q.Z-o.Z) <= eps && math.Abs(q.W-o.W) <= eps
}

func (q Quat) Array() [4]float64 { return [4]float64{q.X, q.Y, q.Z, q.W} }

// Transform places an object: rotate, then translate.
type Transform struct {
	Translation Vec3
	Rotation    Quat
}

func TransformFromTranslation(t Vec3) Transform {
	return Transform{Translation: t, Rotation: QuatIdentity}
}

func (t Transform) WithRotation(q Quat) Transform {
	t.Rotation = q
	return t
}

func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return t.Translation.ApproxEqual(o.Translation, eps) && t.Rotation.ApproxEqual(o.Rotation, eps)
}
