package mathx

// IVec3 is an integer 3D vector. Division truncates toward zero.
type IVec3 struct {
	X int
	Y int
	Z int
}

var IVec3Zero = IVec3{}

func NewIVec3(x, y, z int) IVec3 { return IVec3{X: x, Y: y, Z: z} }

func SplatIVec3(v int) IVec3 { return IVec3{X: v, Y: v, Z: v} }

func (v IVec3) Add(o IVec3) IVec3 { return IVec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v IVec3) Sub(o IVec3) IVec3 { return IVec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v IVec3) Neg() IVec3        { return IVec3{-v.X, -v.Y, -v.Z} }

// Mul multiplies component-wise.
func (v IVec3) Mul(o IVec3) IVec3 { return IVec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

func (v IVec3) DivScalar(s int) IVec3 { return IVec3{v.X / s, v.Y / s, v.Z / s} }

func (v IVec3) Min(o IVec3) IVec3 {
	return IVec3{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)}
}

func (v IVec3) Max(o IVec3) IVec3 {
	return IVec3{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)}
}

// AllGE reports whether every component of v is >= the matching one of o.
func (v IVec3) AllGE(o IVec3) bool { return v.X >= o.X && v.Y >= o.Y && v.Z >= o.Z }

// AllLE reports whether every component of v is <= the matching one of o.
func (v IVec3) AllLE(o IVec3) bool { return v.X <= o.X && v.Y <= o.Y && v.Z <= o.Z }

func (v IVec3) AsVec3() Vec3 { return Vec3{float64(v.X), float64(v.Y), float64(v.Z)} }

func (v IVec3) Array() [3]int { return [3]int{v.X, v.Y, v.Z} }

func IVec3FromArray(a [3]int) IVec3 { return IVec3{a[0], a[1], a[2]} }
