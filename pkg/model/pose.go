package model

import "math"

// Vec3 is a position (or direction) in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quat is a rotation quaternion.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Pose is the placement of an entity at one instant.
// Poses are values, a recorded Pose is never changed afterwards.
type Pose struct {
	Position Vec3 `json:"position"`
	Rotation Quat `json:"rotation"`
}

func IdentityQuat() Quat {
	return Quat{W: 1}
}

func NewPose(pos Vec3, rot Quat) Pose {
	return Pose{Position: pos, Rotation: rot}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Lerp(to Vec3, t float64) Vec3 {
	return v.Add(to.Sub(v).Scale(t))
}

// ApproxEqual reports whether all components differ by less than eps
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) < eps &&
		math.Abs(v.Y-o.Y) < eps &&
		math.Abs(v.Z-o.Z) < eps
}

func (q Quat) Dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quat) Scale(f float64) Quat {
	return Quat{X: q.X * f, Y: q.Y * f, Z: q.Z * f, W: q.W * f}
}

func (q Quat) Add(o Quat) Quat {
	return Quat{X: q.X + o.X, Y: q.Y + o.Y, Z: q.Z + o.Z, W: q.W + o.W}
}

func (q Quat) Len() float64 {
	return math.Sqrt(q.Dot(q))
}

// Normalize returns the unit quaternion. The zero quaternion yields identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l < 1e-12 {
		return IdentityQuat()
	}
	return q.Scale(1 / l)
}

// ApproxEqual compares rotations, q and -q describe the same rotation.
func (q Quat) ApproxEqual(o Quat, eps float64) bool {
	return math.Abs(math.Abs(q.Normalize().Dot(o.Normalize()))-1) < eps
}

func (p Pose) ApproxEqual(o Pose, eps float64) bool {
	return p.Position.ApproxEqual(o.Position, eps) &&
		p.Rotation.ApproxEqual(o.Rotation, eps)
}
