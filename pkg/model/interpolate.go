package model

import "math"

const parallelEps = 1e-6

// Slerp interpolates spherically between v and to.
// Both vectors are treated as directions, the magnitude is interpolated
// linearly. Degenerate cases (zero length, (anti)parallel) fall back to Lerp.
func (v Vec3) Slerp(to Vec3, t float64) Vec3 {
	la, lb := v.Len(), to.Len()
	if la < parallelEps || lb < parallelEps {
		return v.Lerp(to, t)
	}
	dot := clamp(v.Dot(to)/(la*lb), -1, 1)
	if 1-math.Abs(dot) < parallelEps {
		return v.Lerp(to, t)
	}
	theta := math.Acos(dot) * t
	ua := v.Scale(1 / la)
	ub := to.Scale(1 / lb)
	rel := ub.Sub(ua.Scale(dot))
	rel = rel.Scale(1 / rel.Len())
	dir := ua.Scale(math.Cos(theta)).Add(rel.Scale(math.Sin(theta)))
	return dir.Scale(la + (lb-la)*t)
}

// Slerp interpolates along the shortest arc between q and to.
func (q Quat) Slerp(to Quat, t float64) Quat {
	a, b := q.Normalize(), to.Normalize()
	dot := a.Dot(b)
	if dot < 0 {
		b = b.Scale(-1)
		dot = -dot
	}
	if dot > 1-parallelEps {
		// nearly identical, nlerp is precise enough
		return a.Add(b.Add(a.Scale(-1)).Scale(t)).Normalize()
	}
	theta0 := math.Acos(clamp(dot, -1, 1))
	theta := theta0 * t
	s0 := math.Cos(theta) - dot*math.Sin(theta)/math.Sin(theta0)
	s1 := math.Sin(theta) / math.Sin(theta0)
	return a.Scale(s0).Add(b.Scale(s1)).Normalize()
}

// Interpolate blends two poses, t is expected in [0,1).
func Interpolate(from, to Pose, t float64) Pose {
	return Pose{
		Position: from.Position.Slerp(to.Position, t),
		Rotation: from.Rotation.Slerp(to.Rotation, t),
	}
}

func clamp(val, low, high float64) float64 {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}
