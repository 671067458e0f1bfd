package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	WorldRight   = mgl64.Vec3{1, 0, 0}
	// cameras look down -Z
	WorldForward = mgl64.Vec3{0, 0, -1}
)

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SameSign reports whether a and b share a sign bit. Zero counts as
// positive.
func SameSign(a, b float64) bool {
	return math.Signbit(a) == math.Signbit(b)
}

// EulerXYZ decomposes q into rotations about X, Y and Z (radians) such that
// q = Rz * Ry * Rx. Near the Y singularity X absorbs the Z term and Z is 0.
func EulerXYZ(q mgl64.Quat) (x, y, z float64) {
	m := q.Normalize().Mat4()
	const eps = 1e-9
	if s := m.At(2, 0); math.Abs(s) < 1-eps {
		x = math.Atan2(m.At(2, 1), m.At(2, 2))
		y = -math.Asin(s)
		z = math.Atan2(m.At(1, 0), m.At(0, 0))
		return x, y, z
	} else if s < 0 {
		return math.Atan2(m.At(0, 1), m.At(0, 2)), math.Pi / 2, 0
	}
	return math.Atan2(-m.At(0, 1), -m.At(0, 2)), -math.Pi / 2, 0
}

// AngleBetween returns the angle between a and b in radians. Zero vectors
// yield pi/2.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return math.Pi / 2
	}
	return math.Acos(Clamp(a.Dot(b)/(la*lb), -1, 1))
}
