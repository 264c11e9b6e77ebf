package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 and Quat are the simulation's vector and rotation types.
type (
	Vec3 = mgl64.Vec3
	Quat = mgl64.Quat
)

// Axis constants. Ships fly along +X; meshes are authored facing +Z.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// SnapEpsilon is the remaining angle (radians) below which steering snaps
// straight onto the desired heading.
const SnapEpsilon = 0.001

func Identity() Quat { return mgl64.QuatIdent() }

// RotationZ rotates by angle radians around +Z.
func RotationZ(angle float64) Quat { return mgl64.QuatRotate(angle, AxisZ) }

// RotationY rotates by angle radians around +Y.
func RotationY(angle float64) Quat { return mgl64.QuatRotate(angle, AxisY) }

// Normalize returns the unit vector of v, or false when v has no length.
func Normalize(v Vec3) (Vec3, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Distance computes Euclidean distance between two points.
func Distance(a, b Vec3) float64 { return b.Sub(a).Len() }

// AngleBetween returns the angle in radians between two non-zero vectors.
func AngleBetween(a, b Vec3) float64 {
	na, ok := Normalize(a)
	if !ok {
		return 0
	}
	nb, ok := Normalize(b)
	if !ok {
		return 0
	}
	return math.Acos(mgl64.Clamp(na.Dot(nb), -1, 1))
}

// RotateTowards turns the unit heading current toward desired by at most
// maxStep radians. When the angle left after the step is below SnapEpsilon
// the desired heading is returned exactly.
func RotateTowards(current, desired Vec3, maxStep float64) Vec3 {
	want, ok := Normalize(desired)
	if !ok {
		return current
	}
	cur, ok := Normalize(current)
	if !ok {
		return want
	}
	angle := math.Acos(mgl64.Clamp(cur.Dot(want), -1, 1))
	if angle < SnapEpsilon {
		return want
	}
	step := math.Min(maxStep, angle)
	if angle-step < SnapEpsilon {
		return want
	}
	axis, ok := Normalize(cur.Cross(want))
	if !ok {
		// antiparallel: any perpendicular axis works
		axis, ok = Normalize(cur.Cross(AxisZ))
		if !ok {
			axis = AxisY
		}
	}
	turned, _ := Normalize(mgl64.QuatRotate(step, axis).Rotate(cur))
	return turned
}

// LookRotation maps the mesh forward axis (+Z) onto dir.
func LookRotation(dir Vec3) Quat {
	n, ok := Normalize(dir)
	if !ok {
		return Identity()
	}
	return mgl64.QuatBetweenVectors(AxisZ, n)
}
