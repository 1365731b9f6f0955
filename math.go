package sinew

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Thresholds below which geometry is treated as degenerate.
const (
	lengthEpsilon   = 1e-9
	parallelEpsilon = 1e-9
)

func clampWeight(w float64) float64 {
	return mgl64.Clamp(w, 0, 1)
}

// slerpFromIdentity scales rotation q by w along the shortest arc.
func slerpFromIdentity(q mgl64.Quat, w float64) mgl64.Quat {
	w = clampWeight(w)
	if w == 0 {
		return mgl64.QuatIdent()
	}
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	if w == 1 {
		return q
	}
	return mgl64.QuatSlerp(mgl64.QuatIdent(), q, w).Normalize()
}

// rotationBetween returns the minimal rotation taking direction from onto
// direction to. Zero-length inputs and already aligned directions yield the
// identity; opposite directions turn half way around any perpendicular.
func rotationBetween(from, to mgl64.Vec3) mgl64.Quat {
	fl, tl := from.Len(), to.Len()
	if fl < lengthEpsilon || tl < lengthEpsilon {
		return mgl64.QuatIdent()
	}
	f := from.Mul(1 / fl)
	t := to.Mul(1 / tl)
	if f.Dot(t) >= 1-parallelEpsilon {
		return mgl64.QuatIdent()
	}
	axis := f.Cross(t)
	if axis.Len() < parallelEpsilon {
		return mgl64.QuatRotate(math.Pi, anyPerpendicular(f))
	}
	return mgl64.QuatRotate(angleBetween(f, t), axis.Normalize())
}

// projectOnPlane removes the component of v along the unit normal n.
func projectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// angleBetween returns the unsigned angle between two directions in radians.
func angleBetween(a, b mgl64.Vec3) float64 {
	if a.Len() < lengthEpsilon || b.Len() < lengthEpsilon {
		return 0
	}
	return math.Atan2(a.Cross(b).Len(), a.Dot(b))
}

// anyPerpendicular returns a unit vector orthogonal to v.
func anyPerpendicular(v mgl64.Vec3) mgl64.Vec3 {
	p := v.Cross(mgl64.Vec3{1, 0, 0})
	if p.Len() < 1e-6 {
		p = v.Cross(mgl64.Vec3{0, 1, 0})
	}
	return p.Normalize()
}

func quatNearIdentity(q mgl64.Quat, epsilon float64) bool {
	return math.Abs(math.Abs(q.W)-1) <= epsilon && q.V.Len() <= epsilon
}

func finiteVec(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func finiteDelta(d Delta) bool {
	return finiteVec(d.Translation) && finiteVec(d.Rotation.V) &&
		!math.IsNaN(d.Rotation.W) && !math.IsInf(d.Rotation.W, 0)
}
