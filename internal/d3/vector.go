// Package d3 holds the affine transforms, boxes and vector helpers used on
// top of gonum's r3.
package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Elem returns the vector with all components equal to k.
func Elem(k float64) r3.Vec { return r3.Vec{X: k, Y: k, Z: k} }

// EqualWithin reports whether every component of a and b differs by at most tol.
func EqualWithin(a, b r3.Vec, tol float64) bool {
	d := r3.Sub(a, b)
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
}

func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// Max returns the largest component of a.
func Max(a r3.Vec) float64 { return math.Max(a.X, math.Max(a.Y, a.Z)) }

// Min returns the smallest component of a.
func Min(a r3.Vec) float64 { return math.Min(a.X, math.Min(a.Y, a.Z)) }

// Mid returns the midpoint between a and b.
func Mid(a, b r3.Vec) r3.Vec { return r3.Scale(0.5, r3.Add(a, b)) }

// Dist returns the euclidean distance between a and b.
func Dist(a, b r3.Vec) float64 { return r3.Norm(r3.Sub(a, b)) }

// UnitOr returns a scaled to unit length, or the zero vector when a has
// no length. r3.Unit yields NaNs there.
func UnitOr(a r3.Vec) r3.Vec {
	n := r3.Norm(a)
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, a)
}

// SignedAngle returns the angle in (-π, π] that rotates a onto b about n
// following the right hand rule.
func SignedAngle(a, b, n r3.Vec) float64 {
	return math.Atan2(r3.Dot(r3.Cross(a, b), r3.Unit(n)), r3.Dot(a, b))
}

// Angle returns the unsigned angle between a and b in [0, π].
func Angle(a, b r3.Vec) float64 {
	return math.Atan2(r3.Norm(r3.Cross(a, b)), r3.Dot(a, b))
}

// SegmentDist returns the distance from p to the segment ab.
func SegmentDist(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	l2 := r3.Norm2(ab)
	if l2 == 0 {
		return Dist(p, a)
	}
	t := math.Max(0, math.Min(1, r3.Dot(r3.Sub(p, a), ab)/l2))
	return Dist(p, r3.Add(a, r3.Scale(t, ab)))
}

// PlaneDist returns the signed distance from p to the plane through o with normal n.
func PlaneDist(p, o, n r3.Vec) float64 {
	return r3.Dot(r3.Sub(p, o), r3.Unit(n))
}

// Set is a point cloud.
type Set []r3.Vec

// Bounds returns the bounding box of the set, the zero box when empty.
func (s Set) Bounds() Box {
	if len(s) == 0 {
		return Box{}
	}
	b := Box{Min: s[0], Max: s[0]}
	for _, v := range s[1:] {
		b = b.Include(v)
	}
	return b
}
