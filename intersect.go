package fea

import (
	"math"

	"github.com/soypat/fea/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Quad is the planar region a member spans, given by its four corners.
// The unrotated member runs from side A (InnerA to OuterA) to side B
// (InnerB to OuterB). Rotated far enough it meets the inner end
// (InnerA to InnerB) or the outer end (OuterA to OuterB) instead.
//
// A rib uses the trailing and leading edges as sides and the root and tip
// chords as ends. A spar swaps the roles.
type Quad struct {
	InnerA, InnerB r3.Vec
	OuterA, OuterB r3.Vec
}

type segment struct{ p0, p1 r3.Vec }

func (s segment) dir() r3.Vec { return r3.Sub(s.p1, s.p0) }

func (q Quad) sideA() segment { return segment{q.InnerA, q.OuterA} }
func (q Quad) sideB() segment { return segment{q.InnerB, q.OuterB} }
func (q Quad) inner() segment { return segment{q.InnerA, q.InnerB} }
func (q Quad) outer() segment { return segment{q.OuterA, q.OuterB} }

// Normal returns the unit normal of the region: side A crossed with the
// inner end, or with the outer end when the inner end has collapsed.
func (q Quad) Normal() r3.Vec {
	a := q.sideA().dir()
	e := q.inner().dir()
	if r3.Norm(e) <= flteps*math.Max(1, r3.Norm(a)) {
		e = q.outer().dir()
	}
	n := r3.Cross(a, e)
	if r3.Norm(n) <= flteps {
		// Collapsed side A as well, fall back to side B.
		n = r3.Cross(q.sideB().dir(), e)
	}
	return d3.UnitOr(n)
}

// lineHit returns the distance from c along unit direction d to the line
// through s. The distance is the perpendicular distance to the line (cross
// product magnitude over edge length) divided by the sine of the angle
// between d and the line. ok is false for degenerate edges or near
// parallel directions.
func lineHit(c, d r3.Vec, s segment) (float64, bool) {
	e := s.dir()
	el := r3.Norm(e)
	if el < flteps {
		return 0, false
	}
	perp := r3.Norm(r3.Cross(e, r3.Sub(c, s.p0))) / el
	sin := math.Abs(math.Sin(d3.Angle(d, e)))
	if sin < sinTol {
		return 0, false
	}
	return perp / sin, true
}

// segmentHit returns the distance from c along d to the segment s, with
// both projected on the plane of normal n. ok is false when the ray misses
// the segment or runs parallel to it.
func segmentHit(c, d, n r3.Vec, s segment) (float64, bool) {
	e := s.dir()
	den := r3.Dot(r3.Cross(d, e), n)
	if math.Abs(den) < sinTol*r3.Norm(e) {
		return 0, false
	}
	cp := r3.Sub(s.p0, c)
	t := r3.Dot(r3.Cross(cp, e), n) / den
	k := r3.Dot(r3.Cross(cp, d), n) / den
	const tol = 1e-9
	if t <= flteps || k < -tol || k > 1+tol {
		return 0, false
	}
	return t, true
}

// rayLength returns how far the ray from c, initially along d0 and rotated
// by theta about n, travels before meeting the boundary. side is the edge
// met at theta=0; its p0 corner belongs to the inner end and p1 to the
// outer end. opposite is the other side edge.
func rayLength(c, d0, n r3.Vec, theta float64, side, opposite, inner, outer segment, ref float64) float64 {
	d := r3.Rotate(d0, theta, n)
	l := cornerLength(c, d0, d, n, theta, side, inner, outer)
	if l < 0 {
		return ref
	}
	// Swept or tapered regions can be left through any edge before the
	// one chosen by the corner thresholds.
	for _, e := range [...]segment{side, opposite, inner, outer} {
		if t, ok := segmentHit(c, d, n, e); ok && t < l {
			l = t
		}
	}
	return l
}

// cornerLength picks the edge met by the rotated ray d from the angles of
// the corners of side and returns the distance to its line. It returns -1
// for degenerate configurations.
func cornerLength(c, d0, d, n r3.Vec, theta float64, side, inner, outer segment) float64 {
	// Threshold angles at which the ray sweeps past either corner of its side.
	maxAngleInner := d3.SignedAngle(d0, r3.Sub(side.p0, c), n)
	maxAngleOuter := d3.SignedAngle(d0, r3.Sub(side.p1, c), n)

	var end *segment
	switch {
	case theta > 0 && maxAngleInner > 0 && theta > maxAngleInner:
		end = &inner
	case theta > 0 && maxAngleOuter > 0 && theta > maxAngleOuter:
		end = &outer
	case theta < 0 && maxAngleInner < 0 && theta < maxAngleInner:
		end = &inner
	case theta < 0 && maxAngleOuter < 0 && theta < maxAngleOuter:
		end = &outer
	}
	if end != nil {
		l, ok := lineHit(c, d, *end)
		if !ok {
			return -1
		}
		return l
	}
	// Law of sines in the triangle formed by c, the unrotated hit and the
	// rotated hit on the side edge.
	l0, ok := lineHit(c, d0, side)
	if !ok {
		return -1
	}
	sweep := d3.SignedAngle(d0, side.dir(), n)
	total := math.Sin(sweep - theta)
	if math.Abs(total) < sinTol {
		return -1
	}
	return math.Abs(l0 * math.Sin(sweep) / total)
}

// ComputeHalfLengths returns the distances from center to the boundary of
// q along the member axis rotated by theta radians about the region
// normal. la is measured toward side A (along axis), lb toward side B.
// Degenerate configurations return ref, which callers pass oversized so the
// member always spans the region.
func ComputeHalfLengths(center, axis r3.Vec, theta float64, q Quad, ref float64) (la, lb float64) {
	n := q.Normal()
	if n == (r3.Vec{}) {
		return ref, ref
	}
	d0 := d3.UnitOr(axis)
	if d0 == (r3.Vec{}) {
		return ref, ref
	}
	la = rayLength(center, d0, n, theta, q.sideA(), q.sideB(), q.inner(), q.outer(), ref)
	lb = rayLength(center, r3.Scale(-1, d0), n, theta, q.sideB(), q.sideA(), q.inner(), q.outer(), ref)
	return la, lb
}

// MemberEnds returns the end points of a member of half lengths la and lb
// whose axis is rotated by theta about the region normal. Both ends are
// pushed out by expan.
func MemberEnds(center, axis r3.Vec, theta float64, q Quad, la, lb, expan float64) (endA, endB r3.Vec) {
	n := q.Normal()
	d := d3.UnitOr(axis)
	if n != (r3.Vec{}) {
		d = r3.Rotate(d, theta, n)
	}
	endA = r3.Add(center, r3.Scale(la+expan, d))
	endB = r3.Sub(center, r3.Scale(lb+expan, d))
	return endA, endB
}
