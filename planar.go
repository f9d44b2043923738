package fea

import (
	"math"

	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// expansion returns the oversize added to members so they fully penetrate
// the parent: the largest box dimension times 1e-5, at least 1e-6.
func expansion(b d3.Box) float64 {
	return math.Max(b.Largest()*1e-5, 1e-6)
}

// memberHeight returns how far a member extends out of its nominal plane.
func memberHeight(b d3.Box) float64 {
	return 0.5*b.Smallest() + expansion(b)
}

// planarMember builds the quad through endA and endB extruded by h along z.
// A,B sit at endA and C,D at endB.
func planarMember(endA, endB, z r3.Vec, h float64) *surf.Net {
	hz := r3.Scale(h, z)
	return surf.MakePlane(
		r3.Add(endA, hz), r3.Sub(endA, hz),
		r3.Add(endB, hz), r3.Sub(endB, hz),
	)
}

// matchFlip flips s when its normal-flip flag disagrees with parentFlip.
func matchFlip(s surf.Surface, parentFlip bool) surf.Surface {
	if s.FlipNormal() != parentFlip {
		return s.Flip()
	}
	return s
}

// orientTransform rotates about center by rx, ry and rz radians about the
// x, y and z axes, applied in that order.
func orientTransform(center r3.Vec, rx, ry, rz float64) d3.Transform {
	toOrigin := d3.Translation(r3.Scale(-1, center))
	back := d3.Translation(center)
	return back.
		Mul(d3.Rotation(rz, r3.Vec{Z: 1})).
		Mul(d3.Rotation(ry, r3.Vec{Y: 1})).
		Mul(d3.Rotation(rx, r3.Vec{X: 1})).
		Mul(toOrigin)
}

// Orient applies the slice orientation sequence to s: rotations about
// center in x, y, z order, then model when non-nil.
func Orient(s surf.Surface, center r3.Vec, rx, ry, rz float64, model *d3.Transform) surf.Surface {
	t := orientTransform(center, rx, ry, rz)
	if model != nil {
		t = model.Mul(t)
	}
	return s.Transform(t)
}

// thickness returns the unit thickness direction of a wing section at u:
// upper surface minus lower surface at mid chord. It falls back to n on
// flat sections.
func thickness(s surf.Surface, u float64, n r3.Vec) r3.Vec {
	_, wmax := s.ParamMax()
	z := d3.UnitOr(r3.Sub(s.Evaluate(u, 0.75*wmax), s.Evaluate(u, 0.25*wmax)))
	if z == (r3.Vec{}) {
		return n
	}
	if r3.Dot(z, n) < 0 {
		// Keep the extrusion on the same side as the region normal.
		return r3.Scale(-1, z)
	}
	return z
}
