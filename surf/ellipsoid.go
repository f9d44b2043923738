package surf

import (
	"math"

	"github.com/soypat/fea/internal/d2"
	"github.com/soypat/fea/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// HalfEllipsoid is the image of the unit half sphere x >= 0 under an affine
// transform. u ∈ [0,1] runs from the pole at +x to the rim, w ∈ [0,4]
// revolves one full turn about the x axis.
type HalfEllipsoid struct {
	m    d3.Transform
	flip bool
}

var _ Surface = (*HalfEllipsoid)(nil)

const (
	halfEllipsoidUMax = 1
	halfEllipsoidWMax = 4
)

// NewHalfEllipsoid returns the half sphere transformed by m.
func NewHalfEllipsoid(m d3.Transform) *HalfEllipsoid {
	return &HalfEllipsoid{m: m}
}

func unitHalfSphere(u, w float64) r3.Vec {
	u = math.Max(0, math.Min(halfEllipsoidUMax, u))
	w = math.Max(0, math.Min(halfEllipsoidWMax, w))
	st, ct := math.Sincos(u * math.Pi / 2)
	sp, cp := math.Sincos(w * math.Pi / 2)
	return r3.Vec{X: ct, Y: st * cp, Z: st * sp}
}

func (h *HalfEllipsoid) Evaluate(u, w float64) r3.Vec {
	return h.m.Transform(unitHalfSphere(u, w))
}

func (h *HalfEllipsoid) Normal(u, w float64) r3.Vec {
	// The parametric orientation of the unit half sphere points outward.
	// A mirroring transform reverses it.
	n := d3.UnitOr(h.m.ApplyNormal(unitHalfSphere(u, w)))
	n = r3.Scale(h.m.Orientation(), n)
	if h.flip {
		return r3.Scale(-1, n)
	}
	return n
}

func (h *HalfEllipsoid) samples(nu, nw int) d3.Set {
	var set d3.Set
	for i := 0; i <= nu; i++ {
		for j := 0; j <= nw; j++ {
			u := halfEllipsoidUMax * float64(i) / float64(nu)
			w := halfEllipsoidWMax * float64(j) / float64(nw)
			set = append(set, h.Evaluate(u, w))
		}
	}
	return set
}

func (h *HalfEllipsoid) Bounds() d3.Box { return h.samples(16, 64).Bounds() }

func (h *HalfEllipsoid) ParamMax() (umax, wmax float64) {
	return halfEllipsoidUMax, halfEllipsoidWMax
}

func (h *HalfEllipsoid) Closed() (u, w bool) { return false, true }

func (h *HalfEllipsoid) FlipNormal() bool { return h.flip }

func (h *HalfEllipsoid) Flip() Surface {
	return &HalfEllipsoid{m: h.m, flip: !h.flip}
}

func (h *HalfEllipsoid) Transform(t d3.Transform) Surface {
	return &HalfEllipsoid{m: t.Mul(h.m), flip: h.flip}
}

// Split returns one patch per quarter revolution. Patch points are
// sampled on the surface.
func (h *HalfEllipsoid) Split() []Patch {
	patches := make([]Patch, halfEllipsoidWMax)
	for j := range patches {
		var pts d3.Set
		for a := 0; a <= 2; a++ {
			for b := 0; b <= 2; b++ {
				pts = append(pts, h.Evaluate(float64(a)/2, float64(j)+float64(b)/2))
			}
		}
		patches[j] = Patch{
			Domain: d2.Box{Min: r2.Vec{X: 0, Y: float64(j)}, Max: r2.Vec{X: halfEllipsoidUMax, Y: float64(j + 1)}},
			Points: pts,
		}
	}
	return patches
}
