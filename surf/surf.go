// Package surf implements the parametric surface facade consumed by the
// structural part engine: bilinear control nets, half ellipsoid caps,
// planar quads and the arc-length spine of a body of revolution.
package surf

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/soypat/fea/internal/d2"
	"github.com/soypat/fea/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func tracer() tracing.Trace {
	return tracing.Select("fea.surf")
}

// Surface is a parametric surface evaluable over [0,Umax]×[0,Wmax].
// Surfaces are values: Transform and Flip return new surfaces and never
// modify the receiver.
type Surface interface {
	// Evaluate returns the point at parameters (u,w). Parameters are clamped to the domain.
	Evaluate(u, w float64) r3.Vec
	// Normal returns the unit normal at (u,w), taking FlipNormal into account.
	Normal(u, w float64) r3.Vec
	// Bounds returns the axis aligned bounding box of the surface.
	Bounds() d3.Box
	// ParamMax returns the maximum u and w parameters.
	ParamMax() (umax, wmax float64)
	// Closed reports whether the surface is periodic in u and w.
	Closed() (u, w bool)
	// FlipNormal reports whether the normal is inverted with respect to
	// the parametric orientation.
	FlipNormal() bool
	// Flip returns the surface with the normal-flip flag toggled.
	Flip() Surface
	// Transform returns the surface with t applied. The flip flag is kept.
	Transform(t d3.Transform) Surface
	// Split divides the surface into patches along its parametric knots.
	Split() []Patch
}

// Patch is a sub-surface produced by Split.
type Patch struct {
	// Domain is the parametric domain of the patch in its parent surface.
	Domain d2.Box
	// Points are the patch control points.
	Points d3.Set
}

// LessThanY reports whether every control point of the patch has y <= val.
func (p Patch) LessThanY(val float64) bool {
	for _, v := range p.Points {
		if v.Y > val {
			return false
		}
	}
	return true
}

// PlaneAtYZero reports whether every control point lies within tol of the y=0 plane.
func (p Patch) PlaneAtYZero(tol float64) bool {
	for _, v := range p.Points {
		if v.Y > tol || v.Y < -tol {
			return false
		}
	}
	return true
}

// Param maps normalized coordinates in [0,1]² to the surface domain.
func Param(s Surface, u01, w01 float64) (u, w float64) {
	umax, wmax := s.ParamMax()
	return u01 * umax, w01 * wmax
}

// Evaluate01 evaluates s at normalized coordinates.
func Evaluate01(s Surface, u01, w01 float64) r3.Vec {
	return s.Evaluate(Param(s, u01, w01))
}

// Mesh tessellates the surface into an nu×nw grid of quads split in two triangles each.
// Triangles are wound so their normals follow s.Normal.
func Mesh(s Surface, nu, nw int) []r3.Triangle {
	if nu < 1 {
		nu = 1
	}
	if nw < 1 {
		nw = 1
	}
	umax, wmax := s.ParamMax()
	grid := make([][]r3.Vec, nu+1)
	for i := range grid {
		grid[i] = make([]r3.Vec, nw+1)
		u := umax * float64(i) / float64(nu)
		for j := range grid[i] {
			grid[i][j] = s.Evaluate(u, wmax*float64(j)/float64(nw))
		}
	}
	flip := s.FlipNormal()
	tris := make([]r3.Triangle, 0, 2*nu*nw)
	for i := 0; i < nu; i++ {
		for j := 0; j < nw; j++ {
			a, b, c, d := grid[i][j], grid[i+1][j], grid[i+1][j+1], grid[i][j+1]
			t1 := r3.Triangle{a, b, c}
			t2 := r3.Triangle{a, c, d}
			if flip {
				t1[1], t1[2] = t1[2], t1[1]
				t2[1], t2[2] = t2[2], t2[1]
			}
			if !t1.IsDegenerate(1e-12) {
				tris = append(tris, t1)
			}
			if !t2.IsDegenerate(1e-12) {
				tris = append(tris, t2)
			}
		}
	}
	return tris
}
