// Package geom builds simple parent shapes for structures: lofted wings
// with optional end caps and mirror symmetry, and bodies lofted through
// elliptical cross sections.
package geom

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/soypat/fea"
	"github.com/soypat/fea/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func tracer() tracing.Trace {
	return tracing.Select("fea.geom")
}

// XSec is an elliptical cross section of a body. Locations are fractions
// of the body reference length, rotations are in degrees.
type XSec struct {
	Width, Height    float64
	XLoc, YLoc, ZLoc float64
	RotX, RotY, RotZ float64
	// Spin rotates the start of the section curve. It is not implemented
	// and only produces a diagnostic when nonzero.
	Spin float64
}

// Transform returns the placement of the section for reference length ref.
func (xs *XSec) Transform(ref float64) d3.Transform {
	xs.RotX = fea.Clamp(xs.RotX, -180, 180)
	xs.RotY = fea.Clamp(xs.RotY, -180, 180)
	xs.RotZ = fea.Clamp(xs.RotZ, -180, 180)
	return d3.Translation(r3.Scale(ref, r3.Vec{X: xs.XLoc, Y: xs.YLoc, Z: xs.ZLoc})).
		Mul(d3.Rotation(fea.DtoR(xs.RotZ), r3.Vec{Z: 1})).
		Mul(d3.Rotation(fea.DtoR(xs.RotY), r3.Vec{Y: 1})).
		Mul(d3.Rotation(fea.DtoR(xs.RotX), r3.Vec{X: 1}))
}

// Curve returns n+1 points around the section, starting and ending at its bottom.
func (xs *XSec) Curve(ref float64, n int) []r3.Vec {
	if xs.Spin != 0 {
		tracer().Errorf("xsec spin not implemented")
	}
	if n < 3 {
		n = 3
	}
	t := xs.Transform(ref)
	pts := make([]r3.Vec, n+1)
	for j := 0; j < n; j++ {
		a := 2 * math.Pi * float64(j) / float64(n)
		pts[j] = t.Transform(r3.Vec{Y: 0.5 * xs.Width * math.Sin(a), Z: -0.5 * xs.Height * math.Cos(a)})
	}
	pts[n] = pts[0]
	return pts
}
