package fea

import (
	"math"

	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// DomeParams sizes and places a half ellipsoid bulkhead in body coordinates.
type DomeParams struct {
	// A, B and C are the semi axes along x, y and z.
	A float64 `xml:"Aradius"`
	B float64 `xml:"Bradius"`
	C float64 `xml:"Cradius"`
	X float64 `xml:"XLoc"`
	Y float64 `xml:"YLoc"`
	Z float64 `xml:"ZLoc"`
	// RotX, RotY and RotZ are in degrees, limited to [-180,180].
	RotX float64 `xml:"XRot"`
	RotY float64 `xml:"YRot"`
	RotZ float64 `xml:"ZRot"`
	// Flip points the dome toward -x.
	Flip bool `xml:"FlipDirectionFlag"`
}

func defaultDomeParams() DomeParams {
	return DomeParams{A: 1, B: 1, C: 1}
}

// Dome is a half ellipsoid bulkhead.
type Dome struct {
	partBase
	DomeParams
}

func (d *Dome) Kind() Kind { return KindDome }

func (d *Dome) compute(ctx *Context) {
	sh, main, ok := ctx.parent(&d.partBase)
	if !ok {
		return
	}
	d.A, d.B, d.C = math.Max(d.A, 0), math.Max(d.B, 0), math.Max(d.C, 0)
	d.RotX, d.RotY, d.RotZ = Clamp(d.RotX, -180, 180), Clamp(d.RotY, -180, 180), Clamp(d.RotZ, -180, 180)
	primary := matchFlip(surf.NewHalfEllipsoid(d.transform(sh.ModelMatrix())), main.FlipNormal())
	d.surfaces = d.propagate(sh, primary)
}

// transform maps the unit half sphere onto the dome in absolute coordinates.
func (d *Dome) transform(model d3.Transform) d3.Transform {
	t := model.
		Mul(d3.Translation(r3.Vec{X: d.X, Y: d.Y, Z: d.Z})).
		Mul(orientTransform(r3.Vec{}, DtoR(d.RotX), DtoR(d.RotY), DtoR(d.RotZ))).
		Mul(d3.Scaling(r3.Vec{X: d.A, Y: d.B, Z: d.C}))
	if d.Flip {
		t = t.Mul(d3.ReflectX())
	}
	return t
}
