package fea

import (
	"fmt"

	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// OrientationPlane is the reference plane of a slice.
type OrientationPlane int

const (
	XYBody OrientationPlane = iota
	YZBody
	XZBody
	XYAbs
	YZAbs
	XZAbs
	// ConstU cuts normal to the spine of the parent at a fraction of the spine length.
	ConstU
)

func (o OrientationPlane) String() string {
	switch o {
	case XYBody:
		return "XY_BODY"
	case YZBody:
		return "YZ_BODY"
	case XZBody:
		return "XZ_BODY"
	case XYAbs:
		return "XY_ABS"
	case YZAbs:
		return "YZ_ABS"
	case XZAbs:
		return "XZ_ABS"
	case ConstU:
		return "CONST_U"
	}
	return fmt.Sprintf("OrientationPlane(%d)", int(o))
}

func (o OrientationPlane) body() bool { return o == XYBody || o == YZBody || o == XZBody }

// normalAxis returns the index of the axis normal to the plane, or -1 for ConstU.
func (o OrientationPlane) normalAxis() int {
	switch o {
	case YZBody, YZAbs:
		return 0
	case XZBody, XZAbs:
		return 1
	case XYBody, XYAbs:
		return 2
	}
	return -1
}

// Orientation is the reference plane of a slice and its rotations.
type Orientation struct {
	Plane OrientationPlane `xml:"OrientationPlane"`
	// RotX, RotY and RotZ rotate the slice about its center, in degrees.
	RotX float64 `xml:"XRot"`
	RotY float64 `xml:"YRot"`
	RotZ float64 `xml:"ZRot"`
}

func (o Orientation) rotated() bool { return o.RotX != 0 || o.RotY != 0 || o.RotZ != 0 }

// SliceParams places a slice along the normal of its orientation plane.
type SliceParams struct {
	Orientation
	Location Placement `xml:"CenterLocation"`
}

func defaultSliceParams() SliceParams {
	return SliceParams{
		Orientation: Orientation{Plane: YZBody},
		Location:    RelPlacement(0.5),
	}
}

// Slice is a planar cut through the parent shape.
type Slice struct {
	partBase
	SliceParams
}

func (s *Slice) Kind() Kind { return KindSlice }

func (s *Slice) compute(ctx *Context) {
	sh, main, ok := ctx.parent(&s.partBase)
	if !ok {
		return
	}
	f, ok := newSliceFrame(sh, main, s.Plane)
	if !ok {
		return
	}
	primary := sliceSurface(sh, main, f, s.Orientation, &s.Location)
	s.surfaces = s.propagate(sh, primary)
}

func comp(v r3.Vec, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func setComp(v r3.Vec, i int, val float64) r3.Vec {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

func unitAxis(i int) r3.Vec { return setComp(r3.Vec{}, i, 1) }

// sliceFrame is the region a slice is sized against.
type sliceFrame struct {
	box d3.Box
	// perp is the reference length of the slice location: the extent of
	// the parent normal to the plane, or the spine length for ConstU.
	perp  float64
	spine *surf.Spine
}

func newSliceFrame(sh Shape, main surf.Surface, plane OrientationPlane) (sliceFrame, bool) {
	if plane == ConstU {
		sp, err := surf.BuildSpine(main, surf.DefaultSpineSamples)
		if err != nil {
			tracer().Debugf("slice: %v", err)
			return sliceFrame{}, false
		}
		return sliceFrame{box: main.Bounds(), perp: sp.Length(), spine: sp}, true
	}
	var b d3.Box
	if plane.body() {
		b = main.Transform(sh.ModelMatrix().Inv()).Bounds()
	} else {
		b = main.Bounds()
	}
	return sliceFrame{box: b, perp: comp(b.Size(), plane.normalAxis())}, true
}

// sliceSurface computes the primary surface of a slice in frame f and
// derives loc. f must have been built for o.Plane.
func sliceSurface(sh Shape, main surf.Surface, f sliceFrame, o Orientation, loc *Placement) surf.Surface {
	loc.Derive(f.perp)
	expan := expansion(f.box)
	if o.Plane == ConstU {
		return constUSlice(main, f, o, loc.Rel, expan)
	}

	ax := o.Plane.normalAxis()
	e1, e2 := unitAxis((ax+1)%3), unitAxis((ax+2)%3)
	c := setComp(f.box.Center(), ax, comp(f.box.Min, ax)+loc.Abs)
	size := f.box.Size()
	r1 := 0.5*comp(size, (ax+1)%3) + expan
	r2 := 0.5*comp(size, (ax+2)%3) + expan
	if o.rotated() {
		// Any point of the box is within one diagonal of the center.
		r1 = f.box.Diagonal() + expan
		r2 = r1
	}
	p := surf.MakePlane(
		r3.Add(r3.Sub(c, r3.Scale(r1, e1)), r3.Scale(r2, e2)),
		r3.Sub(r3.Sub(c, r3.Scale(r1, e1)), r3.Scale(r2, e2)),
		r3.Add(r3.Add(c, r3.Scale(r1, e1)), r3.Scale(r2, e2)),
		r3.Sub(r3.Add(c, r3.Scale(r1, e1)), r3.Scale(r2, e2)),
	)
	var model *d3.Transform
	if o.Plane.body() {
		m := sh.ModelMatrix()
		model = &m
	}
	s := Orient(p, c, DtoR(o.RotX), DtoR(o.RotY), DtoR(o.RotZ), model)
	return matchFlip(s, main.FlipNormal())
}

// constUSlice cuts normal to the spine at fraction rel of its length.
func constUSlice(main surf.Surface, f sliceFrame, o Orientation, rel, expan float64) surf.Surface {
	umax, wmax := main.ParamMax()
	u := SpineU(f.spine, main, rel) * umax
	c := f.spine.Center(u)
	du := 1e-3 * umax
	x := d3.UnitOr(r3.Sub(f.spine.Center(Clamp(u+du, 0, umax)), f.spine.Center(Clamp(u-du, 0, umax))))
	if x == (r3.Vec{}) {
		x = r3.Vec{X: 1}
	}
	z := r3.Sub(main.Evaluate(u, 0), main.Evaluate(u, 0.5*wmax))
	y := d3.UnitOr(r3.Cross(x, z))
	if y == (r3.Vec{}) {
		// Collapsed section, any direction normal to the spine will do.
		y = d3.UnitOr(r3.Cross(x, r3.Vec{Z: 1}))
		if y == (r3.Vec{}) {
			y = d3.UnitOr(r3.Cross(x, r3.Vec{Y: 1}))
		}
	}
	z = r3.Cross(y, x)
	r := f.box.Diagonal() + expan
	p := surf.MakePlane(
		r3.Add(r3.Sub(c, r3.Scale(r, y)), r3.Scale(r, z)),
		r3.Sub(r3.Sub(c, r3.Scale(r, y)), r3.Scale(r, z)),
		r3.Add(r3.Add(c, r3.Scale(r, y)), r3.Scale(r, z)),
		r3.Sub(r3.Add(c, r3.Scale(r, y)), r3.Scale(r, z)),
	)
	// Rotations are about the local spine frame.
	t := d3.Translation(c).
		Mul(d3.Rotation(DtoR(o.RotZ), z)).
		Mul(d3.Rotation(DtoR(o.RotY), y)).
		Mul(d3.Rotation(DtoR(o.RotX), x)).
		Mul(d3.Translation(r3.Scale(-1, c)))
	return matchFlip(p.Transform(t), main.FlipNormal())
}
