package fea

import (
	"fmt"
	"math"

	"github.com/akavel/polyclip-go"
	"github.com/google/uuid"
	"github.com/soypat/fea/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// SubSurfKind is the closed set of subsurface variants.
type SubSurfKind int

const (
	SubLine SubSurfKind = iota
	SubRectangle
	SubEllipse
	SubLineArray
	numSubKinds
)

var subKindNames = [numSubKinds]string{
	SubLine:      "Line",
	SubRectangle: "Rectangle",
	SubEllipse:   "Ellipse",
	SubLineArray: "LineArray",
}

// subKindPrefix names new subsurfaces.
var subKindPrefix = [numSubKinds]string{
	SubLine:      "SSLine",
	SubRectangle: "SSRect",
	SubEllipse:   "SSEllipse",
	SubLineArray: "SSLineArray",
}

func (k SubSurfKind) String() string {
	if k < 0 || k >= numSubKinds {
		return fmt.Sprintf("SubSurfKind(%d)", int(k))
	}
	return subKindNames[k]
}

// ParseSubSurfKind is the inverse of SubSurfKind.String.
func ParseSubSurfKind(s string) (SubSurfKind, error) {
	for k, name := range subKindNames {
		if name == s {
			return SubSurfKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: subsurface %q", ErrUnknownKind, s)
}

// TestType selects which side of a subsurface boundary is tagged.
type TestType int

const (
	TestNone TestType = iota
	TestInside
	TestOutside
)

// ConstDir selects the parameter held constant along a subsurface line.
type ConstDir int

const (
	ConstUDir ConstDir = iota
	ConstWDir
)

// SubSurfID is the stable handle of a subsurface.
type SubSurfID string

// SubSurfCommon holds the parameters shared by every subsurface.
type SubSurfCommon struct {
	ID          SubSurfID `xml:"ID,attr"`
	Name        string    `xml:"Name,attr"`
	Test        TestType  `xml:"TestType"`
	Property    int       `xml:"PropertyIndex"`
	CapProperty int       `xml:"CapPropertyIndex"`
}

// SubSurface is a region or line drawn in the normalized (u,w) domain
// [0,1]² of the skin. Its elements receive their own property.
type SubSurface interface {
	Kind() SubSurfKind
	Info() *SubSurfCommon
	// Lines returns the boundary polylines in normalized (u,w).
	Lines() [][]r2.Vec
	// Tagged reports whether the normalized point uw is tagged by the test type.
	Tagged(uw r2.Vec) bool
}

// NewSubSurface creates a subsurface of the given kind with default parameters.
func NewSubSurface(kind SubSurfKind) (SubSurface, error) {
	c := SubSurfCommon{ID: SubSurfID(uuid.NewString()), Test: TestInside, Property: 0, CapProperty: 1}
	switch kind {
	case SubLine:
		return &Line{SubSurfCommon: c, Const: ConstUDir, Value: 0.5}, nil
	case SubRectangle:
		return &Rectangle{SubSurfCommon: c, Center: r2.Vec{X: 0.5, Y: 0.5}, Size: r2.Vec{X: 0.2, Y: 0.2}}, nil
	case SubEllipse:
		return &Ellipse{SubSurfCommon: c, Center: r2.Vec{X: 0.5, Y: 0.5}, Size: r2.Vec{X: 0.2, Y: 0.2}, Segments: 41}, nil
	case SubLineArray:
		return &LineArray{SubSurfCommon: c, Const: ConstUDir, Start: 0.2, Spacing: 0.2, Positive: true}, nil
	}
	return nil, fmt.Errorf("%w: subsurface %d", ErrUnknownKind, int(kind))
}

// Line is a constant u or w line on the skin. Inside is the side of larger parameter.
type Line struct {
	SubSurfCommon
	Const ConstDir `xml:"ConstType"`
	Value float64  `xml:"ConstVal"`
}

func (l *Line) Kind() SubSurfKind       { return SubLine }
func (l *Line) Info() *SubSurfCommon    { return &l.SubSurfCommon }
func (l *Line) Lines() [][]r2.Vec       { return [][]r2.Vec{constLine(l.Const, l.value())} }

// value is the line location clamped to the skin domain.
func (l *Line) value() float64 { return Clamp(l.Value, 0, 1) }

func (l *Line) Tagged(uw r2.Vec) bool {
	v := uw.X
	if l.Const == ConstWDir {
		v = uw.Y
	}
	switch l.Test {
	case TestInside:
		return v > l.value()
	case TestOutside:
		return v < l.value()
	}
	return false
}

func constLine(c ConstDir, v float64) []r2.Vec {
	if c == ConstWDir {
		return []r2.Vec{{X: 0, Y: v}, {X: 1, Y: v}}
	}
	return []r2.Vec{{X: v, Y: 0}, {X: v, Y: 1}}
}

// unitDomain is the normalized parameter square regions are clipped to.
var unitDomain = polyclip.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}

// region clips the closed outline pts to the unit domain.
func region(pts []r2.Vec) polyclip.Polygon {
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return polyclip.Polygon{c}.Construct(polyclip.INTERSECTION, unitDomain)
}

func regionLines(p polyclip.Polygon) [][]r2.Vec {
	lines := make([][]r2.Vec, 0, len(p))
	for _, c := range p {
		if len(c) == 0 {
			continue
		}
		l := make([]r2.Vec, 0, len(c)+1)
		for _, pt := range c {
			l = append(l, r2.Vec{X: pt.X, Y: pt.Y})
		}
		lines = append(lines, append(l, l[0]))
	}
	return lines
}

func regionTagged(p polyclip.Polygon, test TestType, uw r2.Vec) bool {
	if test == TestNone {
		return false
	}
	in := false
	pt := polyclip.Point{X: uw.X, Y: uw.Y}
	for _, c := range p {
		if c.Contains(pt) {
			in = !in
		}
	}
	return in == (test == TestInside)
}

// placeOutline rotates the outline by theta degrees about center and moves it there.
func placeOutline(pts []r2.Vec, center r2.Vec, theta float64) []r2.Vec {
	t := d2.Translation(center).Mul(d2.Rotation(DtoR(theta)))
	for i := range pts {
		pts[i] = t.ApplyPos(pts[i])
	}
	return pts
}

// Rectangle is a rotated rectangle in normalized (u,w).
type Rectangle struct {
	SubSurfCommon
	Center r2.Vec `xml:"Center"`
	Size   r2.Vec `xml:"Size"`
	// Theta rotates the rectangle about its center, in degrees.
	Theta float64 `xml:"Theta"`
}

func (r *Rectangle) Kind() SubSurfKind    { return SubRectangle }
func (r *Rectangle) Info() *SubSurfCommon { return &r.SubSurfCommon }

// Region returns the rectangle clipped to the unit domain.
func (r *Rectangle) Region() polyclip.Polygon {
	h := r2.Scale(0.5, r.Size)
	pts := []r2.Vec{{X: -h.X, Y: -h.Y}, {X: h.X, Y: -h.Y}, {X: h.X, Y: h.Y}, {X: -h.X, Y: h.Y}}
	return region(placeOutline(pts, r.Center, r.Theta))
}

func (r *Rectangle) Lines() [][]r2.Vec      { return regionLines(r.Region()) }
func (r *Rectangle) Tagged(uw r2.Vec) bool { return regionTagged(r.Region(), r.Test, uw) }

// Ellipse is a rotated ellipse in normalized (u,w), approximated by a polygon.
type Ellipse struct {
	SubSurfCommon
	Center r2.Vec `xml:"Center"`
	// Size holds the u and w diameters.
	Size     r2.Vec  `xml:"Size"`
	Theta    float64 `xml:"Theta"`
	Segments int     `xml:"Tesselation"`
}

func (e *Ellipse) Kind() SubSurfKind    { return SubEllipse }
func (e *Ellipse) Info() *SubSurfCommon { return &e.SubSurfCommon }

// Region returns the ellipse polygon clipped to the unit domain.
func (e *Ellipse) Region() polyclip.Polygon {
	n := e.Segments
	if n < 3 {
		n = 3
	}
	pts := make([]r2.Vec, n)
	for i := range pts {
		a := 2 * pi * float64(i) / float64(n)
		pts[i] = r2.Vec{X: 0.5 * e.Size.X * math.Cos(a), Y: 0.5 * e.Size.Y * math.Sin(a)}
	}
	return region(placeOutline(pts, e.Center, e.Theta))
}

func (e *Ellipse) Lines() [][]r2.Vec      { return regionLines(e.Region()) }
func (e *Ellipse) Tagged(uw r2.Vec) bool { return regionTagged(e.Region(), e.Test, uw) }

// LineArray is a set of evenly spaced constant u or w lines.
type LineArray struct {
	SubSurfCommon
	Const    ConstDir `xml:"ConstType"`
	Start    float64  `xml:"StartLocation"`
	Spacing  float64  `xml:"Spacing"`
	Positive bool     `xml:"PositiveDirectionFlag"`
}

func (a *LineArray) Kind() SubSurfKind    { return SubLineArray }
func (a *LineArray) Info() *SubSurfCommon { return &a.SubSurfCommon }

// Values returns the constant parameter of each line.
func (a *LineArray) Values() []float64 {
	n, sp := ComputeCount(a.Start, a.Spacing, a.Positive)
	dir := 1.0
	if !a.Positive {
		dir = -1
	}
	start := Clamp(a.Start, 0, 1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = Clamp(start+dir*float64(i)*sp, 0, 1)
	}
	return vals
}

func (a *LineArray) Lines() [][]r2.Vec {
	vals := a.Values()
	lines := make([][]r2.Vec, len(vals))
	for i, v := range vals {
		lines[i] = constLine(a.Const, v)
	}
	return lines
}

// Tagged is always false, line arrays only split the mesh.
func (a *LineArray) Tagged(uw r2.Vec) bool { return false }

// members returns one independent line per array value.
func (a *LineArray) members() []*Line {
	vals := a.Values()
	lines := make([]*Line, len(vals))
	for i, v := range vals {
		c := a.SubSurfCommon
		c.ID = SubSurfID(uuid.NewString())
		c.Name = fmt.Sprintf("%s_SSLine_%d", a.Name, i)
		lines[i] = &Line{SubSurfCommon: c, Const: a.Const, Value: v}
	}
	return lines
}
