package fea

import (
	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// EdgeKind selects the edge a rib is kept perpendicular to.
type EdgeKind int

const (
	EdgeNone EdgeKind = iota
	EdgeLeading
	EdgeTrailing
	// EdgePart uses the axis of another part, typically a spar.
	EdgePart
)

const (
	edgeNoneID     = "None"
	edgeLeadingID  = "Leading Edge"
	edgeTrailingID = "Trailing Edge"
)

// EdgeRef is the perpendicular edge reference of a rib. It is persisted as
// free text and resolved when the rib is computed.
type EdgeRef struct {
	Kind EdgeKind
	Part PartID
}

// PartEdge references the axis of part id.
func PartEdge(id PartID) EdgeRef { return EdgeRef{Kind: EdgePart, Part: id} }

func (e EdgeRef) String() string {
	switch e.Kind {
	case EdgeLeading:
		return edgeLeadingID
	case EdgeTrailing:
		return edgeTrailingID
	case EdgePart:
		return string(e.Part)
	}
	return edgeNoneID
}

// ParseEdgeRef is the inverse of EdgeRef.String. Any unrecognized text is a part reference.
func ParseEdgeRef(s string) EdgeRef {
	switch s {
	case "", edgeNoneID:
		return EdgeRef{}
	case edgeLeadingID:
		return EdgeRef{Kind: EdgeLeading}
	case edgeTrailingID:
		return EdgeRef{Kind: EdgeTrailing}
	}
	return PartEdge(PartID(s))
}

func (e EdgeRef) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *EdgeRef) UnmarshalText(b []byte) error {
	*e = ParseEdgeRef(string(b))
	return nil
}

// RibParams places a rib along the span of a wing.
type RibParams struct {
	Location Placement `xml:"CenterLocation"`
	// Theta rotates the rib about the wing normal, in degrees.
	Theta    float64 `xml:"Theta"`
	PerpEdge EdgeRef `xml:"PerpendicularEdgeID"`
}

func defaultRibParams() RibParams {
	return RibParams{Location: RelPlacement(0.5)}
}

// Rib is a chordwise planar member of a wing.
type Rib struct {
	partBase
	RibParams
}

func (r *Rib) Kind() Kind { return KindRib }

func (r *Rib) compute(ctx *Context) {
	sh, main, ok := ctx.parent(&r.partBase)
	if !ok {
		return
	}
	primary, ok := ribSurface(ctx, sh, main, &r.RibParams)
	if !ok {
		return
	}
	r.surfaces = r.propagate(sh, primary)
}

// wingRange returns the parameter range of a wing surface excluding caps.
func wingRange(w WingShape, main surf.Surface) (u0, u1 float64) {
	umax, _ := main.ParamMax()
	capMin, capMax := w.Caps()
	u1 = umax
	if capMin {
		u0 = 1
	}
	if capMax {
		u1--
	}
	return u0, u1
}

// ribSurface computes the primary surface of a rib and derives its location.
func ribSurface(ctx *Context, sh Shape, main surf.Surface, rp *RibParams) (surf.Surface, bool) {
	w, ok := sh.(WingShape)
	if !ok {
		tracer().Debugf("rib: parent %q is not a wing", sh.ID())
		return nil, false
	}
	rp.Location.Derive(TotalSpan(w))
	umax, wmax := main.ParamMax()
	u := ResolveU(w, main, rp.Location.Rel) * umax
	wle := 0.5 * wmax

	te := main.Evaluate(u, 0)
	le := main.Evaluate(u, wle)
	center := d3.Mid(te, le)
	u0, u1 := wingRange(w, main)
	q := Quad{
		InnerA: main.Evaluate(u0, 0), InnerB: main.Evaluate(u0, wle),
		OuterA: main.Evaluate(u1, 0), OuterB: main.Evaluate(u1, wle),
	}
	n := q.Normal()
	axis := r3.Sub(te, center)
	theta := perpendicularRotation(ctx, rp.PerpEdge, axis, n, q) + DtoR(rp.Theta)

	b := main.Bounds()
	expan := expansion(b)
	ref := 0.5*d3.Dist(te, le) + expan
	la, lb := ComputeHalfLengths(center, axis, theta, q, ref)
	endA, endB := MemberEnds(center, axis, theta, q, la, lb, expan)
	p := planarMember(endA, endB, thickness(main, u, n), memberHeight(b))
	return matchFlip(p, main.FlipNormal()), true
}

// perpendicularRotation returns the rotation that makes a member along
// chord perpendicular to the referenced edge. Unresolved references yield
// zero rotation.
func perpendicularRotation(ctx *Context, e EdgeRef, chord, n r3.Vec, q Quad) float64 {
	var edge r3.Vec
	switch e.Kind {
	case EdgeNone:
		return 0
	case EdgeLeading:
		edge = q.sideB().dir()
	case EdgeTrailing:
		edge = q.sideA().dir()
	case EdgePart:
		var p Part
		ok := ctx != nil && ctx.Parts != nil
		if ok {
			p, ok = ctx.Parts.PartByID(e.Part)
		}
		if !ok || len(p.Surfaces()) == 0 || p.Surfaces()[0] == nil {
			tracer().Infof("perpendicular edge %q unresolved, using zero rotation", e.Part)
			return 0
		}
		edge = MemberAxis(p.Surfaces()[0])
	}
	if r3.Norm(edge) < flteps || r3.Norm(chord) < flteps {
		return 0
	}
	return d3.SignedAngle(chord, edge, n) - pi/2
}

// MemberAxis returns the vector from the first to the second end of a planar member surface.
func MemberAxis(s surf.Surface) r3.Vec {
	return r3.Sub(surf.Evaluate01(s, 1, 0.5), surf.Evaluate01(s, 0, 0.5))
}
