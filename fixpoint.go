package fea

import (
	"fmt"

	"github.com/soypat/fea/internal/d2"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Border classifies where a point falls on a split patch.
type Border int

const (
	// Interior points need an explicit mesh node.
	Interior Border = iota
	// BorderU points lie on a constant-u patch boundary.
	BorderU
	// BorderW points lie on a constant-w patch boundary.
	BorderW
	// Corner points lie on a patch corner.
	Corner
	// ClosedU points lie on the u seam of a surface closed in u.
	ClosedU
	// ClosedW points lie on the w seam of a surface closed in w.
	ClosedW
)

func (b Border) String() string {
	switch b {
	case Interior:
		return "Interior"
	case BorderU:
		return "BorderU"
	case BorderW:
		return "BorderW"
	case Corner:
		return "Corner"
	case ClosedU:
		return "ClosedU"
	case ClosedW:
		return "ClosedW"
	}
	return fmt.Sprintf("Border(%d)", int(b))
}

// SplitMatch is a split patch containing a located point.
type SplitMatch struct {
	Copy int
	// Index is the patch index across all copies: patch + copy*patchesPerCopy.
	Index  int
	Border Border
}

// Location is the result of locating a point on the split patches of a part.
type Location struct {
	Matches []SplitMatch
	// Indices holds the matched patch indices of each symmetry copy.
	Indices [][]int
}

// OnBorder reports whether any match lies on a patch boundary.
func (l Location) OnBorder() bool {
	for _, m := range l.Matches {
		if m.Border != Interior {
			return true
		}
	}
	return false
}

// LocateSplitSurface finds the split patches of surfaces containing the
// parameter uw, given in the parametric space of each surface. In half
// mesh mode patches entirely at y <= 0 or on the y=0 plane are skipped.
// Boundary comparisons use exact equality: patch bounds come from the same
// split that produced them.
func LocateSplitSurface(surfaces []surf.Surface, uw r2.Vec, halfMesh bool) Location {
	loc := Location{Indices: make([][]int, len(surfaces))}
	for i, s := range surfaces {
		if s == nil {
			continue
		}
		umax, wmax := s.ParamMax()
		closedU, closedW := s.Closed()
		patches := s.Split()
		for j, p := range patches {
			if halfMesh && (p.LessThanY(halfMeshTol) || p.PlaneAtYZero(halfMeshTol)) {
				continue
			}
			border, ok := classify(p.Domain, uw, umax, wmax, closedU, closedW)
			if !ok {
				continue
			}
			idx := j + i*len(patches)
			loc.Matches = append(loc.Matches, SplitMatch{Copy: i, Index: idx, Border: border})
			loc.Indices[i] = append(loc.Indices[i], idx)
		}
	}
	return loc
}

func classify(dom d2.Box, uw r2.Vec, umax, wmax float64, closedU, closedW bool) (Border, bool) {
	min, max := dom.Min, dom.Max
	u, w := uw.X, uw.Y
	if dom.Contains(uw) {
		onU := u == min.X || u == max.X
		onW := w == min.Y || w == max.Y
		switch {
		case onU && onW:
			return Corner, true
		case onU:
			return BorderU, true
		case onW:
			return BorderW, true
		}
		return Interior, true
	}
	withinW := min.Y <= w && w <= max.Y
	withinU := min.X <= u && u <= max.X
	// On a closed surface u=0 and u=umax are the same seam.
	if closedU && withinW && ((u == 0 && max.X == umax) || (u == umax && min.X == 0)) {
		return ClosedU, true
	}
	if closedW && withinU && ((w == 0 && max.Y == wmax) || (w == wmax && min.Y == 0)) {
		return ClosedW, true
	}
	return 0, false
}

// FixPointParams locates a fix point on the surfaces of its parent part.
type FixPointParams struct {
	Parent PartID `xml:"ParentFeaPartID"`
	// PosU and PosW are normalized parameters in [0,1] on the parent's main surface.
	PosU    float64 `xml:"PosU"`
	PosW    float64 `xml:"PosW"`
	HasMass bool    `xml:"FixPointMassFlag"`
	Mass    float64 `xml:"FixPointMass"`
}

func defaultFixPointParams() FixPointParams {
	return FixPointParams{PosU: 0.5, PosW: 0.5}
}

// FixPoint is a point feature on another part, such as a node for a point mass.
// It owns no surfaces.
type FixPoint struct {
	partBase
	FixPointParams
	halfMesh bool
	loc      Location
	points   []r3.Vec
}

func (f *FixPoint) Kind() Kind { return KindFixPoint }

// Location returns the split patches found at the last update.
func (f *FixPoint) Location() Location { return f.loc }

// Points returns the fix point position on each symmetry copy of the parent.
func (f *FixPoint) Points() []r3.Vec { return f.points }

// OnBorder reports whether the point lies on a patch boundary and will be meshed without special handling.
func (f *FixPoint) OnBorder() bool { return f.loc.OnBorder() }

// HalfMesh reports whether the last update located the point in half mesh mode.
func (f *FixPoint) HalfMesh() bool { return f.halfMesh }

func (f *FixPoint) compute(ctx *Context) {
	if ctx == nil || ctx.Parts == nil {
		return
	}
	parent, ok := ctx.Parts.PartByID(f.Parent)
	if !ok {
		tracer().Debugf("fix point %q: parent part %q not found", f.Name, f.Parent)
		return
	}
	ps := parent.Surfaces()
	if len(ps) == 0 || ps[0] == nil {
		tracer().Debugf("fix point %q: parent part %q has no surfaces", f.Name, f.Parent)
		return
	}
	f.PosU, f.PosW = Clamp(f.PosU, 0, 1), Clamp(f.PosW, 0, 1)
	f.halfMesh = ctx.HalfMesh
	umax, wmax := ps[0].ParamMax()
	uw := r2.Vec{X: f.PosU * umax, Y: f.PosW * wmax}
	f.loc = LocateSplitSurface(ps, uw, f.halfMesh)
	points := make([]r3.Vec, 0, len(ps))
	for _, s := range ps {
		if s != nil {
			points = append(points, s.Evaluate(uw.X, uw.Y))
		}
	}
	f.points = points
}
