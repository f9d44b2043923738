package fea

import (
	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
)

// Shape is the parent geometry a structure is attached to.
type Shape interface {
	// ID identifies the shape within its ShapeProvider.
	ID() string
	// NumSurfaces returns the length of the full surface list, symmetric copies included.
	NumSurfaces() int
	// Surface returns surface i of the full surface list.
	Surface(i int) surf.Surface
	// SymmCopies returns the symmetric copies of main surface mainSurf.
	// Copy 0 is the main surface itself with the identity transform. The
	// transforms are incremental: copy i is copy i-1 transformed, so a
	// shape with n rotated copies supplies the single step rotation for
	// every copy, not the total rotation from the main surface.
	SymmCopies(mainSurf int) []SymmCopy
	// ModelMatrix returns the transform from body to absolute coordinates.
	ModelMatrix() d3.Transform
}

// WingShape is a Shape lofted through cross sections along its span.
type WingShape interface {
	Shape
	// SectionSpans returns the span of each interval between consecutive cross sections.
	SectionSpans() []float64
	// Caps reports whether the u=0 and u=Umax ends of the surface are end caps
	// occupying one unit of parametric space each.
	Caps() (umin, umax bool)
}

// SymmCopy is one instance of a replicated surface.
type SymmCopy struct {
	// Index is the position of the copy in the shape's full surface list.
	Index int
	// Transform maps copy i-1 onto copy i, not the main surface onto copy i.
	// It is the identity for copy 0.
	Transform d3.Transform
}

// ShapeProvider resolves parent shapes by identifier. The shapes it returns
// must supply incremental symmetry transforms, see Shape.SymmCopies.
type ShapeProvider interface {
	Shape(id string) (Shape, bool)
}

// Shapes is a ShapeProvider backed by a map.
type Shapes map[string]Shape

func (s Shapes) Shape(id string) (Shape, bool) {
	sh, ok := s[id]
	return sh, ok && sh != nil
}

// PartLookup resolves parts by their handle.
type PartLookup interface {
	PartByID(id PartID) (Part, bool)
}

// Context carries the collaborators a part needs to compute its geometry.
type Context struct {
	Shapes ShapeProvider
	Parts  PartLookup
	// HalfMesh discards geometry on the y <= 0 half when locating fix points.
	HalfMesh bool
}

// parent resolves the shape of part base b along with its main surface.
// ok is false when the shape is missing or the main surface index is out of range.
func (ctx *Context) parent(b *partBase) (sh Shape, main surf.Surface, ok bool) {
	if ctx == nil || ctx.Shapes == nil {
		return nil, nil, false
	}
	sh, ok = ctx.Shapes.Shape(b.ParentID)
	if !ok {
		tracer().Debugf("part %q: parent shape %q not found", b.Name, b.ParentID)
		return nil, nil, false
	}
	b.refreshSymm(sh)
	if len(b.symm) == 0 || b.symm[0].Index < 0 || b.symm[0].Index >= sh.NumSurfaces() {
		tracer().Debugf("part %q: main surface %d unavailable", b.Name, b.MainSurf)
		return nil, nil, false
	}
	return sh, sh.Surface(b.symm[0].Index), true
}
