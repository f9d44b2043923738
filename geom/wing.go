package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/fea"
	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Airfoil is a diamond wing profile.
type Airfoil struct {
	Chord float64
	// Thickness is the maximum thickness as a fraction of the chord.
	Thickness float64
	// Twist rotates the profile nose up about its leading edge, in degrees.
	Twist float64
}

// profile returns the profile points in parametric w order: trailing
// edge, lower surface, leading edge, upper surface and trailing edge again.
// A flat profile collapses onto the chord line.
func (a Airfoil) profile(le r3.Vec, flat bool) []r3.Vec {
	c := a.Chord
	h := 0.5 * a.Thickness * c
	if flat {
		h = 0
	}
	local := []r3.Vec{
		{X: c},
		{X: 0.5 * c, Z: -h},
		{},
		{X: 0.5 * c, Z: h},
		{X: c},
	}
	t := d3.Translation(le).Mul(d3.Rotation(fea.DtoR(a.Twist), r3.Vec{Y: 1}))
	for i := range local {
		local[i] = t.Transform(local[i])
	}
	return local
}

// WingSection is the span interval between two consecutive airfoils.
type WingSection struct {
	Span float64
	// Sweep and Dihedral are the leading edge angles, in degrees.
	Sweep    float64
	Dihedral float64
}

// Wing is a lofted wing. Its span runs along +y from the root airfoil.
type Wing struct {
	Name     string
	Airfoils []Airfoil
	Sections []WingSection
	// CapRoot and CapTip close the root and tip with flat caps that occupy
	// one unit of u each.
	CapRoot, CapTip bool
	// Mirror adds the reflection of the wing about the XZ plane.
	Mirror bool
	Model  d3.Transform

	surfs []surf.Surface
}

var _ fea.WingShape = (*Wing)(nil)

// NewWing builds a wing with one more airfoil than sections.
func NewWing(name string, airfoils []Airfoil, sections []WingSection) (*Wing, error) {
	w := &Wing{Name: name, Airfoils: airfoils, Sections: sections}
	if err := w.Build(); err != nil {
		return nil, err
	}
	return w, nil
}

// NewRectWing returns an uncapped rectangular wing of constant chord with
// nsec equal sections spanning span.
func NewRectWing(name string, chord, thickness, span float64, nsec int) (*Wing, error) {
	if nsec < 1 {
		return nil, errors.New("wing needs at least one section")
	}
	foils := make([]Airfoil, nsec+1)
	for i := range foils {
		foils[i] = Airfoil{Chord: chord, Thickness: thickness}
	}
	secs := make([]WingSection, nsec)
	for i := range secs {
		secs[i] = WingSection{Span: span / float64(nsec)}
	}
	return NewWing(name, foils, secs)
}

// Build regenerates the wing surfaces after a parameter change.
func (w *Wing) Build() error {
	if len(w.Sections) == 0 || len(w.Airfoils) != len(w.Sections)+1 {
		return fmt.Errorf("wing %q: need one more airfoil than sections, got %d airfoils and %d sections",
			w.Name, len(w.Airfoils), len(w.Sections))
	}
	les := make([]r3.Vec, len(w.Airfoils))
	for i, s := range w.Sections {
		if s.Span <= 0 {
			return fmt.Errorf("wing %q: section %d span must be positive", w.Name, i)
		}
		d := r3.Vec{
			X: s.Span * math.Tan(fea.DtoR(s.Sweep)),
			Y: s.Span,
			Z: s.Span * math.Tan(fea.DtoR(s.Dihedral)),
		}
		les[i+1] = r3.Add(les[i], d)
	}
	var grid [][]r3.Vec
	if w.CapRoot {
		grid = append(grid, w.Airfoils[0].profile(les[0], true))
	}
	for i, a := range w.Airfoils {
		grid = append(grid, a.profile(les[i], false))
	}
	if w.CapTip {
		last := len(w.Airfoils) - 1
		grid = append(grid, w.Airfoils[last].profile(les[last], true))
	}
	net, err := surf.NewNet(grid)
	if err != nil {
		return err
	}
	// Parametric normals point inward.
	main := net.Transform(w.Model).Flip()
	w.surfs = []surf.Surface{main}
	if w.Mirror {
		w.surfs = append(w.surfs, main.Transform(d3.ReflectY()).Flip())
	}
	tracer().Debugf("wing %q: %d sections, %d surfaces", w.Name, len(w.Sections), len(w.surfs))
	return nil
}

func (w *Wing) ID() string                { return w.Name }
func (w *Wing) NumSurfaces() int          { return len(w.surfs) }
func (w *Wing) ModelMatrix() d3.Transform { return w.Model }
func (w *Wing) Caps() (umin, umax bool)   { return w.CapRoot, w.CapTip }

// Surface returns surface i, or nil if i is out of range.
func (w *Wing) Surface(i int) surf.Surface {
	if i < 0 || i >= len(w.surfs) {
		return nil
	}
	return w.surfs[i]
}

// SymmCopies returns the main surface and, for mirrored wings, its
// reflection about the XZ plane.
func (w *Wing) SymmCopies(mainSurf int) []fea.SymmCopy {
	copies := []fea.SymmCopy{{Index: mainSurf}}
	if w.Mirror && len(w.surfs) == 2 {
		copies = append(copies, fea.SymmCopy{Index: 1 - mainSurf, Transform: d3.ReflectY()})
	}
	return copies
}

// SectionSpans returns the span of each section.
func (w *Wing) SectionSpans() []float64 {
	spans := make([]float64, len(w.Sections))
	for i, s := range w.Sections {
		spans[i] = s.Span
	}
	return spans
}
