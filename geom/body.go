package geom

import (
	"errors"
	"fmt"

	"github.com/soypat/fea"
	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultBodySegments is the number of net columns around a body section.
const DefaultBodySegments = 16

// Body is a fuselage-like shape lofted through cross sections ordered along x.
type Body struct {
	Name   string
	Length float64
	// Segments is the number of net cells around each section.
	Segments int
	Model    d3.Transform

	sections []XSec
	main     surf.Surface
}

var _ fea.Shape = (*Body)(nil)

// NewBody lofts a body of the given length through sections.
func NewBody(name string, length float64, sections []XSec) (*Body, error) {
	b := &Body{Name: name, Length: length, Segments: DefaultBodySegments, sections: sections}
	if err := b.Build(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBodyOfRevolution returns a body with circular sections of the given
// radii, evenly spaced from nose to tail.
func NewBodyOfRevolution(name string, length float64, radii []float64) (*Body, error) {
	if len(radii) < 2 {
		return nil, errors.New("body of revolution needs at least two radii")
	}
	sections := make([]XSec, len(radii))
	for i, r := range radii {
		sections[i] = XSec{Width: 2 * r, Height: 2 * r, XLoc: float64(i) / float64(len(radii)-1)}
	}
	return NewBody(name, length, sections)
}

// Build regenerates the body surface after a parameter change.
func (b *Body) Build() error {
	if len(b.sections) < 2 {
		return errors.New("body needs at least two sections")
	}
	if b.Length <= 0 {
		return fmt.Errorf("body length must be positive, got %g", b.Length)
	}
	grid := make([][]r3.Vec, len(b.sections))
	for i := range b.sections {
		grid[i] = b.sections[i].Curve(b.Length, b.Segments)
	}
	net, err := surf.NewNet(grid)
	if err != nil {
		return err
	}
	// Parametric normals point inward.
	b.main = net.Transform(b.Model).Flip()
	tracer().Debugf("body %q: %d sections", b.Name, len(b.sections))
	return nil
}

// Section returns cross section i for modification. Call Build afterwards.
func (b *Body) Section(i int) *XSec {
	if i < 0 || i >= len(b.sections) {
		return nil
	}
	return &b.sections[i]
}

func (b *Body) ID() string                { return b.Name }
func (b *Body) NumSurfaces() int          { return 1 }
func (b *Body) ModelMatrix() d3.Transform { return b.Model }

// SymmCopies returns the main surface alone, bodies have no symmetry.
func (b *Body) SymmCopies(mainSurf int) []fea.SymmCopy {
	return []fea.SymmCopy{{Index: mainSurf}}
}

// Surface returns the body surface for i == 0 and nil otherwise.
func (b *Body) Surface(i int) surf.Surface {
	if i != 0 {
		return nil
	}
	return b.main
}
