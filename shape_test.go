package fea

import (
	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// testWing is a straight diamond-profile wing of constant chord along +y.
type testWing struct {
	id     string
	chord  float64
	spans  []float64
	mirror bool
	surfs  []surf.Surface
}

func newTestWing(id string, chord float64, spans ...float64) *testWing {
	w := &testWing{id: id, chord: chord, spans: spans}
	w.build()
	return w
}

func (w *testWing) build() {
	c, h := w.chord, 0.05*w.chord
	var y float64
	grid := make([][]r3.Vec, 0, len(w.spans)+1)
	for i := 0; i <= len(w.spans); i++ {
		grid = append(grid, []r3.Vec{
			{X: c, Y: y}, {X: c / 2, Y: y, Z: -h}, {Y: y}, {X: c / 2, Y: y, Z: h}, {X: c, Y: y},
		})
		if i < len(w.spans) {
			y += w.spans[i]
		}
	}
	net, _ := surf.NewNet(grid)
	main := net.Flip()
	w.surfs = []surf.Surface{main}
	if w.mirror {
		w.surfs = append(w.surfs, main.Transform(d3.ReflectY()).Flip())
	}
}

func (w *testWing) ID() string                { return w.id }
func (w *testWing) NumSurfaces() int          { return len(w.surfs) }
func (w *testWing) Surface(i int) surf.Surface { return w.surfs[i] }
func (w *testWing) ModelMatrix() d3.Transform { return d3.Transform{} }
func (w *testWing) SectionSpans() []float64   { return w.spans }
func (w *testWing) Caps() (umin, umax bool)   { return false, false }
func (w *testWing) span() float64             { return floats.Sum(w.spans) }

func (w *testWing) SymmCopies(mainSurf int) []SymmCopy {
	copies := []SymmCopy{{Index: mainSurf}}
	if w.mirror {
		copies = append(copies, SymmCopy{Index: 1 - mainSurf, Transform: d3.ReflectY()})
	}
	return copies
}

// testStructure returns a structure on a fresh test wing.
func testStructure(mirror bool) (*Structure, *testWing) {
	w := newTestWing("wing", 2, 5, 5)
	if mirror {
		w.mirror = true
		w.build()
	}
	return NewStructure(Shapes{w.id: w}, w.id, 0), w
}
