package fea

import (
	"math"
	"testing"

	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPropagate(t *testing.T) {
	primary := surf.MakePlane(r3.Vec{X: 1}, r3.Vec{X: 1, Z: 1}, r3.Vec{X: 2}, r3.Vec{X: 2, Z: 1})
	shift := d3.Translation(r3.Vec{Y: 3})
	transforms := []d3.Transform{{}, shift, d3.ReflectX()}
	flips := []bool{false, true, false}
	out := Propagate(primary, transforms, flips)
	if len(out) != 3 {
		t.Fatalf("got %d copies, want 3", len(out))
	}
	if out[0] != surf.Surface(primary) {
		t.Error("entry 0 must be the primary surface")
	}
	// Copies are incremental: copy 2 is copy 1 reflected.
	want := d3.ReflectX().Transform(shift.Transform(primary.Evaluate(0, 0)))
	if got := out[2].Evaluate(0, 0); !d3.EqualWithin(got, want, 1e-12) {
		t.Errorf("copy 2 corner got %v, want %v", got, want)
	}
	for i, s := range out {
		if s.FlipNormal() != flips[i] {
			t.Errorf("copy %d flip %v, want %v", i, s.FlipNormal(), flips[i])
		}
	}
	if primary.FlipNormal() {
		t.Error("Propagate modified the primary surface")
	}
}

func TestPropagateSingle(t *testing.T) {
	p := surf.MakePlane(r3.Vec{}, r3.Vec{Y: 1}, r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1})
	if out := Propagate(p, nil, nil); len(out) != 1 || out[0] != surf.Surface(p) {
		t.Errorf("no transforms should yield the primary alone, got %d", len(out))
	}
	if out := Propagate(nil, []d3.Transform{{}}, nil); out != nil {
		t.Error("nil primary should yield no surfaces")
	}
}

func TestPartSymmetryCount(t *testing.T) {
	s, _ := testStructure(true)
	p, err := s.AddPart(KindRib)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Surfaces()) != 0 {
		t.Fatal("part must have no surfaces before update")
	}
	s.Update()
	surfs := p.Surfaces()
	if len(surfs) != 2 || p.base().NumCopies() != 2 {
		t.Fatalf("got %d surfaces over %d copies, want 2", len(surfs), p.base().NumCopies())
	}
	c0, c1 := surf.Evaluate01(surfs[0], 0.5, 0.5), surf.Evaluate01(surfs[1], 0.5, 0.5)
	if !d3.EqualWithin(c1, d3.ReflectY().Transform(c0), 1e-12) {
		t.Errorf("mirror copy center %v does not reflect %v", c1, c0)
	}
	if c0.Y <= 0 {
		t.Errorf("entry 0 must be on the main side, got %v", c0)
	}
}

// rotShape is a panel replicated four times about the z axis.
type rotShape struct{ surfs []surf.Surface }

func newRotShape(t *testing.T) rotShape {
	n, err := surf.NewNet([][]r3.Vec{
		{{X: 1, Y: -0.5}, {X: 1, Y: 0.5, Z: 1}},
		{{X: 2, Y: -0.5}, {X: 2, Y: 0.5, Z: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	var sh rotShape
	for i := 0; i < 4; i++ {
		r := d3.Rotation(float64(i)*math.Pi/2, r3.Vec{Z: 1})
		sh.surfs = append(sh.surfs, n.Transform(r))
	}
	return sh
}

func (r rotShape) ID() string                 { return "rot" }
func (r rotShape) NumSurfaces() int           { return len(r.surfs) }
func (r rotShape) Surface(i int) surf.Surface { return r.surfs[i] }
func (r rotShape) ModelMatrix() d3.Transform  { return d3.Transform{} }
func (r rotShape) SymmCopies(mainSurf int) []SymmCopy {
	step := d3.Rotation(math.Pi/2, r3.Vec{Z: 1})
	copies := []SymmCopy{{Index: mainSurf}}
	for i := 1; i < len(r.surfs); i++ {
		copies = append(copies, SymmCopy{Index: (mainSurf + i) % len(r.surfs), Transform: step})
	}
	return copies
}

func TestIncrementalRotationCopies(t *testing.T) {
	sh := newRotShape(t)
	s := NewStructure(Shapes{sh.ID(): sh}, sh.ID(), 0)
	p, err := s.AddPart(KindSlice)
	if err != nil {
		t.Fatal(err)
	}
	p.(*Slice).Plane = YZAbs
	s.Update()
	surfs := p.Surfaces()
	if len(surfs) != 4 {
		t.Fatalf("got %d copies, want 4", len(surfs))
	}
	want := []r3.Vec{{X: 1.5, Z: 0.5}, {Y: 1.5, Z: 0.5}, {X: -1.5, Z: 0.5}, {Y: -1.5, Z: 0.5}}
	for i, sf := range surfs {
		if got := surf.Evaluate01(sf, 0.5, 0.5); !d3.EqualWithin(got, want[i], 1e-9) {
			t.Errorf("copy %d centered at %v, want %v", i, got, want[i])
		}
	}
}
