package fea

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/fea/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// boundaryDist returns the distance from p to the nearest edge of q.
func boundaryDist(p r3.Vec, q Quad) float64 {
	return math.Min(
		math.Min(d3.SegmentDist(p, q.InnerA, q.OuterA), d3.SegmentDist(p, q.InnerB, q.OuterB)),
		math.Min(d3.SegmentDist(p, q.InnerA, q.InnerB), d3.SegmentDist(p, q.OuterA, q.OuterB)),
	)
}

func TestHalfLengthsEndOnBoundary(t *testing.T) {
	quads := map[string]Quad{
		"rectangle": {
			InnerA: r3.Vec{X: 2}, InnerB: r3.Vec{},
			OuterA: r3.Vec{X: 2, Y: 10}, OuterB: r3.Vec{Y: 10},
		},
		"swept": {
			InnerA: r3.Vec{X: 2}, InnerB: r3.Vec{},
			OuterA: r3.Vec{X: 3, Y: 10}, OuterB: r3.Vec{X: 1, Y: 10},
		},
	}
	for name, q := range quads {
		center := d3.Mid(d3.Mid(q.InnerA, q.InnerB), d3.Mid(q.OuterA, q.OuterB))
		for deg := -85.0; deg <= 85; deg += 5 {
			checkEndsOnBoundary(t, name, q, center, deg)
		}
	}
}

func checkEndsOnBoundary(t *testing.T, name string, q Quad, center r3.Vec, deg float64) {
	t.Helper()
	const ref = 100.
	axis := r3.Vec{X: 1}
	theta := DtoR(deg)
	la, lb := ComputeHalfLengths(center, axis, theta, q, ref)
	if la >= ref || lb >= ref {
		t.Fatalf("%s θ=%g: fell back to reference length", name, deg)
	}
	endA, endB := MemberEnds(center, axis, theta, q, la, lb, 0)
	if d := boundaryDist(endA, q); d > 1e-9 {
		t.Errorf("%s θ=%g: end A %v is %g off the boundary", name, deg, endA, d)
	}
	if d := boundaryDist(endB, q); d > 1e-9 {
		t.Errorf("%s θ=%g: end B %v is %g off the boundary", name, deg, endB, d)
	}
}

func TestHalfLengthsTaperedSwept(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	between := func(a, b float64) float64 { return a + (b-a)*rng.Float64() }
	const span = 10.
	for i := 0; i < 2000; i++ {
		root, tip := between(1, 4), between(0.5, 4)
		sweep := between(-3, 5)
		q := Quad{
			InnerA: r3.Vec{X: root}, InnerB: r3.Vec{},
			OuterA: r3.Vec{X: sweep + tip, Y: span}, OuterB: r3.Vec{X: sweep, Y: span},
		}
		fy, fx := between(0.05, 0.95), between(0.05, 0.95)
		le := r3.Add(q.InnerB, r3.Scale(fy, r3.Sub(q.OuterB, q.InnerB)))
		te := r3.Add(q.InnerA, r3.Scale(fy, r3.Sub(q.OuterA, q.InnerA)))
		center := r3.Add(le, r3.Scale(fx, r3.Sub(te, le)))
		name := fmt.Sprintf("quad %d", i)
		checkEndsOnBoundary(t, name, q, center, between(-89, 89))
	}
	// Strong sweep near the root: the trailing half leaves through the
	// leading edge before reaching the root chord line.
	q := Quad{
		InnerA: r3.Vec{X: 1}, InnerB: r3.Vec{},
		OuterA: r3.Vec{X: 6, Y: span}, OuterB: r3.Vec{X: 5, Y: span},
	}
	center := r3.Vec{X: 1.5, Y: 2}
	for _, deg := range []float64{-88, -84, -80, 80, 84, 88} {
		checkEndsOnBoundary(t, "swept root", q, center, deg)
	}
}

func TestHalfLengthsLawOfSines(t *testing.T) {
	q := Quad{
		InnerA: r3.Vec{X: 2}, InnerB: r3.Vec{},
		OuterA: r3.Vec{X: 2, Y: 10}, OuterB: r3.Vec{Y: 10},
	}
	center := r3.Vec{X: 1, Y: 5}
	for _, deg := range []float64{-60, -30, 0, 15, 45} {
		la, lb := ComputeHalfLengths(center, r3.Vec{X: 1}, DtoR(deg), q, 100)
		want := 1 / math.Cos(DtoR(deg))
		if math.Abs(la-want) > 1e-12 || math.Abs(lb-want) > 1e-12 {
			t.Errorf("θ=%g: got %g %g, want %g", deg, la, lb, want)
		}
	}
	// Beyond the corner the ray meets the tip chord.
	la, _ := ComputeHalfLengths(center, r3.Vec{X: 1}, DtoR(85), q, 100)
	if want := 5 / math.Sin(DtoR(85)); math.Abs(la-want) > 1e-12 {
		t.Errorf("θ=85: got %g, want %g", la, want)
	}
}

func TestHalfLengthsDegenerate(t *testing.T) {
	const ref = 7.
	la, lb := ComputeHalfLengths(r3.Vec{}, r3.Vec{X: 1}, 0, Quad{}, ref)
	if la != ref || lb != ref {
		t.Errorf("collapsed quad: got %g %g, want reference", la, lb)
	}
	q := Quad{
		InnerA: r3.Vec{X: 2}, InnerB: r3.Vec{},
		OuterA: r3.Vec{X: 2, Y: 10}, OuterB: r3.Vec{Y: 10},
	}
	la, lb = ComputeHalfLengths(r3.Vec{X: 1, Y: 5}, r3.Vec{}, 0, q, ref)
	if la != ref || lb != ref {
		t.Errorf("zero axis: got %g %g, want reference", la, lb)
	}
	// A ray parallel to its side never meets it.
	la, _ = ComputeHalfLengths(r3.Vec{X: 1, Y: 5}, r3.Vec{Y: 1}, 0, q, ref)
	if la != ref {
		t.Errorf("parallel ray: got %g, want reference", la)
	}
}

func TestQuadNormalCollapsedEnd(t *testing.T) {
	// A tip collapsed to a point still yields the region normal.
	q := Quad{
		InnerA: r3.Vec{X: 2}, InnerB: r3.Vec{},
		OuterA: r3.Vec{X: 1, Y: 10}, OuterB: r3.Vec{X: 1, Y: 10},
	}
	if n := q.Normal(); !d3.EqualWithin(n, r3.Vec{Z: 1}, 1e-12) {
		t.Errorf("got normal %v", n)
	}
	q.InnerA, q.InnerB = r3.Vec{X: 1}, r3.Vec{X: 1}
	q.OuterA, q.OuterB = r3.Vec{X: 2, Y: 10}, r3.Vec{Y: 10}
	if n := q.Normal(); r3.Norm(n) < 0.99 {
		t.Errorf("collapsed inner end: got normal %v", n)
	}
}
