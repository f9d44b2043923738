package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func TestTransformIdentity(t *testing.T) {
	var id Transform
	v := r3.Vec{X: 1, Y: -2, Z: 3}
	if got := id.Transform(v); got != v {
		t.Fatalf("zero transform is not identity: %v", got)
	}
	if !id.Mul(Translation(v)).Equals(Translation(v), tol) {
		t.Fatal("identity multiplication changed transform")
	}
}

func TestTransformCompose(t *testing.T) {
	a := Translation(r3.Vec{X: 1, Y: 2, Z: 3})
	b := Rotation(math.Pi/3, r3.Vec{X: 1, Y: 1})
	c := Scaling(r3.Vec{X: 2, Y: 1, Z: 0.5})
	m := a.Mul(b).Mul(c)
	for _, v := range []r3.Vec{{}, {X: 1}, {X: -3, Y: 0.5, Z: 7}} {
		want := a.Transform(b.Transform(c.Transform(v)))
		if got := m.Transform(v); !EqualWithin(got, want, tol) {
			t.Errorf("composed transform of %v: got %v, want %v", v, got, want)
		}
		back := m.Inv().Transform(m.Transform(v))
		if !EqualWithin(back, v, 1e-9) {
			t.Errorf("inverse round trip of %v got %v", v, back)
		}
	}
}

func TestRotation(t *testing.T) {
	r := Rotation(math.Pi/2, r3.Vec{Z: 1})
	if got := r.Transform(r3.Vec{X: 1}); !EqualWithin(got, r3.Vec{Y: 1}, tol) {
		t.Errorf("rotating x about z got %v", got)
	}
	about := RotationAbout(r3.Vec{X: 1}, math.Pi, r3.Vec{Z: 1})
	if got := about.Transform(r3.Vec{}); !EqualWithin(got, r3.Vec{X: 2}, tol) {
		t.Errorf("rotation about offset origin got %v", got)
	}
	k := r3.Unit(r3.Vec{X: 1, Y: -1, Z: 2})
	v := r3.Vec{X: 0.3, Y: 2, Z: -1}
	want := Rotation(0.7, k).Transform(v)
	if got := r3.Rotate(v, 0.7, k); !EqualWithin(got, want, 1e-9) {
		t.Errorf("r3.Rotate got %v, rotation transform gives %v", got, want)
	}
}

func TestOrientationAndNormals(t *testing.T) {
	if ReflectY().Orientation() != -1 || ReflectX().Orientation() != -1 {
		t.Error("reflections must reverse orientation")
	}
	if Rotation(1, r3.Vec{Y: 1}).Orientation() != 1 {
		t.Error("rotation must keep orientation")
	}
	s := Scaling(r3.Vec{X: 1, Y: 4, Z: 1})
	// The plane x+y=0 has normal (1,1,0). After scaling y by 4 its normal is (1,1/4,0).
	n := r3.Unit(s.ApplyNormal(r3.Vec{X: 1, Y: 1}))
	if want := r3.Unit(r3.Vec{X: 1, Y: 0.25}); !EqualWithin(n, want, tol) {
		t.Errorf("ApplyNormal got %v, want %v", n, want)
	}
	if got := Translation(r3.Vec{X: 5}).ApplyDir(r3.Vec{Y: 1}); got != (r3.Vec{Y: 1}) {
		t.Errorf("ApplyDir must ignore translation, got %v", got)
	}
}

func TestSignedAngle(t *testing.T) {
	x, y, z := r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}
	if got := SignedAngle(x, y, z); math.Abs(got-math.Pi/2) > tol {
		t.Errorf("x to y about z got %g", got)
	}
	if got := SignedAngle(y, x, z); math.Abs(got+math.Pi/2) > tol {
		t.Errorf("y to x about z got %g", got)
	}
	if got := PlaneDist(r3.Vec{Z: -2}, r3.Vec{}, r3.Vec{Z: 3}); got != -2 {
		t.Errorf("PlaneDist got %g, want -2", got)
	}
}

func TestBoxTransform(t *testing.T) {
	b := Box{Min: r3.Vec{}, Max: r3.Vec{X: 2, Y: 1, Z: 1}}
	got := b.Transform(Rotation(math.Pi/2, r3.Vec{Z: 1}))
	want := Box{Min: r3.Vec{X: -1}, Max: r3.Vec{Y: 2, Z: 1}}
	if !got.Equals(want, 1e-9) {
		t.Errorf("rotated box got %v, want %v", got, want)
	}
	if b.Largest() != 2 || b.Smallest() != 1 {
		t.Errorf("box extremes got %g %g", b.Largest(), b.Smallest())
	}
}
