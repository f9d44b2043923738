package fea

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCountRange(t *testing.T) {
	for _, start := range []float64{0, 0.1, 0.5, 0.99} {
		for _, positive := range []bool{true, false} {
			last := 0
			// Decreasing spacing never decreases the count.
			for sp := 1.0; sp >= -0.1; sp -= 0.001 {
				n, clamped := ComputeCount(start, sp, positive)
				if n < 1 || n > MaxArrayMembers {
					t.Fatalf("start=%g spacing=%g: count %d out of range", start, sp, n)
				}
				if n < last {
					t.Fatalf("start=%g spacing=%g: count decreased from %d to %d", start, sp, last, n)
				}
				if clamped < 0 || clamped > 1 {
					t.Fatalf("clamped spacing %g out of range", clamped)
				}
				last = n
			}
		}
	}
}

func TestComputeCountExact(t *testing.T) {
	tests := []struct {
		start, spacing float64
		positive       bool
		want           int
	}{
		{0, 0.25, true, 5},
		{0, 0.3, true, 4},
		{0.5, 0.25, true, 3},
		{0.5, 0.25, false, 3},
		{1, 0.1, true, 1},
		{0, 0, true, MaxArrayMembers},
		{0, 2, true, 2},
		{0.2, 0.2, true, 5},
	}
	for _, test := range tests {
		got, _ := ComputeCount(test.start, test.spacing, test.positive)
		if got != test.want {
			t.Errorf("ComputeCount(%g,%g,%v)=%d, want %d", test.start, test.spacing, test.positive, got, test.want)
		}
	}
}

func TestArrayLocations(t *testing.T) {
	a := defaultArrayParams()
	a.Start = RelPlacement(0)
	a.Spacing = RelPlacement(0.25)
	a.derive(10)
	assert.Equal(t, 5, a.Count())
	locs := a.Locations()
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	assert.InDeltaSlice(t, want, locs, 1e-12)

	a.Positive = false
	a.Start = RelPlacement(1)
	a.derive(10)
	assert.InDeltaSlice(t, []float64{1, 0.75, 0.5, 0.25, 0}, a.Locations(), 1e-12)

	a.Spacing = AbsPlacement(5)
	a.derive(10)
	assert.Equal(t, 3, a.Count())
	assert.InDelta(t, 0.5, a.Spacing.Rel, 1e-12)
	p := a.memberPlacement(0.5)
	assert.Equal(t, Abs, p.Mode)
	assert.InDelta(t, 5, p.Abs, 1e-12)
}

func TestRibArrayCompute(t *testing.T) {
	s, w := testStructure(true)
	p, err := s.AddPart(KindRibArray)
	if err != nil {
		t.Fatal(err)
	}
	a := p.(*RibArray)
	a.Spacing = RelPlacement(0.25)
	s.Update()
	if a.Count() != 5 {
		t.Fatalf("got %d members, want 5", a.Count())
	}
	surfs := a.Surfaces()
	if len(surfs) != 5*2 {
		t.Fatalf("got %d surfaces, want copies×members = 10", len(surfs))
	}
	for i := 0; i < a.Count(); i++ {
		y := 0.25 * float64(i) * w.span()
		main := surfs[2*i]
		mirror := surfs[2*i+1]
		assert.InDelta(t, y, main.Evaluate(0.5, 0.5).Y, 1e-9, "member %d", i)
		assert.InDelta(t, -y, mirror.Evaluate(0.5, 0.5).Y, 1e-9, "member %d mirror", i)
	}
	members := a.Members()
	assert.Len(t, members, 5)
	assert.InDelta(t, 2.5, members[1].Location.Abs, 1e-12)
}

func TestSliceArrayCompute(t *testing.T) {
	s, w := testStructure(false)
	p, _ := s.AddPart(KindSliceArray)
	a := p.(*SliceArray)
	a.Plane = XZAbs
	a.Spacing = RelPlacement(0.5)
	s.Update()
	if a.Count() != 3 {
		t.Fatalf("got %d members, want 3", a.Count())
	}
	for i, sf := range a.Surfaces() {
		want := 0.5 * float64(i) * w.span()
		for _, uw := range [][2]float64{{0, 0}, {1, 1}, {0.3, 0.7}} {
			assert.InDelta(t, want, sf.Evaluate(uw[0], uw[1]).Y, 1e-9)
		}
	}
}
