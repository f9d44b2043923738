package surf

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/fea/internal/d3"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestHalfEllipsoidOnSphere(t *testing.T) {
	const radius = 2.5
	sphere, err := sdf.Sphere3D(radius)
	if err != nil {
		t.Fatal(err)
	}
	h := NewHalfEllipsoid(d3.Scaling(d3.Elem(radius)))
	for i := 0; i <= 8; i++ {
		for j := 0; j <= 16; j++ {
			u, w := float64(i)/8, 4*float64(j)/16
			p := h.Evaluate(u, w)
			if d := sphere.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z}); math.Abs(d) > 1e-9 {
				t.Fatalf("point (%g,%g) at distance %g from sphere", u, w, d)
			}
			if p.X < -1e-12 {
				t.Fatalf("point (%g,%g) on wrong half: %v", u, w, p)
			}
		}
	}
	assert.True(t, d3.EqualWithin(h.Evaluate(0, 1), r3.Vec{X: radius}, 1e-12), "pole")
	b := h.Bounds()
	assert.InDelta(t, radius, b.Max.X, 1e-9)
	assert.InDelta(t, 0, b.Min.X, 1e-9)
	assert.InDelta(t, -radius, b.Min.Y, 1e-9)
}

func TestHalfEllipsoidNormal(t *testing.T) {
	h := NewHalfEllipsoid(d3.Scaling(r3.Vec{X: 1, Y: 2, Z: 3}))
	for _, uw := range [][2]float64{{0.3, 0.5}, {0.9, 2.2}, {1, 3.9}} {
		p := h.Evaluate(uw[0], uw[1])
		n := h.Normal(uw[0], uw[1])
		// Outward normal of x²+y²/4+z²/9=1 is proportional to the gradient.
		grad := d3.UnitOr(r3.Vec{X: p.X, Y: p.Y / 4, Z: p.Z / 9})
		assert.InDelta(t, 1, r3.Dot(n, grad), 1e-9)
		assert.InDelta(t, -1, r3.Dot(h.Flip().Normal(uw[0], uw[1]), grad), 1e-9)
	}
	// Mirroring reverses the parametric orientation.
	m := h.Transform(d3.ReflectY())
	p := m.Evaluate(0.5, 1)
	assert.Less(t, r3.Dot(m.Normal(0.5, 1), p), 0.0)
}

func TestHalfEllipsoidSplit(t *testing.T) {
	h := NewHalfEllipsoid(d3.Translation(r3.Vec{Z: 1}))
	patches := h.Split()
	if len(patches) != 4 {
		t.Fatalf("got %d patches, want 4", len(patches))
	}
	for j, p := range patches {
		if p.Domain.Min.Y != float64(j) || p.Domain.Max.Y != float64(j+1) {
			t.Errorf("patch %d domain %v", j, p.Domain)
		}
		if len(p.Points) != 9 {
			t.Errorf("patch %d has %d points", j, len(p.Points))
		}
	}
	cu, cw := h.Closed()
	if cu || !cw {
		t.Error("half ellipsoid should be closed in w only")
	}
}
