package fea_test

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/soypat/fea"
	"github.com/soypat/fea/geom"
	"github.com/soypat/fea/surf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var corners = [][2]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {0.5, 0.5}}

func newStructure(t *testing.T, sh fea.Shape) *fea.Structure {
	t.Helper()
	return fea.NewStructure(fea.Shapes{sh.ID(): sh}, sh.ID(), 0)
}

func addPart(t *testing.T, s *fea.Structure, k fea.Kind) fea.Part {
	t.Helper()
	p, err := s.AddPart(k)
	require.NoError(t, err)
	return p
}

func unitAxis(s surf.Surface) r3.Vec { return r3.Unit(fea.MemberAxis(s)) }

func TestRibOnRectWing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w, err := geom.NewRectWing("w", 2, 0.1, 10, 2)
	require.NoError(t, err)
	s := newStructure(t, w)
	rib := addPart(t, s, fea.KindRib)
	s.Update()
	surfs := rib.Surfaces()
	require.Len(t, surfs, 1)
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, uw := range corners {
		p := surf.Evaluate01(surfs[0], uw[0], uw[1])
		assert.InDelta(t, 5, p.Y, 1e-9, "rib point %v", p)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
	}
	assert.LessOrEqual(t, minX, 0.0, "rib must reach the leading edge")
	assert.GreaterOrEqual(t, maxX, 2.0, "rib must reach the trailing edge")
	n := surfs[0].Normal(0.5, 0.5)
	assert.InDelta(t, 1, math.Abs(n.Y), 1e-9)
	assert.Equal(t, w.Surface(0).FlipNormal(), surfs[0].FlipNormal())
}

func TestRibCappedWing(t *testing.T) {
	w, err := geom.NewRectWing("capped", 1, 0.12, 8, 2)
	require.NoError(t, err)
	w.CapRoot, w.CapTip = true, true
	require.NoError(t, w.Build())
	s := newStructure(t, w)
	rib := addPart(t, s, fea.KindRib).(*fea.Rib)
	rib.Location = fea.RelPlacement(0.25)
	s.Update()
	p := surf.Evaluate01(rib.Surfaces()[0], 0.5, 0.5)
	assert.InDelta(t, 2, p.Y, 1e-9, "caps must not shift span locations")
	assert.InDelta(t, 2, rib.Location.Abs, 1e-12)
}

func sweptWing(t *testing.T) *geom.Wing {
	foils := []geom.Airfoil{{Chord: 2, Thickness: 0.1}, {Chord: 2, Thickness: 0.1}}
	w, err := geom.NewWing("swept", foils, []geom.WingSection{{Span: 10, Sweep: 30}})
	require.NoError(t, err)
	return w
}

func TestRibPerpendicularToSpar(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w := sweptWing(t)
	s := newStructure(t, w)
	// Ribs are added before the spar they reference: update order must not matter.
	rib := addPart(t, s, fea.KindRib).(*fea.Rib)
	plain := addPart(t, s, fea.KindRib).(*fea.Rib)
	spar := addPart(t, s, fea.KindSpar)
	rib.PerpEdge = fea.PartEdge(spar.Info().ID)
	s.Update()

	sparAxis := unitAxis(spar.Surfaces()[0])
	assert.InDelta(t, 0, r3.Dot(unitAxis(rib.Surfaces()[0]), sparAxis), 1e-9)
	// Without a reference the rib follows the chord, 30° off the normal to the spar.
	assert.InDelta(t, 0.5, math.Abs(r3.Dot(unitAxis(plain.Surfaces()[0]), sparAxis)), 1e-9)

	// The leading edge is parallel to the spar on a wing of constant chord.
	plain.PerpEdge = fea.EdgeRef{Kind: fea.EdgeLeading}
	s.Update()
	assert.InDelta(t, 0, r3.Dot(unitAxis(plain.Surfaces()[0]), sparAxis), 1e-9)

	// A dangling reference falls back to no rotation.
	rib.PerpEdge = fea.PartEdge("deleted")
	s.Update()
	assert.InDelta(t, 0.5, math.Abs(r3.Dot(unitAxis(rib.Surfaces()[0]), sparAxis)), 1e-9)
}

func TestSparSpansWing(t *testing.T) {
	w := sweptWing(t)
	s := newStructure(t, w)
	spar := addPart(t, s, fea.KindSpar).(*fea.Spar)
	spar.Location = fea.RelPlacement(0.25)
	s.Update()
	sf := spar.Surfaces()[0]
	a, b := surf.Evaluate01(sf, 0, 0.5), surf.Evaluate01(sf, 1, 0.5)
	lo, hi := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	assert.LessOrEqual(t, lo, 0.0)
	assert.GreaterOrEqual(t, hi, 10.0)
	assert.InDelta(t, 0.5, spar.Location.Abs, 1e-9)
}

func TestMirroredWingParts(t *testing.T) {
	w, err := geom.NewRectWing("m", 1, 0.1, 10, 1)
	require.NoError(t, err)
	w.Mirror = true
	require.NoError(t, w.Build())
	require.Equal(t, 2, w.NumSurfaces())
	s := newStructure(t, w)
	rib := addPart(t, s, fea.KindRib).(*fea.Rib)
	rib.Location = fea.RelPlacement(0.25)
	skin := s.InitSkin()
	s.Update()
	require.Len(t, rib.Surfaces(), 2)
	assert.InDelta(t, 2.5, surf.Evaluate01(rib.Surfaces()[0], 0.5, 0.5).Y, 1e-9)
	assert.InDelta(t, -2.5, surf.Evaluate01(rib.Surfaces()[1], 0.5, 0.5).Y, 1e-9)
	assert.Len(t, skin.Surfaces(), 2)
	assert.Equal(t, w.Surface(1), skin.Surfaces()[1])
}

func revolution(t *testing.T, radii ...float64) *geom.Body {
	b, err := geom.NewBodyOfRevolution("fuse", 10, radii)
	require.NoError(t, err)
	return b
}

func TestDomeOnBody(t *testing.T) {
	b := revolution(t, 0.5, 1, 1, 0.5)
	s := newStructure(t, b)
	d := addPart(t, s, fea.KindDome).(*fea.Dome)
	d.A, d.B, d.C = 0.5, 1, 0.8
	d.X = 2
	s.Update()
	require.Len(t, d.Surfaces(), 1)
	sf := d.Surfaces()[0]
	assert.True(t, r3.Norm(r3.Sub(sf.Evaluate(0, 0), r3.Vec{X: 2.5})) < 1e-12, "pole at +x")
	umax, wmax := sf.ParamMax()
	for u := 0.0; u <= umax; u += umax / 4 {
		for w := 0.0; w <= wmax; w += wmax / 8 {
			p := sf.Evaluate(u, w)
			e := math.Pow((p.X-2)/0.5, 2) + p.Y*p.Y + math.Pow(p.Z/0.8, 2)
			assert.InDelta(t, 1, e, 1e-9, "u=%g w=%g", u, w)
			assert.GreaterOrEqual(t, p.X, 2-1e-12)
		}
	}

	d.Flip = true
	s.Update()
	sf = d.Surfaces()[0]
	assert.True(t, r3.Norm(r3.Sub(sf.Evaluate(0, 0), r3.Vec{X: 1.5})) < 1e-12, "flipped pole at -x")

	d.RotX = 400
	s.Update()
	assert.Equal(t, 180.0, d.RotX)
	d.A = -1
	s.Update()
	assert.Equal(t, 0.0, d.A)
}

func TestSlicesOnBody(t *testing.T) {
	b := revolution(t, 1, 1, 1)
	s := newStructure(t, b)
	cu := addPart(t, s, fea.KindSlice).(*fea.Slice)
	cu.Plane = fea.ConstU
	yz := addPart(t, s, fea.KindSlice).(*fea.Slice)
	yz.Location = fea.RelPlacement(0.3)
	s.Update()

	for _, uw := range corners {
		assert.InDelta(t, 5, surf.Evaluate01(cu.Surfaces()[0], uw[0], uw[1]).X, 1e-9)
		assert.InDelta(t, 3, surf.Evaluate01(yz.Surfaces()[0], uw[0], uw[1]).X, 1e-9)
	}
	assert.InDelta(t, 10, cu.Location.AbsMax, 1e-9)
	assert.InDelta(t, 3, yz.Location.Abs, 1e-9)

	// A rotated slice stays centered on its location.
	yz.RotY = 30
	s.Update()
	c := surf.Evaluate01(yz.Surfaces()[0], 0.5, 0.5)
	assert.InDelta(t, 3, c.X, 1e-9)
}

func TestConstUSliceArrayOnBody(t *testing.T) {
	b := revolution(t, 1, 1, 1)
	s := newStructure(t, b)
	a := addPart(t, s, fea.KindSliceArray).(*fea.SliceArray)
	a.Plane = fea.ConstU
	a.Spacing = fea.RelPlacement(0.25)
	s.Update()
	require.Equal(t, 5, a.Count())
	surfs := a.Surfaces()
	require.Len(t, surfs, 5)
	for i, sf := range surfs {
		for _, uw := range corners {
			assert.InDelta(t, 2.5*float64(i), surf.Evaluate01(sf, uw[0], uw[1]).X, 1e-9, "member %d", i)
		}
	}
	assert.InDelta(t, 10, a.Spacing.AbsMax, 1e-9)
}

func TestRibOnBodyKeepsNoSurfaces(t *testing.T) {
	b := revolution(t, 1, 1)
	s := newStructure(t, b)
	rib := addPart(t, s, fea.KindRib)
	spar := addPart(t, s, fea.KindSpar)
	s.Update()
	assert.Empty(t, rib.Surfaces(), "ribs need a wing parent")
	assert.Empty(t, spar.Surfaces(), "spars need a wing parent")
}
