package fea

import (
	"math"

	"github.com/soypat/fea/surf"
)

// countTol absorbs the rounding of remaining/spacing at exact multiples.
const countTol = 1e-9

// ComputeCount returns the member count of an array starting at the
// normalized location start with normalized spacing, along with the
// spacing clamped to its valid range. The lower spacing bound keeps the
// count at or below MaxArrayMembers.
func ComputeCount(start, spacing float64, positive bool) (count int, clamped float64) {
	start = Clamp(start, 0, 1)
	remaining := 1 - start
	if !positive {
		remaining = start
	}
	if remaining <= 0 {
		return 1, Clamp(spacing, 0, 1)
	}
	clamped = Clamp(spacing, remaining/(MaxArrayMembers-1), 1)
	count = 1 + int(math.Floor(remaining/clamped+countTol))
	return count, clamped
}

// ArrayParams generates evenly spaced member locations.
type ArrayParams struct {
	Start    Placement `xml:"StartLocation"`
	Spacing  Placement `xml:"Spacing"`
	Positive bool      `xml:"PositiveDirectionFlag"`
	count    int
}

func defaultArrayParams() ArrayParams {
	return ArrayParams{
		Start:    RelPlacement(0),
		Spacing:  Placement{Mode: Rel, Rel: 0.2, Abs: 0.1},
		Positive: true,
	}
}

// derive makes the start and spacing pairs consistent against ref and updates the count.
func (a *ArrayParams) derive(ref float64) {
	a.Start.Derive(ref)
	a.Spacing.Derive(ref)
	var sp float64
	a.count, sp = ComputeCount(a.Start.Rel, a.Spacing.Rel, a.Positive)
	if sp != a.Spacing.Rel {
		a.Spacing.Rel = sp
		a.Spacing.Abs = sp * ref
	}
}

// Count returns the member count derived at the last update.
func (a *ArrayParams) Count() int { return a.count }

// Locations returns the normalized locations of the members.
func (a *ArrayParams) Locations() []float64 {
	dir := 1.0
	if !a.Positive {
		dir = -1
	}
	locs := make([]float64, a.count)
	for i := range locs {
		locs[i] = Clamp(a.Start.Rel+dir*float64(i)*a.Spacing.Rel, 0, 1)
	}
	return locs
}

// memberPlacement returns the placement of a member at normalized location
// rel, in the mode of the array spacing.
func (a *ArrayParams) memberPlacement(rel float64) Placement {
	p := Placement{Mode: a.Spacing.Mode, Rel: rel, Abs: rel * a.Spacing.AbsMax}
	p.AbsMax = a.Spacing.AbsMax
	return p
}

// RibArray is a set of evenly spaced ribs sharing one orientation.
type RibArray struct {
	partBase
	ArrayParams
	Theta    float64 `xml:"Theta"`
	PerpEdge EdgeRef `xml:"PerpendicularEdgeID"`
}

func (a *RibArray) Kind() Kind { return KindRibArray }

// Members returns the parameters of each rib of the array.
func (a *RibArray) Members() []RibParams {
	locs := a.Locations()
	members := make([]RibParams, len(locs))
	for i, rel := range locs {
		members[i] = RibParams{Location: a.memberPlacement(rel), Theta: a.Theta, PerpEdge: a.PerpEdge}
	}
	return members
}

func (a *RibArray) compute(ctx *Context) {
	sh, main, ok := ctx.parent(&a.partBase)
	if !ok {
		return
	}
	w, ok := sh.(WingShape)
	if !ok {
		tracer().Debugf("rib array: parent %q is not a wing", sh.ID())
		return
	}
	a.derive(TotalSpan(w))
	out := make([]surf.Surface, 0, a.count*len(a.symm))
	for _, rp := range a.Members() {
		primary, ok := ribSurface(ctx, sh, main, &rp)
		if !ok {
			return
		}
		out = append(out, a.propagate(sh, primary)...)
	}
	a.surfaces = out
}

// SliceArray is a set of evenly spaced slices sharing one orientation.
type SliceArray struct {
	partBase
	ArrayParams
	Orientation
}

func (a *SliceArray) Kind() Kind { return KindSliceArray }

// Members returns the parameters of each slice of the array.
func (a *SliceArray) Members() []SliceParams {
	locs := a.Locations()
	members := make([]SliceParams, len(locs))
	for i, rel := range locs {
		members[i] = SliceParams{Orientation: a.Orientation, Location: a.memberPlacement(rel)}
	}
	return members
}

func (a *SliceArray) compute(ctx *Context) {
	sh, main, ok := ctx.parent(&a.partBase)
	if !ok {
		return
	}
	f, ok := newSliceFrame(sh, main, a.Plane)
	if !ok {
		return
	}
	a.derive(f.perp)
	out := make([]surf.Surface, 0, a.count*len(a.symm))
	for _, sp := range a.Members() {
		primary := sliceSurface(sh, main, f, sp.Orientation, &sp.Location)
		out = append(out, a.propagate(sh, primary)...)
	}
	a.surfaces = out
}
