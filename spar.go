package fea

import (
	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// SparParams places a spar along the chord of a wing.
type SparParams struct {
	// Location is measured from the leading edge along the chord.
	Location Placement `xml:"CenterLocation"`
	// Theta rotates the spar about the wing normal, in degrees.
	Theta float64 `xml:"Theta"`
	// LimitToSection restricts the spar to wing section Section, counted from 1.
	LimitToSection bool `xml:"LimitSparToSectionFlag"`
	Section        int  `xml:"CurrWingSection"`
}

func defaultSparParams() SparParams {
	return SparParams{Location: RelPlacement(0.5), Section: 1}
}

// Spar is a spanwise planar member of a wing.
type Spar struct {
	partBase
	SparParams
}

func (s *Spar) Kind() Kind { return KindSpar }

func (s *Spar) compute(ctx *Context) {
	sh, main, ok := ctx.parent(&s.partBase)
	if !ok {
		return
	}
	primary, ok := sparSurface(sh, main, &s.SparParams)
	if !ok {
		return
	}
	s.surfaces = s.propagate(sh, primary)
}

// sparRange returns the parameter range a spar spans.
func sparRange(w WingShape, main surf.Surface, sp *SparParams) (u0, u1 float64) {
	if !sp.LimitToSection {
		return wingRange(w, main)
	}
	nsec := len(w.SectionSpans())
	if nsec < 1 {
		nsec = 1
	}
	if sp.Section < 1 {
		sp.Section = 1
	} else if sp.Section > nsec {
		sp.Section = nsec
	}
	capMin, _ := w.Caps()
	u0 = float64(sp.Section - 1)
	if capMin {
		u0++
	}
	return u0, u0 + 1
}

// sparSurface computes the primary surface of a spar and derives its location.
func sparSurface(sh Shape, main surf.Surface, sp *SparParams) (surf.Surface, bool) {
	w, ok := sh.(WingShape)
	if !ok {
		tracer().Debugf("spar: parent %q is not a wing", sh.ID())
		return nil, false
	}
	_, wmax := main.ParamMax()
	wle := 0.5 * wmax
	u0, u1 := sparRange(w, main, sp)
	umid := 0.5 * (u0 + u1)
	sp.Location.Derive(d3.Dist(main.Evaluate(umid, wle), main.Evaluate(umid, 0)))
	rel := sp.Location.Rel

	minTE, minLE := main.Evaluate(u0, 0), main.Evaluate(u0, wle)
	maxTE, maxLE := main.Evaluate(u1, 0), main.Evaluate(u1, wle)
	in := r3.Add(minLE, r3.Scale(rel, r3.Sub(minTE, minLE)))
	out := r3.Add(maxLE, r3.Scale(rel, r3.Sub(maxTE, maxLE)))
	center := d3.Mid(in, out)
	// The root and tip chords are the sides, leading and trailing edges the ends.
	q := Quad{
		InnerA: minLE, OuterA: minTE,
		InnerB: maxLE, OuterB: maxTE,
	}
	b := main.Bounds()
	expan := expansion(b)
	ref := 0.5*d3.Dist(in, out) + expan
	axis := r3.Sub(in, center)
	theta := DtoR(sp.Theta)
	la, lb := ComputeHalfLengths(center, axis, theta, q, ref)
	endA, endB := MemberEnds(center, axis, theta, q, la, lb, expan)
	p := planarMember(endA, endB, thickness(main, umid, q.Normal()), memberHeight(b))
	return matchFlip(p, main.FlipNormal()), true
}
