package fea

import (
	"math"

	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/floats"
)

// PlacementMode selects which member of a Placement pair is authoritative.
type PlacementMode int

const (
	Rel PlacementMode = iota
	Abs
)

func (m PlacementMode) String() string {
	if m == Abs {
		return "Abs"
	}
	return "Rel"
}

// Placement is a location or spacing expressed either as a fraction of a
// reference length or as a length. Derive keeps both forms consistent.
type Placement struct {
	Mode PlacementMode `xml:"Mode,attr"`
	Rel  float64       `xml:"Rel,attr"`
	Abs  float64       `xml:"Abs,attr"`
	// AbsMax is the reference length the pair was last derived against.
	AbsMax float64 `xml:"-"`
}

// RelPlacement returns a placement in relative mode.
func RelPlacement(rel float64) Placement { return Placement{Mode: Rel, Rel: rel} }

// AbsPlacement returns a placement in absolute mode.
func AbsPlacement(abs float64) Placement { return Placement{Mode: Abs, Abs: abs} }

// Derive recomputes the dependent member against the reference length ref
// and clamps both members to their valid range.
func (p *Placement) Derive(ref float64) {
	ref = math.Max(ref, 0)
	p.AbsMax = ref
	switch p.Mode {
	case Abs:
		p.Abs = Clamp(p.Abs, 0, ref)
		if ref > 0 {
			p.Rel = p.Abs / ref
		} else {
			p.Rel = 0
		}
	default:
		p.Rel = Clamp(p.Rel, 0, 1)
		p.Abs = p.Rel * ref
	}
}

// WingU maps the relative span location rel of a wing to the normalized
// parameter u ∈ [0,1] of its main surface. The section containing the
// location is found by scanning all sections; at a boundary shared by two
// sections the later one wins.
func WingU(w WingShape, main surf.Surface, rel float64) float64 {
	spans := w.SectionSpans()
	umax, _ := main.ParamMax()
	if len(spans) == 0 || umax <= 0 {
		return 0
	}
	capMin, _ := w.Caps()
	target := rel * floats.Sum(spans)

	sec := -1
	var frac, lo float64
	for i, span := range spans {
		hi := lo + span
		if target >= lo && target <= hi {
			sec = i
			frac = 0
			if span > 0 {
				frac = (target - lo) / span
			}
		}
		lo = hi
	}
	if sec < 0 {
		// Outside the wing. Snap to the nearest end.
		if target < 0 {
			sec, frac = 0, 0
		} else {
			sec, frac = len(spans)-1, 1
		}
	}
	u0 := float64(sec)
	if capMin {
		u0++
	}
	return Clamp((u0+frac)/umax, 0, 1)
}

// TotalSpan returns the sum of a wing's section spans.
func TotalSpan(w WingShape) float64 { return floats.Sum(w.SectionSpans()) }

// SpineU maps a fraction of the spine length to the normalized parameter of main.
func SpineU(sp *surf.Spine, main surf.Surface, rel float64) float64 {
	umax, _ := main.ParamMax()
	if umax <= 0 {
		return 0
	}
	return Clamp(sp.U01(Clamp(rel, 0, 1))/umax, 0, 1)
}

// ResolveU maps a relative location to the normalized parameter of the main
// surface of sh. Wings use section spans, any other shape uses the spine.
func ResolveU(sh Shape, main surf.Surface, rel float64) float64 {
	if w, ok := sh.(WingShape); ok {
		return WingU(w, main, rel)
	}
	sp, err := surf.BuildSpine(main, surf.DefaultSpineSamples)
	if err != nil {
		return Clamp(rel, 0, 1)
	}
	return SpineU(sp, main, rel)
}
