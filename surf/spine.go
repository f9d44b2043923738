package surf

import (
	"errors"

	"github.com/soypat/fea/internal/d3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSpineSamples is the number of constant-u stations used by BuildSpine callers
// that do not need a specific resolution.
const DefaultSpineSamples = 101

// Spine is an arc-length parametrization of the curve through the
// centroids of the constant-u sections of a surface.
type Spine struct {
	us      []float64
	centers []r3.Vec
	lengths []float64
	// lengthToU inverts the cumulative length.
	lengthToU interp.PiecewiseLinear
	uToLength interp.PiecewiseLinear
}

// BuildSpine samples n constant-u sections of s and builds the spine through their centroids.
func BuildSpine(s Surface, n int) (*Spine, error) {
	if n < 2 {
		return nil, errors.New("spine needs at least two stations")
	}
	umax, wmax := s.ParamMax()
	const nw = 32
	sp := &Spine{}
	var segs []float64
	for i := 0; i < n; i++ {
		u := umax * float64(i) / float64(n-1)
		var c r3.Vec
		for j := 0; j < nw; j++ {
			c = r3.Add(c, s.Evaluate(u, wmax*float64(j)/nw))
		}
		c = r3.Scale(1.0/nw, c)
		if len(sp.centers) > 0 {
			seg := d3.Dist(c, sp.centers[len(sp.centers)-1])
			if seg <= 0 {
				// Coincident stations would break the strictly increasing length table.
				continue
			}
			segs = append(segs, seg)
		} else {
			segs = append(segs, 0)
		}
		sp.us = append(sp.us, u)
		sp.centers = append(sp.centers, c)
	}
	if len(sp.us) < 2 {
		tracer().Errorf("degenerate spine: all %d stations coincide", n)
		return nil, errors.New("degenerate spine")
	}
	sp.lengths = floats.CumSum(make([]float64, len(segs)), segs)
	if err := sp.lengthToU.Fit(sp.lengths, sp.us); err != nil {
		return nil, err
	}
	if err := sp.uToLength.Fit(sp.us, sp.lengths); err != nil {
		return nil, err
	}
	return sp, nil
}

// Length returns the total arc length of the spine.
func (sp *Spine) Length() float64 { return sp.lengths[len(sp.lengths)-1] }

// U returns the surface parameter at arc length l from the start of the spine.
func (sp *Spine) U(l float64) float64 {
	return sp.lengthToU.Predict(l)
}

// U01 returns the surface parameter at the normalized arc length t ∈ [0,1].
func (sp *Spine) U01(t float64) float64 {
	return sp.U(t * sp.Length())
}

// LengthAt returns the arc length from the start of the spine to parameter u.
func (sp *Spine) LengthAt(u float64) float64 {
	return sp.uToLength.Predict(u)
}

// Center returns the interpolated spine point at parameter u.
func (sp *Spine) Center(u float64) r3.Vec {
	i := 0
	for i < len(sp.us)-2 && u > sp.us[i+1] {
		i++
	}
	du := sp.us[i+1] - sp.us[i]
	t := (u - sp.us[i]) / du
	t = clamp01(t)
	return r3.Add(r3.Scale(1-t, sp.centers[i]), r3.Scale(t, sp.centers[i+1]))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
