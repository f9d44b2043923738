package export

import (
	"bytes"

	"github.com/soypat/fea"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// outlineSamples is the number of points per parametric edge of a traced surface.
const outlineSamples = 16

// outline returns the parametric boundary of s projected on the xy plane.
func outline(s surf.Surface) plotter.XYs {
	xys := make(plotter.XYs, 0, 4*outlineSamples+1)
	add := func(u, w float64) {
		p := surf.Evaluate01(s, u, w)
		xys = append(xys, plotter.XY{X: p.X, Y: p.Y})
	}
	for i := 0; i < outlineSamples; i++ {
		add(float64(i)/outlineSamples, 0)
	}
	for i := 0; i < outlineSamples; i++ {
		add(1, float64(i)/outlineSamples)
	}
	for i := outlineSamples; i > 0; i-- {
		add(float64(i)/outlineSamples, 1)
	}
	for i := outlineSamples; i >= 0; i-- {
		add(0, float64(i)/outlineSamples)
	}
	return xys
}

// Planform plots the top view of s: the outline of every part surface,
// symmetry copies included, and the fix points as markers.
func Planform(s *fea.Structure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Name
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	for i, part := range s.Parts() {
		name := part.Info().Name
		if fp, ok := part.(*fea.FixPoint); ok {
			pts := fp.Points()
			if len(pts) == 0 {
				continue
			}
			xys := make(plotter.XYs, len(pts))
			for j, pt := range pts {
				xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, err
			}
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Shape = draw.CrossGlyph{}
			p.Add(sc)
			p.Legend.Add(name, sc)
			continue
		}
		for j, sf := range part.Surfaces() {
			l, err := plotter.NewLine(outline(sf))
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = plotutil.Color(i)
			l.LineStyle.Width = vg.Points(0.75)
			p.Add(l)
			if j == 0 {
				p.Legend.Add(name, l)
			}
		}
	}
	return p, nil
}

// planformPNG renders the planform of s as a PNG image of the given size.
func planformPNG(s *fea.Structure, w, h vg.Length) ([]byte, error) {
	p, err := Planform(s)
	if err != nil {
		return nil, err
	}
	c := vgimg.New(w, h)
	p.Draw(draw.New(c))
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
