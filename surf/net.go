package surf

import (
	"errors"
	"math"

	"github.com/soypat/fea/internal/d2"
	"github.com/soypat/fea/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const closedTol = 1e-9

// Net is a piecewise bilinear surface interpolating a grid of points.
// Row i of the grid is the constant u=i curve, so the domain is
// [0,rows-1]×[0,cols-1].
type Net struct {
	pts              [][]r3.Vec
	flip             bool
	closedU, closedW bool
}

var _ Surface = (*Net)(nil)

// NewNet creates a bilinear net from a rectangular grid of at least 2×2 points.
// The grid is copied.
func NewNet(grid [][]r3.Vec) (*Net, error) {
	if len(grid) < 2 {
		return nil, errors.New("net needs at least two rows")
	}
	nw := len(grid[0])
	if nw < 2 {
		return nil, errors.New("net needs at least two columns")
	}
	pts := make([][]r3.Vec, len(grid))
	for i := range grid {
		if len(grid[i]) != nw {
			return nil, errors.New("net grid is not rectangular")
		}
		pts[i] = append([]r3.Vec(nil), grid[i]...)
	}
	n := &Net{pts: pts}
	n.closedU, n.closedW = n.detectClosed()
	return n, nil
}

func (n *Net) detectClosed() (cu, cw bool) {
	last := len(n.pts) - 1
	cu = true
	for j := range n.pts[0] {
		if !d3.EqualWithin(n.pts[0][j], n.pts[last][j], closedTol) {
			cu = false
			break
		}
	}
	lastw := len(n.pts[0]) - 1
	cw = true
	for i := range n.pts {
		if !d3.EqualWithin(n.pts[i][0], n.pts[i][lastw], closedTol) {
			cw = false
			break
		}
	}
	return cu, cw
}

// Rows returns the number of constant-u rows in the net.
func (n *Net) Rows() int { return len(n.pts) }

// Cols returns the number of points per row.
func (n *Net) Cols() int { return len(n.pts[0]) }

// Point returns grid point (i,j).
func (n *Net) Point(i, j int) r3.Vec { return n.pts[i][j] }

func (n *Net) ParamMax() (umax, wmax float64) {
	return float64(len(n.pts) - 1), float64(len(n.pts[0]) - 1)
}

func (n *Net) Closed() (u, w bool) { return n.closedU, n.closedW }

func (n *Net) FlipNormal() bool { return n.flip }

// cell returns the cell index and local coordinate of parameter t over nseg segments.
func cell(t float64, nseg int) (int, float64) {
	t = math.Max(0, math.Min(float64(nseg), t))
	i := int(math.Floor(t))
	if i >= nseg {
		i = nseg - 1
	}
	return i, t - float64(i)
}

func (n *Net) Evaluate(u, w float64) r3.Vec {
	i, fu := cell(u, len(n.pts)-1)
	j, fw := cell(w, len(n.pts[0])-1)
	p00, p10 := n.pts[i][j], n.pts[i+1][j]
	p01, p11 := n.pts[i][j+1], n.pts[i+1][j+1]
	a := r3.Add(r3.Scale(1-fu, p00), r3.Scale(fu, p10))
	b := r3.Add(r3.Scale(1-fu, p01), r3.Scale(fu, p11))
	return r3.Add(r3.Scale(1-fw, a), r3.Scale(fw, b))
}

func (n *Net) partials(u, w float64) (du, dw r3.Vec) {
	i, fu := cell(u, len(n.pts)-1)
	j, fw := cell(w, len(n.pts[0])-1)
	p00, p10 := n.pts[i][j], n.pts[i+1][j]
	p01, p11 := n.pts[i][j+1], n.pts[i+1][j+1]
	du = r3.Add(r3.Scale(1-fw, r3.Sub(p10, p00)), r3.Scale(fw, r3.Sub(p11, p01)))
	dw = r3.Add(r3.Scale(1-fu, r3.Sub(p01, p00)), r3.Scale(fu, r3.Sub(p11, p10)))
	return du, dw
}

func (n *Net) Normal(u, w float64) r3.Vec {
	du, dw := n.partials(u, w)
	nrm := r3.Cross(du, dw)
	if r3.Norm(nrm) < 1e-14 {
		// Collapsed edge such as a wing tip or nose point. Sample toward the cell center.
		i, _ := cell(u, len(n.pts)-1)
		j, _ := cell(w, len(n.pts[0])-1)
		du, dw = n.partials(float64(i)+0.5, float64(j)+0.5)
		nrm = r3.Cross(du, dw)
	}
	nrm = d3.UnitOr(nrm)
	if n.flip {
		return r3.Scale(-1, nrm)
	}
	return nrm
}

func (n *Net) Bounds() d3.Box {
	b := d3.Box{Min: n.pts[0][0], Max: n.pts[0][0]}
	for i := range n.pts {
		for _, p := range n.pts[i] {
			b = b.Include(p)
		}
	}
	return b
}

func (n *Net) Flip() Surface {
	cp := *n
	cp.flip = !n.flip
	return &cp
}

func (n *Net) Transform(t d3.Transform) Surface {
	pts := make([][]r3.Vec, len(n.pts))
	for i := range n.pts {
		pts[i] = make([]r3.Vec, len(n.pts[i]))
		for j, p := range n.pts[i] {
			pts[i][j] = t.Transform(p)
		}
	}
	return &Net{pts: pts, flip: n.flip, closedU: n.closedU, closedW: n.closedW}
}

func (n *Net) Split() []Patch {
	var patches []Patch
	for i := 0; i < len(n.pts)-1; i++ {
		for j := 0; j < len(n.pts[i])-1; j++ {
			patches = append(patches, Patch{
				Domain: d2.Box{
					Min: r2.Vec{X: float64(i), Y: float64(j)},
					Max: r2.Vec{X: float64(i + 1), Y: float64(j + 1)},
				},
				Points: d3.Set{n.pts[i][j], n.pts[i+1][j], n.pts[i][j+1], n.pts[i+1][j+1]},
			})
		}
	}
	return patches
}
