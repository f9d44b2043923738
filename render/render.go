// Package render tessellates part surfaces and writes them as STL.
package render

import (
	"errors"
	"io"

	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer produces triangles in batches. ReadTriangles returns io.EOF
// once no triangles remain.
type Renderer interface {
	ReadTriangles(t []r3.Triangle) (int, error)
}

// SurfaceRenderer tessellates a list of surfaces one at a time.
type SurfaceRenderer struct {
	surfs   []surf.Surface
	nu, nw  int
	next    int
	pending []r3.Triangle
}

// NewSurfaceRenderer returns a Renderer that meshes each surface with an nu×nw quad grid.
func NewSurfaceRenderer(surfs []surf.Surface, nu, nw int) *SurfaceRenderer {
	return &SurfaceRenderer{surfs: surfs, nu: nu, nw: nw}
}

func (r *SurfaceRenderer) ReadTriangles(t []r3.Triangle) (int, error) {
	for len(r.pending) < len(t) && r.next < len(r.surfs) {
		if s := r.surfs[r.next]; s != nil {
			r.pending = append(r.pending, surf.Mesh(s, r.nu, r.nw)...)
		}
		r.next++
	}
	n := copy(t, r.pending)
	r.pending = r.pending[n:]
	if n == 0 && r.next >= len(r.surfs) {
		return 0, io.EOF
	}
	return n, nil
}

// RenderAll drains r. Reaching io.EOF is not an error.
func RenderAll(r Renderer) ([]r3.Triangle, error) {
	var all []r3.Triangle
	buf := make([]r3.Triangle, 1024)
	for {
		n, err := r.ReadTriangles(buf)
		all = append(all, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return all, nil
		}
		if err != nil {
			return all, err
		}
	}
}
