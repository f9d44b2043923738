package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize = 80
	stlRecordSize = 50
	// maxNormalMismatches bounds how many records may disagree with their
	// stored normal before reading gives up.
	maxNormalMismatches = 10_000
	// maxPrealloc bounds the facets allocated up front from the header
	// count, which may not match the file length.
	maxPrealloc = 1 << 16
)

// ErrNormalMismatch is returned along with the triangles read when some
// stored normals disagree with the winding of their vertices. Coarse
// tessellations of curved parts can trigger it on valid files.
var ErrNormalMismatch = errors.New("stl: stored normal differs from vertex winding")

// stlRecord is one binary STL facet in single precision.
type stlRecord struct {
	normal, a, b, c [3]float32
}

func f32(v r3.Vec) [3]float32 { return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)} }

func f64(f [3]float32) r3.Vec { return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])} }

func newRecord(t r3.Triangle) stlRecord {
	n := t.Normal()
	if l := r3.Norm(n); l > 0 {
		n = r3.Scale(1/l, n)
	}
	return stlRecord{normal: f32(n), a: f32(t[0]), b: f32(t[1]), c: f32(t[2])}
}

func (rec stlRecord) marshal(b []byte) {
	for i, v := range [4][3]float32{rec.normal, rec.a, rec.b, rec.c} {
		for j, x := range v {
			binary.LittleEndian.PutUint32(b[12*i+4*j:], math.Float32bits(x))
		}
	}
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (rec *stlRecord) unmarshal(b []byte) {
	for i, v := range [4]*[3]float32{&rec.normal, &rec.a, &rec.b, &rec.c} {
		for j := range v {
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(b[12*i+4*j:]))
		}
	}
}

func (rec stlRecord) triangle() r3.Triangle {
	return r3.Triangle{f64(rec.a), f64(rec.b), f64(rec.c)}
}

func finite(v [3]float32) bool {
	for _, x := range v {
		if math32.IsNaN(x) || math32.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func near(u, v [3]float32, tol float32) bool {
	return math32.Abs(u[0]-v[0]) <= tol && math32.Abs(u[1]-v[1]) <= tol && math32.Abs(u[2]-v[2]) <= tol
}

// check validates a record read from a file.
func (rec stlRecord) check() error {
	const vertexTol, normalTol = 1e-12, 5e-2
	if !finite(rec.normal) || !finite(rec.a) || !finite(rec.b) || !finite(rec.c) {
		return errors.New("stl: inf or NaN in facet")
	}
	if near(rec.a, rec.b, vertexTol) || near(rec.b, rec.c, vertexTol) || near(rec.c, rec.a, vertexTol) {
		return errors.New("stl: degenerate facet")
	}
	n := newRecord(rec.triangle()).normal
	flipped := [3]float32{-n[0], -n[1], -n[2]}
	if !near(n, rec.normal, normalTol) && !near(flipped, rec.normal, normalTol) {
		return ErrNormalMismatch
	}
	return nil
}

func writeHeader(w io.Writer, count uint32) error {
	var h [stlHeaderSize + 4]byte
	binary.LittleEndian.PutUint32(h[stlHeaderSize:], count)
	_, err := w.Write(h[:])
	return err
}

// WriteSTL writes model as a binary STL.
func WriteSTL(w io.Writer, model []r3.Triangle) error {
	if len(model) == 0 {
		return errors.New("stl: no triangles to write")
	}
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, uint32(len(model))); err != nil {
		return err
	}
	var b [stlRecordSize]byte
	for _, t := range model {
		newRecord(t).marshal(b[:])
		if _, err := bw.Write(b[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CreateSTL streams the triangles of r into a binary STL file at path.
// The facet count is written once r is exhausted.
func CreateSTL(path string, r Renderer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := writeHeader(bw, 0); err != nil {
		return err
	}
	var (
		count uint32
		rec   [stlRecordSize]byte
		buf   = make([]r3.Triangle, 1024)
	)
	for {
		n, rerr := r.ReadTriangles(buf)
		for _, t := range buf[:n] {
			newRecord(t).marshal(rec[:])
			if _, err := bw.Write(rec[:]); err != nil {
				return err
			}
			count++
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if _, err := f.Seek(stlHeaderSize, io.SeekStart); err != nil {
		return err
	}
	return binary.Write(f, binary.LittleEndian, count)
}

// ReadSTL reads the triangles of a binary STL. ErrNormalMismatch may be
// returned along with every triangle read.
func ReadSTL(r io.Reader) ([]r3.Triangle, error) {
	var h [stlHeaderSize + 4]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return nil, fmt.Errorf("stl: reading header: %w", err)
	}
	count := binary.LittleEndian.Uint32(h[stlHeaderSize:])
	if count == 0 {
		return nil, errors.New("stl: header declares no triangles")
	}
	var (
		b          [stlRecordSize]byte
		rec        stlRecord
		mismatches int
		out        = make([]r3.Triangle, 0, min(count, maxPrealloc))
	)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("stl: facet %d of %d: %w", i+1, count, err)
		}
		rec.unmarshal(b[:])
		switch err := rec.check(); {
		case errors.Is(err, ErrNormalMismatch):
			mismatches++
			if mismatches > maxNormalMismatches {
				return out, fmt.Errorf("%w: more than %d facets", ErrNormalMismatch, maxNormalMismatches)
			}
		case err != nil:
			return nil, fmt.Errorf("facet %d of %d: %w", i+1, count, err)
		}
		out = append(out, rec.triangle())
	}
	if mismatches > 0 {
		return out, ErrNormalMismatch
	}
	return out, nil
}
