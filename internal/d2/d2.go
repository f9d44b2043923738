// Package d2 holds the parametric (u,w) plane helpers used on top of gonum's r2.
package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a rectangle of the parametric plane. X holds u and Y holds w.
type Box r2.Box

// Contains reports whether v lies in the box, bounds included.
func (a Box) Contains(v r2.Vec) bool {
	return a.Min.X <= v.X && v.X <= a.Max.X && a.Min.Y <= v.Y && v.Y <= a.Max.Y
}

// Transform is the planar affine map v ↦ Av + b. The zero value is the identity.
type Transform struct {
	// a is A with the identity subtracted from its diagonal.
	a [2][2]float64
	b r2.Vec
}

// Rotation returns a transform rotating counter-clockwise by angle radians about the origin.
func Rotation(angle float64) Transform {
	s, c := math.Sincos(angle)
	return Transform{a: [2][2]float64{{c - 1, -s}, {s, c - 1}}}
}

// Translation returns a transform translating by v.
func Translation(v r2.Vec) Transform { return Transform{b: v} }

func (t Transform) linear() [2][2]float64 {
	m := t.a
	m[0][0]++
	m[1][1]++
	return m
}

func apply(m [2][2]float64, v r2.Vec) r2.Vec {
	return r2.Vec{X: m[0][0]*v.X + m[0][1]*v.Y, Y: m[1][0]*v.X + m[1][1]*v.Y}
}

// Mul returns the transform applying b first and then t.
func (t Transform) Mul(b Transform) Transform {
	m, n := t.linear(), b.linear()
	var p [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			p[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	p[0][0]--
	p[1][1]--
	return Transform{a: p, b: r2.Add(apply(m, b.b), t.b)}
}

// ApplyPos applies t to the point v.
func (t Transform) ApplyPos(v r2.Vec) r2.Vec {
	return r2.Add(apply(t.linear(), v), t.b)
}
