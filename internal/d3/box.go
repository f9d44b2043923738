package d3

import "gonum.org/v1/gonum/spatial/r3"

// Box is an axis aligned bounding box.
type Box r3.Box

// Size returns the extent of the box along each axis.
func (a Box) Size() r3.Vec { return r3.Sub(a.Max, a.Min) }

// Center returns the center of the box.
func (a Box) Center() r3.Vec { return Mid(a.Min, a.Max) }

// Include returns the box grown to contain v.
func (a Box) Include(v r3.Vec) Box {
	return Box{Min: MinElem(a.Min, v), Max: MaxElem(a.Max, v)}
}

// Largest returns the largest dimension of the box.
func (a Box) Largest() float64 { return Max(a.Size()) }

// Smallest returns the smallest dimension of the box.
func (a Box) Smallest() float64 { return Min(a.Size()) }

// Diagonal returns the length of the box diagonal.
func (a Box) Diagonal() float64 { return r3.Norm(a.Size()) }

func (a Box) Equals(b Box, tol float64) bool {
	return EqualWithin(a.Min, b.Min, tol) && EqualWithin(a.Max, b.Max, tol)
}

// Transform returns the axis aligned box enclosing the eight transformed corners of a.
func (a Box) Transform(t Transform) Box {
	corners := make(Set, 0, 8)
	for i := 0; i < 8; i++ {
		c := a.Min
		if i&1 != 0 {
			c.X = a.Max.X
		}
		if i&2 != 0 {
			c.Y = a.Max.Y
		}
		if i&4 != 0 {
			c.Z = a.Max.Z
		}
		corners = append(corners, t.Transform(c))
	}
	return corners.Bounds()
}
