package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is the affine map v ↦ Av + b. The zero value is the identity.
type Transform struct {
	// a is A with the identity subtracted from its diagonal, which makes
	// Transform{} the identity and lets callers test for it with ==.
	a [3][3]float64
	b r3.Vec
}

type mat3 [3][3]float64

func (t Transform) linear() mat3 {
	m := mat3(t.a)
	for i := range m {
		m[i][i]++
	}
	return m
}

func affine(m mat3, b r3.Vec) Transform {
	for i := range m {
		m[i][i]--
	}
	return Transform{a: m, b: b}
}

func (m mat3) apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func (m mat3) mul(n mat3) (p mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return p
}

// cofactors returns the cofactor matrix, det(m) times the inverse transpose.
func (m mat3) cofactors() (c mat3) {
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			c[i][j] = m[i1][j1]*m[i2][j2] - m[i1][j2]*m[i2][j1]
		}
	}
	return c
}

func (m mat3) det() float64 {
	c := m.cofactors()
	return m[0][0]*c[0][0] + m[0][1]*c[0][1] + m[0][2]*c[0][2]
}

func (m mat3) transpose() (t mat3) {
	for i := range m {
		for j := range m[i] {
			t[j][i] = m[i][j]
		}
	}
	return t
}

func (m mat3) scale(k float64) mat3 {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= k
		}
	}
	return m
}

// Transform applies t to the point v.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	if t == (Transform{}) {
		return v
	}
	return r3.Add(t.linear().apply(v), t.b)
}

// ApplyDir applies the linear part of t to the direction v. Translation is ignored.
func (t Transform) ApplyDir(v r3.Vec) r3.Vec {
	return t.linear().apply(v)
}

// ApplyNormal transforms a surface normal by the inverse transpose of the
// linear part of t. The result is not normalized.
func (t Transform) ApplyNormal(n r3.Vec) r3.Vec {
	m := t.linear()
	det := m.det()
	if det == 0 {
		return r3.Vec{}
	}
	return m.cofactors().scale(1 / det).apply(n)
}

// Mul returns the transform applying b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	m := t.linear()
	return affine(m.mul(b.linear()), r3.Add(m.apply(b.b), t.b))
}

// Det returns the determinant of the linear part of t.
func (t Transform) Det() float64 { return t.linear().det() }

// Orientation returns -1 when t reverses handedness (mirrors) and 1 otherwise.
func (t Transform) Orientation() float64 {
	if t.Det() < 0 {
		return -1
	}
	return 1
}

// Inv returns the inverse of t. A singular t yields the transform that
// collapses every point onto the origin.
func (t Transform) Inv() Transform {
	if t == (Transform{}) {
		return t
	}
	m := t.linear()
	det := m.det()
	if math.Abs(det) < 1e-16 {
		return affine(mat3{}, r3.Vec{})
	}
	inv := m.cofactors().transpose().scale(1 / det)
	return affine(inv, r3.Scale(-1, inv.apply(t.b)))
}

// Equals reports whether every coefficient of t and b differs by less than tolerance.
func (t Transform) Equals(b Transform, tolerance float64) bool {
	for i := range t.a {
		for j := range t.a[i] {
			if math.Abs(t.a[i][j]-b.a[i][j]) >= tolerance {
				return false
			}
		}
	}
	return math.Abs(t.b.X-b.b.X) < tolerance && math.Abs(t.b.Y-b.b.Y) < tolerance && math.Abs(t.b.Z-b.b.Z) < tolerance
}

// Translation returns a transform that translates by v.
func Translation(v r3.Vec) Transform { return Transform{b: v} }

// Rotation returns a transform that rotates by angle radians
// about axis through the origin, following the right hand rule.
func Rotation(angle float64, axis r3.Vec) Transform {
	if angle == 0 {
		return Transform{}
	}
	q := r3.NewRotation(angle, axis)
	var m mat3
	for j, e := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		col := q.Rotate(e)
		m[0][j], m[1][j], m[2][j] = col.X, col.Y, col.Z
	}
	return affine(m, r3.Vec{})
}

// RotationAbout returns a transform rotating by angle radians about
// the line with direction axis passing through origin.
func RotationAbout(origin r3.Vec, angle float64, axis r3.Vec) Transform {
	return Translation(origin).Mul(Rotation(angle, axis)).Mul(Translation(r3.Scale(-1, origin)))
}

// Scaling returns a transform that scales each axis by the components of factor.
func Scaling(factor r3.Vec) Transform {
	return affine(mat3{{factor.X}, {1: factor.Y}, {2: factor.Z}}, r3.Vec{})
}

// ReflectY returns the transform mirroring about the XZ plane.
func ReflectY() Transform { return Scaling(r3.Vec{X: 1, Y: -1, Z: 1}) }

// ReflectX returns the transform mirroring about the YZ plane.
func ReflectX() Transform { return Scaling(r3.Vec{X: -1, Y: 1, Z: 1}) }
