package surf

import "gonum.org/v1/gonum/spatial/r3"

// MakePlane builds a bilinear quad with A,B on the u=0 end and C,D on the
// u=1 end. A and C share w=0. The domain is [0,1]×[0,1].
func MakePlane(a, b, c, d r3.Vec) *Net {
	n, _ := NewNet([][]r3.Vec{{a, b}, {c, d}})
	return n
}
