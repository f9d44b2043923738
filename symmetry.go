package fea

import (
	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
)

// Propagate replicates primary across the symmetry copies. Entry 0 is
// primary itself. Entry i is entry i-1 transformed by transforms[i], flipped
// when its normal-flip flag disagrees with parentFlips[i].
func Propagate(primary surf.Surface, transforms []d3.Transform, parentFlips []bool) []surf.Surface {
	if primary == nil {
		return nil
	}
	n := len(transforms)
	if n == 0 {
		n = 1
	}
	out := make([]surf.Surface, n)
	out[0] = primary
	for i := 1; i < n; i++ {
		s := out[i-1].Transform(transforms[i])
		if i < len(parentFlips) {
			s = matchFlip(s, parentFlips[i])
		}
		out[i] = s
	}
	return out
}

// copyData returns the transforms of the copies and the normal-flip flags
// of the parent surfaces they correspond to.
func copyData(sh Shape, symm []SymmCopy) ([]d3.Transform, []bool) {
	transforms := make([]d3.Transform, len(symm))
	flips := make([]bool, len(symm))
	for i, c := range symm {
		transforms[i] = c.Transform
		if c.Index >= 0 && c.Index < sh.NumSurfaces() {
			flips[i] = sh.Surface(c.Index).FlipNormal()
		}
	}
	return transforms, flips
}
