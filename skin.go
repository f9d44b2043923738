package fea

import "github.com/soypat/fea/surf"

// Skin is the parent surface itself, meshed as shell elements.
type Skin struct {
	partBase
	// RemoveSkinTris drops the skin elements from the mesh while keeping
	// the skin as the support of subsurfaces and fix points.
	RemoveSkinTris bool `xml:"RemoveSkinTrisFlag"`
}

func (s *Skin) Kind() Kind { return KindSkin }

func (s *Skin) compute(ctx *Context) {
	sh, _, ok := ctx.parent(&s.partBase)
	if !ok {
		return
	}
	s.Included = Shell
	surfs := make([]surf.Surface, 0, len(s.symm))
	for _, c := range s.symm {
		if c.Index < 0 || c.Index >= sh.NumSurfaces() {
			tracer().Debugf("skin: symmetric surface %d unavailable", c.Index)
			return
		}
		surfs = append(surfs, sh.Surface(c.Index))
	}
	s.surfaces = surfs
}
