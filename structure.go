package fea

import (
	"fmt"
	"math"
	"sort"

	"github.com/soypat/fea/internal/d3"
	"github.com/soypat/fea/surf"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReorderAction moves an entry within an ordered list.
type ReorderAction int

const (
	MoveUp ReorderAction = iota
	MoveDown
	MoveTop
	MoveBottom
)

// Structure is the ordered set of parts and subsurfaces attached to one
// parent shape. It exclusively owns its parts.
type Structure struct {
	Name     string
	ParentID string
	MainSurf int
	// HalfMesh restricts fix point location to the y > 0 half of the shape.
	HalfMesh bool

	shapes   ShapeProvider
	parts    []Part
	subsurfs []SubSurface
	// counter numbers new parts and subsurfaces, it never decreases.
	counter    int
	subCounter int
}

// NewStructure returns an empty structure attached to main surface
// mainSurf of shape parentID.
func NewStructure(shapes ShapeProvider, parentID string, mainSurf int) *Structure {
	return &Structure{
		Name:     "Structure",
		ParentID: parentID,
		MainSurf: mainSurf,
		shapes:   shapes,
	}
}

// SetShapes replaces the shape provider used by Update.
func (s *Structure) SetShapes(shapes ShapeProvider) { s.shapes = shapes }

func (s *Structure) context() *Context {
	return &Context{Shapes: s.shapes, Parts: s, HalfMesh: s.HalfMesh}
}

func (s *Structure) validPart(i int) bool { return i >= 0 && i < len(s.parts) }

// NumParts returns the number of parts.
func (s *Structure) NumParts() int { return len(s.parts) }

// Parts returns the parts in order. The slice must not be modified.
func (s *Structure) Parts() []Part { return s.parts }

// Part returns part i, or nil if i is out of range.
func (s *Structure) Part(i int) Part {
	if !s.validPart(i) {
		return nil
	}
	return s.parts[i]
}

// PartByID implements PartLookup.
func (s *Structure) PartByID(id PartID) (Part, bool) {
	for _, p := range s.parts {
		if p.Info().ID == id {
			return p, true
		}
	}
	return nil, false
}

// PartIndex returns the index of p, or -1 if p is not owned by s.
func (s *Structure) PartIndex(p Part) int {
	for i, q := range s.parts {
		if q == p {
			return i
		}
	}
	return -1
}

// AddPart appends a new part of the given kind named after its kind and
// the structure's running counter. Fix points are placed on the skin.
func (s *Structure) AddPart(kind Kind) (Part, error) {
	var skin Part
	if kind == KindFixPoint {
		skin = s.Skin()
		if skin == nil {
			return nil, fmt.Errorf("fix point: %w: no skin", ErrNoParent)
		}
	}
	p, err := NewPart(kind, s.ParentID, s.MainSurf)
	if err != nil {
		return nil, err
	}
	p.Info().Name = fmt.Sprintf("%s_%d", kind, s.counter)
	s.counter++
	if fp, ok := p.(*FixPoint); ok {
		fp.Parent = skin.Info().ID
	}
	s.parts = append(s.parts, p)
	tracer().Infof("structure %q: added %s", s.Name, p.Info().Name)
	return p, nil
}

// DelPart removes part i. Invalid indices are ignored.
func (s *Structure) DelPart(i int) {
	if !s.validPart(i) {
		return
	}
	tracer().Infof("structure %q: deleted %s", s.Name, s.parts[i].Info().Name)
	s.parts = append(s.parts[:i], s.parts[i+1:]...)
}

// ReorderPart moves part i. Invalid indices are ignored.
func (s *Structure) ReorderPart(i int, action ReorderAction) {
	if s.validPart(i) {
		reorder(s.parts, i, action)
	}
}

func reorder[T any](list []T, i int, action ReorderAction) {
	switch action {
	case MoveUp:
		if i > 0 {
			list[i-1], list[i] = list[i], list[i-1]
		}
	case MoveDown:
		if i < len(list)-1 {
			list[i], list[i+1] = list[i+1], list[i]
		}
	case MoveTop:
		v := list[i]
		copy(list[1:i+1], list[:i])
		list[0] = v
	case MoveBottom:
		v := list[i]
		copy(list[i:], list[i+1:])
		list[len(list)-1] = v
	}
}

// Skin returns the skin part, or nil if the structure has none.
func (s *Structure) Skin() Part {
	for _, p := range s.parts {
		if p.Kind() == KindSkin {
			return p
		}
	}
	return nil
}

// InitSkin creates the skin as the first part and computes it. An existing skin is returned as is.
func (s *Structure) InitSkin() Part {
	if skin := s.Skin(); skin != nil {
		return skin
	}
	p, _ := NewPart(KindSkin, s.ParentID, s.MainSurf)
	p.Info().Name = "Skin"
	p.compute(s.context())
	s.parts = append([]Part{p}, s.parts...)
	return p
}

// NumFixPoints returns the number of fix point parts.
func (s *Structure) NumFixPoints() (n int) {
	for _, p := range s.parts {
		if p.Kind() == KindFixPoint {
			n++
		}
	}
	return n
}

// PropertyIndex returns the property index of part i, or -1 if i is out of range.
func (s *Structure) PropertyIndex(i int) int {
	if !s.validPart(i) {
		return -1
	}
	return s.parts[i].Info().Property
}

// CapPropertyIndex returns the cap property index of part i, or -1 if i is out of range.
func (s *Structure) CapPropertyIndex(i int) int {
	if !s.validPart(i) {
		return -1
	}
	return s.parts[i].Info().CapProperty
}

// updatePriority orders parts so that every part is computed after the
// parts it may reference: ribs reference spars by their perpendicular
// edge and fix points reference any part.
func updatePriority(k Kind) int {
	switch k {
	case KindRib, KindRibArray:
		return 1
	case KindFixPoint:
		return 2
	}
	return 0
}

// Update recomputes every part. Parts whose parent cannot be resolved keep
// their last computed surfaces. Update is idempotent.
func (s *Structure) Update() {
	ctx := s.context()
	order := make([]Part, len(s.parts))
	copy(order, s.parts)
	sort.SliceStable(order, func(i, j int) bool {
		return updatePriority(order[i].Kind()) < updatePriority(order[j].Kind())
	})
	for _, p := range order {
		p.compute(ctx)
	}
	tracer().Debugf("structure %q: updated %d parts", s.Name, len(order))
}

// Individualize replaces the rib or slice array at index i with
// independent parts, one per member, appended to the end of the part list.
func (s *Structure) Individualize(i int) error {
	if !s.validPart(i) {
		return fmt.Errorf("%w: part %d", ErrInvalidIndex, i)
	}
	var members []Part
	switch a := s.parts[i].(type) {
	case *RibArray:
		if a.Count() == 0 {
			a.compute(s.context())
		}
		for j, rp := range a.Members() {
			members = append(members, &Rib{partBase: a.memberBase("Rib", j), RibParams: rp})
		}
	case *SliceArray:
		if a.Count() == 0 {
			a.compute(s.context())
		}
		for j, sp := range a.Members() {
			members = append(members, &Slice{partBase: a.memberBase("Slice", j), SliceParams: sp})
		}
	default:
		return fmt.Errorf("%w: %s is a %s", ErrNotArray, s.parts[i].Info().Name, s.parts[i].Kind())
	}
	name := s.parts[i].Info().Name
	s.parts = append(s.parts, members...)
	s.DelPart(i)
	tracer().Infof("structure %q: individualized %s into %d parts", s.Name, name, len(members))
	return nil
}

// memberBase returns the common block of the j'th individualized member of an array.
func (b *partBase) memberBase(kind string, j int) partBase {
	m := partBase{Common: b.Common}
	m.ID = newPartID()
	m.Name = fmt.Sprintf("%s_%s_%d", b.Name, kind, j)
	return m
}

// XferSurf is a part surface handed to the mesher.
type XferSurf struct {
	PartID      PartID
	Name        string
	Kind        Kind
	Copy        int
	Surface     surf.Surface
	Class       Class
	Property    int
	CapProperty int
}

// XferSurfaces returns the surfaces of every meshed part.
// Fix points own no surfaces and contribute nothing.
func (s *Structure) XferSurfaces() []XferSurf {
	var out []XferSurf
	for _, p := range s.parts {
		c := p.Info()
		if skin, ok := p.(*Skin); ok && skin.RemoveSkinTris {
			continue
		}
		for i, sf := range p.Surfaces() {
			if sf == nil {
				continue
			}
			out = append(out, XferSurf{
				PartID:      c.ID,
				Name:        c.Name,
				Kind:        p.Kind(),
				Copy:        i,
				Surface:     sf,
				Class:       c.Class(),
				Property:    c.Property,
				CapProperty: c.CapProperty,
			})
		}
	}
	return out
}

// planar reports whether parts of kind k are planar.
func (k Kind) planar() bool {
	switch k {
	case KindSlice, KindRib, KindSpar, KindRibArray, KindSliceArray:
		return true
	}
	return false
}

// onPlanarPart reports whether all pts lie on the plane of any planar part surface.
func (s *Structure) onPlanarPart(pts []r3.Vec) bool {
	for _, p := range s.parts {
		if !p.Kind().planar() {
			continue
		}
		for _, sf := range p.Surfaces() {
			if sf != nil && onPlane(sf, pts) {
				return true
			}
		}
	}
	return false
}

func onPlane(sf surf.Surface, pts []r3.Vec) bool {
	umax, wmax := sf.ParamMax()
	o := sf.Evaluate(0.5*umax, 0.5*wmax)
	n := sf.Normal(0.5*umax, 0.5*wmax)
	if r3.Norm(n) == 0 {
		return false
	}
	for _, p := range pts {
		if math.Abs(d3.PlaneDist(p, o, n)) >= planarTol {
			return false
		}
	}
	return true
}

// featureLines returns the distinct patch boundaries of s in u and w.
func featureLines(s surf.Surface) (u, w []float64) {
	uset := map[float64]bool{}
	wset := map[float64]bool{}
	for _, p := range s.Split() {
		uset[p.Domain.Min.X], uset[p.Domain.Max.X] = true, true
		wset[p.Domain.Min.Y], wset[p.Domain.Max.Y] = true, true
	}
	for v := range uset {
		u = append(u, v)
	}
	for v := range wset {
		w = append(w, v)
	}
	sort.Float64s(u)
	sort.Float64s(w)
	return u, w
}

// suppressSamples is the number of points tested along each feature line.
const suppressSamples = 5

// SuppressList returns the skin feature lines of constant u and constant
// w that lie entirely on a planar part. The mesher omits them.
func (s *Structure) SuppressList() (usuppress, wsuppress []float64) {
	skin := s.Skin()
	if skin == nil || len(skin.Surfaces()) == 0 || skin.Surfaces()[0] == nil {
		return nil, nil
	}
	main := skin.Surfaces()[0]
	umax, wmax := main.ParamMax()
	ufeat, wfeat := featureLines(main)
	pts := make([]r3.Vec, suppressSamples)
	for _, u := range ufeat {
		for j := range pts {
			pts[j] = main.Evaluate(u, wmax*float64(j)/(suppressSamples-1))
		}
		if s.onPlanarPart(pts) {
			usuppress = append(usuppress, u)
		}
	}
	for _, w := range wfeat {
		for j := range pts {
			pts[j] = main.Evaluate(umax*float64(j)/(suppressSamples-1), w)
		}
		if s.onPlanarPart(pts) {
			wsuppress = append(wsuppress, w)
		}
	}
	return usuppress, wsuppress
}

func (s *Structure) validSubSurf(i int) bool { return i >= 0 && i < len(s.subsurfs) }

// NumSubSurfaces returns the number of subsurfaces.
func (s *Structure) NumSubSurfaces() int { return len(s.subsurfs) }

// SubSurfaces returns the subsurfaces in order. The slice must not be modified.
func (s *Structure) SubSurfaces() []SubSurface { return s.subsurfs }

// AddSubSurface appends a new subsurface of the given kind.
func (s *Structure) AddSubSurface(kind SubSurfKind) (SubSurface, error) {
	ss, err := NewSubSurface(kind)
	if err != nil {
		return nil, err
	}
	ss.Info().Name = fmt.Sprintf("%s_%d", subKindPrefix[kind], s.subCounter)
	s.subCounter++
	s.subsurfs = append(s.subsurfs, ss)
	return ss, nil
}

// SubSurface returns subsurface i, or nil if i is out of range.
func (s *Structure) SubSurface(i int) SubSurface {
	if !s.validSubSurf(i) {
		return nil
	}
	return s.subsurfs[i]
}

// DelSubSurface removes subsurface i. Invalid indices are ignored.
func (s *Structure) DelSubSurface(i int) {
	if s.validSubSurf(i) {
		s.subsurfs = append(s.subsurfs[:i], s.subsurfs[i+1:]...)
	}
}

// ReorderSubSurface moves subsurface i. Invalid indices are ignored.
func (s *Structure) ReorderSubSurface(i int, action ReorderAction) {
	if s.validSubSurf(i) {
		reorder(s.subsurfs, i, action)
	}
}

// IndividualizeLineArray replaces the line array at index i with
// independent lines appended to the end of the subsurface list.
func (s *Structure) IndividualizeLineArray(i int) error {
	if !s.validSubSurf(i) {
		return fmt.Errorf("%w: subsurface %d", ErrInvalidIndex, i)
	}
	a, ok := s.subsurfs[i].(*LineArray)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotArray, s.subsurfs[i].Info().Name)
	}
	for _, l := range a.members() {
		s.subsurfs = append(s.subsurfs, l)
	}
	s.DelSubSurface(i)
	return nil
}
