package fea

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/soypat/fea/surf"
)

// Kind is the closed set of structural part variants.
type Kind int

const (
	KindSlice Kind = iota
	KindRib
	KindSpar
	KindSkin
	KindDome
	KindFixPoint
	KindRibArray
	KindSliceArray
	numKinds
)

var kindNames = [numKinds]string{
	KindSlice:      "Slice",
	KindRib:        "Rib",
	KindSpar:       "Spar",
	KindSkin:       "Skin",
	KindDome:       "Dome",
	KindFixPoint:   "FixPoint",
	KindRibArray:   "RibArray",
	KindSliceArray: "SliceArray",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// IncludedElements selects the finite element types generated for a part.
type IncludedElements int

const (
	Shell IncludedElements = iota
	Beam
	ShellAndBeam
)

func (e IncludedElements) String() string {
	switch e {
	case Shell:
		return "Shell"
	case Beam:
		return "Beam"
	case ShellAndBeam:
		return "ShellAndBeam"
	}
	return fmt.Sprintf("IncludedElements(%d)", int(e))
}

// Class is the meshing classification of a part surface.
type Class int

const (
	// ClassStructure surfaces are meshed with shell elements.
	ClassStructure Class = iota
	// ClassStiffener surfaces only contribute beam elements at their intersections.
	ClassStiffener
)

func (c Class) String() string {
	if c == ClassStiffener {
		return "Stiffener"
	}
	return "Structure"
}

// PartID is the stable handle of a part within its Structure.
type PartID string

func newPartID() PartID { return PartID(uuid.NewString()) }

// Common holds the parameters shared by every part.
type Common struct {
	ID       PartID           `xml:"ID,attr"`
	Name     string           `xml:"Name,attr"`
	ParentID string           `xml:"ParentID"`
	MainSurf int              `xml:"MainSurfIndx"`
	Included IncludedElements `xml:"IncludedElements"`
	// Property and CapProperty index the structure's property table.
	// A negative value means no property.
	Property    int  `xml:"PropertyIndex"`
	CapProperty int  `xml:"CapPropertyIndex"`
	Draw        bool `xml:"DrawFlag"`
}

// Class returns the meshing classification implied by the included elements.
func (c *Common) Class() Class {
	if c.Included == Beam {
		return ClassStiffener
	}
	return ClassStructure
}

// Part is a structural part. The concrete types are *Slice, *Rib, *Spar,
// *Skin, *Dome, *FixPoint, *RibArray and *SliceArray.
type Part interface {
	Kind() Kind
	// Info returns the shared parameters. Callers may modify them.
	Info() *Common
	// Surfaces returns the computed surfaces, one per symmetry copy
	// (copies times members for arrays). It is empty before the first update.
	Surfaces() []surf.Surface
	base() *partBase
	// compute recomputes the surfaces. It leaves them untouched when the
	// parent geometry cannot be resolved.
	compute(ctx *Context)
}

// partBase is embedded by every part variant.
type partBase struct {
	Common
	symm     []SymmCopy
	surfaces []surf.Surface
}

func newPartBase(parentID string, mainSurf int) partBase {
	return partBase{
		Common: Common{
			ID:          newPartID(),
			ParentID:    parentID,
			MainSurf:    mainSurf,
			Included:    Shell,
			Property:    0,
			CapProperty: 1,
			Draw:        true,
		},
	}
}

func (b *partBase) Info() *Common            { return &b.Common }
func (b *partBase) Surfaces() []surf.Surface { return b.surfaces }
func (b *partBase) base() *partBase          { return b }

// refreshSymm records the symmetry copies of the parent. The surface list
// is replaced as a whole by the next successful compute.
func (b *partBase) refreshSymm(sh Shape) {
	b.symm = sh.SymmCopies(b.MainSurf)
}

// NumCopies returns the number of symmetry copies recorded at the last update.
func (b *partBase) NumCopies() int { return len(b.symm) }

// propagate replicates primary over the symmetry copies of sh.
func (b *partBase) propagate(sh Shape, primary surf.Surface) []surf.Surface {
	transforms, flips := copyData(sh, b.symm)
	return Propagate(primary, transforms, flips)
}

// NewPart creates an empty part of the given kind with default parameters.
// The part has no surfaces until it is updated.
func NewPart(kind Kind, parentID string, mainSurf int) (Part, error) {
	b := newPartBase(parentID, mainSurf)
	switch kind {
	case KindSlice:
		return &Slice{partBase: b, SliceParams: defaultSliceParams()}, nil
	case KindRib:
		return &Rib{partBase: b, RibParams: defaultRibParams()}, nil
	case KindSpar:
		return &Spar{partBase: b, SparParams: defaultSparParams()}, nil
	case KindSkin:
		return &Skin{partBase: b}, nil
	case KindDome:
		return &Dome{partBase: b, DomeParams: defaultDomeParams()}, nil
	case KindFixPoint:
		b.Property, b.CapProperty = -1, -1
		return &FixPoint{partBase: b, FixPointParams: defaultFixPointParams()}, nil
	case KindRibArray:
		return &RibArray{partBase: b, ArrayParams: defaultArrayParams()}, nil
	case KindSliceArray:
		return &SliceArray{partBase: b, ArrayParams: defaultArrayParams(), Orientation: defaultSliceParams().Orientation}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}
