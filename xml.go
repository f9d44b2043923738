package fea

import (
	"encoding/xml"
	"fmt"
	"io"
)

// structureXML is the persisted form of a Structure.
type structureXML struct {
	XMLName  xml.Name     `xml:"FeaStructure"`
	Name     string       `xml:"Name,attr"`
	ParentID string       `xml:"ParentID,attr"`
	MainSurf int          `xml:"MainSurfIndx,attr"`
	HalfMesh bool         `xml:"HalfMeshFlag"`
	Counter  int          `xml:"FeaPartCount"`
	Parts    []partXML    `xml:"FeaPart"`
	SubSurfs []subSurfXML `xml:"FeaSubSurface"`
}

// partXML holds exactly one part variant, selected by Type.
type partXML struct {
	Type       string      `xml:"Type,attr"`
	Slice      *Slice      `xml:"FeaSlice,omitempty"`
	Rib        *Rib        `xml:"FeaRib,omitempty"`
	Spar       *Spar       `xml:"FeaSpar,omitempty"`
	Skin       *Skin       `xml:"FeaSkin,omitempty"`
	Dome       *Dome       `xml:"FeaDome,omitempty"`
	FixPoint   *FixPoint   `xml:"FeaFixPoint,omitempty"`
	RibArray   *RibArray   `xml:"FeaRibArray,omitempty"`
	SliceArray *SliceArray `xml:"FeaSliceArray,omitempty"`
}

func newPartXML(p Part) (partXML, error) {
	x := partXML{Type: p.Kind().String()}
	switch v := p.(type) {
	case *Slice:
		x.Slice = v
	case *Rib:
		x.Rib = v
	case *Spar:
		x.Spar = v
	case *Skin:
		x.Skin = v
	case *Dome:
		x.Dome = v
	case *FixPoint:
		x.FixPoint = v
	case *RibArray:
		x.RibArray = v
	case *SliceArray:
		x.SliceArray = v
	default:
		return x, fmt.Errorf("%w: %T", ErrUnknownKind, p)
	}
	return x, nil
}

func (x partXML) part() (Part, error) {
	kind, err := ParseKind(x.Type)
	if err != nil {
		return nil, err
	}
	var p Part
	switch kind {
	case KindSlice:
		p = x.Slice
	case KindRib:
		p = x.Rib
	case KindSpar:
		p = x.Spar
	case KindSkin:
		p = x.Skin
	case KindDome:
		p = x.Dome
	case KindFixPoint:
		p = x.FixPoint
	case KindRibArray:
		p = x.RibArray
	case KindSliceArray:
		p = x.SliceArray
	}
	if p == nil || isNilPart(p) {
		return nil, ErrMsg(fmt.Sprintf("part of type %s has no parameters", x.Type))
	}
	return p, nil
}

// isNilPart reports whether p holds a nil pointer of its concrete type.
func isNilPart(p Part) bool {
	switch v := p.(type) {
	case *Slice:
		return v == nil
	case *Rib:
		return v == nil
	case *Spar:
		return v == nil
	case *Skin:
		return v == nil
	case *Dome:
		return v == nil
	case *FixPoint:
		return v == nil
	case *RibArray:
		return v == nil
	case *SliceArray:
		return v == nil
	}
	return false
}

// subSurfXML holds exactly one subsurface variant, selected by Type.
type subSurfXML struct {
	Type      string     `xml:"Type,attr"`
	Line      *Line      `xml:"SSLine,omitempty"`
	Rectangle *Rectangle `xml:"SSRectangle,omitempty"`
	Ellipse   *Ellipse   `xml:"SSEllipse,omitempty"`
	LineArray *LineArray `xml:"SSLineArray,omitempty"`
}

func newSubSurfXML(ss SubSurface) (subSurfXML, error) {
	x := subSurfXML{Type: ss.Kind().String()}
	switch v := ss.(type) {
	case *Line:
		x.Line = v
	case *Rectangle:
		x.Rectangle = v
	case *Ellipse:
		x.Ellipse = v
	case *LineArray:
		x.LineArray = v
	default:
		return x, fmt.Errorf("%w: %T", ErrUnknownKind, ss)
	}
	return x, nil
}

func (x subSurfXML) subSurface() (SubSurface, error) {
	kind, err := ParseSubSurfKind(x.Type)
	if err != nil {
		return nil, err
	}
	switch {
	case kind == SubLine && x.Line != nil:
		return x.Line, nil
	case kind == SubRectangle && x.Rectangle != nil:
		return x.Rectangle, nil
	case kind == SubEllipse && x.Ellipse != nil:
		return x.Ellipse, nil
	case kind == SubLineArray && x.LineArray != nil:
		return x.LineArray, nil
	}
	return nil, ErrMsg(fmt.Sprintf("subsurface of type %s has no parameters", x.Type))
}

// EncodeXML writes the structure parameters to w. Computed surfaces are not persisted.
func (s *Structure) EncodeXML(w io.Writer) error {
	doc := structureXML{
		Name:     s.Name,
		ParentID: s.ParentID,
		MainSurf: s.MainSurf,
		HalfMesh: s.HalfMesh,
		Counter:  s.counter,
	}
	for _, p := range s.parts {
		x, err := newPartXML(p)
		if err != nil {
			return err
		}
		doc.Parts = append(doc.Parts, x)
	}
	for _, ss := range s.subsurfs {
		x, err := newSubSurfXML(ss)
		if err != nil {
			return err
		}
		doc.SubSurfs = append(doc.SubSurfs, x)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Flush()
}

// DecodeXML reads a structure written by EncodeXML and attaches it to
// shapes. The returned structure must be updated before its parts hold surfaces.
func DecodeXML(r io.Reader, shapes ShapeProvider) (*Structure, error) {
	var doc structureXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	s := NewStructure(shapes, doc.ParentID, doc.MainSurf)
	if doc.Name != "" {
		s.Name = doc.Name
	}
	s.HalfMesh = doc.HalfMesh
	s.counter = doc.Counter
	for i, x := range doc.Parts {
		p, err := x.part()
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		s.parts = append(s.parts, p)
	}
	if s.counter < len(s.parts) {
		s.counter = len(s.parts)
	}
	for i, x := range doc.SubSurfs {
		ss, err := x.subSurface()
		if err != nil {
			return nil, fmt.Errorf("subsurface %d: %w", i, err)
		}
		s.subsurfs = append(s.subsurfs, ss)
	}
	s.subCounter = len(s.subsurfs)
	tracer().Infof("decoded structure %q with %d parts", s.Name, len(s.parts))
	return s, nil
}
