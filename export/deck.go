package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/soypat/fea"
)

// Deck holds the property and material tables part indices refer to.
type Deck struct {
	Properties []Property
	Materials  []Material
}

// NewDeck returns a deck with the default tables.
func NewDeck() Deck {
	return Deck{Properties: DefaultProperties(), Materials: DefaultMaterials()}
}

func (d Deck) property(i int) (Property, error) {
	if i < 0 || i >= len(d.Properties) {
		return Property{}, fmt.Errorf("%w: property %d", fea.ErrInvalidIndex, i)
	}
	p := d.Properties[i]
	if p.Material < 0 || p.Material >= len(d.Materials) {
		return Property{}, fmt.Errorf("%w: material %d of property %q", fea.ErrInvalidIndex, p.Material, p.Name)
	}
	return p, nil
}

// usesShell and usesBeam report the element sets generated for a part.
func usesShell(e fea.IncludedElements) bool { return e == fea.Shell || e == fea.ShellAndBeam }
func usesBeam(e fea.IncludedElements) bool  { return e == fea.Beam || e == fea.ShellAndBeam }

// elsetName returns an element set name free of separators.
func elsetName(name string) string {
	return strings.NewReplacer(" ", "_", ",", "_").Replace(name)
}

// WriteNASTRAN writes the property and material cards referenced by the
// parts of s, preceded by a comment line per part.
func (d Deck) WriteNASTRAN(w io.Writer, s *fea.Structure) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "$ Structure %s\n", s.Name)
	used := make(map[int]bool)
	for _, p := range s.Parts() {
		if p.Kind() == fea.KindFixPoint {
			continue
		}
		c := p.Info()
		fmt.Fprintf(bw, "$ %s %s PID=%d CAPPID=%d\n", c.Name, p.Kind(), c.Property+1, c.CapProperty+1)
		if usesShell(c.Included) {
			used[c.Property] = true
		}
		if usesBeam(c.Included) {
			used[c.CapProperty] = true
		}
	}
	for i := range used {
		if _, err := d.property(i); err != nil {
			return err
		}
	}
	for i, p := range d.Properties {
		if !used[i] {
			continue
		}
		if err := p.WriteNASTRAN(bw, i+1); err != nil {
			return err
		}
	}
	for i, m := range d.Materials {
		if err := m.WriteNASTRAN(bw, i+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCalculix writes one section per part element set followed by the
// materials. Beam caps use the element set <name>_CAP.
func (d Deck) WriteCalculix(w io.Writer, s *fea.Structure) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "** Structure %s\n", s.Name)
	for _, p := range s.Parts() {
		if p.Kind() == fea.KindFixPoint {
			continue
		}
		c := p.Info()
		if usesShell(c.Included) {
			prop, err := d.property(c.Property)
			if err != nil {
				return fmt.Errorf("part %q: %w", c.Name, err)
			}
			if err := prop.WriteCalculix(bw, elsetName(c.Name), d.Materials[prop.Material]); err != nil {
				return err
			}
		}
		if usesBeam(c.Included) {
			prop, err := d.property(c.CapProperty)
			if err != nil {
				return fmt.Errorf("part %q cap: %w", c.Name, err)
			}
			if err := prop.WriteCalculix(bw, elsetName(c.Name)+"_CAP", d.Materials[prop.Material]); err != nil {
				return err
			}
		}
	}
	for _, m := range d.Materials {
		if err := m.WriteCalculix(bw); err != nil {
			return err
		}
	}
	tracer().Debugf("calculix deck for %q written", s.Name)
	return bw.Flush()
}
