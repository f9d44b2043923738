package export

import (
	"fmt"
	"io"
)

// PropertyType selects the element type a property applies to.
type PropertyType int

const (
	ShellProperty PropertyType = iota
	BeamProperty
)

func (t PropertyType) String() string {
	if t == BeamProperty {
		return "Beam"
	}
	return "Shell"
}

// Property is a shell or beam element property.
type Property struct {
	Name string
	Type PropertyType
	// Thickness applies to shells.
	Thickness float64
	// Area, Izz, Iyy, Izy and J apply to beams.
	Area, Izz, Iyy, Izy, J float64
	// Material indexes the material table.
	Material int
}

// DefaultProperties returns the default shell property at index 0 and the
// default beam cap property at index 1.
func DefaultProperties() []Property {
	return []Property{
		{Name: "Default_Shell", Type: ShellProperty, Thickness: 0.1},
		{Name: "Default_Beam", Type: BeamProperty, Area: 0.1, Izz: 0.1, Iyy: 0.1},
	}
}

// WriteNASTRAN writes the PSHELL or PBEAM card of p with identifier id.
// Material identifiers are one based.
func (p Property) WriteNASTRAN(w io.Writer, id int) error {
	var err error
	switch p.Type {
	case ShellProperty:
		_, err = fmt.Fprintf(w, "PSHELL,%d,%d,%f\n", id, p.Material+1, p.Thickness)
	case BeamProperty:
		_, err = fmt.Fprintf(w, "PBEAM,%d,%d,%f,%f,%f,%f,%f\n", id, p.Material+1, p.Area, p.Izz, p.Iyy, p.Izy, p.J)
	}
	return err
}

// WriteCalculix writes the section of element set elset made of material mat.
func (p Property) WriteCalculix(w io.Writer, elset string, mat Material) error {
	var err error
	switch p.Type {
	case ShellProperty:
		_, err = fmt.Fprintf(w, "*SHELL SECTION, ELSET=%s, MATERIAL=%s\n%g\n", elset, mat.Name, p.Thickness)
	case BeamProperty:
		_, err = fmt.Fprintf(w, "*BEAM GENERAL SECTION, SECTION=GENERAL, ELSET=%s, MATERIAL=%s\n%g,%g,%g,%g,%g\n",
			elset, mat.Name, p.Area, p.Izz, p.Izy, p.Iyy, p.J)
	}
	return err
}

// Material is an isotropic material.
type Material struct {
	Name    string
	Density float64
	// E is the elastic modulus.
	E       float64
	Poisson float64
	// Expansion is the thermal expansion coefficient.
	Expansion float64
}

// ShearModulus returns E/(2(1+ν)).
func (m Material) ShearModulus() float64 {
	return m.E / (2 * (m.Poisson + 1))
}

// WriteNASTRAN writes the MAT1 card of m with identifier id.
func (m Material) WriteNASTRAN(w io.Writer, id int) error {
	_, err := fmt.Fprintf(w, "MAT1,%d,%g,%g,%g,%g,%g\n", id, m.E, m.ShearModulus(), m.Poisson, m.Density, m.Expansion)
	return err
}

// WriteCalculix writes the *MATERIAL block of m.
func (m Material) WriteCalculix(w io.Writer) error {
	_, err := fmt.Fprintf(w, "*MATERIAL, NAME=%s\n*DENSITY\n%g\n*ELASTIC, TYPE=ISO\n%g,%g\n*EXPANSION, TYPE=ISO\n%g\n",
		m.Name, m.Density, m.E, m.Poisson, m.Expansion)
	return err
}

// DefaultMaterials returns common aerospace alloys in SI units.
func DefaultMaterials() []Material {
	return []Material{
		{Name: "Aluminum_7075-T6", Density: 2810, E: 71.7e9, Poisson: 0.33, Expansion: 23.6e-6},
		{Name: "Aluminum_6061-T6", Density: 2700, E: 68.9e9, Poisson: 0.33, Expansion: 23.6e-6},
		{Name: "Titanium_Ti-6Al-4V", Density: 4430, E: 113.8e9, Poisson: 0.342, Expansion: 8.6e-6},
		{Name: "Steel_AISI_4130", Density: 7850, E: 205e9, Poisson: 0.29, Expansion: 11.2e-6},
	}
}
