package export

import (
	"io"

	"github.com/soypat/fea"
	"github.com/xuri/excelize/v2"
)

const (
	partsSheet      = "Parts"
	propertiesSheet = "Properties"
	materialsSheet  = "Materials"
)

var (
	partsHeader      = []interface{}{"Name", "Kind", "Class", "Elements", "Copies", "Property", "Cap Property"}
	propertiesHeader = []interface{}{"ID", "Name", "Type", "Thickness", "Area", "Izz", "Iyy", "Izy", "J", "Material"}
	materialsHeader  = []interface{}{"ID", "Name", "Density", "E", "G", "Poisson", "Expansion"}
)

// WriteSchedule writes the part schedule of s and the tables of d as an
// xlsx workbook with Parts, Properties and Materials sheets.
func WriteSchedule(w io.Writer, s *fea.Structure, d Deck) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", partsSheet); err != nil {
		return err
	}
	for _, name := range []string{propertiesSheet, materialsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	rows := [][]interface{}{partsHeader}
	for _, r := range Schedule(s) {
		rows = append(rows, []interface{}{r.Name, r.Kind, r.Class, r.Elements, r.Copies, r.Property, r.CapProperty})
	}
	if err := setRows(f, partsSheet, rows); err != nil {
		return err
	}

	rows = [][]interface{}{propertiesHeader}
	for i, p := range d.Properties {
		rows = append(rows, []interface{}{i + 1, p.Name, p.Type.String(), p.Thickness, p.Area, p.Izz, p.Iyy, p.Izy, p.J, p.Material + 1})
	}
	if err := setRows(f, propertiesSheet, rows); err != nil {
		return err
	}

	rows = [][]interface{}{materialsHeader}
	for i, m := range d.Materials {
		rows = append(rows, []interface{}{i + 1, m.Name, m.Density, m.E, m.ShearModulus(), m.Poisson, m.Expansion})
	}
	if err := setRows(f, materialsSheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(partsSheet, "A", "A", 24); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// ReadSchedule reads the Parts sheet of a workbook written by WriteSchedule.
func ReadSchedule(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(partsSheet)
}
