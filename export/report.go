package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/soypat/fea"
	"gonum.org/v1/plot/vg"
)

// Planform image size on the page, in millimeters.
const planformW, planformH = 150, 90

// WriteReport writes a one page PDF summary of s: its planform, its part
// schedule and the properties the parts use.
func WriteReport(w io.Writer, s *fea.Structure, d Deck) error {
	img, err := planformPNG(s, planformW*vg.Millimeter, planformH*vg.Millimeter)
	if err != nil {
		return fmt.Errorf("planform: %w", err)
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Structure %s", s.Name))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Parent: %s, surface %d", s.ParentID, s.MainSurf))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Parts: %d, fix points: %d, subsurfaces: %d", s.NumParts(), s.NumFixPoints(), s.NumSubSurfaces()))
	pdf.Ln(8)

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("planform", opt, bytes.NewReader(img))
	pdf.ImageOptions("planform", (210-planformW)/2, pdf.GetY(), planformW, planformH, true, opt, 0, "")
	pdf.Ln(4)

	widths := []float64{50, 25, 25, 30, 15, 20, 20}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range partsHeader {
		pdf.CellFormat(widths[i], 7, fmt.Sprint(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range Schedule(s) {
		cells := []string{r.Name, r.Kind, r.Class, r.Elements,
			fmt.Sprint(r.Copies), fmt.Sprint(r.Property+1), fmt.Sprint(r.CapProperty+1)}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Properties")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for i, p := range d.Properties {
		mat := "?"
		if p.Material >= 0 && p.Material < len(d.Materials) {
			mat = d.Materials[p.Material].Name
		}
		line := fmt.Sprintf("%d %s (%s) t=%g A=%g material %s", i+1, p.Name, p.Type, p.Thickness, p.Area, mat)
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	if err := pdf.Output(w); err != nil {
		return err
	}
	tracer().Debugf("report for %q written", s.Name)
	return nil
}
