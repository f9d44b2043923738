// Package export writes structure data for downstream solvers and people:
// NASTRAN and Calculix property decks, an xlsx part schedule and a PDF
// summary report.
package export

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/soypat/fea"
)

func tracer() tracing.Trace {
	return tracing.Select("fea.export")
}

// PartRow is one line of the part schedule.
type PartRow struct {
	Name        string
	Kind        string
	Class       string
	Elements    string
	Copies      int
	Property    int
	CapProperty int
}

// Schedule lists the parts of s in order.
func Schedule(s *fea.Structure) []PartRow {
	rows := make([]PartRow, 0, s.NumParts())
	for _, p := range s.Parts() {
		c := p.Info()
		rows = append(rows, PartRow{
			Name:        c.Name,
			Kind:        p.Kind().String(),
			Class:       c.Class().String(),
			Elements:    c.Included.String(),
			Copies:      len(p.Surfaces()),
			Property:    c.Property,
			CapProperty: c.CapProperty,
		})
	}
	return rows
}
