// Command feastruct builds a demo wing, lays out its internal structure
// and writes the part surfaces and property decks.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/soypat/fea"
	"github.com/soypat/fea/export"
	"github.com/soypat/fea/geom"
	"github.com/soypat/fea/internal/config"
	"github.com/soypat/fea/render"
	"github.com/soypat/fea/surf"
)

const wingID = "Wing"

func main() {
	envFile := flag.String("env", ".env", "dotenv file with FEA_* settings")
	outDir := flag.String("out", "", "output directory, overrides FEA_OUTPUT_DIR")
	individualize := flag.Bool("individualize", false, "replace the rib array with independent ribs")
	halfMesh := flag.Bool("halfmesh", false, "locate fix points on the y > 0 half only")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *halfMesh {
		cfg.HalfMesh = true
	}
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("fea").SetTraceLevel(cfg.TraceLevel)

	if err := run(cfg, *individualize); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, individualize bool) error {
	wing, err := demoWing(cfg)
	if err != nil {
		return err
	}
	shapes := fea.Shapes{wingID: wing}

	var s *fea.Structure
	if cfg.StructureXML != "" {
		fp, err := os.Open(cfg.StructureXML)
		if err != nil {
			return err
		}
		s, err = fea.DecodeXML(fp, shapes)
		fp.Close()
		if err != nil {
			return fmt.Errorf("loading %s: %w", cfg.StructureXML, err)
		}
	} else {
		s, err = defaultLayout(shapes, cfg)
		if err != nil {
			return err
		}
	}
	s.HalfMesh = cfg.HalfMesh
	s.Update()
	if individualize {
		for i := 0; i < s.NumParts(); i++ {
			if s.Part(i).Kind() == fea.KindRibArray {
				if err := s.Individualize(i); err != nil {
					return err
				}
				i--
			}
		}
		s.Update()
	}
	return writeOutputs(s, cfg.OutputDir)
}

// demoWing returns a mirrored, tip capped, tapered wing.
func demoWing(cfg config.Config) (*geom.Wing, error) {
	foils := make([]geom.Airfoil, cfg.Sections+1)
	for i := range foils {
		t := float64(i) / float64(cfg.Sections)
		foils[i] = geom.Airfoil{Chord: cfg.RootChord + t*(cfg.TipChord-cfg.RootChord), Thickness: 0.12}
	}
	secs := make([]geom.WingSection, cfg.Sections)
	for i := range secs {
		secs[i] = geom.WingSection{Span: cfg.Span / float64(cfg.Sections), Sweep: cfg.SweepDeg}
	}
	w := &geom.Wing{Name: wingID, Airfoils: foils, Sections: secs, CapTip: true, Mirror: true}
	return w, w.Build()
}

// defaultLayout adds a skin, front and rear spars, a rib array normal to
// the rear spar and a fix point at the middle of the skin.
func defaultLayout(shapes fea.Shapes, cfg config.Config) (*fea.Structure, error) {
	s := fea.NewStructure(shapes, wingID, 0)
	s.Name = "WingStructure"
	s.InitSkin()
	var rear *fea.Spar
	for _, loc := range []float64{0.25, 0.7} {
		p, err := s.AddPart(fea.KindSpar)
		if err != nil {
			return nil, err
		}
		rear = p.(*fea.Spar)
		rear.Location = fea.RelPlacement(loc)
		rear.Included = fea.ShellAndBeam
	}
	p, err := s.AddPart(fea.KindRibArray)
	if err != nil {
		return nil, err
	}
	ribs := p.(*fea.RibArray)
	ribs.Spacing = fea.RelPlacement(cfg.RibSpacing)
	ribs.PerpEdge = fea.PartEdge(rear.ID)
	if _, err := s.AddPart(fea.KindFixPoint); err != nil {
		return nil, err
	}
	return s, nil
}

func writeOutputs(s *fea.Structure, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var surfs []surf.Surface
	for _, x := range s.XferSurfaces() {
		surfs = append(surfs, x.Surface)
	}
	if err := render.CreateSTL(filepath.Join(dir, "structure.stl"), render.NewSurfaceRenderer(surfs, 8, 8)); err != nil {
		return err
	}
	deck := export.NewDeck()
	writers := []struct {
		name  string
		write func(*bytes.Buffer) error
	}{
		{"structure.xml", func(b *bytes.Buffer) error { return s.EncodeXML(b) }},
		{"structure.bdf", func(b *bytes.Buffer) error { return deck.WriteNASTRAN(b, s) }},
		{"structure.inp", func(b *bytes.Buffer) error { return deck.WriteCalculix(b, s) }},
		{"schedule.xlsx", func(b *bytes.Buffer) error { return export.WriteSchedule(b, s, deck) }},
		{"report.pdf", func(b *bytes.Buffer) error { return export.WriteReport(b, s, deck) }},
	}
	for _, w := range writers {
		var b bytes.Buffer
		if err := w.write(&b); err != nil {
			return fmt.Errorf("%s: %w", w.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, w.name), b.Bytes(), 0o644); err != nil {
			return err
		}
	}
	usup, wsup := s.SuppressList()
	log.Printf("wrote %d parts (%d surfaces) to %s, suppressed %d u and %d w skin lines",
		s.NumParts(), len(surfs), dir, len(usup), len(wsup))
	return nil
}
