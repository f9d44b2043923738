package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/soypat/fea"
	"github.com/soypat/fea/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func wingStructure(t *testing.T) (*fea.Structure, []fea.Part) {
	t.Helper()
	w, err := geom.NewRectWing("wing", 1, 0.12, 6, 2)
	require.NoError(t, err)
	s := fea.NewStructure(fea.Shapes{w.ID(): w}, w.ID(), 0)
	s.Name = "Box"
	parts := []fea.Part{s.InitSkin()}
	for _, k := range []fea.Kind{fea.KindRib, fea.KindSpar, fea.KindFixPoint} {
		p, err := s.AddPart(k)
		require.NoError(t, err)
		parts = append(parts, p)
	}
	parts[1].Info().Included = fea.Beam
	parts[2].Info().Included = fea.ShellAndBeam
	s.Update()
	return s, parts
}

func TestShearModulus(t *testing.T) {
	m := Material{E: 200, Poisson: 0.25}
	assert.InDelta(t, 80, m.ShearModulus(), 1e-12)
	for _, m := range DefaultMaterials() {
		assert.InDelta(t, m.E/(2*(1+m.Poisson)), m.ShearModulus(), 1e-3)
	}
}

func TestWriteNASTRAN(t *testing.T) {
	s, parts := wingStructure(t)
	d := NewDeck()
	var buf bytes.Buffer
	require.NoError(t, d.WriteNASTRAN(&buf, s))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "$ Structure Box\n"))
	assert.Contains(t, out, "PSHELL,1,1,0.100000\n")
	assert.Contains(t, out, "PBEAM,2,1,0.100000,0.100000,0.100000,0.000000,0.000000\n")
	assert.Contains(t, out, "$ "+parts[2].Info().Name+" Spar PID=1 CAPPID=2\n")
	assert.NotContains(t, out, "FixPoint", "fix points carry no property")
	assert.Equal(t, len(d.Materials), strings.Count(out, "MAT1,"))

	parts[1].Info().CapProperty = 7
	err := d.WriteNASTRAN(&bytes.Buffer{}, s)
	assert.True(t, errors.Is(err, fea.ErrInvalidIndex), "got %v", err)
}

func TestNASTRANUsedPropertiesOnly(t *testing.T) {
	s, parts := wingStructure(t)
	for _, p := range parts[1:3] {
		p.Info().Included = fea.Shell
	}
	var buf bytes.Buffer
	require.NoError(t, NewDeck().WriteNASTRAN(&buf, s))
	assert.NotContains(t, buf.String(), "PBEAM")
}

func TestWriteCalculix(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, parts := wingStructure(t)
	parts[0].Info().Name = "Upper Skin"
	var buf bytes.Buffer
	d := NewDeck()
	require.NoError(t, d.WriteCalculix(&buf, s))
	out := buf.String()
	assert.Contains(t, out, "*SHELL SECTION, ELSET=Upper_Skin, MATERIAL=Aluminum_7075-T6\n0.1\n")
	assert.Contains(t, out, "ELSET="+parts[1].Info().Name+"_CAP,")
	assert.NotContains(t, out, "ELSET="+parts[1].Info().Name+",", "beam only parts have no shell section")
	assert.Contains(t, out, "ELSET="+parts[2].Info().Name+",")
	assert.Contains(t, out, "ELSET="+parts[2].Info().Name+"_CAP,")
	assert.Equal(t, len(d.Materials), strings.Count(out, "*MATERIAL, NAME="))

	d.Properties[0].Material = 9
	err := d.WriteCalculix(&bytes.Buffer{}, s)
	assert.True(t, errors.Is(err, fea.ErrInvalidIndex))
}

func TestScheduleReadback(t *testing.T) {
	s, parts := wingStructure(t)
	rows := Schedule(s)
	require.Len(t, rows, len(parts))
	assert.Equal(t, "Stiffener", rows[1].Class)
	assert.Equal(t, "ShellAndBeam", rows[2].Elements)
	assert.Equal(t, 0, rows[3].Copies)

	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, s, NewDeck()))
	got, err := ReadSchedule(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(parts)+1)
	assert.Equal(t, "Name", got[0][0])
	for i, r := range rows {
		assert.Equal(t, r.Name, got[i+1][0])
		assert.Equal(t, r.Kind, got[i+1][1])
	}
	assert.Equal(t, "1", got[1][4], "skin copies")
}

func TestWriteReport(t *testing.T) {
	s, _ := wingStructure(t)
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, s, NewDeck()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPlanform(t *testing.T) {
	s, _ := wingStructure(t)
	p, err := Planform(s)
	require.NoError(t, err)
	assert.InDelta(t, 0, p.X.Min, 0.05)
	assert.InDelta(t, 1, p.X.Max, 0.05)
	assert.InDelta(t, 0, p.Y.Min, 0.05)
	assert.InDelta(t, 6, p.Y.Max, 0.05)

	img, err := planformPNG(s, 40*vg.Millimeter, 30*vg.Millimeter)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
}
