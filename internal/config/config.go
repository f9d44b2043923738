// Package config loads the feastruct settings from a dotenv file and the
// process environment. Environment variables take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/npillmayer/schuko/tracing"
)

// Config holds the demo wing and output settings.
type Config struct {
	TraceLevel tracing.TraceLevel
	HalfMesh   bool
	// Wing planform.
	Span      float64
	RootChord float64
	TipChord  float64
	SweepDeg  float64
	Sections  int
	// RibSpacing is the relative spacing of the rib array.
	RibSpacing float64
	OutputDir  string
	// StructureXML optionally names a structure file to load instead of the default layout.
	StructureXML string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		TraceLevel: tracing.LevelError,
		Span:       10,
		RootChord:  2,
		TipChord:   1,
		SweepDeg:   10,
		Sections:   2,
		RibSpacing: 0.1,
		OutputDir:  ".",
	}
}

// Load reads the dotenv file at path, if it exists, then the environment.
func Load(path string) (Config, error) {
	vars := map[string]string{}
	if path != "" {
		fileVars, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}
	return parse(vars)
}

var keys = []string{
	"FEA_TRACE_LEVEL", "FEA_HALF_MESH", "FEA_SPAN", "FEA_ROOT_CHORD", "FEA_TIP_CHORD",
	"FEA_SWEEP_DEG", "FEA_SECTIONS", "FEA_RIB_SPACING", "FEA_OUTPUT_DIR", "FEA_STRUCTURE_XML",
}

func parse(vars map[string]string) (Config, error) {
	c := Default()
	if v, ok := vars["FEA_TRACE_LEVEL"]; ok {
		c.TraceLevel = tracing.TraceLevelFromString(v)
	}
	if v, ok := vars["FEA_OUTPUT_DIR"]; ok && v != "" {
		c.OutputDir = v
	}
	c.StructureXML = vars["FEA_STRUCTURE_XML"]
	var err error
	if v, ok := vars["FEA_HALF_MESH"]; ok {
		if c.HalfMesh, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("FEA_HALF_MESH: %w", err)
		}
	}
	if v, ok := vars["FEA_SECTIONS"]; ok {
		if c.Sections, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("FEA_SECTIONS: %w", err)
		}
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"FEA_SPAN", &c.Span},
		{"FEA_ROOT_CHORD", &c.RootChord},
		{"FEA_TIP_CHORD", &c.TipChord},
		{"FEA_SWEEP_DEG", &c.SweepDeg},
		{"FEA_RIB_SPACING", &c.RibSpacing},
	}
	for _, f := range floats {
		v, ok := vars[f.key]
		if !ok {
			continue
		}
		if *f.dst, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("%s: %w", f.key, err)
		}
	}
	return c, c.Validate()
}

// Validate checks the wing settings.
func (c Config) Validate() error {
	switch {
	case c.Span <= 0:
		return errors.New("span must be positive")
	case c.RootChord <= 0 || c.TipChord <= 0:
		return errors.New("chords must be positive")
	case c.Sections < 1:
		return errors.New("at least one wing section is required")
	case c.RibSpacing <= 0 || c.RibSpacing > 1:
		return errors.New("rib spacing must be in (0,1]")
	}
	return nil
}
