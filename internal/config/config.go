// Package config persists GeomConfig and calibration tables as YAML, the
// sidecar file cmd/plotterctl reads (its -config flag) to initialize a
// session; Save/SaveFile write one, though cmd/plotterctl never writes it
// back. Host-side only: it runs
// once at startup/shutdown, never on the controller's tick path, so
// converting Fixed <-> float64 here doesn't reintroduce floating point
// into the per-tick hot loop.
package config

import (
	"io"
	"os"

	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/pwmmap"
	"gopkg.in/yaml.v3"
)

type geomYAML struct {
	ArmLen        float64    `yaml:"arm_len"`
	ShoulderRange [2]float64 `yaml:"shoulder_range_deg"`
	ElbowRange    [2]float64 `yaml:"elbow_range_deg"`
	XRange        [2]float64 `yaml:"x_range"`
	YRange        [2]float64 `yaml:"y_range"`
}

type entryYAML struct {
	Degrees int16  `yaml:"degrees"`
	DutyUs  uint16 `yaml:"duty_us"`
}

type tableYAML struct {
	Inc []entryYAML `yaml:"inc"`
	Dec []entryYAML `yaml:"dec"`
}

type penYAML struct {
	UpUs   uint16 `yaml:"up_us"`
	DownUs uint16 `yaml:"down_us"`
}

type fileYAML struct {
	Geom     geomYAML  `yaml:"geom"`
	Shoulder tableYAML `yaml:"shoulder"`
	Elbow    tableYAML `yaml:"elbow"`
	Pen      penYAML   `yaml:"pen"`
}

// Save writes geom and tables to w as YAML, two-space indented per
// original_source-adjacent itohio-EasyRobot's yaml marshaller idiom
// (yaml.NewEncoder + SetIndent(2)).
func Save(w io.Writer, geom geometry.GeomConfig, tables pwmmap.Tables) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(toYAML(geom, tables))
}

// Load parses a YAML document produced by Save.
func Load(r io.Reader) (geometry.GeomConfig, pwmmap.Tables, error) {
	var doc fileYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return geometry.GeomConfig{}, pwmmap.Tables{}, err
	}
	geom, tables := fromYAML(doc)
	return geom, tables, nil
}

// SaveFile is Save against a path, truncating/creating the file.
func SaveFile(path string, geom geometry.GeomConfig, tables pwmmap.Tables) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Save(f, geom, tables)
}

// LoadFile is Load against a path.
func LoadFile(path string) (geometry.GeomConfig, pwmmap.Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return geometry.GeomConfig{}, pwmmap.Tables{}, err
	}
	defer f.Close()
	return Load(f)
}

func toYAML(geom geometry.GeomConfig, tables pwmmap.Tables) fileYAML {
	return fileYAML{
		Geom: geomYAML{
			ArmLen:        geom.ArmLen.Float64(),
			ShoulderRange: [2]float64{geom.ShoulderRange[0].Deg.Float64(), geom.ShoulderRange[1].Deg.Float64()},
			ElbowRange:    [2]float64{geom.ElbowRange[0].Deg.Float64(), geom.ElbowRange[1].Deg.Float64()},
			XRange:        [2]float64{geom.XRange[0].Float64(), geom.XRange[1].Float64()},
			YRange:        [2]float64{geom.YRange[0].Float64(), geom.YRange[1].Float64()},
		},
		Shoulder: entriesToYAML(tables.Shoulder),
		Elbow:    entriesToYAML(tables.Elbow),
		Pen:      penYAML{UpUs: tables.Pen.UpUs, DownUs: tables.Pen.DownUs},
	}
}

func entriesToYAML(t pwmmap.CalibrationTable) tableYAML {
	conv := func(entries []pwmmap.Entry) []entryYAML {
		out := make([]entryYAML, len(entries))
		for i, e := range entries {
			out[i] = entryYAML{Degrees: e.Degrees, DutyUs: e.DutyUs}
		}
		return out
	}
	return tableYAML{Inc: conv(t.Inc), Dec: conv(t.Dec)}
}

func fromYAML(doc fileYAML) (geometry.GeomConfig, pwmmap.Tables) {
	deg := func(v float64) fixedmath.Angle { return fixedmath.FromDegrees(fixedmath.FromFloat64(v)) }
	geom := geometry.GeomConfig{
		ArmLen:        fixedmath.FromFloat64(doc.Geom.ArmLen),
		ShoulderRange: [2]fixedmath.Angle{deg(doc.Geom.ShoulderRange[0]), deg(doc.Geom.ShoulderRange[1])},
		ElbowRange:    [2]fixedmath.Angle{deg(doc.Geom.ElbowRange[0]), deg(doc.Geom.ElbowRange[1])},
		XRange:        [2]fixedmath.Fixed{fixedmath.FromFloat64(doc.Geom.XRange[0]), fixedmath.FromFloat64(doc.Geom.XRange[1])},
		YRange:        [2]fixedmath.Fixed{fixedmath.FromFloat64(doc.Geom.YRange[0]), fixedmath.FromFloat64(doc.Geom.YRange[1])},
	}
	tables := pwmmap.Tables{
		Shoulder: entriesFromYAML(doc.Shoulder),
		Elbow:    entriesFromYAML(doc.Elbow),
		Pen:      pwmmap.PenTable{UpUs: doc.Pen.UpUs, DownUs: doc.Pen.DownUs},
	}
	return geom, tables
}

func entriesFromYAML(t tableYAML) pwmmap.CalibrationTable {
	conv := func(entries []entryYAML) []pwmmap.Entry {
		out := make([]pwmmap.Entry, len(entries))
		for i, e := range entries {
			out[i] = pwmmap.Entry{Degrees: e.Degrees, DutyUs: e.DutyUs}
		}
		return out
	}
	return pwmmap.CalibrationTable{Inc: conv(t.Inc), Dec: conv(t.Dec)}
}

// DefaultTables is the measured calibration data ported from
// original_source/crates/runner/src/main.rs's shoulder_config()/
// elbow_config(), used when no YAML sidecar exists yet.
func DefaultTables() pwmmap.Tables {
	return pwmmap.Tables{
		Shoulder: pwmmap.CalibrationTable{
			Inc: []pwmmap.Entry{
				{Degrees: -45, DutyUs: 600},
				{Degrees: 0, DutyUs: 916},
				{Degrees: 45, DutyUs: 1230},
				{Degrees: 90, DutyUs: 1550},
				{Degrees: 120, DutyUs: 1780},
			},
			Dec: []pwmmap.Entry{
				{Degrees: -45, DutyUs: 610},
				{Degrees: 0, DutyUs: 924},
				{Degrees: 45, DutyUs: 1238},
				{Degrees: 90, DutyUs: 1558},
				{Degrees: 120, DutyUs: 1790},
			},
		},
		Elbow: pwmmap.CalibrationTable{
			Inc: []pwmmap.Entry{
				{Degrees: -60, DutyUs: 620},
				{Degrees: 0, DutyUs: 1100},
				{Degrees: 75, DutyUs: 1700},
			},
			Dec: []pwmmap.Entry{
				{Degrees: -60, DutyUs: 630},
				{Degrees: 0, DutyUs: 1108},
				{Degrees: 75, DutyUs: 1708},
			},
		},
		Pen: pwmmap.PenTable{UpUs: 1500, DownUs: 1800},
	}
}
