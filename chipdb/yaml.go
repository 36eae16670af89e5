package chipdb

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type yamlPair struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"`
}

type yamlPort struct {
	Wire string `yaml:"wire"`
	Name string `yaml:"name"`
}

type yamlBel struct {
	Type  string     `yaml:"type"`
	Ports []yamlPort `yaml:"ports,omitempty"`
}

type yamlTile struct {
	Row       int        `yaml:"row"`
	Col       int        `yaml:"col"`
	Pips      []yamlPair `yaml:"pips,omitempty"`
	ClockPips []yamlPair `yaml:"clock_pips,omitempty"`
	Bels      []yamlBel  `yaml:"bels,omitempty"`
	Aliases   []yamlPair `yaml:"aliases,omitempty"`
}

type yamlWireRef struct {
	Row  int    `yaml:"row"`
	Col  int    `yaml:"col"`
	Wire string `yaml:"wire"`
}

type yamlGlobalAlias struct {
	Dst yamlWireRef `yaml:"dst"`
	Src yamlWireRef `yaml:"src"`
}

type yamlDatabase struct {
	Family  string            `yaml:"family"`
	Device  string            `yaml:"device,omitempty"`
	Rows    int               `yaml:"rows"`
	Cols    int               `yaml:"cols"`
	Tiles   []yamlTile        `yaml:"tiles"`
	Aliases []yamlGlobalAlias `yaml:"aliases,omitempty"`
}

// DecodeYAML reads a hand-written chip description. Tiles that are not
// listed are empty.
func DecodeYAML(r io.Reader) (*Database, error) {
	var y yamlDatabase

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil {
		return nil, errors.Wrap(err, "decode yaml chip description")
	}

	if y.Rows <= 0 || y.Cols <= 0 {
		return nil, errors.Errorf("invalid grid size %dx%d", y.Rows, y.Cols)
	}

	b := NewBuilder(y.Family, y.Rows, y.Cols)
	if y.Device != "" {
		b.WithDevice(y.Device)
	}

	for _, t := range y.Tiles {
		if t.Row < 0 || t.Row >= y.Rows || t.Col < 0 || t.Col >= y.Cols {
			return nil, errors.Errorf("tile (%d, %d) is outside the %dx%d grid",
				t.Row, t.Col, y.Rows, y.Cols)
		}

		for _, p := range t.Pips {
			b.AddPip(t.Row, t.Col, p.Src, p.Dst)
		}

		for _, p := range t.ClockPips {
			b.AddClockPip(t.Row, t.Col, p.Src, p.Dst)
		}

		for _, bel := range t.Bels {
			ports := make([]Port, len(bel.Ports))
			for i, p := range bel.Ports {
				ports[i] = Port{Wire: p.Wire, Name: p.Name}
			}
			b.AddBel(t.Row, t.Col, bel.Type, ports...)
		}

		for _, p := range t.Aliases {
			b.AddAlias(t.Row, t.Col, p.Src, p.Dst)
		}
	}

	for _, a := range y.Aliases {
		b.AddGlobalAlias(a.Dst.Row, a.Dst.Col, a.Dst.Wire,
			a.Src.Row, a.Src.Col, a.Src.Wire)
	}

	db := b.Build()
	if err := db.Validate(); err != nil {
		return nil, err
	}

	return db, nil
}

// EncodeYAML writes the database in the hand-written form. Empty tiles are
// omitted.
func EncodeYAML(w io.Writer, db *Database) error {
	y := yamlDatabase{
		Family: db.Family,
		Device: db.Device,
		Rows:   db.Rows,
		Cols:   db.Cols,
	}

	for i := range db.Grid {
		t := &db.Grid[i]
		if len(t.Pips)+len(t.ClockPips)+len(t.Bels)+len(t.Aliases) == 0 {
			continue
		}

		yt := yamlTile{
			Row:       i / db.Cols,
			Col:       i % db.Cols,
			Pips:      yamlPairs(db, t.Pips),
			ClockPips: yamlPairs(db, t.ClockPips),
			Aliases:   yamlPairs(db, t.Aliases),
		}

		for _, bel := range t.Bels {
			yb := yamlBel{Type: db.Str(bel.Type)}
			for _, p := range bel.Ports {
				yb.Ports = append(yb.Ports,
					yamlPort{Wire: db.Str(p.Src), Name: db.Str(p.Dst)})
			}
			yt.Bels = append(yt.Bels, yb)
		}

		y.Tiles = append(y.Tiles, yt)
	}

	for _, a := range db.Aliases {
		y.Aliases = append(y.Aliases, yamlGlobalAlias{
			Dst: yamlWireRef{Row: int(a.DstRow), Col: int(a.DstCol), Wire: db.Str(a.DstID)},
			Src: yamlWireRef{Row: int(a.SrcRow), Col: int(a.SrcCol), Wire: db.Str(a.SrcID)},
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&y); err != nil {
		return errors.Wrap(err, "encode yaml chip description")
	}

	return errors.Wrap(enc.Close(), "encode yaml chip description")
}

func yamlPairs(db *Database, ps []Pair) []yamlPair {
	if len(ps) == 0 {
		return nil
	}

	out := make([]yamlPair, len(ps))
	for i, p := range ps {
		out[i] = yamlPair{Src: db.Str(p.Src), Dst: db.Str(p.Dst)}
	}

	return out
}

// Load reads a chip description from a file, choosing the codec from the
// extension: .yaml and .yml are YAML, anything else is binary.
func Load(path string) (*Database, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open chip description")
		}
		defer f.Close()

		db, err := DecodeYAML(f)
		if err != nil {
			return nil, errors.Wrap(err, path)
		}

		return db, nil
	default:
		return ReadFile(path)
	}
}
