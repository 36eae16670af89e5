// Package chipdb defines the deduplicated per-tile chip description that the
// architecture is loaded from, together with its binary and YAML encodings.
//
// Names inside a Database are indexes into Database.Strings. Tiles are stored
// row-major in Grid. Every name is tile-relative; turning them into global
// wire names is the job of the naming package.
package chipdb

import (
	"github.com/pkg/errors"
)

// Version is the current version of the binary encoding.
const Version uint32 = 1

// NoID marks an absent string index. It is also the wildcard in Pair lookups.
const NoID int32 = -1

// Pair is a (source, destination) pair of string indexes. Pips connect Src
// to Dst; bel ports bind the wire Src to the port Dst; local aliases redirect
// Dst to Src.
type Pair struct {
	Src, Dst int32
}

// Bel is a bel record of a tile. Type is the bel-type tag, e.g. LUT4 or IOBA.
type Bel struct {
	Type  int32
	Ports []Pair
}

// Port returns the wire bound to the named port.
func (b Bel) Port(port int32) (int32, bool) {
	for _, p := range b.Ports {
		if p.Dst == port {
			return p.Src, true
		}
	}

	return NoID, false
}

// Tile is the description of one grid cell.
type Tile struct {
	Pips      []Pair
	ClockPips []Pair
	Bels      []Bel
	Aliases   []Pair
}

// GlobalAlias redirects the wire DstID of tile (DstRow, DstCol) to the wire
// SrcID of tile (SrcRow, SrcCol).
type GlobalAlias struct {
	DstRow, DstCol int32
	DstID          int32
	SrcRow, SrcCol int32
	SrcID          int32
}

// Database is a complete chip description.
type Database struct {
	Version    uint32
	Family     string
	Device     string
	Rows, Cols int
	Strings    []string
	Grid       []Tile
	Aliases    []GlobalAlias
}

// Tile returns the tile at (row, col).
func (db *Database) Tile(row, col int) *Tile {
	return &db.Grid[row*db.Cols+col]
}

// Str returns the string at index id.
func (db *Database) Str(id int32) string {
	return db.Strings[id]
}

// Validate checks that the grid matches the declared size and that every
// string index is in range.
func (db *Database) Validate() error {
	if db.Version != Version {
		return errors.Errorf("chip description version %d, expected %d",
			db.Version, Version)
	}

	if db.Rows <= 0 || db.Cols <= 0 {
		return errors.Errorf("invalid grid size %dx%d", db.Rows, db.Cols)
	}

	if len(db.Grid) != db.Rows*db.Cols {
		return errors.Errorf("grid has %d tiles, expected %d",
			len(db.Grid), db.Rows*db.Cols)
	}

	for i := range db.Grid {
		if err := db.validateTile(&db.Grid[i]); err != nil {
			return errors.Wrapf(err, "tile R%dC%d",
				i/db.Cols+1, i%db.Cols+1)
		}
	}

	for i, a := range db.Aliases {
		if !db.validID(a.DstID) || !db.validID(a.SrcID) {
			return errors.Errorf("global alias %d refers to unknown string", i)
		}

		if !db.inGrid(a.DstRow, a.DstCol) || !db.inGrid(a.SrcRow, a.SrcCol) {
			return errors.Errorf("global alias %d is outside the grid", i)
		}
	}

	return nil
}

func (db *Database) validateTile(t *Tile) error {
	lists := [][]Pair{t.Pips, t.ClockPips, t.Aliases}
	for _, l := range lists {
		for _, p := range l {
			if !db.validID(p.Src) || !db.validID(p.Dst) {
				return errors.Errorf("pair (%d, %d) refers to unknown string",
					p.Src, p.Dst)
			}
		}
	}

	for _, b := range t.Bels {
		if !db.validID(b.Type) {
			return errors.Errorf("bel type %d is unknown", b.Type)
		}

		for _, p := range b.Ports {
			if !db.validID(p.Src) || !db.validID(p.Dst) {
				return errors.Errorf("bel port (%d, %d) refers to unknown string",
					p.Src, p.Dst)
			}
		}
	}

	return nil
}

func (db *Database) validID(id int32) bool {
	return id >= 0 && int(id) < len(db.Strings)
}

func (db *Database) inGrid(row, col int32) bool {
	return row >= 0 && int(row) < db.Rows && col >= 0 && int(col) < db.Cols
}
