package arch

import (
	"github.com/sarchlab/fabricdb/chipdb"
)

// sliceFabric is a single tile with one LUT4 and its flip-flop, plus a
// feedback pip from the LUT output to its A input.
func sliceFabric() *chipdb.Database {
	return chipdb.NewBuilder(DefaultFamily, 1, 1).
		AddBel(0, 0, "LUT4").
		AddBel(0, 0, "LUT5").
		AddPip(0, 0, "F4", "A4").
		Build()
}

// aliasFabric is a 2x2 grid whose pips exercise wraparound and both alias
// tables.
func aliasFabric() *chipdb.Database {
	return chipdb.NewBuilder(DefaultFamily, 2, 2).
		// Local alias only: X1 of R1C2 is really L1 of R1C2.
		AddPip(0, 1, "X1", "Y1").
		AddAlias(0, 1, "L1", "X1").
		// Local and global alias: the global one wins.
		AddPip(0, 0, "X1", "Y1").
		AddAlias(0, 0, "L1", "X1").
		AddGlobalAlias(0, 0, "X1", 1, 1, "G1").
		// A southbound segment off the bottom edge folds back north.
		AddPip(0, 0, "S101", "Y2").
		// A clock pip shares the running pip index of the tile.
		AddClockPip(1, 1, "Y1", "CK1").
		AddBel(1, 0, "IOBA",
			chipdb.Port{Wire: "PI0", Name: "I"},
			chipdb.Port{Wire: "PO0", Name: "O"},
			chipdb.Port{Wire: "POE0", Name: "OE"}).
		Build()
}
