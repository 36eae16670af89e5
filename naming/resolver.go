package naming

import (
	"github.com/sarchlab/fabricdb/symbol"
)

// Resolved is the outcome of resolving a tile-local wire name.
type Resolved struct {
	// Row and Col are the tile the wire canonically belongs to.
	Row, Col int
	// Global is the canonical name of the wire, R{row+1}C{col+1}_{name}.
	Global symbol.Symbol
	// Local is the name of the wire as seen from the tile it belongs to. For
	// segment wires it is {direction}{number}0, otherwise the input name.
	Local symbol.Symbol
}

// Resolver maps tile-local wire names to canonical global names on a grid of
// a fixed size.
type Resolver struct {
	syms       *symbol.Interner
	rows, cols int
	vcc, gnd   symbol.Symbol
}

// NewResolver creates a Resolver for a rows x cols grid.
func NewResolver(syms *symbol.Interner, rows, cols int) *Resolver {
	return &Resolver{
		syms: syms,
		rows: rows,
		cols: cols,
		vcc:  syms.Intern("VCC"),
		gnd:  syms.Intern("GND"),
	}
}

// Rows returns the number of rows of the grid.
func (r *Resolver) Rows() int {
	return r.rows
}

// Cols returns the number of columns of the grid.
func (r *Resolver) Cols() int {
	return r.cols
}

// Resolve maps the wire named local in the tile (row, col) to its canonical
// tile and name.
func (r *Resolver) Resolve(row, col int, local symbol.Symbol) Resolved {
	if local == r.vcc || local == r.gnd {
		return Resolved{Row: row, Col: col, Global: local, Local: local}
	}

	name := r.syms.Str(local)
	if !isSegmentName(name) {
		return r.tileLocal(row, col, local, name)
	}

	dir := Direction(name[0])
	if !dir.Valid() {
		return r.tileLocal(row, col, local, name)
	}

	num := int(name[1]-'0')*10 + int(name[2]-'0')
	length := int(name[3] - '0')

	dRow, dCol := dir.step()
	row += dRow * length
	col += dCol * length

	row, col, dir = r.wrap(row, col, dir)

	return Resolved{
		Row:    row,
		Col:    col,
		Global: r.syms.Internf("R%dC%d_%c%d", row+1, col+1, dir, num),
		Local:  r.syms.Internf("%c%d0", dir, num),
	}
}

// wrap folds a coordinate that left the grid back onto it. Only the first
// violated edge is corrected, checked in the order row < 0, col < 0,
// row >= rows, col >= cols.
func (r *Resolver) wrap(row, col int, dir Direction) (int, int, Direction) {
	switch {
	case row < 0:
		row = -1 - row
		dir = North
	case col < 0:
		col = -1 - col
		dir = West
	case row >= r.rows:
		row = 2*r.rows - 1 - row
		dir = South
	case col >= r.cols:
		col = 2*r.cols - 1 - col
		dir = East
	}

	return row, col, dir
}

func (r *Resolver) tileLocal(
	row, col int,
	local symbol.Symbol,
	name string,
) Resolved {
	return Resolved{
		Row:    row,
		Col:    col,
		Global: r.syms.Internf("R%dC%d_%s", row+1, col+1, name),
		Local:  local,
	}
}

// isSegmentName tells if name carries the <2-digit number><1-digit length>
// part after its first character.
func isSegmentName(name string) bool {
	if len(name) < 4 {
		return false
	}

	for i := 1; i <= 3; i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}

	return true
}
