package naming

import (
	"sort"

	"github.com/sarchlab/fabricdb/symbol"
	"github.com/sarchlab/fabricdb/util"
)

// Any matches every symbol in a LocalAliases lookup.
const Any symbol.Symbol = -1

// AliasPair redirects the wire Dst of a tile to the wire Src of the same
// tile.
type AliasPair struct {
	Src, Dst symbol.Symbol
}

// LocalAliases is the small per-tile alias table.
type LocalAliases []AliasPair

// Lookup returns the first pair matching both src and dst. Either may be Any.
func (l LocalAliases) Lookup(src, dst symbol.Symbol) (AliasPair, bool) {
	for _, p := range l {
		if (src == Any || p.Src == src) && (dst == Any || p.Dst == dst) {
			return p, true
		}
	}

	return AliasPair{}, false
}

// GlobalAlias redirects the wire Dst at (DstRow, DstCol) to the wire Src at
// (SrcRow, SrcCol).
type GlobalAlias struct {
	DstRow, DstCol int
	Dst            symbol.Symbol
	SrcRow, SrcCol int
	Src            symbol.Symbol
}

func aliasLess(row, col int, dst symbol.Symbol, b GlobalAlias) bool {
	if row != b.DstRow {
		return row < b.DstRow
	}

	if col != b.DstCol {
		return col < b.DstCol
	}

	return dst < b.Dst
}

// GlobalAliases is the fabric-wide alias table. Lookup requires the table to
// be sorted with Sort first.
type GlobalAliases []GlobalAlias

// Sort orders the table by destination row, then column, then symbol.
func (g GlobalAliases) Sort() {
	sort.Slice(g, func(i, j int) bool {
		return aliasLess(g[i].DstRow, g[i].DstCol, g[i].Dst, g[j])
	})
}

// Lookup finds the alias whose destination is exactly (row, col, dst).
func (g GlobalAliases) Lookup(row, col int, dst symbol.Symbol) (GlobalAlias, bool) {
	i := sort.Search(len(g), func(i int) bool {
		return !aliasLess(g[i].DstRow, g[i].DstCol, g[i].Dst,
			GlobalAlias{DstRow: row, DstCol: col, Dst: dst})
	})

	if i < len(g) && g[i].DstRow == row && g[i].DstCol == col && g[i].Dst == dst {
		return g[i], true
	}

	return GlobalAlias{}, false
}

// ResolveSource resolves the declared source wire of a pip in tile
// (row, col). The local alias stage runs first and re-resolves its source
// from the tile the first resolution landed in. The global alias stage then
// always runs and overrides whatever the local stage produced.
func (r *Resolver) ResolveSource(
	row, col int,
	src symbol.Symbol,
	locals LocalAliases,
	globals GlobalAliases,
) Resolved {
	res := r.Resolve(row, col, src)

	if la, ok := locals.Lookup(Any, res.Local); ok {
		res = r.Resolve(res.Row, res.Col, la.Src)

		if util.TraceEnabled() {
			util.Trace("LocalAlias",
				"Row", row, "Col", col,
				"From", r.syms.Str(src),
				"To", r.syms.Str(res.Global))
		}
	}

	if ga, ok := globals.Lookup(res.Row, res.Col, src); ok {
		res = r.Resolve(ga.SrcRow, ga.SrcCol, ga.Src)

		if util.TraceEnabled() {
			util.Trace("GlobalAlias",
				"Row", row, "Col", col,
				"From", r.syms.Str(src),
				"To", r.syms.Str(res.Global))
		}
	}

	return res
}
