package arch

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sarchlab/fabricdb/chipdb"
	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/naming"
	"github.com/sarchlab/fabricdb/symbol"
	"github.com/sarchlab/fabricdb/timing"
	"github.com/sarchlab/fabricdb/util"
)

// placeholderPipDelay is the delay of every loaded pip until the chip
// description carries real timing.
const placeholderPipDelay timing.Delay = 0.1

type belKind int

const (
	belSlice belKind = iota
	belIOB
)

// belClass says how to build a bel from its type tag in the description.
type belClass struct {
	kind  belKind
	z     int
	hasFF bool
}

var belClasses = map[string]belClass{
	"LUT0": {kind: belSlice, z: 0, hasFF: true},
	"LUT1": {kind: belSlice, z: 1, hasFF: true},
	"LUT2": {kind: belSlice, z: 2, hasFF: true},
	"LUT3": {kind: belSlice, z: 3, hasFF: true},
	"LUT4": {kind: belSlice, z: 4, hasFF: true},
	"LUT5": {kind: belSlice, z: 5, hasFF: true},
	"LUT6": {kind: belSlice, z: 6},
	"LUT7": {kind: belSlice, z: 7},

	"IOBA": {kind: belIOB, z: 0},
	"IOBB": {kind: belIOB, z: 1},
	"IOBC": {kind: belIOB, z: 2},
	"IOBD": {kind: belIOB, z: 3},
	"IOBE": {kind: belIOB, z: 4},
	"IOBF": {kind: belIOB, z: 5},
	"IOBG": {kind: belIOB, z: 6},
	"IOBH": {kind: belIOB, z: 7},
	"IOBI": {kind: belIOB, z: 8},
	"IOBJ": {kind: belIOB, z: 9},
}

// iobPins binds the pins of an IOB bel to the ports of its description.
// A pin with a fallback takes that port when its own is missing.
var iobPins = []struct {
	pin, port, fallback string
	typ                 fabric.PortType
}{
	{pin: "I", port: "I", fallback: "O", typ: fabric.PortIn},
	{pin: "O", port: "O", typ: fabric.PortOut},
	{pin: "OEN", port: "OE", typ: fabric.PortIn},
}

// loader expands a chip description into the graph of an Arch.
type loader struct {
	a   *Arch
	db  *chipdb.Database
	ids []symbol.Symbol
	res *naming.Resolver

	locals  []naming.LocalAliases
	globals naming.GlobalAliases

	slice, iob symbol.Symbol
}

func (a *Arch) load(db *chipdb.Database) error {
	l := &loader{
		a:     a,
		db:    db,
		ids:   a.syms.InternAll(db.Strings...),
		res:   naming.NewResolver(a.syms, db.Rows, db.Cols),
		slice: a.ID("SLICE"),
		iob:   a.ID("IOB"),
	}

	l.buildAliases()

	if err := l.discover(); err != nil {
		return err
	}

	if err := l.connect(); err != nil {
		return err
	}

	slog.Info("Loaded chip description",
		"Family", db.Family,
		"Device", db.Device,
		"Rows", db.Rows,
		"Cols", db.Cols,
		"Wires", len(a.wires),
		"Pips", len(a.pips),
		"Bels", len(a.bels))

	return nil
}

func (l *loader) buildAliases() {
	l.locals = make([]naming.LocalAliases, len(l.db.Grid))
	for i := range l.db.Grid {
		for _, p := range l.db.Grid[i].Aliases {
			l.locals[i] = append(l.locals[i], naming.AliasPair{
				Src: l.ids[p.Src],
				Dst: l.ids[p.Dst],
			})
		}
	}

	l.globals = make(naming.GlobalAliases, len(l.db.Aliases))
	for i, ga := range l.db.Aliases {
		l.globals[i] = naming.GlobalAlias{
			DstRow: int(ga.DstRow),
			DstCol: int(ga.DstCol),
			Dst:    l.ids[ga.DstID],
			SrcRow: int(ga.SrcRow),
			SrcCol: int(ga.SrcCol),
			Src:    l.ids[ga.SrcID],
		}
	}
	l.globals.Sort()
}

func tilePips(t *chipdb.Tile) [2][]chipdb.Pair {
	return [2][]chipdb.Pair{t.Pips, t.ClockPips}
}

// discover creates every wire named by a pip, and the bels of every tile.
func (l *loader) discover() error {
	for i := range l.db.Grid {
		row, col := i/l.db.Cols, i%l.db.Cols
		t := &l.db.Grid[i]

		for _, list := range tilePips(t) {
			for _, p := range list {
				l.wireOf(l.res.Resolve(row, col, l.ids[p.Dst]), l.ids[p.Dst])
				l.wireOf(l.res.Resolve(row, col, l.ids[p.Src]), l.ids[p.Src])
			}
		}

		for _, bel := range t.Bels {
			if err := l.addBel(row, col, bel); err != nil {
				return errors.Wrapf(err, "tile R%dC%d", row+1, col+1)
			}
		}
	}

	return nil
}

// wireOf returns the wire of a resolved name, creating it in the tile the
// name resolved to.
func (l *loader) wireOf(r naming.Resolved, typ symbol.Symbol) fabric.WireID {
	if w := l.a.WireByName(r.Global); w.Valid() {
		return w
	}

	return l.a.AddWire(r.Global, typ, r.Col, r.Row)
}

// tileWire returns the wire named R{row+1}C{col+1}_{name}. Bel wires are
// tile-local, so the name is never folded as a segment.
func (l *loader) tileWire(row, col int, name string) fabric.WireID {
	return l.wireOf(naming.Resolved{
		Row:    row,
		Col:    col,
		Global: l.a.syms.Internf("R%dC%d_%s", row+1, col+1, name),
		Local:  l.a.ID(name),
	}, l.a.ID(name))
}

func (l *loader) addBel(row, col int, bel chipdb.Bel) error {
	tag := l.db.Str(bel.Type)

	class, ok := belClasses[tag]
	if !ok {
		util.Trace("SkipBel", "Row", row, "Col", col, "Type", tag)
		return nil
	}

	switch class.kind {
	case belSlice:
		return l.addSlice(row, col, class)
	case belIOB:
		return l.addIOB(row, col, class, bel)
	default:
		panic("invalid bel kind")
	}
}

func (l *loader) addSlice(row, col int, class belClass) error {
	a := l.a
	z := class.z

	name := a.syms.Internf("R%dC%d_SLICE%d", row+1, col+1, z)
	if a.BelByName(name).Valid() {
		return errors.Errorf("duplicate bel %s", a.Str(name))
	}

	b := a.AddBel(name, l.slice, fabric.Loc{X: col, Y: row, Z: z}, false)

	a.AddBelOutput(b, a.ID("F"), l.tileWire(row, col, fmt.Sprintf("F%d", z)))
	for _, in := range []string{"A", "B", "C", "D"} {
		a.AddBelInput(b, a.ID(in), l.tileWire(row, col, fmt.Sprintf("%s%d", in, z)))
	}

	if !class.hasFF {
		return nil
	}

	// A LUT pair shares the clock, reset and enable of its flip-flops.
	for _, ctrl := range []string{"CLK", "LSR", "CE"} {
		a.AddBelInput(b, a.ID(ctrl), l.tileWire(row, col, fmt.Sprintf("%s%d", ctrl, z/2)))
	}

	a.AddBelOutput(b, a.ID("Q"), l.tileWire(row, col, fmt.Sprintf("Q%d", z)))

	return nil
}

func (l *loader) addIOB(row, col int, class belClass, bel chipdb.Bel) error {
	a := l.a

	name := a.syms.Internf("R%dC%d_IOB%c", row+1, col+1, 'A'+class.z)
	if a.BelByName(name).Valid() {
		return errors.Errorf("duplicate bel %s", a.Str(name))
	}

	wires := make([]fabric.WireID, len(iobPins))
	for i, p := range iobPins {
		w, ok := l.portWire(bel, a.ID(p.port))
		if !ok && p.fallback != "" {
			w, ok = l.portWire(bel, a.ID(p.fallback))
		}

		if !ok {
			return errors.Errorf("bel %s has no port %s", a.Str(name), p.port)
		}

		wires[i] = l.tileWire(row, col, a.Str(w))
	}

	b := a.AddBel(name, l.iob, fabric.Loc{X: col, Y: row, Z: class.z}, false)
	for i, p := range iobPins {
		switch p.typ {
		case fabric.PortOut:
			a.AddBelOutput(b, a.ID(p.pin), wires[i])
		default:
			a.AddBelInput(b, a.ID(p.pin), wires[i])
		}
	}

	return nil
}

// portWire returns the local wire bound to a port of a bel record.
func (l *loader) portWire(bel chipdb.Bel, port symbol.Symbol) (symbol.Symbol, bool) {
	for _, p := range bel.Ports {
		if l.ids[p.Dst] == port {
			return l.ids[p.Src], true
		}
	}

	return symbol.Empty, false
}

// connect creates the pips. The declared source of every pip goes through
// the local and then the global alias table before it is connected.
func (l *loader) connect() error {
	a := l.a

	for i := range l.db.Grid {
		row, col := i/l.db.Cols, i%l.db.Cols
		t := &l.db.Grid[i]
		z := 0

		for _, list := range tilePips(t) {
			for _, p := range list {
				srcID, dstID := l.ids[p.Src], l.ids[p.Dst]

				dst := l.res.Resolve(row, col, dstID)
				src := l.res.ResolveSource(row, col, srcID, l.locals[i], l.globals)

				name := a.syms.Internf("R%dC%d_%s_%s",
					row+1, col+1, a.Str(srcID), a.Str(dstID))
				if a.PipByName(name).Valid() {
					return errors.Errorf("duplicate pip %s", a.Str(name))
				}

				a.AddPip(name, dstID,
					l.wireOf(src, src.Local),
					l.wireOf(dst, dstID),
					timing.DelayInfo{Delay: placeholderPipDelay},
					fabric.Loc{X: col, Y: row, Z: z})
				z++
			}
		}
	}

	return nil
}
