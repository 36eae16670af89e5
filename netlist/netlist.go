// Package netlist holds the logical nets and cells that placement and
// routing bind to graph resources. The netlist owns them; the graph only
// keeps NetID and CellID handles.
package netlist

import (
	"fmt"
	"strconv"

	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/symbol"
)

// NetID addresses a net. The zero value means no net.
type NetID int32

// CellID addresses a cell. The zero value means no cell.
type CellID int32

const (
	NoNet  NetID  = 0
	NoCell CellID = 0
)

// Valid tells if the handle refers to a net.
func (n NetID) Valid() bool { return n > 0 }

// Valid tells if the handle refers to a cell.
func (c CellID) Valid() bool { return c > 0 }

// PortRef names one port of one cell.
type PortRef struct {
	Cell CellID
	Port symbol.Symbol
}

// PipMap records how a net reaches one of its wires: through Pip, or
// directly when Pip is fabric.NoPip.
type PipMap struct {
	Pip      fabric.PipID
	Strength fabric.Strength
}

// Net is a logical net.
type Net struct {
	Name   symbol.Symbol
	Driver PortRef
	Users  []PortRef
	Wires  map[fabric.WireID]PipMap
	Attrs  map[symbol.Symbol]string
}

// Port is a port of a cell.
type Port struct {
	Name symbol.Symbol
	Type fabric.PortType
	Net  NetID
}

// Cell is a logical cell.
type Cell struct {
	Name   symbol.Symbol
	Type   symbol.Symbol
	Ports  map[symbol.Symbol]*Port
	Attrs  map[symbol.Symbol]string
	Params map[symbol.Symbol]string

	Bel         fabric.BelID
	BelStrength fabric.Strength

	// Set by the architecture before validity checks.
	IsSlice   bool
	SliceClk  NetID
	UserGroup int
}

// Netlist is the arena of nets and cells.
type Netlist struct {
	syms       *symbol.Interner
	nets       []*Net
	cells      []*Cell
	netByName  map[symbol.Symbol]NetID
	cellByName map[symbol.Symbol]CellID
}

// New creates an empty netlist that names things with syms.
func New(syms *symbol.Interner) *Netlist {
	return &Netlist{
		syms:       syms,
		netByName:  make(map[symbol.Symbol]NetID),
		cellByName: make(map[symbol.Symbol]CellID),
	}
}

// Symbols returns the interner of the netlist.
func (n *Netlist) Symbols() *symbol.Interner {
	return n.syms
}

// AddNet creates a net. It panics if the name is taken.
func (n *Netlist) AddNet(name string) NetID {
	s := n.syms.Intern(name)
	if _, ok := n.netByName[s]; ok {
		panic(fmt.Sprintf("net %s already exists", name))
	}

	n.nets = append(n.nets, &Net{
		Name:  s,
		Wires: make(map[fabric.WireID]PipMap),
		Attrs: make(map[symbol.Symbol]string),
	})
	id := NetID(len(n.nets))
	n.netByName[s] = id

	return id
}

// AddCell creates a cell of the given type. It panics if the name is taken.
func (n *Netlist) AddCell(name, typ string) CellID {
	s := n.syms.Intern(name)
	if _, ok := n.cellByName[s]; ok {
		panic(fmt.Sprintf("cell %s already exists", name))
	}

	n.cells = append(n.cells, &Cell{
		Name:      s,
		Type:      n.syms.Intern(typ),
		Ports:     make(map[symbol.Symbol]*Port),
		Attrs:     make(map[symbol.Symbol]string),
		Params:    make(map[symbol.Symbol]string),
		UserGroup: -1,
	})
	id := CellID(len(n.cells))
	n.cellByName[s] = id

	return id
}

// Net returns the net. It panics on an invalid handle.
func (n *Netlist) Net(id NetID) *Net {
	if id <= 0 || int(id) > len(n.nets) {
		panic(fmt.Sprintf("invalid net handle %d", id))
	}

	return n.nets[id-1]
}

// Cell returns the cell. It panics on an invalid handle.
func (n *Netlist) Cell(id CellID) *Cell {
	if id <= 0 || int(id) > len(n.cells) {
		panic(fmt.Sprintf("invalid cell handle %d", id))
	}

	return n.cells[id-1]
}

// NetByName returns the named net, or NoNet.
func (n *Netlist) NetByName(name string) NetID {
	s, ok := n.syms.Lookup(name)
	if !ok {
		return NoNet
	}

	return n.netByName[s]
}

// CellByName returns the named cell, or NoCell.
func (n *Netlist) CellByName(name string) CellID {
	s, ok := n.syms.Lookup(name)
	if !ok {
		return NoCell
	}

	return n.cellByName[s]
}

// NetName returns the name of a net.
func (n *Netlist) NetName(id NetID) string {
	return n.syms.Str(n.Net(id).Name)
}

// CellName returns the name of a cell.
func (n *Netlist) CellName(id CellID) string {
	return n.syms.Str(n.Cell(id).Name)
}

// Nets returns every net handle in creation order.
func (n *Netlist) Nets() []NetID {
	ids := make([]NetID, len(n.nets))
	for i := range ids {
		ids[i] = NetID(i + 1)
	}

	return ids
}

// Cells returns every cell handle in creation order.
func (n *Netlist) Cells() []CellID {
	ids := make([]CellID, len(n.cells))
	for i := range ids {
		ids[i] = CellID(i + 1)
	}

	return ids
}

// Connect attaches the port of a cell to a net. An output port becomes the
// driver of the net; other ports become users. It panics if the net already
// has a driver and the port is an output.
func (n *Netlist) Connect(cell CellID, port string, typ fabric.PortType, net NetID) {
	c := n.Cell(cell)
	nt := n.Net(net)
	ps := n.syms.Intern(port)

	c.Ports[ps] = &Port{Name: ps, Type: typ, Net: net}

	ref := PortRef{Cell: cell, Port: ps}
	if typ == fabric.PortOut {
		if nt.Driver.Cell.Valid() {
			panic(fmt.Sprintf("net %s already has a driver", n.syms.Str(nt.Name)))
		}

		nt.Driver = ref

		return
	}

	nt.Users = append(nt.Users, ref)
}

// PortNet returns the net on the named port of a cell, or NoNet.
func (n *Netlist) PortNet(cell CellID, port symbol.Symbol) NetID {
	p, ok := n.Cell(cell).Ports[port]
	if !ok {
		return NoNet
	}

	return p.Net
}

// SetAttr sets a string attribute of a cell.
func (n *Netlist) SetAttr(cell CellID, key, value string) {
	n.Cell(cell).Attrs[n.syms.Intern(key)] = value
}

// IntAttr reads an integer attribute of a cell, returning def when the
// attribute is absent or not a number.
func (n *Netlist) IntAttr(cell CellID, key string, def int) int {
	k, ok := n.syms.Lookup(key)
	if !ok {
		return def
	}

	v, ok := n.Cell(cell).Attrs[k]
	if !ok {
		return def
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return i
}

// HasAttr tells if the cell carries the attribute.
func (n *Netlist) HasAttr(cell CellID, key string) bool {
	k, ok := n.syms.Lookup(key)
	if !ok {
		return false
	}

	_, ok = n.Cell(cell).Attrs[k]

	return ok
}
