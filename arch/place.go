package arch

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/netlist"
)

// Placer assigns every cell of the netlist to a bel of the architecture.
type Placer interface {
	Place(a *Arch) error
}

// Router binds the wires and pips that connect every net.
type Router interface {
	Route(a *Arch) error
}

const (
	DefaultPlacer = "sa"
	DefaultRouter = "router1"
)

// AvailablePlacers lists the placers an architecture can run.
var AvailablePlacers = []string{"sa", "heap"}

// AvailableRouters lists the routers an architecture can run.
var AvailableRouters = []string{"router1", "router2"}

func mustBeKnown(name string, known []string, kind string) {
	for _, k := range known {
		if k == name {
			return
		}
	}

	panic(fmt.Sprintf("architecture does not support %s %q", kind, name))
}

// Pack groups cells into the primitives of the fabric. The fabric has no
// packing rules, so it succeeds without changes.
func (a *Arch) Pack() error {
	return nil
}

// Place runs the placer named by the "placer" setting. The heap placer needs
// an anchor; without an IOB cell, a placed cell or a BEL constraint it falls
// back to sa.
func (a *Arch) Place() error {
	name := a.Setting("placer", a.defaultPlacer)
	mustBeKnown(name, AvailablePlacers, "placer")

	if name == "heap" && !a.hasPlacementAnchor() {
		slog.Warn("Unable to use HeAP due to a lack of IO buffers or " +
			"constrained cells as anchors; reverting to SA")

		name = "sa"
	}

	p, ok := a.placers[name]
	if !ok {
		return errors.Errorf("placer %q is not registered", name)
	}

	err := p.Place(a)
	a.settings["place"] = "1"

	return errors.Wrapf(err, "placer %s", name)
}

// Route runs the router named by the "router" setting.
func (a *Arch) Route() error {
	name := a.Setting("router", a.defaultRouter)
	mustBeKnown(name, AvailableRouters, "router")

	r, ok := a.routers[name]
	if !ok {
		return errors.Errorf("router %q is not registered", name)
	}

	err := r.Route(a)
	a.settings["route"] = "1"

	return errors.Wrapf(err, "router %s", name)
}

func (a *Arch) hasPlacementAnchor() bool {
	iob, ok := a.syms.Lookup("IOB")

	for _, id := range a.nl.Cells() {
		c := a.nl.Cell(id)

		if (ok && c.Type == iob) || c.Bel.Valid() || a.nl.HasAttr(id, "BEL") {
			return true
		}
	}

	return false
}

// AssignArchInfo records on every cell the facts CellsCompatible needs: if
// it is a slice, its clock net, and its packing group.
func (a *Arch) AssignArchInfo() {
	slice := a.ID("SLICE")
	clk := a.ID("CLK")

	for _, id := range a.nl.Cells() {
		c := a.nl.Cell(id)

		c.IsSlice = c.Type == slice
		c.SliceClk = netlist.NoNet
		if c.IsSlice {
			c.SliceClk = a.nl.PortNet(id, clk)
		}

		c.UserGroup = a.nl.IntAttr(id, "PACK_GROUP", -1)
	}
}

// CellsCompatible tells if the cells can share a tile. Slices must share
// their clock net and cells must share their packing group; cells without a
// clock or a group agree with everyone.
func (a *Arch) CellsCompatible(cells []netlist.CellID) bool {
	clk := netlist.NoNet
	group := -1

	for _, id := range cells {
		c := a.nl.Cell(id)

		if c.IsSlice && c.SliceClk.Valid() {
			if !clk.Valid() {
				clk = c.SliceClk
			} else if clk != c.SliceClk {
				return false
			}
		}

		if c.UserGroup != -1 {
			if group == -1 {
				group = c.UserGroup
			} else if group != c.UserGroup {
				return false
			}
		}
	}

	return true
}

// IsValidBelForCell tells if cell may go to bel given the cells already
// bound in the tile.
func (a *Arch) IsValidBelForCell(cell netlist.CellID, bel fabric.BelID) bool {
	cells := []netlist.CellID{cell}
	loc := a.BelLocation(bel)

	for _, b := range a.BelsByTile(loc.X, loc.Y) {
		if b == bel {
			continue
		}

		if c := a.BoundBelCell(b); c.Valid() {
			cells = append(cells, c)
		}
	}

	return a.CellsCompatible(cells)
}

// IsBelLocationValid tells if the cells bound in the tile of bel are
// compatible.
func (a *Arch) IsBelLocationValid(bel fabric.BelID) bool {
	var cells []netlist.CellID
	loc := a.BelLocation(bel)

	for _, b := range a.BelsByTile(loc.X, loc.Y) {
		if c := a.BoundBelCell(b); c.Valid() {
			cells = append(cells, c)
		}
	}

	return a.CellsCompatible(cells)
}
