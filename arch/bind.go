package arch

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/netlist"
)

// HookPosBelBound marks when a cell is bound to a bel.
var HookPosBelBound = &sim.HookPos{Name: "Bel Bound"}

// HookPosBelUnbound marks when a bel is released.
var HookPosBelUnbound = &sim.HookPos{Name: "Bel Unbound"}

// HookPosWireBound marks when a net is bound to a wire.
var HookPosWireBound = &sim.HookPos{Name: "Wire Bound"}

// HookPosWireUnbound marks when a wire is released.
var HookPosWireUnbound = &sim.HookPos{Name: "Wire Unbound"}

// HookPosPipBound marks when a net is bound to a pip.
var HookPosPipBound = &sim.HookPos{Name: "Pip Bound"}

// HookPosPipUnbound marks when a pip is released.
var HookPosPipUnbound = &sim.HookPos{Name: "Pip Unbound"}

// HookPosDecalChanged marks when a decal, or the decal of a resource,
// changes.
var HookPosDecalChanged = &sim.HookPos{Name: "Decal Changed"}

// HookPosAttrChanged marks when an attribute of a resource changes.
var HookPosAttrChanged = &sim.HookPos{Name: "Attr Changed"}

// notify invokes the hooks with the resource as the item and the new owner
// or value as the detail.
func (a *Arch) notify(pos *sim.HookPos, item, detail interface{}) {
	if a.NumHooks() == 0 {
		return
	}

	a.InvokeHook(sim.HookCtx{
		Domain: a,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}

// BindBel makes cell the owner of bel. It panics if the bel is bound.
func (a *Arch) BindBel(bel fabric.BelID, cell netlist.CellID, strength fabric.Strength) {
	b := a.bel(bel)
	if b.boundCell.Valid() {
		panic(fmt.Sprintf("bel %s is already bound to cell %s",
			a.Str(b.name), a.nl.CellName(b.boundCell)))
	}

	c := a.nl.Cell(cell)
	if c.Bel.Valid() {
		panic(fmt.Sprintf("cell %s is already placed at bel %s",
			a.Str(c.Name), a.Str(a.bel(c.Bel).name)))
	}

	b.boundCell = cell
	b.strength = strength
	c.Bel = bel
	c.BelStrength = strength

	a.notify(HookPosBelBound, bel, cell)
}

// UnbindBel releases bel. It panics if the bel is free.
func (a *Arch) UnbindBel(bel fabric.BelID) {
	b := a.bel(bel)
	if !b.boundCell.Valid() {
		panic(fmt.Sprintf("bel %s is not bound", a.Str(b.name)))
	}

	c := a.nl.Cell(b.boundCell)
	c.Bel = fabric.NoBel
	c.BelStrength = fabric.StrengthNone

	b.boundCell = netlist.NoCell
	b.strength = fabric.StrengthNone

	a.notify(HookPosBelUnbound, bel, nil)
}

// CheckBelAvail tells if the bel is free.
func (a *Arch) CheckBelAvail(bel fabric.BelID) bool {
	return !a.bel(bel).boundCell.Valid()
}

// BoundBelCell returns the cell bound to the bel, or NoCell.
func (a *Arch) BoundBelCell(bel fabric.BelID) netlist.CellID {
	return a.bel(bel).boundCell
}

// BelStrength returns the strength of the binding of the bel.
func (a *Arch) BelStrength(bel fabric.BelID) fabric.Strength {
	return a.bel(bel).strength
}

// ConflictingBelCell returns the cell that prevents binding the bel.
func (a *Arch) ConflictingBelCell(bel fabric.BelID) netlist.CellID {
	return a.bel(bel).boundCell
}

// BindWire makes net the owner of wire, reaching it directly rather than
// through a pip. It panics if the wire is bound.
func (a *Arch) BindWire(wire fabric.WireID, net netlist.NetID, strength fabric.Strength) {
	w := a.wire(wire)
	if w.boundNet.Valid() {
		panic(fmt.Sprintf("wire %s is already bound to net %s",
			a.Str(w.name), a.nl.NetName(w.boundNet)))
	}

	n := a.nl.Net(net)

	w.boundNet = net
	n.Wires[wire] = netlist.PipMap{Pip: fabric.NoPip, Strength: strength}

	a.notify(HookPosWireBound, wire, net)
}

// UnbindWire releases wire. If a pip of the net drives the wire, the pip is
// released too. It panics if the wire is free.
func (a *Arch) UnbindWire(wire fabric.WireID) {
	w := a.wire(wire)
	if !w.boundNet.Valid() {
		panic(fmt.Sprintf("wire %s is not bound", a.Str(w.name)))
	}

	n := a.nl.Net(w.boundNet)

	if pm, ok := n.Wires[wire]; ok && pm.Pip.Valid() {
		a.pip(pm.Pip).boundNet = netlist.NoNet
		a.notify(HookPosPipUnbound, pm.Pip, nil)
	}

	delete(n.Wires, wire)
	w.boundNet = netlist.NoNet

	a.notify(HookPosWireUnbound, wire, nil)
}

// CheckWireAvail tells if the wire is free.
func (a *Arch) CheckWireAvail(wire fabric.WireID) bool {
	return !a.wire(wire).boundNet.Valid()
}

// BoundWireNet returns the net bound to the wire, or NoNet.
func (a *Arch) BoundWireNet(wire fabric.WireID) netlist.NetID {
	return a.wire(wire).boundNet
}

// BoundWirePip returns the pip that drives a bound wire, or NoPip when the
// wire is free or bound directly.
func (a *Arch) BoundWirePip(wire fabric.WireID) fabric.PipID {
	w := a.wire(wire)
	if !w.boundNet.Valid() {
		return fabric.NoPip
	}

	return a.nl.Net(w.boundNet).Wires[wire].Pip
}

// ConflictingWireNet returns the net that prevents binding the wire.
func (a *Arch) ConflictingWireNet(wire fabric.WireID) netlist.NetID {
	return a.wire(wire).boundNet
}

// ConflictingWireWire returns the wire that must be freed to bind wire.
func (a *Arch) ConflictingWireWire(wire fabric.WireID) fabric.WireID {
	return wire
}

// BindPip makes net the owner of pip and of the wire it drives. It panics if
// the pip is bound, or if the wire is bound to another net or driven by
// another pip.
func (a *Arch) BindPip(pip fabric.PipID, net netlist.NetID, strength fabric.Strength) {
	p := a.pip(pip)
	if p.boundNet.Valid() {
		panic(fmt.Sprintf("pip %s is already bound to net %s",
			a.Str(p.name), a.nl.NetName(p.boundNet)))
	}

	w := a.wire(p.dst)
	n := a.nl.Net(net)

	if w.boundNet.Valid() {
		if w.boundNet != net {
			panic(fmt.Sprintf("pip %s drives wire %s of net %s, not %s",
				a.Str(p.name), a.Str(w.name),
				a.nl.NetName(w.boundNet), a.nl.NetName(net)))
		}

		if other := n.Wires[p.dst].Pip; other.Valid() {
			panic(fmt.Sprintf("wire %s is already driven by pip %s",
				a.Str(w.name), a.Str(a.pip(other).name)))
		}
	}

	p.boundNet = net
	w.boundNet = net
	n.Wires[p.dst] = netlist.PipMap{Pip: pip, Strength: strength}

	a.notify(HookPosPipBound, pip, net)
	a.notify(HookPosWireBound, p.dst, net)
}

// UnbindPip releases pip and the wire it drives. It panics if the pip is
// free.
func (a *Arch) UnbindPip(pip fabric.PipID) {
	p := a.pip(pip)
	if !p.boundNet.Valid() {
		panic(fmt.Sprintf("pip %s is not bound", a.Str(p.name)))
	}

	w := a.wire(p.dst)
	if w.boundNet.Valid() {
		delete(a.nl.Net(w.boundNet).Wires, p.dst)
	}

	p.boundNet = netlist.NoNet
	w.boundNet = netlist.NoNet

	a.notify(HookPosPipUnbound, pip, nil)
	a.notify(HookPosWireUnbound, p.dst, nil)
}

// CheckPipAvail tells if the pip is free.
func (a *Arch) CheckPipAvail(pip fabric.PipID) bool {
	return !a.pip(pip).boundNet.Valid()
}

// BoundPipNet returns the net bound to the pip, or NoNet.
func (a *Arch) BoundPipNet(pip fabric.PipID) netlist.NetID {
	return a.pip(pip).boundNet
}

// ConflictingPipNet returns the net that prevents binding the pip.
func (a *Arch) ConflictingPipNet(pip fabric.PipID) netlist.NetID {
	return a.pip(pip).boundNet
}

// ConflictingPipWire returns the wire a bound pip occupies, or NoWire.
func (a *Arch) ConflictingPipWire(pip fabric.PipID) fabric.WireID {
	p := a.pip(pip)
	if !p.boundNet.Valid() {
		return fabric.NoWire
	}

	return p.dst
}
