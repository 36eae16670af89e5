package arch

import (
	"fmt"

	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/symbol"
	"github.com/sarchlab/fabricdb/timing"
)

// GridDimX returns the number of tile columns that hold a bel or a pip.
func (a *Arch) GridDimX() int { return a.gridDimX }

// GridDimY returns the number of tile rows that hold a bel or a pip.
func (a *Arch) GridDimY() int { return a.gridDimY }

// TileBelDimZ returns one more than the largest bel z of the tile.
func (a *Arch) TileBelDimZ(x, y int) int {
	if t, ok := a.tiles[tileKey{x, y}]; ok {
		return t.belDimZ
	}

	return 0
}

// TilePipDimZ returns one more than the largest pip z of the tile.
func (a *Arch) TilePipDimZ(x, y int) int {
	if t, ok := a.tiles[tileKey{x, y}]; ok {
		return t.pipDimZ
	}

	return 0
}

// Bels returns every bel in creation order.
func (a *Arch) Bels() []fabric.BelID {
	ids := make([]fabric.BelID, len(a.bels))
	for i := range ids {
		ids[i] = fabric.BelID(i + 1)
	}

	return ids
}

// BelByName returns the named bel, or NoBel.
func (a *Arch) BelByName(name symbol.Symbol) fabric.BelID {
	return a.belByName[name]
}

// BelName returns the name of a bel.
func (a *Arch) BelName(bel fabric.BelID) symbol.Symbol {
	return a.bel(bel).name
}

// BelType returns the type of a bel.
func (a *Arch) BelType(bel fabric.BelID) symbol.Symbol {
	return a.bel(bel).typ
}

// BelLocation returns where the bel sits.
func (a *Arch) BelLocation(bel fabric.BelID) fabric.Loc {
	return a.bel(bel).loc
}

// BelByLocation returns the bel at loc, or NoBel.
func (a *Arch) BelByLocation(loc fabric.Loc) fabric.BelID {
	return a.belByLoc[loc]
}

// BelsByTile returns the bels of the tile (x, y).
func (a *Arch) BelsByTile(x, y int) []fabric.BelID {
	if t, ok := a.tiles[tileKey{x, y}]; ok {
		return t.bels
	}

	return nil
}

// BelGlobalBuf tells if the bel drives a global network.
func (a *Arch) BelGlobalBuf(bel fabric.BelID) bool {
	return a.bel(bel).gb
}

// BelAttrs returns the attributes of a bel.
func (a *Arch) BelAttrs(bel fabric.BelID) map[symbol.Symbol]string {
	return a.bel(bel).attrs
}

// BelDecal returns the decal of a bel.
func (a *Arch) BelDecal(bel fabric.BelID) DecalXY {
	return a.bel(bel).decal
}

// BelPins returns the pin names of a bel in creation order.
func (a *Arch) BelPins(bel fabric.BelID) []symbol.Symbol {
	return a.bel(bel).pinOrder
}

// BelPinWire returns the wire of a pin. It panics if the bel has no such
// pin.
func (a *Arch) BelPinWire(bel fabric.BelID, pin symbol.Symbol) fabric.WireID {
	return a.belPin(bel, pin).Wire
}

// BelPinType returns the direction of a pin. It panics if the bel has no
// such pin.
func (a *Arch) BelPinType(bel fabric.BelID, pin symbol.Symbol) fabric.PortType {
	return a.belPin(bel, pin).Type
}

// HasBelPin tells if the bel has the pin.
func (a *Arch) HasBelPin(bel fabric.BelID, pin symbol.Symbol) bool {
	_, ok := a.bel(bel).pins[pin]
	return ok
}

func (a *Arch) belPin(bel fabric.BelID, pin symbol.Symbol) *PinInfo {
	b := a.bel(bel)

	p, ok := b.pins[pin]
	if !ok {
		panic(fmt.Sprintf("bel %s has no pin %s", a.Str(b.name), a.Str(pin)))
	}

	return p
}

// Wires returns every wire in creation order.
func (a *Arch) Wires() []fabric.WireID {
	ids := make([]fabric.WireID, len(a.wires))
	for i := range ids {
		ids[i] = fabric.WireID(i + 1)
	}

	return ids
}

// WireByName returns the named wire, or NoWire.
func (a *Arch) WireByName(name symbol.Symbol) fabric.WireID {
	return a.wireByName[name]
}

// WireName returns the name of a wire.
func (a *Arch) WireName(wire fabric.WireID) symbol.Symbol {
	return a.wire(wire).name
}

// WireType returns the type of a wire.
func (a *Arch) WireType(wire fabric.WireID) symbol.Symbol {
	return a.wire(wire).typ
}

// WireLocation returns the grid position of a wire.
func (a *Arch) WireLocation(wire fabric.WireID) (x, y int) {
	w := a.wire(wire)
	return w.x, w.y
}

// WireAttrs returns the attributes of a wire.
func (a *Arch) WireAttrs(wire fabric.WireID) map[symbol.Symbol]string {
	return a.wire(wire).attrs
}

// WireDecal returns the decal of a wire.
func (a *Arch) WireDecal(wire fabric.WireID) DecalXY {
	return a.wire(wire).decal
}

// WireBelPins returns the bel pins attached to a wire.
func (a *Arch) WireBelPins(wire fabric.WireID) []BelPin {
	return a.wire(wire).belPins
}

// WireUphillBelPin returns the bel output that drives the wire. The Bel of
// the result is NoBel if no bel drives it.
func (a *Arch) WireUphillBelPin(wire fabric.WireID) BelPin {
	return a.wire(wire).uphillBelPin
}

// PipsDownhill returns the pips the wire drives.
func (a *Arch) PipsDownhill(wire fabric.WireID) []fabric.PipID {
	return a.wire(wire).downhill
}

// PipsUphill returns the pips that drive the wire.
func (a *Arch) PipsUphill(wire fabric.WireID) []fabric.PipID {
	return a.wire(wire).uphill
}

// Pips returns every pip in creation order.
func (a *Arch) Pips() []fabric.PipID {
	ids := make([]fabric.PipID, len(a.pips))
	for i := range ids {
		ids[i] = fabric.PipID(i + 1)
	}

	return ids
}

// PipByName returns the named pip, or NoPip.
func (a *Arch) PipByName(name symbol.Symbol) fabric.PipID {
	return a.pipByName[name]
}

// PipName returns the name of a pip.
func (a *Arch) PipName(pip fabric.PipID) symbol.Symbol {
	return a.pip(pip).name
}

// PipType returns the type of a pip.
func (a *Arch) PipType(pip fabric.PipID) symbol.Symbol {
	return a.pip(pip).typ
}

// PipLocation returns where the pip sits.
func (a *Arch) PipLocation(pip fabric.PipID) fabric.Loc {
	return a.pip(pip).loc
}

// PipSrcWire returns the wire that drives the pip.
func (a *Arch) PipSrcWire(pip fabric.PipID) fabric.WireID {
	return a.pip(pip).src
}

// PipDstWire returns the wire the pip drives.
func (a *Arch) PipDstWire(pip fabric.PipID) fabric.WireID {
	return a.pip(pip).dst
}

// PipDelay returns the delay through the pip.
func (a *Arch) PipDelay(pip fabric.PipID) timing.DelayInfo {
	return a.pip(pip).delay
}

// PipAttrs returns the attributes of a pip.
func (a *Arch) PipAttrs(pip fabric.PipID) map[symbol.Symbol]string {
	return a.pip(pip).attrs
}

// PipDecal returns the decal of a pip.
func (a *Arch) PipDecal(pip fabric.PipID) DecalXY {
	return a.pip(pip).decal
}

// Groups returns every group in creation order.
func (a *Arch) Groups() []fabric.GroupID {
	ids := make([]fabric.GroupID, len(a.groups))
	for i := range ids {
		ids[i] = fabric.GroupID(i + 1)
	}

	return ids
}

// GroupByName returns the named group, or NoGroup.
func (a *Arch) GroupByName(name symbol.Symbol) fabric.GroupID {
	return a.groupByName[name]
}

// GroupName returns the name of a group.
func (a *Arch) GroupName(group fabric.GroupID) symbol.Symbol {
	return a.group(group).name
}

// GroupBels returns the bels of a group.
func (a *Arch) GroupBels(group fabric.GroupID) []fabric.BelID {
	return a.group(group).bels
}

// GroupWires returns the wires of a group.
func (a *Arch) GroupWires(group fabric.GroupID) []fabric.WireID {
	return a.group(group).wires
}

// GroupPips returns the pips of a group.
func (a *Arch) GroupPips(group fabric.GroupID) []fabric.PipID {
	return a.group(group).pips
}

// GroupGroups returns the groups nested in a group.
func (a *Arch) GroupGroups(group fabric.GroupID) []fabric.GroupID {
	return a.group(group).groups
}

// GroupDecal returns the decal of a group.
func (a *Arch) GroupDecal(group fabric.GroupID) DecalXY {
	return a.group(group).decal
}

// DecalGraphics returns the drawing primitives of a decal. It panics if the
// decal does not exist.
func (a *Arch) DecalGraphics(decal symbol.Symbol) []GraphicElement {
	g, ok := a.decalGraphics[decal]
	if !ok {
		panic(fmt.Sprintf("no decal named %s", a.Str(decal)))
	}

	return g
}
