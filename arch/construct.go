package arch

import (
	"fmt"

	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/symbol"
	"github.com/sarchlab/fabricdb/timing"
)

// AddWire creates a wire at grid position (x, y). It panics if the name is
// taken.
func (a *Arch) AddWire(name, typ symbol.Symbol, x, y int) fabric.WireID {
	if _, ok := a.wireByName[name]; ok {
		panic(fmt.Sprintf("wire %s already exists", a.Str(name)))
	}

	a.wires = append(a.wires, &wireInfo{
		name:  name,
		typ:   typ,
		x:     x,
		y:     y,
		attrs: make(map[symbol.Symbol]string),
	})
	id := fabric.WireID(len(a.wires))
	a.wireByName[name] = id

	return id
}

// AddPip creates a pip from src to dst. It panics if the name is taken.
func (a *Arch) AddPip(
	name, typ symbol.Symbol,
	src, dst fabric.WireID,
	delay timing.DelayInfo,
	loc fabric.Loc,
) fabric.PipID {
	if _, ok := a.pipByName[name]; ok {
		panic(fmt.Sprintf("pip %s already exists", a.Str(name)))
	}

	srcInfo := a.wire(src)
	dstInfo := a.wire(dst)

	a.pips = append(a.pips, &pipInfo{
		name:  name,
		typ:   typ,
		src:   src,
		dst:   dst,
		delay: delay,
		loc:   loc,
		attrs: make(map[symbol.Symbol]string),
	})
	id := fabric.PipID(len(a.pips))
	a.pipByName[name] = id

	srcInfo.downhill = append(srcInfo.downhill, id)
	dstInfo.uphill = append(dstInfo.uphill, id)

	t := a.tile(loc.X, loc.Y)
	t.pipDimZ = max(t.pipDimZ, loc.Z+1)
	a.extendGrid(loc)

	return id
}

// AddBel creates a bel at loc. It panics if the name or the location is
// taken.
func (a *Arch) AddBel(name, typ symbol.Symbol, loc fabric.Loc, gb bool) fabric.BelID {
	if _, ok := a.belByName[name]; ok {
		panic(fmt.Sprintf("bel %s already exists", a.Str(name)))
	}

	if other, ok := a.belByLoc[loc]; ok {
		panic(fmt.Sprintf("bel %s already sits at %s",
			a.Str(a.bel(other).name), loc))
	}

	a.bels = append(a.bels, &belInfo{
		name:  name,
		typ:   typ,
		loc:   loc,
		gb:    gb,
		pins:  make(map[symbol.Symbol]*PinInfo),
		attrs: make(map[symbol.Symbol]string),
	})
	id := fabric.BelID(len(a.bels))
	a.belByName[name] = id
	a.belByLoc[loc] = id

	t := a.tile(loc.X, loc.Y)
	t.bels = append(t.bels, id)
	t.belDimZ = max(t.belDimZ, loc.Z+1)
	a.extendGrid(loc)

	return id
}

func (a *Arch) extendGrid(loc fabric.Loc) {
	a.gridDimX = max(a.gridDimX, loc.X+1)
	a.gridDimY = max(a.gridDimY, loc.Y+1)
}

func (a *Arch) addBelPin(
	bel fabric.BelID,
	name symbol.Symbol,
	wire fabric.WireID,
	typ fabric.PortType,
) {
	b := a.bel(bel)
	if _, ok := b.pins[name]; ok {
		panic(fmt.Sprintf("bel %s already has pin %s",
			a.Str(b.name), a.Str(name)))
	}

	w := a.wire(wire)

	b.pins[name] = &PinInfo{Name: name, Wire: wire, Type: typ}
	b.pinOrder = append(b.pinOrder, name)

	pin := BelPin{Bel: bel, Pin: name}
	w.belPins = append(w.belPins, pin)

	if typ == fabric.PortOut {
		w.uphillBelPin = pin
	}
}

// AddBelInput adds an input pin to a bel.
func (a *Arch) AddBelInput(bel fabric.BelID, name symbol.Symbol, wire fabric.WireID) {
	a.addBelPin(bel, name, wire, fabric.PortIn)
}

// AddBelOutput adds an output pin to a bel. The bel becomes the driver of
// the wire.
func (a *Arch) AddBelOutput(bel fabric.BelID, name symbol.Symbol, wire fabric.WireID) {
	a.addBelPin(bel, name, wire, fabric.PortOut)
}

// AddBelInout adds a bidirectional pin to a bel.
func (a *Arch) AddBelInout(bel fabric.BelID, name symbol.Symbol, wire fabric.WireID) {
	a.addBelPin(bel, name, wire, fabric.PortInout)
}

// groupByNameOrNew returns the named group, creating it on first use.
func (a *Arch) groupByNameOrNew(name symbol.Symbol) fabric.GroupID {
	if id, ok := a.groupByName[name]; ok {
		return id
	}

	a.groups = append(a.groups, &groupInfo{name: name})
	id := fabric.GroupID(len(a.groups))
	a.groupByName[name] = id

	return id
}

// AddGroupBel adds a bel to a group.
func (a *Arch) AddGroupBel(group symbol.Symbol, bel fabric.BelID) {
	g := a.group(a.groupByNameOrNew(group))
	g.bels = append(g.bels, bel)
}

// AddGroupWire adds a wire to a group.
func (a *Arch) AddGroupWire(group symbol.Symbol, wire fabric.WireID) {
	g := a.group(a.groupByNameOrNew(group))
	g.wires = append(g.wires, wire)
}

// AddGroupPip adds a pip to a group.
func (a *Arch) AddGroupPip(group symbol.Symbol, pip fabric.PipID) {
	g := a.group(a.groupByNameOrNew(group))
	g.pips = append(g.pips, pip)
}

// AddGroupGroup nests the group sub in group.
func (a *Arch) AddGroupGroup(group, sub symbol.Symbol) {
	s := a.groupByNameOrNew(sub)
	g := a.group(a.groupByNameOrNew(group))
	g.groups = append(g.groups, s)
}

// AddDecalGraphic appends a drawing primitive to a decal.
func (a *Arch) AddDecalGraphic(decal symbol.Symbol, g GraphicElement) {
	a.decalGraphics[decal] = append(a.decalGraphics[decal], g)
	a.notify(HookPosDecalChanged, decal, nil)
}

// SetWireDecal sets the decal of a wire.
func (a *Arch) SetWireDecal(wire fabric.WireID, d DecalXY) {
	a.wire(wire).decal = d
	a.notify(HookPosDecalChanged, wire, d)
}

// SetPipDecal sets the decal of a pip.
func (a *Arch) SetPipDecal(pip fabric.PipID, d DecalXY) {
	a.pip(pip).decal = d
	a.notify(HookPosDecalChanged, pip, d)
}

// SetBelDecal sets the decal of a bel.
func (a *Arch) SetBelDecal(bel fabric.BelID, d DecalXY) {
	a.bel(bel).decal = d
	a.notify(HookPosDecalChanged, bel, d)
}

// SetGroupDecal sets the decal of a group.
func (a *Arch) SetGroupDecal(group fabric.GroupID, d DecalXY) {
	a.group(group).decal = d
	a.notify(HookPosDecalChanged, group, d)
}

// SetWireAttr sets an attribute of a wire.
func (a *Arch) SetWireAttr(wire fabric.WireID, key symbol.Symbol, value string) {
	a.wire(wire).attrs[key] = value
	a.notify(HookPosAttrChanged, wire, key)
}

// SetPipAttr sets an attribute of a pip.
func (a *Arch) SetPipAttr(pip fabric.PipID, key symbol.Symbol, value string) {
	a.pip(pip).attrs[key] = value
	a.notify(HookPosAttrChanged, pip, key)
}

// SetBelAttr sets an attribute of a bel.
func (a *Arch) SetBelAttr(bel fabric.BelID, key symbol.Symbol, value string) {
	a.bel(bel).attrs[key] = value
	a.notify(HookPosAttrChanged, bel, key)
}

// SetLutK sets the number of LUT inputs.
func (a *Arch) SetLutK(k int) {
	a.lutK = k
}

// LutK returns the number of LUT inputs.
func (a *Arch) LutK() int {
	return a.lutK
}

// SetDelayScaling sets the linear delay model.
func (a *Arch) SetDelayScaling(scale, offset float64) {
	a.delayScale = scale
	a.delayOffset = offset
}

// AddCellTimingClock marks a port of a cell type as a clock input.
func (a *Arch) AddCellTimingClock(cellType, port symbol.Symbol) {
	a.cellTiming.AddClock(cellType, port)
}

// AddCellTimingDelay adds a combinational arc to a cell type.
func (a *Arch) AddCellTimingDelay(cellType, from, to symbol.Symbol, d timing.DelayInfo) {
	a.cellTiming.AddDelay(cellType, from, to, d)
}

// AddCellTimingSetupHold adds setup and hold times to a register input.
func (a *Arch) AddCellTimingSetupHold(
	cellType, port, clock symbol.Symbol,
	setup, hold timing.DelayInfo,
) {
	a.cellTiming.AddSetupHold(cellType, port, clock, setup, hold)
}

// AddCellTimingClockToOut adds a clock to output delay to a register output.
func (a *Arch) AddCellTimingClockToOut(
	cellType, port, clock symbol.Symbol,
	clkToQ timing.DelayInfo,
) {
	a.cellTiming.AddClockToOut(cellType, port, clock, clkToQ)
}
