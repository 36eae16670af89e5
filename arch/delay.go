package arch

import (
	"fmt"

	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/netlist"
	"github.com/sarchlab/fabricdb/symbol"
	"github.com/sarchlab/fabricdb/timing"
)

const (
	delayEpsilon      timing.Delay = 20
	ripupDelayPenalty timing.Delay = 120
)

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func (a *Arch) manhattan(x0, y0, x1, y1 int) timing.Delay {
	d := abs(x0-x1) + abs(y0-y1)
	return timing.Delay(float64(d)*a.delayScale + a.delayOffset)
}

// EstimateDelay guesses the routing delay between two wires from their grid
// distance.
func (a *Arch) EstimateDelay(src, dst fabric.WireID) timing.Delay {
	s := a.wire(src)
	d := a.wire(dst)

	return a.manhattan(s.x, s.y, d.x, d.y)
}

// PredictDelay guesses the delay from the driver of net to sink from the
// locations of their bels. Both cells must be placed.
func (a *Arch) PredictDelay(net netlist.NetID, sink netlist.PortRef) timing.Delay {
	driver := a.nl.Net(net).Driver

	dl := a.cellLocation(driver.Cell)
	sl := a.cellLocation(sink.Cell)

	return a.manhattan(dl.X, dl.Y, sl.X, sl.Y)
}

func (a *Arch) cellLocation(cell netlist.CellID) fabric.Loc {
	c := a.nl.Cell(cell)
	if !c.Bel.Valid() {
		panic(fmt.Sprintf("cell %s is not placed", a.Str(c.Name)))
	}

	return a.bel(c.Bel).loc
}

// DelayEpsilon is the smallest delay difference the router cares about.
func (a *Arch) DelayEpsilon() timing.Delay { return delayEpsilon }

// RipupDelayPenalty is the cost the router adds for ripping up a net.
func (a *Arch) RipupDelayPenalty() timing.Delay { return ripupDelayPenalty }

// WireDelay returns the delay along a wire. Wires are ideal.
func (a *Arch) WireDelay(wire fabric.WireID) timing.DelayInfo {
	return timing.DelayInfo{}
}

// DelayNS converts a delay to nanoseconds.
func (a *Arch) DelayNS(d timing.Delay) float64 { return float64(d) }

// DelayFromNS converts nanoseconds to a delay.
func (a *Arch) DelayFromNS(ns float64) timing.Delay { return timing.Delay(ns) }

// BudgetOverride lets the architecture impose a delay budget on an arc. It
// never does.
func (a *Arch) BudgetOverride(
	net netlist.NetID,
	sink netlist.PortRef,
	budget timing.Delay,
) (timing.Delay, bool) {
	return budget, false
}

// RouteBoundingBox returns the smallest box that holds both wires.
func (a *Arch) RouteBoundingBox(src, dst fabric.WireID) ArcBounds {
	s := a.wire(src)
	d := a.wire(dst)

	return ArcBounds{
		X0: min(s.x, d.x),
		Y0: min(s.y, d.y),
		X1: max(s.x, d.x),
		Y1: max(s.y, d.y),
	}
}

// CellDelay returns the combinational delay between two ports of a cell.
// Timing is looked up by the type of the cell.
func (a *Arch) CellDelay(cell netlist.CellID, from, to symbol.Symbol) (timing.DelayInfo, bool) {
	return a.cellTiming.CellDelay(a.nl.Cell(cell).Type, from, to)
}

// PortTimingClass returns the timing class of a cell port and the number of
// clocking records it has.
func (a *Arch) PortTimingClass(cell netlist.CellID, port symbol.Symbol) (timing.PortClass, int) {
	return a.cellTiming.PortClass(a.nl.Cell(cell).Type, port)
}

// PortClockingInfo returns the index-th clocking record of a cell port.
func (a *Arch) PortClockingInfo(
	cell netlist.CellID,
	port symbol.Symbol,
	index int,
) timing.ClockingInfo {
	return a.cellTiming.ClockingInfo(a.nl.Cell(cell).Type, port, index)
}
