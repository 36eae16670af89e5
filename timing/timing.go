// Package timing keeps the per-cell-type timing records that the
// architecture answers delay and clocking queries from.
package timing

import (
	"fmt"

	"github.com/sarchlab/fabricdb/symbol"
)

// Delay is a delay in nanoseconds.
type Delay float64

// DelayInfo is the delay of one arc.
type DelayInfo struct {
	Delay Delay
}

// MinDelay returns the fastest delay of the arc.
func (d DelayInfo) MinDelay() Delay { return d.Delay }

// MaxDelay returns the slowest delay of the arc.
func (d DelayInfo) MaxDelay() Delay { return d.Delay }

// PortClass is the role of a cell port in timing analysis.
type PortClass int

const (
	Ignore PortClass = iota
	ClockInput
	CombInput
	CombOutput
	RegisterInput
	RegisterOutput
)

func (c PortClass) String() string {
	switch c {
	case Ignore:
		return "ignore"
	case ClockInput:
		return "clock_input"
	case CombInput:
		return "comb_input"
	case CombOutput:
		return "comb_output"
	case RegisterInput:
		return "register_input"
	case RegisterOutput:
		return "register_output"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// ClockEdge is the clock edge a register samples on.
type ClockEdge int

const (
	RisingEdge ClockEdge = iota
	FallingEdge
)

// ClockingInfo relates a register port to its clock.
type ClockingInfo struct {
	ClockPort symbol.Symbol
	Edge      ClockEdge
	Setup     DelayInfo
	Hold      DelayInfo
	ClockToQ  DelayInfo
}

type arc struct {
	from, to symbol.Symbol
}

// CellTiming is the timing record of one cell type.
type CellTiming struct {
	classes  map[symbol.Symbol]PortClass
	delays   map[arc]DelayInfo
	clocking map[symbol.Symbol][]ClockingInfo
}

func newCellTiming() *CellTiming {
	return &CellTiming{
		classes:  make(map[symbol.Symbol]PortClass),
		delays:   make(map[arc]DelayInfo),
		clocking: make(map[symbol.Symbol][]ClockingInfo),
	}
}

// DB holds the timing records of all cell types.
type DB struct {
	cells map[symbol.Symbol]*CellTiming
}

// NewDB creates an empty timing database.
func NewDB() *DB {
	return &DB{cells: make(map[symbol.Symbol]*CellTiming)}
}

func (db *DB) record(cellType symbol.Symbol) *CellTiming {
	ct, ok := db.cells[cellType]
	if !ok {
		ct = newCellTiming()
		db.cells[cellType] = ct
	}

	return ct
}

// Has tells if any timing is known for the cell type.
func (db *DB) Has(cellType symbol.Symbol) bool {
	_, ok := db.cells[cellType]
	return ok
}

// Len returns the number of cell types with timing.
func (db *DB) Len() int {
	return len(db.cells)
}

// AddClock marks port as a clock input.
func (db *DB) AddClock(cellType, port symbol.Symbol) {
	db.record(cellType).classes[port] = ClockInput
}

// AddDelay adds a combinational arc. Ports without a class yet become
// combinational inputs and outputs.
func (db *DB) AddDelay(cellType, from, to symbol.Symbol, d DelayInfo) {
	ct := db.record(cellType)

	if ct.classes[from] == Ignore {
		ct.classes[from] = CombInput
	}

	if ct.classes[to] == Ignore {
		ct.classes[to] = CombOutput
	}

	ct.delays[arc{from, to}] = d
}

// AddSetupHold adds a setup and hold constraint of port against clock.
func (db *DB) AddSetupHold(cellType, port, clock symbol.Symbol, setup, hold DelayInfo) {
	ct := db.record(cellType)
	ct.clocking[port] = append(ct.clocking[port], ClockingInfo{
		ClockPort: clock,
		Edge:      RisingEdge,
		Setup:     setup,
		Hold:      hold,
	})
	ct.classes[port] = RegisterInput
}

// AddClockToOut adds a clock to output delay of port.
func (db *DB) AddClockToOut(cellType, port, clock symbol.Symbol, clkToQ DelayInfo) {
	ct := db.record(cellType)
	ct.clocking[port] = append(ct.clocking[port], ClockingInfo{
		ClockPort: clock,
		Edge:      RisingEdge,
		ClockToQ:  clkToQ,
	})
	ct.classes[port] = RegisterOutput
}

// CellDelay returns the combinational delay between two ports.
func (db *DB) CellDelay(cellType, from, to symbol.Symbol) (DelayInfo, bool) {
	ct, ok := db.cells[cellType]
	if !ok {
		return DelayInfo{}, false
	}

	d, ok := ct.delays[arc{from, to}]

	return d, ok
}

// PortClass returns the class of a port and the number of clocking records
// it has. Unknown cell types and ports are ignored.
func (db *DB) PortClass(cellType, port symbol.Symbol) (PortClass, int) {
	ct, ok := db.cells[cellType]
	if !ok {
		return Ignore, 0
	}

	return ct.classes[port], len(ct.clocking[port])
}

// ClockingInfo returns the index-th clocking record of a port. It panics if
// the record does not exist.
func (db *DB) ClockingInfo(cellType, port symbol.Symbol, index int) ClockingInfo {
	ct, ok := db.cells[cellType]
	if !ok {
		panic(fmt.Sprintf("no timing for cell type %d", cellType))
	}

	infos := ct.clocking[port]
	if index < 0 || index >= len(infos) {
		panic(fmt.Sprintf("port %d has no clocking info %d", port, index))
	}

	return infos[index]
}
