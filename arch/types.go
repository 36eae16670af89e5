package arch

import (
	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/netlist"
	"github.com/sarchlab/fabricdb/symbol"
	"github.com/sarchlab/fabricdb/timing"
)

// BelPin is one pin of one bel.
type BelPin struct {
	Bel fabric.BelID
	Pin symbol.Symbol
}

// PinInfo describes a pin of a bel.
type PinInfo struct {
	Name symbol.Symbol
	Wire fabric.WireID
	Type fabric.PortType
}

// DecalXY places a decal at an offset.
type DecalXY struct {
	Decal symbol.Symbol
	X, Y  float64
}

// GraphicType is the shape of a GraphicElement.
type GraphicType int

const (
	GraphicNone GraphicType = iota
	GraphicLine
	GraphicArrow
	GraphicBox
	GraphicCircle
	GraphicLabel
)

// GraphicStyle tells how a GraphicElement is drawn.
type GraphicStyle int

const (
	StyleFrame GraphicStyle = iota
	StyleHidden
	StyleInactive
	StyleActive
)

// GraphicElement is one drawing primitive of a decal.
type GraphicElement struct {
	Type           GraphicType
	Style          GraphicStyle
	X1, Y1, X2, Y2 float64
	Text           string
}

// ArcBounds is the bounding box a router may search in.
type ArcBounds struct {
	X0, Y0, X1, Y1 int
}

// Contains tells if the point is inside the box.
func (b ArcBounds) Contains(x, y int) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

type wireInfo struct {
	name         symbol.Symbol
	typ          symbol.Symbol
	x, y         int
	downhill     []fabric.PipID
	uphill       []fabric.PipID
	belPins      []BelPin
	uphillBelPin BelPin
	attrs        map[symbol.Symbol]string
	decal        DecalXY

	boundNet netlist.NetID
}

type pipInfo struct {
	name     symbol.Symbol
	typ      symbol.Symbol
	src, dst fabric.WireID
	delay    timing.DelayInfo
	loc      fabric.Loc
	attrs    map[symbol.Symbol]string
	decal    DecalXY

	boundNet netlist.NetID
}

type belInfo struct {
	name     symbol.Symbol
	typ      symbol.Symbol
	loc      fabric.Loc
	gb       bool
	pins     map[symbol.Symbol]*PinInfo
	pinOrder []symbol.Symbol
	attrs    map[symbol.Symbol]string
	decal    DecalXY

	boundCell netlist.CellID
	strength  fabric.Strength
}

type groupInfo struct {
	name   symbol.Symbol
	bels   []fabric.BelID
	wires  []fabric.WireID
	pips   []fabric.PipID
	groups []fabric.GroupID
	decal  DecalXY
}

type tileKey struct {
	x, y int
}

type tileInfo struct {
	bels    []fabric.BelID
	belDimZ int
	pipDimZ int
}
