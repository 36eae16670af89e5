// Package fabric defines the handles and small value types shared by the
// architecture graph and the netlist that binds to it.
package fabric

import "fmt"

// WireID addresses a wire of the graph. The zero value means no wire.
type WireID int32

// PipID addresses a pip of the graph. The zero value means no pip.
type PipID int32

// BelID addresses a bel of the graph. The zero value means no bel.
type BelID int32

// GroupID addresses a group of the graph. The zero value means no group.
type GroupID int32

const (
	NoWire  WireID  = 0
	NoPip   PipID   = 0
	NoBel   BelID   = 0
	NoGroup GroupID = 0
)

// Valid tells if the handle refers to a wire.
func (w WireID) Valid() bool { return w > 0 }

// Valid tells if the handle refers to a pip.
func (p PipID) Valid() bool { return p > 0 }

// Valid tells if the handle refers to a bel.
func (b BelID) Valid() bool { return b > 0 }

// Valid tells if the handle refers to a group.
func (g GroupID) Valid() bool { return g > 0 }

// Loc is a grid location. Z tells apart the bels, or pips, of one tile.
type Loc struct {
	X, Y, Z int
}

func (l Loc) String() string {
	return fmt.Sprintf("(%d, %d, %d)", l.X, l.Y, l.Z)
}

// PortType is the direction of a bel pin or a cell port.
type PortType int

const (
	PortIn PortType = iota
	PortOut
	PortInout
)

func (t PortType) String() string {
	switch t {
	case PortIn:
		return "in"
	case PortOut:
		return "out"
	case PortInout:
		return "inout"
	default:
		panic("invalid port type")
	}
}

// Strength tells how firmly a binding resists being ripped up by search
// heuristics.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthStrong
	StrengthFixed
	StrengthLocked
	StrengthUser
)

func (s Strength) String() string {
	switch s {
	case StrengthNone:
		return "none"
	case StrengthWeak:
		return "weak"
	case StrengthStrong:
		return "strong"
	case StrengthFixed:
		return "fixed"
	case StrengthLocked:
		return "locked"
	case StrengthUser:
		return "user"
	default:
		return fmt.Sprintf("strength(%d)", int(s))
	}
}
