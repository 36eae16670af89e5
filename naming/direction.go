// Package naming turns tile-local wire names into global canonical names.
//
// Segment wires are named <direction><2-digit number><1-digit length>, for
// example N121 is north wire 12 spanning one tile. The Resolver walks the
// grid by the segment length and folds wires that run off the fabric back
// into range.
package naming

// Direction defines the side a segment wire travels to.
type Direction byte

const (
	North Direction = 'N'
	South Direction = 'S'
	East  Direction = 'E'
	West  Direction = 'W'
)

// Name returns the name of the direction.
func (d Direction) Name() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		panic("invalid direction")
	}
}

// Valid tells if the byte is one of the four directions.
func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}

	return false
}

// step returns the row and column offsets of one tile of travel. North
// increases the row and East decreases the column; this matches the vendor
// database, not the screen.
func (d Direction) step() (dRow, dCol int) {
	switch d {
	case North:
		return 1, 0
	case South:
		return -1, 0
	case East:
		return 0, -1
	case West:
		return 0, 1
	default:
		panic("invalid direction")
	}
}
