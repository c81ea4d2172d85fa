package datastructure

type Direction uint8

const (
	NORTH Direction = iota
	EAST
	SOUTH
	WEST
)

// Directions. fixed N, E, S, W order, neighbor candidate lists depend on it for reproducible output.
var Directions = [...]Direction{NORTH, EAST, SOUTH, WEST}

func (d Direction) Delta() (int, int) {
	switch d {
	case NORTH:
		return -1, 0
	case EAST:
		return 0, 1
	case SOUTH:
		return 1, 0
	default:
		return 0, -1
	}
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	return [...]string{"north", "east", "south", "west"}[d]
}
